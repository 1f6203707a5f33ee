// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/filesearch-tui/internal/model"
	"github.com/jeranaias/filesearch-tui/internal/ui/styles"
)

func sampleDocs() []model.DocumentSummary {
	return []model.DocumentSummary{
		{FilePath: "/docs/budget.xlsx", Filename: "budget.xlsx", ChunkCount: 12},
		{FilePath: "/docs/report.pdf", Filename: "report.pdf", ChunkCount: 30},
		{FilePath: "/docs/notes.txt", Filename: "notes.txt", ChunkCount: 3},
	}
}

func TestDocPanel_EmptyState(t *testing.T) {
	p := NewDocPanel(styles.NewTheme())

	view := p.View()
	if !strings.Contains(view, "No documents indexed yet") {
		t.Error("empty panel should show explicit empty state")
	}
	if p.Selected() != nil {
		t.Error("Selected on empty panel should be nil")
	}
	if p.QueryForSelected() != "" {
		t.Error("QueryForSelected on empty panel should be empty")
	}
}

func TestDocPanel_SetDocuments(t *testing.T) {
	p := NewDocPanel(styles.NewTheme())
	p.SetDocuments(sampleDocs())

	if p.Count() != 3 {
		t.Fatalf("Count = %d, want 3", p.Count())
	}
	if got := p.Selected().Filename; got != "budget.xlsx" {
		t.Errorf("Selected = %q, want first document", got)
	}

	view := p.View()
	if !strings.Contains(view, "budget.xlsx") {
		t.Error("view should list documents")
	}
	if !strings.Contains(view, "3 documents") {
		t.Error("view should show the count")
	}
}

func TestDocPanel_Selection(t *testing.T) {
	p := NewDocPanel(styles.NewTheme())
	p.SetDocuments(sampleDocs())

	p.MoveDown()
	if got := p.Selected().Filename; got != "report.pdf" {
		t.Errorf("Selected = %q after MoveDown", got)
	}

	p.MoveDown()
	p.MoveDown() // past the end, should clamp
	if got := p.Selected().Filename; got != "notes.txt" {
		t.Errorf("Selected = %q, want clamped last", got)
	}

	p.MoveUp()
	p.MoveUp()
	p.MoveUp() // past the start, should clamp
	if got := p.Selected().Filename; got != "budget.xlsx" {
		t.Errorf("Selected = %q, want clamped first", got)
	}
}

func TestDocPanel_QueryForSelected(t *testing.T) {
	p := NewDocPanel(styles.NewTheme())
	p.SetDocuments(sampleDocs())
	p.MoveDown()

	if got := p.QueryForSelected(); got != "Summarize report.pdf" {
		t.Errorf("QueryForSelected = %q", got)
	}
}

func TestDocPanel_RefreshClampsSelection(t *testing.T) {
	p := NewDocPanel(styles.NewTheme())
	p.SetDocuments(sampleDocs())
	p.MoveDown()
	p.MoveDown()

	// Refresh shrinks the list; selection must stay valid
	p.SetDocuments(sampleDocs()[:1])
	if got := p.Selected().Filename; got != "budget.xlsx" {
		t.Errorf("Selected = %q after shrink", got)
	}
}

func TestDocPanel_StaleFlag(t *testing.T) {
	p := NewDocPanel(styles.NewTheme())
	p.SetDocuments(sampleDocs())

	p.MarkStale()
	if !strings.Contains(p.View(), "stale") {
		t.Error("stale panel should be marked in the view")
	}
	// Data kept despite staleness
	if p.Count() != 3 {
		t.Errorf("Count = %d, stale list should keep data", p.Count())
	}

	p.SetDocuments(sampleDocs())
	if p.Stale {
		t.Error("successful refresh should clear the stale flag")
	}
}
