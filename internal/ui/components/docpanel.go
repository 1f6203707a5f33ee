// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/filesearch-tui/internal/model"
	"github.com/jeranaias/filesearch-tui/internal/ui/styles"
	"github.com/jeranaias/filesearch-tui/internal/util"
)

// =============================================================================
// INDEXED DOCUMENTS PANEL
// =============================================================================

// DocPanel shows the backend's indexed documents. The list is replaced
// wholesale on each refresh; when a refresh fails the previous list stays
// visible (stale but honest) rather than flashing empty.
type DocPanel struct {
	docs     []model.DocumentSummary
	selected int
	Width    int
	Height   int
	Stale    bool // last refresh failed; showing previous data
	theme    *styles.Theme
}

// NewDocPanel creates an empty document panel.
func NewDocPanel(theme *styles.Theme) *DocPanel {
	return &DocPanel{
		Width:  32,
		Height: 10,
		theme:  theme,
	}
}

// SetSize updates the panel dimensions.
func (p *DocPanel) SetSize(width, height int) {
	p.Width = width
	p.Height = height
}

// SetDocuments replaces the document list and clears the stale flag.
// The selection is clamped into the new list.
func (p *DocPanel) SetDocuments(docs []model.DocumentSummary) {
	p.docs = docs
	p.Stale = false
	if p.selected >= len(docs) {
		p.selected = len(docs) - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
}

// MarkStale flags the current list as possibly outdated after a failed
// refresh. The data itself is kept.
func (p *DocPanel) MarkStale() {
	p.Stale = true
}

// Documents returns the current document list.
func (p *DocPanel) Documents() []model.DocumentSummary {
	return p.docs
}

// Count returns the number of listed documents.
func (p *DocPanel) Count() int {
	return len(p.docs)
}

// MoveUp moves the selection up one entry.
func (p *DocPanel) MoveUp() {
	if p.selected > 0 {
		p.selected--
	}
}

// MoveDown moves the selection down one entry.
func (p *DocPanel) MoveDown() {
	if p.selected < len(p.docs)-1 {
		p.selected++
	}
}

// Selected returns the selected document, or nil when the list is empty.
func (p *DocPanel) Selected() *model.DocumentSummary {
	if len(p.docs) == 0 {
		return nil
	}
	return &p.docs[p.selected]
}

// QueryForSelected returns the pre-filled query for the selected document,
// or "" when nothing is selected.
func (p *DocPanel) QueryForSelected() string {
	doc := p.Selected()
	if doc == nil {
		return ""
	}
	return doc.QueryTemplate()
}

// View renders the panel.
func (p *DocPanel) View() string {
	title := p.theme.DocPanelTitle.Render("Indexed Documents")
	if p.Stale {
		title += " " + p.theme.DocMeta.Render("(stale)")
	}

	var lines []string
	lines = append(lines, title)

	if len(p.docs) == 0 {
		lines = append(lines, p.theme.DocEmpty.Render("No documents indexed yet."))
		lines = append(lines, p.theme.DocEmpty.Render("Use /index <path> to add one."))
	} else {
		lines = append(lines, p.theme.DocMeta.Render(formatDocCount(len(p.docs))))

		maxRows := p.Height - 3
		if maxRows < 1 {
			maxRows = 1
		}
		start, end := p.window(maxRows)

		nameWidth := p.Width - 10
		if nameWidth < 8 {
			nameWidth = 8
		}

		for i := start; i < end; i++ {
			doc := p.docs[i]
			name := util.TruncateWidth(doc.Filename, nameWidth)
			meta := fmt.Sprintf("%d", doc.ChunkCount)

			line := fmt.Sprintf("%s %s", name, p.theme.DocMeta.Render(meta))
			if i == p.selected {
				line = p.theme.DocItemSelected.Render("> " + line)
			} else {
				line = p.theme.DocItem.Render("  " + line)
			}
			lines = append(lines, line)
		}
	}

	content := strings.Join(lines, "\n")
	return p.theme.DocPanel.Width(p.Width).Render(content)
}

// window returns the visible slice bounds keeping the selection in view.
func (p *DocPanel) window(maxRows int) (int, int) {
	if len(p.docs) <= maxRows {
		return 0, len(p.docs)
	}
	start := p.selected - maxRows/2
	if start < 0 {
		start = 0
	}
	end := start + maxRows
	if end > len(p.docs) {
		end = len(p.docs)
		start = end - maxRows
	}
	return start, end
}
