// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jeranaias/filesearch-tui/internal/model"
)

func openTestArchive(t *testing.T, maxConv int) *Archive {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	a, err := Open(path, maxConv)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func sampleTranscript(session string) *model.Transcript {
	tr := model.NewTranscript(session)
	tr.AddUserMessage("where is the budget spreadsheet?")
	tr.AddAssistantMessage("It's in Documents/finance.")
	return tr
}

func TestArchive_SaveAndGet(t *testing.T) {
	a := openTestArchive(t, 0)
	ctx := context.Background()

	id, err := a.Save(ctx, sampleTranscript("default"))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	tr, err := a.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if tr.SessionID != "default" {
		t.Errorf("SessionID = %q", tr.SessionID)
	}
	if tr.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tr.Len())
	}
	if tr.Messages[0].Role != model.RoleUser {
		t.Errorf("first role = %q, want user", tr.Messages[0].Role)
	}
	if tr.Messages[1].Content != "It's in Documents/finance." {
		t.Errorf("second content = %q", tr.Messages[1].Content)
	}
}

func TestArchive_SaveEmpty(t *testing.T) {
	a := openTestArchive(t, 0)

	_, err := a.Save(context.Background(), model.NewTranscript("default"))
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Errorf("Save(empty) error = %v, want ErrEmptyTranscript", err)
	}
}

func TestArchive_SavePreservesErrorFlag(t *testing.T) {
	a := openTestArchive(t, 0)
	ctx := context.Background()

	tr := model.NewTranscript("default")
	tr.AddUserMessage("hello")
	tr.AddErrorMessage("Error: backend may not be running")

	id, err := a.Save(ctx, tr)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := a.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !got.Messages[1].IsError {
		t.Error("IsError flag lost through archive round trip")
	}
}

func TestArchive_List(t *testing.T) {
	a := openTestArchive(t, 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := a.Save(ctx, sampleTranscript("default")); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}

	list, err := a.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	if list[0].MessageCount != 2 {
		t.Errorf("MessageCount = %d, want 2", list[0].MessageCount)
	}
	if list[0].Title != "where is the budget spreadsheet?" {
		t.Errorf("Title = %q", list[0].Title)
	}

	// Newest first
	if list[0].ID < list[2].ID {
		t.Error("List should be newest first")
	}

	limited, err := a.List(ctx, 2)
	if err != nil {
		t.Fatalf("List(2) error: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("len = %d, want 2", len(limited))
	}
}

func TestArchive_Delete(t *testing.T) {
	a := openTestArchive(t, 0)
	ctx := context.Background()

	id, err := a.Save(ctx, sampleTranscript("default"))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if err := a.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := a.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := a.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("double Delete = %v, want ErrNotFound", err)
	}
}

func TestArchive_Prune(t *testing.T) {
	a := openTestArchive(t, 2)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := a.Save(ctx, sampleTranscript("default")); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}

	n, err := a.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2 after pruning", n)
	}
}
