// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("Hello")

	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want 'user'", msg.Role)
	}
	if msg.Content != "Hello" {
		t.Errorf("Content = %q, want 'Hello'", msg.Content)
	}
	if msg.ID == "" {
		t.Error("ID should be generated")
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestMessageIDs_Unique(t *testing.T) {
	a, b := NewUserMessage("one"), NewUserMessage("two")
	if a.ID == b.ID {
		t.Errorf("ids collide: %q", a.ID)
	}
	if !strings.HasPrefix(a.ID, "msg_") {
		t.Errorf("ID = %q, want msg_ prefix", a.ID)
	}
}

func TestNewErrorMessage(t *testing.T) {
	msg := NewErrorMessage("backend unreachable")

	if msg.Role != RoleAssistant {
		t.Errorf("Role = %q, want 'assistant'", msg.Role)
	}
	if !msg.IsError {
		t.Error("IsError should be true")
	}
}

func TestMessage_Preview(t *testing.T) {
	msg := NewUserMessage(strings.Repeat("a", 100))

	preview := msg.Preview(20)
	if len([]rune(preview)) != 20 {
		t.Errorf("Preview length = %d, want 20", len([]rune(preview)))
	}
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("Preview should end with ellipsis, got %q", preview)
	}
}

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Agent"},
		{RoleSystem, "System"},
		{Role("other"), "other"},
	}

	for _, tc := range tests {
		if got := tc.role.DisplayName(); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestTranscript_AppendOnly(t *testing.T) {
	tr := NewTranscript("default")

	tr.AddUserMessage("first")
	tr.AddAssistantMessage("second")
	tr.AddErrorMessage("third")

	if tr.Len() != 3 {
		t.Fatalf("Len = %d, want 3", tr.Len())
	}

	// Order preserved
	if tr.Messages[0].Content != "first" || tr.Messages[2].Content != "third" {
		t.Error("Message order not preserved")
	}
}

func TestTranscript_Clear(t *testing.T) {
	tr := NewTranscript("default")
	tr.AddUserMessage("hello")
	tr.AddAssistantMessage("hi")

	tr.Clear()

	if !tr.IsEmpty() {
		t.Errorf("Transcript not empty after Clear: %d messages", tr.Len())
	}
	// SessionID survives a clear; only messages go.
	if tr.SessionID != "default" {
		t.Errorf("SessionID = %q, want 'default'", tr.SessionID)
	}
}

func TestTranscript_Last(t *testing.T) {
	tr := NewTranscript("s")

	if tr.Last() != nil {
		t.Error("Last on empty transcript should be nil")
	}

	tr.AddUserMessage("a")
	last := tr.AddAssistantMessage("b")

	if tr.Last() != last {
		t.Error("Last should return most recent message")
	}
}

func TestTranscript_LastUserMessage(t *testing.T) {
	tr := NewTranscript("s")
	tr.AddUserMessage("question")
	tr.AddAssistantMessage("answer")

	got := tr.LastUserMessage()
	if got == nil || got.Content != "question" {
		t.Errorf("LastUserMessage = %v, want 'question'", got)
	}
}

func TestTranscript_Prune(t *testing.T) {
	tr := NewTranscript("s")
	for i := 0; i < MaxMessages+10; i++ {
		tr.AddUserMessage("msg")
	}

	if tr.Len() != MaxMessages {
		t.Errorf("Len = %d, want %d after prune", tr.Len(), MaxMessages)
	}
}

func TestTranscript_Title(t *testing.T) {
	tr := NewTranscript("s")
	if tr.Title() != "New conversation" {
		t.Errorf("empty transcript Title = %q", tr.Title())
	}

	tr.AddSystemMessage("sys")
	tr.AddUserMessage("find my tax documents")
	if tr.Title() != "find my tax documents" {
		t.Errorf("Title = %q, want first user message", tr.Title())
	}
}

// =============================================================================
// DOCUMENT SUMMARY TESTS
// =============================================================================

func TestDocumentSummary_QueryTemplate(t *testing.T) {
	doc := DocumentSummary{Filename: "budget.xlsx", ChunkCount: 12}

	if got := doc.QueryTemplate(); got != "Summarize budget.xlsx" {
		t.Errorf("QueryTemplate = %q", got)
	}
}
