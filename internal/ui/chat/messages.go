// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/filesearch-tui/internal/backend"
	"github.com/jeranaias/filesearch-tui/internal/liveness"
	"github.com/jeranaias/filesearch-tui/internal/model"
)

// =============================================================================
// LIVENESS MESSAGES
// =============================================================================

// HealthTickMsg requests the next liveness probe.
type HealthTickMsg struct{}

// HealthResultMsg carries the outcome of a liveness probe.
//
// Ran is false when the probe was skipped because a previous one was still
// in flight; the snapshot is then the last known state.
type HealthResultMsg struct {
	Snapshot liveness.Snapshot
	Ran      bool
}

// =============================================================================
// CHAT MESSAGES
// =============================================================================

// ChatResponseMsg carries the backend's reply to a chat request, or the
// error that ended it. Exactly one of Response and Err is set. Message is
// the text that was sent, so result handling can key off what was asked.
type ChatResponseMsg struct {
	UserMessageID string
	Message       string
	Response      *backend.ChatResponse
	Err           error
}

// =============================================================================
// DOCUMENT MESSAGES
// =============================================================================

// DocumentsMsg carries a refreshed indexed-document list. On error the
// previous list stays on screen marked stale.
type DocumentsMsg struct {
	Docs  []model.DocumentSummary
	Count int
	Err   error
}

// DocRefreshTickMsg fires after the post-indexing settle delay and asks for
// a document list refresh.
type DocRefreshTickMsg struct{}

// IndexResultMsg carries the outcome of an explicit /index request.
type IndexResultMsg struct {
	Path     string
	Response *backend.IndexDocumentResponse
	Err      error
}

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// ClearSessionResultMsg carries the outcome of clearing the backend-side
// session memory.
type ClearSessionResultMsg struct {
	SessionID string
	Err       error
}

// TranscriptSavedMsg carries the outcome of archiving the transcript.
type TranscriptSavedMsg struct {
	Err error
}

// =============================================================================
// UI MESSAGES
// =============================================================================

// StatusClearMsg clears a transient status bar message.
type StatusClearMsg struct{}
