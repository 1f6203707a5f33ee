// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/filesearch-tui/internal/backend"
	"github.com/jeranaias/filesearch-tui/internal/history"
	"github.com/jeranaias/filesearch-tui/internal/liveness"
	"github.com/jeranaias/filesearch-tui/internal/model"
)

// =============================================================================
// TIMING
// =============================================================================

const (
	// DocRefreshDelay is how long to wait after a query that mentions
	// indexing before re-fetching the document list. The backend indexes
	// asynchronously, so an immediate fetch would usually miss the new
	// document.
	DocRefreshDelay = 1500 * time.Millisecond

	// statusMessageTTL is how long a transient status bar message stays up.
	statusMessageTTL = 4 * time.Second
)

// =============================================================================
// LIVENESS COMMANDS
// =============================================================================

// checkHealthCmd runs one liveness probe.
func checkHealthCmd(monitor *liveness.Monitor) tea.Cmd {
	return func() tea.Msg {
		snapshot, ran := monitor.Check(context.Background())
		return HealthResultMsg{Snapshot: snapshot, Ran: ran}
	}
}

// scheduleHealthTick emits a HealthTickMsg after the probe interval.
func scheduleHealthTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return HealthTickMsg{}
	})
}

// =============================================================================
// CHAT COMMANDS
// =============================================================================

// sendChatCmd posts a chat message and returns the reply or the error.
func sendChatCmd(client *backend.Client, message, sessionID, userMsgID string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Chat(context.Background(), message, sessionID)
		return ChatResponseMsg{UserMessageID: userMsgID, Message: message, Response: resp, Err: err}
	}
}

// =============================================================================
// DOCUMENT COMMANDS
// =============================================================================

// refreshDocsCmd fetches the indexed-document list.
func refreshDocsCmd(client *backend.Client) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.IndexedDocuments(context.Background())
		if err != nil {
			return DocumentsMsg{Err: err}
		}
		docs := make([]model.DocumentSummary, 0, len(resp.Documents))
		for _, d := range resp.Documents {
			docs = append(docs, model.DocumentSummary{
				FilePath:   d.FilePath,
				Filename:   d.Filename,
				ChunkCount: d.ChunkCount,
			})
		}
		return DocumentsMsg{Docs: docs, Count: resp.Count}
	}
}

// scheduleDocRefresh emits a DocRefreshTickMsg after the settle delay.
func scheduleDocRefresh(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return DocRefreshTickMsg{}
	})
}

// indexDocumentCmd asks the backend to index a file.
func indexDocumentCmd(client *backend.Client, path string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.IndexDocument(context.Background(), path)
		return IndexResultMsg{Path: path, Response: resp, Err: err}
	}
}

// =============================================================================
// SESSION COMMANDS
// =============================================================================

// clearSessionCmd drops the backend-side memory for a session.
func clearSessionCmd(client *backend.Client, sessionID string) tea.Cmd {
	return func() tea.Msg {
		_, err := client.ClearSession(context.Background(), sessionID)
		return ClearSessionResultMsg{SessionID: sessionID, Err: err}
	}
}

// saveTranscriptCmd archives the transcript. A nil archive or an empty
// transcript is a silent no-op.
func saveTranscriptCmd(archive *history.Archive, transcript *model.Transcript) tea.Cmd {
	return func() tea.Msg {
		if archive == nil || transcript == nil || len(transcript.Messages) == 0 {
			return TranscriptSavedMsg{}
		}
		snapshot := *transcript
		_, err := archive.Save(context.Background(), &snapshot)
		return TranscriptSavedMsg{Err: err}
	}
}

// =============================================================================
// STATUS COMMANDS
// =============================================================================

// clearStatusCmd clears the transient status message after its TTL.
func clearStatusCmd() tea.Cmd {
	return tea.Tick(statusMessageTTL, func(time.Time) tea.Msg {
		return StatusClearMsg{}
	})
}

// =============================================================================
// HEURISTICS
// =============================================================================

// mentionsIndexing reports whether a query looks like it asked the agent to
// index something. Purely lexical: the backend gives no signal that a chat
// turn changed the index, so queries like "index the budget file" trigger a
// delayed document refresh on the off chance it did.
func mentionsIndexing(message string) bool {
	return strings.Contains(strings.ToLower(message), "index")
}

// offlineNotice is shown in the status bar when a message is submitted
// while the backend is unreachable. The transcript is never touched.
const offlineNotice = "agent offline: check that the backend is running, then try again"

// chatErrorNotice turns a failed chat request into guidance for the user.
func chatErrorNotice(err error) string {
	switch {
	case backend.IsNotRunning(err):
		return "Could not reach the agent: the backend may not be running. Start it with `filesearch-backend serve` or check the configured URL."
	case backend.IsTimeout(err):
		return "The agent took too long to answer: the backend may not be running or may be overloaded. " + err.Error()
	default:
		return "The agent could not answer: " + err.Error() + ". The backend may not be running."
	}
}
