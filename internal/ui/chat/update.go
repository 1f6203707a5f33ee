// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/filesearch-tui/internal/model"
	"github.com/jeranaias/filesearch-tui/internal/ui/components"
)

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state != StateWaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case HealthTickMsg:
		return m, tea.Batch(
			checkHealthCmd(m.monitor),
			scheduleHealthTick(m.monitor.Interval()),
		)

	case HealthResultMsg:
		return m.handleHealthResult(msg), nil

	case ChatResponseMsg:
		return m.handleChatResponse(msg)

	case DocumentsMsg:
		return m.handleDocuments(msg), nil

	case DocRefreshTickMsg:
		return m, refreshDocsCmd(m.client)

	case IndexResultMsg:
		return m.handleIndexResult(msg)

	case ClearSessionResultMsg:
		if msg.Err != nil {
			m.statusBar.SetMessage("session clear failed: backend unreachable")
		} else {
			m.statusBar.SetMessage("session memory cleared")
		}
		return m, clearStatusCmd()

	case TranscriptSavedMsg:
		if msg.Err != nil {
			m.statusBar.SetMessage("could not archive conversation")
			return m, clearStatusCmd()
		}
		return m, nil

	case StatusClearMsg:
		m.statusBar.SetMessage("")
		return m, nil
	}

	return m.updateComponents(msg)
}

// =============================================================================
// LAYOUT
// =============================================================================

const docPanelWidth = 34

// handleResize recomputes the layout for a new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.theme.SetSize(msg.Width, msg.Height)
	m.header.SetWidth(msg.Width)
	m.statusBar.SetWidth(msg.Width)

	// header 3, input 3, status bar 1
	contentHeight := msg.Height - 7
	if contentHeight < 3 {
		contentHeight = 3
	}

	viewportWidth := msg.Width
	if m.docsVisible() {
		viewportWidth -= docPanelWidth
	}
	if viewportWidth < 20 {
		viewportWidth = 20
	}

	m.viewport.Width = viewportWidth
	m.viewport.Height = contentHeight
	m.docPanel.SetSize(docPanelWidth, contentHeight)
	m.input.Width = msg.Width - 6

	if m.cfg.UI.Markdown {
		wrap := viewportWidth - 4
		if wrap < 20 {
			wrap = 20
		}
		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		); err == nil {
			m.renderer = r
		}
	}

	m.refreshViewport()
	return m
}

// docsVisible reports whether the document panel takes layout space. Narrow
// terminals drop it regardless of the toggle.
func (m Model) docsVisible() bool {
	return m.showDocs && m.width >= 80
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Sequence(
			saveTranscriptCmd(m.archive, m.transcript),
			tea.Quit,
		)

	case key.Matches(msg, m.keyMap.Clear):
		return m.clearConversation()

	case key.Matches(msg, m.keyMap.NewSession):
		return m.rotateSession()

	case key.Matches(msg, m.keyMap.ToggleDocs):
		if !m.showDocs {
			m.showDocs = true
			m.docsFocus = true
		} else if m.docsFocus {
			m.docsFocus = false
		} else {
			m.docsFocus = true
		}
		return m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height}), nil

	case key.Matches(msg, m.keyMap.ScrollUp):
		if m.docsFocus {
			m.docPanel.MoveUp()
			return m, nil
		}
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollDown):
		if m.docsFocus {
			m.docPanel.MoveDown()
			return m, nil
		}
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		if m.docsFocus {
			// Pre-fill the input with a query about the selected document.
			if q := m.docPanel.QueryForSelected(); q != "" {
				m.input.SetValue(q)
				m.docsFocus = false
			}
			return m, nil
		}
		return m.handleSubmit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// SUBMIT PATH
// =============================================================================

// handleSubmit sends the typed message, or routes a slash command.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if strings.HasPrefix(text, "/") {
		m.input.Reset()
		return m.handleSlashCommand(text)
	}

	if m.state == StateWaiting {
		m.statusBar.SetMessage("still waiting for the agent")
		return m, clearStatusCmd()
	}

	if !m.online {
		// The transcript stays untouched while offline. The typed text is
		// kept so it can be resent once the backend is up, and a probe runs
		// immediately instead of waiting for the next tick.
		m.statusBar.SetMessage(offlineNotice)
		return m, tea.Batch(checkHealthCmd(m.monitor), clearStatusCmd())
	}

	userMsg := m.transcript.AddUserMessage(text)
	m.input.Reset()
	m.state = StateWaiting
	m.refreshViewport()

	return m, tea.Batch(
		sendChatCmd(m.client, text, m.sessions.Current(), userMsg.ID),
		m.spinner.Tick,
	)
}

// handleSlashCommand routes /commands typed into the input.
func (m Model) handleSlashCommand(text string) (tea.Model, tea.Cmd) {
	cmd, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/help":
		m.transcript.AddSystemMessage(helpText)
		m.refreshViewport()
		return m, nil

	case "/clear":
		return m.clearConversation()

	case "/new":
		return m.rotateSession()

	case "/index":
		if arg == "" {
			m.transcript.AddSystemMessage("Usage: /index <path>")
			m.refreshViewport()
			return m, nil
		}
		m.statusBar.SetMessage("indexing " + arg)
		return m, tea.Batch(indexDocumentCmd(m.client, arg), clearStatusCmd())

	case "/docs":
		m.showDocs = !m.showDocs
		m.docsFocus = m.showDocs
		return m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height}), refreshDocsCmd(m.client)

	case "/session":
		if arg == "" {
			m.transcript.AddSystemMessage("Current session: " + m.sessions.Current())
			m.refreshViewport()
			return m, nil
		}
		return m.switchSession(arg)

	case "/quit":
		return m, tea.Sequence(
			saveTranscriptCmd(m.archive, m.transcript),
			tea.Quit,
		)
	}

	m.transcript.AddSystemMessage("Unknown command: " + cmd + " (try /help)")
	m.refreshViewport()
	return m, nil
}

const helpText = `Commands:
  /index <path>   index a file on the backend
  /docs           toggle the indexed-documents panel
  /clear          clear the conversation and the agent's session memory
  /new            start a fresh session with a new id
  /session [id]   show or switch the session id
  /help           show this help
  /quit           exit

Keys: enter send, tab documents, ctrl+l clear, ctrl+n new session, ctrl+c quit.`

// =============================================================================
// CONVERSATION LIFECYCLE
// =============================================================================

// clearConversation archives the transcript, wipes the screen, and asks the
// backend to forget the session.
func (m Model) clearConversation() (tea.Model, tea.Cmd) {
	save := saveTranscriptCmd(m.archive, m.transcript)
	m.transcript.Clear()
	m.state = StateReady
	m.refreshViewport()
	return m, tea.Batch(save, clearSessionCmd(m.client, m.sessions.Current()))
}

// rotateSession archives the transcript and starts over under a fresh
// session id.
func (m Model) rotateSession() (tea.Model, tea.Cmd) {
	id, err := m.sessions.Rotate()
	if err != nil {
		// The rotation rolled back; stay on the current session.
		m.statusBar.SetMessage("could not persist a new session id")
		return m, clearStatusCmd()
	}

	save := saveTranscriptCmd(m.archive, m.transcript)
	m.statusBar.SetMessage("new session started")
	return m.resetForSession(id, save)
}

// switchSession archives the transcript and continues under the given id.
func (m Model) switchSession(id string) (tea.Model, tea.Cmd) {
	save := saveTranscriptCmd(m.archive, m.transcript)

	if err := m.sessions.Use(id); err != nil {
		m.transcript.AddSystemMessage("Invalid session id.")
		m.refreshViewport()
		return m, nil
	}
	m.statusBar.SetMessage("switched to session " + id)

	return m.resetForSession(id, save)
}

func (m Model) resetForSession(id string, save tea.Cmd) (tea.Model, tea.Cmd) {
	m.transcript = model.NewTranscript(id)
	m.statusBar.SessionID = id
	m.state = StateReady
	m.refreshViewport()
	return m, tea.Batch(save, clearStatusCmd())
}

// =============================================================================
// RESULT HANDLING
// =============================================================================

// handleHealthResult applies a liveness snapshot to the header and the
// online gate. Skipped probes change nothing.
func (m Model) handleHealthResult(msg HealthResultMsg) Model {
	if !msg.Ran {
		return m
	}

	m.firstProbe = true
	m.online = msg.Snapshot.Online

	if msg.Snapshot.Online {
		m.header.SetStatus(components.StatusOnline)
		m.header.SetBackendInfo(msg.Snapshot.Version, msg.Snapshot.IndexedDocs)
	} else {
		m.header.SetStatus(components.StatusOffline)
	}
	return m
}

// handleChatResponse folds the backend's reply, or its failure, into the
// conversation. The waiting state ends here no matter what.
func (m Model) handleChatResponse(msg ChatResponseMsg) (tea.Model, tea.Cmd) {
	m.state = StateReady

	if msg.Err != nil {
		m.transcript.AddErrorMessage(chatErrorNotice(msg.Err))
		m.refreshViewport()
		// A failed chat often means the backend just went away.
		return m, checkHealthCmd(m.monitor)
	}

	m.transcript.AddAssistantMessage(msg.Response.Response)
	m.refreshViewport()

	// A query that mentioned indexing may have changed the document set.
	// Only an answered request earns the delayed refresh, and the limiter
	// keeps chatty indexing conversations off the list endpoint.
	if mentionsIndexing(msg.Message) && m.refreshLimiter.Allow() {
		return m, scheduleDocRefresh(DocRefreshDelay)
	}
	return m, nil
}

// handleDocuments applies a refreshed document list. Failures keep the old
// list on screen, marked stale.
func (m Model) handleDocuments(msg DocumentsMsg) Model {
	if msg.Err != nil {
		m.docPanel.MarkStale()
		return m
	}
	m.docPanel.SetDocuments(msg.Docs)
	m.header.SetBackendInfo(m.header.Version, msg.Count)
	return m
}

// handleIndexResult reports an explicit /index outcome and schedules a list
// refresh on success.
func (m Model) handleIndexResult(msg IndexResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.transcript.AddErrorMessage("Indexing failed for " + msg.Path + ": " + msg.Err.Error())
		m.refreshViewport()
		return m, nil
	}

	notice := msg.Response.Message
	if notice == "" {
		notice = fmt.Sprintf("Indexed %s.", msg.Path)
	}
	m.transcript.AddSystemMessage(notice)
	m.refreshViewport()
	return m, scheduleDocRefresh(DocRefreshDelay)
}

// updateComponents forwards unhandled messages to the focused components.
func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}
