// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/filesearch-tui/internal/model"
	"github.com/jeranaias/filesearch-tui/internal/ui/components"
	"github.com/jeranaias/filesearch-tui/internal/ui/styles"
)

// View renders the chat view.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var sections []string

	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		sections = append(sections, m.header.ViewCompact())
	} else {
		sections = append(sections, m.header.View())
	}

	content := m.viewport.View()
	if m.docsVisible() {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.docPanel.View())
	}
	sections = append(sections, content)

	sections = append(sections, m.renderInputArea())
	sections = append(sections, m.statusBar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderInputArea renders the prompt line, or the waiting indicator while a
// request is in flight.
func (m Model) renderInputArea() string {
	if m.state == StateWaiting {
		indicator := m.spinner.View() + " " + m.theme.ThinkingText.Render("waiting for the agent...")
		return m.theme.InputContainer.Width(m.width - 2).Render(indicator)
	}
	return m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// refreshViewport re-renders the transcript and pins the view to the newest
// message.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// renderTranscript renders the whole conversation.
func (m *Model) renderTranscript() string {
	if m.transcript.IsEmpty() {
		return m.theme.SystemText.Render(welcomeText)
	}

	var b strings.Builder
	for i, msg := range m.transcript.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	return b.String()
}

const welcomeText = `Ask anything about your indexed documents.
Type /help for commands.`

// renderMessage renders one conversation turn.
func (m *Model) renderMessage(msg *model.Message) string {
	ts := m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))

	switch {
	case msg.IsError:
		label := m.theme.ErrorText.Bold(true).Render("! error")
		return label + " " + ts + "\n" + m.theme.ErrorText.Render(msg.Content)

	case msg.Role == model.RoleUser:
		label := m.theme.UserLabel.Render(msg.Role.DisplayName())
		return label + " " + ts + "\n" + m.theme.UserText.Render(msg.Content)

	case msg.Role == model.RoleAssistant:
		label := m.theme.AgentLabel.Render(msg.Role.DisplayName())
		return label + " " + ts + "\n" + m.renderAgentContent(msg.Content)

	default:
		return m.theme.SystemText.Render(msg.Content)
	}
}

// renderAgentContent renders an agent reply. Markdown rendering is
// preferred; when it is disabled or fails, fenced code blocks still get
// highlighted.
func (m *Model) renderAgentContent(content string) string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(content); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return components.ParseCodeBlocks(m.theme.AgentText.Render(content), m.viewport.Width)
}
