// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/filesearch-tui/internal/ui/styles"
	"github.com/jeranaias/filesearch-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is one key hint shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// defaultShortcuts are the hints shown when nothing overrides them.
var defaultShortcuts = []Shortcut{
	{"enter", "send"},
	{"tab", "documents"},
	{"ctrl+l", "clear"},
	{"ctrl+c", "quit"},
}

// StatusBar is the bottom bar with the session id and key hints.
type StatusBar struct {
	SessionID string
	Width     int
	Message   string // transient notice, shown instead of shortcuts
	theme     *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetMessage shows a transient message in place of the shortcuts.
// Empty string restores the shortcuts.
func (s *StatusBar) SetMessage(msg string) {
	s.Message = msg
}

// View renders the status bar.
func (s *StatusBar) View() string {
	var left string
	if s.SessionID != "" {
		left = s.theme.ShortcutDesc.Render("session ") +
			s.theme.ShortcutKey.Render(util.TruncateRunes(s.SessionID, 12))
	}

	var right string
	if s.Message != "" {
		right = s.theme.ShortcutDesc.Render(s.Message)
	} else {
		parts := make([]string, 0, len(defaultShortcuts))
		for _, sc := range defaultShortcuts {
			parts = append(parts, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
		}
		right = strings.Join(parts, "  ")
	}

	bar := left
	if left != "" && right != "" {
		bar += "  |  "
	}
	bar += right

	return s.theme.StatusBar.Width(s.Width).Render(bar)
}
