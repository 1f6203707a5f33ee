// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/filesearch-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Status is the backend connection state shown in the header.
type Status int

const (
	// StatusActivating is shown from startup until the first health probe
	// resolves, so the user never sees a false "offline".
	StatusActivating Status = iota
	StatusOnline
	StatusOffline
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusActivating:
		return "ACTIVATING"
	case StatusOnline:
		return "ONLINE"
	case StatusOffline:
		return "OFFLINE"
	default:
		return "UNKNOWN"
	}
}

// Header is the title bar with the backend status indicator.
type Header struct {
	Title    string // Main title (default: "filesearch")
	Status   Status // Backend connection state
	Version  string // Backend version from the last successful health probe
	DocCount int    // Indexed document count from the last successful probe
	Width    int    // Available width
	theme    *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:  "filesearch",
		Status: StatusActivating,
		Width:  80,
		theme:  theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetStatus updates the backend connection state.
func (h *Header) SetStatus(status Status) {
	h.Status = status
}

// SetBackendInfo updates the version and document count shown next to the
// status. Stale values are kept while offline so the header still shows the
// last known facts.
func (h *Header) SetBackendInfo(version string, docCount int) {
	h.Version = version
	h.DocCount = docCount
}

// statusIndicator renders the colored status badge with its shape indicator.
func (h *Header) statusIndicator() string {
	switch h.Status {
	case StatusOnline:
		return h.theme.StatusOnline.Render(styles.StatusIndicators.Online + " " + h.Status.String())
	case StatusActivating:
		return h.theme.StatusActivating.Render(styles.StatusIndicators.Activating + " " + h.Status.String())
	default:
		return h.theme.StatusOffline.Render(styles.StatusIndicators.Offline + " " + h.Status.String())
	}
}

// View renders the header component.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}
	innerWidth := width - 6

	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan)
	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	brand := accentStyle.Render("< ") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(" >")

	subtitleParts := []string{h.statusIndicator()}

	if h.Version != "" {
		versionStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		subtitleParts = append(subtitleParts, versionStyle.Render("v"+h.Version))
	}

	if h.Status == StatusOnline {
		docStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		subtitleParts = append(subtitleParts, docStyle.Render(formatDocCount(h.DocCount)))
	}

	subtitle := strings.Join(subtitleParts, " | ")

	brandLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Render(brand)

	subtitleLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Render(subtitle)

	content := lipgloss.JoinVertical(lipgloss.Center, brandLine, subtitleLine)

	headerBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Background(styles.SurfaceDim).
		Padding(0, 2).
		Width(width)

	return headerBox.Render(content)
}

// ViewCompact renders a single-line header for narrow terminals.
func (h *Header) ViewCompact() string {
	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan)

	parts := []string{brandStyle.Render(h.Title), h.statusIndicator()}
	if h.Status == StatusOnline {
		parts = append(parts, formatDocCount(h.DocCount))
	}
	return strings.Join(parts, " | ")
}

// formatDocCount renders the indexed-document count with an explicit empty
// state so "0 documents" never looks like a loading failure.
func formatDocCount(n int) string {
	switch n {
	case 0:
		return "no documents indexed"
	case 1:
		return "1 document"
	default:
		return fmt.Sprintf("%d documents", n)
	}
}
