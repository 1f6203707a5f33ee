// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"golang.org/x/time/rate"

	"github.com/jeranaias/filesearch-tui/internal/backend"
	"github.com/jeranaias/filesearch-tui/internal/config"
	"github.com/jeranaias/filesearch-tui/internal/history"
	"github.com/jeranaias/filesearch-tui/internal/liveness"
	"github.com/jeranaias/filesearch-tui/internal/model"
	"github.com/jeranaias/filesearch-tui/internal/session"
	"github.com/jeranaias/filesearch-tui/internal/ui/components"
	"github.com/jeranaias/filesearch-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateWaiting              // A chat request is in flight
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int
	ready  bool // viewport has been sized at least once

	// Conversation
	transcript *model.Transcript

	// Backend
	client   *backend.Client
	monitor  *liveness.Monitor
	cfg      *config.Config
	sessions *session.Manager
	archive  *history.Archive // nil disables local archiving

	// Liveness. online reflects the last probe; until the first result
	// lands the header shows ACTIVATING rather than a false OFFLINE.
	online     bool
	firstProbe bool

	// UI components
	viewport  viewport.Model
	input     textinput.Model
	spinner   spinner.Model
	header    *components.Header
	docPanel  *components.DocPanel
	statusBar *components.StatusBar

	// Key bindings
	keyMap KeyMap

	// Document panel
	showDocs  bool
	docsFocus bool

	// Refresh throttle for the indexing heuristic. Repeated queries that
	// mention indexing should not hammer the list endpoint.
	refreshLimiter *rate.Limiter

	// Markdown renderer for agent replies (nil = plain rendering)
	renderer *glamour.TermRenderer
}

// New creates a new chat model.
func New(client *backend.Client, monitor *liveness.Monitor, cfg *config.Config, archive *history.Archive) Model {
	theme := styles.NewTheme()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about your documents..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	// ASCII spinner, matches the bracketed status indicators
	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Spinner

	statusBar := components.NewStatusBar(theme)
	statusBar.SessionID = cfg.Session.ID

	var renderer *glamour.TermRenderer
	if cfg.UI.Markdown {
		// Rebuilt on resize; errors leave plain rendering in place.
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(76),
		)
	}

	return Model{
		state:          StateReady,
		theme:          theme,
		transcript:     model.NewTranscript(cfg.Session.ID),
		client:         client,
		monitor:        monitor,
		cfg:            cfg,
		sessions:       session.NewManager(cfg),
		archive:        archive,
		viewport:       vp,
		input:          ti,
		spinner:        sp,
		header:         components.NewHeader(theme),
		docPanel:       components.NewDocPanel(theme),
		statusBar:      statusBar,
		keyMap:         DefaultKeyMap(),
		showDocs:       cfg.UI.ShowDocuments,
		refreshLimiter: rate.NewLimiter(rate.Every(5*time.Second), 1),
		renderer:       renderer,
	}
}

// Init kicks off the liveness loop, the first document fetch, and the
// cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		checkHealthCmd(m.monitor),
		scheduleHealthTick(m.monitor.Interval()),
		refreshDocsCmd(m.client),
		m.spinner.Tick,
		textinput.Blink,
	)
}

// Transcript exposes the conversation, mainly for archiving on exit.
func (m Model) Transcript() *model.Transcript {
	return m.transcript
}

// Online reports the last known backend liveness.
func (m Model) Online() bool {
	return m.online
}

// Pending reports whether a chat request is in flight.
func (m Model) Pending() bool {
	return m.state == StateWaiting
}
