// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session manages the chat session identity.
//
// A session id scopes conversational state on the backend: every chat turn
// carries it, and clearing or rotating it starts a fresh conversation
// without touching the backend's document index. The active id is persisted
// in the config so it survives restarts.
package session

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jeranaias/filesearch-tui/internal/config"
)

// DefaultID is the session id used when none was ever chosen.
const DefaultID = "default"

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// Manager tracks the active session id and persists changes.
type Manager struct {
	cfg *config.Config

	// save persists the config; swappable in tests
	save func(*config.Config) error
}

// NewManager creates a manager backed by cfg. A nil cfg uses the global
// configuration.
func NewManager(cfg *config.Config) *Manager {
	if cfg == nil {
		cfg = config.Global()
	}
	return &Manager{cfg: cfg, save: config.Save}
}

// Current returns the active session id, falling back to DefaultID if the
// config somehow carries an empty one.
func (m *Manager) Current() string {
	id := strings.TrimSpace(m.cfg.Session.ID)
	if id == "" {
		return DefaultID
	}
	return id
}

// Rotate switches to a fresh random session id and persists it.
// The old conversation remains on the backend under its old id.
func (m *Manager) Rotate() (string, error) {
	id := NewID()
	if err := m.set(id); err != nil {
		return "", err
	}
	return id, nil
}

// Use switches to an explicit session id and persists it.
func (m *Manager) Use(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("session id must not be empty")
	}
	return m.set(id)
}

func (m *Manager) set(id string) error {
	prev := m.cfg.Session.ID
	m.cfg.Session.ID = id
	if err := m.save(m.cfg); err != nil {
		// Roll back so the in-memory id never diverges from the persisted one.
		m.cfg.Session.ID = prev
		return fmt.Errorf("failed to persist session id: %w", err)
	}
	return nil
}
