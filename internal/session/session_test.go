// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"testing"

	"github.com/jeranaias/filesearch-tui/internal/config"
)

func testManager() (*Manager, *int) {
	cfg := config.Default()
	saves := 0
	m := NewManager(cfg)
	m.save = func(*config.Config) error {
		saves++
		return nil
	}
	return m, &saves
}

func TestNewID_Unique(t *testing.T) {
	a, b := NewID(), NewID()
	if a == "" || a == b {
		t.Errorf("NewID() not unique: %q vs %q", a, b)
	}
}

func TestManager_CurrentDefault(t *testing.T) {
	m, _ := testManager()
	if got := m.Current(); got != "default" {
		t.Errorf("Current() = %q, want 'default'", got)
	}
}

func TestManager_CurrentEmptyFallsBack(t *testing.T) {
	m, _ := testManager()
	m.cfg.Session.ID = "  "
	if got := m.Current(); got != DefaultID {
		t.Errorf("Current() = %q, want fallback", got)
	}
}

func TestManager_Rotate(t *testing.T) {
	m, saves := testManager()

	id, err := m.Rotate()
	if err != nil {
		t.Fatalf("Rotate() error: %v", err)
	}
	if id == "" || id == "default" {
		t.Errorf("Rotate() = %q, want fresh id", id)
	}
	if m.Current() != id {
		t.Errorf("Current() = %q, want %q", m.Current(), id)
	}
	if *saves != 1 {
		t.Errorf("saves = %d, want 1", *saves)
	}
}

func TestManager_Rotate_SaveFailureKeepsCurrent(t *testing.T) {
	m, _ := testManager()
	m.save = func(*config.Config) error { return errors.New("disk full") }

	id, err := m.Rotate()
	if err == nil {
		t.Fatal("Rotate with a failing save should error")
	}
	if id != "" {
		t.Errorf("Rotate() = %q, want empty id on failure", id)
	}
	// The config must not carry an id that was never persisted.
	if m.Current() != "default" {
		t.Errorf("Current() = %q, want the previous id kept", m.Current())
	}
}

func TestManager_Use_SaveFailureKeepsCurrent(t *testing.T) {
	m, _ := testManager()
	m.save = func(*config.Config) error { return errors.New("disk full") }

	if err := m.Use("work"); err == nil {
		t.Fatal("Use with a failing save should error")
	}
	if m.Current() != "default" {
		t.Errorf("Current() = %q, want the previous id kept", m.Current())
	}
}

func TestManager_Use(t *testing.T) {
	m, _ := testManager()

	if err := m.Use("work"); err != nil {
		t.Fatalf("Use() error: %v", err)
	}
	if m.Current() != "work" {
		t.Errorf("Current() = %q, want 'work'", m.Current())
	}

	if err := m.Use("  "); err == nil {
		t.Error("Use with blank id should error")
	}
}
