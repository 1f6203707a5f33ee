// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package liveness

import (
	"context"
	"sync"
	"time"

	"github.com/jeranaias/filesearch-tui/internal/backend"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultInterval is the spacing between health probes.
	DefaultInterval = 10 * time.Second

	// DefaultProbeTimeout bounds a single probe. Shorter than the interval,
	// so a probe always finishes (or dies) before the next tick.
	DefaultProbeTimeout = 2 * time.Second
)

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is the monitor's view of the backend at a point in time.
//
// Version and IndexedDocs are retained from the last successful probe even
// while Online is false, so the UI can keep showing the last known facts
// about a backend that just went away.
type Snapshot struct {
	Online      bool
	LastCheck   time.Time
	Version     string
	IndexedDocs int

	// LastError is the error behind the most recent failed probe, nil while
	// online. Display only; callers must branch on Online, not on this.
	LastError error
}

// =============================================================================
// MONITOR
// =============================================================================

// HealthChecker is the part of the backend client the monitor needs.
type HealthChecker interface {
	Health(ctx context.Context) (*backend.HealthResponse, error)
}

// Monitor polls backend health and keeps the latest Snapshot.
// Safe for concurrent use.
type Monitor struct {
	checker  HealthChecker
	interval time.Duration
	timeout  time.Duration

	mu       sync.Mutex
	snapshot Snapshot
	inFlight bool
}

// NewMonitor creates a monitor around checker with the default cadence.
// The initial snapshot is offline with a zero LastCheck.
func NewMonitor(checker HealthChecker) *Monitor {
	return &Monitor{
		checker:  checker,
		interval: DefaultInterval,
		timeout:  DefaultProbeTimeout,
	}
}

// NewMonitorWithInterval creates a monitor with a custom probe spacing.
// Non-positive intervals fall back to the default.
func NewMonitorWithInterval(checker HealthChecker, interval time.Duration) *Monitor {
	m := NewMonitor(checker)
	if interval > 0 {
		m.interval = interval
	}
	return m
}

// Interval returns the probe spacing, for callers that drive ticks.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// Snapshot returns the current view of the backend.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

// Online is a convenience accessor for Snapshot().Online.
func (m *Monitor) Online() bool {
	return m.Snapshot().Online
}

// Check runs one health probe and folds the result into the snapshot.
// It returns the resulting snapshot and whether the probe actually ran:
// if another probe is already in flight the call is skipped and the
// previous snapshot is returned with ran = false.
func (m *Monitor) Check(ctx context.Context) (Snapshot, bool) {
	m.mu.Lock()
	if m.inFlight {
		snap := m.snapshot
		m.mu.Unlock()
		return snap, false
	}
	m.inFlight = true
	m.mu.Unlock()

	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	health, err := m.checker.Health(probeCtx)
	cancel()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight = false
	m.snapshot.LastCheck = time.Now()

	if err != nil {
		// Retain Version and IndexedDocs from the last good probe.
		m.snapshot.Online = false
		m.snapshot.LastError = err
		return m.snapshot, true
	}

	m.snapshot.Online = true
	m.snapshot.LastError = nil
	m.snapshot.Version = health.Version
	m.snapshot.IndexedDocs = health.IndexedDocuments
	return m.snapshot, true
}

// Run drives Check on the monitor's interval until ctx is cancelled,
// invoking onChange after every completed probe. An immediate probe runs
// before the first tick so callers see a real state right away.
func (m *Monitor) Run(ctx context.Context, onChange func(Snapshot)) {
	notify := func(snap Snapshot, ran bool) {
		if ran && onChange != nil {
			onChange(snap)
		}
	}

	snap, ran := m.Check(ctx)
	notify(snap, ran)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap, ran := m.Check(ctx)
			notify(snap, ran)
		}
	}
}
