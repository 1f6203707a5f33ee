// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package liveness

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jeranaias/filesearch-tui/internal/backend"
)

// fakeChecker is a scriptable HealthChecker.
type fakeChecker struct {
	mu    sync.Mutex
	resp  *backend.HealthResponse
	err   error
	block chan struct{} // non-nil: Health blocks until closed
	calls int
}

func (f *fakeChecker) Health(ctx context.Context) (*backend.HealthResponse, error) {
	f.mu.Lock()
	f.calls++
	resp, err, block := f.resp, f.err, f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return resp, err
}

func (f *fakeChecker) set(resp *backend.HealthResponse, err error) {
	f.mu.Lock()
	f.resp, f.err = resp, err
	f.mu.Unlock()
}

func TestMonitor_InitialSnapshotOffline(t *testing.T) {
	m := NewMonitor(&fakeChecker{})

	snap := m.Snapshot()
	if snap.Online {
		t.Error("initial snapshot should be offline")
	}
	if !snap.LastCheck.IsZero() {
		t.Error("LastCheck should be zero before any probe")
	}
}

func TestNewMonitorWithInterval(t *testing.T) {
	m := NewMonitorWithInterval(&fakeChecker{}, 30*time.Second)
	if m.Interval() != 30*time.Second {
		t.Errorf("Interval() = %v, want 30s", m.Interval())
	}

	m = NewMonitorWithInterval(&fakeChecker{}, 0)
	if m.Interval() != DefaultInterval {
		t.Errorf("Interval() = %v, want default for non-positive input", m.Interval())
	}
}

func TestMonitor_CheckSuccess(t *testing.T) {
	fc := &fakeChecker{}
	fc.set(&backend.HealthResponse{Status: "healthy", Version: "1.2.0", IndexedDocuments: 5}, nil)
	m := NewMonitor(fc)

	snap, ran := m.Check(context.Background())
	if !ran {
		t.Fatal("probe should have run")
	}
	if !snap.Online {
		t.Error("Online should be true after healthy probe")
	}
	if snap.Version != "1.2.0" || snap.IndexedDocs != 5 {
		t.Errorf("snapshot = %+v, want version/docs from health body", snap)
	}
	if snap.LastCheck.IsZero() {
		t.Error("LastCheck should be set")
	}
	if snap.LastError != nil {
		t.Errorf("LastError = %v, want nil", snap.LastError)
	}
}

func TestMonitor_FailureAbsorbed(t *testing.T) {
	fc := &fakeChecker{}
	fc.set(nil, backend.ErrNotRunning)
	m := NewMonitor(fc)

	snap, ran := m.Check(context.Background())
	if !ran {
		t.Fatal("probe should have run")
	}
	if snap.Online {
		t.Error("Online should be false after failed probe")
	}
	if snap.LastError == nil {
		t.Error("LastError should carry the probe failure")
	}
}

func TestMonitor_RetainsLastKnownFields(t *testing.T) {
	fc := &fakeChecker{}
	fc.set(&backend.HealthResponse{Version: "1.2.0", IndexedDocuments: 7}, nil)
	m := NewMonitor(fc)

	m.Check(context.Background())

	// Backend goes away
	fc.set(nil, errors.New("connection refused"))
	snap, _ := m.Check(context.Background())

	if snap.Online {
		t.Error("Online should be false")
	}
	if snap.Version != "1.2.0" || snap.IndexedDocs != 7 {
		t.Errorf("last known fields not retained: %+v", snap)
	}
}

func TestMonitor_LastCheckAlwaysAdvances(t *testing.T) {
	fc := &fakeChecker{}
	fc.set(nil, errors.New("refused"))
	m := NewMonitor(fc)

	m.Check(context.Background())
	first := m.Snapshot().LastCheck

	time.Sleep(5 * time.Millisecond)
	m.Check(context.Background())
	second := m.Snapshot().LastCheck

	if !second.After(first) {
		t.Error("LastCheck should advance on every probe, success or failure")
	}
}

func TestMonitor_AtMostOneInFlight(t *testing.T) {
	block := make(chan struct{})
	fc := &fakeChecker{block: block}
	fc.set(&backend.HealthResponse{Status: "healthy"}, nil)
	m := NewMonitor(fc)

	done := make(chan struct{})
	go func() {
		m.Check(context.Background())
		close(done)
	}()

	// Wait for the first probe to be in flight
	deadline := time.Now().Add(time.Second)
	for {
		fc.mu.Lock()
		calls := fc.calls
		fc.mu.Unlock()
		if calls > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("first probe never started")
		}
		time.Sleep(time.Millisecond)
	}

	// A second Check while one is in flight must be skipped, not queued.
	if _, ran := m.Check(context.Background()); ran {
		t.Error("overlapping probe should be skipped")
	}

	close(block)
	<-done

	fc.mu.Lock()
	calls := fc.calls
	fc.mu.Unlock()
	if calls != 1 {
		t.Errorf("checker called %d times, want 1", calls)
	}

	// After the in-flight probe completes, probes run again.
	if _, ran := m.Check(context.Background()); !ran {
		t.Error("probe after completion should run")
	}
}

func TestMonitor_RecoveryClearsError(t *testing.T) {
	fc := &fakeChecker{}
	fc.set(nil, errors.New("refused"))
	m := NewMonitor(fc)
	m.Check(context.Background())

	fc.set(&backend.HealthResponse{Version: "1.3.0", IndexedDocuments: 2}, nil)
	snap, _ := m.Check(context.Background())

	if !snap.Online {
		t.Error("Online should be true after recovery")
	}
	if snap.LastError != nil {
		t.Errorf("LastError should clear on recovery, got %v", snap.LastError)
	}
}

func TestMonitor_RunInvokesCallback(t *testing.T) {
	fc := &fakeChecker{}
	fc.set(&backend.HealthResponse{Status: "healthy"}, nil)
	m := NewMonitor(fc)
	m.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Snapshot, 8)
	go m.Run(ctx, func(s Snapshot) { got <- s })

	select {
	case snap := <-got:
		if !snap.Online {
			t.Error("callback snapshot should be online")
		}
	case <-time.After(time.Second):
		t.Fatal("Run never invoked callback")
	}
}
