// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/filesearch-tui/internal/ui/styles"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusActivating, "ACTIVATING"},
		{StatusOnline, "ONLINE"},
		{StatusOffline, "OFFLINE"},
		{Status(99), "UNKNOWN"},
	}

	for _, tc := range tests {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("String(%d) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestHeader_InitialStatusActivating(t *testing.T) {
	h := NewHeader(styles.NewTheme())

	// The first rendered frame must say activating, not offline
	if h.Status != StatusActivating {
		t.Errorf("initial status = %v, want activating", h.Status)
	}
	if !strings.Contains(h.View(), "ACTIVATING") {
		t.Error("initial view should show ACTIVATING")
	}
}

func TestHeader_ViewShowsStatus(t *testing.T) {
	h := NewHeader(styles.NewTheme())

	h.SetStatus(StatusOnline)
	h.SetBackendInfo("1.2.0", 5)
	view := h.View()

	if !strings.Contains(view, "ONLINE") {
		t.Error("view should show ONLINE")
	}
	if !strings.Contains(view, "v1.2.0") {
		t.Error("view should show backend version")
	}
	if !strings.Contains(view, "5 documents") {
		t.Error("view should show document count")
	}

	h.SetStatus(StatusOffline)
	if !strings.Contains(h.View(), "OFFLINE") {
		t.Error("view should show OFFLINE")
	}
}

func TestHeader_OfflineHidesDocCount(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetStatus(StatusOffline)
	h.SetBackendInfo("1.2.0", 5)

	if strings.Contains(h.View(), "5 documents") {
		t.Error("doc count should not render while offline")
	}
}

func TestFormatDocCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "no documents indexed"},
		{1, "1 document"},
		{7, "7 documents"},
	}

	for _, tc := range tests {
		if got := formatDocCount(tc.n); got != tc.want {
			t.Errorf("formatDocCount(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestHeader_ViewCompact(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetStatus(StatusOnline)
	h.SetBackendInfo("1.0.0", 2)

	compact := h.ViewCompact()
	if !strings.Contains(compact, "filesearch") {
		t.Error("compact view should show title")
	}
	if !strings.Contains(compact, "ONLINE") {
		t.Error("compact view should show status")
	}
}
