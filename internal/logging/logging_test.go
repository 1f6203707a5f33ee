// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tc := range tests {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSetupWithWriters_Fanout(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Info("backend online", "version", "1.2.0")

	if !strings.Contains(stderr.String(), "backend online") {
		t.Error("stderr should carry the text record")
	}

	var record map[string]any
	if err := json.Unmarshal(file.Bytes(), &record); err != nil {
		t.Fatalf("file output is not JSON: %v", err)
	}
	if record["msg"] != "backend online" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["version"] != "1.2.0" {
		t.Errorf("version = %v", record["version"])
	}
}

func TestSetupWithWriters_LevelFilter(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupWithWriters(&stderr, &file, slog.LevelWarn)

	logger.Info("quiet")
	logger.Warn("loud")

	if strings.Contains(stderr.String(), "quiet") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(stderr.String(), "loud") {
		t.Error("warn record should pass")
	}
}

func TestSetupFileOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "filesearch.log")

	logger, cleanup := SetupFileOnly(path, slog.LevelInfo)
	logger.Info("started")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "started") {
		t.Error("log record missing from file")
	}
}
