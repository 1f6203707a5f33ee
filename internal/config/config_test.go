// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// DEFAULT TESTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.API.URL != "http://127.0.0.1:8765" {
		t.Errorf("API.URL = %q, want loopback default", cfg.API.URL)
	}
	if cfg.Session.ID != "default" {
		t.Errorf("Session.ID = %q, want 'default'", cfg.Session.ID)
	}
	if cfg.API.HealthTimeoutSecs != 2 {
		t.Errorf("HealthTimeoutSecs = %d, want 2", cfg.API.HealthTimeoutSecs)
	}
	if cfg.API.StartupAttempts != 30 {
		t.Errorf("StartupAttempts = %d, want 30", cfg.API.StartupAttempts)
	}
	if !cfg.API.AutoStart {
		t.Error("AutoStart should default to true")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"bad url", func(c *Config) { c.API.URL = "not a url" }, true},
		{"empty session id", func(c *Config) { c.Session.ID = "  " }, true},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"negative timeout", func(c *Config) { c.API.HealthTimeoutSecs = -1 }, true},
		{"excessive startup attempts", func(c *Config) { c.API.StartupAttempts = 500 }, true},
		{"light theme", func(c *Config) { c.UI.Theme = "light" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	if cfg.API.URL != "http://127.0.0.1:8765" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.Session.ID != "default" {
		t.Errorf("Session.ID = %q", cfg.Session.ID)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

// =============================================================================
// LOAD/SAVE TESTS
// =============================================================================

func TestSaveAndLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.API.URL = "http://127.0.0.1:9999"
	cfg.Session.ID = "work"

	// SaveTOML goes through EnsureConfigDir for the default location; write
	// directly here to stay inside the temp dir.
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if loaded.API.URL != "http://127.0.0.1:9999" {
		t.Errorf("API.URL = %q", loaded.API.URL)
	}
	if loaded.Session.ID != "work" {
		t.Errorf("Session.ID = %q", loaded.Session.ID)
	}
}

func TestLoadLegacyJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filesearch-config.json")

	data := []byte(`{"apiUrl": "http://127.0.0.1:4321", "sessionId": "legacy-session"}`)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.API.URL != "http://127.0.0.1:4321" {
		t.Errorf("API.URL = %q, want legacy value", cfg.API.URL)
	}
	if cfg.Session.ID != "legacy-session" {
		t.Errorf("Session.ID = %q, want legacy value", cfg.Session.ID)
	}
	// Fields the legacy file does not carry come from defaults
	if cfg.UI.Theme != "dark" {
		t.Errorf("UI.Theme = %q, want default", cfg.UI.Theme)
	}
}

func TestLoadLegacyJSON_PartialKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filesearch-config.json")

	if err := os.WriteFile(path, []byte(`{"apiUrl": "http://127.0.0.1:4321"}`), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Session.ID != "default" {
		t.Errorf("Session.ID = %q, want default for missing key", cfg.Session.ID)
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDE TESTS
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("FILESEARCH_API_URL", "http://127.0.0.1:7777")
	t.Setenv("FILESEARCH_SESSION_ID", "env-session")
	t.Setenv("FILESEARCH_NO_AUTOSTART", "true")
	t.Setenv("FILESEARCH_LOG_LEVEL", "debug")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.API.URL != "http://127.0.0.1:7777" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.Session.ID != "env-session" {
		t.Errorf("Session.ID = %q", cfg.Session.ID)
	}
	if cfg.API.AutoStart {
		t.Error("AutoStart should be disabled by env")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

// =============================================================================
// GET/SET TESTS
// =============================================================================

func TestGetSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("api.url", "http://127.0.0.1:1234"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, err := cfg.Get("api.url")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != "http://127.0.0.1:1234" {
		t.Errorf("Get(api.url) = %v", got)
	}

	if err := cfg.Set("session.id", "alpha"); err != nil {
		t.Fatalf("Set(session.id) error: %v", err)
	}
	if cfg.Session.ID != "alpha" {
		t.Errorf("Session.ID = %q", cfg.Session.ID)
	}

	// String-to-int conversion
	if err := cfg.Set("api.startup_attempts", "45"); err != nil {
		t.Fatalf("Set(startup_attempts) error: %v", err)
	}
	if cfg.API.StartupAttempts != 45 {
		t.Errorf("StartupAttempts = %d, want 45", cfg.API.StartupAttempts)
	}

	// Bool conversion
	if err := cfg.Set("ui.compact_mode", "true"); err != nil {
		t.Fatalf("Set(compact_mode) error: %v", err)
	}
	if !cfg.UI.CompactMode {
		t.Error("CompactMode should be true")
	}

	if _, err := cfg.Get("nope.nothing"); err == nil {
		t.Error("Get on unknown key should error")
	}
	if err := cfg.Set("nope.nothing", "x"); err == nil {
		t.Error("Set on unknown key should error")
	}
}

func TestGetAllKeys(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) error: %v", key, err)
		}
	}
}

// =============================================================================
// GLOBAL TESTS
// =============================================================================

func TestSetGlobal(t *testing.T) {
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	custom := Default()
	custom.Session.ID = "custom"
	SetGlobal(custom)

	if got := Global(); got.Session.ID != "custom" {
		t.Errorf("Global().Session.ID = %q, want 'custom'", got.Session.ID)
	}
}
