// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared wiring between CLI commands and the backend client.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/filesearch-tui/internal/backend"
	"github.com/jeranaias/filesearch-tui/internal/config"
	"github.com/jeranaias/filesearch-tui/internal/session"
)

// loadConfig loads the global config and applies per-invocation overrides.
func loadConfig(args Args) *config.Config {
	cfg := config.Global()
	if args.URL != "" {
		cfg.API.URL = args.URL
	}
	if args.Session != "" {
		cfg.Session.ID = args.Session
	}
	if args.NoAutoStart {
		cfg.API.AutoStart = false
	}
	return cfg
}

// newBackendClient builds a backend client from the effective config.
func newBackendClient(cfg *config.Config) *backend.Client {
	return backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL:         cfg.API.URL,
		HealthTimeout:   time.Duration(cfg.API.HealthTimeoutSecs) * time.Second,
		ChatTimeout:     time.Duration(cfg.API.ChatTimeoutSecs) * time.Second,
		Executable:      cfg.API.Executable,
		StartupAttempts: cfg.API.StartupAttempts,
		StartupDelay:    time.Duration(cfg.API.StartupDelaySecs) * time.Second,
	})
}

// ensureBackend checks the backend and, when auto-start is enabled, spawns
// it and waits for readiness. Exceeding the readiness ceiling is reported,
// not fatal: the caller decides what a dead backend means for its command.
func ensureBackend(ctx context.Context, client *backend.Client, cfg *config.Config, quiet bool) bool {
	if client.CheckRunning(ctx) == nil {
		return true
	}
	if !cfg.API.AutoStart {
		return false
	}

	if !quiet {
		fmt.Fprintln(os.Stderr, DimStyle.Render("backend not running, starting it..."))
	}
	if err := client.EnsureRunning(ctx); err != nil {
		if !quiet {
			fmt.Fprintln(os.Stderr, WarningStyle.Render("could not start the backend: "+err.Error()))
		}
		return false
	}
	return true
}

// sessionID resolves the session id for this invocation.
func sessionID(cfg *config.Config) string {
	mgr := session.NewManager(cfg)
	return mgr.Current()
}

// exitErr prints an error and exits non-zero.
func exitErr(err error) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
	os.Exit(1)
}
