// filesearch - a terminal client for a local file-search agent.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/filesearch-tui/internal/backend"
	"github.com/jeranaias/filesearch-tui/internal/cli"
	"github.com/jeranaias/filesearch-tui/internal/config"
	"github.com/jeranaias/filesearch-tui/internal/history"
	"github.com/jeranaias/filesearch-tui/internal/liveness"
	"github.com/jeranaias/filesearch-tui/internal/logging"
	"github.com/jeranaias/filesearch-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdStatus:
		cli.HandleStatus(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdIndex:
		cli.HandleIndex(args)
	case cli.CmdDocs:
		cli.HandleDocs(args)
	case cli.CmdSession:
		cli.HandleSession(args)
	case cli.CmdHistory:
		cli.HandleHistory(args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

// runTUI starts the terminal interface.
func runTUI(args cli.Args) {
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

	// The alternate screen owns stderr, so TUI logs go to the file only.
	logger := setupTUILogging(cfg)

	client := backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL:         cfg.API.URL,
		HealthTimeout:   time.Duration(cfg.API.HealthTimeoutSecs) * time.Second,
		ChatTimeout:     time.Duration(cfg.API.ChatTimeoutSecs) * time.Second,
		Executable:      cfg.API.Executable,
		StartupAttempts: cfg.API.StartupAttempts,
		StartupDelay:    time.Duration(cfg.API.StartupDelaySecs) * time.Second,
	})

	// Spawn the backend before entering the alternate screen so startup
	// progress is visible. A backend that never comes up is not fatal; the
	// TUI starts anyway and shows OFFLINE.
	if cfg.API.AutoStart && client.CheckRunning(context.Background()) != nil {
		fmt.Fprintln(os.Stderr, "backend not running, starting it...")
		if err := client.EnsureRunning(context.Background()); err != nil {
			logger.Warn("backend did not become ready", "error", err)
			fmt.Fprintln(os.Stderr, "backend did not become ready; starting offline")
		}
	}

	archive := openArchive(cfg, logger)
	if archive != nil {
		defer archive.Close()
	}

	// Live config reload keeps long TUI sessions in sync with edits made
	// from another terminal via `filesearch config set`.
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if err := config.Watch(watchCtx, nil); err != nil {
		logger.Warn("config watch unavailable", "error", err)
	}

	monitor := liveness.NewMonitorWithInterval(client,
		time.Duration(cfg.API.HealthIntervalSecs)*time.Second)
	m := chat.New(client, monitor, cfg, archive)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running filesearch: %v\n", err)
		os.Exit(1)
	}

	if cfg.API.StopOnExit && client.SpawnedBackend() {
		if err := client.StopBackend(); err != nil {
			logger.Warn("could not stop the spawned backend", "error", err)
		}
	}
}

// setupTUILogging routes logs to the configured file and returns the logger.
func setupTUILogging(cfg *config.Config) *slog.Logger {
	level := logging.ParseLevel(cfg.Logging.Level)
	path, err := cfg.LogPath()
	if err != nil {
		logger, _ := logging.SetupFileOnly("", level)
		return logger
	}
	logger, _ := logging.SetupFileOnly(path, level)
	return logger
}

// openArchive opens the local conversation archive, or returns nil when
// archiving is disabled or unavailable.
func openArchive(cfg *config.Config, logger *slog.Logger) *history.Archive {
	if !cfg.History.Enabled {
		return nil
	}
	path, err := cfg.HistoryPath()
	if err != nil {
		logger.Warn("conversation archive unavailable", "error", err)
		return nil
	}
	archive, err := history.Open(path, cfg.History.MaxConversations)
	if err != nil {
		logger.Warn("conversation archive unavailable", "error", err)
		return nil
	}
	return archive
}
