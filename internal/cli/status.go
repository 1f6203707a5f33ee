// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Backend status command.
//
// Command: status (alias: s)
// Short:   Show backend liveness, version, and index size
//
// Examples:
//
//	filesearch status
//	filesearch status --json
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jeranaias/filesearch-tui/internal/backend"
)

// statusReport is the JSON shape of the status command output.
type statusReport struct {
	Online      bool   `json:"online"`
	URL         string `json:"url"`
	Version     string `json:"version,omitempty"`
	Uptime      string `json:"uptime,omitempty"`
	IndexedDocs int    `json:"indexed_documents"`
	SessionID   string `json:"session_id"`
	Error       string `json:"error,omitempty"`
}

// HandleStatus handles the status command.
func HandleStatus(args Args) {
	cfg := loadConfig(args)
	client := newBackendClient(cfg)
	ctx := context.Background()

	report := statusReport{
		URL:       client.BaseURL(),
		SessionID: sessionID(cfg),
	}

	health, err := client.Health(ctx)
	if err != nil {
		report.Error = err.Error()
		if backend.IsNotRunning(err) {
			report.Error = "backend is not running"
		}
	} else {
		report.Online = true
		report.Version = health.Version
		report.Uptime = health.Uptime
		report.IndexedDocs = health.IndexedDocuments
	}

	if args.JSON {
		out, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(out))
		return
	}

	fmt.Println(TitleStyle.Render("filesearch status"))
	if report.Online {
		fmt.Printf("%s %s\n", LabelStyle.Render("Backend"), RenderStatus("online"))
		fmt.Printf("%s %s\n", LabelStyle.Render("URL"), ValueStyle.Render(report.URL))
		fmt.Printf("%s %s\n", LabelStyle.Render("Version"), ValueStyle.Render(report.Version))
		if report.Uptime != "" {
			fmt.Printf("%s %s\n", LabelStyle.Render("Uptime"), ValueStyle.Render(report.Uptime))
		}
		fmt.Printf("%s %s\n", LabelStyle.Render("Indexed"), ValueStyle.Render(fmt.Sprintf("%d documents", report.IndexedDocs)))
	} else {
		fmt.Printf("%s %s\n", LabelStyle.Render("Backend"), RenderStatus("offline"))
		fmt.Printf("%s %s\n", LabelStyle.Render("URL"), ValueStyle.Render(report.URL))
		fmt.Printf("%s %s\n", LabelStyle.Render("Detail"), DimStyle.Render(report.Error))
		fmt.Println()
		fmt.Println(DimStyle.Render("Start it with `filesearch-backend serve`, or let the TUI spawn it."))
	}
	fmt.Printf("%s %s\n", LabelStyle.Render("Session"), ValueStyle.Render(report.SessionID))
}
