// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// session_cmd.go - Session management command.
//
// Command: session (alias: sessions)
// Short:   Show, rotate, or clear the chat session
//
// Examples:
//
//	filesearch session show
//	filesearch session new
//	filesearch session clear
//	filesearch session info
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jeranaias/filesearch-tui/internal/session"
)

// HandleSession handles the session command.
func HandleSession(args Args) {
	cfg := loadConfig(args)
	mgr := session.NewManager(cfg)
	ctx := context.Background()

	switch args.Subcommand {
	case "", "show":
		fmt.Println(mgr.Current())

	case "new":
		id, err := mgr.Rotate()
		if err != nil {
			exitErr(err)
		}
		fmt.Println(SuccessStyle.Render("new session ") + id)

	case "clear":
		client := newBackendClient(cfg)
		resp, err := client.ClearSession(ctx, mgr.Current())
		if err != nil {
			exitErr(err)
		}
		fmt.Println(SuccessStyle.Render("cleared ") + resp.Message)

	case "info":
		client := newBackendClient(cfg)
		info, err := client.SessionInfo(ctx, mgr.Current())
		if err != nil {
			exitErr(err)
		}
		if args.JSON {
			out, _ := json.MarshalIndent(info, "", "  ")
			fmt.Println(string(out))
			return
		}
		if !info.Exists {
			fmt.Println(DimStyle.Render("session " + mgr.Current() + " has no backend-side memory yet"))
			return
		}
		fmt.Printf("%s %s\n", LabelStyle.Render("Session"), ValueStyle.Render(mgr.Current()))
		fmt.Printf("%s %s\n", LabelStyle.Render("Created"), ValueStyle.Render(info.CreatedAt))
		fmt.Printf("%s %d\n", LabelStyle.Render("Messages"), info.MessageCount)

	default:
		exitErr(fmt.Errorf("unknown session subcommand %q (try show, new, clear, info)", args.Subcommand))
	}
}
