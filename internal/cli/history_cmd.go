// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - Local conversation archive command.
//
// Command: history
// Short:   List, show, and delete archived conversations
//
// Examples:
//
//	filesearch history list
//	filesearch history list --limit 5
//	filesearch history show 12
//	filesearch history delete 12
package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/filesearch-tui/internal/config"
	"github.com/jeranaias/filesearch-tui/internal/history"
	"github.com/jeranaias/filesearch-tui/internal/model"
)

// HandleHistory handles the history command.
func HandleHistory(args Args) {
	cfg := config.Global()
	path, err := cfg.HistoryPath()
	if err != nil {
		exitErr(err)
	}
	archive, err := history.Open(path, cfg.History.MaxConversations)
	if err != nil {
		exitErr(err)
	}
	defer archive.Close()

	ctx := context.Background()

	switch args.Subcommand {
	case "", "list":
		limit := parseLimitFlag(args.Raw)
		items, err := archive.List(ctx, limit)
		if err != nil {
			exitErr(err)
		}
		if len(items) == 0 {
			fmt.Println(DimStyle.Render("No archived conversations."))
			return
		}
		for _, item := range items {
			fmt.Printf("%s %s %s\n",
				ValueStyle.Render(fmt.Sprintf("%4d", item.ID)),
				DimStyle.Render(item.UpdatedAt.Format("2006-01-02 15:04")),
				item.Title)
		}

	case "show":
		id, err := parseArchiveID(positional(args, 1))
		if err != nil {
			exitErr(err)
		}
		tr, err := archive.Get(ctx, id)
		if err != nil {
			exitErr(err)
		}
		printTranscript(tr)

	case "delete":
		id, err := parseArchiveID(positional(args, 1))
		if err != nil {
			exitErr(err)
		}
		if err := archive.Delete(ctx, id); err != nil {
			exitErr(err)
		}
		fmt.Println(SuccessStyle.Render("deleted ") + fmt.Sprintf("conversation %d", id))

	default:
		exitErr(fmt.Errorf("unknown history subcommand %q (try list, show, delete)", args.Subcommand))
	}
}

// printTranscript prints an archived conversation.
func printTranscript(tr *model.Transcript) {
	fmt.Println(TitleStyle.Render(tr.Title()))
	fmt.Println(DimStyle.Render("session " + tr.SessionID))
	fmt.Println()
	for _, msg := range tr.Messages {
		label := msg.Role.DisplayName()
		style := ValueStyle
		if msg.IsError {
			label = "error"
			style = ErrorStyle
		}
		fmt.Printf("%s %s\n%s\n\n",
			style.Bold(true).Render(label),
			DimStyle.Render(msg.Timestamp.Format("2006-01-02 15:04")),
			msg.Content)
	}
}

// parseArchiveID parses a conversation id argument.
func parseArchiveID(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("a conversation id is required; see `filesearch history list`")
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid conversation id %q", s)
	}
	return id, nil
}

// parseLimitFlag extracts --limit N from raw args; 0 means no limit.
func parseLimitFlag(raw []string) int {
	for i, arg := range raw {
		if arg == "--limit" && i+1 < len(raw) {
			if n, err := strconv.Atoi(raw[i+1]); err == nil && n > 0 {
				return n
			}
		}
		if strings.HasPrefix(arg, "--limit=") {
			if n, err := strconv.Atoi(strings.TrimPrefix(arg, "--limit=")); err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}
