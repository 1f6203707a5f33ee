// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command.
//
// Command: ask
// Short:   Ask the agent a single question and print the answer
//
// Examples:
//
//	filesearch ask "what does the Q3 report say about travel?"
//	filesearch ask --json "list every document that mentions invoices"
//	echo "summarize budget.xlsx" | filesearch ask
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/filesearch-tui/internal/backend"
)

// HandleAsk handles the ask command.
func HandleAsk(args Args) {
	query := strings.TrimSpace(args.Query)

	// No query on the command line: read it from stdin when piped.
	if query == "" && !IsTTY() {
		scanner := bufio.NewScanner(os.Stdin)
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		query = strings.TrimSpace(strings.Join(lines, "\n"))
	}
	if query == "" {
		exitErr(errors.New("no question given; try: filesearch ask \"your question\""))
	}

	cfg := loadConfig(args)
	client := newBackendClient(cfg)
	ctx := context.Background()

	if !ensureBackend(ctx, client, cfg, args.Quiet) {
		exitErr(fmt.Errorf("backend is not reachable at %s; start it with `filesearch-backend serve` or pass --url", client.BaseURL()))
	}

	resp, err := client.Chat(ctx, query, sessionID(cfg))
	if err != nil {
		if backend.IsTimeout(err) {
			exitErr(errors.New("the agent took too long to answer; the backend may be overloaded"))
		}
		exitErr(err)
	}

	if args.JSON {
		out, _ := json.Marshal(map[string]string{
			"response":   resp.Response,
			"session_id": resp.SessionID,
			"timestamp":  resp.Timestamp,
		})
		fmt.Println(string(out))
		return
	}

	fmt.Println(renderAnswer(resp.Response))
}

// renderAnswer renders an agent reply as markdown when stdout is a
// color-capable terminal, plain text otherwise.
func renderAnswer(answer string) string {
	if !ColorsEnabled() {
		return answer
	}

	width := TerminalWidth()
	if width > 100 {
		width = 100
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return answer
	}
	out, err := renderer.Render(answer)
	if err != nil {
		return answer
	}
	return strings.TrimRight(out, "\n")
}
