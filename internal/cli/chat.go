// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive line-based chat command.
//
// Command: chat
// Short:   Chat with the agent in a plain REPL (no TUI)
//
// Interactive commands:
//
//	/help, /h      Show available commands
//	/clear, /c     Clear the conversation and the backend session memory
//	/docs          List indexed documents
//	/session       Show the session id
//	/quit, /q      Exit
//	Ctrl+D         Exit
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/filesearch-tui/internal/backend"
	"github.com/jeranaias/filesearch-tui/internal/config"
	"github.com/jeranaias/filesearch-tui/internal/history"
	"github.com/jeranaias/filesearch-tui/internal/model"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// replInput wraps liner with a persistent input-history file.
type replInput struct {
	line        *liner.State
	historyFile string
}

func newREPLInput() *replInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	r := &replInput{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
	return r
}

func (r *replInput) read(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

func (r *replInput) close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

// HandleChat handles the interactive chat command.
func HandleChat(args Args) {
	if !IsTTY() {
		exitErr(errors.New("chat needs an interactive terminal; use `filesearch ask` for piped input"))
	}

	cfg := loadConfig(args)
	client := newBackendClient(cfg)
	ctx := context.Background()

	if !ensureBackend(ctx, client, cfg, args.Quiet) {
		exitErr(fmt.Errorf("backend is not reachable at %s", client.BaseURL()))
	}

	session := sessionID(cfg)
	transcript := model.NewTranscript(session)

	input := newREPLInput()
	defer input.close()

	if !args.Quiet {
		fmt.Println(TitleStyle.Render("filesearch chat"))
		fmt.Println(DimStyle.Render("session " + session + "  |  /help for commands, /quit to exit"))
		fmt.Println()
	}

	for {
		text, err := input.read(PromptStyle.Render("> "))
		if err != nil {
			// Ctrl+D or Ctrl+C ends the session.
			fmt.Println()
			break
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if strings.HasPrefix(text, "/") {
			if quit := runREPLCommand(ctx, client, transcript, session, text); quit {
				break
			}
			continue
		}

		transcript.AddUserMessage(text)
		resp, err := client.Chat(ctx, text, session)
		if err != nil {
			notice := "could not reach the agent: " + err.Error()
			if backend.IsNotRunning(err) {
				notice = "the backend may not be running; restart it and try again"
			}
			transcript.AddErrorMessage(notice)
			fmt.Println(ErrorStyle.Render("! ") + notice)
			continue
		}

		transcript.AddAssistantMessage(resp.Response)
		fmt.Println(renderAnswer(resp.Response))
		fmt.Println()
	}

	archiveTranscript(cfg, transcript)
}

// runREPLCommand executes a /command. Returns true when the REPL should
// exit.
func runREPLCommand(ctx context.Context, client *backend.Client, transcript *model.Transcript, session, text string) bool {
	cmd, _, _ := strings.Cut(text, " ")

	switch cmd {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		fmt.Println(DimStyle.Render("/clear  /docs  /session  /quit"))

	case "/clear", "/c":
		transcript.Clear()
		if _, err := client.ClearSession(ctx, session); err != nil {
			fmt.Println(WarningStyle.Render("could not clear the backend session: " + err.Error()))
		} else {
			fmt.Println(DimStyle.Render("conversation cleared"))
		}

	case "/docs":
		resp, err := client.IndexedDocuments(ctx)
		if err != nil {
			fmt.Println(WarningStyle.Render("could not list documents: " + err.Error()))
			return false
		}
		printDocumentList(resp)

	case "/session":
		fmt.Println(DimStyle.Render("session " + session))

	default:
		fmt.Println(WarningStyle.Render("unknown command: " + cmd))
	}
	return false
}

// archiveTranscript stores the finished conversation in the local archive.
func archiveTranscript(cfg *config.Config, transcript *model.Transcript) {
	if !cfg.History.Enabled || transcript.IsEmpty() {
		return
	}
	path, err := cfg.HistoryPath()
	if err != nil {
		return
	}
	archive, err := history.Open(path, cfg.History.MaxConversations)
	if err != nil {
		return
	}
	defer archive.Close()
	archive.Save(context.Background(), transcript)
}
