// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command routing for filesearch.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdStatus
	CmdConfig
	CmdIndex
	CmdDocs
	CmdSession
	CmdHistory
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet       bool
	Verbose     bool
	JSON        bool   // Output in JSON format
	NoAutoStart bool   // Do not spawn the backend when it is down
	URL         string // Backend URL override
	Session     string // Session id override

	// Command-specific
	Query      string
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `filesearch - terminal client for a local file-search agent

Filesearch talks to a local agent backend that indexes your documents and
answers questions about them.

Usage:
  filesearch                    Start the TUI (default)
  filesearch ask "question"     Ask a single question and exit
  filesearch chat               Interactive line-based chat
  filesearch status, s          Show backend status
  filesearch config [show|get|set|path]
                                Configuration management
  filesearch index <path>...    Index one or more files
  filesearch docs [list|open]   Indexed documents / backend API docs
  filesearch session [show|new|clear|info]
                                Session management
  filesearch history [list|show|delete]
                                Local conversation archive
  filesearch version            Show version
  filesearch help               Show this help

Config Commands:
  filesearch config show              Show the full configuration
  filesearch config get <key>         Get one value (dot notation, e.g. api.url)
  filesearch config set <key> <val>   Set and persist one value
  filesearch config path              Print the config file path

Session Commands:
  filesearch session show             Show the active session id
  filesearch session new              Rotate to a fresh session id
  filesearch session clear            Clear the backend's session memory
  filesearch session info             Show backend-side session details

History Commands:
  filesearch history list             List archived conversations
    --limit N                         Show at most N entries
  filesearch history show <id>        Print an archived conversation
  filesearch history delete <id>      Delete an archived conversation

Global Flags:
  --url URL         Backend URL (default http://127.0.0.1:8765)
  --session ID      Session id for this invocation
  --no-autostart    Never spawn the backend process
  --json            Machine-readable output where supported
  -q, --quiet       Minimal output
  -v, --verbose     Verbose output

Environment:
  FILESEARCH_API_URL, FILESEARCH_SESSION_ID, FILESEARCH_BACKEND,
  FILESEARCH_NO_AUTOSTART, FILESEARCH_THEME, FILESEARCH_LOG_LEVEL,
  FILESEARCH_LOG_FILE, NO_COLOR

Examples:
  filesearch
  filesearch ask "what does the Q3 report say about travel costs?"
  filesearch index ~/Documents/budget.xlsx
  filesearch config set api.url http://127.0.0.1:9000
`

// Parse parses os.Args and returns the command and its arguments.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given arguments. Split out for testing.
func ParseArgs(argv []string) (Command, Args) {
	args := Args{}

	// Peel off global flags; everything else stays positional.
	var positional []string
	i := 0
	for i < len(argv) {
		arg := argv[i]
		switch {
		case arg == "--json":
			args.JSON = true
		case arg == "-q" || arg == "--quiet":
			args.Quiet = true
		case arg == "-v" || arg == "--verbose":
			args.Verbose = true
		case arg == "--no-autostart":
			args.NoAutoStart = true
		case arg == "--url":
			if i+1 < len(argv) {
				args.URL = argv[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--url="):
			args.URL = strings.TrimPrefix(arg, "--url=")
		case arg == "--session":
			if i+1 < len(argv) {
				args.Session = argv[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--session="):
			args.Session = strings.TrimPrefix(arg, "--session=")
		case arg == "-h" || arg == "--help":
			return CmdHelp, args
		case arg == "--version":
			return CmdVersion, args
		default:
			positional = append(positional, arg)
		}
		i++
	}

	if len(positional) == 0 {
		return CmdTUI, args
	}

	cmd := positional[0]
	rest := positional[1:]
	args.Raw = rest
	if len(rest) > 0 {
		args.Subcommand = rest[0]
	}

	switch cmd {
	case "ask":
		args.Query = strings.Join(rest, " ")
		args.Subcommand = ""
		return CmdAsk, args
	case "chat":
		return CmdChat, args
	case "status", "s":
		return CmdStatus, args
	case "config":
		return CmdConfig, args
	case "index":
		return CmdIndex, args
	case "docs", "documents":
		return CmdDocs, args
	case "session", "sessions":
		return CmdSession, args
	case "history":
		return CmdHistory, args
	case "version":
		return CmdVersion, args
	case "help":
		return CmdHelp, args
	default:
		// Bare words are treated as a question, matching "ask".
		args.Query = strings.Join(positional, " ")
		args.Subcommand = ""
		return CmdAsk, args
	}
}

// HandleHelp prints usage.
func HandleHelp() {
	fmt.Print(usageText)
}

// HandleVersion prints version information, honoring --json.
func HandleVersion(args Args) {
	if args.JSON {
		fmt.Printf("{\"version\":%q,\"commit\":%q,\"built\":%q}\n", Version, GitCommit, BuildDate)
		return
	}
	fmt.Printf("filesearch %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
