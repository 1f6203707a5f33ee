// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI command surface: argument parsing,
// one-shot questions, a line-based chat REPL, status and configuration
// commands, document management, and the local conversation archive.
//
// Every command talks to the same file-search backend the TUI uses. Output
// is TTY-aware: colors and markdown rendering are dropped when stdout is a
// pipe or NO_COLOR is set.
package cli
