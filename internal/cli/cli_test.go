// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "testing"

func TestParseArgs_Defaults(t *testing.T) {
	cmd, args := ParseArgs(nil)
	if cmd != CmdTUI {
		t.Errorf("cmd = %v, want TUI", cmd)
	}
	if args.JSON || args.Quiet || args.NoAutoStart {
		t.Error("no flags should be set by default")
	}
}

func TestParseArgs_Commands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{[]string{"ask", "hello"}, CmdAsk},
		{[]string{"chat"}, CmdChat},
		{[]string{"status"}, CmdStatus},
		{[]string{"s"}, CmdStatus},
		{[]string{"config", "show"}, CmdConfig},
		{[]string{"index", "a.pdf"}, CmdIndex},
		{[]string{"docs"}, CmdDocs},
		{[]string{"documents", "open"}, CmdDocs},
		{[]string{"session", "new"}, CmdSession},
		{[]string{"history", "list"}, CmdHistory},
		{[]string{"version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"--help"}, CmdHelp},
		{[]string{"--version"}, CmdVersion},
	}

	for _, tc := range tests {
		cmd, _ := ParseArgs(tc.argv)
		if cmd != tc.want {
			t.Errorf("ParseArgs(%v) = %v, want %v", tc.argv, cmd, tc.want)
		}
	}
}

func TestParseArgs_AskJoinsQuery(t *testing.T) {
	_, args := ParseArgs([]string{"ask", "what", "is", "in", "budget.xlsx"})
	if args.Query != "what is in budget.xlsx" {
		t.Errorf("Query = %q", args.Query)
	}
}

func TestParseArgs_BareWordsAreAQuestion(t *testing.T) {
	cmd, args := ParseArgs([]string{"summarize", "the", "report"})
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v, want Ask", cmd)
	}
	if args.Query != "summarize the report" {
		t.Errorf("Query = %q", args.Query)
	}
}

func TestParseArgs_GlobalFlags(t *testing.T) {
	cmd, args := ParseArgs([]string{"--json", "--no-autostart", "-q", "status"})
	if cmd != CmdStatus {
		t.Fatalf("cmd = %v, want Status", cmd)
	}
	if !args.JSON || !args.NoAutoStart || !args.Quiet {
		t.Error("global flags should parse regardless of position")
	}
}

func TestParseArgs_ValueFlags(t *testing.T) {
	_, args := ParseArgs([]string{"--url", "http://127.0.0.1:9000", "--session=review", "status"})
	if args.URL != "http://127.0.0.1:9000" {
		t.Errorf("URL = %q", args.URL)
	}
	if args.Session != "review" {
		t.Errorf("Session = %q", args.Session)
	}
}

func TestParseArgs_Subcommand(t *testing.T) {
	_, args := ParseArgs([]string{"config", "set", "api.url", "http://x"})
	if args.Subcommand != "set" {
		t.Errorf("Subcommand = %q", args.Subcommand)
	}
	if positional(args, 1) != "api.url" || positional(args, 2) != "http://x" {
		t.Error("positional args should follow the subcommand")
	}
}

func TestParseLimitFlag(t *testing.T) {
	if n := parseLimitFlag([]string{"list", "--limit", "5"}); n != 5 {
		t.Errorf("limit = %d, want 5", n)
	}
	if n := parseLimitFlag([]string{"list", "--limit=3"}); n != 3 {
		t.Errorf("limit = %d, want 3", n)
	}
	if n := parseLimitFlag([]string{"list"}); n != 0 {
		t.Errorf("limit = %d, want 0", n)
	}
}
