// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

func TestParseArgsDefaultTUI(t *testing.T) {
	cmd, args := parseArgs(nil)
	if cmd != CmdTUI {
		t.Errorf("cmd = %v, want CmdTUI", cmd)
	}
	if args.File != "" {
		t.Errorf("File = %q, want empty", args.File)
	}
}

func TestParseArgsBareFileOpensTUI(t *testing.T) {
	cmd, args := parseArgs([]string{"train.jsonl"})
	if cmd != CmdTUI {
		t.Errorf("cmd = %v, want CmdTUI", cmd)
	}
	if args.File != "train.jsonl" {
		t.Errorf("File = %q, want train.jsonl", args.File)
	}
}

func TestParseArgsCheck(t *testing.T) {
	cmd, args := parseArgs([]string{"check", "data.jsonl", "-q"})
	if cmd != CmdCheck {
		t.Errorf("cmd = %v, want CmdCheck", cmd)
	}
	if args.File != "data.jsonl" {
		t.Errorf("File = %q", args.File)
	}
	if !args.Quiet {
		t.Error("quiet flag not picked up")
	}
}

func TestParseArgsDPOFlags(t *testing.T) {
	cmd, args := parseArgs([]string{"dpo", "data.jsonl", "--out", "/tmp/exports", "--force"})
	if cmd != CmdDPO {
		t.Errorf("cmd = %v, want CmdDPO", cmd)
	}
	if args.OutDir != "/tmp/exports" {
		t.Errorf("OutDir = %q", args.OutDir)
	}
	if !args.Force {
		t.Error("force flag not picked up")
	}
}

func TestParseArgsVersionAndHelp(t *testing.T) {
	if cmd, _ := parseArgs([]string{"version"}); cmd != CmdVersion {
		t.Errorf("version: cmd = %v", cmd)
	}
	if cmd, _ := parseArgs([]string{"help"}); cmd != CmdHelp {
		t.Errorf("help: cmd = %v", cmd)
	}
	if cmd, _ := parseArgs([]string{"-h"}); cmd != CmdHelp {
		t.Errorf("-h: cmd = %v", cmd)
	}
}

func TestArgParserFormats(t *testing.T) {
	p := NewArgParser([]string{"data.jsonl", "--out=/x", "--force", "-q", "value"})

	if p.Positional(0) != "data.jsonl" {
		t.Errorf("Positional(0) = %q", p.Positional(0))
	}
	if p.Flag("out") != "/x" {
		t.Errorf("Flag(out) = %q", p.Flag("out"))
	}
	if !p.BoolFlag("force") {
		t.Error("BoolFlag(force) = false")
	}
	if p.Flag("q") != "value" {
		t.Errorf("Flag(q) = %q", p.Flag("q"))
	}
	if p.HasFlag("missing") {
		t.Error("HasFlag(missing) = true")
	}
}

func TestArgParserExplicitBool(t *testing.T) {
	p := NewArgParser([]string{"--force=false", "--color=true"})
	if p.BoolFlag("force") {
		t.Error("force should be explicitly false")
	}
	if !p.BoolFlag("color") {
		t.Error("color should be explicitly true")
	}
}

func TestWrapTextPreservesShortLines(t *testing.T) {
	in := "short line\nanother"
	if got := WrapText(in, 40); got != in {
		t.Errorf("WrapText() = %q, want unchanged", got)
	}
}

func TestWrapTextWrapsLongLines(t *testing.T) {
	in := "aaa bbb ccc ddd eee fff"
	got := WrapText(in, 12)
	for _, line := range splitLines(got) {
		if len(line) > 12 {
			t.Errorf("line %q exceeds width", line)
		}
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
