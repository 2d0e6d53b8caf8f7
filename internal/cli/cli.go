// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for tsedit.

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
	CmdCheck
	CmdExport
	CmdDPO
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool

	// Command-specific
	File   string
	OutDir string
	Force  bool

	// Raw args (remaining after command extraction)
	Raw []string
}

const usageText = `tsedit - conversation dataset editor for fine-tuning JSONL files

Tsedit edits OpenAI-style fine-tuning datasets: one JSON object per line,
each with a "messages" array. It supports preference tagging for DPO-style
exports and keeps a durable local backup of unsaved work.

Usage:
  tsedit [file]              Open the TUI editor (optionally loading a file)
  tsedit check <file>        Lint a .jsonl file and report per-line errors
  tsedit export <file>       Export the file as edited_finetune.jsonl
  tsedit dpo <file>          Preference-pair export (.jsonl + .csv)
  tsedit version             Show version information
  tsedit help                Show this help

Check Command:
  tsedit check data.jsonl           Report parse errors with line numbers
    -q, --quiet                     Only print the summary line

Export Commands:
  tsedit export data.jsonl          Plain export of the full document
    --out DIR                       Output directory (default: current)
  tsedit dpo data.jsonl             Paired chosen/rejected export
    --out DIR                       Output directory (default: current)
    --force                         Export even when a subset is empty

Global Flags:
  -q, --quiet     Minimal output
  -v, --verbose   Debug output

Environment:
  TSEDIT_EXPORT_DIR    Default export directory
  TSEDIT_BACKUP_DB     Backup database path
  TSEDIT_THEME         UI theme (dark, light, auto)
  NO_COLOR             Disable colored output

Examples:
  tsedit                             Start the editor
  tsedit train.jsonl                 Edit a dataset
  tsedit check train.jsonl           Validate before training
  tsedit dpo train.jsonl --out ./exports

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("tsedit version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

func parseArgs(argv []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	rest := remaining[1:]
	parsed.Raw = rest

	switch cmd {
	case "tui":
		parseFileArgs(&parsed, rest)
		return CmdTUI, parsed

	case "check", "lint":
		parseFileArgs(&parsed, rest)
		return CmdCheck, parsed

	case "export":
		parseFileArgs(&parsed, rest)
		return CmdExport, parsed

	case "dpo":
		parseFileArgs(&parsed, rest)
		return CmdDPO, parsed

	case "version", "--version", "-V":
		return CmdVersion, parsed

	case "help", "--help", "-h":
		return CmdHelp, parsed

	default:
		// A bare path argument opens the editor on that file.
		parsed.File = remaining[0]
		parseFileArgs(&parsed, rest)
		return CmdTUI, parsed
	}
}

// parseGlobalFlags extracts global flags, returning the remaining args.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var args Args
	remaining := make([]string, 0, len(argv))

	for _, arg := range argv {
		switch arg {
		case "-q", "--quiet":
			args.Quiet = true
		case "-v", "--verbose":
			args.Verbose = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, args
}

// parseFileArgs fills command-specific fields from the remaining args.
func parseFileArgs(args *Args, rest []string) {
	parser := NewArgParser(rest)
	if args.File == "" {
		args.File = parser.Positional(0)
	}
	args.OutDir = parser.FlagOrDefault("out", args.OutDir)
	args.Force = parser.BoolFlag("force")
}
