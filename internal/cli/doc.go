// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements command-line parsing and the headless commands.
//
// The default command opens the TUI editor; check, export, and dpo run
// without a terminal UI so datasets can be validated and exported from
// scripts and CI.
//
// # Key Types
//
//   - Command: the dispatch enum (CmdTUI, CmdCheck, CmdExport, CmdDPO, ...)
//   - Args: parsed global and command flags
//   - ArgParser: shared flag/positional parsing
//
// # Usage
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdCheck:
//		os.Exit(cli.HandleCheck(args))
//	}
package cli
