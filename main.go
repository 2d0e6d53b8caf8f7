// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tsedit is a terminal editor for JSONL conversation training sets.
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treehole-hk/openai-trainingset-editor/internal/cli"
	"github.com/treehole-hk/openai-trainingset-editor/internal/config"
	"github.com/treehole-hk/openai-trainingset-editor/internal/session"
	"github.com/treehole-hk/openai-trainingset-editor/internal/storage"
	"github.com/treehole-hk/openai-trainingset-editor/internal/ui/editor"
	"github.com/treehole-hk/openai-trainingset-editor/internal/ui/styles"
	"github.com/treehole-hk/openai-trainingset-editor/internal/watch"
)

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdCheck:
		os.Exit(cli.HandleCheck(args))
	case cli.CmdExport:
		os.Exit(cli.HandleExport(args))
	case cli.CmdDPO:
		os.Exit(cli.HandleDPO(args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	case cli.CmdTUI:
		os.Exit(runTUI(args))
	}
}

func runTUI(args cli.Args) int {
	if err := cli.RequiresTTY("the editor"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg := config.Global()

	var store *storage.BackupStore
	if cfg.Backup.Enabled {
		dbPath := cfg.Backup.DBPath
		if dbPath == "" {
			p, err := storage.DefaultPath()
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: backup disabled: %v\n", err)
			}
			dbPath = p
		}
		if dbPath != "" {
			s, err := storage.NewBackupStore(dbPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: backup disabled: %v\n", err)
			} else {
				store = s
				defer store.Close()
			}
		}
	}

	sess := session.NewManager(store)
	if args.File != "" {
		if err := sess.LoadFile(args.File); err != nil {
			fmt.Fprintf(os.Stderr, "cannot open %s: %v\n", args.File, err)
			return 1
		}
	}

	var watcher watch.FileWatcher
	if cfg.Watch.Enabled && args.File != "" {
		debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
		w, err := watch.New(args.File, debounce)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: file watching disabled: %v\n", err)
		} else {
			watcher = w
			defer w.Close()
		}
	}

	theme := styles.NewTheme(cli.GetColorProfile(), cfg.UI.Theme)
	m := editor.New(sess, cfg, theme, watcher)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "editor error: %v\n", err)
		return 1
	}
	return 0
}
