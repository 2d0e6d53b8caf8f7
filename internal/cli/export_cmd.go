// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export_cmd.go - Headless export commands.

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/treehole-hk/openai-trainingset-editor/internal/config"
	"github.com/treehole-hk/openai-trainingset-editor/internal/document"
	"github.com/treehole-hk/openai-trainingset-editor/internal/export"
	"github.com/treehole-hk/openai-trainingset-editor/internal/jsonl"
)

// loadDocument parses a file into a document for headless export.
func loadDocument(path string) (*document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	convs, errs := jsonl.ParseReader(f)
	if len(convs) == 0 {
		return nil, fmt.Errorf("%s: no valid conversations (%d invalid lines)", path, len(errs))
	}
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}
	return document.FromConversations(convs), nil
}

// exportOptions builds export options from args and config.
func exportOptions(args Args) *export.Options {
	opts := export.DefaultOptions()
	if dir := config.Global().Export.OutputDir; dir != "" {
		opts.OutputDir = dir
	}
	if args.OutDir != "" {
		opts.OutputDir = args.OutDir
	}
	return opts
}

// HandleExport writes the plain .jsonl export. Returns the exit code.
func HandleExport(args Args) int {
	if args.File == "" {
		fmt.Fprintln(os.Stderr, "usage: tsedit export <file> [--out DIR]")
		return 2
	}

	doc, err := loadDocument(args.File)
	if err != nil {
		color.Red("%v", err)
		return 2
	}

	path, err := export.JSONL(doc, exportOptions(args))
	if err != nil {
		color.Red("export failed: %v", err)
		return 1
	}

	if !args.Quiet {
		color.Green("wrote %s", path)
	}
	return 0
}

// HandleDPO writes the preference-pair export. Returns the exit code.
func HandleDPO(args Args) int {
	if args.File == "" {
		fmt.Fprintln(os.Stderr, "usage: tsedit dpo <file> [--out DIR] [--force]")
		return 2
	}

	doc, err := loadDocument(args.File)
	if err != nil {
		color.Red("%v", err)
		return 2
	}

	if err := export.CheckDPO(doc); err != nil {
		if !errors.Is(err, export.ErrEmptySubset) {
			color.Red("%v", err)
			return 1
		}
		if !args.Force {
			chosen, rejected := doc.CountPreferences()
			color.Yellow("warning: %d chosen / %d rejected - both subsets should be non-empty", chosen, rejected)
			fmt.Fprintln(os.Stderr, "use --force to export anyway")
			return 1
		}
	}

	jsonlPath, csvPath, err := export.DPO(doc, exportOptions(args))
	if err != nil {
		color.Red("export failed: %v", err)
		return 1
	}

	if !args.Quiet {
		color.Green("wrote %s", jsonlPath)
		color.Green("wrote %s", csvPath)
	}
	return 0
}
