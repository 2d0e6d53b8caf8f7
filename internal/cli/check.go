// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// check.go - Headless lint command for .jsonl dataset files.

package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/treehole-hk/openai-trainingset-editor/internal/jsonl"
	"github.com/treehole-hk/openai-trainingset-editor/internal/model"
)

// HandleCheck lints a .jsonl file and prints per-line errors.
// Returns the process exit code: 0 clean, 1 errors found, 2 unusable input.
func HandleCheck(args Args) int {
	if args.File == "" {
		fmt.Fprintln(os.Stderr, "usage: tsedit check <file>")
		return 2
	}

	f, err := os.Open(args.File)
	if err != nil {
		color.Red("cannot open %s: %v", args.File, err)
		return 2
	}
	defer f.Close()

	convs, errs := jsonl.ParseReader(f)

	if !args.Quiet {
		for _, e := range errs {
			color.Red("  %s", e)
		}
	}

	var messages int
	chosen, rejected := 0, 0
	for _, c := range convs {
		messages += len(c.Messages)
		switch c.Preference {
		case model.PreferenceChosen:
			chosen++
		case model.PreferenceRejected:
			rejected++
		}
	}

	fmt.Printf("%s: %d conversations, %d messages",
		args.File, len(convs), messages)
	if chosen > 0 || rejected > 0 {
		fmt.Printf(", %d chosen / %d rejected", chosen, rejected)
	}
	fmt.Println()

	switch {
	case len(convs) == 0 && len(errs) > 0:
		color.Red("unrecognized format: no valid conversations")
		return 2
	case len(errs) > 0:
		color.Yellow("%d invalid line(s)", len(errs))
		return 1
	default:
		color.Green("OK")
		return 0
	}
}
