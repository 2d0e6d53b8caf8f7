// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package jsonl

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PrettyPrint re-indents each non-blank line of raw line-delimited JSON for
// the read-only view shown when a file has no recognizable records. Lines
// that are not valid JSON are kept as-is; records are separated by blank
// lines.
func PrettyPrint(text string) string {
	var blocks []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(trimmed), "", "  "); err != nil {
			blocks = append(blocks, trimmed)
			continue
		}
		blocks = append(blocks, buf.String())
	}
	return strings.Join(blocks, "\n\n")
}

// SplitRecords splits the pretty-printed output back into its per-record
// blocks for list display.
func SplitRecords(pretty string) []string {
	if pretty == "" {
		return nil
	}
	return strings.Split(pretty, "\n\n")
}
