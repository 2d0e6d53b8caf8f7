// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/treehole-hk/openai-trainingset-editor/internal/document"
	"github.com/treehole-hk/openai-trainingset-editor/internal/jsonl"
	"github.com/treehole-hk/openai-trainingset-editor/internal/model"
	"github.com/treehole-hk/openai-trainingset-editor/internal/util"
)

// =============================================================================
// PREFERENCE-PAIR EXPORT
// =============================================================================

// CheckDPO reports ErrEmptySubset when either preference subset is empty.
// Callers treat it as a warning and may export anyway.
func CheckDPO(doc *document.Document) error {
	chosen, rejected := doc.CountPreferences()
	if chosen == 0 || rejected == 0 {
		return ErrEmptySubset
	}
	return nil
}

// DPO writes the preference-pair export: a .jsonl file holding the full
// document with inline preference tags, and a .csv file pairing the chosen
// and rejected subsets row by row. Both files share one base name encoding
// the subset counts and export date. Returns the two output paths.
func DPO(doc *document.Document, opts *Options) (string, string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	convs := doc.Conversations()
	var chosen, rejected []*model.Conversation
	for _, c := range convs {
		switch c.Preference {
		case model.PreferenceChosen:
			chosen = append(chosen, c)
		case model.PreferenceRejected:
			rejected = append(rejected, c)
		}
	}

	base := fmt.Sprintf("dpo_export_%dchosen_%drejected_%s",
		len(chosen), len(rejected), opts.now().Format("2006-01-02"))

	jsonlPath := filepath.Join(opts.OutputDir, base+".jsonl")
	if err := util.AtomicWriteFile(jsonlPath, []byte(jsonl.Serialize(convs)), 0644); err != nil {
		return "", "", fmt.Errorf("write dpo jsonl: %w", err)
	}

	csvPath := filepath.Join(opts.OutputDir, base+".csv")
	if err := writePairCSV(csvPath, chosen, rejected); err != nil {
		return "", "", fmt.Errorf("write dpo csv: %w", err)
	}

	return jsonlPath, csvPath, nil
}

// writePairCSV writes a two-column CSV pairing chosen[i] with rejected[i].
// Rows run to the longer subset; the shorter side gets an empty cell.
func writePairCSV(path string, chosen, rejected []*model.Conversation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"chosen", "rejected"}); err != nil {
		return err
	}

	rows := len(chosen)
	if len(rejected) > rows {
		rows = len(rejected)
	}
	for i := 0; i < rows; i++ {
		var row [2]string
		if i < len(chosen) {
			row[0] = jsonl.Serialize([]*model.Conversation{chosen[i]})
		}
		if i < len(rejected) {
			row[1] = jsonl.Serialize([]*model.Conversation{rejected[i]})
		}
		if err := w.Write(row[:]); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}
