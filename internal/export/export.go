// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the edited document to output files.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/treehole-hk/openai-trainingset-editor/internal/document"
	"github.com/treehole-hk/openai-trainingset-editor/internal/jsonl"
	"github.com/treehole-hk/openai-trainingset-editor/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrEmptySubset signals a preference-pair export with zero chosen or zero
// rejected conversations. It is a warning, not a hard failure - callers
// surface an "export anyway" choice and may proceed regardless.
var ErrEmptySubset = errors.New("need at least one chosen and one rejected conversation")

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string

	// Filename overrides the generated output filename (plain export only).
	Filename string

	// Now supplies the clock for date-stamped filenames. Nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir: ".",
	}
}

func (o *Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// =============================================================================
// PLAIN JSONL EXPORT
// =============================================================================

// defaultFilename matches the original download name users already script
// around.
const defaultFilename = "edited_finetune.jsonl"

// JSONL writes the full edited document as one .jsonl file and returns the
// output path. Ephemeral ids are stripped and absent preference tags
// omitted by serialization.
func JSONL(doc *document.Document, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	name := opts.Filename
	if name == "" {
		name = defaultFilename
	}

	outputPath := filepath.Join(opts.OutputDir, name)
	content := jsonl.Serialize(doc.Conversations())
	if err := util.AtomicWriteFile(outputPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return outputPath, nil
}
