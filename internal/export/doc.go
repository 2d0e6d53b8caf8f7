// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the edited document to output files.
//
// Two artifacts are supported:
//
//   - Plain download: the full document as one .jsonl file
//   - Preference-pair export: a .jsonl file annotated with preference tags
//     plus a .csv pairing the chosen and rejected subsets column-wise
//
// # Usage
//
// Plain export:
//
//	path, err := export.JSONL(doc, opts)
//
// Preference-pair export (check the precondition first so the caller can
// offer "export anyway"):
//
//	if err := export.CheckDPO(doc); err != nil { ... warn ... }
//	jsonlPath, csvPath, err := export.DPO(doc, opts)
package export
