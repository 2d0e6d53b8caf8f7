// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the trainingset editor.
//
// This package contains small helpers shared across the application:
//
//   - AtomicWriteFile: crash-safe file writes for exports
//   - TruncateRunes / FirstLine: rune-safe string handling for labels
//   - PadWidth: display-width-aware padding for list columns
package util
