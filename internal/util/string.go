// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// UNICODE: Rune-aware truncation preserves multi-byte characters.
// Subject labels and list columns go through these helpers so a UTF-8
// conversation never gets cut mid-character.

// TruncateRunes caps a string at maxRunes characters, appending "..." when
// anything was cut. The ellipsis does not count against the cap, matching
// the label rule for conversation subjects.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

// FirstLine returns the first line of s with surrounding whitespace removed.
func FirstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

// PadWidth pads a string to the given display width with spaces, accounting
// for double-width (CJK) characters. Strings wider than the target are
// returned unchanged.
func PadWidth(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// ClampWidth truncates a string to a maximum display width, appending "..."
// when anything was cut.
func ClampWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// IntToStr converts an int to its decimal string form.
func IntToStr(n int) string {
	return strconv.Itoa(n)
}
