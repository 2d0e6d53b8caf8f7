// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles defines the editor's color palette and lipgloss styles.
//
// # Key Types
//
//   - Theme: every style the editor renders with, built once at startup
//
// # Usage
//
//	theme := styles.NewTheme(termenv.ColorProfile(), cfg.UI.Theme)
//	fmt.Print(theme.Header.Render("trainingset editor"))
//
// Colors are lipgloss.AdaptiveColor values so the same theme works on
// light and dark terminals. Role colors and preference indicators are
// exported for use outside the TUI (the CLI status output reuses them).
package styles
