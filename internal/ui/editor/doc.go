// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor implements the interactive TUI for editing training
// set files.
//
// # Key Types
//
//   - Model: the root Bubble Tea model; two-pane layout with a
//     conversation list on the left and the selected conversation's
//     messages on the right
//   - KeyMap: all key bindings, built with bubbles/key
//
// # Usage
//
//	m := editor.New(sess, cfg, theme, watcher)
//	p := tea.NewProgram(m, tea.WithAltScreen())
//	_, err := p.Run()
//
// Input modes are explicit: browsing, text entry (message, system
// prompt, insert), confirmation dialogs for destructive switches, and
// full-screen overlays for the raw JSON view and the help reference.
// Mutations go through the session's document; the model never touches
// conversation state directly except through document operations.
package editor
