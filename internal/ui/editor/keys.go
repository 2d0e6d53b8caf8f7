// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import "github.com/charmbracelet/bubbles/key"

// ===== KEY BINDINGS =====

// KeyMap defines every key binding the editor responds to in browse mode.
// Text-entry modes are handled by the textarea and a small fixed set of
// control keys (esc to cancel, ctrl+s to commit).
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	NextPane key.Binding

	Edit        key.Binding
	InsertTail  key.Binding
	InsertHead  key.Binding
	InsertAfter key.Binding
	System      key.Binding
	Delete      key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding

	NewConv    key.Binding
	DeleteConv key.Binding
	Chosen     key.Binding
	Rejected   key.Binding

	Save       key.Binding
	Export     key.Binding
	ExportDPO  key.Binding
	RawView    key.Binding
	ClearSlot  key.Binding
	Help       key.Binding
	Quit       key.Binding
	Back       key.Binding
}

// DefaultKeyMap returns the standard key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "go to bottom"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "edit message"),
		),
		InsertTail: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "append message"),
		),
		InsertHead: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "insert at top"),
		),
		InsertAfter: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "insert after cursor"),
		),
		System: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "edit system prompt"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete message"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move message up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move message down"),
		),
		NewConv: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new conversation"),
		),
		DeleteConv: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete conversation"),
		),
		Chosen: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle chosen"),
		),
		Rejected: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "toggle rejected"),
		),
		Save: key.NewBinding(
			key.WithKeys("w", "ctrl+s"),
			key.WithHelp("w", "save to backup"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export JSONL"),
		),
		ExportDPO: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "export DPO pairs"),
		),
		RawView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "raw view"),
		),
		ClearSlot: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear session"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Edit, k.Save, k.Export, k.Help, k.Quit}
}

// FullHelp returns all bindings, grouped by column for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.NextPane},
		{k.Edit, k.InsertTail, k.InsertHead, k.InsertAfter, k.System, k.Delete, k.MoveUp, k.MoveDown},
		{k.NewConv, k.DeleteConv, k.Chosen, k.Rejected},
		{k.Save, k.Export, k.ExportDPO, k.RawView, k.ClearSlot, k.Help, k.Quit},
	}
}
