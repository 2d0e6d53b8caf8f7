// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ===== THEME =====

// Theme bundles every lipgloss style the editor renders with. Build one
// with NewTheme at startup and pass it down; styles are plain values and
// safe to copy.
type Theme struct {
	profile termenv.Profile
	dark    bool

	// Chrome
	Header      lipgloss.Style
	HeaderFile  lipgloss.Style
	HeaderDirty lipgloss.Style
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusInfo  lipgloss.Style
	StatusError lipgloss.Style

	// Conversation list
	ListPane         lipgloss.Style
	ListPaneFocused  lipgloss.Style
	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListItemDirty    lipgloss.Style
	MarkChosen       lipgloss.Style
	MarkRejected     lipgloss.Style

	// Message pane
	MessagePane        lipgloss.Style
	MessagePaneFocused lipgloss.Style
	RoleSystem         lipgloss.Style
	RoleUser           lipgloss.Style
	RoleAssistant      lipgloss.Style
	MessageBody        lipgloss.Style
	MessageSelected    lipgloss.Style

	// Editing
	EditorFrame lipgloss.Style
	EditorTitle lipgloss.Style

	// Dialogs and overlays
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogButton lipgloss.Style
	DialogActive lipgloss.Style
	ErrorPanel   lipgloss.Style
	ErrorLine    lipgloss.Style
	HelpOverlay  lipgloss.Style
	RawFrame     lipgloss.Style

	// Generic
	Muted lipgloss.Style
	Bold  lipgloss.Style
}

// NewTheme builds a Theme for the given color profile. The mode string
// comes from config ("dark", "light", or "auto"); auto defers to the
// terminal's reported background.
func NewTheme(profile termenv.Profile, mode string) *Theme {
	dark := true
	switch mode {
	case "light":
		dark = false
	case "auto":
		dark = termenv.HasDarkBackground()
	}

	t := &Theme{profile: profile, dark: dark}
	t.initStyles()
	return t
}

// Dark reports whether the theme resolved to the dark palette.
func (t *Theme) Dark() bool { return t.dark }

func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Foreground(TextInverted).
		Background(Purple).
		Bold(true).
		Padding(0, 1)
	t.HeaderFile = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)
	t.HeaderDirty = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceAlt).
		Padding(0, 1)
	t.StatusKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.StatusInfo = lipgloss.NewStyle().
		Foreground(Emerald)
	t.StatusError = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ListPane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
	t.ListPaneFocused = t.ListPane.
		BorderForeground(BorderFocus)
	t.ListItem = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.ListItemSelected = lipgloss.NewStyle().
		Foreground(TextInverted).
		Background(Purple).
		Bold(true)
	t.ListItemDirty = lipgloss.NewStyle().
		Foreground(Amber)
	t.MarkChosen = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)
	t.MarkRejected = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.MessagePane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
	t.MessagePaneFocused = t.MessagePane.
		BorderForeground(BorderFocus)
	t.RoleSystem = lipgloss.NewStyle().
		Foreground(SystemRoleColor).
		Bold(true)
	t.RoleUser = lipgloss.NewStyle().
		Foreground(UserRoleColor).
		Bold(true)
	t.RoleAssistant = lipgloss.NewStyle().
		Foreground(AssistantRoleColor).
		Bold(true)
	t.MessageBody = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.MessageSelected = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(Purple).
		PaddingLeft(1)

	t.EditorFrame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderFocus).
		Padding(0, 1)
	t.EditorTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Padding(1, 2)
	t.DialogTitle = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)
	t.DialogButton = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)
	t.DialogActive = lipgloss.NewStyle().
		Foreground(TextInverted).
		Background(Purple).
		Bold(true).
		Padding(0, 2)
	t.ErrorPanel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)
	t.ErrorLine = lipgloss.NewStyle().
		Foreground(Rose)
	t.HelpOverlay = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)
	t.RawFrame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.Bold = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)
}

// RoleStyle returns the header style for a message role.
func (t *Theme) RoleStyle(role string) lipgloss.Style {
	switch role {
	case "system":
		return t.RoleSystem
	case "user":
		return t.RoleUser
	case "assistant":
		return t.RoleAssistant
	default:
		return t.Muted
	}
}
