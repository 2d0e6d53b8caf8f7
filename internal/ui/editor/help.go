// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// ===== HELP OVERLAY =====

var helpSections = []string{
	"Navigation",
	"Messages",
	"Conversations",
	"Session",
}

// openHelp renders the key reference into the overlay viewport. The
// rendered markdown is cached per width.
func (m *Model) openHelp() {
	if m.helpCache == "" || m.helpForW != m.overlay.Width {
		m.helpCache = m.renderHelp()
		m.helpForW = m.overlay.Width
	}
	m.overlay.SetContent(m.helpCache)
	m.overlay.GotoTop()
	m.mode = modeHelp
}

func (m *Model) renderHelp() string {
	md := m.helpMarkdown()

	style := "light"
	if m.theme.Dark() {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return out
}

func (m *Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# tsedit keys\n")

	groups := m.keys.FullHelp()
	for i, group := range groups {
		if i < len(helpSections) {
			b.WriteString("\n## " + helpSections[i] + "\n\n")
		}
		for _, binding := range group {
			h := binding.Help()
			b.WriteString("- `" + h.Key + "` " + h.Desc + "\n")
		}
	}

	b.WriteString("\n## Editing text\n\n")
	b.WriteString("- `ctrl+s` apply the edit\n")
	b.WriteString("- `ctrl+r` cycle the role of a new message\n")
	b.WriteString("- `esc` cancel without applying\n")
	return b.String()
}
