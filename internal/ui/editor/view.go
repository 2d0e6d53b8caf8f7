// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/treehole-hk/openai-trainingset-editor/internal/document"
	"github.com/treehole-hk/openai-trainingset-editor/internal/session"
	"github.com/treehole-hk/openai-trainingset-editor/internal/ui/styles"
	"github.com/treehole-hk/openai-trainingset-editor/internal/util"
)

// Fixed rows and columns consumed by chrome around the content panes:
// header, status bar, and pane borders with padding.
const (
	chromeHeight   = 4
	paneFrameWidth = 6
)

// View renders the full screen for the current mode.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.renderHeader()
	status := m.renderStatusBar()
	contentH := m.height - chromeHeight
	if contentH < 3 {
		contentH = 3
	}

	var body string
	switch m.mode {
	case modeRaw:
		body = m.theme.RawFrame.Render(m.overlay.View())
	case modeHelp:
		body = m.theme.HelpOverlay.Render(m.overlay.View())
	case modeConfirmSwitch, modeConfirmQuit:
		body = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.renderConfirmDialog())
	case modeDPOWarn:
		body = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.renderDPODialog())
	default:
		left := m.renderList(contentH)
		var right string
		if m.mode == modeEditText {
			right = m.renderEditor()
		} else {
			right = m.renderMessages()
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

// ===== HEADER =====

func (m *Model) renderHeader() string {
	doc := m.sess.Document()
	title := m.theme.Header.Render(" tsedit ")

	name := "(no file)"
	if p := m.sess.SourcePath(); p != "" {
		name = filepath.Base(p)
	}
	file := m.theme.HeaderFile.Render(name)

	chosen, rejected := doc.CountPreferences()
	counts := m.theme.Muted.Render(fmt.Sprintf("%d conversations · %s%d %s%d",
		doc.Len(),
		styles.IndicatorChosen, chosen,
		styles.IndicatorRejected, rejected))

	dirty := ""
	if doc.IsDirty() {
		dirty = m.theme.HeaderDirty.Render(fmt.Sprintf(" %s %d unsaved", styles.IndicatorDirty, doc.DirtyCount()))
	}
	changed := ""
	if m.fileChanged {
		note := " file changed on disk"
		if m.fileRemoved {
			note = " file removed on disk"
		}
		changed = m.theme.StatusError.Render(note)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", file, "  ", counts, dirty, changed)
}

// ===== CONVERSATION LIST =====

func (m *Model) renderList(contentH int) string {
	doc := m.sess.Document()
	innerW := m.listWidth() - 4
	rows := contentH

	selected := m.sess.Selected()
	offset := 0
	if selected != session.NoSelection && selected >= rows {
		offset = selected - rows + 1
	}

	var b strings.Builder
	if doc.Len() == 0 {
		b.WriteString(m.theme.Muted.Render("No conversations."))
		b.WriteString("\n\n")
		b.WriteString(m.theme.Muted.Render("n to create one"))
	}
	convs := doc.Conversations()
	for i := offset; i < len(convs) && i-offset < rows; i++ {
		conv := convs[i]

		mark := " "
		switch conv.Preference {
		case "chosen":
			mark = m.theme.MarkChosen.Render(styles.IndicatorChosen)
		case "rejected":
			mark = m.theme.MarkRejected.Render(styles.IndicatorRejected)
		}
		dirty := " "
		if doc.IsFieldDirty(document.PrefKey(i)) || doc.IsFieldDirty(document.OrderKey(i)) {
			dirty = m.theme.ListItemDirty.Render(styles.IndicatorDirty)
		}

		subject := util.TruncateRunes(conv.Subject(), innerW-8)
		line := fmt.Sprintf("%s%s %3d %s", dirty, mark, i+1, subject)
		if i == selected {
			line = m.theme.ListItemSelected.Width(innerW).Render(line)
			line += "\n" + m.theme.Muted.Render("      "+util.TruncateRunes(conv.StatsLine(), innerW-6))
		} else {
			line = m.theme.ListItem.Render(line)
		}
		b.WriteString(line)
		if i < len(convs)-1 {
			b.WriteString("\n")
		}
	}

	pane := m.theme.ListPane
	if m.pane == paneList && m.mode == modeBrowse {
		pane = m.theme.ListPaneFocused
	}
	out := pane.Width(m.listWidth()).Height(contentH).Render(b.String())

	if errs := m.sess.ParseErrors(); len(errs) > 0 {
		out = lipgloss.JoinVertical(lipgloss.Left, out, m.renderParseErrors(errs))
	}
	return out
}

func (m *Model) renderParseErrors(errs []string) string {
	shown := errs
	if len(shown) > 3 {
		shown = shown[:3]
	}
	var b strings.Builder
	for i, e := range shown {
		b.WriteString(m.theme.ErrorLine.Render(util.TruncateRunes(e, m.listWidth()-6)))
		if i < len(shown)-1 {
			b.WriteString("\n")
		}
	}
	if len(errs) > len(shown) {
		b.WriteString("\n")
		b.WriteString(m.theme.Muted.Render(fmt.Sprintf("… %d more", len(errs)-len(shown))))
	}
	return m.theme.ErrorPanel.Width(m.listWidth()).Render(b.String())
}

// ===== MESSAGE PANE =====

// refreshMsgView rebuilds the message viewport content and the line
// index used to keep the cursor visible.
func (m *Model) refreshMsgView() {
	conv := m.conversation()
	m.msgLineStarts = m.msgLineStarts[:0]

	if conv == nil {
		if m.sess.RawMode() {
			m.msgView.SetContent(m.theme.Muted.Render("Input was not recognized as conversation records.\nPress v for the raw view."))
		} else {
			m.msgView.SetContent(m.theme.Muted.Render("Select a conversation."))
		}
		return
	}

	bodyW := m.msgView.Width - 4
	if bodyW < 10 {
		bodyW = 10
	}

	var b strings.Builder
	line := 0
	for i, msg := range conv.Messages {
		m.msgLineStarts = append(m.msgLineStarts, line)

		head := m.theme.RoleStyle(msg.Role.String()).Render(msg.Role.DisplayName())
		body := m.theme.MessageBody.Width(bodyW).Render(msg.Content)
		block := head + "\n" + body
		if i == m.msgCursor && m.pane == paneMessages {
			block = m.theme.MessageSelected.Render(block)
		}

		b.WriteString(block)
		line += lipgloss.Height(block)
		if i < len(conv.Messages)-1 {
			b.WriteString("\n\n")
			line++
		}
	}
	if len(conv.Messages) == 0 {
		b.WriteString(m.theme.Muted.Render("No messages. Press a to add one."))
	}
	m.msgView.SetContent(b.String())
}

// ensureMsgVisible scrolls the viewport so the cursored message shows.
func (m *Model) ensureMsgVisible() {
	m.refreshMsgView()
	if m.msgCursor >= len(m.msgLineStarts) {
		return
	}
	start := m.msgLineStarts[m.msgCursor]
	end := m.msgView.TotalLineCount()
	if m.msgCursor+1 < len(m.msgLineStarts) {
		end = m.msgLineStarts[m.msgCursor+1]
	}
	if start < m.msgView.YOffset {
		m.msgView.SetYOffset(start)
	} else if end > m.msgView.YOffset+m.msgView.Height {
		m.msgView.SetYOffset(end - m.msgView.Height)
	}
}

func (m *Model) renderMessages() string {
	pane := m.theme.MessagePane
	if m.pane == paneMessages && m.mode == modeBrowse {
		pane = m.theme.MessagePaneFocused
	}
	return pane.Render(m.msgView.View())
}

// ===== TEXT ENTRY =====

func (m *Model) renderEditor() string {
	var title string
	switch m.target {
	case targetMessage:
		title = "Edit message"
	case targetSystem:
		title = "System prompt"
	case targetInsert:
		title = fmt.Sprintf("New %s message (ctrl+r to change role)", m.insertRole)
	}
	hint := m.theme.Muted.Render("ctrl+s apply · esc cancel")
	inner := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.EditorTitle.Render(title),
		m.input.View(),
		hint,
	)
	return m.theme.EditorFrame.Render(inner)
}

// ===== DIALOGS =====

func (m *Model) renderConfirmDialog() string {
	title := "Unsaved changes"
	question := "Discard unsaved changes and switch?"
	yes, no := "Discard", "Keep editing"
	if m.mode == modeConfirmQuit {
		question = "Quit without saving?"
		yes, no = "Quit", "Stay"
	}
	return m.renderDialog(title, question, yes, no)
}

func (m *Model) renderDPODialog() string {
	chosen, rejected := m.sess.Document().CountPreferences()
	question := fmt.Sprintf(
		"A DPO export needs at least one chosen and one\nrejected conversation; you have %d and %d.\nExport anyway?",
		chosen, rejected)
	return m.renderDialog("Incomplete preference pairs", question, "Export anyway", "Cancel")
}

func (m *Model) renderDialog(title, question, yes, no string) string {
	yesBtn := m.theme.DialogButton.Render(yes)
	noBtn := m.theme.DialogActive.Render(no)
	if m.confirmYes {
		yesBtn = m.theme.DialogActive.Render(yes)
		noBtn = m.theme.DialogButton.Render(no)
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yesBtn, "  ", noBtn)
	return m.theme.Dialog.Render(lipgloss.JoinVertical(lipgloss.Center,
		m.theme.DialogTitle.Render(title),
		"",
		question,
		"",
		buttons,
	))
}

// ===== STATUS BAR =====

func (m *Model) renderStatusBar() string {
	if m.status != "" {
		style := m.theme.StatusInfo
		if m.statusErr {
			style = m.theme.StatusError
		}
		return m.theme.StatusBar.Width(m.width).Render(style.Render(m.status))
	}

	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, m.theme.StatusKey.Render(h.Key)+" "+h.Desc)
	}
	return m.theme.StatusBar.Width(m.width).Render(strings.Join(parts, " · "))
}
