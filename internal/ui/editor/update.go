// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treehole-hk/openai-trainingset-editor/internal/document"
	"github.com/treehole-hk/openai-trainingset-editor/internal/export"
	"github.com/treehole-hk/openai-trainingset-editor/internal/model"
	"github.com/treehole-hk/openai-trainingset-editor/internal/session"
)

// Update routes messages by input mode.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case recoveredMsg:
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("Recovery failed: %v", msg.err), true)
		}
		if msg.restored {
			return m, m.setStatus("Recovered unsaved session from backup", false)
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, session.ErrNoBackupStore) {
				return m, m.setStatus("Backup is disabled; nothing saved", true)
			}
			return m, m.setStatus(fmt.Sprintf("Save failed: %v", msg.err), true)
		}
		return m, m.setStatus("Saved to backup", false)

	case exportDoneMsg:
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("Export failed: %v", msg.err), true)
		}
		return m, m.setStatus("Exported "+strings.Join(msg.paths, ", "), false)

	case fileChangedMsg:
		m.fileChanged = true
		m.fileRemoved = msg.removed
		note := "Source file changed on disk"
		if msg.removed {
			note = "Source file was removed"
		}
		return m, tea.Batch(m.setStatus(note, true), watchCmd(m.watcher))

	case watchClosedMsg:
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeBrowse:
			return m.updateBrowse(msg)
		case modeEditText:
			return m.updateEditText(msg)
		case modeConfirmSwitch, modeConfirmQuit:
			return m.updateConfirm(msg)
		case modeDPOWarn:
			return m.updateDPOWarn(msg)
		case modeRaw, modeHelp:
			return m.updateOverlay(msg)
		}
	}
	return m, nil
}

// ===== BROWSE MODE =====

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	doc := m.sess.Document()
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		if doc.IsDirty() && m.cfg.UI.ConfirmOnQuit {
			m.mode = modeConfirmQuit
			m.confirmYes = false
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, k.Up):
		return m.moveCursor(-1)
	case key.Matches(msg, k.Down):
		return m.moveCursor(1)
	case key.Matches(msg, k.Top):
		return m.jumpCursor(0)
	case key.Matches(msg, k.Bottom):
		if m.pane == paneList {
			return m.jumpCursor(doc.Len() - 1)
		}
		if conv := m.conversation(); conv != nil {
			return m.jumpCursor(len(conv.Messages) - 1)
		}
		return m, nil

	case key.Matches(msg, k.NextPane):
		if m.sess.Selected() != session.NoSelection {
			if m.pane == paneList {
				m.pane = paneMessages
			} else {
				m.pane = paneList
			}
		}
		return m, nil

	case key.Matches(msg, k.Edit):
		if m.pane == paneList {
			if m.sess.Selected() != session.NoSelection {
				m.pane = paneMessages
			}
			return m, nil
		}
		return m.startEditMessage()

	case key.Matches(msg, k.InsertTail):
		return m.startInsert(document.PosTail)
	case key.Matches(msg, k.InsertHead):
		return m.startInsert(document.PosHead)
	case key.Matches(msg, k.InsertAfter):
		return m.startInsert(document.PosAfter)
	case key.Matches(msg, k.System):
		return m.startEditSystem()

	case key.Matches(msg, k.Delete):
		return m.deleteCurrentMessage()
	case key.Matches(msg, k.MoveUp):
		return m.moveCurrentMessage(-1)
	case key.Matches(msg, k.MoveDown):
		return m.moveCurrentMessage(1)

	case key.Matches(msg, k.NewConv):
		idx := doc.AddConversation()
		m.sess.Select(idx)
		m.msgCursor = 0
		m.refreshMsgView()
		return m, m.setStatus("Added conversation", false)

	case key.Matches(msg, k.DeleteConv):
		idx := m.sess.Selected()
		if idx == session.NoSelection {
			return m, m.setStatus("No conversation selected", true)
		}
		doc.DeleteConversation(idx)
		m.sess.Select(min(idx, doc.Len()-1))
		m.msgCursor = 0
		m.refreshMsgView()
		return m, m.setStatus("Deleted conversation", false)

	case key.Matches(msg, k.Chosen):
		return m.togglePreference(model.PreferenceChosen)
	case key.Matches(msg, k.Rejected):
		return m.togglePreference(model.PreferenceRejected)

	case key.Matches(msg, k.Save):
		return m, saveCmd(m.sess)

	case key.Matches(msg, k.Export):
		if doc.Len() == 0 {
			return m, m.setStatus("Nothing to export", true)
		}
		return m, exportCmd(m.sess, m.exportOptions())

	case key.Matches(msg, k.ExportDPO):
		if err := export.CheckDPO(doc); err != nil {
			m.mode = modeDPOWarn
			m.confirmYes = false
			return m, nil
		}
		return m, exportDPOCmd(m.sess, m.exportOptions())

	case key.Matches(msg, k.RawView):
		m.openRawView()
		return m, nil

	case key.Matches(msg, k.ClearSlot):
		if m.sess.RequestClear() {
			m.mode = modeConfirmSwitch
			m.confirmYes = false
			return m, nil
		}
		m.msgCursor = 0
		m.refreshMsgView()
		return m, m.setStatus("Session cleared", false)

	case key.Matches(msg, k.Help):
		m.openHelp()
		return m, nil
	}

	return m, nil
}

// moveCursor moves the active pane's cursor by delta.
func (m *Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	if m.pane == paneList {
		idx := m.sess.Selected()
		if idx == session.NoSelection {
			idx = -1
			if delta < 0 {
				return m, nil
			}
		}
		return m.jumpCursor(idx + delta)
	}
	m.msgCursor += delta
	m.clampMsgCursor()
	m.ensureMsgVisible()
	return m, nil
}

// jumpCursor selects a conversation (list pane) or message (message pane)
// by absolute index, routing list selection through the dirty guard.
func (m *Model) jumpCursor(idx int) (tea.Model, tea.Cmd) {
	if m.pane == paneList {
		doc := m.sess.Document()
		if doc.Len() == 0 {
			return m, nil
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= doc.Len() {
			idx = doc.Len() - 1
		}
		if m.sess.RequestSelect(idx) {
			m.mode = modeConfirmSwitch
			m.confirmYes = false
			return m, nil
		}
		m.msgCursor = 0
		m.refreshMsgView()
		return m, nil
	}
	m.msgCursor = idx
	m.clampMsgCursor()
	m.ensureMsgVisible()
	return m, nil
}

func (m *Model) togglePreference(tag model.Preference) (tea.Model, tea.Cmd) {
	idx := m.sess.Selected()
	if idx == session.NoSelection {
		return m, m.setStatus("No conversation selected", true)
	}
	m.sess.Document().TogglePreference(idx, tag)
	chosen, rejected := m.sess.Document().CountPreferences()
	return m, m.setStatus(fmt.Sprintf("Preferences: %d chosen, %d rejected", chosen, rejected), false)
}

func (m *Model) deleteCurrentMessage() (tea.Model, tea.Cmd) {
	conv := m.conversation()
	if conv == nil || len(conv.Messages) == 0 || m.pane != paneMessages {
		return m, nil
	}
	id := conv.Messages[m.msgCursor].ID
	m.sess.Document().DeleteMessage(m.sess.Selected(), id)
	m.clampMsgCursor()
	m.refreshMsgView()
	return m, m.setStatus("Deleted message", false)
}

func (m *Model) moveCurrentMessage(delta int) (tea.Model, tea.Cmd) {
	conv := m.conversation()
	if conv == nil || len(conv.Messages) == 0 || m.pane != paneMessages {
		return m, nil
	}
	id := conv.Messages[m.msgCursor].ID
	if m.sess.Document().MoveMessage(m.sess.Selected(), id, delta) {
		m.msgCursor += delta
		m.clampMsgCursor()
		m.refreshMsgView()
		m.ensureMsgVisible()
	}
	return m, nil
}

// ===== TEXT ENTRY =====

func (m *Model) startEditMessage() (tea.Model, tea.Cmd) {
	conv := m.conversation()
	if conv == nil || len(conv.Messages) == 0 {
		return m, m.setStatus("No message to edit", true)
	}
	msg := conv.Messages[m.msgCursor]
	m.target = targetMessage
	m.editMsgID = msg.ID
	m.input.SetValue(msg.Content)
	m.mode = modeEditText
	return m, m.input.Focus()
}

func (m *Model) startInsert(pos document.InsertPos) (tea.Model, tea.Cmd) {
	if m.sess.Selected() == session.NoSelection {
		return m, m.setStatus("No conversation selected", true)
	}
	if pos == document.PosAfter {
		conv := m.conversation()
		if conv == nil || len(conv.Messages) == 0 {
			pos = document.PosTail
		}
		m.insertAfter = m.msgCursor
	}
	m.target = targetInsert
	m.insertPos = pos
	m.insertRole = model.RoleUser
	m.input.SetValue("")
	m.mode = modeEditText
	return m, m.input.Focus()
}

func (m *Model) startEditSystem() (tea.Model, tea.Cmd) {
	conv := m.conversation()
	if conv == nil {
		return m, m.setStatus("No conversation selected", true)
	}
	m.target = targetSystem
	content := ""
	if sys := conv.FirstSystemMessage(); sys != nil {
		content = sys.Content
	}
	m.input.SetValue(content)
	m.mode = modeEditText
	return m, m.input.Focus()
}

func (m *Model) updateEditText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.input.Reset()
		m.mode = modeBrowse
		return m, nil

	case "ctrl+s":
		m.commitEdit()
		m.input.Blur()
		m.input.Reset()
		m.mode = modeBrowse
		m.refreshMsgView()
		m.ensureMsgVisible()
		return m, m.setStatus("Applied edit", false)

	case "ctrl+r":
		if m.target == targetInsert {
			m.insertRole = nextRole(m.insertRole)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) commitEdit() {
	doc := m.sess.Document()
	idx := m.sess.Selected()
	value := m.input.Value()

	switch m.target {
	case targetMessage:
		doc.EditMessageContent(idx, m.editMsgID, value)
	case targetSystem:
		doc.UpsertSystemMessage(idx, value)
		m.msgCursor = 0
	case targetInsert:
		doc.InsertMessage(idx, m.insertPos, m.insertAfter, m.insertRole, value)
		if conv := m.conversation(); conv != nil {
			switch m.insertPos {
			case document.PosHead:
				m.msgCursor = 0
			case document.PosAfter:
				m.msgCursor = m.insertAfter + 1
			default:
				m.msgCursor = len(conv.Messages) - 1
			}
		}
	}
}

func nextRole(r model.Role) model.Role {
	switch r {
	case model.RoleUser:
		return model.RoleAssistant
	case model.RoleAssistant:
		return model.RoleSystem
	default:
		return model.RoleUser
	}
}

// ===== DIALOGS =====

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	quit := m.mode == modeConfirmQuit

	switch msg.String() {
	case "left", "right", "tab", "h", "l":
		m.confirmYes = !m.confirmYes
		return m, nil
	case "y":
		m.confirmYes = true
		return m.applyConfirm(quit)
	case "n", "esc":
		return m.cancelConfirm(quit)
	case "enter":
		if m.confirmYes {
			return m.applyConfirm(quit)
		}
		return m.cancelConfirm(quit)
	}
	return m, nil
}

func (m *Model) applyConfirm(quit bool) (tea.Model, tea.Cmd) {
	if quit {
		return m, tea.Quit
	}
	m.sess.ConfirmPending()
	m.mode = modeBrowse
	m.msgCursor = 0
	m.refreshMsgView()
	return m, m.setStatus("Discarded unsaved changes", false)
}

func (m *Model) cancelConfirm(quit bool) (tea.Model, tea.Cmd) {
	if !quit {
		m.sess.CancelPending()
	}
	m.mode = modeBrowse
	return m, nil
}

func (m *Model) updateDPOWarn(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e", "enter":
		m.mode = modeBrowse
		return m, exportDPOCmd(m.sess, m.exportOptions())
	case "n", "esc", "q":
		m.mode = modeBrowse
		return m, nil
	}
	return m, nil
}

// ===== OVERLAYS =====

func (m *Model) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "v", "?":
		m.mode = modeBrowse
		return m, nil
	}
	var cmd tea.Cmd
	m.overlay, cmd = m.overlay.Update(msg)
	return m, cmd
}

// ===== LAYOUT =====

func (m *Model) exportOptions() *export.Options {
	opts := export.DefaultOptions()
	if dir := m.cfg.Export.OutputDir; dir != "" {
		opts.OutputDir = dir
	}
	return opts
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	contentH := height - chromeHeight
	if contentH < 3 {
		contentH = 3
	}
	msgW := width - m.listWidth() - paneFrameWidth
	if msgW < 20 {
		msgW = 20
	}

	m.msgView.Width = msgW
	m.msgView.Height = contentH

	m.overlay.Width = width - paneFrameWidth
	m.overlay.Height = contentH

	m.input.SetWidth(msgW)
	m.input.SetHeight(inputHeight(contentH))

	m.refreshMsgView()
}

func (m *Model) listWidth() int {
	w := m.width / 3
	if w > 44 {
		w = 44
	}
	if w < 24 {
		w = 24
	}
	return w
}

func inputHeight(contentH int) int {
	h := contentH / 2
	if h < 3 {
		h = 3
	}
	if h > 12 {
		h = 12
	}
	return h
}
