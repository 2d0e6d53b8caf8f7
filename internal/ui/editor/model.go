// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treehole-hk/openai-trainingset-editor/internal/config"
	"github.com/treehole-hk/openai-trainingset-editor/internal/document"
	"github.com/treehole-hk/openai-trainingset-editor/internal/model"
	"github.com/treehole-hk/openai-trainingset-editor/internal/session"
	"github.com/treehole-hk/openai-trainingset-editor/internal/ui/styles"
	"github.com/treehole-hk/openai-trainingset-editor/internal/watch"
)

// ===== MODEL STATE =====

// pane identifies which column has keyboard focus in browse mode.
type pane int

const (
	paneList pane = iota
	paneMessages
)

// mode is the editor's top-level input mode.
type mode int

const (
	modeBrowse mode = iota
	modeEditText
	modeConfirmSwitch
	modeConfirmQuit
	modeDPOWarn
	modeRaw
	modeHelp
)

// editTarget says what an active textarea commits to.
type editTarget int

const (
	targetMessage editTarget = iota
	targetInsert
	targetSystem
)

// Model is the root Bubble Tea model for the editor TUI.
type Model struct {
	sess    *session.Manager
	cfg     *config.Config
	theme   *styles.Theme
	keys    KeyMap
	watcher watch.FileWatcher

	width  int
	height int
	ready  bool

	pane pane
	mode mode

	// Message pane state. msgCursor indexes into the selected
	// conversation's messages; msgLineStarts maps it to viewport lines.
	msgCursor     int
	msgView       viewport.Model
	msgLineStarts []int

	// Shared viewport for the raw and help overlays.
	overlay   viewport.Model
	helpCache string
	helpForW  int

	// Active text entry.
	input       textarea.Model
	target      editTarget
	editMsgID   string
	insertPos   document.InsertPos
	insertAfter int
	insertRole  model.Role

	// Dialog state. confirmYes is the highlighted button.
	confirmYes bool

	status    string
	statusErr bool
	statusSeq int

	fileChanged bool
	fileRemoved bool
}

// New builds the editor model. watcher may be nil when watching is
// disabled or the session has no source file.
func New(sess *session.Manager, cfg *config.Config, theme *styles.Theme, watcher watch.FileWatcher) *Model {
	ta := textarea.New()
	ta.Placeholder = "Message content..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false

	return &Model{
		sess:       sess,
		cfg:        cfg,
		theme:      theme,
		keys:       DefaultKeyMap(),
		watcher:    watcher,
		input:      ta,
		insertRole: model.RoleUser,
	}
}

// Init starts session recovery and, when configured, the file watcher.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{recoverCmd(m.sess)}
	if m.watcher != nil {
		cmds = append(cmds, watchCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// conversation returns the selected conversation, or nil.
func (m *Model) conversation() *model.Conversation {
	idx := m.sess.Selected()
	if idx == session.NoSelection {
		return nil
	}
	return m.sess.Document().Conversation(idx)
}

// clampMsgCursor keeps the message cursor inside the selected
// conversation after mutations and selection changes.
func (m *Model) clampMsgCursor() {
	conv := m.conversation()
	if conv == nil || len(conv.Messages) == 0 {
		m.msgCursor = 0
		return
	}
	if m.msgCursor >= len(conv.Messages) {
		m.msgCursor = len(conv.Messages) - 1
	}
	if m.msgCursor < 0 {
		m.msgCursor = 0
	}
}

// setStatus replaces the status line and schedules its expiry.
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusErr = isErr
	m.statusSeq++
	return clearStatusCmd(m.statusSeq, statusTTL)
}
