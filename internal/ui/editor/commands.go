// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treehole-hk/openai-trainingset-editor/internal/export"
	"github.com/treehole-hk/openai-trainingset-editor/internal/session"
	"github.com/treehole-hk/openai-trainingset-editor/internal/watch"
)

// statusTTL is how long a transient status message stays visible.
const statusTTL = 4 * time.Second

// ===== MESSAGES =====

// statusMsg updates the transient status line.
type statusMsg struct {
	text  string
	isErr bool
}

// clearStatusMsg blanks the status line after a delay.
type clearStatusMsg struct{ seq int }

// savedMsg reports the outcome of a backup save.
type savedMsg struct{ err error }

// recoveredMsg reports the outcome of startup session recovery.
type recoveredMsg struct {
	restored bool
	err      error
}

// exportDoneMsg reports the outcome of an export.
type exportDoneMsg struct {
	paths []string
	err   error
}

// fileChangedMsg is delivered when the watched source file changes on disk.
type fileChangedMsg struct{ removed bool }

// watchClosedMsg is delivered when the watcher channel closes.
type watchClosedMsg struct{}

// ===== COMMANDS =====

func saveCmd(sess *session.Manager) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{err: sess.Save()}
	}
}

func recoverCmd(sess *session.Manager) tea.Cmd {
	return func() tea.Msg {
		restored, err := sess.Recover()
		return recoveredMsg{restored: restored, err: err}
	}
}

func exportCmd(sess *session.Manager, opts *export.Options) tea.Cmd {
	return func() tea.Msg {
		path, err := export.JSONL(sess.Document(), opts)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{paths: []string{path}}
	}
}

func exportDPOCmd(sess *session.Manager, opts *export.Options) tea.Cmd {
	return func() tea.Msg {
		jsonlPath, csvPath, err := export.DPO(sess.Document(), opts)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{paths: []string{jsonlPath, csvPath}}
	}
}

// watchCmd blocks on the watcher channel and converts one change into a
// message. Update re-issues it after each delivery.
func watchCmd(w watch.FileWatcher) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-w.Changes()
		if !ok {
			return watchClosedMsg{}
		}
		return fileChangedMsg{removed: change.Removed}
	}
}

func clearStatusCmd(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
