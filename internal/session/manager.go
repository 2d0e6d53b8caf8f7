// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the editing session: the document, selection, and
// the unsaved-changes guard.
package session

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/treehole-hk/openai-trainingset-editor/internal/document"
	"github.com/treehole-hk/openai-trainingset-editor/internal/jsonl"
	"github.com/treehole-hk/openai-trainingset-editor/internal/model"
	"github.com/treehole-hk/openai-trainingset-editor/internal/storage"
)

// =============================================================================
// PENDING ACTIONS
// =============================================================================

// pendingKind identifies a navigation action held behind the
// unsaved-changes confirmation.
type pendingKind int

const (
	pendingNone pendingKind = iota
	pendingSelect
	pendingClear
)

type pendingAction struct {
	kind pendingKind
	idx  int
}

// =============================================================================
// SESSION MANAGER
// =============================================================================

// NoSelection is the selected index when no conversation is selected.
const NoSelection = -1

// Manager tracks the editing session state.
type Manager struct {
	mu sync.Mutex

	doc      *document.Document
	selected int

	// Source tracking
	sourcePath string

	// Unrecognized-format raw view
	rawMode bool
	rawText string

	parseErrors []string

	// Durable backup slot; nil disables backup
	backup *storage.BackupStore

	pending pendingAction
}

// NewManager creates a session manager. backup may be nil to disable
// the durable backup slot.
func NewManager(backup *storage.BackupStore) *Manager {
	return &Manager{
		doc:      document.New(),
		selected: NoSelection,
		backup:   backup,
	}
}

// =============================================================================
// STATE ACCESS
// =============================================================================

// Document returns the current document.
func (m *Manager) Document() *document.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc
}

// Selected returns the selected conversation index, or NoSelection.
func (m *Manager) Selected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

// SourcePath returns the path of the loaded file, if any.
func (m *Manager) SourcePath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sourcePath
}

// RawMode reports whether the session is showing the read-only raw view.
func (m *Manager) RawMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rawMode
}

// RawText returns the raw input shown in the unrecognized-format view.
func (m *Manager) RawText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rawText
}

// ParseErrors returns the ordered error list from the last load.
func (m *Manager) ParseErrors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.parseErrors
}

// =============================================================================
// LOADING
// =============================================================================

// LoadFile reads and installs the file at path.
func (m *Manager) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	m.Load(string(data))

	m.mu.Lock()
	m.sourcePath = path
	m.mu.Unlock()
	return nil
}

// Load parses text and atomically replaces the session state with the
// result. A recognized parse installs its conversations and errors; input
// with no recognizable conversations switches to the read-only raw view;
// a parser panic resets to an empty document with one synthetic error.
func (m *Manager) Load(text string) {
	convs, errs, panicErr := parseGuarded(text)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.rawMode = false
	m.rawText = ""
	m.sourcePath = ""
	m.pending = pendingAction{}

	switch {
	case panicErr != nil:
		m.doc = document.New()
		m.selected = NoSelection
		m.parseErrors = []string{fmt.Sprintf("Parse failed: %v", panicErr)}

	case len(convs) > 0:
		m.doc = document.FromConversations(convs)
		m.selected = NoSelection
		m.parseErrors = errs

	case strings.TrimSpace(text) != "":
		// Nothing recognizable; show the input instead of an empty editor.
		m.doc = document.New()
		m.selected = NoSelection
		m.parseErrors = errs
		m.rawMode = true
		m.rawText = text

	default:
		m.doc = document.New()
		m.selected = NoSelection
		m.parseErrors = nil
	}
}

// parseGuarded wraps jsonl.Parse with panic recovery so malformed input
// can never take down the session.
func parseGuarded(text string) (convs []*model.Conversation, errs []string, panicErr error) {
	defer func() {
		if r := recover(); r != nil {
			convs = nil
			errs = nil
			panicErr = fmt.Errorf("%v", r)
		}
	}()
	c, e := jsonl.Parse(text)
	return c, e, nil
}

// =============================================================================
// SAVE / RECOVER / CLEAR
// =============================================================================

// ErrNoBackupStore is returned by Save when backup is disabled.
var ErrNoBackupStore = errors.New("backup store not configured")

// Save serializes the document with inline preference tags into the
// durable backup slot and clears the dirty set.
func (m *Manager) Save() error {
	m.mu.Lock()
	doc := m.doc
	backup := m.backup
	m.mu.Unlock()

	if backup == nil {
		return ErrNoBackupStore
	}
	if err := backup.Write(jsonl.Serialize(doc.Conversations())); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	doc.ClearDirty()
	return nil
}

// Recover restores the backup slot into an empty session. Restored
// preference tags are marked dirty so the user consciously re-saves.
// Returns false when there is nothing to restore or a document is
// already loaded.
func (m *Manager) Recover() (bool, error) {
	m.mu.Lock()
	loaded := m.doc.Len() > 0 || m.rawMode
	backup := m.backup
	m.mu.Unlock()

	if backup == nil || loaded {
		return false, nil
	}

	payload, err := backup.Read()
	if errors.Is(err, storage.ErrNoBackup) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read backup: %w", err)
	}

	convs, errs, panicErr := parseGuarded(payload)
	if panicErr != nil || len(convs) == 0 {
		return false, fmt.Errorf("backup slot holds unparseable data")
	}

	m.mu.Lock()
	m.doc = document.FromConversations(convs)
	m.doc.MarkPreferencesDirty()
	m.selected = NoSelection
	m.parseErrors = errs
	m.rawMode = false
	m.rawText = ""
	m.mu.Unlock()
	return true, nil
}

// Clear resets the session to an empty document and removes the backup
// slot.
func (m *Manager) Clear() error {
	m.mu.Lock()
	m.doc = document.New()
	m.selected = NoSelection
	m.sourcePath = ""
	m.rawMode = false
	m.rawText = ""
	m.parseErrors = nil
	m.pending = pendingAction{}
	backup := m.backup
	m.mu.Unlock()

	if backup != nil {
		if err := backup.Clear(); err != nil {
			return fmt.Errorf("clear backup: %w", err)
		}
	}
	return nil
}

// =============================================================================
// NAVIGATION GUARD
// =============================================================================

// RequestSelect asks to change the selected conversation. When the dirty
// set is non-empty the change is held pending confirmation and true is
// returned; otherwise the selection changes immediately.
func (m *Manager) RequestSelect(idx int) (needsConfirm bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if idx == m.selected {
		return false
	}
	if m.doc.IsDirty() {
		m.pending = pendingAction{kind: pendingSelect, idx: idx}
		return true
	}
	m.applySelect(idx)
	return false
}

// Select applies a selection change without the dirty guard. It exists
// for programmatic moves after structural edits (delete, add); user
// navigation goes through RequestSelect.
func (m *Manager) Select(idx int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applySelect(idx)
}

// RequestClear asks to clear the editor. Held pending confirmation while
// the dirty set is non-empty.
func (m *Manager) RequestClear() (needsConfirm bool) {
	m.mu.Lock()
	dirty := m.doc.IsDirty()
	if dirty {
		m.pending = pendingAction{kind: pendingClear}
	}
	m.mu.Unlock()

	if dirty {
		return true
	}
	_ = m.Clear()
	return false
}

// HasPending reports whether a navigation action awaits confirmation.
func (m *Manager) HasPending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending.kind != pendingNone
}

// ConfirmPending proceeds with the held action. Confirmation discards
// unsaved changes: the dirty set is cleared as a side effect.
func (m *Manager) ConfirmPending() {
	m.mu.Lock()
	action := m.pending
	m.pending = pendingAction{}

	switch action.kind {
	case pendingSelect:
		m.doc.ClearDirty()
		m.applySelect(action.idx)
		m.mu.Unlock()
	case pendingClear:
		m.doc.ClearDirty()
		m.mu.Unlock()
		_ = m.Clear()
	default:
		m.mu.Unlock()
	}
}

// CancelPending drops the held action, leaving all state untouched.
func (m *Manager) CancelPending() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = pendingAction{}
}

// applySelect clamps and applies a selection. Caller holds the lock.
func (m *Manager) applySelect(idx int) {
	if idx < 0 || idx >= m.doc.Len() {
		m.selected = NoSelection
		return
	}
	m.selected = idx
}
