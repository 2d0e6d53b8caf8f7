// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"strconv"
	"strings"

	"github.com/treehole-hk/openai-trainingset-editor/internal/model"
	"github.com/treehole-hk/openai-trainingset-editor/internal/util"
)

// =============================================================================
// INSERT POSITION
// =============================================================================

// InsertPos selects where a new message lands in a conversation.
type InsertPos int

const (
	// PosHead inserts at the start of the message list.
	PosHead InsertPos = iota
	// PosTail appends to the end of the message list.
	PosTail
	// PosAfter inserts immediately after a given message index.
	PosAfter
)

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is the editing aggregate: an ordered conversation sequence and
// the dirty set of unsaved fields.
//
// Preference tags live inline on each Conversation, so deleting or
// inserting a conversation can never leave a tag pointing at the wrong
// ordinal. Preferences() exposes the index-keyed view for export.
type Document struct {
	conversations []*model.Conversation

	// dirty is keyed by message ID for content edits and inserts, and by
	// synthetic per-conversation keys (pref_<idx>, order_<idx>) for
	// preference and reorder changes.
	dirty map[string]bool
}

// New creates an empty document.
func New() *Document {
	return &Document{
		conversations: make([]*model.Conversation, 0),
		dirty:         make(map[string]bool),
	}
}

// FromConversations creates a document over an already parsed sequence.
func FromConversations(convs []*model.Conversation) *Document {
	d := New()
	if convs != nil {
		d.conversations = convs
	}
	return d
}

// Conversations returns the conversation sequence in order.
func (d *Document) Conversations() []*model.Conversation {
	return d.conversations
}

// Len returns the number of conversations.
func (d *Document) Len() int {
	return len(d.conversations)
}

// Conversation returns the conversation at idx, or nil when out of range.
func (d *Document) Conversation(idx int) *model.Conversation {
	if idx < 0 || idx >= len(d.conversations) {
		return nil
	}
	return d.conversations[idx]
}

// =============================================================================
// MESSAGE OPERATIONS
// =============================================================================

// EditMessageContent replaces the content of the message with the given ID
// inside the conversation at convIdx and marks that ID dirty. Editing a
// missing conversation or a since-deleted message ID is a no-op.
func (d *Document) EditMessageContent(convIdx int, msgID, content string) bool {
	conv := d.Conversation(convIdx)
	if conv == nil {
		return false
	}
	msg := conv.MessageByID(msgID)
	if msg == nil {
		return false
	}
	msg.Content = content
	d.dirty[msgID] = true
	return true
}

// InsertMessage creates a new message with a fresh ID at the requested
// position and marks the new ID dirty. afterIdx is only consulted for
// PosAfter; an out-of-range afterIdx clamps to the list bounds.
// Returns the new message, or nil when convIdx is out of range.
func (d *Document) InsertMessage(convIdx int, pos InsertPos, afterIdx int, role model.Role, content string) *model.Message {
	conv := d.Conversation(convIdx)
	if conv == nil {
		return nil
	}

	msg := model.NewMessage(role, content)

	var at int
	switch pos {
	case PosHead:
		at = 0
	case PosTail:
		at = len(conv.Messages)
	case PosAfter:
		at = afterIdx + 1
		if at < 0 {
			at = 0
		}
		if at > len(conv.Messages) {
			at = len(conv.Messages)
		}
	}

	conv.Messages = append(conv.Messages, nil)
	copy(conv.Messages[at+1:], conv.Messages[at:])
	conv.Messages[at] = msg

	d.dirty[msg.ID] = true
	return msg
}

// DeleteMessage removes the message with the given ID and clears any dirty
// flag keyed by that ID.
func (d *Document) DeleteMessage(convIdx int, msgID string) bool {
	conv := d.Conversation(convIdx)
	if conv == nil {
		return false
	}
	if !conv.RemoveMessage(msgID) {
		return false
	}
	delete(d.dirty, msgID)
	return true
}

// ReorderMessages replaces the message order with the permutation described
// by orderIDs. Identity and content are preserved - only positions change.
// An orderIDs that is not a permutation of the current IDs is a no-op.
func (d *Document) ReorderMessages(convIdx int, orderIDs []string) bool {
	conv := d.Conversation(convIdx)
	if conv == nil {
		return false
	}
	if len(orderIDs) != len(conv.Messages) {
		return false
	}

	byID := make(map[string]*model.Message, len(conv.Messages))
	for _, msg := range conv.Messages {
		byID[msg.ID] = msg
	}

	reordered := make([]*model.Message, 0, len(orderIDs))
	for _, id := range orderIDs {
		msg, ok := byID[id]
		if !ok {
			return false
		}
		delete(byID, id) // reject duplicate ids
		reordered = append(reordered, msg)
	}

	conv.Messages = reordered
	d.dirty[OrderKey(convIdx)] = true
	return true
}

// MoveMessage shifts the message with the given ID by delta positions
// (negative = towards the head). Convenience wrapper over ReorderMessages
// for keyboard-driven reordering.
func (d *Document) MoveMessage(convIdx int, msgID string, delta int) bool {
	conv := d.Conversation(convIdx)
	if conv == nil {
		return false
	}
	from := conv.IndexOfMessage(msgID)
	if from < 0 {
		return false
	}
	to := from + delta
	if to < 0 || to >= len(conv.Messages) {
		return false
	}

	order := make([]string, len(conv.Messages))
	for i, msg := range conv.Messages {
		order[i] = msg.ID
	}
	order = append(order[:from], order[from+1:]...)
	order = append(order[:to], append([]string{msgID}, order[to:]...)...)

	return d.ReorderMessages(convIdx, order)
}

// =============================================================================
// CONVERSATION OPERATIONS
// =============================================================================

// AddConversation appends a conversation seeded with the default two-message
// exchange, marks both new IDs dirty, and returns its index. The caller is
// expected to select it.
func (d *Document) AddConversation() int {
	conv := model.NewSeededConversation()
	d.conversations = append(d.conversations, conv)
	for _, msg := range conv.Messages {
		d.dirty[msg.ID] = true
	}
	return len(d.conversations) - 1
}

// DeleteConversation removes the conversation at idx. Its preference tag
// goes with it, and the index-keyed dirty entries for later conversations
// shift down by one to stay aligned with the new ordinals.
func (d *Document) DeleteConversation(idx int) bool {
	conv := d.Conversation(idx)
	if conv == nil {
		return false
	}

	for _, msg := range conv.Messages {
		delete(d.dirty, msg.ID)
	}
	d.conversations = append(d.conversations[:idx], d.conversations[idx+1:]...)
	d.shiftIndexedDirtyKeys(idx)
	return true
}

// shiftIndexedDirtyKeys drops index-keyed dirty entries for the deleted
// ordinal and re-keys entries above it. Must run on every deletion that
// changes ordinal positions.
func (d *Document) shiftIndexedDirtyKeys(deleted int) {
	shifted := make(map[string]bool, len(d.dirty))
	for key, v := range d.dirty {
		prefix, idx, ok := splitIndexedKey(key)
		if !ok || idx < deleted {
			shifted[key] = v
			continue
		}
		if idx == deleted {
			continue
		}
		shifted[prefix+util.IntToStr(idx-1)] = v
	}
	d.dirty = shifted
}

// UpsertSystemMessage edits the first system message of the conversation,
// or inserts a new one at the head when none exists. The affected message
// ID is marked dirty.
func (d *Document) UpsertSystemMessage(convIdx int, content string) *model.Message {
	conv := d.Conversation(convIdx)
	if conv == nil {
		return nil
	}
	msg, _ := conv.UpsertSystemMessage(content)
	d.dirty[msg.ID] = true
	return msg
}

// =============================================================================
// PREFERENCE OPERATIONS
// =============================================================================

// TogglePreference applies a chosen/rejected tag to the conversation at
// idx. Applying the tag it already has clears it - toggle semantics, not
// blind overwrite. Returns the resulting tag.
func (d *Document) TogglePreference(idx int, tag model.Preference) model.Preference {
	conv := d.Conversation(idx)
	if conv == nil || !tag.Valid() {
		return model.PreferenceNone
	}
	if conv.Preference == tag {
		conv.Preference = model.PreferenceNone
	} else {
		conv.Preference = tag
	}
	d.dirty[PrefKey(idx)] = true
	return conv.Preference
}

// Preferences returns the index-keyed view of all preference tags.
func (d *Document) Preferences() map[int]model.Preference {
	prefs := make(map[int]model.Preference)
	for i, conv := range d.conversations {
		if conv.Preference.Valid() {
			prefs[i] = conv.Preference
		}
	}
	return prefs
}

// CountPreferences returns the number of chosen and rejected conversations.
func (d *Document) CountPreferences() (chosen, rejected int) {
	for _, conv := range d.conversations {
		switch conv.Preference {
		case model.PreferenceChosen:
			chosen++
		case model.PreferenceRejected:
			rejected++
		}
	}
	return chosen, rejected
}

// MarkPreferencesDirty flags every tagged conversation's preference as
// unsaved. Used after backup recovery so the user consciously re-saves.
func (d *Document) MarkPreferencesDirty() {
	for i, conv := range d.conversations {
		if conv.Preference.Valid() {
			d.dirty[PrefKey(i)] = true
		}
	}
}

// =============================================================================
// DIRTY SET
// =============================================================================

// IsDirty reports whether any unsaved change exists.
func (d *Document) IsDirty() bool {
	return len(d.dirty) > 0
}

// IsFieldDirty reports whether a specific dirty key is set.
func (d *Document) IsFieldDirty(key string) bool {
	return d.dirty[key]
}

// DirtyCount returns the number of unsaved fields.
func (d *Document) DirtyCount() int {
	return len(d.dirty)
}

// ClearDirty empties the dirty set. Only an explicit save (or a confirmed
// navigation) does this.
func (d *Document) ClearDirty() {
	d.dirty = make(map[string]bool)
}

// PrefKey returns the dirty-set key for a conversation's preference tag.
func PrefKey(idx int) string {
	return "pref_" + util.IntToStr(idx)
}

// OrderKey returns the dirty-set key for a conversation's message order.
func OrderKey(idx int) string {
	return "order_" + util.IntToStr(idx)
}

// splitIndexedKey parses "pref_<n>" / "order_<n>" keys.
func splitIndexedKey(key string) (prefix string, idx int, ok bool) {
	for _, p := range []string{"pref_", "order_"} {
		if rest, found := strings.CutPrefix(key, p); found {
			n, ok := parseIndex(rest)
			return p, n, ok
		}
	}
	return "", 0, false
}

func parseIndex(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
