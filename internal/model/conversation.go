// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for training-set records.
package model

import (
	"encoding/json"
	"strings"

	"github.com/treehole-hk/openai-trainingset-editor/internal/util"
)

// SubjectRuneLimit is the maximum label length before truncation.
const SubjectRuneLimit = 40

// Default contents for a freshly added conversation.
const (
	SeedUserContent      = "Start a new conversation..."
	SeedAssistantContent = "Hello! How can I help you today?"
)

// =============================================================================
// PREFERENCE TYPE
// =============================================================================

// Preference is the chosen/rejected tag used for DPO-style export.
// The zero value means no tag; it is omitted from serialized output.
type Preference string

const (
	PreferenceNone     Preference = ""
	PreferenceChosen   Preference = "chosen"
	PreferenceRejected Preference = "rejected"
)

// Valid reports whether p is one of the two recognized tags.
func (p Preference) Valid() bool {
	return p == PreferenceChosen || p == PreferenceRejected
}

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds one training record: an ordered message list, an
// optional preference tag, and any other top-level fields from the source
// line, preserved verbatim.
//
// Message order is semantically significant - it is the turn order presented
// to the training process.
type Conversation struct {
	Messages   []*Message
	Preference Preference

	// Extra holds unknown top-level wire fields, preserved through
	// round trips. The wire format is an open JSON object with a required
	// "messages" array, not a closed schema.
	Extra map[string]json.RawMessage
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{
		Messages: make([]*Message, 0),
	}
}

// NewSeededConversation creates a conversation pre-filled with the default
// user/assistant exchange used by the "add conversation" action.
func NewSeededConversation() *Conversation {
	return &Conversation{
		Messages: []*Message{
			NewUserMessage(SeedUserContent),
			NewAssistantMessage(SeedAssistantContent),
		},
	}
}

// =============================================================================
// MESSAGE ACCESS
// =============================================================================

// MessageByID returns the message with the given ID, or nil.
func (c *Conversation) MessageByID(id string) *Message {
	for _, msg := range c.Messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

// IndexOfMessage returns the position of the message with the given ID,
// or -1 if absent.
func (c *Conversation) IndexOfMessage(id string) int {
	for i, msg := range c.Messages {
		if msg.ID == id {
			return i
		}
	}
	return -1
}

// RemoveMessage removes the message with the given ID. It reports whether a
// message was removed.
func (c *Conversation) RemoveMessage(id string) bool {
	for i, msg := range c.Messages {
		if msg.ID == id {
			c.Messages = append(c.Messages[:i], c.Messages[i+1:]...)
			return true
		}
	}
	return false
}

// FirstSystemMessage returns the first system-role message, or nil.
// When several system messages exist only the first is addressed; the
// others are left untouched.
func (c *Conversation) FirstSystemMessage() *Message {
	for _, msg := range c.Messages {
		if msg.Role.IsSystem() {
			return msg
		}
	}
	return nil
}

// UpsertSystemMessage replaces the content of the first system message, or
// inserts a new one at the head of the message list when none exists.
// It returns the affected message and whether it was newly created.
func (c *Conversation) UpsertSystemMessage(content string) (*Message, bool) {
	if msg := c.FirstSystemMessage(); msg != nil {
		msg.Content = content
		return msg, false
	}
	msg := NewSystemMessage(content)
	c.Messages = append([]*Message{msg}, c.Messages...)
	return msg, true
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// =============================================================================
// SUBJECT EXTRACTION
// =============================================================================

// Subject derives a short label for list display.
//
// The label comes from the first non-system message: system prompts are
// deliberately skipped so records sharing one prompt stay distinguishable.
// Whitespace-only content yields "Empty <role> message"; otherwise the first
// line of the trimmed content, capped at SubjectRuneLimit runes with an
// ellipsis appended when cut.
func (c *Conversation) Subject() string {
	var first *Message
	for _, msg := range c.Messages {
		if !msg.Role.IsSystem() {
			first = msg
			break
		}
	}
	if first == nil {
		return "New Conversation"
	}

	trimmed := strings.TrimSpace(first.Content)
	if trimmed == "" {
		return "Empty " + first.Role.String() + " message"
	}

	return util.TruncateRunes(util.FirstLine(trimmed), SubjectRuneLimit)
}

// =============================================================================
// LIST METADATA
// =============================================================================

// RoleCounts summarizes message roles for the list subtitle.
type RoleCounts struct {
	User      int
	Assistant int
	HasSystem bool
}

// CountRoles tallies user/assistant messages and system presence.
func (c *Conversation) CountRoles() RoleCounts {
	var rc RoleCounts
	for _, msg := range c.Messages {
		switch msg.Role {
		case RoleUser:
			rc.User++
		case RoleAssistant:
			rc.Assistant++
		case RoleSystem:
			rc.HasSystem = true
		}
	}
	return rc
}

// StatsLine formats the role counts for display, e.g. "2 user / 2 assistant + system".
func (c *Conversation) StatsLine() string {
	rc := c.CountRoles()
	line := util.IntToStr(rc.User) + " user / " + util.IntToStr(rc.Assistant) + " assistant"
	if rc.HasSystem {
		line += " + system"
	}
	return line
}

// =============================================================================
// CLONING
// =============================================================================

// Clone creates a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	clone := &Conversation{
		Preference: c.Preference,
		Messages:   make([]*Message, len(c.Messages)),
	}
	for i, msg := range c.Messages {
		clone.Messages[i] = msg.Clone()
	}
	if c.Extra != nil {
		clone.Extra = make(map[string]json.RawMessage, len(c.Extra))
		for k, v := range c.Extra {
			raw := make(json.RawMessage, len(v))
			copy(raw, v)
			clone.Extra[k] = raw
		}
	}
	return clone
}
