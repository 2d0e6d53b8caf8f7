// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for training-set records.
package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message. The wire format treats roles as
// open-ended strings; only the three standard values get special handling.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsSystem reports whether this is the system role.
func (r Role) IsSystem() bool {
	return r == RoleSystem
}

// DisplayName returns a human-readable name for the role. Unknown roles are
// shown as-is rather than rejected.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single turn in a conversation.
//
// ID is ephemeral: it is generated at parse or creation time so editor
// operations can address a message unambiguously (including after a
// reorder), and it is stripped unconditionally at serialization.
type Message struct {
	ID      string
	Role    Role
	Content string

	// Extra holds unknown wire fields of the message object, preserved
	// verbatim through parse -> edit -> serialize round trips.
	Extra map[string]json.RawMessage
}

// NewMessage creates a message with a fresh unique ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) *Message {
	return NewMessage(RoleAssistant, content)
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) *Message {
	return NewMessage(RoleSystem, content)
}

// Clone creates a deep copy of the message.
func (m *Message) Clone() *Message {
	clone := &Message{
		ID:      m.ID,
		Role:    m.Role,
		Content: m.Content,
	}
	if m.Extra != nil {
		clone.Extra = make(map[string]json.RawMessage, len(m.Extra))
		for k, v := range m.Extra {
			raw := make(json.RawMessage, len(v))
			copy(raw, v)
			clone.Extra[k] = raw
		}
	}
	return clone
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}
