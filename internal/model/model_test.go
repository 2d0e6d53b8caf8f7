// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage(t *testing.T) {
	msg := NewMessage(RoleUser, "Hello")

	if msg.ID == "" {
		t.Error("Expected non-empty ID")
	}
	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want %q", msg.Role, RoleUser)
	}
	if msg.Content != "Hello" {
		t.Errorf("Content = %q, want %q", msg.Content, "Hello")
	}
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		msg := NewUserMessage("x")
		if seen[msg.ID] {
			t.Fatalf("duplicate ID generated: %s", msg.ID)
		}
		seen[msg.ID] = true
	}
}

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "User"},
		{RoleAssistant, "Assistant"},
		{RoleSystem, "System"},
		{Role("critic"), "critic"},
	}
	for _, tt := range tests {
		if got := tt.role.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestNewSeededConversation(t *testing.T) {
	conv := NewSeededConversation()

	if len(conv.Messages) != 2 {
		t.Fatalf("Messages count = %d, want 2", len(conv.Messages))
	}
	if conv.Messages[0].Role != RoleUser {
		t.Errorf("first role = %q, want user", conv.Messages[0].Role)
	}
	if conv.Messages[1].Role != RoleAssistant {
		t.Errorf("second role = %q, want assistant", conv.Messages[1].Role)
	}
	if conv.Messages[0].ID == conv.Messages[1].ID {
		t.Error("seeded messages share an ID")
	}
}

func TestConversation_RemoveMessage(t *testing.T) {
	conv := NewSeededConversation()
	id := conv.Messages[0].ID

	if !conv.RemoveMessage(id) {
		t.Fatal("RemoveMessage returned false for existing message")
	}
	if conv.MessageCount() != 1 {
		t.Errorf("MessageCount = %d, want 1", conv.MessageCount())
	}
	if conv.RemoveMessage(id) {
		t.Error("RemoveMessage returned true for missing message")
	}
}

func TestConversation_UpsertSystemMessage_Replaces(t *testing.T) {
	conv := NewConversation()
	conv.Messages = []*Message{
		NewSystemMessage("old"),
		NewUserMessage("hi"),
		NewSystemMessage("second"),
	}

	msg, created := conv.UpsertSystemMessage("new")
	if created {
		t.Error("expected replacement, got creation")
	}
	if msg.Content != "new" {
		t.Errorf("Content = %q, want %q", msg.Content, "new")
	}
	// Only the first system message is addressed; the second stays untouched.
	if conv.Messages[2].Content != "second" {
		t.Errorf("second system message changed: %q", conv.Messages[2].Content)
	}
}

func TestConversation_UpsertSystemMessage_InsertsAtHead(t *testing.T) {
	conv := NewConversation()
	conv.Messages = []*Message{NewUserMessage("hi")}

	msg, created := conv.UpsertSystemMessage("be terse")
	if !created {
		t.Error("expected creation")
	}
	if conv.Messages[0] != msg {
		t.Error("system message not inserted at head")
	}
	if msg.ID == "" {
		t.Error("created system message has no ID")
	}
}

func TestConversation_Clone(t *testing.T) {
	conv := NewSeededConversation()
	conv.Preference = PreferenceChosen

	clone := conv.Clone()
	clone.Messages[0].Content = "mutated"
	clone.Preference = PreferenceRejected

	if conv.Messages[0].Content == "mutated" {
		t.Error("clone shares message storage with original")
	}
	if conv.Preference != PreferenceChosen {
		t.Error("clone shares preference with original")
	}
}

// =============================================================================
// SUBJECT EXTRACTION TESTS
// =============================================================================

func TestSubject_SkipsSystemMessage(t *testing.T) {
	// Exactly 40 characters: returned unmodified, no ellipsis.
	content := "Hello world, how are you today my friend"
	conv := NewConversation()
	conv.Messages = []*Message{
		NewSystemMessage("Be terse"),
		NewUserMessage(content),
	}

	got := conv.Subject()
	if got != content {
		t.Errorf("Subject = %q, want %q", got, content)
	}
}

func TestSubject_TruncatesLongContent(t *testing.T) {
	content := strings.Repeat("a", 45)
	conv := NewConversation()
	conv.Messages = []*Message{NewUserMessage(content)}

	got := conv.Subject()
	want := strings.Repeat("a", 40) + "..."
	if got != want {
		t.Errorf("Subject = %q, want %q", got, want)
	}
}

func TestSubject_OnlySystemMessage(t *testing.T) {
	conv := NewConversation()
	conv.Messages = []*Message{NewSystemMessage("x")}

	if got := conv.Subject(); got != "New Conversation" {
		t.Errorf("Subject = %q, want %q", got, "New Conversation")
	}
}

func TestSubject_EmptyConversation(t *testing.T) {
	conv := NewConversation()
	if got := conv.Subject(); got != "New Conversation" {
		t.Errorf("Subject = %q, want %q", got, "New Conversation")
	}
}

func TestSubject_WhitespaceOnlyContent(t *testing.T) {
	conv := NewConversation()
	conv.Messages = []*Message{NewUserMessage("   ")}

	if got := conv.Subject(); got != "Empty user message" {
		t.Errorf("Subject = %q, want %q", got, "Empty user message")
	}
}

func TestSubject_UnknownRoleEmptyContent(t *testing.T) {
	conv := NewConversation()
	conv.Messages = []*Message{NewMessage(Role("critic"), " \t ")}

	if got := conv.Subject(); got != "Empty critic message" {
		t.Errorf("Subject = %q, want %q", got, "Empty critic message")
	}
}

func TestSubject_FirstLineOnly(t *testing.T) {
	conv := NewConversation()
	conv.Messages = []*Message{NewUserMessage("  first line  \nsecond line")}

	if got := conv.Subject(); got != "first line" {
		t.Errorf("Subject = %q, want %q", got, "first line")
	}
}

// =============================================================================
// ROLE COUNT TESTS
// =============================================================================

func TestStatsLine(t *testing.T) {
	conv := NewConversation()
	conv.Messages = []*Message{
		NewSystemMessage("s"),
		NewUserMessage("u1"),
		NewAssistantMessage("a1"),
		NewUserMessage("u2"),
	}

	want := "2 user / 1 assistant + system"
	if got := conv.StatsLine(); got != want {
		t.Errorf("StatsLine = %q, want %q", got, want)
	}
}
