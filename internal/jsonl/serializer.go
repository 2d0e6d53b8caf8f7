// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package jsonl

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/treehole-hk/openai-trainingset-editor/internal/model"
)

// =============================================================================
// SERIALIZATION
// =============================================================================

// Serialize converts conversations back into line-delimited JSON.
//
// Each conversation becomes exactly one output line, in sequence order,
// joined by single newlines with no trailing newline. Ephemeral message IDs
// are stripped; the preference field is omitted when absent and, when a
// normalized tag is set, replaces any unrecognized incoming value; every
// other field is emitted verbatim. Field order is deterministic (pass-through
// fields sorted, then messages, then preference) so serializing the same
// document twice yields identical text.
func Serialize(conversations []*model.Conversation) string {
	lines := make([]string, len(conversations))
	for i, conv := range conversations {
		lines[i] = serializeConversation(conv)
	}
	return strings.Join(lines, "\n")
}

func serializeConversation(conv *model.Conversation) string {
	var sb strings.Builder
	sb.WriteByte('{')

	first := true
	for _, key := range sortedKeys(conv.Extra) {
		// An unrecognized preference value rides along in Extra; once the
		// conversation carries a normalized tag, that copy must not be
		// emitted too or the line would repeat the key.
		if key == "preference" && conv.Preference.Valid() {
			continue
		}
		writeField(&sb, &first, key, conv.Extra[key])
	}

	writeSeparator(&sb, &first)
	sb.WriteString(`"messages":[`)
	for i, msg := range conv.Messages {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeMessage(&sb, msg)
	}
	sb.WriteByte(']')

	if conv.Preference.Valid() {
		writeField(&sb, &first, "preference", jsonString(string(conv.Preference)))
	}

	sb.WriteByte('}')
	return sb.String()
}

func writeMessage(sb *strings.Builder, msg *model.Message) {
	sb.WriteByte('{')
	first := true

	// Role and content captured at parse time come first; when the source
	// carried a non-string role or content it is still sitting in Extra and
	// must not be shadowed by an empty struct field.
	if _, held := msg.Extra["role"]; !held {
		writeField(sb, &first, "role", jsonString(string(msg.Role)))
	}
	if _, held := msg.Extra["content"]; !held {
		writeField(sb, &first, "content", jsonString(msg.Content))
	}

	for _, key := range sortedKeys(msg.Extra) {
		writeField(sb, &first, key, msg.Extra[key])
	}

	sb.WriteByte('}')
}

// =============================================================================
// HELPERS
// =============================================================================

func writeField(sb *strings.Builder, first *bool, key string, raw json.RawMessage) {
	writeSeparator(sb, first)
	sb.Write(jsonString(key))
	sb.WriteByte(':')
	sb.Write(raw)
}

func writeSeparator(sb *strings.Builder, first *bool) {
	if !*first {
		sb.WriteByte(',')
	}
	*first = false
}

func jsonString(s string) json.RawMessage {
	// Strings always marshal without error.
	data, _ := json.Marshal(s)
	return data
}

func sortedKeys(m map[string]json.RawMessage) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
