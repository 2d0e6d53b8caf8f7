// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/treehole-hk/openai-trainingset-editor/internal/model"
)

// maxLineBytes bounds a single record line. Training records with long
// assistant turns can run well past bufio's default 64KB.
const maxLineBytes = 10 * 1024 * 1024

// =============================================================================
// PARSING
// =============================================================================

// Parse converts line-delimited JSON text into conversations.
//
// Blank lines (including trailing ones) are skipped silently. Every other
// line must be a standalone JSON object with a "messages" array; lines that
// are not contribute an error string instead of a conversation, and parsing
// continues. Error strings reference 1-based line numbers in the source
// text. Partial success is expected and normal.
//
// Every message receives a fresh unique ID, overwriting any incoming "id"
// field - IDs are never part of the wire format.
func Parse(text string) ([]*model.Conversation, []string) {
	conversations := make([]*model.Conversation, 0)
	errs := make([]string, 0)

	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		conv, errMsg := parseLine([]byte(line), i+1)
		if errMsg != "" {
			errs = append(errs, errMsg)
			continue
		}
		conversations = append(conversations, conv)
	}

	return conversations, errs
}

// ParseReader is Parse over a stream, reading one record line at a time.
// Lines longer than maxLineBytes abort the scan with a synthetic error.
func ParseReader(r io.Reader) ([]*model.Conversation, []string) {
	conversations := make([]*model.Conversation, 0)
	errs := make([]string, 0)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 256*1024), maxLineBytes)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		conv, errMsg := parseLine(sc.Bytes(), lineNo)
		if errMsg != "" {
			errs = append(errs, errMsg)
			continue
		}
		conversations = append(conversations, conv)
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, "Line "+strconv.Itoa(lineNo+1)+": "+err.Error())
	}

	return conversations, errs
}

// parseLine parses a single record line. It returns either a conversation
// or a non-empty error string, never both.
func parseLine(line []byte, lineNo int) (*model.Conversation, string) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(line, &top); err != nil {
		return nil, "Line " + strconv.Itoa(lineNo) + ": " + err.Error()
	}

	rawMessages, ok := top["messages"]
	if !ok || !isJSONArray(rawMessages) {
		return nil, invalidFormatError(lineNo)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(rawMessages, &items); err != nil {
		return nil, invalidFormatError(lineNo)
	}

	conv := model.NewConversation()
	for _, item := range items {
		msg, ok := parseMessage(item)
		if !ok {
			return nil, invalidFormatError(lineNo)
		}
		conv.Messages = append(conv.Messages, msg)
	}

	// Top-level pass-through fields; "messages" is rebuilt at serialization
	// and a recognized "preference" tag is normalized into the model.
	for key, value := range top {
		if key == "messages" {
			continue
		}
		if key == "preference" {
			if tag, ok := preferenceTag(value); ok {
				conv.Preference = tag
				continue
			}
			// null or unrecognized tags are dropped, matching the
			// omit-when-absent serialization rule.
			if isJSONNull(value) {
				continue
			}
		}
		if conv.Extra == nil {
			conv.Extra = make(map[string]json.RawMessage)
		}
		conv.Extra[key] = value
	}

	return conv, ""
}

// parseMessage converts one element of the "messages" array. Elements that
// are not JSON objects make the whole line invalid.
func parseMessage(item json.RawMessage) (*model.Message, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return nil, false
	}

	msg := &model.Message{ID: uuid.NewString()}

	for key, value := range fields {
		switch key {
		case "id":
			// Incoming ids are discarded; a fresh one is already assigned.
			continue
		case "role":
			var role string
			if err := json.Unmarshal(value, &role); err == nil {
				msg.Role = model.Role(role)
				continue
			}
		case "content":
			var content string
			if err := json.Unmarshal(value, &content); err == nil {
				msg.Content = content
				continue
			}
		}
		if msg.Extra == nil {
			msg.Extra = make(map[string]json.RawMessage)
		}
		msg.Extra[key] = value
	}

	return msg, true
}

// =============================================================================
// HELPERS
// =============================================================================

func invalidFormatError(lineNo int) string {
	return "Line " + strconv.Itoa(lineNo) + ": Invalid format - missing or invalid 'messages' array"
}

// preferenceTag extracts a recognized preference value from a raw field.
func preferenceTag(raw json.RawMessage) (model.Preference, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return model.PreferenceNone, false
	}
	tag := model.Preference(s)
	if !tag.Valid() {
		return model.PreferenceNone, false
	}
	return tag, true
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

