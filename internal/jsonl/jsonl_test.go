// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package jsonl

import (
	"strings"
	"testing"

	"github.com/treehole-hk/openai-trainingset-editor/internal/model"
)

// =============================================================================
// PARSE TESTS
// =============================================================================

func TestParse_SingleValidLine(t *testing.T) {
	convs, errs := Parse(`{"messages":[{"role":"user","content":"hi"}]}`)

	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(convs) != 1 {
		t.Fatalf("conversations = %d, want 1", len(convs))
	}

	conv := convs[0]
	if len(conv.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(conv.Messages))
	}
	msg := conv.Messages[0]
	if msg.Role != model.RoleUser {
		t.Errorf("role = %q, want user", msg.Role)
	}
	if msg.Content != "hi" {
		t.Errorf("content = %q, want hi", msg.Content)
	}
	if msg.ID == "" {
		t.Error("message has no ID assigned")
	}
}

func TestParse_MixedValidAndInvalid(t *testing.T) {
	input := `{"messages":[{"role":"user","content":"hi"}]}` + "\n" +
		`{not valid json}` + "\n" +
		`{"foo":"bar"}`

	convs, errs := Parse(input)

	if len(convs) != 1 {
		t.Errorf("conversations = %d, want 1", len(convs))
	}
	if len(errs) != 2 {
		t.Fatalf("errors = %d, want 2: %v", len(errs), errs)
	}
	if !strings.HasPrefix(errs[0], "Line 2:") {
		t.Errorf("first error = %q, want Line 2 prefix", errs[0])
	}
	if errs[1] != "Line 3: Invalid format - missing or invalid 'messages' array" {
		t.Errorf("second error = %q", errs[1])
	}
}

func TestParse_BlankLinesSkippedSilently(t *testing.T) {
	input := "\n" + `{"messages":[]}` + "\n\n" + `{"messages":[]}` + "\n\n\n"

	convs, errs := Parse(input)

	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
	if len(convs) != 2 {
		t.Errorf("conversations = %d, want 2", len(convs))
	}
}

func TestParse_LineNumbersCountBlankLines(t *testing.T) {
	input := `{"messages":[]}` + "\n\n" + `{bad}`

	_, errs := Parse(input)

	if len(errs) != 1 {
		t.Fatalf("errors = %d, want 1", len(errs))
	}
	if !strings.HasPrefix(errs[0], "Line 3:") {
		t.Errorf("error = %q, want Line 3 prefix", errs[0])
	}
}

func TestParse_MessagesNullIsInvalid(t *testing.T) {
	_, errs := Parse(`{"messages":null}`)

	if len(errs) != 1 {
		t.Fatalf("errors = %d, want 1", len(errs))
	}
	if errs[0] != "Line 1: Invalid format - missing or invalid 'messages' array" {
		t.Errorf("error = %q", errs[0])
	}
}

func TestParse_MessagesNotArrayIsInvalid(t *testing.T) {
	_, errs := Parse(`{"messages":"nope"}`)

	if len(errs) != 1 {
		t.Errorf("errors = %d, want 1", len(errs))
	}
}

func TestParse_IncomingIDsOverwritten(t *testing.T) {
	convs, _ := Parse(`{"messages":[{"id":"wire-id","role":"user","content":"x"}]}`)

	msg := convs[0].Messages[0]
	if msg.ID == "wire-id" {
		t.Error("incoming id was not overwritten")
	}
	if _, held := msg.Extra["id"]; held {
		t.Error("incoming id leaked into Extra")
	}
}

func TestParse_UniqueIDsAcrossConversations(t *testing.T) {
	input := `{"messages":[{"role":"user","content":"a"},{"role":"assistant","content":"b"}]}` + "\n" +
		`{"messages":[{"role":"user","content":"c"}]}`

	convs, _ := Parse(input)

	seen := make(map[string]bool)
	for _, conv := range convs {
		for _, msg := range conv.Messages {
			if seen[msg.ID] {
				t.Fatalf("duplicate id %q", msg.ID)
			}
			seen[msg.ID] = true
		}
	}
}

func TestParse_PreservesUnknownFields(t *testing.T) {
	convs, errs := Parse(`{"weight":3,"messages":[{"role":"user","content":"x","name":"alice"}]}`)

	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	conv := convs[0]
	if string(conv.Extra["weight"]) != "3" {
		t.Errorf("top-level extra = %q, want 3", conv.Extra["weight"])
	}
	if string(conv.Messages[0].Extra["name"]) != `"alice"` {
		t.Errorf("message extra = %q, want %q", conv.Messages[0].Extra["name"], `"alice"`)
	}
}

func TestParse_PreferenceTag(t *testing.T) {
	convs, _ := Parse(`{"messages":[],"preference":"chosen"}` + "\n" +
		`{"messages":[],"preference":null}` + "\n" +
		`{"messages":[]}`)

	if convs[0].Preference != model.PreferenceChosen {
		t.Errorf("preference = %q, want chosen", convs[0].Preference)
	}
	if convs[1].Preference != model.PreferenceNone {
		t.Errorf("null preference = %q, want none", convs[1].Preference)
	}
	if _, held := convs[1].Extra["preference"]; held {
		t.Error("null preference leaked into Extra")
	}
	if convs[2].Preference != model.PreferenceNone {
		t.Errorf("absent preference = %q, want none", convs[2].Preference)
	}
}

func TestParse_LineAccounting(t *testing.T) {
	// No line contributes to both outputs.
	input := `{"messages":[]}` + "\n" + `{bad}` + "\n" + `{"messages":[]}` + "\n" + `{"x":1}`

	convs, errs := Parse(input)

	if len(convs)+len(errs) != 4 {
		t.Errorf("convs+errs = %d, want 4 (one per non-blank line)", len(convs)+len(errs))
	}
}

func TestParseReader_MatchesParse(t *testing.T) {
	input := `{"messages":[{"role":"user","content":"hi"}]}` + "\n" + `{bad}`

	convs, errs := ParseReader(strings.NewReader(input))

	if len(convs) != 1 || len(errs) != 1 {
		t.Errorf("convs = %d, errs = %d, want 1 and 1", len(convs), len(errs))
	}
}

// =============================================================================
// SERIALIZE TESTS
// =============================================================================

func TestSerialize_StripsIDs(t *testing.T) {
	convs, _ := Parse(`{"messages":[{"role":"user","content":"hi"}]}`)

	out := Serialize(convs)

	if strings.Contains(out, `"id"`) {
		t.Errorf("serialized output leaks id field: %s", out)
	}
}

func TestSerialize_OmitsAbsentPreference(t *testing.T) {
	convs, _ := Parse(`{"messages":[{"role":"user","content":"hi"}]}`)

	out := Serialize(convs)

	if strings.Contains(out, "preference") {
		t.Errorf("absent preference was serialized: %s", out)
	}
}

func TestSerialize_EmitsPreference(t *testing.T) {
	convs, _ := Parse(`{"messages":[]}`)
	convs[0].Preference = model.PreferenceRejected

	out := Serialize(convs)

	if !strings.Contains(out, `"preference":"rejected"`) {
		t.Errorf("preference missing from output: %s", out)
	}
}

func TestSerialize_TagSupersedesUnrecognizedPreference(t *testing.T) {
	convs, _ := Parse(`{"messages":[],"preference":"maybe"}`)
	convs[0].Preference = model.PreferenceChosen

	out := Serialize(convs)

	if got := strings.Count(out, `"preference"`); got != 1 {
		t.Fatalf("preference key emitted %d times: %s", got, out)
	}
	if !strings.Contains(out, `"preference":"chosen"`) {
		t.Errorf("normalized tag missing from output: %s", out)
	}
}

func TestSerialize_UnrecognizedPreferenceRoundTrips(t *testing.T) {
	convs, _ := Parse(`{"messages":[],"preference":"maybe"}`)

	out := Serialize(convs)

	if !strings.Contains(out, `"preference":"maybe"`) {
		t.Errorf("untagged conversation should keep the incoming value: %s", out)
	}
}

func TestSerialize_OneLinePerConversation(t *testing.T) {
	convs, _ := Parse(`{"messages":[]}` + "\n" + `{"messages":[]}`)

	out := Serialize(convs)

	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected exactly one newline, got %q", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("unexpected trailing newline")
	}
}

func TestRoundTrip_FieldsPreserved(t *testing.T) {
	input := `{"weight":3,"messages":[{"role":"user","content":"hi","name":"alice"}],"source":"curated"}`

	convs, errs := Parse(input)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	reparsed, errs := Parse(Serialize(convs))
	if len(errs) != 0 {
		t.Fatalf("reparse errors: %v", errs)
	}

	orig, again := convs[0], reparsed[0]
	if again.Messages[0].Content != orig.Messages[0].Content {
		t.Error("content changed across round trip")
	}
	if again.Messages[0].Role != orig.Messages[0].Role {
		t.Error("role changed across round trip")
	}
	if string(again.Extra["weight"]) != "3" || string(again.Extra["source"]) != `"curated"` {
		t.Error("top-level extras changed across round trip")
	}
	if string(again.Messages[0].Extra["name"]) != `"alice"` {
		t.Error("message extras changed across round trip")
	}
	// Fresh ids are assigned on every parse.
	if again.Messages[0].ID == orig.Messages[0].ID {
		t.Error("expected fresh id after round trip")
	}
}

func TestRoundTrip_SerializeIdempotent(t *testing.T) {
	input := `{"b":2,"a":1,"messages":[{"role":"user","content":"hi"},{"role":"assistant","content":"yo","score":0.5}],"preference":"chosen"}`

	convs, _ := Parse(input)
	once := Serialize(convs)

	reparsed, _ := Parse(once)
	twice := Serialize(reparsed)

	if once != twice {
		t.Errorf("serialize not idempotent:\n once: %s\ntwice: %s", once, twice)
	}
}

func TestSerialize_NonStringRolePreserved(t *testing.T) {
	input := `{"messages":[{"role":42,"content":"x"}]}`

	convs, errs := Parse(input)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	out := Serialize(convs)
	if !strings.Contains(out, `"role":42`) {
		t.Errorf("non-string role lost: %s", out)
	}
	if strings.Contains(out, `"role":42,"role"`) || strings.Count(out, `"role"`) != 1 {
		t.Errorf("role emitted twice: %s", out)
	}
}

// =============================================================================
// PRETTY PRINT TESTS
// =============================================================================

func TestPrettyPrint(t *testing.T) {
	out := PrettyPrint(`{"a":1}` + "\n" + `not json` + "\n\n" + `{"b":2}`)

	blocks := SplitRecords(out)
	if len(blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(blocks))
	}
	if !strings.Contains(blocks[0], "\"a\": 1") {
		t.Errorf("first block not indented: %q", blocks[0])
	}
	if blocks[1] != "not json" {
		t.Errorf("invalid line not kept verbatim: %q", blocks[1])
	}
}
