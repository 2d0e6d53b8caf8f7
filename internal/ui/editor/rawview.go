// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/treehole-hk/openai-trainingset-editor/internal/jsonl"
	"github.com/treehole-hk/openai-trainingset-editor/internal/model"
)

// ===== RAW VIEW =====

// openRawView switches to the raw overlay. For a parsed session it
// pretty-prints the selected conversation (or every record when nothing
// is selected); for unrecognized input it shows the text as loaded.
func (m *Model) openRawView() {
	var content string
	if m.sess.RawMode() {
		content = m.sess.RawText()
	} else if conv := m.conversation(); conv != nil {
		content = rawRecord(conv)
	} else {
		var parts []string
		for _, c := range m.sess.Document().Conversations() {
			parts = append(parts, rawRecord(c))
		}
		content = strings.Join(parts, "\n")
	}

	m.overlay.SetContent(m.highlightJSON(content))
	m.overlay.GotoTop()
	m.mode = modeRaw
}

func rawRecord(conv *model.Conversation) string {
	return jsonl.PrettyPrint(jsonl.Serialize([]*model.Conversation{conv}))
}

// highlightJSON runs chroma over the content. Highlighting is cosmetic;
// any failure falls back to the plain text.
func (m *Model) highlightJSON(content string) string {
	style := "github"
	if m.theme.Dark() {
		style = "monokai"
	}
	var b strings.Builder
	if err := quick.Highlight(&b, content, "json", "terminal256", style); err != nil {
		return content
	}
	return b.String()
}
