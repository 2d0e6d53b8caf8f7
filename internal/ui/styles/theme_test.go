// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/muesli/termenv"
)

func TestNewThemeModes(t *testing.T) {
	dark := NewTheme(termenv.Ascii, "dark")
	if !dark.Dark() {
		t.Error("dark mode should resolve to dark palette")
	}

	light := NewTheme(termenv.Ascii, "light")
	if light.Dark() {
		t.Error("light mode should resolve to light palette")
	}
}

func TestRoleStyleCoversKnownRoles(t *testing.T) {
	theme := NewTheme(termenv.Ascii, "dark")
	for _, role := range []string{"system", "user", "assistant"} {
		s := theme.RoleStyle(role)
		if !s.GetBold() {
			t.Errorf("role %q should render bold", role)
		}
	}
	// Unknown roles get the muted style, never a zero style.
	if theme.RoleStyle("tool").GetBold() {
		t.Error("unknown role should fall back to muted style")
	}
}

func TestRoleColorFallback(t *testing.T) {
	if RoleColor("assistant") != AssistantRoleColor {
		t.Error("assistant role color mismatch")
	}
	if RoleColor("other") != TextSecondary {
		t.Error("unknown role should use secondary text color")
	}
}
