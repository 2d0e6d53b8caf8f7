// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// ===== ACCENT COLORS =====

// Accent colors carry semantic meaning throughout the editor. Each is an
// AdaptiveColor so the palette degrades gracefully on light terminals.
var (
	// Purple is the primary brand accent: titles, selection, focus.
	Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

	// Cyan marks interactive affordances and key hints.
	Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#67E8F9"}

	// Emerald signals success and the "chosen" preference mark.
	Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#6EE7B7"}

	// Rose signals errors and the "rejected" preference mark.
	Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FDA4AF"}

	// Amber signals warnings and unsaved state.
	Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FCD34D"}
)

// ===== SURFACE COLORS =====

var (
	Surface     = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
	SurfaceAlt  = lipgloss.AdaptiveColor{Light: "#F4F4F5", Dark: "#27273A"}
	SurfaceHigh = lipgloss.AdaptiveColor{Light: "#E4E4E7", Dark: "#313244"}
	Border      = lipgloss.AdaptiveColor{Light: "#D4D4D8", Dark: "#45475A"}
	BorderFocus = Purple
)

// ===== TEXT COLORS =====

var (
	TextPrimary   = lipgloss.AdaptiveColor{Light: "#18181B", Dark: "#CDD6F4"}
	TextSecondary = lipgloss.AdaptiveColor{Light: "#52525B", Dark: "#A6ADC8"}
	TextMuted     = lipgloss.AdaptiveColor{Light: "#A1A1AA", Dark: "#6C7086"}
	TextInverted  = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#11111B"}
)

// ===== ROLE COLORS =====

// Role colors tint message bubbles by speaker so a conversation scans
// at a glance.
var (
	SystemRoleColor    = Amber
	UserRoleColor      = Cyan
	AssistantRoleColor = Purple
)

// RoleColor returns the accent for a message role string. Unknown roles
// fall back to the secondary text color.
func RoleColor(role string) lipgloss.AdaptiveColor {
	switch role {
	case "system":
		return SystemRoleColor
	case "user":
		return UserRoleColor
	case "assistant":
		return AssistantRoleColor
	default:
		return TextSecondary
	}
}

// ===== STATUS INDICATORS =====

const (
	IndicatorChosen   = "▲"
	IndicatorRejected = "▼"
	IndicatorDirty    = "●"
	IndicatorClean    = "○"
)
