// Package ui provides terminal styling for lin CLI output.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// ColorFail marks fatal errors on stderr.
	ColorFail = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	// ColorWarn marks non-fatal warnings.
	ColorWarn = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	// ColorAccent highlights identifiers and headers.
	ColorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
	// ColorMuted dims secondary detail.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	// ColorPass marks completed work.
	ColorPass = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
)

var (
	FailStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	PassStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
)

// PriorityGlyph renders a compact priority marker for list rows.
func PriorityGlyph(priority int) string {
	switch priority {
	case 1:
		return FailStyle.Render("!!")
	case 2:
		return WarnStyle.Render("! ")
	case 3:
		return "  "
	case 4:
		return MutedStyle.Render("· ")
	}
	return "  "
}

// StateGlyph renders a one-character state marker by coarse type.
func StateGlyph(stateType string) string {
	switch stateType {
	case "started":
		return AccentStyle.Render("◐")
	case "completed":
		return PassStyle.Render("●")
	case "canceled":
		return MutedStyle.Render("×")
	case "triage":
		return WarnStyle.Render("?")
	default: // backlog, unstarted
		return MutedStyle.Render("○")
	}
}
