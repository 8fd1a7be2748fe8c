// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#60a5fa"}
	muted  = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	danger = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"}
	border = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#4b5563"}
)

// Styles holds the lipgloss styles used by the browser.
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	ActiveLabel lipgloss.Style
	Error       lipgloss.Style
	Count       lipgloss.Style
	Results     lipgloss.Style
	Focused     lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
}

// DefaultStyles returns the default browser styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			MarginBottom(1),

		Label: lipgloss.NewStyle().
			Foreground(muted).
			Width(8),

		ActiveLabel: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Width(8),

		Error: lipgloss.NewStyle().
			Foreground(danger).
			Bold(true),

		Count: lipgloss.NewStyle().
			Bold(true),

		Results: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border),

		Focused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent),

		Status: lipgloss.NewStyle().
			Foreground(accent),

		Help: lipgloss.NewStyle().
			Foreground(muted),
	}
}
