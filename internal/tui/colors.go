package tui

import "github.com/charmbracelet/lipgloss"

// Color constants for the ayp TUI theme
const (
	// Base Colors
	ColorCardBackground = "#1B1530" // Dark purple
	ColorBorder         = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2"
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383"
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240"

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED"
	ColorAccentBright = "#A78BFA"

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	activePill = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color(ColorSuccess)).
			Padding(0, 1)
	inactivePill = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Background(lipgloss.Color(ColorDisabledText)).
			Padding(0, 1)
)

// statusPill renders the Active/Inactive badge
func statusPill(active bool) string {
	if active {
		return activePill.Render("Active")
	}
	return inactivePill.Render("Inactive")
}

// button renders a Cancel/Save style button
func button(label string, focused, primary, disabled bool) string {
	style := lipgloss.NewStyle().Padding(0, 2)
	switch {
	case disabled:
		style = style.Foreground(lipgloss.Color(ColorDisabledText))
	case focused && primary:
		style = style.
			Background(lipgloss.Color(ColorAccentBright)).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)
	case focused:
		style = style.
			Background(lipgloss.Color(ColorBorder)).
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Bold(true)
	default:
		style = style.Foreground(lipgloss.Color(ColorSecondaryText))
	}
	return style.Render(label)
}
