package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains the styles used by the picker and the CLI report.
type Styles struct {
	Title    lipgloss.Style
	Day      lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Pin      lipgloss.Style
	Help     lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the default picker styles
func DefaultStyles() Styles {
	primary := lipgloss.Color("99")     // Purple
	accent := lipgloss.Color("212")     // Pink
	muted := lipgloss.Color("240")      // Gray
	success := lipgloss.Color("82")     // Green
	warning := lipgloss.Color("214")    // Orange
	errorColor := lipgloss.Color("196") // Red

	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(primary),
		Day:      lipgloss.NewStyle().Bold(true),
		Cursor:   lipgloss.NewStyle().Foreground(accent),
		Selected: lipgloss.NewStyle().Foreground(success),
		Normal:   lipgloss.NewStyle(),
		Pin:      lipgloss.NewStyle().Foreground(warning),
		Help:     lipgloss.NewStyle().Foreground(muted),

		Success: lipgloss.NewStyle().Foreground(success),
		Warning: lipgloss.NewStyle().Foreground(warning),
		Error:   lipgloss.NewStyle().Foreground(errorColor),
	}
}
