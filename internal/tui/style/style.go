// Package style defines lipgloss styles for the TUI.
package style

import "github.com/charmbracelet/lipgloss"

// Names omit a "Style" suffix; call sites read style.Title.
var (
	// Title is used for step titles and headers.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("208"))

	// Subtitle is used for secondary text.
	Subtitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	Warning = lipgloss.NewStyle().
		Foreground(lipgloss.Color("214"))

	// Panel frames a group of options.
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1)

	// Help is used for keyboard shortcut hints.
	Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	// Key highlights keyboard keys inside help text.
	Key = lipgloss.NewStyle().
		Foreground(lipgloss.Color("208")).
		Bold(true)

	Progress = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	// Label is used for inline labels such as "時間：".
	Label = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255"))

	// Muted is used for de-emphasized text such as file paths.
	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	Bullet = lipgloss.NewStyle().
		Foreground(lipgloss.Color("208"))

	// Selected marks chosen tags, days and options.
	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))

	// Cursor marks the row or wheel that has focus.
	Cursor = lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true)
)
