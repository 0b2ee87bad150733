package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Core color palette inspired by pnpm
	primaryColor = lipgloss.Color("#0969DA") // GitHub blue
	warningColor = lipgloss.Color("#D29922") // Orange
	errorColor   = lipgloss.Color("#CF222E") // Red
	dimColor     = lipgloss.Color("#6E7681") // Gray
	titleColor   = lipgloss.Color("#39D353") // Bright green
	dateColor    = lipgloss.Color("#A371F7") // Light purple
)

// Styles are bound to one lipgloss renderer so that output written to a pipe
// or a buffer carries no escape sequences.
type Styles struct {
	UnreadTitle lipgloss.Style
	ReadTitle   lipgloss.Style
	Unread      lipgloss.Style
	Read        lipgloss.Style
	Date        lipgloss.Style
	Count       lipgloss.Style
	Prompt      lipgloss.Style
	Error       lipgloss.Style
}

func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		UnreadTitle: r.NewStyle().
			Foreground(titleColor).
			Bold(true),

		ReadTitle: r.NewStyle().
			Foreground(primaryColor),

		Unread: r.NewStyle().
			Bold(true),

		Read: r.NewStyle(),

		Date: r.NewStyle().
			Foreground(dateColor).
			Italic(true),

		Count: r.NewStyle().
			Foreground(warningColor).
			Bold(true),

		Prompt: r.NewStyle().
			Foreground(dimColor),

		Error: r.NewStyle().
			Foreground(errorColor).
			Bold(true),
	}
}
