// Package tui implements a read-only bubbletea browser over a
// generated or persisted universe.Catalog. Grounded on the teacher's
// internal/tui package: a single Model driving a BubbleTea program
// (without the teacher's Screen mode enum), lipgloss styles named after their
// role rather than their color, and box-drawing helpers for panel
// borders (internal/tui/ui_components.go, internal/tui/model.go).
package tui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle is used for the program title and pane headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	// HighlightStyle marks the current selection's key fields.
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	// MutedStyle is used for secondary text and footer hints.
	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	// SelectedStyle marks the cursor row in a list.
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11")).
			Background(lipgloss.Color("0"))

	// LifeStyle marks a planet that has a civilization.
	LifeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)
