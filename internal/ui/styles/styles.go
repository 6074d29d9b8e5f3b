// Package styles provides shared lipgloss styles for UI components.
package styles

import "charm.land/lipgloss/v2"

// Colors used throughout the UI
var (
	Primary = lipgloss.Color("62")
	Warning = lipgloss.Color("214")
	Error   = lipgloss.Color("196")
	Muted   = lipgloss.Color("240")
)

// Common styles
var (
	Bold = lipgloss.NewStyle().Bold(true)

	// Header is used for table headers
	Header = lipgloss.NewStyle().Bold(true).Foreground(Primary)

	// Warn highlights counts of files about to be deleted
	Warn = lipgloss.NewStyle().Bold(true).Foreground(Warning)

	MutedStyle = lipgloss.NewStyle().Foreground(Muted)
)
