package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 0)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	// phase accent colors
	phaseColors = map[string]lipgloss.Color{
		"focus": lipgloss.Color("#ef4444"),
		"short": lipgloss.Color("#10b981"),
		"long":  lipgloss.Color("#3b82f6"),
		"watch": lipgloss.Color("#a855f7"),
	}
)
