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

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Italic(true)

	dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)
