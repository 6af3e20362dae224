package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))

	statusOpenStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	statusConnectingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	statusClosedStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	sideBuyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	sideSellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	statusFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)
