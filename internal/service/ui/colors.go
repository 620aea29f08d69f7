package ui

import "github.com/charmbracelet/lipgloss"

// Basic ANSI colors so the help output reads on light and dark terminals.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	DescStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	FlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	UserStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	AssistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
)

// RoleLabel styles a transcript role for terminal output.
func RoleLabel(role string) string {
	switch role {
	case "user":
		return UserStyle.Render(role)
	case "assistant":
		return AssistantStyle.Render(role)
	default:
		return DescStyle.Render(role)
	}
}
