package main

import "github.com/charmbracelet/lipgloss"

var (
	green = lipgloss.Color("76")
	red   = lipgloss.Color("204")
	dim   = lipgloss.Color("243")

	successStyle = lipgloss.NewStyle().Foreground(green)
	errorStyle   = lipgloss.NewStyle().Foreground(red)
	mutedStyle   = lipgloss.NewStyle().Foreground(dim)
)

func marker(connected bool) string {
	if connected {
		return successStyle.Render("●")
	}
	return errorStyle.Render("○")
}

func mutedText(s string) string {
	return mutedStyle.Render(s)
}

func successMsg(s string) string {
	return successStyle.Render("✓") + " " + s
}
