package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the chat layout: bot turns on the left in a grey bubble,
// user turns on the right in a blue one.
type Styles struct {
	Title   lipgloss.Style
	Subtle  lipgloss.Style
	BotMsg  lipgloss.Style
	UserMsg lipgloss.Style
	Error   lipgloss.Style
	Prompt  lipgloss.Style
	Footer  lipgloss.Style
}

func newStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			Padding(0, 1),
		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		BotMsg: lipgloss.NewStyle().
			Background(lipgloss.Color("254")).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1).
			MarginBottom(1),
		UserMsg: lipgloss.NewStyle().
			Background(lipgloss.Color("26")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1).
			MarginBottom(1),
		Error: lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("124")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1).
			MarginBottom(1),
		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
	}
}
