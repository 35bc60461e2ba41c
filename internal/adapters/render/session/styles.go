package session

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	label     lipgloss.Style
	detail    lipgloss.Style
	granted   lipgloss.Style
	warning   lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
	timestamp lipgloss.Style
	sensor    lipgloss.Style
	reading   lipgloss.Style
	help      lipgloss.Style
	spinner   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		granted:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:   lipgloss.NewStyle().MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
		timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		sensor:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		reading:   lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		help:      lipgloss.NewStyle().Faint(true).MarginTop(1),
		spinner:   lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
	}
}
