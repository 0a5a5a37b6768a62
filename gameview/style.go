package gameview

import "github.com/charmbracelet/lipgloss"

// Styles carries the lipgloss styles shared by every view.
type Styles struct {
	Base      lipgloss.Style
	Title     lipgloss.Style
	Clock     lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
	Coin      lipgloss.Style
	Warn      lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Base:      lipgloss.NewStyle().Padding(1, 2),
		Title:     lipgloss.NewStyle().Bold(true),
		Clock:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("36")),
		Hint:      lipgloss.NewStyle().Faint(true),
		Coin:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		Warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
