package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/deskboard/internal/config"
)

// styles are the board's lipgloss styles for one theme
type styles struct {
	column   lipgloss.Style
	title    lipgloss.Style
	card     lipgloss.Style
	selected lipgloss.Style
	dragging lipgloss.Style
	subtle   lipgloss.Style
	info     lipgloss.Style
	err      lipgloss.Style
}

func newStyles(theme config.Theme) styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.CardBorder)).
		Foreground(lipgloss.Color(theme.Normal)).
		Padding(0, 1)

	return styles{
		column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.ColumnBorder)).
			Padding(0, 1),
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Title)),
		card:     card,
		selected: card.BorderForeground(lipgloss.Color(theme.SelectedBorder)),
		dragging: card.
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(theme.DraggingBorder)),
		subtle: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)),
		info:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.InfoFg)),
		err:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ErrorFg)),
	}
}
