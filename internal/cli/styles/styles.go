// Package styles renders board data for the terminal outside the TUI.
package styles

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/deskboard/internal/config"
	"github.com/thenoetrevino/deskboard/internal/models"
)

var (
	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Priority:"
	ValueStyle    lipgloss.Style // For field values

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
)

func init() {
	Init(*config.DefaultTheme())
}

// Init initializes all CLI styles with the given theme
func Init(theme config.Theme) {
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Normal))

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.InfoFg))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.ErrorFg))
}

// TicketLine renders one card as "#12 Subject (HIGH, alice)"
func TicketLine(t *models.TicketSummary) string {
	var extra []string
	if t.Priority != "" {
		extra = append(extra, string(t.Priority))
	}
	if t.Assignee != "" {
		extra = append(extra, t.Assignee)
	}
	line := LabelStyle.Render(fmt.Sprintf("#%d", t.Number)) + " " + ValueStyle.Render(t.Subject)
	if len(extra) > 0 {
		line += " " + SubtitleStyle.Render("("+strings.Join(extra, ", ")+")")
	}
	return line
}

// WriteBoard prints every column in board order with its tickets
func WriteBoard(w io.Writer, b *models.Board) error {
	for _, status := range models.BoardColumns {
		tickets := b.Column(status)
		header := fmt.Sprintf("%s (%d)", status.Title(), len(tickets))
		if _, err := fmt.Fprintln(w, TitleStyle.Render(header)); err != nil {
			return err
		}
		if len(tickets) == 0 {
			if _, err := fmt.Fprintln(w, "  "+SubtitleStyle.Render("empty")); err != nil {
				return err
			}
		}
		for _, t := range tickets {
			if _, err := fmt.Fprintln(w, "  "+TicketLine(t)); err != nil {
				return err
			}
		}
	}
	return nil
}
