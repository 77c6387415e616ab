package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/deskboard/internal/models"
)

const (
	defaultColumnWidth = 28
	minColumnWidth     = 18
)

func (m Model) columnWidth() int {
	if m.width == 0 {
		return defaultColumnWidth
	}
	return max(m.width/len(models.BoardColumns)-2, minColumnWidth)
}

// View renders the columns side by side, then the status line and help
func (m Model) View() string {
	b := m.engine.CurrentBoard()
	if b == nil {
		if m.statusErr {
			return m.styles.err.Render(m.status) + "\n"
		}
		return m.spinner.View() + " Loading board...\n"
	}

	dragID, dragging := m.engine.Dragging()
	width := m.columnWidth()

	columns := make([]string, 0, len(models.BoardColumns))
	for i, status := range models.BoardColumns {
		tickets := b.Column(status)
		parts := []string{m.styles.title.Render(fmt.Sprintf("%s (%d)", status.Title(), len(tickets)))}
		if len(tickets) == 0 {
			parts = append(parts, m.styles.subtle.Render("empty"))
		}
		for j, t := range tickets {
			style := m.styles.card
			switch {
			case dragging && t.ID == dragID:
				style = m.styles.dragging
			case !dragging && i == m.col && j == m.row:
				style = m.styles.selected
			}
			parts = append(parts, style.Width(width-4).Render(cardText(t)))
		}
		columns = append(columns, m.styles.column.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		m.statusLine(),
		m.help.View(m.keys),
	)
}

func cardText(t *models.TicketSummary) string {
	var meta []string
	if t.Priority != "" {
		meta = append(meta, string(t.Priority))
	}
	if t.Assignee != "" {
		meta = append(meta, t.Assignee)
	}
	text := fmt.Sprintf("#%d %s", t.Number, t.Subject)
	if len(meta) > 0 {
		text += "\n" + strings.Join(meta, " · ")
	}
	return text
}

func (m Model) statusLine() string {
	if m.engine.IsReordering() {
		return m.spinner.View() + " " + m.styles.info.Render("Saving move")
	}
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.styles.err.Render(m.status)
	}
	return m.styles.info.Render(m.status)
}
