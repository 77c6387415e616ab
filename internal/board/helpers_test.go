package board

import (
	"strconv"
	"time"

	"github.com/thenoetrevino/deskboard/internal/models"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// makeBoard builds a board whose columns hold the given ids in order with
// orders 0..n-1
func makeBoard(columns map[models.Status][]string) *models.Board {
	b := models.NewBoard()
	for status, ids := range columns {
		tickets := make([]*models.TicketSummary, len(ids))
		for i, id := range ids {
			tickets[i] = &models.TicketSummary{
				ID:        id,
				Subject:   "ticket " + id,
				Status:    status,
				Order:     i,
				CreatedAt: epoch,
			}
		}
		b.Columns[status] = tickets
	}
	return b
}

// layout renders a column as "id:order" pairs
func layout(b *models.Board, s models.Status) []string {
	out := []string{}
	for _, t := range b.Column(s) {
		out = append(out, t.ID+":"+strconv.Itoa(t.Order))
	}
	return out
}

func ids(b *models.Board, s models.Status) []string {
	out := []string{}
	for _, t := range b.Column(s) {
		out = append(out, t.ID)
	}
	return out
}
