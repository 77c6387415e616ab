package board

import (
	"fmt"

	"github.com/thenoetrevino/deskboard/internal/models"
)

// Apply returns a copy of b with cmd applied: the primary ticket takes its new
// status and order, affected siblings take their new orders, and touched
// columns are re-sorted. b is not modified.
func Apply(b *models.Board, cmd models.ReorderCommand) (*models.Board, error) {
	out := b.Clone()

	source, index, ok := out.Locate(cmd.TicketID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrTicketNotOnBoard, cmd.TicketID)
	}

	moved := out.Columns[source][index]
	out.Columns[source] = append(out.Columns[source][:index], out.Columns[source][index+1:]...)
	moved.Status = cmd.NewStatus
	moved.Order = cmd.NewOrder
	out.Columns[cmd.NewStatus] = append(out.Columns[cmd.NewStatus], moved)

	touched := map[models.Status]bool{source: true, cmd.NewStatus: true}
	for _, change := range cmd.AffectedTickets {
		s, i, ok := out.Locate(change.ID)
		if !ok {
			continue
		}
		out.Columns[s][i].Order = change.Order
		touched[s] = true
	}

	for s := range touched {
		models.SortColumn(out.Columns[s])
	}
	return out, nil
}
