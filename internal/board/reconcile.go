// Package board implements the client side of ticket board reordering: the
// drag session state machine, the order reconciler, the board store with its
// optimistic update protocol, and the engine that ties them to the ticket API.
package board

import (
	"slices"

	"github.com/thenoetrevino/deskboard/internal/models"
)

// Placement is the dragged ticket's new column and order
type Placement struct {
	ID     string
	Status models.Status
	Order  int
}

// Reconciliation is the minimal set of order writes for one drop
type Reconciliation struct {
	Primary  Placement
	Affected []models.OrderChange
}

// Command turns the reconciliation into the wire command. Versions of the
// touched columns are copied from base so the server can detect stale drags.
func (r Reconciliation) Command(base *models.Board, from models.Status) models.ReorderCommand {
	cmd := models.ReorderCommand{
		TicketID:        r.Primary.ID,
		NewStatus:       r.Primary.Status,
		NewOrder:        r.Primary.Order,
		AffectedTickets: slices.Clone(r.Affected),
	}
	if cmd.AffectedTickets == nil {
		cmd.AffectedTickets = []models.OrderChange{}
	}
	if base != nil && len(base.Versions) > 0 {
		cmd.ColumnVersions = map[models.Status]int64{}
		for _, s := range []models.Status{from, r.Primary.Status} {
			if v, ok := base.Versions[s]; ok {
				cmd.ColumnVersions[s] = v
			}
		}
	}
	return cmd
}

// Reconcile computes the writes needed to move ticketID to targetIndex of
// targetStatus. board is the snapshot the server currently agrees with; it is
// not modified.
//
// Every touched column is reindexed 0..n-1 in its new visual order. Only
// siblings whose order differs from board are reported in Affected; the moved
// ticket is reported as Primary. An index past the end appends, a negative
// index inserts at the top.
func Reconcile(board *models.Board, ticketID string, targetStatus models.Status, targetIndex int) (Reconciliation, bool) {
	source, sourceIndex, ok := board.Locate(ticketID)
	if !ok {
		return Reconciliation{}, false
	}

	previous := make(map[string]int)
	for _, s := range []models.Status{source, targetStatus} {
		for _, t := range board.Column(s) {
			previous[t.ID] = t.Order
		}
	}

	sourceList := slices.Clone(board.Column(source))
	moved := sourceList[sourceIndex]
	sourceList = slices.Delete(sourceList, sourceIndex, sourceIndex+1)

	targetList := sourceList
	if targetStatus != source {
		targetList = slices.Clone(board.Column(targetStatus))
	}
	targetIndex = clampIndex(targetIndex, len(targetList))
	targetList = slices.Insert(targetList, targetIndex, moved)

	var affected []models.OrderChange
	collect := func(list []*models.TicketSummary) {
		for i, t := range list {
			if t.ID == ticketID {
				continue
			}
			if previous[t.ID] != i {
				affected = append(affected, models.OrderChange{ID: t.ID, Order: i})
			}
		}
	}
	if targetStatus != source {
		collect(sourceList)
	}
	collect(targetList)

	return Reconciliation{
		Primary: Placement{
			ID:     ticketID,
			Status: targetStatus,
			Order:  targetIndex,
		},
		Affected: affected,
	}, true
}

func clampIndex(index, length int) int {
	return max(0, min(index, length))
}
