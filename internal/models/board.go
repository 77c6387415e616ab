package models

import (
	"cmp"
	"fmt"
	"slices"
)

// Board is a snapshot of the ticket board: every column's tickets in visual order,
// plus the server's version stamp for each column at the time of the read.
//
// A Board handed out by the store is treated as immutable. Code that needs to
// change one works on a Clone.
type Board struct {
	Columns  map[Status][]*TicketSummary `json:"columns"`
	Versions map[Status]int64            `json:"versions,omitempty"`
}

// NewBoard returns a board with every column present and empty.
func NewBoard() *Board {
	b := &Board{
		Columns:  make(map[Status][]*TicketSummary, len(BoardColumns)),
		Versions: make(map[Status]int64, len(BoardColumns)),
	}
	for _, s := range BoardColumns {
		b.Columns[s] = []*TicketSummary{}
	}
	return b
}

// Clone returns a deep copy. Ticket summaries are copied by value so the clone
// shares no mutable state with the original.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	out := &Board{
		Columns:  make(map[Status][]*TicketSummary, len(b.Columns)),
		Versions: make(map[Status]int64, len(b.Versions)),
	}
	for s, tickets := range b.Columns {
		cloned := make([]*TicketSummary, len(tickets))
		for i, t := range tickets {
			c := *t
			cloned[i] = &c
		}
		out.Columns[s] = cloned
	}
	for s, v := range b.Versions {
		out.Versions[s] = v
	}
	return out
}

// Column returns the tickets of one column (nil for unknown columns).
func (b *Board) Column(s Status) []*TicketSummary {
	if b == nil {
		return nil
	}
	return b.Columns[s]
}

// Locate finds the column and index of a ticket.
func (b *Board) Locate(ticketID string) (Status, int, bool) {
	if b == nil {
		return "", -1, false
	}
	for s, tickets := range b.Columns {
		for i, t := range tickets {
			if t.ID == ticketID {
				return s, i, true
			}
		}
	}
	return "", -1, false
}

// Ticket returns the summary for a ticket id, or nil.
func (b *Board) Ticket(ticketID string) *TicketSummary {
	s, i, ok := b.Locate(ticketID)
	if !ok {
		return nil
	}
	return b.Columns[s][i]
}

// Len returns the number of tickets on the board.
func (b *Board) Len() int {
	n := 0
	for _, tickets := range b.Columns {
		n += len(tickets)
	}
	return n
}

// CheckInvariants verifies that each column's order values strictly increase
// down the column and that every ticket's status matches its column.
func (b *Board) CheckInvariants() error {
	for s, tickets := range b.Columns {
		for i, t := range tickets {
			if t.Status != s {
				return fmt.Errorf("%w: ticket %s has status %s but sits in %s", ErrStatusMismatch, t.ID, t.Status, s)
			}
			if i > 0 && tickets[i-1].Order >= t.Order {
				return fmt.Errorf("%w: %s at %d (%d) follows %s (%d)",
					ErrTiedOrder, t.ID, i, t.Order, tickets[i-1].ID, tickets[i-1].Order)
			}
		}
	}
	return nil
}

// CompareTickets is the rendering order inside a column: order ascending,
// newest first among equal orders, then id so the result never depends on
// input order.
func CompareTickets(a, b *TicketSummary) int {
	if c := cmp.Compare(a.Order, b.Order); c != 0 {
		return c
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// SortColumn sorts tickets in place into rendering order.
func SortColumn(tickets []*TicketSummary) {
	slices.SortStableFunc(tickets, CompareTickets)
}

// BoardFromTickets groups tickets into board columns in rendering order.
// Tickets whose status is not a board column are skipped.
func BoardFromTickets(tickets []*TicketSummary, versions map[Status]int64) *Board {
	b := NewBoard()
	for _, t := range tickets {
		if !t.Status.OnBoard() {
			continue
		}
		b.Columns[t.Status] = append(b.Columns[t.Status], t)
	}
	for _, s := range BoardColumns {
		SortColumn(b.Columns[s])
	}
	for s, v := range versions {
		b.Versions[s] = v
	}
	return b
}
