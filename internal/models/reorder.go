package models

// OrderChange rewrites the order of one sibling ticket
type OrderChange struct {
	ID    string `json:"id"`
	Order int    `json:"kanbanOrder"`
}

// ReorderCommand is one completed drag, sent to the server as a single unit.
//
// ColumnVersions carries the client's view of the version of every column the
// command touches. When present the server refuses the command if any column
// changed since that view was taken.
type ReorderCommand struct {
	TicketID        string           `json:"ticketId"`
	NewStatus       Status           `json:"newStatus"`
	NewOrder        int              `json:"newOrder"`
	AffectedTickets []OrderChange    `json:"affectedTickets"`
	ColumnVersions  map[Status]int64 `json:"columnVersions,omitempty"`
}

// ReorderResult is the server's answer to a committed reorder: the rows it
// wrote and the column versions after the commit.
type ReorderResult struct {
	Tickets  []*TicketSummary `json:"tickets"`
	Versions map[Status]int64 `json:"versions"`
}

// DropTargetKind distinguishes what the pointer is over
type DropTargetKind int

const (
	// DropColumn is the column body itself (empty space or the header)
	DropColumn DropTargetKind = iota
	// DropCard is a card inside a column
	DropCard
)

// DropTarget is what a drag pointer is over. Resolved once at the UI boundary.
type DropTarget struct {
	Kind     DropTargetKind
	Status   Status // set for DropColumn
	TicketID string // set for DropCard
}

// ColumnTarget is a drop onto a column
func ColumnTarget(s Status) DropTarget {
	return DropTarget{Kind: DropColumn, Status: s}
}

// CardTarget is a drop onto a card
func CardTarget(ticketID string) DropTarget {
	return DropTarget{Kind: DropCard, TicketID: ticketID}
}
