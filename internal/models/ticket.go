package models

import "time"

// Priority is the urgency of a ticket. Display only; the board never orders by it.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Known reports whether p is a recognized priority.
func (p Priority) Known() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Ticket is the full persisted ticket row
type Ticket struct {
	ID          string     `db:"id" json:"id"`
	Number      int        `db:"number" json:"ticketNumber"`
	Subject     string     `db:"subject" json:"subject"`
	Status      Status     `db:"status" json:"status"`
	Priority    Priority   `db:"priority" json:"priority"`
	Assignee    string     `db:"assignee" json:"assignee,omitempty"`
	Company     string     `db:"company" json:"company,omitempty"`
	KanbanOrder int        `db:"kanban_order" json:"kanbanOrder"`
	ResolvedAt  *time.Time `db:"resolved_at" json:"resolvedAt,omitempty"`
	ClosedAt    *time.Time `db:"closed_at" json:"closedAt,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// GetID returns the ticket id
func (t *Ticket) GetID() string {
	return t.ID
}

// Summary projects the ticket onto the fields the board needs.
func (t *Ticket) Summary() *TicketSummary {
	return &TicketSummary{
		ID:        t.ID,
		Number:    t.Number,
		Subject:   t.Subject,
		Status:    t.Status,
		Priority:  t.Priority,
		Assignee:  t.Assignee,
		Company:   t.Company,
		Order:     t.KanbanOrder,
		CreatedAt: t.CreatedAt,
	}
}

// TicketSummary is a ticket as shown on a board card.
// Only ID, Status and Order matter to the reordering engine; the rest is display data.
type TicketSummary struct {
	ID        string    `db:"id" json:"id"`
	Number    int       `db:"number" json:"ticketNumber"`
	Subject   string    `db:"subject" json:"subject"`
	Status    Status    `db:"status" json:"status"`
	Priority  Priority  `db:"priority" json:"priority"`
	Assignee  string    `db:"assignee" json:"assignee,omitempty"`
	Company   string    `db:"company" json:"company,omitempty"`
	Order     int       `db:"kanban_order" json:"kanbanOrder"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// GetID lets output formatters print just the identifier in quiet mode
func (t *TicketSummary) GetID() string {
	return t.ID
}
