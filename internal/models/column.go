package models

import (
	"fmt"
	"strings"
)

// Status is a ticket status. The board shows a fixed subset of statuses as columns.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusWaiting    Status = "WAITING"
	StatusResolved   Status = "RESOLVED"
	StatusBillable   Status = "BILLABLE"
	StatusClosed     Status = "CLOSED"
)

// BoardColumns is the left-to-right column layout of the board.
// Column order is layout only and never affects ticket order.
var BoardColumns = []Status{
	StatusOpen,
	StatusInProgress,
	StatusWaiting,
	StatusResolved,
	StatusBillable,
}

var columnTitles = map[Status]string{
	StatusOpen:       "Open",
	StatusInProgress: "In Progress",
	StatusWaiting:    "Waiting",
	StatusResolved:   "Resolved",
	StatusBillable:   "Billable",
	StatusClosed:     "Closed",
}

// Known reports whether s is a ticket status the system recognizes.
func (s Status) Known() bool {
	_, ok := columnTitles[s]
	return ok
}

// OnBoard reports whether s is one of the board columns.
func (s Status) OnBoard() bool {
	return ColumnIndex(s) >= 0
}

// Title returns the display name of the status.
func (s Status) Title() string {
	if title, ok := columnTitles[s]; ok {
		return title
	}
	return string(s)
}

// ColumnIndex returns the layout index of s, or -1 if s is not a board column.
func ColumnIndex(s Status) int {
	for i, col := range BoardColumns {
		if col == s {
			return i
		}
	}
	return -1
}

// ParseStatus accepts a status in any case, with spaces or dashes in place of
// underscores ("in progress", "In-Progress", "IN_PROGRESS").
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	s := Status(normalized)
	if !s.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}
