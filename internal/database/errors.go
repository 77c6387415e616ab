package database

import "errors"

var (
	// ErrTicketNotFound is returned when the primary ticket of an operation
	// does not exist
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrColumnVersionMismatch is returned when a column changed since the
	// snapshot a reorder was computed from
	ErrColumnVersionMismatch = errors.New("column version mismatch")

	// ErrAffectedMissing is returned when a sibling named by a reorder no
	// longer exists
	ErrAffectedMissing = errors.New("affected ticket no longer exists")

	// ErrAffectedMoved is returned when a sibling named by a reorder is no
	// longer in either column the reorder touches
	ErrAffectedMoved = errors.New("affected ticket moved to another column")
)

// IsConflict reports whether err means the reorder was computed from stale data
func IsConflict(err error) bool {
	return errors.Is(err, ErrColumnVersionMismatch) ||
		errors.Is(err, ErrAffectedMissing) ||
		errors.Is(err, ErrAffectedMoved)
}
