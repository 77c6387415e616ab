package ticket

import (
	"errors"
	"strings"
)

// Ticket-related errors
var (
	// Validation errors
	ErrEmptyTicketID     = errors.New("ticket ID cannot be empty")
	ErrInvalidStatus     = errors.New("invalid ticket status")
	ErrInvalidOrder      = errors.New("invalid order: must be >= 0")
	ErrInvalidAffected   = errors.New("invalid affected ticket")
	ErrDuplicateTicket   = errors.New("ticket listed more than once")
	ErrEmptySubject      = errors.New("ticket subject cannot be empty")
	ErrSubjectTooLong    = errors.New("ticket subject cannot exceed 255 characters")
	ErrInvalidPriority   = errors.New("invalid ticket priority")
	ErrInvalidSeedCount  = errors.New("seed count must be between 1 and 500")
	ErrInvalidTicketRef  = errors.New("invalid ticket reference")
	ErrStatusNotOnBoard  = errors.New("status is not a board column")
	ErrPrimaryInAffected = errors.New("moved ticket cannot also be an affected ticket")

	// Business logic errors
	ErrTicketNotFound = errors.New("ticket not found")
	ErrConflict       = errors.New("board changed since the reorder was computed")
)

var validationErrors = []error{
	ErrEmptyTicketID,
	ErrInvalidStatus,
	ErrInvalidOrder,
	ErrInvalidAffected,
	ErrDuplicateTicket,
	ErrEmptySubject,
	ErrSubjectTooLong,
	ErrInvalidPriority,
	ErrInvalidSeedCount,
	ErrInvalidTicketRef,
	ErrStatusNotOnBoard,
	ErrPrimaryInAffected,
}

// IsValidation reports whether err is a request the service refused outright
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Details splits a joined validation error into one message per problem
func Details(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, Details(e)...)
		}
		return out
	}
	return []string{strings.TrimSpace(err.Error())}
}
