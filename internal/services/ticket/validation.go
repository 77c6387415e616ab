package ticket

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/deskboard/internal/models"
)

// validateReorder checks the shape of a reorder command. Every problem is
// reported, joined into one error.
func validateReorder(cmd models.ReorderCommand) error {
	var errs []error

	if strings.TrimSpace(cmd.TicketID) == "" {
		errs = append(errs, ErrEmptyTicketID)
	}
	switch {
	case !cmd.NewStatus.Known():
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidStatus, cmd.NewStatus))
	case !cmd.NewStatus.OnBoard():
		errs = append(errs, fmt.Errorf("%w: newStatus is %s", ErrStatusNotOnBoard, cmd.NewStatus))
	}
	if cmd.NewOrder < 0 {
		errs = append(errs, fmt.Errorf("%w: newOrder is %d", ErrInvalidOrder, cmd.NewOrder))
	}

	seen := make(map[string]bool, len(cmd.AffectedTickets))
	for i, change := range cmd.AffectedTickets {
		switch {
		case strings.TrimSpace(change.ID) == "":
			errs = append(errs, fmt.Errorf("%w: affectedTickets[%d] has no id", ErrInvalidAffected, i))
		case change.ID == cmd.TicketID:
			errs = append(errs, fmt.Errorf("%w: %s", ErrPrimaryInAffected, change.ID))
		case seen[change.ID]:
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateTicket, change.ID))
		}
		seen[change.ID] = true
		if change.Order < 0 {
			errs = append(errs, fmt.Errorf("%w: affectedTickets[%d] order is %d", ErrInvalidOrder, i, change.Order))
		}
	}

	for status := range cmd.ColumnVersions {
		if !status.OnBoard() {
			errs = append(errs, fmt.Errorf("%w: columnVersions has %q", ErrStatusNotOnBoard, status))
		}
	}

	return errors.Join(errs...)
}

func validateCreateTicket(req CreateTicketRequest) error {
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return ErrEmptySubject
	}
	if len(subject) > maxSubjectLength {
		return ErrSubjectTooLong
	}
	if !req.Status.Known() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	if !req.Priority.Known() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, req.Priority)
	}
	return nil
}
