package board

import (
	"fmt"
	"slices"

	"github.com/thenoetrevino/deskboard/internal/models"
)

// Outcome is how a drag ended
type Outcome int

const (
	// OutcomeCancelled means the drag ended with no valid target
	OutcomeCancelled Outcome = iota
	// OutcomeNoop means the ticket was dropped where it started
	OutcomeNoop
	// OutcomeMoved means the drop produced a reorder command
	OutcomeMoved
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeNoop:
		return "noop"
	case OutcomeMoved:
		return "moved"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Drop is the result of ending a drag
type Drop struct {
	Outcome        Outcome
	TicketID       string
	From           models.Status
	Reconciliation Reconciliation
	Command        models.ReorderCommand
}

// Session is one drag gesture. It owns a deep copy of the board that drag-over
// events rearrange freely; the copy is dropped when the gesture ends.
type Session struct {
	ticketID string

	// base is the snapshot the drag started from. It is never written.
	base    *models.Board
	working *models.Board

	originStatus models.Status
	originIndex  int

	// over is the last target applied to the working copy
	over *models.DropTarget
}

// TicketID returns the dragged ticket
func (s *Session) TicketID() string { return s.ticketID }

// Working returns the working copy
func (s *Session) Working() *models.Board { return s.working }

// Position returns the dragged ticket's current column and index in the
// working copy
func (s *Session) Position() (models.Status, int) {
	status, index, _ := s.working.Locate(s.ticketID)
	return status, index
}

// resolve maps a drop target to the column and index the dragged ticket
// should occupy. ok is false for targets that are not on the board.
func (s *Session) resolve(target models.DropTarget) (models.Status, int, bool) {
	current, currentIndex, _ := s.working.Locate(s.ticketID)

	switch target.Kind {
	case models.DropColumn:
		if !target.Status.OnBoard() {
			return "", 0, false
		}
		if target.Status == current {
			return current, currentIndex, true
		}
		return target.Status, len(s.working.Column(target.Status)), true

	case models.DropCard:
		status, index, ok := s.working.Locate(target.TicketID)
		if !ok {
			return "", 0, false
		}
		return status, index, true
	}
	return "", 0, false
}

// moveTo relocates the dragged ticket inside the working copy
func (s *Session) moveTo(status models.Status, index int) bool {
	current, currentIndex, _ := s.working.Locate(s.ticketID)
	if status == current && index == currentIndex {
		return false
	}

	from := s.working.Columns[current]
	ticket := from[currentIndex]
	from = slices.Delete(from, currentIndex, currentIndex+1)
	s.working.Columns[current] = from

	to := s.working.Columns[status]
	index = clampIndex(index, len(to))
	to = slices.Insert(to, index, ticket)
	s.working.Columns[status] = to

	ticket.Status = status
	renumber(from)
	renumber(to)
	return true
}

func renumber(tickets []*models.TicketSummary) {
	for i, t := range tickets {
		t.Order = i
	}
}

// Controller is the drag state machine: Idle while session is nil, Dragging
// otherwise. Drag-over never performs I/O. Not safe for concurrent use; the
// Engine serializes access.
type Controller struct {
	session *Session
}

// Dragging reports whether a drag is active
func (c *Controller) Dragging() bool {
	return c.session != nil
}

// Session returns the active session or nil
func (c *Controller) Session() *Session {
	return c.session
}

// Start picks up ticketID from board
func (c *Controller) Start(board *models.Board, ticketID string) error {
	if c.session != nil {
		return ErrDragInProgress
	}
	if board == nil {
		return ErrNotLoaded
	}
	status, index, ok := board.Locate(ticketID)
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrTicketNotOnBoard, ticketID)
	}
	c.session = &Session{
		ticketID:     ticketID,
		base:         board,
		working:      board.Clone(),
		originStatus: status,
		originIndex:  index,
	}
	return nil
}

// Over moves the dragged ticket under the pointer. A card in another column
// pulls the ticket into that column at the card's index; a card in the same
// column swaps the ticket to that index; an empty area of another column
// appends. Repeating the last hovered target is a no-op: a card target
// resolves against the layout at the moment the pointer entered it. It
// reports whether the working copy changed.
func (c *Controller) Over(target models.DropTarget) (bool, error) {
	if c.session == nil {
		return false, ErrNoSession
	}
	if c.session.over != nil && *c.session.over == target {
		return false, nil
	}
	status, index, ok := c.session.resolve(target)
	if !ok {
		return false, nil
	}
	c.session.over = &target
	return c.session.moveTo(status, index), nil
}

// End finishes the drag. The final position is wherever the working copy
// holds the ticket; a target other than the last one hovered is applied first.
// A nil target, or one that is not on the board, cancels. The session is
// destroyed on every path.
func (c *Controller) End(target *models.DropTarget) (Drop, error) {
	sess := c.session
	if sess == nil {
		return Drop{}, ErrNoSession
	}
	c.session = nil

	drop := Drop{TicketID: sess.ticketID, From: sess.originStatus}
	if target == nil {
		drop.Outcome = OutcomeCancelled
		return drop, nil
	}
	status, index, ok := sess.resolve(*target)
	if !ok {
		drop.Outcome = OutcomeCancelled
		return drop, nil
	}
	if sess.over == nil || *sess.over != *target {
		sess.moveTo(status, index)
	}
	status, index = sess.Position()

	if status == sess.originStatus && index == sess.originIndex {
		drop.Outcome = OutcomeNoop
		return drop, nil
	}

	rec, ok := Reconcile(sess.base, sess.ticketID, status, index)
	if !ok {
		drop.Outcome = OutcomeCancelled
		return drop, nil
	}
	drop.Outcome = OutcomeMoved
	drop.Reconciliation = rec
	drop.Command = rec.Command(sess.base, sess.originStatus)
	return drop, nil
}

// Cancel abandons the active drag, if any
func (c *Controller) Cancel() bool {
	active := c.session != nil
	c.session = nil
	return active
}

// TargetFor returns the drop target that lands ticketID at index of status
// when dragged on b. Indexes past the end append.
func TargetFor(b *models.Board, ticketID string, status models.Status, index int) (models.DropTarget, bool) {
	current, _, ok := b.Locate(ticketID)
	if !ok || !status.OnBoard() {
		return models.DropTarget{}, false
	}
	column := b.Column(status)
	index = max(index, 0)

	if status == current {
		// a card in the same column swaps the ticket to the card's index
		return models.CardTarget(column[min(index, len(column)-1)].ID), true
	}
	if index < len(column) {
		return models.CardTarget(column[index].ID), true
	}
	return models.ColumnTarget(status), true
}
