package board

import (
	"fmt"

	"github.com/thenoetrevino/deskboard/internal/models"
)

// ProposalState tracks one optimistic update
type ProposalState int

const (
	// Proposed means the command is applied locally and awaits the server
	Proposed ProposalState = iota
	// Confirmed means the server accepted the command
	Confirmed
	// Rejected means the server refused the command and the store rolled back
	Rejected
)

func (s ProposalState) String() string {
	switch s {
	case Proposed:
		return "proposed"
	case Confirmed:
		return "confirmed"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("ProposalState(%d)", int(s))
	}
}

// Proposal is an optimistic update in flight. Previous is the snapshot the
// store held before the update and is restored as-is on rejection.
type Proposal struct {
	Command    models.ReorderCommand
	Previous   *models.Board
	Optimistic *models.Board
	State      ProposalState
}

// Store holds the authoritative non-dragging board. Snapshots it hands out are
// immutable: every change installs a new *Board. Not safe for concurrent use.
type Store struct {
	current *models.Board
	pending *Proposal
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns the current board (nil before the first load)
func (s *Store) Snapshot() *models.Board {
	return s.current
}

// Pending returns the in-flight proposal, or nil
func (s *Store) Pending() *Proposal {
	return s.pending
}

// Replace installs a freshly fetched board wholesale
func (s *Store) Replace(b *models.Board) {
	s.current = b
}

// ApplyOptimistic applies cmd to a copy of the current board and installs
// the copy. Only one proposal may be pending.
func (s *Store) ApplyOptimistic(cmd models.ReorderCommand) (*Proposal, error) {
	if s.pending != nil {
		return nil, ErrReorderInFlight
	}
	if s.current == nil {
		return nil, ErrNotLoaded
	}
	next, err := Apply(s.current, cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to apply reorder: %w", err)
	}
	p := &Proposal{
		Command:    cmd,
		Previous:   s.current,
		Optimistic: next,
		State:      Proposed,
	}
	s.pending = p
	s.current = next
	return p, nil
}

// Confirm settles the pending proposal as accepted. When fetched is non-nil it
// replaces the store; otherwise the optimistic board is kept, with the column
// versions from result merged in.
func (s *Store) Confirm(fetched *models.Board, result *models.ReorderResult) {
	p := s.pending
	if p == nil {
		return
	}
	p.State = Confirmed
	s.pending = nil

	switch {
	case fetched != nil:
		s.current = fetched
	case result != nil && len(result.Versions) > 0:
		next := s.current.Clone()
		for status, v := range result.Versions {
			next.Versions[status] = v
		}
		s.current = next
	}
}

// Rollback settles the pending proposal as rejected and restores the board
// the store held before it.
func (s *Store) Rollback() {
	p := s.pending
	if p == nil {
		return
	}
	p.State = Rejected
	s.pending = nil
	s.current = p.Previous
}
