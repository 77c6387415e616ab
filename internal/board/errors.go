package board

import "errors"

var (
	// ErrDragInProgress is returned when a drag starts while another is active
	ErrDragInProgress = errors.New("a drag is already in progress")

	// ErrNoSession is returned for drag events that arrive with no active drag
	ErrNoSession = errors.New("no drag in progress")

	// ErrReorderInFlight is returned when a drag starts before the previous
	// reorder has been confirmed or rejected
	ErrReorderInFlight = errors.New("a reorder is still in flight")

	// ErrNotLoaded is returned when the board has not been fetched yet
	ErrNotLoaded = errors.New("board has not been loaded")
)
