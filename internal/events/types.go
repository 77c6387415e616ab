package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	EventBoardChanged     EventType = "board_changed"
	EventDragStarted      EventType = "drag_started"
	EventDragEnded        EventType = "drag_ended"
	EventReorderStarted   EventType = "reorder_started"
	EventReorderConfirmed EventType = "reorder_confirmed"
	EventReorderRejected  EventType = "reorder_rejected"
	EventRefreshed        EventType = "refreshed"
)

// Event is a change notification for the current board
type Event struct {
	Type       EventType
	TicketID   string    // dragged or reordered ticket, when there is one
	Err        error     // set for EventReorderRejected
	Timestamp  time.Time // When the event occurred
	SequenceID int64     // Monotonically increasing sequence number for ordering
}
