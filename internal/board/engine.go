package board

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/thenoetrevino/deskboard/internal/events"
	"github.com/thenoetrevino/deskboard/internal/gateway"
	"github.com/thenoetrevino/deskboard/internal/models"
)

// TicketAPI is the ticket server as the engine sees it. *gateway.Client
// implements it.
type TicketAPI interface {
	FetchBoard(ctx context.Context) (*models.Board, error)
	Reorder(ctx context.Context, cmd models.ReorderCommand) (*models.ReorderResult, error)
}

// Compile-time verification that *gateway.Client implements TicketAPI
var _ TicketAPI = (*gateway.Client)(nil)

// Engine drives the board for a UI: it owns the drag controller and the
// store, and runs the optimistic update protocol for every completed drag.
// Safe for concurrent use.
type Engine struct {
	api    TicketAPI
	hub    *events.Hub
	logger *slog.Logger

	mu         sync.Mutex
	store      *Store
	drag       Controller
	reordering bool
}

// Option configures an Engine
type Option func(*Engine)

// WithHub publishes engine events on h instead of a private hub
func WithHub(h *events.Hub) Option {
	return func(e *Engine) {
		e.hub = h
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine with an empty store. Call Refresh to load.
func NewEngine(api TicketAPI, opts ...Option) *Engine {
	e := &Engine{
		api:    api,
		store:  NewStore(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.hub == nil {
		e.hub = events.NewHub(events.DefaultBuffer)
	}
	return e
}

// Subscribe returns a channel that is signalled whenever CurrentBoard or
// IsReordering may have changed
func (e *Engine) Subscribe() (<-chan events.Event, func()) {
	return e.hub.Subscribe()
}

// CurrentBoard is the working copy while dragging and the store otherwise.
// The returned board must not be modified.
func (e *Engine) CurrentBoard() *models.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	if sess := e.drag.Session(); sess != nil {
		return sess.Working().Clone()
	}
	return e.store.Snapshot()
}

// IsReordering reports whether a reorder is in flight. The board is locked
// against new drags until it settles.
func (e *Engine) IsReordering() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reordering
}

// Dragging returns the dragged ticket, if a drag is active
func (e *Engine) Dragging() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if sess := e.drag.Session(); sess != nil {
		return sess.TicketID(), true
	}
	return "", false
}

// Refresh fetches the board and replaces the store wholesale. It refuses to
// run while a reorder is in flight, since the pending rollback point would
// no longer match the store.
func (e *Engine) Refresh(ctx context.Context) error {
	board, err := e.api.FetchBoard(ctx)
	if err != nil {
		e.logger.Warn("board refresh failed", "error", err)
		return err
	}

	e.mu.Lock()
	if e.reordering {
		e.mu.Unlock()
		return ErrReorderInFlight
	}
	e.store.Replace(board)
	e.mu.Unlock()

	e.hub.Publish(events.Event{Type: events.EventRefreshed})
	return nil
}

// OnDragStart picks up a ticket
func (e *Engine) OnDragStart(ticketID string) error {
	e.mu.Lock()
	if e.reordering {
		e.mu.Unlock()
		return ErrReorderInFlight
	}
	err := e.drag.Start(e.store.Snapshot(), ticketID)
	e.mu.Unlock()
	if err != nil {
		return err
	}

	e.hub.Publish(events.Event{Type: events.EventDragStarted, TicketID: ticketID})
	return nil
}

// OnDragOver moves the dragged ticket under the pointer in the working copy
func (e *Engine) OnDragOver(target models.DropTarget) error {
	e.mu.Lock()
	changed, err := e.drag.Over(target)
	ticketID := ""
	if sess := e.drag.Session(); sess != nil {
		ticketID = sess.TicketID()
	}
	e.mu.Unlock()
	if err != nil {
		return err
	}

	if changed {
		e.hub.Publish(events.Event{Type: events.EventBoardChanged, TicketID: ticketID})
	}
	return nil
}

// OnDragCancel abandons the drag without touching the store or the server
func (e *Engine) OnDragCancel() {
	e.mu.Lock()
	ticketID := ""
	if sess := e.drag.Session(); sess != nil {
		ticketID = sess.TicketID()
	}
	active := e.drag.Cancel()
	e.mu.Unlock()

	if active {
		e.hub.Publish(events.Event{Type: events.EventDragEnded, TicketID: ticketID})
	}
}

// OnDragEnd finishes the drag. A nil target cancels. When the drop moves the
// ticket, the store is updated optimistically, the command is sent, and the
// store is then confirmed or rolled back. It blocks for the round trip; UIs
// call it off their event loop.
//
// Validation and conflict failures force a refresh, since the board the
// command was computed from is stale. Transient failures only roll back.
func (e *Engine) OnDragEnd(ctx context.Context, target *models.DropTarget) (Drop, error) {
	e.mu.Lock()
	drop, err := e.drag.End(target)
	if err != nil {
		e.mu.Unlock()
		return drop, err
	}
	if drop.Outcome != OutcomeMoved {
		e.mu.Unlock()
		e.hub.Publish(events.Event{Type: events.EventDragEnded, TicketID: drop.TicketID})
		return drop, nil
	}

	if _, err := e.store.ApplyOptimistic(drop.Command); err != nil {
		e.mu.Unlock()
		e.hub.Publish(events.Event{Type: events.EventDragEnded, TicketID: drop.TicketID})
		return drop, err
	}
	e.reordering = true
	e.mu.Unlock()

	e.hub.Publish(events.Event{Type: events.EventReorderStarted, TicketID: drop.TicketID})

	result, err := e.api.Reorder(ctx, drop.Command)
	if err != nil {
		e.reject(ctx, drop, err)
		return drop, err
	}

	// The server's answer only covers the rows it wrote; re-read the board so
	// concurrent changes by other clients show up too.
	fetched, fetchErr := e.api.FetchBoard(ctx)
	if fetchErr != nil {
		e.logger.Debug("refresh after reorder failed, keeping optimistic board",
			"ticket_id", drop.TicketID,
			"error", fetchErr)
		fetched = nil
	}

	e.mu.Lock()
	e.store.Confirm(fetched, result)
	e.reordering = false
	e.mu.Unlock()

	e.logger.Debug("reorder confirmed",
		"ticket_id", drop.TicketID,
		"from_status", drop.From,
		"to_status", drop.Command.NewStatus,
		"affected", len(drop.Command.AffectedTickets))
	e.hub.Publish(events.Event{Type: events.EventReorderConfirmed, TicketID: drop.TicketID})
	return drop, nil
}

// MoveTo drags ticketID to index of status on the current board in one
// go: start, hover over the matching target, drop. Indexes past the end
// append.
func (e *Engine) MoveTo(ctx context.Context, ticketID string, status models.Status, index int) (Drop, error) {
	e.mu.Lock()
	b := e.store.Snapshot()
	e.mu.Unlock()
	if b == nil {
		return Drop{}, ErrNotLoaded
	}

	target, ok := TargetFor(b, ticketID, status, index)
	if !ok {
		if !status.OnBoard() {
			return Drop{}, fmt.Errorf("%w: %s has no board column", models.ErrUnknownStatus, status)
		}
		return Drop{}, fmt.Errorf("%w: %s", models.ErrTicketNotOnBoard, ticketID)
	}

	if err := e.OnDragStart(ticketID); err != nil {
		return Drop{}, err
	}
	if err := e.OnDragOver(target); err != nil {
		e.OnDragCancel()
		return Drop{}, err
	}
	return e.OnDragEnd(ctx, &target)
}

func (e *Engine) reject(ctx context.Context, drop Drop, cause error) {
	e.mu.Lock()
	e.store.Rollback()
	e.reordering = false
	e.mu.Unlock()

	kind := gateway.KindOf(cause)
	e.logger.Warn("reorder rejected, rolled back",
		"ticket_id", drop.TicketID,
		"kind", kind,
		"error", cause)
	e.hub.Publish(events.Event{Type: events.EventReorderRejected, TicketID: drop.TicketID, Err: cause})

	if kind == gateway.KindTransient {
		return
	}
	if err := e.Refresh(ctx); err != nil {
		e.logger.Warn("forced refresh after rejected reorder failed", "error", err)
	}
}

// Close releases subscribers
func (e *Engine) Close() {
	e.hub.Close()
}
