package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/deskboard/internal/board"
	"github.com/thenoetrevino/deskboard/internal/events"
	"github.com/thenoetrevino/deskboard/internal/gateway"
	"github.com/thenoetrevino/deskboard/internal/models"
)

// eventMsg carries an engine event into the update loop
type eventMsg struct {
	event events.Event
}

// refreshDoneMsg reports the end of a board reload
type refreshDoneMsg struct {
	err error
}

// dropDoneMsg reports the end of a drop or a retried move
type dropDoneMsg struct {
	drop board.Drop
	err  error
}

// retryFailedMsg reports that the board could not be reloaded before a retry
type retryFailedMsg struct {
	retry *pendingRetry
	err   error
}

func (m Model) waitForEvent() tea.Cmd {
	ch := m.events
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			// Channel closed, engine shut down
			return nil
		}
		return eventMsg{event: event}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: m.engine.Refresh(m.ctx)}
	}
}

// Update handles keys, engine events and command results
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		m.syncCursor()
		return m, m.waitForEvent()

	case refreshDoneMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Could not load the board: %v", msg.err))
			return m, nil
		}
		m.syncCursor()
		return m, nil

	case dropDoneMsg:
		m.handleDropDone(msg)
		return m, nil

	case retryFailedMsg:
		m.retry = msg.retry
		m.setError(fmt.Sprintf("Could not load the board: %v. Press %s to retry", msg.err, m.keys.Refresh.Help().Key))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, dragging := m.engine.Dragging()

	switch {
	case key.Matches(msg, m.keys.Quit):
		if dragging {
			m.engine.OnDragCancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if dragging {
			return m, nil
		}
		if m.retry != nil {
			return m, m.retryCmd()
		}
		m.setInfo("Reloading board")
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.PickUp):
		if !dragging {
			m.pickUp()
		}
		return m, nil

	case key.Matches(msg, m.keys.Drop):
		return m, m.drop()

	case key.Matches(msg, m.keys.Cancel):
		if dragging {
			m.engine.OnDragCancel()
			m.target = nil
			m.setInfo("Move cancelled")
			m.syncCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.steer(dragging, -1, 0)
	case key.Matches(msg, m.keys.Right):
		m.steer(dragging, 1, 0)
	case key.Matches(msg, m.keys.Up):
		m.steer(dragging, 0, -1)
	case key.Matches(msg, m.keys.Down):
		m.steer(dragging, 0, 1)
	}
	return m, nil
}

func (m *Model) steer(dragging bool, dx, dy int) {
	if dragging {
		m.hover(dx, dy)
		return
	}
	m.moveCursor(dx, dy)
}

func (m *Model) moveCursor(dx, dy int) {
	b := m.engine.CurrentBoard()
	if b == nil {
		return
	}
	if dx != 0 {
		m.col = min(max(m.col+dx, 0), len(models.BoardColumns)-1)
	}
	tickets := m.currentColumn(b)
	m.row = max(min(m.row+dy, len(tickets)-1), 0)

	m.selectedID = ""
	if t := m.selected(b); t != nil {
		m.selectedID = t.ID
	}
}

func (m *Model) pickUp() {
	t := m.selected(m.engine.CurrentBoard())
	if t == nil {
		return
	}
	if err := m.engine.OnDragStart(t.ID); err != nil {
		if errors.Is(err, board.ErrReorderInFlight) {
			m.setError("Still saving the last move")
			return
		}
		m.setError(err.Error())
		return
	}

	// dropping without steering lands the card where it started
	self := models.CardTarget(t.ID)
	m.target = &self
	m.selectedID = t.ID
	m.retry = nil
	m.setInfo(fmt.Sprintf("Moving #%d", t.Number))
}

// hover steers the dragged card one step. Across columns the card keeps its
// row when the neighbour column is long enough and goes to the end otherwise.
func (m *Model) hover(dx, dy int) {
	id, ok := m.engine.Dragging()
	b := m.engine.CurrentBoard()
	if !ok || b == nil {
		return
	}
	status, index, found := b.Locate(id)
	if !found {
		return
	}

	var target models.DropTarget
	if dx != 0 {
		c := models.ColumnIndex(status) + dx
		if c < 0 || c >= len(models.BoardColumns) {
			return
		}
		next := models.BoardColumns[c]
		tickets := b.Column(next)
		if index < len(tickets) {
			target = models.CardTarget(tickets[index].ID)
		} else {
			target = models.ColumnTarget(next)
		}
	} else {
		tickets := b.Column(status)
		r := index + dy
		if r < 0 || r >= len(tickets) {
			return
		}
		target = models.CardTarget(tickets[r].ID)
	}

	if m.target != nil && *m.target == target {
		// stepping back onto the card just swapped with: the pointer crosses
		// the card's own slot first, or the repeat would be ignored
		if err := m.engine.OnDragOver(models.CardTarget(id)); err != nil {
			m.setError(err.Error())
			return
		}
	}
	if err := m.engine.OnDragOver(target); err != nil {
		m.setError(err.Error())
		return
	}
	m.target = &target
	m.syncCursor()
}

func (m *Model) drop() tea.Cmd {
	if _, ok := m.engine.Dragging(); !ok {
		return nil
	}
	target := m.target
	m.target = nil
	engine, ctx := m.engine, m.ctx
	return func() tea.Msg {
		drop, err := engine.OnDragEnd(ctx, target)
		return dropDoneMsg{drop: drop, err: err}
	}
}

func (m *Model) retryCmd() tea.Cmd {
	r := m.retry
	m.retry = nil
	m.setInfo("Retrying move")
	engine, ctx := m.engine, m.ctx
	return func() tea.Msg {
		// the failed move was computed from a board that may be stale by now
		if err := engine.Refresh(ctx); err != nil {
			return retryFailedMsg{retry: r, err: err}
		}
		drop, err := engine.MoveTo(ctx, r.ticketID, r.status, r.index)
		return dropDoneMsg{drop: drop, err: err}
	}
}

func (m *Model) handleDropDone(msg dropDoneMsg) {
	m.syncCursor()
	name := m.ticketName(msg.drop.TicketID)

	if msg.err == nil {
		switch msg.drop.Outcome {
		case board.OutcomeMoved:
			m.setInfo(fmt.Sprintf("Moved %s to %s", name, msg.drop.Command.NewStatus.Title()))
		case board.OutcomeNoop:
			m.setInfo(fmt.Sprintf("%s stayed in place", name))
		default:
			m.setInfo("Move cancelled")
		}
		return
	}

	if msg.drop.Outcome != board.OutcomeMoved {
		m.setError(msg.err.Error())
		return
	}
	switch gateway.KindOf(msg.err) {
	case gateway.KindTransient:
		m.retry = &pendingRetry{
			ticketID: msg.drop.TicketID,
			status:   msg.drop.Command.NewStatus,
			index:    msg.drop.Command.NewOrder,
		}
		m.setError(fmt.Sprintf("Could not save %s: %v. Press %s to retry", name, msg.err, m.keys.Refresh.Help().Key))
	case gateway.KindConflict:
		m.setError("The board changed elsewhere and was reloaded. Try the move again")
	default:
		m.setError(fmt.Sprintf("Move of %s rejected: %v", name, msg.err))
	}
}

// ticketName is "#number" when the ticket is on the board
func (m Model) ticketName(id string) string {
	if b := m.engine.CurrentBoard(); b != nil {
		if t := b.Ticket(id); t != nil {
			return fmt.Sprintf("#%d", t.Number)
		}
	}
	return "ticket"
}

func (m *Model) setInfo(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}
