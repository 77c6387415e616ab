// Package tui is the terminal board view. The keyboard emulates the drag
// gesture: pick up a card, steer it across cards and columns, drop it.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/deskboard/internal/board"
	"github.com/thenoetrevino/deskboard/internal/config"
	"github.com/thenoetrevino/deskboard/internal/events"
	"github.com/thenoetrevino/deskboard/internal/models"
)

// Engine is the board engine as the view drives it. *board.Engine
// implements it.
type Engine interface {
	Subscribe() (<-chan events.Event, func())
	CurrentBoard() *models.Board
	IsReordering() bool
	Dragging() (string, bool)
	Refresh(ctx context.Context) error
	OnDragStart(ticketID string) error
	OnDragOver(target models.DropTarget) error
	OnDragCancel()
	OnDragEnd(ctx context.Context, target *models.DropTarget) (board.Drop, error)
	MoveTo(ctx context.Context, ticketID string, status models.Status, index int) (board.Drop, error)
}

var _ Engine = (*board.Engine)(nil)

// pendingRetry is a move that failed on a transient error
type pendingRetry struct {
	ticketID string
	status   models.Status
	index    int
}

// Model represents the board view state
type Model struct {
	ctx    context.Context
	engine Engine
	events <-chan events.Event
	unsub  func()

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	styles  styles

	// cursor
	col        int
	row        int
	selectedID string

	// target last hovered by the dragged card
	target *models.DropTarget

	retry *pendingRetry

	status    string
	statusErr bool
	width     int
	height    int
}

// New creates the view over engine. It subscribes immediately so no change
// between New and Init is missed.
func New(ctx context.Context, engine Engine, cfg *config.Config) Model {
	ch, unsub := engine.Subscribe()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		engine:  engine,
		events:  ch,
		unsub:   unsub,
		keys:    newKeyMap(cfg.KeyMappings),
		help:    help.New(),
		spinner: sp,
		styles:  newStyles(cfg.Theme),
	}
}

// Init loads the board and starts listening for engine events
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.waitForEvent(), m.spinner.Tick)
}

// Run shows the board until the user quits or ctx is done
func Run(ctx context.Context, engine Engine, cfg *config.Config) error {
	m := New(ctx, engine, cfg)
	defer m.unsub()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// currentColumn returns the tickets under the cursor's column
func (m Model) currentColumn(b *models.Board) []*models.TicketSummary {
	if b == nil {
		return nil
	}
	return b.Column(models.BoardColumns[m.col])
}

// selected returns the ticket under the cursor, or nil
func (m Model) selected(b *models.Board) *models.TicketSummary {
	tickets := m.currentColumn(b)
	if m.row < 0 || m.row >= len(tickets) {
		return nil
	}
	return tickets[m.row]
}

// syncCursor follows the dragged or selected ticket to wherever the board
// now has it, or clamps the cursor when it is gone
func (m *Model) syncCursor() {
	b := m.engine.CurrentBoard()
	if b == nil {
		return
	}
	follow := m.selectedID
	if id, ok := m.engine.Dragging(); ok {
		follow = id
	}
	if status, index, ok := b.Locate(follow); ok {
		m.col = models.ColumnIndex(status)
		m.row = index
		return
	}

	m.col = min(max(m.col, 0), len(models.BoardColumns)-1)
	tickets := m.currentColumn(b)
	m.row = min(m.row, len(tickets)-1)
	m.row = max(m.row, 0)
	if t := m.selected(b); t != nil {
		m.selectedID = t.ID
	}
}
