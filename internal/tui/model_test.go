package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/deskboard/internal/board"
	"github.com/thenoetrevino/deskboard/internal/config"
	"github.com/thenoetrevino/deskboard/internal/gateway"
	"github.com/thenoetrevino/deskboard/internal/models"
)

// fakeAPI serves a board from memory and applies reorders to it
type fakeAPI struct {
	mu         sync.Mutex
	board      *models.Board
	reorders   []models.ReorderCommand
	reorderErr error
	fetchErr   error
	fetches    int
}

func (f *fakeAPI) FetchBoard(context.Context) (*models.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		err := f.fetchErr
		f.fetchErr = nil
		return nil, err
	}
	return f.board.Clone(), nil
}

// edit changes the served board, as another client would
func (f *fakeAPI) edit(fn func(b *models.Board)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f.board)
}

func (f *fakeAPI) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func (f *fakeAPI) Reorder(_ context.Context, cmd models.ReorderCommand) (*models.ReorderResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reorders = append(f.reorders, cmd)
	if f.reorderErr != nil {
		err := f.reorderErr
		f.reorderErr = nil
		return nil, err
	}
	next, err := board.Apply(f.board, cmd)
	if err != nil {
		return nil, err
	}
	f.board = next
	return &models.ReorderResult{}, nil
}

func (f *fakeAPI) reorderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reorders)
}

func ticket(id string, number int, status models.Status, order int) *models.TicketSummary {
	return &models.TicketSummary{
		ID:        id,
		Number:    number,
		Subject:   "subject " + id,
		Status:    status,
		Priority:  models.PriorityHigh,
		Order:     order,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// setup returns a loaded view over OPEN [a, b] and IN_PROGRESS [c]
func setup(t *testing.T) (Model, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{board: models.BoardFromTickets([]*models.TicketSummary{
		ticket("a", 1, models.StatusOpen, 0),
		ticket("b", 2, models.StatusOpen, 1),
		ticket("c", 3, models.StatusInProgress, 0),
	}, nil)}

	engine := board.NewEngine(api)
	t.Cleanup(engine.Close)

	m := New(context.Background(), engine, config.Default())
	t.Cleanup(m.unsub)
	m = send(t, m, m.refreshCmd()())
	return m, api
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// press sends a key and runs the command it returns, feeding any result
// message back into the model
func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(k)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case dropDoneMsg, refreshDoneMsg, retryFailedMsg:
		m = send(t, m, msg)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEscape}
)

func columnIDs(b *models.Board, s models.Status) []string {
	var out []string
	for _, t := range b.Column(s) {
		out = append(out, t.ID)
	}
	return out
}

func TestModel_LoadsAndRenders(t *testing.T) {
	m, _ := setup(t)

	view := m.View()
	assert.Contains(t, view, "Open (2)")
	assert.Contains(t, view, "#1 subject a")
	assert.Contains(t, view, "empty")
	assert.Equal(t, "a", m.selectedID)
}

func TestModel_CursorNavigation(t *testing.T) {
	m, _ := setup(t)

	m = press(t, m, runes("j"))
	assert.Equal(t, "b", m.selectedID)

	m = press(t, m, runes("j"))
	assert.Equal(t, 1, m.row, "cursor stops at the last card")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.col)
	assert.Equal(t, "c", m.selectedID)

	m = press(t, m, runes("l"))
	assert.Equal(t, 2, m.col)
	assert.Empty(t, m.selectedID, "empty column selects nothing")
}

func TestModel_DragAcrossColumns(t *testing.T) {
	m, api := setup(t)

	m = press(t, m, space)
	m = press(t, m, runes("l"))

	// while dragging only the working copy changes
	assert.Equal(t, []string{"a", "c"}, columnIDs(m.engine.CurrentBoard(), models.StatusInProgress))
	assert.Equal(t, 0, api.reorderCount())
	assert.Equal(t, 1, m.col)

	m = press(t, m, enter)

	require.Equal(t, 1, api.reorderCount())
	cmd := api.reorders[0]
	assert.Equal(t, "a", cmd.TicketID)
	assert.Equal(t, models.StatusInProgress, cmd.NewStatus)
	assert.Equal(t, 0, cmd.NewOrder)
	assert.ElementsMatch(t, []models.OrderChange{{ID: "b", Order: 0}, {ID: "c", Order: 1}}, cmd.AffectedTickets)

	assert.Contains(t, m.status, "Moved #1 to In Progress")
	assert.False(t, m.statusErr)
	assert.Equal(t, []string{"b"}, columnIDs(m.engine.CurrentBoard(), models.StatusOpen))
}

func TestModel_DragIntoEmptyColumn(t *testing.T) {
	m, api := setup(t)

	m = press(t, m, runes("j"))
	m = press(t, m, space)
	m = press(t, m, runes("l"))
	m = press(t, m, runes("l"))
	m = press(t, m, enter)

	require.Equal(t, 1, api.reorderCount())
	assert.Equal(t, models.StatusWaiting, api.reorders[0].NewStatus)
	assert.Empty(t, api.reorders[0].AffectedTickets, "b was last in its column")
	assert.Equal(t, []string{"b"}, columnIDs(m.engine.CurrentBoard(), models.StatusWaiting))
}

func TestModel_DropInPlaceSendsNothing(t *testing.T) {
	m, api := setup(t)

	m = press(t, m, space)
	m = press(t, m, enter)

	assert.Equal(t, 0, api.reorderCount())
	assert.Contains(t, m.status, "stayed in place")
}

func TestModel_CancelRestoresBoard(t *testing.T) {
	m, api := setup(t)
	before := columnIDs(m.engine.CurrentBoard(), models.StatusOpen)

	m = press(t, m, space)
	m = press(t, m, runes("j"))
	assert.Equal(t, []string{"b", "a"}, columnIDs(m.engine.CurrentBoard(), models.StatusOpen))

	m = press(t, m, esc)

	assert.Equal(t, before, columnIDs(m.engine.CurrentBoard(), models.StatusOpen))
	assert.Equal(t, 0, api.reorderCount())
	_, dragging := m.engine.Dragging()
	assert.False(t, dragging)
	assert.Equal(t, 0, m.row)
}

func TestModel_TransientFailureOffersRetry(t *testing.T) {
	m, api := setup(t)
	api.reorderErr = gateway.NewTransient("reorder", assert.AnError)

	m = press(t, m, space)
	m = press(t, m, runes("j"))
	m = press(t, m, enter)

	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "Press r to retry")
	assert.Equal(t, []string{"a", "b"}, columnIDs(m.engine.CurrentBoard(), models.StatusOpen), "rolled back")
	require.NotNil(t, m.retry)

	// another client appends z to OPEN before the retry
	api.edit(func(b *models.Board) {
		b.Columns[models.StatusOpen] = append(b.Columns[models.StatusOpen], ticket("z", 9, models.StatusOpen, 2))
		b.Versions[models.StatusOpen] = 7
	})
	fetches := api.fetchCount()

	m = press(t, m, runes("r"))

	assert.Equal(t, 2, api.reorderCount())
	assert.Equal(t, fetches+2, api.fetchCount(), "reload before the retry and after it")
	retried := api.reorders[1]
	assert.Equal(t, map[models.Status]int64{models.StatusOpen: 7}, retried.ColumnVersions,
		"retry is computed from the reloaded board")
	assert.Nil(t, m.retry)
	assert.False(t, m.statusErr)
	assert.Equal(t, []string{"b", "a", "z"}, columnIDs(m.engine.CurrentBoard(), models.StatusOpen))
}

func TestModel_RetryKeptWhenReloadFails(t *testing.T) {
	m, api := setup(t)
	api.reorderErr = gateway.NewTransient("reorder", assert.AnError)

	m = press(t, m, space)
	m = press(t, m, runes("j"))
	m = press(t, m, enter)
	require.NotNil(t, m.retry)

	api.fetchErr = gateway.NewTransient("fetch", assert.AnError)
	m = press(t, m, runes("r"))

	assert.Equal(t, 1, api.reorderCount(), "no move without a fresh board")
	assert.True(t, m.statusErr)
	require.NotNil(t, m.retry)

	m = press(t, m, runes("r"))
	assert.Equal(t, 2, api.reorderCount())
	assert.Equal(t, []string{"b", "a"}, columnIDs(m.engine.CurrentBoard(), models.StatusOpen))
}

func TestModel_StepBackRestoresOrder(t *testing.T) {
	m, api := setup(t)

	m = press(t, m, space)
	m = press(t, m, runes("j"))
	assert.Equal(t, []string{"b", "a"}, columnIDs(m.engine.CurrentBoard(), models.StatusOpen))

	m = press(t, m, runes("k"))
	assert.Equal(t, []string{"a", "b"}, columnIDs(m.engine.CurrentBoard(), models.StatusOpen))
	m = press(t, m, runes("j"))
	assert.Equal(t, []string{"b", "a"}, columnIDs(m.engine.CurrentBoard(), models.StatusOpen))
	m = press(t, m, runes("k"))

	m = press(t, m, enter)
	assert.Equal(t, 0, api.reorderCount())
	assert.Contains(t, m.status, "stayed in place")
}

func TestModel_ConflictReloads(t *testing.T) {
	m, api := setup(t)
	api.reorderErr = &gateway.Error{Kind: gateway.KindConflict, Op: "reorder", Status: 409, Message: "stale"}

	m = press(t, m, space)
	m = press(t, m, runes("l"))
	m = press(t, m, enter)

	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "changed elsewhere")
	assert.Nil(t, m.retry)
	assert.Equal(t, []string{"a", "b"}, columnIDs(m.engine.CurrentBoard(), models.StatusOpen))
}

func TestModel_HelpToggle(t *testing.T) {
	m, _ := setup(t)

	short := m.View()
	m = press(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.NotEqual(t, short, m.View())
	assert.True(t, strings.Contains(m.View(), "reload / retry"))
}

func TestModel_QuitCancelsDrag(t *testing.T) {
	m, _ := setup(t)

	m = press(t, m, space)
	next, cmd := m.Update(runes("q"))
	m = next.(Model)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	_, dragging := m.engine.Dragging()
	assert.False(t, dragging)
}
