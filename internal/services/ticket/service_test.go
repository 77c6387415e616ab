package ticket_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/deskboard/internal/database"
	"github.com/thenoetrevino/deskboard/internal/models"
	"github.com/thenoetrevino/deskboard/internal/services/ticket"
	"github.com/thenoetrevino/deskboard/internal/testutil"
)

func setupService(t *testing.T) (ticket.Service, *database.Repository) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	seed := func(ctx context.Context, count int) ([]*models.Ticket, error) {
		return database.SeedDemo(ctx, repo, count)
	}
	return ticket.NewService(repo, seed, nil), repo
}

func TestReorder_ValidationErrors(t *testing.T) {
	svc, _ := setupService(t)

	tests := []struct {
		name string
		cmd  models.ReorderCommand
		want error
	}{
		{"missing ticket id", models.ReorderCommand{NewStatus: models.StatusOpen}, ticket.ErrEmptyTicketID},
		{"unknown status", models.ReorderCommand{TicketID: "a", NewStatus: "DONE"}, ticket.ErrInvalidStatus},
		{"status off the board", models.ReorderCommand{TicketID: "a", NewStatus: models.StatusClosed}, ticket.ErrStatusNotOnBoard},
		{"negative order", models.ReorderCommand{TicketID: "a", NewStatus: models.StatusOpen, NewOrder: -1}, ticket.ErrInvalidOrder},
		{
			"affected without id",
			models.ReorderCommand{TicketID: "a", NewStatus: models.StatusOpen, AffectedTickets: []models.OrderChange{{Order: 1}}},
			ticket.ErrInvalidAffected,
		},
		{
			"affected negative order",
			models.ReorderCommand{TicketID: "a", NewStatus: models.StatusOpen, AffectedTickets: []models.OrderChange{{ID: "b", Order: -2}}},
			ticket.ErrInvalidOrder,
		},
		{
			"primary in affected",
			models.ReorderCommand{TicketID: "a", NewStatus: models.StatusOpen, AffectedTickets: []models.OrderChange{{ID: "a", Order: 1}}},
			ticket.ErrPrimaryInAffected,
		},
		{
			"duplicate affected",
			models.ReorderCommand{TicketID: "a", NewStatus: models.StatusOpen, AffectedTickets: []models.OrderChange{{ID: "b", Order: 1}, {ID: "b", Order: 2}}},
			ticket.ErrDuplicateTicket,
		},
		{
			"version for non-board status",
			models.ReorderCommand{TicketID: "a", NewStatus: models.StatusOpen, ColumnVersions: map[models.Status]int64{models.StatusClosed: 1}},
			ticket.ErrStatusNotOnBoard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Reorder(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, ticket.IsValidation(err))
		})
	}
}

func TestReorder_ReportsEveryProblem(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Reorder(context.Background(), models.ReorderCommand{
		NewStatus: "nope",
		NewOrder:  -1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ticket.ErrEmptyTicketID)
	assert.ErrorIs(t, err, ticket.ErrInvalidStatus)
	assert.ErrorIs(t, err, ticket.ErrInvalidOrder)
	assert.Len(t, ticket.Details(err), 3)
}

func TestReorder_CannotLeaveTheBoard(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()
	tk := testutil.CreateTestTicket(t, repo, "printer", models.StatusOpen)

	_, err := svc.Reorder(ctx, models.ReorderCommand{TicketID: tk.ID, NewStatus: models.StatusClosed})
	require.Error(t, err)
	assert.ErrorIs(t, err, ticket.ErrStatusNotOnBoard)
	assert.True(t, ticket.IsValidation(err))

	board, err := svc.GetBoard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, board.Len())
	assert.NotNil(t, board.Ticket(tk.ID))
}

func TestReorder_NotFound(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Reorder(context.Background(), models.ReorderCommand{TicketID: "ghost", NewStatus: models.StatusOpen})
	assert.ErrorIs(t, err, ticket.ErrTicketNotFound)
	assert.False(t, ticket.IsValidation(err))
}

func TestReorder_Conflict(t *testing.T) {
	svc, repo := setupService(t)
	tickets := testutil.CreateTestBoard(t, repo, map[models.Status][]string{
		models.StatusOpen: {"t1", "t2"},
	})

	_, err := svc.Reorder(context.Background(), models.ReorderCommand{
		TicketID:        tickets["t1"].ID,
		NewStatus:       models.StatusOpen,
		NewOrder:        1,
		AffectedTickets: []models.OrderChange{{ID: tickets["t2"].ID, Order: 0}},
		ColumnVersions:  map[models.Status]int64{models.StatusOpen: 99},
	})
	assert.ErrorIs(t, err, ticket.ErrConflict)
	assert.ErrorIs(t, err, database.ErrColumnVersionMismatch)
}

func TestReorder_Commits(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()
	tickets := testutil.CreateTestBoard(t, repo, map[models.Status][]string{
		models.StatusOpen:    {"t1", "t2", "t3"},
		models.StatusWaiting: {"t4"},
	})

	board, err := svc.GetBoard(ctx)
	require.NoError(t, err)

	result, err := svc.Reorder(ctx, models.ReorderCommand{
		TicketID:  tickets["t2"].ID,
		NewStatus: models.StatusWaiting,
		NewOrder:  0,
		AffectedTickets: []models.OrderChange{
			{ID: tickets["t3"].ID, Order: 1},
			{ID: tickets["t4"].ID, Order: 1},
		},
		ColumnVersions: map[models.Status]int64{
			models.StatusOpen:    board.Versions[models.StatusOpen],
			models.StatusWaiting: board.Versions[models.StatusWaiting],
		},
	})
	require.NoError(t, err)
	assert.Len(t, result.Tickets, 3)

	board, err = svc.GetBoard(ctx)
	require.NoError(t, err)
	assert.NoError(t, board.CheckInvariants())
	require.Len(t, board.Column(models.StatusWaiting), 2)
	assert.Equal(t, tickets["t2"].ID, board.Column(models.StatusWaiting)[0].ID)
}

func TestCreateTicket(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created, err := svc.CreateTicket(ctx, ticket.CreateTicketRequest{Subject: "  Printer jam  ", Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Printer jam", created.Subject)
	assert.Equal(t, models.StatusOpen, created.Status)
	assert.Equal(t, models.PriorityMedium, created.Priority)

	_, err = svc.CreateTicket(ctx, ticket.CreateTicketRequest{Subject: " "})
	assert.ErrorIs(t, err, ticket.ErrEmptySubject)

	_, err = svc.CreateTicket(ctx, ticket.CreateTicketRequest{Subject: "x", Priority: "CRITICAL"})
	assert.ErrorIs(t, err, ticket.ErrInvalidPriority)

	_, err = svc.CreateTicket(ctx, ticket.CreateTicketRequest{Subject: "x", Status: "DONE"})
	assert.ErrorIs(t, err, ticket.ErrInvalidStatus)
}

func TestGetTicket_ByIDAndNumber(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()
	created := testutil.CreateTestTicket(t, repo, "find me", models.StatusOpen)

	byID, err := svc.GetTicket(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	byNumber, err := svc.GetTicket(ctx, "#1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byNumber.ID)

	_, err = svc.GetTicket(ctx, "7")
	assert.ErrorIs(t, err, ticket.ErrTicketNotFound)

	_, err = svc.GetTicket(ctx, "")
	assert.ErrorIs(t, err, ticket.ErrInvalidTicketRef)

	_, err = svc.GetTicket(ctx, "#0")
	assert.ErrorIs(t, err, ticket.ErrInvalidTicketRef)
}

func TestDeleteTicket(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()
	created := testutil.CreateTestTicket(t, repo, "bye", models.StatusOpen)

	require.NoError(t, svc.DeleteTicket(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteTicket(ctx, created.ID), ticket.ErrTicketNotFound)
	assert.ErrorIs(t, svc.DeleteTicket(ctx, ""), ticket.ErrEmptyTicketID)
}

func TestSeed(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Seed(ctx, 0)
	assert.ErrorIs(t, err, ticket.ErrInvalidSeedCount)

	created, err := svc.Seed(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, created, 11)

	board, err := svc.GetBoard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, board.Len())
}

func TestDetails(t *testing.T) {
	assert.Nil(t, ticket.Details(nil))
	assert.Equal(t, []string{"ticket ID cannot be empty"}, ticket.Details(ticket.ErrEmptyTicketID))
}
