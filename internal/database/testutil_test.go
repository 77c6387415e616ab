package database

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/deskboard/internal/models"
)

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Open(context.Background(), MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(setupTestDB(t))
}

func createTicket(t *testing.T, repo *Repository, subject string, status models.Status) *models.Ticket {
	t.Helper()
	ticket, err := repo.Create(context.Background(), NewTicketParams{
		Subject:  subject,
		Status:   status,
		Priority: models.PriorityMedium,
	})
	require.NoError(t, err)
	return ticket
}
