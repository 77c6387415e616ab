package testutil

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/thenoetrevino/deskboard/internal/database"
	"github.com/thenoetrevino/deskboard/internal/models"
)

// SetupTestDB creates an in-memory database with the full schema. It is
// closed when the test ends.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})
	return db
}

// SetupTestRepo returns a repository over a fresh in-memory database
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t))
}

// CreateTestTicket inserts a ticket at the bottom of status
func CreateTestTicket(t *testing.T, repo *database.Repository, subject string, status models.Status) *models.Ticket {
	t.Helper()
	ticket, err := repo.Create(context.Background(), database.NewTicketParams{
		Subject:  subject,
		Status:   status,
		Priority: models.PriorityMedium,
	})
	if err != nil {
		t.Fatalf("Failed to create test ticket: %v", err)
	}
	return ticket
}

// CreateTestBoard inserts tickets column by column and returns them by subject
func CreateTestBoard(t *testing.T, repo *database.Repository, columns map[models.Status][]string) map[string]*models.Ticket {
	t.Helper()
	out := make(map[string]*models.Ticket)
	for _, status := range models.BoardColumns {
		for _, subject := range columns[status] {
			out[subject] = CreateTestTicket(t, repo, subject, status)
		}
	}
	return out
}
