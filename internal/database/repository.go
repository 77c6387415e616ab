package database

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/thenoetrevino/deskboard/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*TicketRepo
	*ColumnRepo

	db *sqlx.DB
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		TicketRepo: &TicketRepo{db: db},
		ColumnRepo: &ColumnRepo{db: db},
		db:         db,
	}
}

// GetBoard reads the board tickets and column versions in one transaction so
// the versions describe exactly the tickets returned.
func (r *Repository) GetBoard(ctx context.Context) (*models.Board, error) {
	var board *models.Board
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		tickets, err := listBoard(ctx, tx)
		if err != nil {
			return err
		}
		versions, err := columnVersions(ctx, tx, models.BoardColumns)
		if err != nil {
			return err
		}
		board = models.BoardFromTickets(tickets, versions)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}
