package database

import (
	"context"

	"github.com/thenoetrevino/deskboard/internal/models"
)

// TicketStore is what the ticket service needs from persistence
type TicketStore interface {
	GetBoard(ctx context.Context) (*models.Board, error)
	ApplyReorder(ctx context.Context, cmd models.ReorderCommand) (*models.ReorderResult, error)
	Create(ctx context.Context, p NewTicketParams) (*models.Ticket, error)
	GetByID(ctx context.Context, id string) (*models.Ticket, error)
	GetByNumber(ctx context.Context, number int) (*models.Ticket, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Compile-time verification that *Repository implements TicketStore
var _ TicketStore = (*Repository)(nil)
