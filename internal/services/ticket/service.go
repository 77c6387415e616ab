package ticket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/thenoetrevino/deskboard/internal/database"
	"github.com/thenoetrevino/deskboard/internal/models"
)

const maxSubjectLength = 255

// Service defines all ticket-related business operations
type Service interface {
	// Read operations
	GetBoard(ctx context.Context) (*models.Board, error)
	GetTicket(ctx context.Context, ref string) (*models.Ticket, error)

	// Write operations
	Reorder(ctx context.Context, cmd models.ReorderCommand) (*models.ReorderResult, error)
	CreateTicket(ctx context.Context, req CreateTicketRequest) (*models.Ticket, error)
	DeleteTicket(ctx context.Context, id string) error
	Seed(ctx context.Context, count int) ([]*models.Ticket, error)
}

// CreateTicketRequest encapsulates all data needed to create a ticket
type CreateTicketRequest struct {
	Subject  string
	Status   models.Status   // Optional: empty means OPEN
	Priority models.Priority // Optional: empty means MEDIUM
	Assignee string
	Company  string
}

// Seeder fills an empty store with demo data
type Seeder func(ctx context.Context, count int) ([]*models.Ticket, error)

// service implements Service interface
type service struct {
	repo   database.TicketStore
	seed   Seeder
	logger *slog.Logger
}

// NewService creates a new ticket service
func NewService(repo database.TicketStore, seed Seeder, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:   repo,
		seed:   seed,
		logger: logger,
	}
}

// GetBoard returns every board column with its tickets and version
func (s *service) GetBoard(ctx context.Context) (*models.Board, error) {
	board, err := s.repo.GetBoard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}
	return board, nil
}

// GetTicket resolves a ticket by id, or by number written as "12" or "#12"
func (s *service) GetTicket(ctx context.Context, ref string) (*models.Ticket, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrInvalidTicketRef
	}

	var (
		t   *models.Ticket
		err error
	)
	if n, convErr := strconv.Atoi(strings.TrimPrefix(ref, "#")); convErr == nil {
		if n <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTicketRef, ref)
		}
		t, err = s.repo.GetByNumber(ctx, n)
	} else {
		t, err = s.repo.GetByID(ctx, ref)
	}
	if err != nil {
		return nil, s.translate(err)
	}
	return t, nil
}

// Reorder validates the command and applies it atomically
func (s *service) Reorder(ctx context.Context, cmd models.ReorderCommand) (*models.ReorderResult, error) {
	if err := validateReorder(cmd); err != nil {
		s.logger.Warn("reorder rejected",
			"ticket_id", cmd.TicketID,
			"to_status", cmd.NewStatus,
			"error", err)
		return nil, err
	}

	result, err := s.repo.ApplyReorder(ctx, cmd)
	if err != nil {
		err = s.translate(err)
		if errors.Is(err, ErrConflict) || errors.Is(err, ErrTicketNotFound) {
			s.logger.Warn("reorder rejected",
				"ticket_id", cmd.TicketID,
				"to_status", cmd.NewStatus,
				"error", err)
		} else {
			s.logger.Error("reorder failed",
				"ticket_id", cmd.TicketID,
				"error", err)
		}
		return nil, err
	}

	s.logger.Info("reorder committed",
		"ticket_id", cmd.TicketID,
		"to_status", cmd.NewStatus,
		"new_order", cmd.NewOrder,
		"affected", len(cmd.AffectedTickets))
	return result, nil
}

// CreateTicket handles ticket creation with validation
func (s *service) CreateTicket(ctx context.Context, req CreateTicketRequest) (*models.Ticket, error) {
	if req.Status == "" {
		req.Status = models.StatusOpen
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if err := validateCreateTicket(req); err != nil {
		return nil, err
	}

	t, err := s.repo.Create(ctx, database.NewTicketParams{
		Subject:  strings.TrimSpace(req.Subject),
		Status:   req.Status,
		Priority: req.Priority,
		Assignee: req.Assignee,
		Company:  req.Company,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	return t, nil
}

// DeleteTicket removes a ticket
func (s *service) DeleteTicket(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyTicketID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translate(err)
	}
	return nil
}

// Seed inserts demo tickets
func (s *service) Seed(ctx context.Context, count int) ([]*models.Ticket, error) {
	if count < 1 || count > 500 {
		return nil, ErrInvalidSeedCount
	}
	if s.seed == nil {
		return nil, errors.New("seeding is not configured")
	}
	created, err := s.seed(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("failed to seed tickets: %w", err)
	}
	return created, nil
}

// translate maps persistence errors onto service errors
func (s *service) translate(err error) error {
	switch {
	case errors.Is(err, database.ErrTicketNotFound):
		return fmt.Errorf("%w: %w", ErrTicketNotFound, err)
	case database.IsConflict(err):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return err
	}
}
