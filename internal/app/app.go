package app

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/thenoetrevino/deskboard/internal/daemon"
	"github.com/thenoetrevino/deskboard/internal/database"
	"github.com/thenoetrevino/deskboard/internal/models"
	"github.com/thenoetrevino/deskboard/internal/services/ticket"
)

// App holds the server-side services and owns the database handle.
type App struct {
	db     *sqlx.DB
	repo   *database.Repository
	logger *slog.Logger

	TicketService ticket.Service
}

// Open opens the ticket database at dbPath and wires the services over it.
func Open(ctx context.Context, dbPath string, opts ...Option) (*App, error) {
	db, err := database.Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	return New(db, opts...), nil
}

// New wires the services over an already open database.
// The App takes ownership of db.
func New(db *sqlx.DB, opts ...Option) *App {
	cfg := newAppConfig(opts)
	repo := database.NewRepository(db)

	seed := func(ctx context.Context, count int) ([]*models.Ticket, error) {
		return database.SeedDemo(ctx, repo, count)
	}

	return &App{
		db:            db,
		repo:          repo,
		logger:        cfg.logger,
		TicketService: ticket.NewService(repo, seed, cfg.logger.With("component", "tickets")),
	}
}

// Repo returns the underlying repository for direct database access
func (a *App) Repo() *database.Repository {
	return a.repo
}

// NewServer builds the HTTP server over the ticket service
func (a *App) NewServer(cfg daemon.Config) (*daemon.Server, error) {
	return daemon.NewServer(cfg, a.TicketService, daemon.WithLogger(a.logger.With("component", "server")))
}

// Close releases the database
func (a *App) Close() error {
	return a.db.Close()
}
