package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenoetrevino/deskboard/internal/app"
	"github.com/thenoetrevino/deskboard/internal/board"
	"github.com/thenoetrevino/deskboard/internal/config"
	"github.com/thenoetrevino/deskboard/internal/events"
	"github.com/thenoetrevino/deskboard/internal/gateway"
)

// CLI represents the CLI application context shared by every command
type CLI struct {
	Config *config.Config
}

// NewCLI wraps a loaded configuration
func NewCLI(cfg *config.Config) *CLI {
	return &CLI{Config: cfg}
}

type cliKey struct{}

// WithCLI stores c in ctx for subcommands to pick up
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, cliKey{}, c)
}

// GetCLIFromContext returns the CLI stored by the root command
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		return nil, errors.New("no command context")
	}
	c, ok := ctx.Value(cliKey{}).(*CLI)
	if !ok || c == nil {
		return nil, errors.New("CLI not initialized")
	}
	return c, nil
}

// Gateway returns a client for the configured server
func (c *CLI) Gateway() *gateway.Client {
	return app.NewGateway(c.Config)
}

// Engine returns a board engine for the configured server. hub may be nil.
func (c *CLI) Engine(hub *events.Hub) *board.Engine {
	if hub == nil {
		return app.NewEngine(c.Config)
	}
	return app.NewEngine(c.Config, app.WithHub(hub))
}

// OpenApp opens the server-side services over the configured database
func (c *CLI) OpenApp(ctx context.Context) (*app.App, error) {
	a, err := app.Open(ctx, c.Config.Server.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return a, nil
}
