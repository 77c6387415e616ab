package app

import (
	"log/slog"

	"github.com/thenoetrevino/deskboard/internal/events"
)

// Option is a functional option for configuring App and client initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	hub    *events.Hub
	logger *slog.Logger
}

func newAppConfig(opts []Option) *appConfig {
	cfg := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithHub sets the hub the board engine publishes on
func WithHub(h *events.Hub) Option {
	return func(cfg *appConfig) {
		cfg.hub = h
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
