package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/deskboard/internal/app"
	"github.com/thenoetrevino/deskboard/internal/config"
	"github.com/thenoetrevino/deskboard/internal/daemon"
	"github.com/thenoetrevino/deskboard/internal/logging"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Under systemd the journal collects stderr
	logFile := cfg.Log.File
	if os.Getenv("INVOCATION_ID") != "" {
		logFile = logging.Stderr
	}
	closer, err := logging.Init(logFile, cfg.Log.Level)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := run(ctx, cfg); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}
	slog.Info("deskboard daemon shut down gracefully")
}

func run(ctx context.Context, cfg *config.Config) error {
	application, err := app.Open(ctx, cfg.Server.DBPath, app.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	defer application.Close()

	server, err := application.NewServer(daemon.Config{SocketPath: cfg.Server.Socket, Addr: cfg.Server.Addr})
	if err != nil {
		return err
	}

	slog.Info("deskboard daemon starting", "socket_path", cfg.Server.Socket, "addr", cfg.Server.Addr, "pid", os.Getpid())

	// Blocks until shutdown
	return server.Start(ctx)
}
