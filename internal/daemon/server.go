// Package daemon serves the ticket board API over a unix socket, TCP, or both.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/deskboard/internal/services/ticket"
)

// Config says where the server listens. At least one of SocketPath and Addr
// must be set.
type Config struct {
	SocketPath string
	Addr       string
}

// Server is the ticket board API server
type Server struct {
	cfg       Config
	svc       ticket.Service
	metrics   *Metrics
	logger    *slog.Logger
	http      *http.Server
	listeners []net.Listener

	shutdownTimeout time.Duration
	maxBodyBytes    int64
	shutdownOnce    sync.Once
	shutdownErr     error
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// getEnvInt reads an integer from an environment variable, returning defaultVal if not set or invalid
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

// NewServer creates the listeners and the HTTP server. Nothing is served
// until Start.
func NewServer(cfg Config, svc ticket.Service, opts ...Option) (*Server, error) {
	if cfg.SocketPath == "" && cfg.Addr == "" {
		return nil, errors.New("no socket path or address to listen on")
	}

	s := &Server{
		cfg:             cfg,
		svc:             svc,
		metrics:         NewMetrics(),
		logger:          slog.Default(),
		shutdownTimeout: time.Duration(getEnvInt("DESKBOARD_SHUTDOWN_TIMEOUT_MS", 5000)) * time.Millisecond,
		maxBodyBytes:    int64(getEnvInt("DESKBOARD_MAX_BODY_BYTES", 1<<20)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.SocketPath != "" {
		l, err := listenUnix(cfg.SocketPath)
		if err != nil {
			return nil, err
		}
		s.listeners = append(s.listeners, l)
	}
	if cfg.Addr != "" {
		l, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", cfg.Addr)
		if err != nil {
			s.closeListeners()
			return nil, fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
		}
		s.listeners = append(s.listeners, l)
	}

	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	return s, nil
}

func listenUnix(socketPath string) (net.Listener, error) {
	// Ensure the directory exists
	if dir := filepath.Dir(socketPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create socket directory: %w", err)
		}
	}

	// Remove stale socket file if it exists
	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	l, err := (&net.ListenConfig{}).Listen(context.Background(), "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket listener: %w", err)
	}
	if err := os.Chmod(socketPath, 0o600); err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("failed to restrict socket permissions: %w", err)
	}
	return l, nil
}

// Addrs returns the addresses the server listens on
func (s *Server) Addrs() []net.Addr {
	out := make([]net.Addr, len(s.listeners))
	for i, l := range s.listeners {
		out[i] = l.Addr()
	}
	return out
}

// Metrics returns the live counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start serves on every listener until ctx is cancelled or a listener fails,
// then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, l := range s.listeners {
		s.logger.Info("server listening", "network", l.Addr().Network(), "addr", l.Addr().String())
		g.Go(func() error {
			if err := s.http.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", l.Addr(), err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("server context cancelled, shutting down")
		return s.Shutdown()
	})

	return g.Wait()
}

// Shutdown stops accepting requests, waits for in-flight ones, and removes
// the socket file. Safe to call more than once.
func (s *Server) Shutdown() error {
	s.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.shutdownErr = s.http.Shutdown(ctx)
		s.closeListeners()

		if s.cfg.SocketPath != "" {
			if err := os.Remove(s.cfg.SocketPath); err != nil && !os.IsNotExist(err) {
				s.logger.Warn("failed to remove socket file", "error", err)
			}
		}
	})
	return s.shutdownErr
}

func (s *Server) closeListeners() {
	for _, l := range s.listeners {
		if err := l.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.logger.Debug("error closing listener", "error", err)
		}
	}
}
