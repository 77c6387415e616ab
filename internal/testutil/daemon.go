package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thenoetrevino/deskboard/internal/daemon"
	"github.com/thenoetrevino/deskboard/internal/database"
	"github.com/thenoetrevino/deskboard/internal/events"
	"github.com/thenoetrevino/deskboard/internal/models"
	"github.com/thenoetrevino/deskboard/internal/services/ticket"
)

// GetTestSocketPath generates a unique temporary socket path for testing.
// The socket is guaranteed to not exist and will be cleaned up by test cleanup.
func GetTestSocketPath(t *testing.T) string {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "deskboard.sock")

	t.Cleanup(func() {
		if _, err := os.Stat(socketPath); err == nil {
			_ = os.Remove(socketPath)
		}
	})

	return socketPath
}

// SetupTestService returns a ticket service over a fresh in-memory database
func SetupTestService(t *testing.T) (ticket.Service, *database.Repository) {
	t.Helper()
	repo := SetupTestRepo(t)
	seed := func(ctx context.Context, count int) ([]*models.Ticket, error) {
		return database.SeedDemo(ctx, repo, count)
	}
	return ticket.NewService(repo, seed, nil), repo
}

// SetupTestServer starts a server backed by an in-memory database on a
// temporary socket and waits for it to be ready.
// Returns the server, socket path and repository. Cleanup is automatic via t.Cleanup().
func SetupTestServer(t *testing.T) (*daemon.Server, string, *database.Repository) {
	t.Helper()

	svc, repo := SetupTestService(t)
	socketPath := GetTestSocketPath(t)

	server, err := daemon.NewServer(daemon.Config{SocketPath: socketPath}, svc)
	if err != nil {
		t.Fatalf("Failed to create test server: %v", err)
	}

	// Register cleanup FIRST, before starting server
	t.Cleanup(func() {
		if err := server.Shutdown(); err != nil {
			t.Logf("Warning: server shutdown error during cleanup: %v", err)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() {
		if err := server.Start(ctx); err != nil {
			t.Logf("Server error: %v", err)
		}
	}()

	// Wait for socket to be created (max 2 seconds)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(socketPath); err == nil {
			return server, socketPath, repo
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatal("Timeout waiting for server socket to be created")
	return nil, "", nil
}

// WaitForEvent waits for an event on a channel with timeout.
// Returns the event if received, or fails the test on timeout.
func WaitForEvent(t *testing.T, ch <-chan events.Event, timeout time.Duration) events.Event {
	t.Helper()

	select {
	case event, ok := <-ch:
		if !ok {
			t.Fatal("Event channel closed unexpectedly")
		}
		return event
	case <-time.After(timeout):
		t.Fatalf("Timeout waiting for event after %v", timeout)
		return events.Event{}
	}
}

// WaitForEventType skips events until one of type want arrives
func WaitForEventType(t *testing.T, ch <-chan events.Event, want events.EventType, timeout time.Duration) events.Event {
	t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case event, ok := <-ch:
			if !ok {
				t.Fatal("Event channel closed unexpectedly")
			}
			if event.Type == want {
				return event
			}
		case <-deadline:
			t.Fatalf("Timeout waiting for %s after %v", want, timeout)
			return events.Event{}
		}
	}
}

// DrainEvents drains all pending events from a channel (non-blocking).
// Returns the slice of events that were pending.
func DrainEvents(ch <-chan events.Event) []events.Event {
	var drained []events.Event
	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return drained
			}
			drained = append(drained, event)
		default:
			return drained
		}
	}
}
