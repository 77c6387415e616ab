package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestSetup_FiltersByLevel(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	Setup(&buf, "warn")
	slog.Info("hidden")
	slog.Warn("shown", "ticket_id", "t1")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "ticket_id=t1")
}

func TestInit_WritesFile(t *testing.T) {
	restoreDefault(t)
	path := filepath.Join(t.TempDir(), "logs", "deskboard.log")

	closer, err := Init(path, "debug")
	require.NoError(t, err)
	slog.Debug("reorder committed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "reorder committed")
}
