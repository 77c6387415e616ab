// Package cli runs deskboard commands against a test server. It lives apart
// from testutil so service tests can import testutil without pulling in the
// command tree.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/deskboard/internal/cli"
	"github.com/thenoetrevino/deskboard/internal/config"
	"github.com/thenoetrevino/deskboard/internal/database"
	"github.com/thenoetrevino/deskboard/internal/testutil"
)

// SetupCLITest starts a test server and returns a CLI configured to talk to
// it, along with the repository behind the server
func SetupCLITest(t *testing.T) (*cli.CLI, *database.Repository) {
	t.Helper()
	_, socketPath, repo := testutil.SetupTestServer(t)

	cfg := config.Default()
	cfg.Server.Socket = socketPath
	cfg.Server.DBPath = filepath.Join(t.TempDir(), "tickets.db")
	cfg.Client.Server = ""
	cfg.Client.Timeout = 2 * time.Second
	cfg.Client.FetchRetries = 0

	return cli.NewCLI(cfg), repo
}

// ExecuteCLICommand runs cmd with args and returns what it wrote to stdout
// and stderr
func ExecuteCLICommand(t *testing.T, c *cli.CLI, cmd *cobra.Command, args []string) (stdout, stderr string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err = cmd.ExecuteContext(cli.WithCLI(context.Background(), c))
	return outBuf.String(), errBuf.String(), err
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}

	return result
}
