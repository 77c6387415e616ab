package ticket

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/deskboard/internal/cli"
	"github.com/thenoetrevino/deskboard/internal/database"
	"github.com/thenoetrevino/deskboard/internal/models"
	"github.com/thenoetrevino/deskboard/internal/testutil"
	clitest "github.com/thenoetrevino/deskboard/internal/testutil/cli"
)

func openSubjects(t *testing.T, repo *database.Repository) []string {
	t.Helper()
	tickets, err := repo.ListBoard(context.Background())
	require.NoError(t, err)
	var out []string
	for _, tk := range tickets {
		if tk.Status == models.StatusOpen {
			out = append(out, tk.Subject)
		}
	}
	return out
}

func TestCreate_AppendsToColumn(t *testing.T) {
	c, repo := clitest.SetupCLITest(t)
	testutil.CreateTestBoard(t, repo, map[models.Status][]string{
		models.StatusOpen: {"Printer jam"},
	})

	out, _, err := clitest.ExecuteCLICommand(t, c, CreateCmd(),
		[]string{"VPN", "down", "--priority", "urgent", "--company", "Acme"})
	require.NoError(t, err)
	assert.Contains(t, out, "in Open at position 1")

	assert.Equal(t, []string{"Printer jam", "VPN down"}, openSubjects(t, repo))
}

func TestCreate_JSON(t *testing.T) {
	c, _ := clitest.SetupCLITest(t)

	out, _, err := clitest.ExecuteCLICommand(t, c, CreateCmd(),
		[]string{"Password reset", "--status", "waiting", "--json"})
	require.NoError(t, err)

	result := clitest.ParseJSON(t, out)
	require.Equal(t, true, result["success"])
	data := result["data"].(map[string]any)
	assert.Equal(t, "Password reset", data["subject"])
	assert.Equal(t, "WAITING", data["status"])
	assert.Equal(t, "MEDIUM", data["priority"])
	assert.NotEmpty(t, data["id"])
}

func TestCreate_Quiet(t *testing.T) {
	c, repo := clitest.SetupCLITest(t)

	out, _, err := clitest.ExecuteCLICommand(t, c, CreateCmd(), []string{"New laptop", "--quiet"})
	require.NoError(t, err)

	id := strings.TrimSpace(out)
	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "New laptop", got.Subject)
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown status", []string{"x", "--status", "done"}, cli.ExitValidation},
		{"unknown priority", []string{"x", "--priority", "critical"}, cli.ExitValidation},
		{"blank subject", []string{"   "}, cli.ExitValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := clitest.SetupCLITest(t)
			_, _, err := clitest.ExecuteCLICommand(t, c, CreateCmd(), append(tt.args, "--json"))
			require.Error(t, err)
			assert.Equal(t, tt.code, cli.ExitCode(err))
		})
	}
}

func TestShow_ByNumber(t *testing.T) {
	c, repo := clitest.SetupCLITest(t)
	closed := testutil.CreateTestTicket(t, repo, "Archived outage", models.StatusClosed)

	for _, ref := range []string{closed.ID, strconv.Itoa(closed.Number), "#" + strconv.Itoa(closed.Number)} {
		out, _, err := clitest.ExecuteCLICommand(t, c, ShowCmd(), []string{ref})
		require.NoError(t, err, ref)
		assert.Contains(t, out, "Ticket #"+strconv.Itoa(closed.Number), ref)
		assert.Contains(t, out, "Archived outage", ref)
		assert.Contains(t, out, closed.ID, ref)
	}
}

func TestShow_NotFound(t *testing.T) {
	c, _ := clitest.SetupCLITest(t)

	_, _, err := clitest.ExecuteCLICommand(t, c, ShowCmd(), []string{"#404", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))

	_, _, err = clitest.ExecuteCLICommand(t, c, ShowCmd(), []string{"#0", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
}

func TestDelete_Force(t *testing.T) {
	c, repo := clitest.SetupCLITest(t)
	tickets := testutil.CreateTestBoard(t, repo, map[models.Status][]string{
		models.StatusOpen: {"Printer jam", "VPN down"},
	})

	out, _, err := clitest.ExecuteCLICommand(t, c, DeleteCmd(),
		[]string{"#" + strconv.Itoa(tickets["Printer jam"].Number), "--force"})
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	assert.Equal(t, []string{"VPN down"}, openSubjects(t, repo))
}

func TestDelete_ConfirmationDeclined(t *testing.T) {
	c, repo := clitest.SetupCLITest(t)
	tickets := testutil.CreateTestBoard(t, repo, map[models.Status][]string{
		models.StatusOpen: {"Printer jam"},
	})

	cmd := DeleteCmd()
	cmd.SetIn(strings.NewReader("n\n"))
	out, _, err := clitest.ExecuteCLICommand(t, c, cmd, []string{tickets["Printer jam"].ID})
	require.NoError(t, err)
	assert.Contains(t, out, "Delete ticket #")
	assert.Contains(t, out, "Cancelled")

	assert.Equal(t, []string{"Printer jam"}, openSubjects(t, repo))
}

func TestDelete_ConfirmationAccepted(t *testing.T) {
	c, repo := clitest.SetupCLITest(t)
	tickets := testutil.CreateTestBoard(t, repo, map[models.Status][]string{
		models.StatusOpen: {"Printer jam"},
	})

	cmd := DeleteCmd()
	cmd.SetIn(strings.NewReader("yes\n"))
	_, _, err := clitest.ExecuteCLICommand(t, c, cmd, []string{tickets["Printer jam"].ID})
	require.NoError(t, err)

	assert.Empty(t, openSubjects(t, repo))
}

func TestDelete_JSONMissingTicket(t *testing.T) {
	c, _ := clitest.SetupCLITest(t)

	out, _, err := clitest.ExecuteCLICommand(t, c, DeleteCmd(), []string{"no-such-id", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))

	result := clitest.ParseJSON(t, out)
	assert.Equal(t, false, result["success"])
}
