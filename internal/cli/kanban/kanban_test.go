package kanban

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

func setupBoard(t *testing.T) (*cli.CLI, *database.Repository, map[string]*models.Ticket) {
	t.Helper()
	c, repo := clitest.SetupCLITest(t)
	tickets := testutil.CreateTestBoard(t, repo, map[models.Status][]string{
		models.StatusOpen:       {"Printer jam", "VPN down", "New laptop"},
		models.StatusInProgress: {"Password reset"},
	})
	return c, repo, tickets
}

func columnSubjects(t *testing.T, repo *database.Repository, status models.Status) []string {
	t.Helper()
	tickets, err := repo.ListBoard(context.Background())
	require.NoError(t, err)
	var out []string
	for _, tk := range tickets {
		if tk.Status == status {
			out = append(out, tk.Subject)
		}
	}
	return out
}

func TestResolveTicket(t *testing.T) {
	b := models.NewBoard()
	b.Columns[models.StatusOpen] = []*models.TicketSummary{{ID: "a", Number: 7, Status: models.StatusOpen}}
	b.Columns[models.StatusWaiting] = []*models.TicketSummary{{ID: "b", Number: 12, Status: models.StatusWaiting}}

	for _, ref := range []string{"b", "12", "#12"} {
		got, err := resolveTicket(b, ref)
		require.NoError(t, err, ref)
		assert.Equal(t, "b", got.ID, ref)
	}

	_, err := resolveTicket(b, "#99")
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}

func TestShow_Human(t *testing.T) {
	c, _, _ := setupBoard(t)

	out, _, err := clitest.ExecuteCLICommand(t, c, ShowCmd(), nil)
	require.NoError(t, err)

	assert.Contains(t, out, "Open (3)")
	assert.Contains(t, out, "In Progress (1)")
	assert.Contains(t, out, "Printer jam")
	assert.Contains(t, out, "Waiting (0)")
	assert.Less(t, strings.Index(out, "Printer jam"), strings.Index(out, "VPN down"))
}

func TestShow_JSON(t *testing.T) {
	c, _, tickets := setupBoard(t)

	out, _, err := clitest.ExecuteCLICommand(t, c, ShowCmd(), []string{"--json"})
	require.NoError(t, err)

	result := clitest.ParseJSON(t, out)
	assert.Equal(t, true, result["success"])

	data := result["data"].(map[string]any)
	columns := data["columns"].(map[string]any)
	open := columns["OPEN"].([]any)
	require.Len(t, open, 3)
	first := open[0].(map[string]any)
	assert.Equal(t, tickets["Printer jam"].ID, first["id"])
	assert.EqualValues(t, 0, first["kanbanOrder"])

	versions := data["versions"].(map[string]any)
	assert.EqualValues(t, 3, versions["OPEN"])
}

func TestMove_WithinColumn(t *testing.T) {
	c, repo, tickets := setupBoard(t)
	vpn := tickets["VPN down"]

	out, _, err := clitest.ExecuteCLICommand(t, c, MoveCmd(), []string{vpn.ID, "open", "0"})
	require.NoError(t, err)
	assert.Contains(t, out, "moved to Open at position 0")

	assert.Equal(t, []string{"VPN down", "Printer jam", "New laptop"}, columnSubjects(t, repo, models.StatusOpen))
}

func TestMove_AcrossColumns_JSON(t *testing.T) {
	c, repo, tickets := setupBoard(t)
	printer := tickets["Printer jam"]

	out, _, err := clitest.ExecuteCLICommand(t, c, MoveCmd(),
		[]string{"#" + strconv.Itoa(printer.Number), "in progress", "0", "--json"})
	require.NoError(t, err)

	result := clitest.ParseJSON(t, out)
	require.Equal(t, true, result["success"])
	data := result["data"].(map[string]any)
	assert.Equal(t, printer.ID, data["ticketId"])
	assert.Equal(t, "moved", data["outcome"])
	assert.Equal(t, "OPEN", data["fromStatus"])
	assert.Equal(t, "IN_PROGRESS", data["toStatus"])
	assert.EqualValues(t, 0, data["kanbanOrder"])
	assert.NotEmpty(t, data["affectedTickets"])

	assert.Equal(t, []string{"Printer jam", "Password reset"}, columnSubjects(t, repo, models.StatusInProgress))
	assert.Equal(t, []string{"VPN down", "New laptop"}, columnSubjects(t, repo, models.StatusOpen))
}

func TestMove_AppendsWithoutIndex(t *testing.T) {
	c, repo, tickets := setupBoard(t)

	_, _, err := clitest.ExecuteCLICommand(t, c, MoveCmd(), []string{tickets["Password reset"].ID, "waiting"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Password reset"}, columnSubjects(t, repo, models.StatusWaiting))
	assert.Empty(t, columnSubjects(t, repo, models.StatusInProgress))
}

func TestMove_InPlaceIsNoop(t *testing.T) {
	c, _, tickets := setupBoard(t)
	printer := tickets["Printer jam"]

	out, _, err := clitest.ExecuteCLICommand(t, c, MoveCmd(), []string{printer.ID, "open", "0", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, printer.ID+"\n", out)
}

func TestMove_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     func(map[string]*models.Ticket) []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "unknown status",
			args:     func(tk map[string]*models.Ticket) []string { return []string{tk["VPN down"].ID, "archived"} },
			wantCode: cli.ExitValidation,
			wantErr:  "VALIDATION_ERROR",
		},
		{
			name:     "status off the board",
			args:     func(tk map[string]*models.Ticket) []string { return []string{tk["VPN down"].ID, "closed"} },
			wantCode: cli.ExitValidation,
			wantErr:  "VALIDATION_ERROR",
		},
		{
			name:     "bad index",
			args:     func(tk map[string]*models.Ticket) []string { return []string{tk["VPN down"].ID, "open", "top"} },
			wantCode: cli.ExitUsage,
			wantErr:  "USAGE_ERROR",
		},
		{
			name:     "negative index",
			args:     func(tk map[string]*models.Ticket) []string { return []string{tk["VPN down"].ID, "open", "-1"} },
			wantCode: cli.ExitUsage,
			wantErr:  "USAGE_ERROR",
		},
		{
			name:     "unknown ticket",
			args:     func(map[string]*models.Ticket) []string { return []string{"#404", "open"} },
			wantCode: cli.ExitNotFound,
			wantErr:  "TICKET_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, repo, tickets := setupBoard(t)
			before := columnSubjects(t, repo, models.StatusOpen)

			out, _, err := clitest.ExecuteCLICommand(t, c, MoveCmd(), append(tt.args(tickets), "--json"))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, cli.ExitCode(err))

			result := clitest.ParseJSON(t, out)
			assert.Equal(t, false, result["success"])
			errData := result["error"].(map[string]any)
			assert.Equal(t, tt.wantErr, errData["code"])

			assert.Equal(t, before, columnSubjects(t, repo, models.StatusOpen))
		})
	}
}

func TestMove_HumanErrorGoesToStderr(t *testing.T) {
	c, _, _ := setupBoard(t)

	out, errOut, err := clitest.ExecuteCLICommand(t, c, MoveCmd(), []string{"#404", "open"})
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Error:")

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.True(t, exitErr.Reported)
}

func TestMove_ServerDown(t *testing.T) {
	c, _, _ := setupBoard(t)
	c.Config.Server.Socket = c.Config.Server.Socket + ".missing"

	_, errOut, err := clitest.ExecuteCLICommand(t, c, MoveCmd(), []string{"#1", "open"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
	assert.Contains(t, errOut, "server socket not found")
}
