package kanban

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/deskboard/internal/board"
	"github.com/thenoetrevino/deskboard/internal/cli"
	"github.com/thenoetrevino/deskboard/internal/models"
)

// MoveCmd returns the board move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <ticket> <status> [index]",
		Short: "Move a ticket to a column position",
		Long: `Move a ticket the way a drag on the board would: the ticket is picked
up, dropped at index of the target column (the end when omitted) and its
siblings are renumbered in the same request.

The ticket is an id or a ticket number (#12 or 12).

Examples:
  # Move ticket 12 to the top of In Progress
  deskboard board move 12 in_progress 0

  # Append to Resolved
  deskboard board move '#12' resolved

  # JSON output for agents
  deskboard board move 12 waiting --json
`,
		Args: cobra.RangeArgs(2, 3),
		RunE: runMove,
	}
	addOutputFlags(cmd)
	return cmd
}

// moveResult is what a move prints
type moveResult struct {
	TicketID string               `json:"ticketId"`
	Number   int                  `json:"ticketNumber"`
	Outcome  string               `json:"outcome"`
	From     models.Status        `json:"fromStatus"`
	To       models.Status        `json:"toStatus"`
	Order    int                  `json:"kanbanOrder"`
	Affected []models.OrderChange `json:"affectedTickets"`
}

func (r *moveResult) GetID() string { return r.TicketID }

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := formatterFor(cmd)

	status, err := models.ParseStatus(args[1])
	if err != nil {
		return formatter.Fail(cli.Exit(cli.ExitValidation, err))
	}
	if !status.OnBoard() {
		return formatter.Fail(cli.Exitf(cli.ExitValidation, "%s is not a board column", status))
	}

	index := math.MaxInt
	if len(args) == 3 {
		index, err = strconv.Atoi(args[2])
		if err != nil || index < 0 {
			return formatter.Fail(cli.Exitf(cli.ExitUsage, "index must be a non-negative number, got %q", args[2]))
		}
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	engine := cliInstance.Engine(nil)
	defer engine.Close()

	if err := engine.Refresh(ctx); err != nil {
		return formatter.Fail(err)
	}
	ticket, err := resolveTicket(engine.CurrentBoard(), args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	drop, err := engine.MoveTo(ctx, ticket.ID, status, index)
	if err != nil {
		return formatter.Fail(err)
	}

	result := &moveResult{
		TicketID: ticket.ID,
		Number:   ticket.Number,
		Outcome:  drop.Outcome.String(),
		From:     ticket.Status,
		To:       status,
		Order:    ticket.Order,
		Affected: []models.OrderChange{},
	}
	if drop.Outcome == board.OutcomeMoved {
		result.Order = drop.Command.NewOrder
		result.Affected = drop.Command.AffectedTickets
	}

	return formatter.Success(result, func(w io.Writer) error {
		if drop.Outcome != board.OutcomeMoved {
			_, err := fmt.Fprintf(w, "Ticket #%d is already there\n", ticket.Number)
			return err
		}
		_, err := fmt.Fprintf(w, "Ticket #%d moved to %s at position %d (%d other tickets renumbered)\n",
			ticket.Number, status.Title(), result.Order, len(result.Affected))
		return err
	})
}
