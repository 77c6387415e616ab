// Package kanban holds the board subcommands: show, move and tui.
package kanban

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/deskboard/internal/cli"
	"github.com/thenoetrevino/deskboard/internal/models"
)

// BoardCmd returns the board parent command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "View and reorder the ticket board",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(TUICmd())

	return cmd
}

// formatterFor builds the output formatter from the agent-friendly flags
func formatterFor(cmd *cobra.Command) *cli.OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &cli.OutputFormatter{
		JSON:  jsonOutput,
		Quiet: quietMode,
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
	}
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// resolveTicket finds a ticket on b by id, "#number" or bare number
func resolveTicket(b *models.Board, ref string) (*models.TicketSummary, error) {
	if t := b.Ticket(ref); t != nil {
		return t, nil
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(ref, "#")); err == nil {
		for _, status := range models.BoardColumns {
			for _, t := range b.Column(status) {
				if t.Number == n {
					return t, nil
				}
			}
		}
	}
	return nil, cli.Exit(cli.ExitNotFound, fmt.Errorf("%w: %s", models.ErrTicketNotOnBoard, ref))
}
