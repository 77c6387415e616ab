// Package ticket holds the ticket subcommands: create, show and delete.
package ticket

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/deskboard/internal/cli"
	"github.com/thenoetrevino/deskboard/internal/models"
)

// TicketCmd returns the ticket parent command
func TicketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Create, inspect and delete tickets",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

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

// writeTicket prints the detail view of a ticket
func writeTicket(w io.Writer, t *models.Ticket) error {
	lines := []struct{ label, value string }{
		{"Subject", t.Subject},
		{"Status", t.Status.Title()},
		{"Priority", string(t.Priority)},
		{"Assignee", orDash(t.Assignee)},
		{"Company", orDash(t.Company)},
		{"Position", fmt.Sprint(t.KanbanOrder)},
		{"Created", t.CreatedAt.Format(time.DateTime)},
		{"ID", t.ID},
	}
	if _, err := fmt.Fprintf(w, "Ticket #%d\n", t.Number); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "  %-9s %s\n", l.label+":", l.value); err != nil {
			return err
		}
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
