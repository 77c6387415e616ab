package ticket

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/deskboard/internal/cli"
	"github.com/thenoetrevino/deskboard/internal/models"
)

// CreateCmd returns the ticket create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <subject>",
		Short: "Create a ticket",
		Long: `Create a ticket. It lands at the end of its column.

Examples:
  deskboard ticket create "Printer on fire" --priority urgent
  deskboard ticket create "VPN drops" --status waiting --company Acme
  deskboard ticket create "New laptop" --quiet
`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCreate,
	}

	cmd.Flags().String("status", "", "Initial status (default OPEN)")
	cmd.Flags().String("priority", "", "Priority: low, medium, high or urgent (default medium)")
	cmd.Flags().String("assignee", "", "Agent the ticket is assigned to")
	cmd.Flags().String("company", "", "Customer company")
	addOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := formatterFor(cmd)

	req := models.NewTicket{Subject: strings.Join(args, " ")}
	req.Assignee, _ = cmd.Flags().GetString("assignee")
	req.Company, _ = cmd.Flags().GetString("company")

	if raw, _ := cmd.Flags().GetString("status"); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			return formatter.Fail(cli.Exit(cli.ExitValidation, err))
		}
		req.Status = status
	}
	if raw, _ := cmd.Flags().GetString("priority"); raw != "" {
		priority := models.Priority(strings.ToUpper(strings.TrimSpace(raw)))
		if !priority.Known() {
			return formatter.Fail(cli.Exitf(cli.ExitValidation, "unknown priority %q", raw))
		}
		req.Priority = priority
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	t, err := cliInstance.Gateway().CreateTicket(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(t, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Created ticket #%d in %s at position %d\n", t.Number, t.Status.Title(), t.KanbanOrder)
		return err
	})
}
