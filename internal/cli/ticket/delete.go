package ticket

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/deskboard/internal/cli"
)

// DeleteCmd returns the ticket delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <ticket>",
		Short: "Delete a ticket",
		Long: `Delete a ticket by id or number (requires confirmation unless --force,
--quiet or --json).

Examples:
  deskboard ticket delete 12
  deskboard ticket delete '#12' --force
`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
	addOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := formatterFor(cmd)
	force, _ := cmd.Flags().GetBool("force")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	gw := cliInstance.Gateway()

	if !force && !formatter.Quiet && !formatter.JSON {
		t, err := gw.GetTicket(ctx, args[0])
		if err != nil {
			return formatter.Fail(err)
		}
		if !confirm(cmd, fmt.Sprintf("Delete ticket #%d: '%s'? (y/N): ", t.Number, t.Subject)) {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return err
		}
	}

	t, err := gw.DeleteTicket(ctx, args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(t, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Ticket #%d deleted\n", t.Number)
		return err
	})
}

func confirm(cmd *cobra.Command, prompt string) bool {
	if _, err := fmt.Fprint(cmd.OutOrStdout(), prompt); err != nil {
		return false
	}
	response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true
	}
	return false
}
