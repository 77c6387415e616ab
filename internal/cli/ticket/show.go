package ticket

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/deskboard/internal/cli"
)

// ShowCmd returns the ticket show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <ticket>",
		Short: "Show one ticket",
		Long: `Show one ticket, including closed ones that are not on the board.

The ticket is an id or a ticket number (#12 or 12).

Examples:
  deskboard ticket show 12
  deskboard ticket show '#12' --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
	addOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := formatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	t, err := cliInstance.Gateway().GetTicket(ctx, args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(t, func(w io.Writer) error {
		return writeTicket(w, t)
	})
}
