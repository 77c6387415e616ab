package kanban

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/deskboard/internal/cli"
	"github.com/thenoetrevino/deskboard/internal/cli/styles"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the board",
		Long: `Print every board column with its tickets in board order.

Examples:
  deskboard board show
  deskboard board show --json
`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}
	addOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	formatter := formatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	b, err := cliInstance.Gateway().FetchBoard(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(b, func(w io.Writer) error {
		return styles.WriteBoard(w, b)
	})
}
