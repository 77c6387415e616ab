package kanban

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/deskboard/internal/cli"
	"github.com/thenoetrevino/deskboard/internal/tui"
)

// TUICmd returns the board tui subcommand
func TUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		Long: `Open the board in the terminal. Select a card, press space to pick it
up, steer it with the arrow keys or h/j/k/l, press enter to drop it and esc
to put it back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cliInstance, err := cli.GetCLIFromContext(ctx)
			if err != nil {
				return err
			}

			engine := cliInstance.Engine(nil)
			defer engine.Close()

			return tui.Run(ctx, engine, cliInstance.Config)
		},
	}
}
