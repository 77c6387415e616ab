// Package cmd assembles the deskboard command tree.
package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/deskboard/internal/cli"
	"github.com/thenoetrevino/deskboard/internal/cli/kanban"
	"github.com/thenoetrevino/deskboard/internal/cli/server"
	"github.com/thenoetrevino/deskboard/internal/cli/setup"
	"github.com/thenoetrevino/deskboard/internal/cli/styles"
	"github.com/thenoetrevino/deskboard/internal/cli/ticket"
	"github.com/thenoetrevino/deskboard/internal/config"
	"github.com/thenoetrevino/deskboard/internal/logging"
)

// NewRootCmd builds the deskboard command tree. Config is loaded and logging
// set up before any subcommand runs.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		logCloser  io.Closer
	)

	root := &cobra.Command{
		Use:   "deskboard",
		Short: "Deskboard - a ticket board you reorder by dragging",
		Long: `Deskboard keeps support tickets on a board of status columns. Cards are
moved by drag gestures (in the terminal board or with "board move"); every
move is applied optimistically and committed atomically on the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var (
				cfg *config.Config
				err error
			)
			if configPath != "" {
				cfg, err = config.LoadFile(configPath)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return cli.Exit(cli.ExitDataErr, err)
			}

			logCloser, err = logging.Init(cfg.Log.File, cfg.Log.Level)
			if err != nil {
				return err
			}
			styles.Init(cfg.Theme)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(cli.WithCLI(ctx, cli.NewCLI(cfg)))
			slog.Debug("command starting", "command", cmd.CommandPath())
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default $XDG_CONFIG_HOME/deskboard/config.yaml)")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cli.Exit(cli.ExitUsage, err)
	})

	root.AddCommand(kanban.BoardCmd())
	root.AddCommand(ticket.TicketCmd())
	root.AddCommand(server.ServeCmd())
	root.AddCommand(server.SeedCmd())
	root.AddCommand(setup.ConfigCmd())

	return root
}

// Execute runs the command tree with ctx
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
