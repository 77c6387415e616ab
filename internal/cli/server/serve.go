// Package server holds the commands that run against the ticket database
// directly: serve and seed.
package server

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/deskboard/internal/app"
	"github.com/thenoetrevino/deskboard/internal/cli"
	"github.com/thenoetrevino/deskboard/internal/daemon"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the ticket server",
		Long: `Serve the ticket board API on a unix socket (and optionally TCP) until
interrupted.

Examples:
  deskboard serve
  deskboard serve --addr 127.0.0.1:7070
  deskboard serve --db /tmp/tickets.db --seed 20
`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("socket", "", "Unix socket path (default from config)")
	cmd.Flags().String("addr", "", "Also listen on this TCP address")
	cmd.Flags().String("db", "", "Database path (default from config)")
	cmd.Flags().Int("seed", 0, "Insert this many demo tickets when the database is empty")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return err
	}
	serverCfg := cliInstance.Config.Server
	if v, _ := cmd.Flags().GetString("socket"); v != "" {
		serverCfg.Socket = v
	}
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		serverCfg.Addr = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		serverCfg.DBPath = v
	}
	seedCount, _ := cmd.Flags().GetInt("seed")

	application, err := app.Open(ctx, serverCfg.DBPath, app.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	if seedCount > 0 {
		count, err := application.Repo().Count(ctx)
		if err != nil {
			return err
		}
		if count == 0 {
			if _, err := application.TicketService.Seed(ctx, seedCount); err != nil {
				return err
			}
		}
	}

	srv, err := application.NewServer(daemon.Config{SocketPath: serverCfg.Socket, Addr: serverCfg.Addr})
	if err != nil {
		return err
	}
	for _, addr := range srv.Addrs() {
		fmt.Fprintf(cmd.OutOrStdout(), "deskboard server listening on %s %s\n", addr.Network(), addr)
	}

	slog.Info("deskboard server starting", "socket_path", serverCfg.Socket, "addr", serverCfg.Addr, "db", serverCfg.DBPath)
	return srv.Start(ctx)
}
