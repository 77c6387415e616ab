package server

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/deskboard/internal/cli"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo tickets",
		Long: `Insert demo tickets spread over the board columns, plus one closed
ticket that stays off the board.

Examples:
  deskboard seed
  deskboard seed --count 50 --json
`,
		Args: cobra.NoArgs,
		RunE: runSeed,
	}

	cmd.Flags().Int("count", 20, "Number of board tickets to insert")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	count, _ := cmd.Flags().GetInt("count")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode, Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
	if count < 1 {
		return formatter.Fail(cli.Exitf(cli.ExitUsage, "--count must be at least 1, got %d", count))
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	application, err := cliInstance.OpenApp(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	tickets, err := application.TicketService.Seed(ctx, count)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(map[string]any{"created": len(tickets)}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Created %d demo tickets\n", len(tickets))
		return err
	})
}
