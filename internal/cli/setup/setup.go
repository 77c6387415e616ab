// Package setup holds the config command for creating and inspecting the
// configuration file.
package setup

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/deskboard/internal/cli"
	"github.com/thenoetrevino/deskboard/internal/config"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the configuration file",
	}

	cmd.AddCommand(initCmd())
	cmd.AddCommand(showCmd())

	return cmd
}

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Long: `Write the default configuration to $XDG_CONFIG_HOME/deskboard/config.yaml
(or ~/.config/deskboard/config.yaml). An existing file is kept unless --force
is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			formatter := &cli.OutputFormatter{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}

			path, err := config.Path()
			if err != nil {
				return formatter.Fail(err)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return formatter.Fail(cli.Exitf(cli.ExitUsage, "%s already exists (use --force to overwrite)", path))
			}

			if err := config.Default().SaveTo(path); err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(path, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Wrote %s\n", path)
				return err
			})
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliInstance, err := cli.GetCLIFromContext(cmd.Context())
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cliInstance.Config); err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			return enc.Close()
		},
	}
}
