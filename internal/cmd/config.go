package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philippart-s/ai-skills/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `Configuration is read from $HOME/.config/ai-skills/config.yaml, then
AISKILLS_ environment variables (AISKILLS_LOG_LEVEL -> log.level), then flags.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "view",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cc, err := NewCommandContext(cmd)
				if err != nil {
					return err
				}
				if cc.Text() {
					cc.Config.Output.Format = "yaml"
				}
				return cc.Print(cc.Config)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, _ := cmd.Flags().GetString("config")
				if path == "" {
					p, err := config.DefaultPath()
					if err != nil {
						return err
					}
					path = p
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
				return err
			},
		},
	)
	return cmd
}
