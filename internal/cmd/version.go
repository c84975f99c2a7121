package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philippart-s/ai-skills/internal/version"
)

func newVersionCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print version information including version number, git commit,
build date, Go version, and platform.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			info := version.GetInfo()

			switch {
			case !cc.Text():
				return cc.Print(info)
			case verbose:
				return cc.Print(info.String())
			default:
				return cc.Print(fmt.Sprintf("ai-skills %s", info.Short()))
			}
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed version information")
	return cmd
}
