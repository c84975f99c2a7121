package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ai-skills",
		Short: "Guided Quarkus, JBang and LangChain4j development skills",
		Long: `ai-skills detects which of Quarkus, JBang and LangChain4j a project uses,
surfaces the matching guidance, and walks a human-gated five-phase workflow:
Gathering, Git check, Planning, Implementation and Validation.

It also installs the same guidance as a skill for AI coding assistants.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "config file (default is $HOME/.config/ai-skills/config.yaml)")
	root.PersistentFlags().StringP("output", "o", "", "output format: text, json or yaml")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().String("log-format", "", "log format: text or json")
	root.PersistentFlags().String("style", "", "markdown style: auto, dark, light or plain")
	root.PersistentFlags().Bool("no-color", false, "disable colours (same as --style plain)")

	root.AddCommand(
		newDetectCmd(),
		newGuideCmd(),
		newSessionCmd(),
		newPlanCmd(),
		newInstallCmd(),
		newTranscriptCmd(),
		newConfigCmd(),
		newVersionCmd(),
		newCompletionCmd(root),
	)
	return root
}

// ExecuteContext runs the root command with a context that cancels a
// running session
func ExecuteContext(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
