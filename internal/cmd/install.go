package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philippart-s/ai-skills/internal/skills"
)

func newInstallCmd() *cobra.Command {
	var (
		harness    string
		project    bool
		projectDir string
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the skill for an AI coding assistant",
		Long: `Write SKILL.md and the reference documents into the skill directory of
an AI coding assistant. Existing files are overwritten.

  claude    ~/.claude/skills/<name>/   (or ./.claude/skills/<name>/ with --project)
  opencode  ~/.config/opencode/skill/<name>/`,
		Example: `  ai-skills install
  ai-skills install --harness opencode
  ai-skills install --project`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			if harness == "" {
				harness = cc.Config.Install.Harness
			}
			h, err := skills.ParseHarness(harness)
			if err != nil {
				return err
			}

			opts := skills.Options{
				Harness:    h,
				Scope:      skills.ScopeUser,
				ProjectDir: projectDir,
				Guides:     cc.Guides(),
			}
			if project {
				opts.Scope = skills.ScopeProject
			}

			res, err := skills.Install(opts)
			if err != nil {
				return err
			}
			cc.Logger.Info("skill installed", "harness", string(h), "dir", res.Dir, "files", len(res.Files))

			if cc.Text() {
				return cc.Print(fmt.Sprintf("✓ Installed %s for %s in %s (%d files)", skills.Name, h, res.Dir, len(res.Files)))
			}
			return cc.Print(res)
		},
	}

	cmd.Flags().StringVar(&harness, "harness", "", "claude or opencode (default from install.harness)")
	cmd.Flags().BoolVar(&project, "project", false, "install into the project instead of the user directory")
	cmd.Flags().StringVar(&projectDir, "project-dir", ".", "project directory for --project")
	return cmd
}
