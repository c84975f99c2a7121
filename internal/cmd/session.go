package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/philippart-s/ai-skills/internal/guide"
	"github.com/philippart-s/ai-skills/internal/plan"
	"github.com/philippart-s/ai-skills/internal/prompt"
	"github.com/philippart-s/ai-skills/internal/response"
	"github.com/philippart-s/ai-skills/internal/session"
	"github.com/philippart-s/ai-skills/internal/transcript"
)

func newSessionCmd() *cobra.Command {
	var (
		markers      []string
		planFile     string
		showGuides   bool
		linePrompts  bool
		noTranscript bool
		format       string
	)

	cmd := &cobra.Command{
		Use:   "session [dir]",
		Short: "Run a guided development session",
		Long: `Run the five-phase workflow for a project:

  1. Gathering       answer questions about the goal and scope
  2. Git check       read-only repository inspection
  3. Planning        review and approve a 5 to 8 step plan
  4. Implementation  complete and validate one step at a time
  5. Validation      final sign-off

Answer "halt" at any prompt, or press Ctrl+C, to stop. Nothing is rolled
back. The session journal is exported as a transcript when it ends.`,
		Example: `  ai-skills session
  ai-skills session ./service --plan plan.yaml
  ai-skills session --line < answers.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			dir := dirArg(args)

			res, err := runDetection(cc, dir, markers)
			if err != nil {
				return err
			}

			var provided *plan.Plan
			if planFile != "" {
				if provided, err = plan.LoadPlan(planFile); err != nil {
					return err
				}
			}

			var p prompt.Prompter = prompt.NewLine(cmd.InOrStdin(), cc.ErrOut)
			if !linePrompts && prompt.ShouldPrompt() {
				p = prompt.NewForm()
			}

			style := cc.Style()
			runner := session.NewRunner(session.Config{
				Dir:        dir,
				Out:        cc.Out,
				Prompter:   p,
				Guides:     cc.Guides(),
				Renderer:   response.NewRenderer(style == guide.StylePlain),
				Logger:     cc.Logger,
				Style:      style,
				ShowGuides: showGuides,
				Plan:       provided,
			})

			seq, runErr := runner.Run(cmd.Context(), res)

			if !noTranscript {
				m := transcript.NewManager(cc.Config.Transcript.Dir)
				path, err := m.Save(transcript.FromSequencer(seq, time.Now()), transcript.ParseFormat(format))
				if err != nil {
					cc.Logger.WithError(err).Warn("transcript not saved")
				} else {
					fmt.Fprintf(cc.ErrOut, "Transcript saved to %s\n", path)
				}
			}

			fmt.Fprint(cc.ErrOut, seq.Summary().String())
			return runErr
		},
	}

	cmd.Flags().StringArrayVar(&markers, "marker", nil, "literal marker to match instead of scanning (repeatable)")
	cmd.Flags().StringVar(&planFile, "plan", "", "propose this plan file instead of a generated draft")
	cmd.Flags().BoolVar(&showGuides, "show-guides", false, "print the full guidance documents")
	cmd.Flags().BoolVar(&linePrompts, "line", false, "read answers line by line from stdin instead of terminal forms")
	cmd.Flags().BoolVar(&noTranscript, "no-transcript", false, "do not export a transcript")
	cmd.Flags().StringVar(&format, "transcript-format", "yaml", "transcript format: yaml or json")
	return cmd
}
