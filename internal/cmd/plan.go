package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philippart-s/ai-skills/internal/detect"
	"github.com/philippart-s/ai-skills/internal/plan"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Draft and check implementation plans",
	}
	cmd.AddCommand(newPlanDraftCmd(), newPlanValidateCmd())
	return cmd
}

func newPlanDraftCmd() *cobra.Command {
	var (
		flags []string
		goal  string
		build string
		out   string
	)

	cmd := &cobra.Command{
		Use:   "draft [dir]",
		Short: "Draft a 5 to 8 step plan",
		Long: `Draft an implementation plan from the detected stacks, or from --flags.

The draft is a proposal to edit and review. Commands in it are suggestions
and are never run.`,
		Example: `  ai-skills plan draft --goal "add a /hello endpoint"
  ai-skills plan draft --flags jbang,langchain4j --out plan.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			tool, err := plan.ParseBuildTool(build)
			if err != nil {
				return err
			}

			var set detect.FlagSet
			if len(flags) > 0 {
				set = detect.NewFlagSet()
				for _, name := range flags {
					f, err := detect.ParseFlag(name)
					if err != nil {
						return err
					}
					set[f] = struct{}{}
				}
			} else {
				res, err := runDetection(cc, dirArg(args), nil)
				if err != nil {
					return err
				}
				set = res.Flags
			}

			p := plan.Generate(plan.GenerateOptions{
				Flags:     set,
				Goal:      goal,
				BuildTool: tool,
			})

			if out != "" {
				if err := plan.SavePlan(p, out); err != nil {
					return err
				}
				fmt.Fprintf(cc.ErrOut, "Plan written to %s\n", out)
				return nil
			}

			if cc.Text() {
				return cc.Print(planText(p))
			}
			return cc.Print(p)
		},
	}

	cmd.Flags().StringSliceVar(&flags, "flags", nil, "stacks to plan for (quarkus, jbang, langchain4j)")
	cmd.Flags().StringVar(&goal, "goal", "", "what the change should achieve")
	cmd.Flags().StringVar(&build, "build", "maven", "build tool for suggested commands: maven or gradle")
	cmd.Flags().StringVar(&out, "out", "", "write the plan to a .yaml or .json file")
	return cmd
}

func newPlanValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			p, err := plan.LoadPlan(args[0])
			if err != nil {
				return err
			}
			return cc.Print(fmt.Sprintf("✓ %s: %d steps", p.Title, len(p.Steps)))
		},
	}
}

func planText(p *plan.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", p.Title)
	for i, s := range p.Steps {
		fmt.Fprintf(&b, "%d. %s [%s]\n", i+1, s.Title, s.ID)
		if s.Description != "" {
			fmt.Fprintf(&b, "   %s\n", s.Description)
		}
		for _, c := range s.Commands {
			fmt.Fprintf(&b, "   $ %s\n", c)
		}
	}
	return b.String()
}
