package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/philippart-s/ai-skills/internal/detect"
	"github.com/philippart-s/ai-skills/internal/log"
)

func newDetectCmd() *cobra.Command {
	var markers []string

	cmd := &cobra.Command{
		Use:   "detect [dir]",
		Short: "Detect which stacks a project uses",
		Long: `Scan a project directory for Quarkus, JBang and LangChain4j markers.

Build descriptors (pom.xml, build.gradle, jbang-catalog.json) and the
header lines of source files are matched against known patterns. Use
--marker to match literal strings instead of scanning.`,
		Example: `  ai-skills detect
  ai-skills detect ./my-service -o json
  ai-skills detect --marker "jbang-catalog.json present"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			res, err := runDetection(cc, dirArg(args), markers)
			if err != nil {
				return err
			}
			if cc.Text() {
				return cc.Print(res.Summary())
			}
			return cc.Print(res)
		},
	}

	cmd.Flags().StringArrayVar(&markers, "marker", nil, "literal marker to match instead of scanning (repeatable)")
	return cmd
}

// runDetection scans dir, or matches markers when given
func runDetection(cc *CommandContext, dir string, markers []string) (detect.Result, error) {
	if len(markers) == 0 {
		opts := detect.DefaultScanOptions()
		opts.MaxDepth = cc.Config.Detect.MaxDepth

		scanned, err := detect.Scan(dir, opts)
		if err != nil {
			return detect.Result{}, err
		}
		markers = scanned
	}

	detector := detect.NewDetector(detect.DefaultRules().With(cc.Config.Detect.Extra))
	res := detector.Detect(markers)
	cc.Logger.Info("detection complete", "dir", dir, "markers", len(markers), "flags", res.Flags.String())
	if cc.Logger.Enabled(context.Background(), log.LevelDebug) {
		for _, m := range res.Matches {
			cc.Logger.Debug("marker matched", "flag", string(m.Flag), "pattern", m.Pattern, "marker", m.Marker)
		}
	}
	return res, nil
}

func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
