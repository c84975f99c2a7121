package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philippart-s/ai-skills/internal/guide"
)

func newGuideCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "guide <quarkus|jbang|langchain4j|workflow>",
		Short: "Show a guidance document",
		Long: `Print the guidance document for a stack flag, or the workflow methodology.

Documents in guide.dir (<id>.md) replace the built-in text.`,
		Example: `  ai-skills guide quarkus
  ai-skills guide workflow --style plain
  ai-skills guide --list`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: guide.List(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			if list || len(args) == 0 {
				return cc.Print(guide.List())
			}

			doc, err := cc.Guides().LoadByID(args[0])
			if err != nil {
				return err
			}
			cc.Logger.Debug("guide loaded", "id", doc.ID, "source", string(doc.Source), "digest", doc.Digest)

			if !cc.Text() {
				return cc.Print(doc)
			}
			out, err := guide.Render(doc.Content, cc.Style(), 0)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cc.Out, out)
			return err
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list document IDs")
	return cmd
}
