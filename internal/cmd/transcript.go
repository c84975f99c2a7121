package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philippart-s/ai-skills/internal/errors"
	"github.com/philippart-s/ai-skills/internal/transcript"
)

func newTranscriptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcript",
		Short: "Inspect exported session transcripts",
	}
	cmd.AddCommand(newTranscriptListCmd(), newTranscriptShowCmd(), newTranscriptDeleteCmd())
	return cmd
}

func newTranscriptListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored transcripts, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			infos, err := transcript.NewManager(cc.Config.Transcript.Dir).List()
			if err != nil {
				return err
			}
			if !cc.Text() {
				return cc.Print(infos)
			}
			if len(infos) == 0 {
				return cc.Print("No transcripts in " + cc.Config.Transcript.Dir)
			}
			lines := make([]string, len(infos))
			for i, info := range infos {
				lines[i] = fmt.Sprintf("%s  %s", info.Modified.Format("2006-01-02 15:04"), info.ID)
			}
			return cc.Print(lines)
		},
	}
}

func newTranscriptShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id|file>",
		Short: "Show a transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			t, err := transcript.NewManager(cc.Config.Transcript.Dir).Load(args[0])
			if err != nil {
				return err
			}
			if !cc.Text() {
				return cc.Print(t)
			}
			return cc.Print(transcriptText(t))
		},
	}
}

func newTranscriptDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a stored transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			id := args[0]
			m := transcript.NewManager(cc.Config.Transcript.Dir)
			if !m.Exists(id) {
				return errors.New(errors.ErrCodeFileNotFound, fmt.Sprintf("transcript not found: %s", id)).
					WithSuggestion("Run 'ai-skills transcript list' to see stored transcripts")
			}
			if err := m.Delete(id); err != nil {
				return err
			}
			cc.Logger.Info("transcript deleted", "id", id)
			return cc.Print("Deleted transcript " + id)
		},
	}
}

func transcriptText(t *transcript.Transcript) string {
	var b strings.Builder
	b.WriteString(t.Summary.String())
	fmt.Fprintf(&b, "  Exported: %s\n\nEvents:\n", t.ExportedAt.Format("2006-01-02 15:04:05"))
	for _, e := range t.Events {
		line := fmt.Sprintf("  %s  %-15s %-14s", e.At.Format("15:04:05"), e.Phase, e.Kind)
		if e.StepID != "" {
			line += " " + e.StepID
		}
		if e.Detail != "" {
			line += " " + e.Detail
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	return b.String()
}
