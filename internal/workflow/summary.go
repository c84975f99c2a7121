package workflow

import (
	"fmt"
	"strings"

	"github.com/philippart-s/ai-skills/internal/detect"
	"github.com/philippart-s/ai-skills/internal/plan"
)

// Summary is a snapshot of a session for reporting
type Summary struct {
	ID         string         `json:"id" yaml:"id"`
	Phase      Phase          `json:"phase" yaml:"phase"`
	Flags      detect.FlagSet `json:"flags" yaml:"flags"`
	Halted     bool           `json:"halted" yaml:"halted"`
	HaltReason string         `json:"halt_reason,omitempty" yaml:"halt_reason,omitempty"`
	Steps      int            `json:"steps" yaml:"steps"`
	Pending    int            `json:"pending" yaml:"pending"`
	InProgress int            `json:"in_progress" yaml:"in_progress"`
	Done       int            `json:"done" yaml:"done"`
	Validated  int            `json:"validated" yaml:"validated"`
	Completed  bool           `json:"completed" yaml:"completed"`
}

// Summary reports where the session stands
func (s *Sequencer) Summary() Summary {
	sum := Summary{
		ID:         s.id,
		Phase:      s.phase,
		Flags:      s.Flags(),
		Halted:     s.halted,
		HaltReason: s.haltReason,
		Completed:  s.finished,
	}
	if s.plan != nil {
		counts := s.plan.Counts()
		sum.Steps = len(s.plan.Steps)
		sum.Pending = counts[plan.StatusPending]
		sum.InProgress = counts[plan.StatusInProgress]
		sum.Done = counts[plan.StatusCompleted]
		for _, step := range s.plan.Steps {
			if s.validated[step.ID] {
				sum.Validated++
			}
		}
	}
	return sum
}

// String renders the summary as a short report
func (s Summary) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Session %s\n", s.ID)
	fmt.Fprintf(&sb, "  Phase: %s\n", s.Phase)
	fmt.Fprintf(&sb, "  Stack: %s\n", s.Flags)
	if s.Steps > 0 {
		fmt.Fprintf(&sb, "  Steps: %d/%d completed, %d validated\n", s.Done, s.Steps, s.Validated)
	}

	switch {
	case s.Completed:
		sb.WriteString("  Status: ✓ completed\n")
	case s.Halted && s.HaltReason != "":
		fmt.Fprintf(&sb, "  Status: halted (%s)\n", s.HaltReason)
	case s.Halted:
		sb.WriteString("  Status: halted\n")
	default:
		sb.WriteString("  Status: in progress\n")
	}
	return sb.String()
}
