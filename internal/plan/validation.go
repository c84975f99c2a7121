package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/philippart-s/ai-skills/internal/errors"
)

// Validate checks if the Step is well-formed
func (s *Step) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("step ID cannot be empty")
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("step %s: title cannot be empty", s.ID)
	}
	switch s.Status {
	case StatusPending, StatusInProgress, StatusCompleted:
	default:
		return fmt.Errorf("step %s: unknown status %q", s.ID, s.Status)
	}
	return nil
}

// Validate checks the plan size and every step
func (p *Plan) Validate() error {
	if n := len(p.Steps); n < MinSteps || n > MaxSteps {
		return errors.NewPlanInvalidError(fmt.Sprintf("plan has %d steps, want %d to %d", n, MinSteps, MaxSteps))
	}

	ids := make(map[string]bool, len(p.Steps))
	titles := make(map[string]bool, len(p.Steps))
	for i := range p.Steps {
		step := &p.Steps[i]
		if err := step.Validate(); err != nil {
			return errors.NewPlanInvalidError(err.Error())
		}
		if ids[step.ID] {
			return errors.NewPlanInvalidError(fmt.Sprintf("duplicate step ID %s", step.ID))
		}
		ids[step.ID] = true

		title := strings.ToLower(strings.TrimSpace(step.Title))
		if titles[title] {
			return errors.NewPlanInvalidError(fmt.Sprintf("duplicate step title %q", step.Title))
		}
		titles[title] = true
	}
	return nil
}

// Normalize fills empty statuses with pending
func (p *Plan) Normalize() {
	for i := range p.Steps {
		if p.Steps[i].Status == "" {
			p.Steps[i].Status = StatusPending
		}
	}
}

// Start moves a pending step to in_progress
func (s *Step) Start(now time.Time) error {
	if s.Status != StatusPending {
		return badTransition(s, StatusInProgress)
	}
	s.Status = StatusInProgress
	s.StartedAt = &now
	return nil
}

// Complete moves an in_progress step to completed
func (s *Step) Complete(now time.Time) error {
	if s.Status != StatusInProgress {
		return badTransition(s, StatusCompleted)
	}
	s.Status = StatusCompleted
	s.CompletedAt = &now
	return nil
}

// Counts returns how many steps are in each status
func (p *Plan) Counts() map[Status]int {
	counts := map[Status]int{
		StatusPending:    0,
		StatusInProgress: 0,
		StatusCompleted:  0,
	}
	for _, s := range p.Steps {
		counts[s.Status]++
	}
	return counts
}

// Clone returns a deep copy of the plan
func (p *Plan) Clone() *Plan {
	out := &Plan{Title: p.Title, Steps: make([]Step, len(p.Steps))}
	for i, s := range p.Steps {
		s.Commands = append([]string(nil), s.Commands...)
		if s.StartedAt != nil {
			t := *s.StartedAt
			s.StartedAt = &t
		}
		if s.CompletedAt != nil {
			t := *s.CompletedAt
			s.CompletedAt = &t
		}
		out.Steps[i] = s
	}
	return out
}

func badTransition(s *Step, to Status) error {
	return errors.New(errors.ErrCodePlanBadTransition,
		fmt.Sprintf("step %s cannot move from %s to %s", s.ID, s.Status, to))
}
