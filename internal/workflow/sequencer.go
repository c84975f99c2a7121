package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/philippart-s/ai-skills/internal/detect"
	"github.com/philippart-s/ai-skills/internal/errors"
	"github.com/philippart-s/ai-skills/internal/gitcheck"
	"github.com/philippart-s/ai-skills/internal/interview"
	"github.com/philippart-s/ai-skills/internal/log"
	"github.com/philippart-s/ai-skills/internal/plan"
)

// Sequencer is the human-gated state machine
// Gathering → GitCheck → Planning → Implementation → Validation.
//
// It is owned by a single session and is not safe for concurrent use.
type Sequencer struct {
	id        string
	detection detect.Result
	phase     Phase

	interview *interview.Engine
	git       *gitcheck.Status
	plan      *plan.Plan
	approved  bool

	// index of the step most recently started, -1 before the first
	current   int
	validated map[string]bool

	halted     bool
	haltReason string
	finished   bool

	events []Event
	now    func() time.Time
	logger *log.Logger
}

// Option configures a Sequencer
type Option func(*Sequencer)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Sequencer) { s.now = now }
}

// WithLogger sets the logger; the session ID is attached automatically
func WithLogger(l *log.Logger) Option {
	return func(s *Sequencer) { s.logger = l }
}

// WithID fixes the session ID instead of generating one
func WithID(id string) Option {
	return func(s *Sequencer) { s.id = id }
}

// WithInterview replaces the gathering interview
func WithInterview(e *interview.Engine) Option {
	return func(s *Sequencer) { s.interview = e }
}

// New starts a session in Gathering for a detection result.
// The detection is fixed for the lifetime of the session.
func New(detection detect.Result, opts ...Option) *Sequencer {
	if detection.Flags == nil {
		detection.Flags = detect.NewFlagSet()
	}

	s := &Sequencer{
		id:        uuid.NewString(),
		detection: detection,
		phase:     Gathering,
		current:   -1,
		validated: make(map[string]bool),
		now:       time.Now,
		logger:    log.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.interview == nil {
		s.interview = interview.NewEngine(detection.Flags)
	}
	s.logger = s.logger.WithSession(s.id)

	s.record(EventSessionStarted, "", "flags="+detection.Flags.String())
	s.record(EventPhaseEntered, "", Gathering.String())
	return s
}

// ID returns the session ID
func (s *Sequencer) ID() string { return s.id }

// Phase returns the current phase
func (s *Sequencer) Phase() Phase { return s.phase }

// Detection returns the detection result the session started with
func (s *Sequencer) Detection() detect.Result { return s.detection }

// Interview exposes the gathering engine so the host can ask its questions
func (s *Sequencer) Interview() *interview.Engine { return s.interview }

// Halted reports whether the session was halted, and why
func (s *Sequencer) Halted() (bool, string) { return s.halted, s.haltReason }

// Finished reports whether the human signed off in Validation
func (s *Sequencer) Finished() bool { return s.finished }

// Flags returns the active flags: detected ones, or the clarified ones
// when detection was inconclusive.
func (s *Sequencer) Flags() detect.FlagSet {
	if !s.detection.Inconclusive {
		return s.detection.Flags
	}
	if flags, ok := s.interview.Clarified(); ok {
		return flags
	}
	return detect.NewFlagSet()
}

// NeedsClarification reports whether the human still has to say which
// stack applies before Gathering can end.
func (s *Sequencer) NeedsClarification() bool {
	if !s.detection.Inconclusive {
		return false
	}
	_, ok := s.interview.Clarified()
	return !ok
}

// Answer records the human's answer to the current gathering question
func (s *Sequencer) Answer(a interview.Answer) (*interview.Question, error) {
	if err := s.require("answer question", Gathering); err != nil {
		return nil, err
	}

	q := s.interview.CurrentQuestion()
	next, err := s.interview.Answer(a)
	if err != nil {
		return next, err
	}

	if q != nil {
		if q.ID == interview.StackQuestionID {
			s.record(EventClarified, "", "flags="+s.Flags().String())
		} else {
			s.record(EventAnswered, "", q.ID)
		}
	}
	return next, nil
}

// SurfaceGuide records that a guidance document was shown to the host
func (s *Sequencer) SurfaceGuide(id, digest string) error {
	if err := s.alive(); err != nil {
		return err
	}
	s.record(EventGuideSurfaced, "", fmt.Sprintf("%s@%s", id, short(digest)))
	return nil
}

// RecordGitStatus stores the read-only repository inspection
func (s *Sequencer) RecordGitStatus(st gitcheck.Status) error {
	if err := s.require("record git status", GitCheck); err != nil {
		return err
	}
	s.git = &st
	s.record(EventGitInspected, "", st.Summary())
	return nil
}

// GitStatus returns the recorded inspection, nil before GitCheck
func (s *Sequencer) GitStatus() *gitcheck.Status {
	return s.git
}

// ProposePlan stores a plan for review. A plan may be revised until it
// is approved; after approval it is frozen.
func (s *Sequencer) ProposePlan(p *plan.Plan) error {
	if err := s.require("propose plan", Planning); err != nil {
		return err
	}
	if s.approved {
		return errors.New(errors.ErrCodeFlowOutOfOrder, "plan already approved").
			WithSuggestion("Advance to Implementation")
	}

	c := p.Clone()
	c.Normalize()
	for _, step := range c.Steps {
		if step.Status != plan.StatusPending {
			return errors.NewPlanInvalidError(fmt.Sprintf("step %s must start pending, got %s", step.ID, step.Status))
		}
	}
	if err := c.Validate(); err != nil {
		return err
	}

	s.plan = c
	s.record(EventPlanProposed, "", fmt.Sprintf("%d steps", len(c.Steps)))
	return nil
}

// ApprovePlan records the human approval of the proposed plan
func (s *Sequencer) ApprovePlan() error {
	if err := s.require("approve plan", Planning); err != nil {
		return err
	}
	if s.plan == nil {
		return errors.New(errors.ErrCodePlanNotFound, "no plan has been proposed").
			WithSuggestion("Propose a plan of 5 to 8 steps first")
	}
	if s.approved {
		return nil
	}
	s.approved = true
	s.record(EventPlanApproved, "", s.plan.Title)
	return nil
}

// Plan returns a copy of the current plan, nil before one is proposed
func (s *Sequencer) Plan() *plan.Plan {
	if s.plan == nil {
		return nil
	}
	return s.plan.Clone()
}

// CurrentStep returns a copy of the step most recently started
func (s *Sequencer) CurrentStep() *plan.Step {
	if s.plan == nil || s.current < 0 {
		return nil
	}
	step := s.plan.Steps[s.current]
	return &step
}

// StartStep moves the next pending step to in_progress. The previous
// step must be completed and validated first.
func (s *Sequencer) StartStep() (*plan.Step, error) {
	if err := s.require("start step", Implementation); err != nil {
		return nil, err
	}

	if s.current >= 0 {
		prev := s.plan.Steps[s.current]
		if prev.Status != plan.StatusCompleted {
			return nil, errors.New(errors.ErrCodeFlowOutOfOrder,
				fmt.Sprintf("step %s is %s", prev.ID, prev.Status)).
				WithSuggestion("Complete and validate the current step first")
		}
		if !s.validated[prev.ID] {
			return nil, errors.NewStepNotValidatedError(prev.ID)
		}
	}

	next := s.current + 1
	if next >= len(s.plan.Steps) {
		return nil, errors.New(errors.ErrCodePlanStepMissing, "every step has been started").
			WithSuggestion("Advance to Validation")
	}

	step := &s.plan.Steps[next]
	if err := step.Start(s.now()); err != nil {
		return nil, err
	}
	s.current = next
	s.record(EventStepStarted, step.ID, step.Title)

	out := *step
	return &out, nil
}

// CompleteStep marks the current step completed. It never starts the next
// step: that requires a validation first.
func (s *Sequencer) CompleteStep() error {
	if err := s.require("complete step", Implementation); err != nil {
		return err
	}
	if s.current < 0 {
		return errors.New(errors.ErrCodePlanStepMissing, "no step has been started")
	}

	step := &s.plan.Steps[s.current]
	if err := step.Complete(s.now()); err != nil {
		return err
	}
	s.record(EventStepCompleted, step.ID, step.Title)
	return nil
}

// ValidateStep records the human validation of the completed current step
func (s *Sequencer) ValidateStep() error {
	if err := s.require("validate step", Implementation); err != nil {
		return err
	}
	if s.current < 0 {
		return errors.New(errors.ErrCodePlanStepMissing, "no step has been started")
	}

	step := s.plan.Steps[s.current]
	if step.Status != plan.StatusCompleted {
		return errors.New(errors.ErrCodeFlowOutOfOrder,
			fmt.Sprintf("step %s is %s, only completed steps can be validated", step.ID, step.Status))
	}
	if s.validated[step.ID] {
		return nil
	}
	s.validated[step.ID] = true
	s.record(EventStepValidated, step.ID, step.Title)
	return nil
}

// StepValidated reports whether the human validated step id
func (s *Sequencer) StepValidated(id string) bool {
	return s.validated[id]
}

// Advance moves to the next phase when the gate of the current one holds
func (s *Sequencer) Advance() error {
	if err := s.alive(); err != nil {
		return err
	}

	next, ok := s.phase.Next()
	if !ok {
		return errors.New(errors.ErrCodeFlowTerminal, "Validation is the last phase")
	}
	if err := s.gate(); err != nil {
		return err
	}

	s.logger.Info("phase advanced", "from", s.phase.String(), "to", next.String())
	s.phase = next
	s.record(EventPhaseEntered, "", next.String())
	return nil
}

// gate checks the exit condition of the current phase
func (s *Sequencer) gate() error {
	switch s.phase {
	case Gathering:
		if s.NeedsClarification() {
			return errors.NewClarificationRequiredError()
		}
		if missing := s.interview.Missing(); len(missing) > 0 {
			return errors.NewGatheringOpenError(missing)
		}
	case GitCheck:
		if s.git == nil {
			return errors.New(errors.ErrCodeFlowGitNotInspected, "git status has not been inspected").
				WithSuggestion("Inspect the repository state before planning")
		}
	case Planning:
		if s.plan == nil {
			return errors.New(errors.ErrCodePlanNotFound, "no plan has been proposed")
		}
		if !s.approved {
			return errors.NewPlanNotApprovedError()
		}
	case Implementation:
		var open []string
		for _, step := range s.plan.Steps {
			if step.Status != plan.StatusCompleted || !s.validated[step.ID] {
				open = append(open, step.ID)
			}
		}
		if len(open) > 0 {
			return errors.New(errors.ErrCodeFlowStepsOpen,
				fmt.Sprintf("steps not completed and validated: %s", strings.Join(open, ", ")))
		}
	}
	return nil
}

// Finish records the human sign-off in Validation. The session is then over.
func (s *Sequencer) Finish() error {
	if err := s.require("finish", Validation); err != nil {
		return err
	}
	if s.finished {
		return errors.New(errors.ErrCodeFlowTerminal, "session already finished")
	}
	s.finished = true
	s.record(EventFinished, "", "")
	return nil
}

// Halt ends the session in its current state. Nothing is rolled back.
func (s *Sequencer) Halt(reason string) error {
	if err := s.alive(); err != nil {
		return err
	}
	s.halted = true
	s.haltReason = reason
	s.record(EventHalted, "", reason)
	s.logger.Info("session halted", "phase", s.phase.String(), "reason", reason)
	return nil
}

// Events returns a copy of the journal
func (s *Sequencer) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// HasEvent reports whether the journal contains kind, optionally for a step
func (s *Sequencer) HasEvent(kind EventKind, stepID string) bool {
	for _, e := range s.events {
		if e.Kind == kind && (stepID == "" || e.StepID == stepID) {
			return true
		}
	}
	return false
}

func (s *Sequencer) alive() error {
	if s.halted {
		return errors.NewHaltedError(s.haltReason)
	}
	if s.finished {
		return errors.New(errors.ErrCodeFlowTerminal, "session already finished")
	}
	return nil
}

func (s *Sequencer) require(op string, phase Phase) error {
	if err := s.alive(); err != nil {
		return err
	}
	if s.phase != phase {
		return errors.NewOutOfOrderError(op, s.phase.String(), phase.String())
	}
	return nil
}

func (s *Sequencer) record(kind EventKind, stepID, detail string) {
	e := Event{
		ID:     uuid.NewString(),
		Kind:   kind,
		Phase:  s.phase,
		StepID: stepID,
		Detail: detail,
		At:     s.now(),
	}
	s.events = append(s.events, e)
	s.logger.Debug("workflow event", "kind", string(kind), "phase", s.phase.String(), "step", stepID)
}

func short(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
