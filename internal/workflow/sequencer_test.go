package workflow

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philippart-s/ai-skills/internal/detect"
	"github.com/philippart-s/ai-skills/internal/errors"
	"github.com/philippart-s/ai-skills/internal/gitcheck"
	"github.com/philippart-s/ai-skills/internal/interview"
	"github.com/philippart-s/ai-skills/internal/log"
	"github.com/philippart-s/ai-skills/internal/plan"
)

func fixedClock() func() time.Time {
	t := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newSeq(markers ...string) *Sequencer {
	return New(detect.Detect(markers), WithClock(fixedClock()), WithID("test-session"))
}

// answerGathering answers every remaining question with a valid value
func answerGathering(t *testing.T, s *Sequencer) {
	t.Helper()
	for q := s.Interview().CurrentQuestion(); q != nil; q = s.Interview().CurrentQuestion() {
		var a interview.Answer
		switch q.Type {
		case interview.QuestionTypeYesNo:
			a.Value = "no"
		case interview.QuestionTypeChoice, interview.QuestionTypeMulti:
			a.Value = q.Choices[0]
		default:
			a.Value = "something for " + q.ID
		}
		_, err := s.Answer(a)
		require.NoError(t, err, "answering %s", q.ID)
	}
}

func samplePlan() *plan.Plan {
	return plan.Generate(plan.GenerateOptions{Flags: detect.NewFlagSet(detect.Quarkus), Goal: "a REST endpoint"})
}

// toImplementation drives a quarkus session up to the Implementation phase
func toImplementation(t *testing.T) *Sequencer {
	t.Helper()
	s := newSeq("io.quarkus")
	answerGathering(t, s)
	require.NoError(t, s.Advance())
	require.NoError(t, s.RecordGitStatus(gitcheck.Status{Initialized: true, Branch: "main"}))
	require.NoError(t, s.Advance())
	require.NoError(t, s.ProposePlan(samplePlan()))
	require.NoError(t, s.ApprovePlan())
	require.NoError(t, s.Advance())
	require.Equal(t, Implementation, s.Phase())
	return s
}

func TestNewStartsInGathering(t *testing.T) {
	s := newSeq("io.quarkus")

	assert.Equal(t, Gathering, s.Phase())
	assert.Equal(t, "test-session", s.ID())
	assert.True(t, s.Flags().Has(detect.Quarkus))
	assert.False(t, s.NeedsClarification())
	assert.True(t, s.HasEvent(EventSessionStarted, ""))
	assert.True(t, s.HasEvent(EventPhaseEntered, ""))
}

func TestGeneratedIDs(t *testing.T) {
	a := New(detect.Detect(nil))
	b := New(detect.Detect(nil))
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestGatheringGate(t *testing.T) {
	s := newSeq("io.quarkus")

	err := s.Advance()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeFlowGatheringOpen))
	assert.Contains(t, err.Error(), interview.GoalQuestionID)
	assert.Equal(t, Gathering, s.Phase())

	answerGathering(t, s)
	require.NoError(t, s.Advance())
	assert.Equal(t, GitCheck, s.Phase())
}

func TestEmptyMarkersRequireClarification(t *testing.T) {
	s := newSeq()

	assert.True(t, s.Detection().Inconclusive)
	assert.True(t, s.NeedsClarification())

	err := s.Advance()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeFlowClarification))

	q := s.Interview().CurrentQuestion()
	require.NotNil(t, q)
	require.Equal(t, interview.StackQuestionID, q.ID)

	_, err = s.Answer(interview.Answer{Value: "jbang, langchain4j"})
	require.NoError(t, err)
	assert.False(t, s.NeedsClarification())
	assert.True(t, s.HasEvent(EventClarified, ""))
	assert.Equal(t, []detect.Flag{detect.JBang, detect.LangChain4j}, s.Flags().Slice())

	// detection itself is never rewritten
	assert.True(t, s.Detection().Flags.Empty())

	answerGathering(t, s)
	require.NoError(t, s.Advance())
}

func TestClarifiedAsNone(t *testing.T) {
	s := newSeq()

	_, err := s.Answer(interview.Answer{Value: interview.NoStack})
	require.NoError(t, err)
	assert.False(t, s.NeedsClarification())
	assert.True(t, s.Flags().Empty())

	answerGathering(t, s)
	require.NoError(t, s.Advance())
}

func TestAnswerOutsideGathering(t *testing.T) {
	s := newSeq("io.quarkus")
	answerGathering(t, s)
	require.NoError(t, s.Advance())

	_, err := s.Answer(interview.Answer{Value: "late"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeFlowOutOfOrder))
}

func TestGitCheckGate(t *testing.T) {
	s := newSeq("io.quarkus")
	answerGathering(t, s)
	require.NoError(t, s.Advance())

	err := s.Advance()
	assert.True(t, errors.HasCode(err, errors.ErrCodeFlowGitNotInspected))

	require.NoError(t, s.RecordGitStatus(gitcheck.Status{}))
	require.NotNil(t, s.GitStatus())
	assert.False(t, s.GitStatus().Initialized)
	require.NoError(t, s.Advance())
	assert.Equal(t, Planning, s.Phase())
}

func TestPlanningRequiresApproval(t *testing.T) {
	s := newSeq("io.quarkus")
	answerGathering(t, s)
	require.NoError(t, s.Advance())
	require.NoError(t, s.RecordGitStatus(gitcheck.Status{Initialized: true}))
	require.NoError(t, s.Advance())

	err := s.Advance()
	assert.True(t, errors.HasCode(err, errors.ErrCodePlanNotFound))

	err = s.ApprovePlan()
	assert.True(t, errors.HasCode(err, errors.ErrCodePlanNotFound))

	require.NoError(t, s.ProposePlan(samplePlan()))
	err = s.Advance()
	assert.True(t, errors.HasCode(err, errors.ErrCodeFlowPlanNotApproved))
	assert.Equal(t, Planning, s.Phase())
	assert.False(t, s.HasEvent(EventPlanApproved, ""))

	require.NoError(t, s.ApprovePlan())
	require.NoError(t, s.Advance())
	assert.Equal(t, Implementation, s.Phase())

	// no Implementation entry without an earlier approval event
	var approvedAt, enteredAt = -1, -1
	for i, e := range s.Events() {
		if e.Kind == EventPlanApproved {
			approvedAt = i
		}
		if e.Kind == EventPhaseEntered && e.Detail == Implementation.String() {
			enteredAt = i
		}
	}
	assert.True(t, approvedAt >= 0 && approvedAt < enteredAt)
}

func TestProposePlanRules(t *testing.T) {
	s := newSeq("io.quarkus")
	answerGathering(t, s)
	require.NoError(t, s.Advance())
	require.NoError(t, s.RecordGitStatus(gitcheck.Status{}))
	require.NoError(t, s.Advance())

	tooShort := &plan.Plan{Title: "x", Steps: []plan.Step{{ID: "a", Title: "A"}}}
	err := s.ProposePlan(tooShort)
	assert.True(t, errors.HasCode(err, errors.ErrCodePlanInvalid))

	started := samplePlan()
	started.Steps[0].Status = plan.StatusInProgress
	err = s.ProposePlan(started)
	assert.True(t, errors.HasCode(err, errors.ErrCodePlanInvalid))

	p := samplePlan()
	require.NoError(t, s.ProposePlan(p))

	// the sequencer keeps its own copy
	p.Steps[0].Title = "mutated"
	assert.NotEqual(t, "mutated", s.Plan().Steps[0].Title)

	// revision before approval is allowed
	require.NoError(t, s.ProposePlan(samplePlan()))
	require.NoError(t, s.ApprovePlan())

	err = s.ProposePlan(samplePlan())
	assert.True(t, errors.HasCode(err, errors.ErrCodeFlowOutOfOrder))
}

func TestStepsNeedValidationBeforeNext(t *testing.T) {
	s := toImplementation(t)
	steps := s.Plan().Steps

	first, err := s.StartStep()
	require.NoError(t, err)
	assert.Equal(t, steps[0].ID, first.ID)
	assert.Equal(t, plan.StatusInProgress, first.Status)

	// cannot start another while the first is in progress
	_, err = s.StartStep()
	assert.True(t, errors.HasCode(err, errors.ErrCodeFlowOutOfOrder))

	// cannot validate before completion
	err = s.ValidateStep()
	assert.True(t, errors.HasCode(err, errors.ErrCodeFlowOutOfOrder))

	require.NoError(t, s.CompleteStep())

	// completion does not start the next step
	assert.Equal(t, plan.StatusPending, s.Plan().Steps[1].Status)
	assert.Equal(t, first.ID, s.CurrentStep().ID)

	_, err = s.StartStep()
	assert.True(t, errors.HasCode(err, errors.ErrCodeFlowStepNotValidated))
	assert.False(t, s.HasEvent(EventStepStarted, steps[1].ID))

	require.NoError(t, s.ValidateStep())
	assert.True(t, s.StepValidated(first.ID))

	second, err := s.StartStep()
	require.NoError(t, err)
	assert.Equal(t, steps[1].ID, second.ID)
}

func TestImplementationGateAndFinish(t *testing.T) {
	s := toImplementation(t)

	err := s.Advance()
	assert.True(t, errors.HasCode(err, errors.ErrCodeFlowStepsOpen))

	err = s.CompleteStep()
	assert.True(t, errors.HasCode(err, errors.ErrCodePlanStepMissing))

	for range s.Plan().Steps {
		_, err := s.StartStep()
		require.NoError(t, err)
		require.NoError(t, s.CompleteStep())
		require.NoError(t, s.ValidateStep())
	}

	_, err = s.StartStep()
	assert.True(t, errors.HasCode(err, errors.ErrCodePlanStepMissing))

	require.NoError(t, s.Advance())
	assert.Equal(t, Validation, s.Phase())

	err = s.Advance()
	assert.True(t, errors.HasCode(err, errors.ErrCodeFlowTerminal))

	require.NoError(t, s.Finish())
	assert.True(t, s.Finished())

	err = s.Halt("too late")
	assert.True(t, errors.HasCode(err, errors.ErrCodeFlowTerminal))

	summary := s.Summary()
	assert.True(t, summary.Completed)
	assert.Equal(t, len(s.Plan().Steps), summary.Validated)
}

func TestHaltIsFinal(t *testing.T) {
	s := toImplementation(t)
	_, err := s.StartStep()
	require.NoError(t, err)

	require.NoError(t, s.Halt("changed my mind"))
	halted, reason := s.Halted()
	assert.True(t, halted)
	assert.Equal(t, "changed my mind", reason)

	// state is preserved, nothing rolled back
	assert.Equal(t, Implementation, s.Phase())
	assert.Equal(t, plan.StatusInProgress, s.CurrentStep().Status)

	for name, op := range map[string]func() error{
		"advance":  s.Advance,
		"complete": s.CompleteStep,
		"validate": s.ValidateStep,
		"halt":     func() error { return s.Halt("again") },
		"guide":    func() error { return s.SurfaceGuide("quarkus", "abc") },
	} {
		err := op()
		assert.True(t, errors.HasCode(err, errors.ErrCodeFlowHalted), name)
	}

	summary := s.Summary()
	assert.True(t, summary.Halted)
	assert.False(t, summary.Completed)
	assert.Equal(t, 1, summary.InProgress)
}

func TestHaltDuringGathering(t *testing.T) {
	s := newSeq()
	require.NoError(t, s.Halt(""))

	_, err := s.Answer(interview.Answer{Value: "quarkus"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeFlowHalted))
}

func TestSurfaceGuide(t *testing.T) {
	s := newSeq("io.quarkus")
	require.NoError(t, s.SurfaceGuide("quarkus", "0123456789abcdef0123"))

	events := s.Events()
	last := events[len(events)-1]
	assert.Equal(t, EventGuideSurfaced, last.Kind)
	assert.Equal(t, "quarkus@0123456789ab", last.Detail)
	assert.Equal(t, Gathering, last.Phase)
}

func TestEventsAreOrderedAndCopied(t *testing.T) {
	s := toImplementation(t)

	events := s.Events()
	for i := 1; i < len(events); i++ {
		assert.True(t, events[i].At.After(events[i-1].At), "event %d out of order", i)
		assert.NotEqual(t, events[i].ID, events[i-1].ID)
	}

	events[0].Kind = EventFinished
	assert.Equal(t, EventSessionStarted, s.Events()[0].Kind)
}

func TestSequencerFallsBackToDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := log.DefaultLogger()
	log.SetDefaultLogger(log.New(log.Config{Level: log.LevelInfo, Format: log.FormatText, Output: &buf}))
	t.Cleanup(func() { log.SetDefaultLogger(prev) })

	s := newSeq("io.quarkus")
	require.NoError(t, s.Halt("stop"))

	assert.Contains(t, buf.String(), "session halted")
	assert.Contains(t, buf.String(), "session_id=test-session")
}
