package workflow

import "time"

// EventKind classifies journal entries
type EventKind string

const (
	EventSessionStarted EventKind = "session_started"
	EventPhaseEntered   EventKind = "phase_entered"
	EventAnswered       EventKind = "answered"
	EventClarified      EventKind = "clarified"
	EventGuideSurfaced  EventKind = "guide_surfaced"
	EventGitInspected   EventKind = "git_inspected"
	EventPlanProposed   EventKind = "plan_proposed"
	EventPlanApproved   EventKind = "plan_approved"
	EventStepStarted    EventKind = "step_started"
	EventStepCompleted  EventKind = "step_completed"
	EventStepValidated  EventKind = "step_validated"
	EventHalted         EventKind = "halted"
	EventFinished       EventKind = "finished"
)

// Event is one immutable journal entry
type Event struct {
	ID     string    `json:"id" yaml:"id"`
	Kind   EventKind `json:"kind" yaml:"kind"`
	Phase  Phase     `json:"phase" yaml:"phase"`
	StepID string    `json:"step_id,omitempty" yaml:"step_id,omitempty"`
	Detail string    `json:"detail,omitempty" yaml:"detail,omitempty"`
	At     time.Time `json:"at" yaml:"at"`
}
