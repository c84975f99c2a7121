package plan

import "time"

// Status is the lifecycle state of a single plan step
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Size bounds for an implementation plan
const (
	MinSteps = 5
	MaxSteps = 8
)

// Plan is the ordered list of steps agreed during Planning
type Plan struct {
	Title string `json:"title" yaml:"title"`
	Steps []Step `json:"steps" yaml:"steps"`
}

// Step is one atomic unit of work in the Implementation phase
type Step struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Status      Status `json:"status" yaml:"status"`

	// Commands are suggestions shown to the human. They are never executed.
	Commands []string `json:"commands,omitempty" yaml:"commands,omitempty"`

	StartedAt   *time.Time `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}
