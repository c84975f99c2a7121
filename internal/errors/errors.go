package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Detection errors (DETECT-001 to DETECT-099)
	ErrCodeDetectScanFailed  ErrorCode = "DETECT-001"
	ErrCodeDetectUnknownFlag ErrorCode = "DETECT-002"

	// Workflow errors (FLOW-001 to FLOW-099)
	ErrCodeFlowOutOfOrder       ErrorCode = "FLOW-001"
	ErrCodeFlowGatheringOpen    ErrorCode = "FLOW-002"
	ErrCodeFlowClarification    ErrorCode = "FLOW-003"
	ErrCodeFlowGitNotInspected  ErrorCode = "FLOW-004"
	ErrCodeFlowPlanNotApproved  ErrorCode = "FLOW-005"
	ErrCodeFlowStepNotValidated ErrorCode = "FLOW-006"
	ErrCodeFlowStepsOpen        ErrorCode = "FLOW-007"
	ErrCodeFlowHalted           ErrorCode = "FLOW-008"
	ErrCodeFlowTerminal         ErrorCode = "FLOW-009"

	// Plan errors (PLAN-001 to PLAN-099)
	ErrCodePlanNotFound      ErrorCode = "PLAN-001"
	ErrCodePlanInvalid       ErrorCode = "PLAN-002"
	ErrCodePlanStepMissing   ErrorCode = "PLAN-003"
	ErrCodePlanBadTransition ErrorCode = "PLAN-004"
	ErrCodePlanBuildTool     ErrorCode = "PLAN-005"

	// Guide errors (GUIDE-001 to GUIDE-099)
	ErrCodeGuideUnknown    ErrorCode = "GUIDE-001"
	ErrCodeGuideRender     ErrorCode = "GUIDE-002"
	ErrCodeGuideInstall    ErrorCode = "GUIDE-003"
	ErrCodeGuideHarnessBad ErrorCode = "GUIDE-004"

	// Interview errors (INTERVIEW-001 to INTERVIEW-099)
	ErrCodeInterviewCompleted      ErrorCode = "INTERVIEW-001"
	ErrCodeInterviewNotComplete    ErrorCode = "INTERVIEW-002"
	ErrCodeInterviewAnswerRequired ErrorCode = "INTERVIEW-003"
	ErrCodeInterviewAnswerInvalid  ErrorCode = "INTERVIEW-004"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigLoad    ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid ErrorCode = "CONFIG-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeDirectoryFailed ErrorCode = "IO-004"
	ErrCodeFileUnmarshal   ErrorCode = "IO-005"
	ErrCodeFileMarshal     ErrorCode = "IO-006"
)

// SkillError represents an enhanced error with code, suggestions, and documentation
type SkillError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *SkillError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)

	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			fmt.Fprintf(&b, "\n  • %s", suggestion)
		}
	}

	if e.DocsURL != "" {
		fmt.Fprintf(&b, "\n\nDocumentation: %s", e.DocsURL)
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *SkillError) Unwrap() error {
	return e.Cause
}

// Is reports whether target carries the same error code.
// A bare New(code, "") works as a sentinel for errors.Is.
func (e *SkillError) Is(target error) bool {
	t, ok := target.(*SkillError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new SkillError
func New(code ErrorCode, message string) *SkillError {
	return &SkillError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new SkillError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *SkillError {
	return &SkillError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *SkillError) WithSuggestion(suggestion string) *SkillError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *SkillError) WithSuggestions(suggestions ...string) *SkillError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *SkillError) WithDocs(url string) *SkillError {
	e.DocsURL = url
	return e
}

// CodeOf returns the code of the first SkillError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var se *SkillError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// HasCode reports whether err's chain contains a SkillError with code.
func HasCode(err error, code ErrorCode) bool {
	return errors.Is(err, New(code, ""))
}

// Common error constructors for frequently used errors

// NewOutOfOrderError reports an operation attempted in the wrong phase
func NewOutOfOrderError(op, current, want string) *SkillError {
	return New(ErrCodeFlowOutOfOrder, fmt.Sprintf("%s is not allowed during %s (requires %s)", op, current, want)).
		WithSuggestion("Phases run Gathering, GitCheck, Planning, Implementation, Validation in order").
		WithSuggestion("Run 'ai-skills session' to follow the workflow interactively")
}

// NewGatheringOpenError reports unanswered required questions
func NewGatheringOpenError(missing []string) *SkillError {
	return New(ErrCodeFlowGatheringOpen, fmt.Sprintf("gathering incomplete, unanswered: %s", strings.Join(missing, ", "))).
		WithSuggestion("Answer every required question before the git check")
}

// NewClarificationRequiredError reports that no stack was detected and the human has not said which applies
func NewClarificationRequiredError() *SkillError {
	return New(ErrCodeFlowClarification, "project context is inconclusive and no clarification was recorded").
		WithSuggestion("Answer the 'stack' question (quarkus, jbang, langchain4j or none)").
		WithSuggestion("Run 'ai-skills detect --marker <text>' to check what the detector sees")
}

// NewPlanNotApprovedError reports an attempt to implement an unapproved plan
func NewPlanNotApprovedError() *SkillError {
	return New(ErrCodeFlowPlanNotApproved, "plan has not been approved").
		WithSuggestion("Review the proposed plan and approve it explicitly")
}

// NewStepNotValidatedError reports an attempt to move past an unvalidated step
func NewStepNotValidatedError(stepID string) *SkillError {
	return New(ErrCodeFlowStepNotValidated, fmt.Sprintf("step %s has not been validated", stepID)).
		WithSuggestion("Validate the completed step before starting the next one")
}

// NewHaltedError reports a mutation attempted after the session was halted
func NewHaltedError(reason string) *SkillError {
	msg := "session halted"
	if reason != "" {
		msg += ": " + reason
	}
	return New(ErrCodeFlowHalted, msg).
		WithSuggestion("Start a new session with 'ai-skills session'")
}

// NewPlanInvalidError creates a plan validation error
func NewPlanInvalidError(details string) *SkillError {
	return New(ErrCodePlanInvalid, fmt.Sprintf("invalid plan: %s", details)).
		WithSuggestion("A plan needs between 5 and 8 steps with unique IDs and titles").
		WithSuggestion("Run 'ai-skills plan draft' to generate a starting point")
}

// NewGuideUnknownError creates an unknown guidance document error
func NewGuideUnknownError(id string) *SkillError {
	return New(ErrCodeGuideUnknown, fmt.Sprintf("unknown guidance document: %s", id)).
		WithSuggestion("Run 'ai-skills guide --list' to see available documents")
}

// NewInterviewAnswerRequiredError creates a required answer error
func NewInterviewAnswerRequiredError(question string) *SkillError {
	return New(ErrCodeInterviewAnswerRequired, fmt.Sprintf("answer is required for: %s", question)).
		WithSuggestion("Provide a non-empty answer")
}

// NewInterviewAnswerInvalidError creates an invalid answer error
func NewInterviewAnswerInvalidError(question string, expected string) *SkillError {
	return New(ErrCodeInterviewAnswerInvalid, fmt.Sprintf("invalid answer for: %s", question)).
		WithSuggestion(fmt.Sprintf("Expected: %s", expected))
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *SkillError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *SkillError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}
