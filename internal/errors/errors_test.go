package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodePlanNotFound, "test error message")

	if err.Code != ErrCodePlanNotFound {
		t.Errorf("expected code %s, got %s", ErrCodePlanNotFound, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap(ErrCodeFileReadFailed, "failed to read file", cause)

	if err.Code != ErrCodeFileReadFailed {
		t.Errorf("expected code %s, got %s", ErrCodeFileReadFailed, err.Code)
	}

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *SkillError
		wantCode string
		wantMsg  string
	}{
		{
			name:     "simple error",
			err:      New(ErrCodePlanInvalid, "invalid plan"),
			wantCode: "PLAN-002",
			wantMsg:  "invalid plan",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeFileReadFailed, "read failed", fmt.Errorf("permission denied")),
			wantCode: "IO-002",
			wantMsg:  "permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()

			if !strings.Contains(errStr, tt.wantCode) {
				t.Errorf("error string should contain code %s, got: %s", tt.wantCode, errStr)
			}

			if !strings.Contains(errStr, tt.wantMsg) {
				t.Errorf("error string should contain message '%s', got: %s", tt.wantMsg, errStr)
			}
		})
	}
}

func TestWithSuggestionAndDocs(t *testing.T) {
	err := New(ErrCodeGuideUnknown, "unknown document").
		WithSuggestion("Check the document ID").
		WithSuggestions("Run guide --list", "Check config").
		WithDocs("https://example.com/docs")

	if len(err.Suggestions) != 3 {
		t.Errorf("expected 3 suggestions, got %d", len(err.Suggestions))
	}

	errStr := err.Error()
	for _, want := range []string{"Suggestions:", "Check the document ID", "Run guide --list", "Documentation:", "https://example.com/docs"} {
		if !strings.Contains(errStr, want) {
			t.Errorf("error string should contain %q, got: %s", want, errStr)
		}
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("advance: %w", NewPlanNotApprovedError())

	if !errors.Is(err, New(ErrCodeFlowPlanNotApproved, "")) {
		t.Error("errors.Is should match on code through wrapping")
	}
	if errors.Is(err, New(ErrCodeFlowHalted, "")) {
		t.Error("errors.Is should not match a different code")
	}
	if !HasCode(err, ErrCodeFlowPlanNotApproved) {
		t.Error("HasCode should find the code")
	}
	if got := CodeOf(err); got != ErrCodeFlowPlanNotApproved {
		t.Errorf("CodeOf() = %s, want %s", got, ErrCodeFlowPlanNotApproved)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
}

func TestNewOutOfOrderError(t *testing.T) {
	err := NewOutOfOrderError("approve plan", "Gathering", "Planning")

	if err.Code != ErrCodeFlowOutOfOrder {
		t.Errorf("expected code %s, got %s", ErrCodeFlowOutOfOrder, err.Code)
	}
	if !strings.Contains(err.Message, "Gathering") || !strings.Contains(err.Message, "Planning") {
		t.Errorf("message should name both phases, got %s", err.Message)
	}
}

func TestNewGatheringOpenError(t *testing.T) {
	err := NewGatheringOpenError([]string{"goal", "stack"})

	if !strings.Contains(err.Message, "goal, stack") {
		t.Errorf("message should list missing questions, got %s", err.Message)
	}
}

func TestNewHaltedError(t *testing.T) {
	if got := NewHaltedError("").Message; got != "session halted" {
		t.Errorf("message = %q", got)
	}
	if got := NewHaltedError("user stopped").Message; got != "session halted: user stopped" {
		t.Errorf("message = %q", got)
	}
}

func TestNewStepNotValidatedError(t *testing.T) {
	err := NewStepNotValidatedError("step-2")
	if !strings.Contains(err.Message, "step-2") {
		t.Errorf("message should contain step ID")
	}
}

func TestNewInterviewErrors(t *testing.T) {
	req := NewInterviewAnswerRequiredError("What is the goal?")
	if req.Code != ErrCodeInterviewAnswerRequired {
		t.Errorf("expected code %s, got %s", ErrCodeInterviewAnswerRequired, req.Code)
	}

	inv := NewInterviewAnswerInvalidError("Which stack?", "quarkus, jbang, langchain4j or none")
	if !strings.Contains(inv.Error(), "quarkus, jbang") {
		t.Errorf("suggestions should contain expected values")
	}
}

func TestNewFileUnmarshalError(t *testing.T) {
	cause := fmt.Errorf("invalid YAML syntax at line 5")
	err := NewFileUnmarshalError("/path/to/plan.yaml", "YAML", cause)

	if err.Code != ErrCodeFileUnmarshal {
		t.Errorf("expected code %s, got %s", ErrCodeFileUnmarshal, err.Code)
	}
	if err.Cause != cause {
		t.Errorf("expected cause to be preserved")
	}
	if !strings.Contains(err.Message, "/path/to/plan.yaml") {
		t.Errorf("error message should contain file path")
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeDetectScanFailed,
		ErrCodeFlowOutOfOrder,
		ErrCodeFlowHalted,
		ErrCodeFlowTerminal,
		ErrCodePlanInvalid,
		ErrCodeGuideUnknown,
		ErrCodeInterviewAnswerRequired,
		ErrCodeConfigLoad,
		ErrCodeFileNotFound,
		ErrCodeFileMarshal,
	}

	for _, code := range codes {
		parts := strings.Split(string(code), "-")
		if len(parts) != 2 {
			t.Errorf("error code %s should have format CATEGORY-NNN", code)
			continue
		}
		if len(parts[1]) != 3 {
			t.Errorf("error code %s should have 3-digit number", code)
		}
	}
}
