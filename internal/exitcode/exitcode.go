package exitcode

import (
	"os"
	"strings"

	"github.com/philippart-s/ai-skills/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// Halted indicates the human stopped the session
	Halted = 3

	// GateBlocked indicates a workflow gate refused to advance
	GateBlocked = 4

	// InvalidInput indicates a rejected plan, answer, flag or config value
	InvalidInput = 5

	// NotFound indicates a missing file, transcript or guidance document
	NotFound = 6
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error to an exit code, by error code when the
// error carries one and by message otherwise
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	switch code := errors.CodeOf(err); {
	case code == errors.ErrCodeFlowHalted:
		return Halted
	case code == errors.ErrCodeFileNotFound, code == errors.ErrCodeGuideUnknown, code == errors.ErrCodePlanNotFound:
		return NotFound
	case strings.HasPrefix(string(code), "FLOW-"):
		return GateBlocked
	case strings.HasPrefix(string(code), "PLAN-"),
		strings.HasPrefix(string(code), "INTERVIEW-"),
		strings.HasPrefix(string(code), "CONFIG-"),
		code == errors.ErrCodeDetectUnknownFlag,
		code == errors.ErrCodeGuideHarnessBad:
		return InvalidInput
	case code != "":
		return GeneralError
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "invalid flag") || strings.Contains(errMsg, "unknown command") ||
		strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "unknown shorthand flag") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || (strings.Contains(errMsg, "accepts") && strings.Contains(errMsg, "arg(s)")) {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case Halted:
		return "Session halted"
	case GateBlocked:
		return "Workflow gate not satisfied"
	case InvalidInput:
		return "Invalid input"
	case NotFound:
		return "Not found"
	default:
		return "Unknown error"
	}
}
