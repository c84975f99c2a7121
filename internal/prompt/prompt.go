package prompt

import (
	"context"
	"errors"
	"os"
)

// ErrHalted is returned when the human asks to stop the session, either by
// answering "halt" or by aborting the form.
var ErrHalted = errors.New("halt requested")

// HaltWord is the answer that stops a session at any prompt
const HaltWord = "halt"

// Prompter asks the human for input. Every call blocks until an answer is
// given or ctx is done.
type Prompter interface {
	Input(ctx context.Context, title, description string) (string, error)
	Confirm(ctx context.Context, title string) (bool, error)
	Select(ctx context.Context, title string, options []string) (string, error)
	MultiSelect(ctx context.Context, title string, options []string) ([]string, error)
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ShouldPrompt returns true if terminal forms should be shown.
// Forms are disabled in CI environments or when stdin is not a terminal.
func ShouldPrompt() bool {
	ciEnvVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"JENKINS_URL",
		"TRAVIS",
		"CIRCLECI",
		"BUILDKITE",
	}

	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return false
		}
	}

	return IsInteractive()
}

// Default returns huh forms on a terminal and a line prompter on stdio otherwise
func Default() Prompter {
	if ShouldPrompt() {
		return NewForm()
	}
	return NewLine(os.Stdin, os.Stderr)
}
