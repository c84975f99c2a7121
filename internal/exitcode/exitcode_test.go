package exitcode

import (
	"fmt"
	"testing"

	"github.com/philippart-s/ai-skills/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"halted", errors.NewHaltedError("stopped by user"), Halted},
		{"wrapped halted", fmt.Errorf("session: %w", errors.NewHaltedError("")), Halted},
		{"plan not approved", errors.NewPlanNotApprovedError(), GateBlocked},
		{"out of order", errors.NewOutOfOrderError("start step", "Planning", "Implementation"), GateBlocked},
		{"plan invalid", errors.NewPlanInvalidError("3 steps"), InvalidInput},
		{"unknown flag", errors.New(errors.ErrCodeDetectUnknownFlag, "spring"), InvalidInput},
		{"config", errors.New(errors.ErrCodeConfigInvalid, "bad"), InvalidInput},
		{"file not found", errors.NewFileNotFoundError("plan.yaml"), NotFound},
		{"guide unknown", errors.NewGuideUnknownError("spring"), NotFound},
		{"scan failed", errors.New(errors.ErrCodeDetectScanFailed, "boom"), GeneralError},
		{"cobra unknown command", fmt.Errorf(`unknown command "foo" for "ai-skills"`), UsageError},
		{"cobra unknown flag", fmt.Errorf("unknown flag: --nope"), UsageError},
		{"cobra required flag", fmt.Errorf(`required flag(s) "out" not set`), UsageError},
		{"plain", fmt.Errorf("something else"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.want {
				t.Errorf("DetermineExitCode() = %d (%s), want %d (%s)",
					got, GetExitCodeDescription(got), tt.want, GetExitCodeDescription(tt.want))
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	for code := Success; code <= NotFound; code++ {
		if GetExitCodeDescription(code) == "Unknown error" {
			t.Errorf("code %d has no description", code)
		}
	}
	if GetExitCodeDescription(99) != "Unknown error" {
		t.Error("unexpected description for unknown code")
	}
}
