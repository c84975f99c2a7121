package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/philippart-s/ai-skills/internal/errors"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON: %v (%q)", err, buf.String())
	}
	return entry
}

func TestNewDefaultsOutput(t *testing.T) {
	logger := New(Config{Level: LevelInfo})
	if logger.config.Output == nil {
		t.Fatal("expected output to default to stderr")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatJSON, Output: &buf})

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}

	logger.Warn("shown", "phase", "Planning")
	entry := decode(t, &buf)
	if entry["msg"] != "shown" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["phase"] != "Planning" {
		t.Errorf("phase = %v", entry["phase"])
	}
}

func TestServiceAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf, ServiceName: "ai-skills", ServiceVersion: "1.2.3"})
	logger.Info("hello")

	entry := decode(t, &buf)
	if entry["service"] != "ai-skills" || entry["version"] != "1.2.3" {
		t.Errorf("unexpected service attrs: %v", entry)
	}
}

func TestWithSession(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Format: FormatJSON, Output: &buf}).WithSession("abc")
	logger.Debug("tick")

	if entry := decode(t, &buf); entry["session_id"] != "abc" {
		t.Errorf("session_id = %v", entry["session_id"])
	}
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  bool
		wantSuggs bool
	}{
		{name: "nil error"},
		{name: "plain error", err: fmt.Errorf("boom")},
		{
			name:      "coded error",
			err:       errors.NewPlanNotApprovedError(),
			wantCode:  true,
			wantSuggs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})
			logger.WithError(tt.err).Info("test")

			entry := decode(t, &buf)
			if tt.err == nil {
				if _, ok := entry["error"]; ok {
					t.Error("expected no error field for nil error")
				}
				return
			}
			if _, ok := entry["error_code"]; ok != tt.wantCode {
				t.Errorf("error_code present = %v, want %v", ok, tt.wantCode)
			}
			if _, ok := entry["suggestions"]; ok != tt.wantSuggs {
				t.Errorf("suggestions present = %v, want %v", ok, tt.wantSuggs)
			}
		})
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	err := errors.Wrap(errors.ErrCodeFileReadFailed, "read plan", fmt.Errorf("permission denied")).
		WithDocs("https://example.com")
	logger.LogError(err)

	entry := decode(t, &buf)
	if entry["error_code"] != "IO-002" {
		t.Errorf("error_code = %v", entry["error_code"])
	}
	if entry["error_message"] != "read plan" {
		t.Errorf("error_message = %v", entry["error_message"])
	}
	if entry["cause"] != "permission denied" {
		t.Errorf("cause = %v", entry["cause"])
	}
	if entry["docs_url"] != "https://example.com" {
		t.Errorf("docs_url = %v", entry["docs_url"])
	}

	buf.Reset()
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Error("LogError(nil) should not write")
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatText, Output: &buf})
	logger.Info("detected", "flags", "quarkus")

	if !strings.Contains(buf.String(), "flags=quarkus") {
		t.Errorf("text output missing attr: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing to see")
	if logger.Enabled(context.Background(), LevelError) {
		t.Error("discard logger should not be enabled")
	}
}
