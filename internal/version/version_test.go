package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", info.Platform)
	}
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "1.2.0",
		Commit:    "0123456789abcdef",
		Date:      "2025-01-01",
		GoVersion: "go1.24.6",
		Platform:  "linux/amd64",
	}

	got := info.String()
	for _, want := range []string{"ai-skills 1.2.0", "(01234567)", "built 2025-01-01", "go1.24.6", "linux/amd64"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "89abcdef") {
		t.Errorf("commit should be shortened: %q", got)
	}
	if info.Short() != "1.2.0" {
		t.Errorf("Short() = %q", info.Short())
	}
}
