package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philippart-s/ai-skills/internal/errors"
	"github.com/philippart-s/ai-skills/internal/guide"
)

func TestDir(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		want    string
		wantErr bool
	}{
		{
			name: "claude user",
			opts: Options{Harness: Claude, Home: "/home/u"},
			want: filepath.Join("/home/u", ".claude", "skills", Name),
		},
		{
			name: "claude project",
			opts: Options{Harness: Claude, Scope: ScopeProject, Home: "/home/u", ProjectDir: "/src/app"},
			want: filepath.Join("/src/app", ".claude", "skills", Name),
		},
		{
			name: "opencode user",
			opts: Options{Harness: OpenCode, Home: "/home/u"},
			want: filepath.Join("/home/u", ".config", "opencode", "skill", Name),
		},
		{
			name:    "opencode project",
			opts:    Options{Harness: OpenCode, Scope: ScopeProject, Home: "/home/u"},
			wantErr: true,
		},
		{
			name:    "unknown harness",
			opts:    Options{Harness: "cursor", Home: "/home/u"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Dir(tt.opts)
			if tt.wantErr {
				assert.True(t, errors.HasCode(err, errors.ErrCodeGuideHarnessBad))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInstall(t *testing.T) {
	home := t.TempDir()
	opts := Options{Harness: Claude, Home: home}

	res, err := Install(opts)
	require.NoError(t, err)
	assert.Len(t, res.Files, 1+len(guide.List()))

	skill, err := os.ReadFile(filepath.Join(res.Dir, "SKILL.md"))
	require.NoError(t, err)
	assert.Contains(t, string(skill), "name: "+Name)

	for _, id := range guide.List() {
		assert.FileExists(t, filepath.Join(res.Dir, "references", id+".md"))
	}

	// reinstalling overwrites in place
	require.NoError(t, os.WriteFile(filepath.Join(res.Dir, "SKILL.md"), []byte("stale"), 0o644))
	_, err = Install(opts)
	require.NoError(t, err)
	skill, err = os.ReadFile(filepath.Join(res.Dir, "SKILL.md"))
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(skill))
}

func TestInstallUsesOverrides(t *testing.T) {
	overrides := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(overrides, "jbang.md"), []byte("# Team JBang\n"), 0o644))

	res, err := Install(Options{Harness: OpenCode, Home: t.TempDir(), Guides: guide.NewLoader(overrides)})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(res.Dir, "references", "jbang.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Team JBang\n", string(data))
}

func TestParseHarness(t *testing.T) {
	h, err := ParseHarness(" Claude ")
	require.NoError(t, err)
	assert.Equal(t, Claude, h)

	_, err = ParseHarness("vim")
	assert.Error(t, err)
}
