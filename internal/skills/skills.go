package skills

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philippart-s/ai-skills/internal/errors"
	"github.com/philippart-s/ai-skills/internal/guide"
)

// Name is the folder name the skill is installed under
const Name = "quarkus-jbang-langchain4j"

//go:embed library/SKILL.md
var bundled embed.FS

// Harness is an AI assistant that loads skills from disk
type Harness string

const (
	Claude   Harness = "claude"
	OpenCode Harness = "opencode"
)

// Scope selects a per-user or per-project installation
type Scope string

const (
	ScopeUser    Scope = "user"
	ScopeProject Scope = "project"
)

// ParseHarness validates a harness name
func ParseHarness(s string) (Harness, error) {
	switch h := Harness(strings.ToLower(strings.TrimSpace(s))); h {
	case Claude, OpenCode:
		return h, nil
	default:
		return "", errors.New(errors.ErrCodeGuideHarnessBad, fmt.Sprintf("unknown harness: %q", s)).
			WithSuggestion("Use claude or opencode")
	}
}

// Options controls an installation
type Options struct {
	Harness Harness
	Scope   Scope
	// Home and ProjectDir default to the user home and the working directory
	Home       string
	ProjectDir string
	// Guides supplies the reference documents, built-in by default
	Guides *guide.Loader
}

// Result lists what was written
type Result struct {
	Dir   string   `json:"dir" yaml:"dir"`
	Files []string `json:"files" yaml:"files"`
}

// Dir returns the directory the skill is installed into
func Dir(opts Options) (string, error) {
	home := opts.Home
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeDirectoryFailed, "cannot resolve home directory", err)
		}
		home = h
	}

	switch opts.Harness {
	case Claude:
		if opts.Scope == ScopeProject {
			project := opts.ProjectDir
			if project == "" {
				project = "."
			}
			return filepath.Join(project, ".claude", "skills", Name), nil
		}
		return filepath.Join(home, ".claude", "skills", Name), nil
	case OpenCode:
		if opts.Scope == ScopeProject {
			return "", errors.New(errors.ErrCodeGuideHarnessBad, "opencode skills are installed per user only")
		}
		return filepath.Join(home, ".config", "opencode", "skill", Name), nil
	default:
		_, err := ParseHarness(string(opts.Harness))
		return "", err
	}
}

// Install writes SKILL.md and references/<id>.md for every guidance
// document. Existing files are overwritten.
func Install(opts Options) (*Result, error) {
	dir, err := Dir(opts)
	if err != nil {
		return nil, err
	}
	guides := opts.Guides
	if guides == nil {
		guides = guide.NewLoader("")
	}

	refDir := filepath.Join(dir, "references")
	if err := os.MkdirAll(refDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeGuideInstall, fmt.Sprintf("failed to prepare skill directory %s", dir), err)
	}

	res := &Result{Dir: dir}

	skill, err := bundled.ReadFile("library/SKILL.md")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGuideInstall, "failed to read embedded SKILL.md", err)
	}
	if err := write(filepath.Join(dir, "SKILL.md"), skill, res); err != nil {
		return nil, err
	}

	for _, id := range guide.List() {
		doc, err := guides.LoadByID(id)
		if err != nil {
			return nil, err
		}
		if err := write(filepath.Join(refDir, id+".md"), []byte(doc.Content), res); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func write(path string, data []byte, res *Result) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeGuideInstall, fmt.Sprintf("failed to write %s", path), err)
	}
	res.Files = append(res.Files, path)
	return nil
}
