package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/philippart-s/ai-skills/internal/detect"
	"github.com/philippart-s/ai-skills/internal/errors"
	"github.com/philippart-s/ai-skills/internal/gitcheck"
	"github.com/philippart-s/ai-skills/internal/interview"
	"github.com/philippart-s/ai-skills/internal/plan"
	"github.com/philippart-s/ai-skills/internal/workflow"
)

// Version of the transcript file layout
const Version = "1.0"

// Transcript is the exported record of one session. It is read back for
// display only; a session is never resumed from it.
type Transcript struct {
	Version    string                      `json:"version" yaml:"version"`
	SessionID  string                      `json:"session_id" yaml:"session_id"`
	ExportedAt time.Time                   `json:"exported_at" yaml:"exported_at"`
	Detection  detect.Result               `json:"detection" yaml:"detection"`
	Summary    workflow.Summary            `json:"summary" yaml:"summary"`
	Answers    map[string]interview.Answer `json:"answers,omitempty" yaml:"answers,omitempty"`
	Git        *gitcheck.Status            `json:"git,omitempty" yaml:"git,omitempty"`
	Plan       *plan.Plan                  `json:"plan,omitempty" yaml:"plan,omitempty"`
	Events     []workflow.Event            `json:"events" yaml:"events"`
}

// FromSequencer captures the current state of a session
func FromSequencer(seq *workflow.Sequencer, now time.Time) *Transcript {
	return &Transcript{
		Version:    Version,
		SessionID:  seq.ID(),
		ExportedAt: now,
		Detection:  seq.Detection(),
		Summary:    seq.Summary(),
		Answers:    seq.Interview().Answers(),
		Git:        seq.GitStatus(),
		Plan:       seq.Plan(),
		Events:     seq.Events(),
	}
}

// Format is the on-disk encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts yaml, yml or json, defaulting to yaml
func ParseFormat(s string) Format {
	if strings.EqualFold(s, "json") {
		return FormatJSON
	}
	return FormatYAML
}

// Info describes a stored transcript
type Info struct {
	ID       string    `json:"id" yaml:"id"`
	Path     string    `json:"path" yaml:"path"`
	Modified time.Time `json:"modified" yaml:"modified"`
}

// Manager stores transcripts as <session-id>.<yaml|json> in one directory
type Manager struct {
	dir string
}

// NewManager creates a manager rooted at dir
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// Dir returns the storage directory
func (m *Manager) Dir() string {
	return m.dir
}

// Save writes t and returns the file path
func (m *Manager) Save(t *Transcript, format Format) (string, error) {
	if t == nil {
		return "", errors.New(errors.ErrCodeFileMarshal, "transcript is nil")
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeDirectoryFailed, "failed to create transcript directory", err)
	}

	var (
		data []byte
		err  error
	)
	if format == FormatJSON {
		data, err = json.MarshalIndent(t, "", "  ")
	} else {
		format = FormatYAML
		data, err = yaml.Marshal(t)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileMarshal, "failed to marshal transcript", err)
	}

	path := filepath.Join(m.dir, fmt.Sprintf("%s.%s", t.SessionID, format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write transcript", err)
	}
	return path, nil
}

// Load reads a transcript by session ID or by path
func (m *Manager) Load(idOrPath string) (*Transcript, error) {
	path, err := m.resolve(idOrPath)
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads a transcript file, decoding by extension
func LoadFile(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFoundError(path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read transcript", err)
	}

	var t Transcript
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, errors.NewFileUnmarshalError(path, "JSON", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, errors.NewFileUnmarshalError(path, "YAML", err)
		}
	}
	return &t, nil
}

// Exists reports whether a transcript is stored for id
func (m *Manager) Exists(id string) bool {
	_, err := m.resolve(id)
	return err == nil
}

// Delete removes the stored transcript for id
func (m *Manager) Delete(id string) error {
	path, err := m.resolve(id)
	if err != nil {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to delete transcript", err)
	}
	return nil
}

// List returns stored transcripts, most recent first
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeDirectoryFailed, "failed to read transcript directory", err)
	}

	infos := []Info{}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".json") {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			ID:       strings.TrimSuffix(entry.Name(), ext),
			Path:     filepath.Join(m.dir, entry.Name()),
			Modified: fi.ModTime(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Modified.Equal(infos[j].Modified) {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].Modified.After(infos[j].Modified)
	})
	return infos, nil
}

func (m *Manager) resolve(idOrPath string) (string, error) {
	if strings.ContainsRune(idOrPath, filepath.Separator) || filepath.Ext(idOrPath) != "" {
		if _, err := os.Stat(idOrPath); err == nil {
			return idOrPath, nil
		}
	}
	for _, ext := range []string{".yaml", ".json"} {
		path := filepath.Join(m.dir, idOrPath+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.New(errors.ErrCodeFileNotFound, fmt.Sprintf("transcript not found: %s", idOrPath)).
		WithSuggestion("Run 'ai-skills transcript list' to see stored transcripts")
}
