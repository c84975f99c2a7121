package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/philippart-s/ai-skills/internal/errors"
)

// LoadPlan reads a Plan from a YAML or JSON file, chosen by extension
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFoundError(path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "read plan file", err)
	}

	var p Plan
	if isJSON(path) {
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, errors.NewFileUnmarshalError(path, "JSON", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, errors.NewFileUnmarshalError(path, "YAML", err)
		}
	}

	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validate plan: %w", err)
	}

	return &p, nil
}

// SavePlan writes a Plan to a YAML or JSON file, chosen by extension
func SavePlan(p *Plan, path string) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(p, "", "  ")
	} else {
		data, err = yaml.Marshal(p)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileMarshal, "marshal plan", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "write plan file", err)
	}

	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
