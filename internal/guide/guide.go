package guide

import (
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/philippart-s/ai-skills/internal/detect"
	"github.com/philippart-s/ai-skills/internal/errors"
)

//go:embed docs/*.md
var builtinDocs embed.FS

// WorkflowID names the methodology document, which applies to every session
const WorkflowID = "workflow"

// Source tells where a document's text came from
type Source string

const (
	SourceBuiltin  Source = "builtin"
	SourceOverride Source = "override"
)

// Document is one guidance text surfaced to the host
type Document struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
	Digest  string `json:"digest" yaml:"digest"`
	Source  Source `json:"source" yaml:"source"`
}

// DocID maps a flag to its document ID. The mapping is one to one.
func DocID(f detect.Flag) string {
	return string(f)
}

// Loader resolves documents from the embedded set, or from an override
// directory holding <id>.md files.
type Loader struct {
	overrideDir string
}

// NewLoader creates a loader. An empty overrideDir uses built-in text only.
func NewLoader(overrideDir string) *Loader {
	return &Loader{overrideDir: overrideDir}
}

// Load returns the guidance document for a flag
func (l *Loader) Load(f detect.Flag) (*Document, error) {
	if _, err := detect.ParseFlag(string(f)); err != nil {
		return nil, err
	}
	return l.LoadByID(DocID(f))
}

// LoadByID returns a document by ID, override first then built-in
func (l *Loader) LoadByID(id string) (*Document, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if !known(id) {
		return nil, errors.NewGuideUnknownError(id)
	}

	if l.overrideDir != "" {
		path := filepath.Join(l.overrideDir, id+".md")
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			return newDocument(id, data, SourceOverride), nil
		case !os.IsNotExist(err):
			return nil, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("read %s", path), err)
		}
	}

	data, err := builtinDocs.ReadFile("docs/" + id + ".md")
	if err != nil {
		return nil, errors.NewGuideUnknownError(id)
	}
	return newDocument(id, data, SourceBuiltin), nil
}

// ForFlags returns the workflow document followed by one document per
// active flag, in flag display order.
func (l *Loader) ForFlags(flags detect.FlagSet) ([]*Document, error) {
	ids := []string{WorkflowID}
	for _, f := range detect.AllFlags {
		if flags.Has(f) {
			ids = append(ids, DocID(f))
		}
	}

	docs := make([]*Document, 0, len(ids))
	for _, id := range ids {
		doc, err := l.LoadByID(id)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// List returns every known document ID, sorted
func List() []string {
	entries, err := fs.ReadDir(builtinDocs, "docs")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(ids)
	return ids
}

func known(id string) bool {
	for _, k := range List() {
		if k == id {
			return true
		}
	}
	return false
}

func newDocument(id string, data []byte, src Source) *Document {
	content := string(data)
	return &Document{
		ID:      id,
		Title:   title(content, id),
		Content: content,
		Digest:  Digest(data),
		Source:  src,
	}
}

// Digest returns the blake3 hex digest of content
func Digest(content []byte) string {
	hasher := blake3.New()
	_, _ = hasher.Write(content)
	return hex.EncodeToString(hasher.Sum(nil))
}

// title is the first level-one heading, or the ID
func title(content, id string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return id
}
