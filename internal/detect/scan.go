package detect

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/philippart-s/ai-skills/internal/errors"
)

// descriptors are build files whose whole content is a marker
var descriptors = []string{
	"pom.xml",
	"build.gradle",
	"build.gradle.kts",
	"settings.gradle",
	"settings.gradle.kts",
	"jbang-catalog.json",
}

// sourceExts are scanned for header directives such as //DEPS
var sourceExts = map[string]bool{
	".java": true,
	".kt":   true,
	".jsh":  true,
}

var skipDirs = map[string]bool{
	".git":         true,
	"target":       true,
	"build":        true,
	"node_modules": true,
	".idea":        true,
	".gradle":      true,
	".mvn":         true,
}

const (
	headerLines      = 25
	maxDescriptorLen = 512 * 1024
)

// ScanOptions bounds a project scan
type ScanOptions struct {
	// MaxDepth limits how deep source files are searched, 0 means the root only
	MaxDepth int
	// MaxFiles caps the number of source headers read
	MaxFiles int
}

// DefaultScanOptions returns the options used by the CLI
func DefaultScanOptions() ScanOptions {
	return ScanOptions{MaxDepth: 6, MaxFiles: 500}
}

// Scan collects textual markers from a project directory.
//
// For every known descriptor found at the root it emits "<name> present"
// followed by the descriptor content. For source files it emits the first
// lines of each file, where JBang directives live.
func Scan(dir string, opts ScanOptions) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDetectScanFailed, fmt.Sprintf("cannot scan %s", dir), err)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeDetectScanFailed, fmt.Sprintf("%s is not a directory", dir))
	}

	var markers []string

	for _, name := range descriptors {
		path := filepath.Join(dir, name)
		content, err := readLimited(path, maxDescriptorLen)
		if err != nil {
			continue
		}
		markers = append(markers, name+" present")
		if content != "" {
			markers = append(markers, content)
		}
	}

	files := 0
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable entries are skipped, not fatal
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, _ := filepath.Rel(dir, path)
		depth := 0
		if rel != "." {
			depth = strings.Count(rel, string(filepath.Separator)) + 1
		}

		if d.IsDir() {
			if path != dir && (skipDirs[d.Name()] || depth > opts.MaxDepth) {
				return fs.SkipDir
			}
			return nil
		}

		if !sourceExts[filepath.Ext(path)] {
			return nil
		}
		if opts.MaxFiles > 0 && files >= opts.MaxFiles {
			return fs.SkipAll
		}
		files++

		header, err := readHeader(path, headerLines)
		if err == nil && header != "" {
			markers = append(markers, header)
		}
		return nil
	})
	if walkErr != nil {
		return markers, errors.Wrap(errors.ErrCodeDetectScanFailed, fmt.Sprintf("walk %s", dir), walkErr)
	}

	return markers, nil
}

func readLimited(path string, limit int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readHeader(path string, lines int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && len(out) < lines {
		out = append(out, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return strings.Join(out, "\n"), nil
}
