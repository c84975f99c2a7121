// Package gitcheck inspects the version-control state of a project.
// It only reads: nothing here stages, commits, checks out or resets.
package gitcheck

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	skillerrors "github.com/philippart-s/ai-skills/internal/errors"
)

// Status holds Git repository information
type Status struct {
	Initialized bool     `json:"initialized" yaml:"initialized"`
	Root        string   `json:"root,omitempty" yaml:"root,omitempty"`
	Branch      string   `json:"branch,omitempty" yaml:"branch,omitempty"`
	Head        string   `json:"head,omitempty" yaml:"head,omitempty"`
	Dirty       bool     `json:"dirty" yaml:"dirty"`
	Uncommitted int      `json:"uncommitted" yaml:"uncommitted"`
	Files       []string `json:"files,omitempty" yaml:"files,omitempty"`
}

// maxListedFiles bounds Status.Files; Uncommitted still counts everything
const maxListedFiles = 20

// Inspect reads the repository containing dir. A directory outside any
// repository is not an error: it yields Status{Initialized: false}.
func Inspect(dir string) (Status, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Status{}, skillerrors.Wrap(skillerrors.ErrCodeDirectoryFailed, "resolve project directory", err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("open repository: %w", err)
	}

	st := Status{Initialized: true, Root: abs}

	wt, err := repo.Worktree()
	if err == nil {
		st.Root = wt.Filesystem.Root()
	}

	head, err := repo.Head()
	switch {
	case err == nil:
		st.Head = head.Hash().String()
		if head.Name().IsBranch() {
			st.Branch = head.Name().Short()
		} else {
			st.Branch = "HEAD"
		}
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// fresh repository without commits
		st.Branch = unbornBranch(repo)
	default:
		return st, fmt.Errorf("read HEAD: %w", err)
	}

	if wt == nil {
		return st, nil
	}

	status, err := wt.Status()
	if err != nil {
		return st, fmt.Errorf("read worktree status: %w", err)
	}

	files := make([]string, 0, len(status))
	for path, fs := range status {
		if fs.Worktree == git.Unmodified && fs.Staging == git.Unmodified {
			continue
		}
		files = append(files, fmt.Sprintf("%c%c %s", fs.Staging, fs.Worktree, path))
	}
	sort.Strings(files)

	st.Uncommitted = len(files)
	st.Dirty = st.Uncommitted > 0
	if len(files) > maxListedFiles {
		files = files[:maxListedFiles]
	}
	st.Files = files

	return st, nil
}

func unbornBranch(repo *git.Repository) string {
	ref, err := repo.Storer.Reference(plumbing.HEAD)
	if err != nil || ref.Type() != plumbing.SymbolicReference {
		return ""
	}
	return ref.Target().Short()
}

// Summary returns a one-line description of the status
func (s Status) Summary() string {
	if !s.Initialized {
		return "not a git repository"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s on branch %s", filepath.Base(s.Root), s.Branch)
	if s.Dirty {
		fmt.Fprintf(&sb, ", %d uncommitted change(s)", s.Uncommitted)
	} else {
		sb.WriteString(", clean")
	}
	return sb.String()
}
