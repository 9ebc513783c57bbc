package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirectoryNotFoundError indicates the analysis root does not exist or is not a directory.
type DirectoryNotFoundError struct {
	Path string
}

func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("directory not found: %s", e.Path)
}

// DefaultExcludedDirs are directory names skipped during discovery.
// These cover virtual environments, caches, and editor/VCS metadata.
var DefaultExcludedDirs = []string{
	".git",
	"__pycache__",
	"venv",
	".venv",
	"env",
	"site-packages",
	"node_modules",
	".tox",
	".mypy_cache",
	".pytest_cache",
	".ruff_cache",
	"build",
	"dist",
	".idea",
	".vscode",
}

// Walker discovers Python source files under a project root.
// Each call to Walk re-traverses the filesystem, so a Walker can be
// reused across repeated analysis requests.
type Walker struct {
	root     string
	excluded map[string]bool
}

// NewWalker creates a Walker rooted at root. The root is canonicalized once;
// extraExcluded directory names are skipped in addition to the defaults.
func NewWalker(root string, extraExcluded []string) (*Walker, error) {
	canonical, err := CanonicalPath(root)
	if err != nil {
		return nil, &DirectoryNotFoundError{Path: root}
	}

	info, err := os.Stat(canonical)
	if err != nil || !info.IsDir() {
		return nil, &DirectoryNotFoundError{Path: root}
	}

	excluded := make(map[string]bool, len(DefaultExcludedDirs)+len(extraExcluded))
	for _, name := range DefaultExcludedDirs {
		excluded[name] = true
	}
	for _, name := range extraExcluded {
		if name != "" {
			excluded[name] = true
		}
	}

	return &Walker{root: canonical, excluded: excluded}, nil
}

// Root returns the canonical root directory.
func (w *Walker) Root() string {
	return w.root
}

// Walk returns the canonical paths of all Python files under the root in
// sorted order. Unreadable files and directories are skipped rather than
// failing the walk.
func (w *Walker) Walk() ([]string, error) {
	var files []string

	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == w.root {
				return walkErr
			}
			// Permission errors and races on subtrees are non-fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != w.root && w.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) != ".py" {
			return nil
		}

		canonical, err := CanonicalPath(path)
		if err != nil {
			return nil
		}
		files = append(files, canonical)
		return nil
	})
	if err != nil {
		return nil, &DirectoryNotFoundError{Path: w.root}
	}

	sort.Strings(files)
	return files, nil
}

func (w *Walker) skipDir(name string) bool {
	if w.excluded[name] {
		return true
	}
	return strings.HasSuffix(name, ".egg-info")
}

// CanonicalPath normalizes a path so that equivalent spellings (relative,
// symlinked, unclean) map to one graph node.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return filepath.Clean(abs), nil
}
