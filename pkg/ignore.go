package dupescan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// IgnoreMatcher decides whether scan entries are excluded from a tree walk.
// It combines an optional .dupesignore file at the scan root (gitignore
// semantics) with caller-supplied glob patterns matched against the
// root-relative path.
type IgnoreMatcher struct {
	root     string
	ignore   gitignore.GitIgnore // nil when the root has no ignore file
	patterns []string
}

// NewIgnoreMatcher creates a matcher for the tree rooted at root. Patterns
// use doublestar glob syntax; an invalid pattern is an error.
func NewIgnoreMatcher(root string, patterns []string) (*IgnoreMatcher, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}

	m := &IgnoreMatcher{root: root, patterns: patterns}
	m.ignore = loadIgnoreFile(filepath.Join(root, IgnoreFileName), root)
	return m, nil
}

// Ignored reports whether the entry at path should be skipped. isDir
// distinguishes directory rules from file rules in the ignore file.
func (m *IgnoreMatcher) Ignored(path string, isDir bool) bool {
	if m == nil {
		return false
	}

	rel, err := filepath.Rel(m.root, path)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, p := range m.patterns {
		if matched, err := doublestar.Match(p, rel); err == nil && matched {
			return true
		}
	}

	if m.ignore != nil {
		if match := m.ignore.Relative(rel, isDir); match != nil {
			return match.Ignore()
		}
	}
	return false
}

// loadIgnoreFile reads an ignore file and builds a matcher from it. A
// missing or unreadable file yields nil, meaning nothing is ignored.
func loadIgnoreFile(path, base string) gitignore.GitIgnore {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	return gitignore.New(f, base, nil)
}
