// Package scanner discovers TypeScript source files under a root path,
// honoring directory exclusions, glob patterns and .gitignore files.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/vestigehq/vestige/pkg/config"
	"github.com/vestigehq/vestige/pkg/parser"
)

// Scanner finds analyzable source files in a directory tree.
type Scanner struct {
	config   *config.Config
	matchers []gitignore.Matcher
}

// New creates a new file scanner.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// findGitRoot walks upward looking for a .git directory.
// Returns empty string if not in a git repository.
func findGitRoot(start string) string {
	dir := start
	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadGitignore reads .gitignore patterns for the tree rooted at root.
func (s *Scanner) loadGitignore(root string) {
	if !s.config.Exclude.Gitignore {
		return
	}
	gitRoot := findGitRoot(root)
	if gitRoot == "" {
		return
	}
	fsys := osfs.New(gitRoot)
	if patterns, err := gitignore.ReadPatterns(fsys, nil); err == nil && len(patterns) > 0 {
		s.matchers = append(s.matchers, gitignore.NewMatcher(patterns))
	}
}

// isExcludedDir reports whether a directory name is on the exclusion list.
func (s *Scanner) isExcludedDir(name string) bool {
	for _, dir := range s.config.Exclude.Dirs {
		if name == dir {
			return true
		}
	}
	return false
}

// matchesPattern checks the relative path against the configured exclude
// patterns. Patterns are tried as doublestar globs against both the full
// relative path and the basename, then as plain substring or suffix matches.
func (s *Scanner) matchesPattern(relPath string) bool {
	base := filepath.Base(relPath)
	for _, pattern := range s.config.Exclude.Patterns {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
		if strings.Contains(relPath, pattern) || strings.HasSuffix(relPath, pattern) {
			return true
		}
	}
	return false
}

// isIgnored checks a path against the loaded .gitignore matchers.
func (s *Scanner) isIgnored(relPath string, isDir bool) bool {
	if len(s.matchers) == 0 {
		return false
	}
	parts := strings.Split(relPath, string(filepath.Separator))
	for _, m := range s.matchers {
		if m.Match(parts, isDir) {
			return true
		}
	}
	return false
}

// Scan recursively walks root and returns the sorted absolute paths of every
// .ts/.tsx file that survives the exclusion rules. A missing root yields an
// empty list, not an error.
func (s *Scanner) Scan(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		return []string{}, nil
	}

	s.loadGitignore(absRoot)

	files := make([]string, 0, 256)
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		relPath, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return nil
		}

		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if s.isExcludedDir(d.Name()) || s.isIgnored(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if parser.DetectLanguage(path) == parser.LangUnknown {
			return nil
		}
		if s.matchesPattern(relPath) || s.isIgnored(relPath, false) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(files)
	return files, nil
}
