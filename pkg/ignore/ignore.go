// Package ignore filters scan candidates with gitignore semantics.
// Patterns are layered: built-in defaults, the project's .gitignore,
// a .licetignore at the scan root, and a user-level override under
// the licet home directory.
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Matcher answers whether a path relative to the scan root is ignored.
type Matcher struct {
	root    string
	matcher gitignore.Matcher
}

// NewMatcher creates a matcher rooted at the scan target with layered
// ignore sources:
// 1. defaults passed by the caller (dependency trees, build output)
// 2. .gitignore and related git ignore files
// 3. .licetignore at the scan root
// 4. ~/.licet/.licetignore (user overrides)
func NewMatcher(root string, defaults []string) (*Matcher, error) {
	fs := osfs.New(root)

	var allPatterns []gitignore.Pattern
	for _, pattern := range defaults {
		allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
	}

	// ReadPatterns with nil reads .gitignore, global excludes, and .git/info/exclude
	if gitPatterns, err := gitignore.ReadPatterns(fs, nil); err == nil {
		allPatterns = append(allPatterns, gitPatterns...)
	}

	if patterns, err := readIgnoreFile(filepath.Join(root, ".licetignore")); err == nil {
		for _, pattern := range patterns {
			allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		userIgnorePath := filepath.Join(homeDir, ".licet", ".licetignore")
		if patterns, err := readIgnoreFile(userIgnorePath); err == nil {
			for _, pattern := range patterns {
				allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
			}
		}
	}

	return &Matcher{
		root:    root,
		matcher: gitignore.NewMatcher(allPatterns),
	}, nil
}

// readIgnoreFile reads patterns from a .licetignore file.
func readIgnoreFile(path string) ([]string, error) {
	cleaned := filepath.Clean(path)
	if !strings.HasSuffix(cleaned, string(os.PathSeparator)+".licetignore") {
		return nil, fmt.Errorf("disallowed ignore file path: %s", cleaned)
	}
	content, err := os.ReadFile(cleaned) // #nosec G304 -- path cleaned and allowlisted
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}

// IsIgnored checks if a root-relative file path should be ignored.
func (m *Matcher) IsIgnored(relPath string) bool {
	return m.match(relPath, false)
}

// IsIgnoredDir checks if a root-relative directory should be skipped.
func (m *Matcher) IsIgnoredDir(relPath string) bool {
	return m.match(relPath, true)
}

func (m *Matcher) match(relPath string, isDir bool) bool {
	parts := splitPath(filepath.ToSlash(relPath))
	if len(parts) == 0 {
		return false
	}
	return m.matcher.Match(parts, isDir)
}

// splitPath converts a slash-separated path into components for matching.
func splitPath(path string) []string {
	if path == "" || path == "." {
		return nil
	}

	path = strings.TrimPrefix(path, "/")
	parts := strings.Split(path, "/")

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}
