package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/licethq/licet/pkg/ignore"
)

// skipDirs are directory names excluded from discovery: dependency
// trees and build output contain third-party manifests that do not
// describe the scanned project.
var skipDirs = []string{
	"node_modules",
	"vendor",
	"target",
	"dist",
	"build",
	".git",
	".venv",
	"venv",
}

// defaultIgnorePatterns expresses skipDirs as gitignore patterns that
// match at any depth.
func defaultIgnorePatterns() []string {
	patterns := make([]string, 0, len(skipDirs))
	for _, dir := range skipDirs {
		patterns = append(patterns, "**/"+dir+"/**")
	}
	return patterns
}

// Discovery is one manifest found under a scan target.
type Discovery struct {
	Path   string // absolute path to the manifest
	Parser Parser
}

// Discover walks the target directory for known manifest files, up to
// maxDepth directory levels (0 means the target directory only).
// Dependency trees, build output, and anything the project's ignore
// files exclude are skipped. Results are sorted by path for
// deterministic scan output.
func Discover(target string, maxDepth int) ([]Discovery, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("stat scan target: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan target %s is not a directory", target)
	}

	matcher, err := ignore.NewMatcher(target, defaultIgnorePatterns())
	if err != nil {
		return nil, fmt.Errorf("build ignore matcher for %s: %w", target, err)
	}

	fsys := os.DirFS(target)
	found := make(map[string]Discovery)
	for _, parser := range Parsers() {
		for _, filename := range parser.Filenames() {
			matches, err := doublestar.Glob(fsys, "**/"+filename)
			if err != nil {
				return nil, fmt.Errorf("glob %s under %s: %w", filename, target, err)
			}
			for _, match := range matches {
				if depthOf(match) > maxDepth || matcher.IsIgnored(match) {
					continue
				}
				abs := filepath.Join(target, filepath.FromSlash(match))
				if _, dup := found[abs]; !dup {
					found[abs] = Discovery{Path: abs, Parser: parser}
				}
			}
		}
	}

	discoveries := make([]Discovery, 0, len(found))
	for _, d := range found {
		discoveries = append(discoveries, d)
	}
	sort.Slice(discoveries, func(i, j int) bool { return discoveries[i].Path < discoveries[j].Path })
	return discoveries, nil
}

// depthOf counts directory levels below the scan target for a
// slash-separated relative match.
func depthOf(relPath string) int {
	return strings.Count(relPath, "/")
}
