package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestMatcher(t *testing.T, files map[string]string, defaults []string) *Matcher {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	m, err := NewMatcher(root, defaults)
	if err != nil {
		t.Fatalf("NewMatcher failed: %v", err)
	}
	return m
}

func TestDefaultPatterns(t *testing.T) {
	m := newTestMatcher(t, nil, []string{"**/node_modules/**", "**/.git/**"})

	tests := []struct {
		path    string
		ignored bool
	}{
		{"node_modules/left-pad/package.json", true},
		{"frontend/node_modules/react/package.json", true},
		{".git/config", true},
		{"package.json", false},
		{"backend/go.mod", false},
	}

	for _, tt := range tests {
		if got := m.IsIgnored(tt.path); got != tt.ignored {
			t.Errorf("IsIgnored(%q) = %v, want %v", tt.path, got, tt.ignored)
		}
	}
}

func TestGitignoreLayering(t *testing.T) {
	m := newTestMatcher(t, map[string]string{
		".gitignore": "generated/\n*.lock\n",
	}, nil)

	if !m.IsIgnoredDir("generated") {
		t.Error("generated/ should be ignored via .gitignore")
	}
	if !m.IsIgnored("deps/Cargo.lock") {
		t.Error("*.lock should be ignored via .gitignore")
	}
	if m.IsIgnored("Cargo.toml") {
		t.Error("Cargo.toml should not be ignored")
	}
}

func TestLicetignoreOverrides(t *testing.T) {
	m := newTestMatcher(t, map[string]string{
		".licetignore": "# examples are not shipped\nexamples/\n",
	}, nil)

	if !m.IsIgnoredDir("examples") {
		t.Error("examples/ should be ignored via .licetignore")
	}
	if m.IsIgnored("src/main.rs") {
		t.Error("src/main.rs should not be ignored")
	}
}

func TestEmptyAndRootPaths(t *testing.T) {
	m := newTestMatcher(t, nil, []string{"**/node_modules/**"})

	if m.IsIgnored("") {
		t.Error("empty path must not match")
	}
	if m.IsIgnored(".") {
		t.Error("root path must not match")
	}
}

func TestReadIgnoreFileRejectsOtherNames(t *testing.T) {
	if _, err := readIgnoreFile("/tmp/.gitignore"); err == nil {
		t.Error("expected error for non-licetignore path")
	}
}
