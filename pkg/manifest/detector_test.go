package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
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
	return root
}

func TestDiscoverFindsKnownManifests(t *testing.T) {
	root := writeTree(t, map[string]string{
		"package.json":         `{}`,
		"requirements.txt":     ``,
		"backend/go.mod":       "module example.com/backend\n",
		"frontend/Cargo.toml":  ``,
		"docs/readme.md":       ``,
		"backend/unrelated.go": ``,
	})

	discoveries, err := Discover(root, 3)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(discoveries) != 4 {
		t.Fatalf("expected 4 manifests, got %d: %v", len(discoveries), discoveries)
	}

	// Sorted by path, each bound to the right parser.
	languages := map[string]string{}
	for _, d := range discoveries {
		languages[filepath.Base(d.Path)] = d.Parser.Language()
	}
	if languages["package.json"] != LanguageJavaScript {
		t.Errorf("package.json bound to %q", languages["package.json"])
	}
	if languages["go.mod"] != LanguageGo {
		t.Errorf("go.mod bound to %q", languages["go.mod"])
	}
}

func TestDiscoverSkipsDependencyTrees(t *testing.T) {
	root := writeTree(t, map[string]string{
		"package.json":                       `{}`,
		"node_modules/left-pad/package.json": `{}`,
		"vendor/some/module/go.mod":          "module vendored\n",
		".git/package.json":                  `{}`,
	})

	discoveries, err := Discover(root, 5)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(discoveries) != 1 {
		t.Fatalf("expected only the project manifest, got %d: %v", len(discoveries), discoveries)
	}
}

func TestDiscoverHonorsMaxDepth(t *testing.T) {
	root := writeTree(t, map[string]string{
		"package.json":              `{}`,
		"a/b/c/d/e/f/Cargo.toml":    ``,
		"shallow/requirements.txt":  ``,
		"shallow/nested/deeper.txt": ``,
	})

	discoveries, err := Discover(root, 1)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(discoveries) != 2 {
		t.Fatalf("expected 2 manifests within depth 1, got %d: %v", len(discoveries), discoveries)
	}
}

func TestDiscoverHonorsIgnoreFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"package.json":          `{}`,
		".licetignore":          "examples/\n",
		".gitignore":            "sandbox/\n",
		"examples/package.json": `{}`,
		"sandbox/go.mod":        "module sandbox\n",
	})

	discoveries, err := Discover(root, 3)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(discoveries) != 1 {
		t.Fatalf("expected only the project manifest, got %d: %v", len(discoveries), discoveries)
	}
	if filepath.Base(discoveries[0].Path) != "package.json" {
		t.Errorf("unexpected manifest %s", discoveries[0].Path)
	}
}

func TestDiscoverRejectsNonDirectory(t *testing.T) {
	path := writeFixture(t, "package.json", `{}`)
	if _, err := Discover(path, 1); err == nil {
		t.Error("expected error when target is a file")
	}
}

func TestParserFor(t *testing.T) {
	tests := []struct {
		filename string
		language string
		found    bool
	}{
		{"package.json", LanguageJavaScript, true},
		{"requirements.txt", LanguagePython, true},
		{"pyproject.toml", LanguagePython, true},
		{"pom.xml", LanguageJava, true},
		{"Cargo.toml", LanguageRust, true},
		{"go.mod", LanguageGo, true},
		{"Gemfile", "", false},
	}

	for _, tt := range tests {
		parser, ok := ParserFor(tt.filename)
		if ok != tt.found {
			t.Errorf("ParserFor(%q) found = %v, want %v", tt.filename, ok, tt.found)
			continue
		}
		if ok && parser.Language() != tt.language {
			t.Errorf("ParserFor(%q).Language() = %q, want %q", tt.filename, parser.Language(), tt.language)
		}
	}
}
