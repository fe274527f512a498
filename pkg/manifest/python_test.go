package manifest

import "testing"

func TestRequirementsParse(t *testing.T) {
	path := writeFixture(t, "requirements.txt", `# comment line
requests==2.31.0
flask>=2.0
django[argon2]==4.2.1

-r dev-requirements.txt
numpy ; python_version >= "3.9"
`)

	facts, err := NewRequirementsParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(facts) != 4 {
		t.Fatalf("expected 4 facts, got %d: %v", len(facts), facts)
	}

	tests := []struct {
		name    string
		version string
	}{
		{"requests", "2.31.0"},
		{"flask", ""}, // range pins carry no concrete version
		{"django", "4.2.1"},
		{"numpy", ""},
	}
	for i, tt := range tests {
		if facts[i].Name != tt.name || facts[i].Version != tt.version {
			t.Errorf("fact %d = %s@%q, want %s@%q", i, facts[i].Name, facts[i].Version, tt.name, tt.version)
		}
		if facts[i].Language != LanguagePython {
			t.Errorf("fact %d language = %q", i, facts[i].Language)
		}
	}
}

func TestPyProjectParse(t *testing.T) {
	path := writeFixture(t, "pyproject.toml", `[project]
name = "demo"
dependencies = [
  "httpx==0.27.0",
  "pydantic>=2.0",
  "rich",
]
`)

	facts, err := NewPyProjectParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(facts) != 3 {
		t.Fatalf("expected 3 facts, got %d", len(facts))
	}
	if facts[0].Name != "httpx" || facts[0].Version != "0.27.0" {
		t.Errorf("pinned requirement parsed as %s@%q", facts[0].Name, facts[0].Version)
	}
	if facts[2].Name != "rich" || facts[2].Version != "" {
		t.Errorf("bare requirement parsed as %s@%q", facts[2].Name, facts[2].Version)
	}
}

func TestPyProjectParseMalformed(t *testing.T) {
	path := writeFixture(t, "pyproject.toml", `[project
broken`)
	if _, err := NewPyProjectParser().Parse(path); err == nil {
		t.Error("expected error for malformed pyproject.toml")
	}
}
