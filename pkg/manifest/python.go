package manifest

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/licethq/licet/pkg/compliance"
	"github.com/pelletier/go-toml/v2"
)

// RequirementsParser parses requirements.txt manifests.
type RequirementsParser struct{}

func NewRequirementsParser() *RequirementsParser { return &RequirementsParser{} }

func (p *RequirementsParser) Language() string    { return LanguagePython }
func (p *RequirementsParser) Filenames() []string { return []string{"requirements.txt"} }

func (p *RequirementsParser) Parse(path string) ([]compliance.DependencyFact, error) {
	file, err := os.Open(path) // #nosec G304 -- path comes from manifest discovery
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	var facts []compliance.DependencyFact
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			// "-r other.txt" and pip option lines are not requirements.
			continue
		}
		name, version := splitRequirement(line)
		if name == "" {
			continue
		}
		facts = append(facts, compliance.DependencyFact{
			Name:     name,
			Version:  version,
			Language: LanguagePython,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return facts, nil
}

// splitRequirement splits a PEP 508-style requirement line into name
// and version. Only pinned versions ("==") carry a usable version;
// ranges are recorded as absent.
func splitRequirement(line string) (name, version string) {
	// Drop environment markers and inline comments.
	if i := strings.IndexAny(line, ";#"); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)

	for _, op := range []string{"==", ">=", "<=", "~=", "!=", ">", "<"} {
		if i := strings.Index(line, op); i >= 0 {
			name = strings.TrimSpace(line[:i])
			if op == "==" {
				version = strings.TrimSpace(line[i+len(op):])
			}
			return trimExtras(name), version
		}
	}
	return trimExtras(line), ""
}

// trimExtras removes an extras suffix such as "requests[security]".
func trimExtras(name string) string {
	if i := strings.Index(name, "["); i >= 0 {
		return name[:i]
	}
	return name
}

// PyProjectParser parses pyproject.toml manifests (PEP 621 projects).
type PyProjectParser struct{}

func NewPyProjectParser() *PyProjectParser { return &PyProjectParser{} }

func (p *PyProjectParser) Language() string    { return LanguagePython }
func (p *PyProjectParser) Filenames() []string { return []string{"pyproject.toml"} }

type pyProject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

func (p *PyProjectParser) Parse(path string) ([]compliance.DependencyFact, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from manifest discovery
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var proj pyProject
	if err := toml.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var facts []compliance.DependencyFact
	for _, requirement := range proj.Project.Dependencies {
		name, version := splitRequirement(requirement)
		if name == "" {
			continue
		}
		facts = append(facts, compliance.DependencyFact{
			Name:     name,
			Version:  version,
			Language: LanguagePython,
		})
	}
	return facts, nil
}
