package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/licethq/licet/pkg/compliance"
)

// NPMParser parses package.json manifests.
type NPMParser struct{}

func NewNPMParser() *NPMParser { return &NPMParser{} }

func (p *NPMParser) Language() string    { return LanguageJavaScript }
func (p *NPMParser) Filenames() []string { return []string{"package.json"} }

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Parse reads dependencies and devDependencies. package.json declares
// the project's own license, not its dependencies' licenses, so the
// emitted facts carry no license; a resolver fills that in when one is
// configured.
func (p *NPMParser) Parse(path string) ([]compliance.DependencyFact, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from manifest discovery
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	all := make(map[string]string, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for name, version := range pkg.Dependencies {
		all[name] = version
	}
	for name, version := range pkg.DevDependencies {
		all[name] = version
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	facts := make([]compliance.DependencyFact, 0, len(names))
	for _, name := range names {
		facts = append(facts, compliance.DependencyFact{
			Name:     name,
			Version:  cleanSemverRange(all[name]),
			Language: LanguageJavaScript,
		})
	}
	return facts, nil
}

// cleanSemverRange strips npm range markers so "^1.2.3" reads as the
// concrete "1.2.3". Wildcards and tags ("*", "latest") carry no version
// information and map to absent.
func cleanSemverRange(version string) string {
	v := strings.TrimSpace(version)
	v = strings.TrimPrefix(v, "^")
	v = strings.TrimPrefix(v, "~")
	v = strings.TrimPrefix(v, ">=")
	v = strings.TrimPrefix(v, "<=")
	v = strings.TrimSpace(v)
	if v == "*" || v == "latest" || v == "" {
		return ""
	}
	return v
}
