package manifest

import (
	"fmt"
	"os"
	"sort"

	"github.com/licethq/licet/pkg/compliance"
	"github.com/pelletier/go-toml/v2"
)

// CargoParser parses Cargo.toml manifests.
type CargoParser struct{}

func NewCargoParser() *CargoParser { return &CargoParser{} }

func (p *CargoParser) Language() string    { return LanguageRust }
func (p *CargoParser) Filenames() []string { return []string{"Cargo.toml"} }

type cargoManifest struct {
	Dependencies    map[string]interface{} `toml:"dependencies"`
	DevDependencies map[string]interface{} `toml:"dev-dependencies"`
}

func (p *CargoParser) Parse(path string) ([]compliance.DependencyFact, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from manifest discovery
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	all := make(map[string]string, len(m.Dependencies)+len(m.DevDependencies))
	for name, spec := range m.Dependencies {
		all[name] = cargoVersion(spec)
	}
	for name, spec := range m.DevDependencies {
		all[name] = cargoVersion(spec)
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
			Version:  all[name],
			Language: LanguageRust,
		})
	}
	return facts, nil
}

// cargoVersion extracts the version from either the shorthand string
// form (serde = "1.0") or the table form (serde = { version = "1.0" }).
// Path and git dependencies have no registry version.
func cargoVersion(spec interface{}) string {
	switch v := spec.(type) {
	case string:
		return v
	case map[string]interface{}:
		if version, ok := v["version"].(string); ok {
			return version
		}
	}
	return ""
}
