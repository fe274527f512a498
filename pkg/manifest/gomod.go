package manifest

import (
	"fmt"
	"os"

	"github.com/licethq/licet/pkg/compliance"
	"golang.org/x/mod/modfile"
)

// GoModParser parses go.mod manifests.
type GoModParser struct{}

func NewGoModParser() *GoModParser { return &GoModParser{} }

func (p *GoModParser) Language() string    { return LanguageGo }
func (p *GoModParser) Filenames() []string { return []string{"go.mod"} }

func (p *GoModParser) Parse(path string) ([]compliance.DependencyFact, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from manifest discovery
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	file, err := modfile.ParseLax(path, data, nil)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	facts := make([]compliance.DependencyFact, 0, len(file.Require))
	for _, require := range file.Require {
		facts = append(facts, compliance.DependencyFact{
			Name:     require.Mod.Path,
			Version:  require.Mod.Version,
			Language: LanguageGo,
		})
	}
	return facts, nil
}
