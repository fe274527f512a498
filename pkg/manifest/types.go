// Package manifest discovers and parses dependency manifests, producing
// the raw dependency facts the compliance model consumes. Each parser
// covers one manifest format; none of them resolve licenses from
// registries, so a fact's license stays absent unless the caller
// supplies a resolver for it.
package manifest

import "github.com/licethq/licet/pkg/compliance"

// Display names used in the language field of emitted facts.
const (
	LanguageJavaScript = "JavaScript"
	LanguagePython     = "Python"
	LanguageJava       = "Java"
	LanguageRust       = "Rust"
	LanguageGo         = "Go"
)

// Parser parses one manifest format into dependency facts.
type Parser interface {
	// Language is the display language for facts this parser emits.
	Language() string
	// Filenames are the manifest basenames this parser handles.
	Filenames() []string
	// Parse reads the manifest at path. A malformed manifest is an
	// error, never a source of synthetic facts.
	Parse(path string) ([]compliance.DependencyFact, error)
}

// Parsers returns all built-in parsers. The slice order is the
// detection order used by discovery.
func Parsers() []Parser {
	return []Parser{
		NewNPMParser(),
		NewRequirementsParser(),
		NewPyProjectParser(),
		NewPomParser(),
		NewCargoParser(),
		NewGoModParser(),
	}
}

// ParserFor returns the parser handling the given manifest basename.
func ParserFor(filename string) (Parser, bool) {
	for _, p := range Parsers() {
		for _, name := range p.Filenames() {
			if name == filename {
				return p, true
			}
		}
	}
	return nil, false
}
