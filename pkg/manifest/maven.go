package manifest

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/licethq/licet/pkg/compliance"
)

// PomParser parses Maven pom.xml manifests.
type PomParser struct{}

func NewPomParser() *PomParser { return &PomParser{} }

func (p *PomParser) Language() string    { return LanguageJava }
func (p *PomParser) Filenames() []string { return []string{"pom.xml"} }

func (p *PomParser) Parse(path string) ([]compliance.DependencyFact, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "project" {
		return nil, fmt.Errorf("parse %s: not a Maven project document", path)
	}

	var facts []compliance.DependencyFact
	for _, dep := range root.FindElements("//dependency") {
		groupID := childText(dep, "groupId")
		artifactID := childText(dep, "artifactId")
		if groupID == "" || artifactID == "" {
			continue
		}
		facts = append(facts, compliance.DependencyFact{
			Name:     groupID + ":" + artifactID,
			Version:  pomVersion(childText(dep, "version")),
			Language: LanguageJava,
		})
	}
	return facts, nil
}

func childText(parent *etree.Element, tag string) string {
	if child := parent.SelectElement(tag); child != nil {
		return strings.TrimSpace(child.Text())
	}
	return ""
}

// pomVersion treats property placeholders like "${spring.version}" as
// absent; the literal placeholder is not a version.
func pomVersion(version string) string {
	if strings.HasPrefix(version, "${") {
		return ""
	}
	return version
}
