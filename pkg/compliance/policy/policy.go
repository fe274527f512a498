// Package policy implements an optional organization policy overlay on
// top of the built-in risk table: tier overrides for named license
// identifiers and a forbidden-license list evaluated through an
// embedded Rego engine.
package policy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/licethq/licet/pkg/compliance"
	"gopkg.in/yaml.v3"
)

// Document is the parsed policy file.
type Document struct {
	Version  string   `yaml:"version"`
	Licenses Licenses `yaml:"licenses"`
}

// Licenses holds the license rules of a policy document.
type Licenses struct {
	// Forbidden licenses yield a high-severity issue per dependency.
	Forbidden []string `yaml:"forbidden"`
	// Overrides pin identifiers to a tier, exact-match only.
	Overrides map[string]string `yaml:"overrides"`
}

// Policy is a loaded, validated policy ready for evaluation.
type Policy struct {
	doc      Document
	regoCode string
}

// Load reads, schema-validates, and parses a policy file.
func Load(source string) (*Policy, error) {
	data, err := os.ReadFile(filepath.Clean(source)) // #nosec G304 -- path supplied by operator
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	return Parse(data)
}

// Parse validates and parses raw policy YAML.
func Parse(data []byte) (*Policy, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}

	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}

	for identifier, tier := range doc.Licenses.Overrides {
		if compliance.RiskTier(tier).SeverityRank() < 0 {
			return nil, fmt.Errorf("policy override for %s has invalid tier %q", identifier, tier)
		}
	}

	return &Policy{doc: doc, regoCode: transpile(doc)}, nil
}

// ApplyOverrides returns the risk table with the policy's tier pins
// applied. The base table is not modified.
func (p *Policy) ApplyOverrides(base *compliance.RiskTable) *compliance.RiskTable {
	table := base
	for identifier, tier := range p.doc.Licenses.Overrides {
		table = table.Override(identifier, compliance.LicenseRisk{
			Tier:      compliance.RiskTier(tier),
			Rationale: "Pinned by organization policy",
		})
	}
	return table
}

// Forbidden returns the forbidden license identifiers.
func (p *Policy) Forbidden() []string {
	return append([]string(nil), p.doc.Licenses.Forbidden...)
}
