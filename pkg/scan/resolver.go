package scan

import "github.com/licethq/licet/pkg/compliance"

// LicenseResolver fills in license identifiers for dependencies whose
// manifest does not declare one. Implementations may consult lockfiles,
// vendored metadata, or curated datasets; the scanner treats them as a
// best-effort source and keeps the license absent when resolution fails.
type LicenseResolver interface {
	Resolve(fact compliance.DependencyFact) (license string, ok bool)
}

// StaticResolver resolves licenses from a fixed name-to-identifier map.
// Useful for curated allowlists and for tests.
type StaticResolver map[string]string

func (r StaticResolver) Resolve(fact compliance.DependencyFact) (string, bool) {
	license, ok := r[fact.Name]
	if !ok || license == "" {
		return "", false
	}
	return license, true
}

// ChainResolver tries each resolver in order and returns the first hit.
type ChainResolver []LicenseResolver

func (c ChainResolver) Resolve(fact compliance.DependencyFact) (string, bool) {
	for _, r := range c {
		if license, ok := r.Resolve(fact); ok {
			return license, true
		}
	}
	return "", false
}
