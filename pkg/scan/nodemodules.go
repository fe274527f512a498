package scan

import (
	"encoding/json"
	"path/filepath"

	"github.com/licethq/licet/pkg/compliance"
	"github.com/licethq/licet/pkg/manifest"
	"github.com/licethq/licet/pkg/safeio"
)

// NodeModulesResolver reads license declarations from an installed
// node_modules tree. Installed packages carry the license the manifest
// omits, so a scan of a checked-out JavaScript project can classify
// without network access.
type NodeModulesResolver struct {
	root string
}

// NewNodeModulesResolver resolves against root/node_modules.
func NewNodeModulesResolver(root string) *NodeModulesResolver {
	return &NodeModulesResolver{root: root}
}

func (r *NodeModulesResolver) Resolve(fact compliance.DependencyFact) (string, bool) {
	if fact.Language != manifest.LanguageJavaScript || fact.Name == "" {
		return "", false
	}

	// Package names are untrusted input; containment keeps a crafted
	// name from reading outside the scan target.
	path := filepath.Join(r.root, "node_modules", filepath.FromSlash(fact.Name), "package.json")
	data, err := safeio.ReadFileContained(r.root, path)
	if err != nil {
		return "", false
	}

	var meta struct {
		License json.RawMessage `json:"license"`
	}
	if err := json.Unmarshal(data, &meta); err != nil || len(meta.License) == 0 {
		return "", false
	}

	// Either a bare SPDX string or the legacy {"type": "...", "url": ...} object.
	var license string
	if err := json.Unmarshal(meta.License, &license); err == nil && license != "" {
		return license, true
	}
	var legacy struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(meta.License, &legacy); err == nil && legacy.Type != "" {
		return legacy.Type, true
	}
	return "", false
}
