package compliance

import (
	"sort"
	"strings"
)

// LicenseRisk is the tier and rationale the risk table records for a
// known license identifier.
type LicenseRisk struct {
	Tier      RiskTier
	Rationale string
}

// FallbackRule is an ordered substring heuristic applied when no exact
// identifier matches. Rules exist to catch family variants such as
// "GPL-3.0-or-later" or vendor-spelled GPL strings. A rule may only
// raise severity toward high; rules that would classify below unknown
// are ignored at lookup time.
type FallbackRule struct {
	Marker    string // matched case-insensitively against the identifier
	Tier      RiskTier
	Rationale string
}

// RiskTable maps license identifiers to risk tiers. Exact matches are
// case-sensitive on SPDX-style identifiers and always win over the
// fallback rules. The table is immutable once built.
type RiskTable struct {
	exact     map[string]LicenseRisk
	fallbacks []FallbackRule
}

// NewRiskTable builds a table from an identifier map and ordered
// fallback rules. The input map is copied.
func NewRiskTable(exact map[string]LicenseRisk, fallbacks []FallbackRule) *RiskTable {
	m := make(map[string]LicenseRisk, len(exact))
	for k, v := range exact {
		m[k] = v
	}
	return &RiskTable{exact: m, fallbacks: append([]FallbackRule(nil), fallbacks...)}
}

// Lookup returns the risk recorded for the identifier. ok is false when
// the identifier is unrecognized; absence of knowledge is a reportable
// state, not an error, so Lookup never fails.
func (t *RiskTable) Lookup(identifier string) (LicenseRisk, bool) {
	if risk, ok := t.exact[identifier]; ok {
		return risk, true
	}

	upper := strings.ToUpper(identifier)
	for _, rule := range t.fallbacks {
		if rule.Tier.SeverityRank() <= TierUnknown.SeverityRank() {
			// A substring match may only raise severity; a rule that
			// would classify below unknown is inert.
			continue
		}
		if strings.Contains(upper, strings.ToUpper(rule.Marker)) {
			return LicenseRisk{Tier: rule.Tier, Rationale: rule.Rationale}, true
		}
	}

	return LicenseRisk{Tier: TierUnknown}, false
}

// Known returns the exact-match identifiers in sorted order.
func (t *RiskTable) Known() []string {
	ids := make([]string, 0, len(t.exact))
	for id := range t.exact {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Override returns a copy of the table with the given identifier pinned
// to the given risk. Used by the policy overlay; the receiver is not
// modified.
func (t *RiskTable) Override(identifier string, risk LicenseRisk) *RiskTable {
	next := NewRiskTable(t.exact, t.fallbacks)
	next.exact[identifier] = risk
	return next
}

const (
	rationalePermissive   = "Permissive license; attribution requirements only"
	rationaleWeakCopyleft = "Weak copyleft; obligations attach to modified files or linked modules"
	rationaleCopyleft     = "Strong copyleft; derivative works must be distributed under the same terms"
	rationaleNetwork      = "Network copyleft; obligations extend to software accessed over a network"
)

// DefaultRiskTable returns the built-in lookup authority. The exact set
// covers the common SPDX identifiers; the fallback rules catch copyleft
// family variants by substring.
func DefaultRiskTable() *RiskTable {
	return NewRiskTable(map[string]LicenseRisk{
		"MIT":          {TierLow, rationalePermissive},
		"ISC":          {TierLow, rationalePermissive},
		"Apache-2.0":   {TierLow, rationalePermissive},
		"BSD-2-Clause": {TierLow, rationalePermissive},
		"BSD-3-Clause": {TierLow, rationalePermissive},
		"0BSD":         {TierLow, rationalePermissive},
		"Zlib":         {TierLow, rationalePermissive},
		"Unlicense":    {TierLow, "Public-domain dedication; no obligations"},
		"CC0-1.0":      {TierLow, "Public-domain dedication; no obligations"},

		"MPL-2.0":           {TierMedium, rationaleWeakCopyleft},
		"EPL-2.0":           {TierMedium, rationaleWeakCopyleft},
		"CDDL-1.0":          {TierMedium, rationaleWeakCopyleft},
		"LGPL-2.1":          {TierMedium, rationaleWeakCopyleft},
		"LGPL-2.1-only":     {TierMedium, rationaleWeakCopyleft},
		"LGPL-2.1-or-later": {TierMedium, rationaleWeakCopyleft},
		"LGPL-3.0":          {TierMedium, rationaleWeakCopyleft},
		"LGPL-3.0-only":     {TierMedium, rationaleWeakCopyleft},
		"LGPL-3.0-or-later": {TierMedium, rationaleWeakCopyleft},

		"GPL-2.0":           {TierHigh, rationaleCopyleft},
		"GPL-2.0-only":      {TierHigh, rationaleCopyleft},
		"GPL-2.0-or-later":  {TierHigh, rationaleCopyleft},
		"GPL-3.0":           {TierHigh, rationaleCopyleft},
		"GPL-3.0-only":      {TierHigh, rationaleCopyleft},
		"GPL-3.0-or-later":  {TierHigh, rationaleCopyleft},
		"AGPL-3.0":          {TierHigh, rationaleNetwork},
		"AGPL-3.0-only":     {TierHigh, rationaleNetwork},
		"AGPL-3.0-or-later": {TierHigh, rationaleNetwork},
		"SSPL-1.0":          {TierHigh, rationaleNetwork},
	}, []FallbackRule{
		// Order matters: AGPL before GPL so the rationale is specific.
		{Marker: "AGPL", Tier: TierHigh, Rationale: rationaleNetwork},
		{Marker: "GPL", Tier: TierHigh, Rationale: rationaleCopyleft},
		{Marker: "SSPL", Tier: TierHigh, Rationale: rationaleNetwork},
	})
}
