// Package compliance implements the license risk classification and
// aggregation model: raw dependency facts in, a single risk report out.
// Everything in this package is a pure transformation over in-memory
// values; there is no I/O and no shared state.
package compliance

// RiskTier is the four-valued risk classification assigned to a license
// or dependency.
type RiskTier string

const (
	TierLow     RiskTier = "low"
	TierMedium  RiskTier = "medium"
	TierHigh    RiskTier = "high"
	TierUnknown RiskTier = "unknown"
)

// severityRank is the explicit total order used when aggregating tiers.
// The order is NOT lexicographic and NOT the enum declaration order:
// an unrecognized license is more severe than a merely "medium" one,
// but less actionable than a confirmed high-risk license.
var severityRank = map[RiskTier]int{
	TierLow:     0,
	TierMedium:  1,
	TierUnknown: 2,
	TierHigh:    3,
}

// SeverityRank returns the tier's position in the aggregation order
// (high > unknown > medium > low). Unlisted values rank below low.
func (t RiskTier) SeverityRank() int {
	if r, ok := severityRank[t]; ok {
		return r
	}
	return -1
}

// MaxTier returns the more severe of two tiers under the aggregation order.
func MaxTier(a, b RiskTier) RiskTier {
	if b.SeverityRank() > a.SeverityRank() {
		return b
	}
	return a
}

// DependencyFact is one raw (package, version, license, language) record
// produced by manifest discovery. An empty Version or License means the
// value is absent, not empty-string-licensed. Facts are never merged:
// duplicates contribute separately to every aggregate.
type DependencyFact struct {
	Name     string `json:"name"`
	Version  string `json:"version,omitempty"`
	License  string `json:"license,omitempty"`
	Language string `json:"language"`
}

// ClassifiedDependency is a DependencyFact plus its assigned risk tier.
type ClassifiedDependency struct {
	DependencyFact
	Risk RiskTier `json:"risk"`
}

// IssueSeverity is the severity of a reported compliance issue.
type IssueSeverity string

const (
	SeverityLow    IssueSeverity = "low"
	SeverityMedium IssueSeverity = "medium"
	SeverityHigh   IssueSeverity = "high"
)

// Issue is a single human-actionable compliance finding tied to one
// dependency. Issues are emitted in detection order and never
// deduplicated across packages.
type Issue struct {
	Title          string        `json:"title"`
	Package        string        `json:"package"`
	Description    string        `json:"description"`
	Severity       IssueSeverity `json:"severity"`
	Recommendation string        `json:"recommendation"`
}

// Report is the complete compliance report consumed by presentation and
// export layers. It is immutable after assembly and owned by the caller.
// Percentages and risky-bucket flags are derived by consumers from
// LicenseDistribution and TotalDependencies; they are deliberately not
// stored here to avoid a second source of truth.
type Report struct {
	TotalDependencies   int                    `json:"total_dependencies"`
	UniqueLicenses      int                    `json:"unique_licenses"`
	Languages           []string               `json:"languages"`
	RiskLevel           RiskTier               `json:"risk_level"`
	Issues              []Issue                `json:"issues"`
	LicenseDistribution map[string]int         `json:"license_distribution"`
	Dependencies        []ClassifiedDependency `json:"dependencies"`
}
