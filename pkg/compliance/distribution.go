package compliance

import "math"

// UnknownLicenseKey is the distribution bucket for dependencies whose
// license is absent.
const UnknownLicenseKey = "Unknown"

// Distribution counts dependencies per raw license string. The raw
// string is the grouping key on purpose: two packages with differently
// spelled but equivalent license text land in separate buckets, because
// normalization is the license-resolution collaborator's concern, not
// this model's. The sum of all counts always equals len(deps).
func Distribution(deps []ClassifiedDependency) map[string]int {
	dist := make(map[string]int)
	for _, dep := range deps {
		key := dep.License
		if key == "" {
			key = UnknownLicenseKey
		}
		dist[key]++
	}
	return dist
}

// Percentage derives a bucket's share of the total, rounded to one
// decimal place. Derived at render time rather than stored so counts
// and percentages cannot drift apart.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// RiskyBucket reports whether a distribution bucket should be flagged
// for display. The risk table is the single authority: a bucket is
// risky when classifying its key yields high or unknown, which covers
// both the copyleft families (via the table's substring fallbacks) and
// the Unknown bucket.
func RiskyBucket(table *RiskTable, key string) bool {
	if key == UnknownLicenseKey {
		return true
	}
	risk, ok := table.Lookup(key)
	if !ok {
		return true
	}
	return risk.Tier == TierHigh
}
