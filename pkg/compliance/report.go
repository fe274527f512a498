package compliance

import "sort"

// AssembleReport composes the full compliance report from an
// already-classified dependency sequence. It never fails on well-formed
// input and has no side effects; running it twice over the same input
// yields identical reports (languages are sorted, map buckets carry no
// ordering of their own).
func AssembleReport(deps []ClassifiedDependency) Report {
	dist := Distribution(deps)

	langSet := make(map[string]struct{})
	for _, dep := range deps {
		if dep.Language != "" {
			langSet[dep.Language] = struct{}{}
		}
	}
	languages := make([]string, 0, len(langSet))
	for lang := range langSet {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	ordered := deps
	if ordered == nil {
		ordered = []ClassifiedDependency{}
	}

	return Report{
		TotalDependencies:   len(deps),
		UniqueLicenses:      len(dist),
		Languages:           languages,
		RiskLevel:           ProjectRisk(deps),
		Issues:              DetectIssues(deps),
		LicenseDistribution: dist,
		Dependencies:        ordered,
	}
}

// ProjectRisk is the maximum-severity tier present across the
// dependencies under the aggregation order high > unknown > medium >
// low. An empty project is low risk.
func ProjectRisk(deps []ClassifiedDependency) RiskTier {
	level := TierLow
	for _, dep := range deps {
		level = MaxTier(level, dep.Risk)
	}
	return level
}
