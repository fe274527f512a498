package compliance

import "fmt"

// DetectIssues scans classified dependencies for findings that require
// human attention. Issues come back in detection order (the dependency
// list order); any re-sorting by severity is the presentation layer's
// job. A dependency may contribute more than one issue; low and
// non-unknown medium tiers contribute none, keeping the list
// proportional to actionable risk.
func DetectIssues(deps []ClassifiedDependency) []Issue {
	issues := []Issue{}
	for _, dep := range deps {
		switch dep.Risk {
		case TierHigh:
			issues = append(issues, Issue{
				Title:       fmt.Sprintf("%s Conflict", dep.License),
				Package:     packageRef(dep),
				Description: "Strong copyleft license requires source code disclosure",
				Severity:    SeverityHigh,
				Recommendation: fmt.Sprintf(
					"Review legal obligations before distribution; consider replacing %s with a permissive-licensed alternative",
					dep.Name),
			})
		case TierUnknown:
			issues = append(issues, Issue{
				Title:       "Unidentified license",
				Package:     packageRef(dep),
				Description: "Cannot determine usage rights for this dependency",
				Severity:    SeverityMedium,
				Recommendation: fmt.Sprintf(
					"Manually verify license terms for %s before use in production", dep.Name),
			})
		}
	}
	return issues
}

// packageRef renders the "name vX.Y.Z" form used in issue records.
// Version may be absent.
func packageRef(dep ClassifiedDependency) string {
	if dep.Version == "" {
		return dep.Name
	}
	return fmt.Sprintf("%s v%s", dep.Name, dep.Version)
}
