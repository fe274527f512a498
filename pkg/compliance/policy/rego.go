package policy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/licethq/licet/pkg/compliance"
	"github.com/open-policy-agent/opa/v1/rego"
)

const denyQuery = "data.licet.policy.deny"

// transpile converts the declarative policy document into a Rego module.
// Each forbidden license becomes a deny rule producing a violation
// object so the caller can build structured issues from the result.
func transpile(doc Document) string {
	var buf bytes.Buffer

	buf.WriteString("package licet.policy\n\n")

	if len(doc.Licenses.Forbidden) > 0 {
		buf.WriteString("deny contains violation if {\n")
		buf.WriteString("  dep := input.dependencies[_]\n")
		buf.WriteString("  forbidden := ")
		buf.WriteString(formatRegoArray(doc.Licenses.Forbidden))
		buf.WriteString("\n")
		buf.WriteString("  forbidden[_] == dep.license\n")
		buf.WriteString("  violation := {\"package\": dep.name, \"version\": dep.version, \"license\": dep.license}\n")
		buf.WriteString("}\n")
	}

	return buf.String()
}

// formatRegoArray converts identifiers to a quoted Rego array,
// e.g. ["GPL-3.0", "AGPL-3.0"].
func formatRegoArray(items []string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%q", item))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Evaluate runs the policy's deny rules against the classified
// dependency set and returns one high-severity issue per violation.
// Returns an empty, non-nil slice when nothing is denied.
func (p *Policy) Evaluate(ctx context.Context, deps []compliance.ClassifiedDependency) ([]compliance.Issue, error) {
	issues := []compliance.Issue{}
	if len(p.doc.Licenses.Forbidden) == 0 {
		return issues, nil
	}

	input, err := regoInput(deps)
	if err != nil {
		return nil, err
	}

	rs, err := rego.New(
		rego.Query(denyQuery),
		rego.Input(input),
		rego.Module("policy.rego", p.regoCode),
	).Eval(ctx)
	if err != nil {
		return nil, fmt.Errorf("evaluate policy: %w", err)
	}

	for _, re := range rs {
		for _, expr := range re.Expressions {
			violations, ok := expr.Value.([]interface{})
			if !ok {
				continue
			}
			for _, v := range violations {
				fields, ok := v.(map[string]interface{})
				if !ok {
					continue
				}
				issues = append(issues, violationIssue(fields))
			}
		}
	}

	return issues, nil
}

// regoInput round-trips dependencies through JSON so the policy sees
// the same field names the report serializes.
func regoInput(deps []compliance.ClassifiedDependency) (interface{}, error) {
	if deps == nil {
		deps = []compliance.ClassifiedDependency{}
	}
	data, err := json.Marshal(map[string]interface{}{"dependencies": deps})
	if err != nil {
		return nil, fmt.Errorf("encode policy input: %w", err)
	}
	var input interface{}
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("encode policy input: %w", err)
	}
	return input, nil
}

func violationIssue(fields map[string]interface{}) compliance.Issue {
	name, _ := fields["package"].(string)
	version, _ := fields["version"].(string)
	license, _ := fields["license"].(string)

	ref := name
	if version != "" {
		ref = fmt.Sprintf("%s v%s", name, version)
	}

	return compliance.Issue{
		Title:          "License Policy Violation",
		Package:        ref,
		Description:    fmt.Sprintf("License %s is forbidden by organization policy", license),
		Severity:       compliance.SeverityHigh,
		Recommendation: fmt.Sprintf("Remove %s or obtain a policy exception before release", name),
	}
}
