package policy

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema validates policy documents before they are trusted.
// Unknown top-level keys are rejected so a typo like "forbiden" fails
// loudly instead of silently allowing everything.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version"],
  "additionalProperties": false,
  "properties": {
    "version": {"type": "string"},
    "licenses": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "forbidden": {
          "type": "array",
          "items": {"type": "string", "minLength": 1}
        },
        "overrides": {
          "type": "object",
          "additionalProperties": {
            "type": "string",
            "enum": ["low", "medium", "high", "unknown"]
          }
        }
      }
    }
  }
}`

func validateSchema(raw map[string]interface{}) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(documentSchema),
		gojsonschema.NewGoLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("validate policy: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("invalid policy document: %s", strings.Join(problems, "; "))
	}
	return nil
}
