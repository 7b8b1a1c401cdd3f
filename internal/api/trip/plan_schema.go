package trip

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// planSchema is the shape contract for a plan document. It is checked
// against the raw JSON, not the decoded struct, because the decode layer
// backfills missing lists and would mask a document that omitted them.
// The model sometimes emits the plan bare, without the travel_plan
// wrapper, so both forms are accepted.
const planSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"definitions": {
		"plan": {
			"type": "object",
			"properties": {
				"location": {"type": "string"},
				"duration": {"type": "string"},
				"traveler_type": {"type": "string"},
				"budget": {"type": "string"},
				"attraction_focus": {"type": "string"},
				"flight_details": {"type": ["object", "null"]},
				"hotels": {
					"type": "array",
					"items": {"type": "object"}
				},
				"daily_plan": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"activities": {
								"type": "array",
								"items": {"type": "object"}
							}
						},
						"required": ["activities"]
					}
				}
			},
			"required": ["hotels", "daily_plan"]
		}
	},
	"anyOf": [
		{
			"type": "object",
			"properties": {
				"travel_plan": {"$ref": "#/definitions/plan"}
			},
			"required": ["travel_plan"]
		},
		{"$ref": "#/definitions/plan"}
	]
}`

var (
	schemaOnce   sync.Once
	schemaLoaded *gojsonschema.Schema
	schemaErr    error
)

func loadPlanSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schemaLoaded, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(planSchema))
	})
	return schemaLoaded, schemaErr
}

// validatePlanDocument checks a raw JSON plan document against the shape
// contract. Used on the normalizer's decode candidates and on user-edited
// plans submitted over HTTP.
func validatePlanDocument(doc []byte) error {
	schema, err := loadPlanSchema()
	if err != nil {
		return fmt.Errorf("load plan schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validate plan: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("plan shape validation failed: %v", errs)
	}
	return nil
}
