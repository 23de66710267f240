package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// catalogSchema is the JSON Schema every catalog file must satisfy before
// structural validation runs. It catches shape errors (missing fields, wrong
// types) with better messages than decode failures.
var catalogSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"passages": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":         map[string]any{"type": "string", "minLength": 1},
					"title":      map[string]any{"type": "string", "minLength": 1},
					"genre":      map[string]any{"type": "string"},
					"difficulty": map[string]any{"enum": []any{"easy", "medium", "hard"}},
					"body":       map[string]any{"type": "string", "minLength": 1},
					"questions": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":       map[string]any{"type": "string", "minLength": 1},
								"skill_id": map[string]any{"type": "integer", "minimum": 1, "maximum": 15},
								"stem":     map[string]any{"type": "string", "minLength": 1},
								"choices": map[string]any{
									"type":     "array",
									"minItems": 4,
									"maxItems": 4,
									"items":    map[string]any{"type": "string", "minLength": 1},
								},
								"correct_index": map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
								"explanation":   map[string]any{"type": "string"},
							},
							"required":             []any{"id", "skill_id", "stem", "choices", "correct_index"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"id", "title", "difficulty", "body", "questions"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"passages"},
	"additionalProperties": false,
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiled returns the compiled catalog schema, compiling it on first use.
func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(catalogSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://catalog.json", defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("schema://catalog.json")
	})
	return compiledSchema, compileErr
}

// validateShape checks raw catalog JSON against the schema.
func validateShape(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ValidationError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	schema, err := compiled()
	if err != nil {
		return err
	}

	if err := schema.Validate(parsed); err != nil {
		return &ValidationError{Reason: fmt.Sprintf("schema validation failed: %v", err)}
	}
	return nil
}
