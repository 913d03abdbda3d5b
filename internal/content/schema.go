package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const setSchemaURL = "schema://card-set.json"

// setSchema is the JSON Schema every card set document must satisfy.
var setSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "title", "cards"},
	"properties": map[string]any{
		"id": map[string]any{
			"type":    "string",
			"pattern": "^[a-z0-9][a-z0-9-]*$",
		},
		"title":       map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string"},
		"category":    map[string]any{"type": "string"},
		"difficulty": map[string]any{
			"enum": []any{"beginner", "intermediate", "advanced"},
		},
		"estimatedTime": map[string]any{"type": "string"},
		"cardCount":     map[string]any{"type": "integer", "minimum": 0},
		"icon":          map[string]any{"type": "string"},
		"color":         map[string]any{"type": "string"},
		"categoryLabel": map[string]any{"type": "string"},
		"cards": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "task", "answer"},
				"properties": map[string]any{
					"id":          map[string]any{"type": "string", "minLength": 1},
					"task":        map[string]any{"type": "string", "minLength": 1},
					"answer":      map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string"},
					"whenToUse":   map[string]any{"type": "string"},
					"scenarios": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
				"additionalProperties": false,
			},
		},
	},
	"additionalProperties": false,
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledSchema compiles setSchema once.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, so round-trip the Go
		// literal through encoding/json first.
		defBytes, err := json.Marshal(setSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(setSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(setSchemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks raw JSON against the card set schema.
func validateDocument(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile card set schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
