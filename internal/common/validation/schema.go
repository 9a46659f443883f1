package validation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Summary joins every error into one line for logs and error details.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// Distances must be real JSON numbers; a numeric string is a client bug.
const recommendationRequestSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["answers"],
	"additionalProperties": false,
	"properties": {
		"schemaVersion": {"type": "string", "maxLength": 64},
		"answers": {
			"type": "object",
			"properties": {
				"distance": {"$ref": "#/definitions/distance"},
				"radius": {"$ref": "#/definitions/distance"},
				"distanceMiles": {"$ref": "#/definitions/distance"}
			},
			"additionalProperties": {"$ref": "#/definitions/answer"}
		},
		"userLocation": {
			"type": "object",
			"required": ["latitude", "longitude"],
			"properties": {
				"latitude": {"type": "number", "minimum": -90, "maximum": 90},
				"longitude": {"type": "number", "minimum": -180, "maximum": 180}
			}
		},
		"locationStatus": {
			"type": "string",
			"enum": ["granted", "denied", "unavailable", "timeout", "prompt"]
		}
	},
	"definitions": {
		"distance": {
			"oneOf": [
				{"type": "number", "exclusiveMinimum": 0},
				{"type": "null"}
			]
		},
		"answer": {
			"anyOf": [
				{"type": "string", "maxLength": 128},
				{"type": "number"},
				{"type": "null"},
				{"type": "array", "maxItems": 32, "items": {"type": ["string", "number"]}}
			]
		}
	}
}`

const shareRequestSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["channel", "to", "restaurants"],
	"additionalProperties": false,
	"properties": {
		"channel": {"type": "string", "enum": ["email", "sms"]},
		"to": {"type": "string", "minLength": 3, "maxLength": 254},
		"restaurants": {
			"type": "array",
			"minItems": 1,
			"maxItems": 25,
			"items": {
				"type": "object",
				"required": ["id", "name"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"name": {"type": "string", "minLength": 1}
				}
			}
		}
	}
}`

var (
	compileOnce     sync.Once
	recommendSchema *gojsonschema.Schema
	shareSchema     *gojsonschema.Schema
	compileErr      error
)

func compile() error {
	compileOnce.Do(func() {
		recommendSchema, compileErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(recommendationRequestSchema))
		if compileErr != nil {
			return
		}
		shareSchema, compileErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(shareRequestSchema))
	})
	return compileErr
}

// ValidateRecommendationRequest checks a raw POST /api/recommendations body.
func ValidateRecommendationRequest(body []byte) (*ValidationResult, error) {
	if err := compile(); err != nil {
		return nil, fmt.Errorf("compile request schema: %w", err)
	}
	return validate(recommendSchema, body)
}

// ValidateShareRequest checks a raw POST /api/share body.
func ValidateShareRequest(body []byte) (*ValidationResult, error) {
	if err := compile(); err != nil {
		return nil, fmt.Errorf("compile request schema: %w", err)
	}
	return validate(shareSchema, body)
}

func validate(schema *gojsonschema.Schema, body []byte) (*ValidationResult, error) {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		// malformed JSON surfaces here rather than as a schema error
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "(root)",
				Message: err.Error(),
				Code:    "INVALID_JSON",
			}},
		}, nil
	}

	out := &ValidationResult{Valid: res.Valid()}
	for _, e := range res.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
			Code:    strings.ToUpper(e.Type()),
		})
	}
	return out, nil
}
