package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// intentsSchema describes the expected shape of intents.json: a single
// top-level list of intent records. Responses must be non-empty so the
// router always has something to reply with for a predicted tag.
var intentsSchema = map[string]interface{}{
	"type":                 "object",
	"required":             []interface{}{"intents"},
	"additionalProperties": false,
	"properties": map[string]interface{}{
		"intents": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":                 "object",
				"required":             []interface{}{"tag", "patterns", "responses"},
				"additionalProperties": false,
				"properties": map[string]interface{}{
					"tag": map[string]interface{}{
						"type":      "string",
						"minLength": 1,
					},
					"patterns": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string", "minLength": 1},
					},
					"responses": map[string]interface{}{
						"type":     "array",
						"minItems": 1,
						"items":    map[string]interface{}{"type": "string", "minLength": 1},
					},
				},
			},
		},
	},
}

// feesSchema describes the fee table document: program code -> category code
// -> integer amount. Category codes follow the category_<n> convention.
var feesSchema = map[string]interface{}{
	"type": "object",
	"patternProperties": map[string]interface{}{
		"^[a-z][a-z0-9_]*$": map[string]interface{}{
			"type":     "object",
			"minProperties": 1,
			"patternProperties": map[string]interface{}{
				"^category_[0-9]+$": map[string]interface{}{
					"type":    "integer",
					"minimum": 0,
				},
			},
			"additionalProperties": false,
		},
	},
	"additionalProperties": false,
	"minProperties":        1,
}

// ValidateIntentsDocument validates a decoded intents document against the
// intents schema and returns one error message per violation.
func ValidateIntentsDocument(doc map[string]interface{}) []string {
	return validate(intentsSchema, doc)
}

// ValidateFeesDocument validates a decoded fee table against the fee schema.
func ValidateFeesDocument(doc map[string]interface{}) []string {
	return validate(feesSchema, doc)
}

func validate(schemaMap, doc map[string]interface{}) []string {
	schemaLoader := gojsonschema.NewGoLoader(schemaMap)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return []string{fmt.Sprintf("validation error: %v", err)}
	}
	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		messages = append(messages, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return messages
}

// FormatErrors joins validation messages for use in error details.
func FormatErrors(messages []string) string {
	return strings.Join(messages, "; ")
}
