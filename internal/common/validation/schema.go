// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Request body schemas for the write endpoints. Validation happens at
// the HTTP boundary, before any payload reaches the service layer.

var registerSchema = map[string]interface{}{
	"type":                 "object",
	"required":             []interface{}{"username", "password", "email"},
	"additionalProperties": false,
	"properties": map[string]interface{}{
		"username":   map[string]interface{}{"type": "string", "minLength": 3, "maxLength": 64},
		"password":   map[string]interface{}{"type": "string", "minLength": 1},
		"email":      map[string]interface{}{"type": "string", "format": "email"},
		"first_name": map[string]interface{}{"type": "string"},
		"last_name":  map[string]interface{}{"type": "string"},
		"role":       map[string]interface{}{"type": "string", "enum": []interface{}{"user", "admin"}},
	},
}

var citaSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"store_id", "date", "time"},
	"properties": map[string]interface{}{
		"store_id": map[string]interface{}{"type": "integer", "minimum": 1},
		"date":     map[string]interface{}{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
		"time":     map[string]interface{}{"type": "string", "pattern": `^\d{2}:\d{2}(:\d{2})?$`},
		"user_ids": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "integer"},
		},
	},
}

// ValidateRegister checks a register payload against its schema.
func ValidateRegister(payload map[string]interface{}) error {
	return validate(payload, registerSchema)
}

// ValidateCita checks an appointment creation payload.
func ValidateCita(payload map[string]interface{}) error {
	return validate(payload, citaSchema)
}

func validate(payload, schema map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
