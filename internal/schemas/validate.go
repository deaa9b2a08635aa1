// Package schemas provides JSON Schema validation for structured inference responses.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself.
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateJSONString validates JSON document content against schema content.
// A document that fails validation returns a *ValidationError; a schema that
// cannot be loaded returns a *SchemaLoadError.
func ValidateJSONString(schemaContent, jsonContent string) (err error) {
	// gojsonschema panics instead of returning an error on some malformed
	// schema documents; keep the typed-error contract.
	defer func() {
		if r := recover(); r != nil {
			err = &SchemaLoadError{
				Name:    "(string schema)",
				Message: fmt.Sprintf("schema parsing panicked: %v", r),
			}
		}
	}()

	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// gojsonschema reports document syntax errors and schema load errors
		// through the same path; treat unparseable documents as validation
		// failures so the caller sees them as bad model output.
		if jsonErr := validateDocumentSyntax(jsonContent); jsonErr != nil {
			return jsonErr
		}
		return &SchemaLoadError{
			Name:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}

// validateDocumentSyntax returns a *ValidationError if the document is not
// syntactically valid JSON, nil otherwise.
func validateDocumentSyntax(jsonContent string) error {
	loader := gojsonschema.NewStringLoader(jsonContent)
	if _, err := loader.LoadJSON(); err != nil {
		return &ValidationError{
			Errors: []FieldError{{Field: "(root)", Message: fmt.Sprintf("invalid JSON: %v", err)}},
		}
	}
	return nil
}
