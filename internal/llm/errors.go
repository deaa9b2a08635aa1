package llm

import "fmt"

// NetworkError represents a transient failure reaching the inference service,
// including timeouts. The caller may retry.
type NetworkError struct {
	Message string
	Cause   error
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("network error: %s", e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// EmptyResponseError indicates the service responded without any usable text.
type EmptyResponseError struct {
	Model string
}

func (e *EmptyResponseError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("empty response from model %s", e.Model)
	}
	return "empty response from model"
}

// SchemaParseError indicates the response text is not valid against the
// declared output schema. Partially-typed data is never returned silently.
type SchemaParseError struct {
	Message string
	Cause   error
}

func (e *SchemaParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("schema parse error: %s", e.Message)
}

func (e *SchemaParseError) Unwrap() error {
	return e.Cause
}
