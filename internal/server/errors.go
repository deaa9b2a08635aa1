// Package server provides the HTTP API for the pitch coach.
package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/pitch-coach/internal/critique"
	"github.com/jonathan/pitch-coach/internal/intel"
	"github.com/jonathan/pitch-coach/internal/llm"
)

// ErrSessionNotFound indicates an unknown rehearsal session id.
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return "rehearsal session not found: " + e.ID
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return "validation error: " + e.Field + " - " + e.Message
}

// newValidationError converts a validator failure into the API error type,
// surfacing the first failed field.
func newValidationError(err error) *ErrValidation {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: "failed on rule '" + fe.Tag() + "'"}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Resolver errors unwrap to the underlying inference failure: transient
// network failures map to 502 so the client's retry affordance fires,
// schema failures to 502 as well (bad upstream output), validation to 400.
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var notFoundErr *ErrSessionNotFound
	var networkErr *llm.NetworkError
	var emptyErr *llm.EmptyResponseError
	var schemaErr *llm.SchemaParseError
	var resolutionErr *intel.ResolutionError
	var critiqueErr *critique.CritiqueError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &networkErr), errors.As(err, &emptyErr), errors.As(err, &schemaErr):
		return http.StatusBadGateway
	case errors.As(err, &resolutionErr), errors.As(err, &critiqueErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
