package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/pitch-coach/internal/critique"
	"github.com/jonathan/pitch-coach/internal/intel"
	"github.com/jonathan/pitch-coach/internal/llm"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation error",
			err:  &ErrValidation{Field: "url", Message: "required"},
			want: http.StatusBadRequest,
		},
		{
			name: "session not found",
			err:  &ErrSessionNotFound{ID: "abc"},
			want: http.StatusNotFound,
		},
		{
			name: "network failure",
			err:  &llm.NetworkError{Message: "unreachable"},
			want: http.StatusBadGateway,
		},
		{
			name: "resolution error wrapping network failure",
			err:  &intel.ResolutionError{URL: "https://x", Cause: &llm.NetworkError{Message: "down"}},
			want: http.StatusBadGateway,
		},
		{
			name: "critique error wrapping schema failure",
			err:  &critique.CritiqueError{Message: "analysis failed", Cause: &llm.SchemaParseError{Message: "bad shape"}},
			want: http.StatusBadGateway,
		},
		{
			name: "empty response",
			err:  &llm.EmptyResponseError{Model: "m"},
			want: http.StatusBadGateway,
		},
		{
			name: "unknown error",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
