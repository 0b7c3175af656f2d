package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"validation", ValidationError("bad input"), http.StatusBadRequest},
		{"not found", NotFoundError("missing"), http.StatusNotFound},
		{"unavailable", UnavailableError("db down", nil), http.StatusServiceUnavailable},
		{"internal", InternalError("boom", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := InternalError("query failed", fmt.Errorf("connection refused"))
	assert.Equal(t, "internal: query failed: connection refused", err.Error())

	err = ValidationError("invalid date")
	assert.Equal(t, "validation: invalid date", err.Error())
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := UnavailableError("ping failed", cause)
	assert.ErrorIs(t, err, cause)
}

func TestWithField(t *testing.T) {
	err := ValidationError("invalid limit").WithField("limit", "abc")
	assert.Equal(t, "abc", err.Context["limit"])

	resp := err.ToResponse()
	assert.Equal(t, "invalid limit", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, "abc", resp.Context["limit"])
}

func TestAsStructuredError(t *testing.T) {
	structured := NotFoundError("nope")
	assert.Same(t, structured, asStructuredError(structured))

	plain := fmt.Errorf("plain failure")
	wrapped := asStructuredError(plain)
	assert.Equal(t, TypeInternal, wrapped.Type)
	assert.ErrorIs(t, wrapped, plain)
}
