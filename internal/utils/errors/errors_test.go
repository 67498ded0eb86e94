package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("Error returns message", func(t *testing.T) {
		err := &AppError{Code: "TEST_ERROR", Message: "test error message"}
		assert.Equal(t, "test error message", err.Error())
	})

	t.Run("Error includes wrapped error", func(t *testing.T) {
		wrapped := errors.New("wrapped error")
		err := &AppError{Code: "TEST_ERROR", Message: "test error message", Err: wrapped}
		assert.Contains(t, err.Error(), "test error message")
		assert.Contains(t, err.Error(), "wrapped error")
		assert.Equal(t, wrapped, err.Unwrap())
	})

	t.Run("Is matches by code", func(t *testing.T) {
		assert.True(t, errors.Is(SignatureInvalid(), &AppError{Code: "INVALID_SIGNATURE"}))
		assert.False(t, errors.Is(SignatureInvalid(), &AppError{Code: "BAD_REQUEST"}))
	})
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		code     string
		status   int
		sentinel error
	}{
		{"not found", NotFound("order"), "NOT_FOUND", http.StatusNotFound, ErrNotFound},
		{"unauthorized", Unauthorized(""), "UNAUTHORIZED", http.StatusUnauthorized, ErrUnauthorized},
		{"signature", SignatureInvalid(), "INVALID_SIGNATURE", http.StatusUnauthorized, ErrUnauthorized},
		{"bad request", BadRequest("nope"), "BAD_REQUEST", http.StatusBadRequest, ErrBadRequest},
		{"malformed", MalformedPayload(""), "MALFORMED_PAYLOAD", http.StatusBadRequest, ErrBadRequest},
		{"unavailable", ServiceUnavailable(""), "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, ErrServiceUnavail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.NotEmpty(t, tt.err.Message)
			assert.True(t, errors.Is(tt.err, tt.sentinel))
		})
	}

	assert.Equal(t, "order not found", NotFound("order").Message)
}

func TestToResponse(t *testing.T) {
	resp := MalformedPayload("order_id is required").
		WithDetails(map[string]any{"field": "order_id"}).
		ToResponse()

	assert.Equal(t, "MALFORMED_PAYLOAD", resp.Error.Code)
	assert.Equal(t, "order_id is required", resp.Error.Message)
	assert.Equal(t, "order_id", resp.Error.Details["field"])
}

func TestGetStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"app error", Internal("", assert.AnError), http.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("handler: %w", SignatureInvalid()), http.StatusUnauthorized},
		{"sentinel not found", fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{"sentinel bad request", ErrBadRequest, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetStatusCode(tt.err))
		})
	}
}

func TestHelpers(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("x")))
	assert.True(t, IsUnauthorized(SignatureInvalid()))
	assert.False(t, IsNotFound(BadRequest("x")))
}
