package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenFieldErrors(t *testing.T) {
	got := FlattenFieldErrors(map[string][]string{
		"password": {"too short", "too common"},
		"email":    {"This field is required."},
	})
	assert.Equal(t, "email: This field is required.; password: too short, too common", got)
	assert.Equal(t, "", FlattenFieldErrors(nil))
}

func TestNewAPIErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		fields map[string][]string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, nil, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, nil, ErrPermissionDenied},
		{"not found", http.StatusNotFound, nil, ErrResourceNotFound},
		{"field errors", http.StatusBadRequest, map[string][]string{"title": {"required"}}, ErrValidationFailed},
		{"flat bad request", http.StatusBadRequest, nil, ErrRemote},
		{"server error", http.StatusInternalServerError, nil, ErrRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", NewAPIError(tt.status, "", tt.fields))
			assert.True(t, errors.Is(err, tt.want))

			var apiErr *APIError
			assert.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	t.Run("message wins", func(t *testing.T) {
		err := NewAPIError(400, "Invalid data", map[string][]string{"a": {"b"}})
		assert.Equal(t, "Invalid data", err.Error())
		assert.Equal(t, []string{"b"}, err.FieldErrors["a"])
	})

	t.Run("fields flattened", func(t *testing.T) {
		err := NewAPIError(400, "", map[string][]string{"a": {"b", "c"}})
		assert.Equal(t, "a: b, c", err.Error())
	})

	t.Run("status fallback", func(t *testing.T) {
		err := NewAPIError(502, "", nil)
		assert.Equal(t, "HTTP error! status: 502", err.Error())
	})
}

func TestIsAuthFailure(t *testing.T) {
	assert.True(t, IsAuthFailure(NewAPIError(401, "", nil)))
	assert.True(t, IsAuthFailure(fmt.Errorf("x: %w", ErrTokenExpired)))
	assert.False(t, IsAuthFailure(ErrNetwork))
}
