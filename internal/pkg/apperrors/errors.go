package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Transport errors
var (
	ErrNetwork = errors.New("network error")
	ErrTimeout = errors.New("request timed out")
	ErrDecode  = errors.New("malformed response")
)

// Gateway errors
var (
	ErrRemote             = errors.New("request rejected")
	ErrValidationFailed   = errors.New("validation failed")
	ErrUnauthorized       = errors.New("authentication required")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Mock gateway errors
var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
)

// APIError is a non-2xx answer from the API gateway.
// Err holds the taxonomy class so errors.Is works against the sentinels above.
type APIError struct {
	StatusCode  int
	Message     string
	FieldErrors map[string][]string
	Err         error
}

// Error implements error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.FieldErrors) > 0 {
		return FlattenFieldErrors(e.FieldErrors)
	}
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// Unwrap implements errors.Unwrap interface
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError classifies a failed response by status code.
// A message takes precedence over field errors for the display text.
func NewAPIError(statusCode int, message string, fieldErrors map[string][]string) *APIError {
	class := ErrRemote
	switch {
	case statusCode == http.StatusUnauthorized:
		class = ErrUnauthorized
	case statusCode == http.StatusForbidden:
		class = ErrPermissionDenied
	case statusCode == http.StatusNotFound:
		class = ErrResourceNotFound
	case statusCode == http.StatusBadRequest && len(fieldErrors) > 0:
		class = ErrValidationFailed
	}

	return &APIError{
		StatusCode:  statusCode,
		Message:     message,
		FieldErrors: fieldErrors,
		Err:         class,
	}
}

// FlattenFieldErrors joins a field → messages map into one line,
// e.g. "email: required; password: too short, too common".
// Fields are sorted so the result is stable.
func FlattenFieldErrors(fieldErrors map[string][]string) string {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(fieldErrors[field], ", "))
	}
	return strings.Join(parts, "; ")
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// IsAuthFailure reports whether err means the session is no longer valid
func IsAuthFailure(err error) bool {
	return Is(err, ErrUnauthorized, ErrTokenExpired, ErrTokenInvalid)
}
