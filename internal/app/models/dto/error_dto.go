package dto

// FieldErrors maps a request field to its validation messages,
// e.g. {"email": ["This field is required."]}
type FieldErrors map[string][]string

// DetailResponse is the error body used for auth and permission failures
type DetailResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is the {success, message} body returned by action endpoints
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ValidationFailedResponse wraps field errors with a summary message
type ValidationFailedResponse struct {
	Success bool        `json:"success"`
	Errors  FieldErrors `json:"errors"`
	Message string      `json:"message"`
}
