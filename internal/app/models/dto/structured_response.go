package dto

// Envelope is the uniform result of every data access call.
// Failures never panic or return a bare error; Cause keeps the original
// error so callers can still tell a network failure from a validation
// failure with errors.Is.
type Envelope[T any] struct {
	Success    bool            `json:"success"`
	Data       T               `json:"data,omitempty"`
	Error      string          `json:"error,omitempty"`
	Message    string          `json:"message,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
	Cause      error           `json:"-"`
}

// PaginationInfo is derived from the gateway's count field
type PaginationInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Ok creates a successful envelope
func Ok[T any](data T, message string) Envelope[T] {
	return Envelope[T]{
		Success: true,
		Data:    data,
		Message: message,
	}
}

// Fail creates a failed envelope carrying err as its cause
func Fail[T any](err error) Envelope[T] {
	env := Envelope[T]{Success: false, Cause: err}
	if err != nil {
		env.Error = err.Error()
	}
	return env
}

// WithPagination attaches pagination metadata
func (e Envelope[T]) WithPagination(info PaginationInfo) Envelope[T] {
	e.Pagination = &info
	return e
}

// Err returns the wrapped cause, or nil on success
func (e Envelope[T]) Err() error {
	if e.Success {
		return nil
	}
	return e.Cause
}
