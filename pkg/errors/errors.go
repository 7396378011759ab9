package errors

import (
	stderrors "errors"
	"fmt"
)

// Standard error codes
const (
	ErrInternal     = "INTERNAL"
	ErrNotFound     = "NOT_FOUND"
	ErrInvalidInput = "INVALID_INPUT"
	ErrUnauthorized = "UNAUTHORIZED"
	ErrConflict     = "CONFLICT"
)

// AppError is a standardized error type for the application
type AppError struct {
	Code       string
	Message    string
	Op         string // Operation where the error occurred
	Err        error  // Underlying error
	Suggestion string // Actionable suggestion for the user
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s (cause: %v)", e.Code, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Op, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any *AppError carrying the same code, so coded sentinels can be
// compared with errors.Is regardless of Op or Message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError
func New(code, op, message string) *AppError {
	return &AppError{
		Code:    code,
		Op:      op,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message
func Newf(code, op, format string, args ...any) *AppError {
	return New(code, op, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error into an AppError
func Wrap(err error, code, op, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// WrapWithSuggestion wraps an existing error with a suggestion
func WrapWithSuggestion(err error, code, op, message, suggestion string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Op:         op,
		Message:    message,
		Err:        err,
		Suggestion: suggestion,
	}
}

// WithSuggestion adds a suggestion to an existing AppError
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestion = suggestion
	return e
}

// IsCode checks if the error, or any error it wraps, has the specific code
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the first AppError in err's chain, or "" if
// there is none.
func CodeOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
