package types

import "fmt"

// ErrorCode represents a unified error code across the converter.
type ErrorCode string

const (
	// ErrInvalidInput marks an input document that cannot be parsed into
	// one of the recognized shapes. This is the only fatal error kind:
	// conversion aborts and the error is surfaced verbatim to the caller.
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrUnsupportedFormat marks an unknown text format passed to a loader.
	ErrUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
)

// Error represents a structured error with code, message, and cause.
//
// Rules-document failures are deliberately NOT represented here: every
// rules-resolution failure degrades silently to a default value.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}
