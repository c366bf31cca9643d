// File: api/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Common error types for hioload-threads. Native backend failures travel as
// syscall.Errno values; the structured Error below is for callers above the
// backend (tools, validation, harnesses).

package api

import "fmt"

// Common errors used across the library.
var (
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrNotSupported    = fmt.Errorf("operation not supported")
	ErrInvariant       = fmt.Errorf("invariant violated")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeResourceExhausted
	ErrCodeNotSupported
	ErrCodeBackend
	ErrCodeInvariant
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithCause records the underlying error for errors.Is / errors.As.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// NewStatusError reports a non-success status returned by an operation together
// with the native code left in the caller's last error slot.
func NewStatusError(op string, st StatusCode, native error) *Error {
	e := NewError(ErrCodeBackend, op+": "+st.String()).
		WithContext("op", op).
		WithContext("status", st.String())
	if native != nil {
		e.WithContext("native", native.Error())
		e.cause = native
	}
	return e
}
