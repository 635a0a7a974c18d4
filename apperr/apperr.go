// Package apperr provides the application's error handling system: a fixed
// taxonomy of error kinds and codes, user-facing message resolution,
// classification of raw failures into immutable events, structured logging,
// and a retry policy for recoverable errors.
package apperr

import (
	"errors"
	"fmt"
)

// Error is a classified application error carrying a kind, code, status,
// message, context, and an optional wrapped cause.
type Error struct {
	kind    Kind
	code    Code
	status  int
	msg     string
	context map[string]interface{}
	cause   error
}

// New creates an error of the given kind with the kind's default status.
func New(kind Kind, code Code, msg string) *Error {
	return &Error{
		kind:   kind,
		code:   code,
		status: kind.Status(),
		msg:    msg,
	}
}

// Newf creates a generic error with a formatted message.
func Newf(format string, args ...interface{}) *Error {
	return New(KindGeneric, CodeGenericError, fmt.Sprintf(format, args...))
}

// Validation creates a validation error (status 400).
func Validation(msg string) *Error {
	return New(KindValidation, CodeValidationError, msg)
}

// Authentication creates an authentication error (status 401).
func Authentication(msg string) *Error {
	return New(KindAuthentication, CodeAuthenticationError, msg)
}

// Network creates a network error. Network failures carry status 0 since no
// response was received.
func Network(msg string) *Error {
	return New(KindNetwork, CodeNetworkError, msg)
}

// NotFound creates a not-found error (status 404).
func NotFound(msg string) *Error {
	return New(KindNotFound, CodeNotFoundError, msg)
}

// Conflict creates a conflict error for duplicate resources (status 409).
func Conflict(msg string) *Error {
	return New(KindConflict, CodeConflictError, msg)
}

// Server creates a generic server-side error (status 500).
func Server(msg string) *Error {
	return New(KindGeneric, CodeServerError, msg)
}

// Error returns the error message, implementing the error interface.
func (e *Error) Error() string {
	if e.msg != "" {
		if e.cause != nil {
			return e.msg + ": " + e.cause.Error()
		}
		return e.msg
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return string(e.code)
}

// Kind returns the taxonomy kind of the error.
func (e *Error) Kind() Kind { return e.kind }

// Code returns the machine code of the error.
func (e *Error) Code() Code { return e.code }

// Status returns the numeric status of the error.
func (e *Error) Status() int { return e.status }

// Message returns the raw message without the cause chain.
func (e *Error) Message() string { return e.msg }

// Context returns the error's context map, nil if none was attached.
func (e *Error) Context() map[string]interface{} { return e.context }

// With adds a key-value pair to the error's context.
func (e *Error) With(key string, value interface{}) *Error {
	if e.context == nil {
		e.context = make(map[string]interface{})
	}
	e.context[key] = value
	return e
}

// WithCode overrides the machine code.
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	return e
}

// WithStatus overrides the numeric status.
func (e *Error) WithStatus(status int) *Error {
	e.status = status
	return e
}

// Wrap sets the cause of the error, creating a chain.
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}

// Unwrap returns the underlying cause of the error, if any.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target matches this error. Two *Error values match when
// they share kind and code; other targets are checked against the cause chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if te, ok := target.(*Error); ok {
		return e.kind == te.kind && e.code == te.code
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}
