package apperr

import "errors"

// KindOf returns the taxonomy kind of an error. Unclassified errors report
// KindGeneric.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	var ev Event
	if errors.As(err, &ev) {
		return ev.Kind
	}
	return KindGeneric
}

// CodeOf returns the machine code of an error, CodeUnknownError for
// unclassified errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code()
	}
	var ev Event
	if errors.As(err, &ev) {
		return ev.Code
	}
	return CodeUnknownError
}

// StatusOf returns the numeric status of an error. Unclassified errors report
// 500 to indicate an internal failure.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status()
	}
	var ev Event
	if errors.As(err, &ev) {
		return ev.Status
	}
	return 500
}

// ContextOf extracts the context map from an error, nil if none is present.
func ContextOf(err error) map[string]interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Context()
	}
	var ev Event
	if errors.As(err, &ev) {
		return ev.Context
	}
	return nil
}

// retryableCodes are the conditions worth retrying. Everything else fails for
// a reason a retry cannot fix.
var retryableCodes = map[Code]bool{
	CodeConnectionTimeout: true,
	CodeServerError:       true,
	CodeRateLimitExceeded: true,
}

// IsRetryable reports whether an operation that failed with err may be
// retried: true only for the retryable code set or a status in [500,600).
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if retryableCodes[CodeOf(err)] {
		return true
	}
	status := StatusOf(err)
	return status >= 500 && status < 600
}
