package apperr

// Kind categorizes an error within the fixed application taxonomy.
// Pattern-match on Kind rather than on concrete error types.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuthentication Kind = "authentication"
	KindNetwork        Kind = "network"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindGeneric        Kind = "generic"
)

// Status returns the default numeric status for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return 400
	case KindAuthentication:
		return 401
	case KindNetwork:
		return 0
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	default:
		return 500
	}
}

// Code identifies a specific error condition. Codes are string-based for
// debuggability and natural JSON serialization.
type Code string

const (
	// Kind-level defaults. These have no entry in the user-message table, so
	// an error carrying one displays its own message.
	CodeValidationError     Code = "VALIDATION_ERROR"
	CodeAuthenticationError Code = "AUTHENTICATION_ERROR"
	CodeNetworkError        Code = "NETWORK_ERROR"
	CodeNotFoundError       Code = "NOT_FOUND_ERROR"
	CodeConflictError       Code = "CONFLICT_ERROR"
	CodeGenericError        Code = "GENERIC_ERROR"

	// Authentication.
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeTokenExpired       Code = "TOKEN_EXPIRED"
	CodeUserNotFound       Code = "USER_NOT_FOUND"
	CodeUserAlreadyExists  Code = "USER_ALREADY_EXISTS"

	// Validation. VALIDATION_FAILED has no table entry: a schema failure
	// surfaces its first violation as the message.
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeRequiredField    Code = "REQUIRED_FIELD"
	CodeInvalidFormat    Code = "INVALID_FORMAT"

	// Network.
	CodeConnectionTimeout Code = "CONNECTION_TIMEOUT"
	CodeServerError       Code = "SERVER_ERROR"
	CodeRateLimitExceeded Code = "RATE_LIMIT_EXCEEDED"

	// Content.
	CodeContentNotFound    Code = "CONTENT_NOT_FOUND"
	CodeContentUnavailable Code = "CONTENT_UNAVAILABLE"

	// Generic.
	CodeUnknownError     Code = "UNKNOWN_ERROR"
	CodePermissionDenied Code = "PERMISSION_DENIED"
)

// messages maps codes to the default user-facing display text. An error's own
// message is used when its code has no entry here.
var messages = map[Code]string{
	CodeInvalidCredentials: "Incorrect email or password",
	CodeTokenExpired:       "Your session has expired, please sign in again",
	CodeUserNotFound:       "User not found",
	CodeUserAlreadyExists:  "An account with this email already exists",

	CodeRequiredField: "This field is required",
	CodeInvalidFormat: "The data format is incorrect",

	CodeConnectionTimeout: "Connection timed out, check your internet",
	CodeServerError:       "Server error, try again later",
	CodeRateLimitExceeded: "Too many requests, wait a moment",

	CodeContentNotFound:    "The content you are looking for does not exist",
	CodeContentUnavailable: "This content is not available",

	CodeUnknownError:     "An unexpected error has occurred",
	CodePermissionDenied: "You do not have permission to perform this action",
}

// Message returns the user-facing text registered for a code. The second
// return value reports whether a mapping exists.
func Message(code Code) (string, bool) {
	msg, ok := messages[code]
	return msg, ok
}
