package errors

// Error codes for standardized error responses
const (
	// Request errors
	ErrCodeBadRequest       = "bad_request"
	ErrCodeMissingField     = "missing_field"
	ErrCodeUnknownCategory  = "unknown_category"
	ErrCodeUnprocessable    = "unprocessable"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Resource errors
	ErrCodeNotFound = "not_found"

	// Server errors
	ErrCodeInternalError = "internal_error"
	ErrCodeUpstreamError = "upstream_error"
)

// Fixed human-readable messages, one per status.
const (
	MessageBadRequest       = "bad request"
	MessageNotFound         = "resource not found"
	MessageMethodNotAllowed = "method not allowed"
	MessageUnprocessable    = "unprocessable"
	MessageInternalError    = "internal server error"
)
