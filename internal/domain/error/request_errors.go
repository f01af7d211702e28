// Package error defines domain-specific errors for the Finance Tracker application.
package error

// RequestErrorCode defines error codes for malformed or refused API requests.
// Format: REQ-XXYYYY where XX is category and YYYY is specific error.
type RequestErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidRequestBody RequestErrorCode = "REQ-010001"
	ErrCodeInvalidDateFormat  RequestErrorCode = "REQ-010002"
	ErrCodeInvalidDateRange   RequestErrorCode = "REQ-010003"
	ErrCodeInvalidQueryType   RequestErrorCode = "REQ-010004"
	ErrCodeInvalidID          RequestErrorCode = "REQ-010005"

	// Throttling errors (02XXXX)
	ErrCodeRateLimited RequestErrorCode = "REQ-020001"

	// Internal errors (99XXXX)
	ErrCodeInternal RequestErrorCode = "REQ-990001"
)
