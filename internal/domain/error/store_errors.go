// Package error defines domain-specific errors for the Finance Tracker application.
package error

import (
	"errors"
	"fmt"
)

// Store error kinds. Every StoreError matches exactly one of these with errors.Is.
var (
	// ErrTransport is returned when the Transaction Store is unreachable or answers with
	// an unexpected status or payload.
	ErrTransport = errors.New("transaction store transport failure")

	// ErrValidation is returned when a business rule rejects a mutation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when operating on an id the store does not hold.
	ErrNotFound = errors.New("not found")
)

// StoreErrorKind classifies a StoreError.
type StoreErrorKind int

const (
	StoreErrorKindTransport StoreErrorKind = iota + 1
	StoreErrorKindValidation
	StoreErrorKindNotFound
)

// String returns the taxonomy name of the kind.
func (k StoreErrorKind) String() string {
	switch k {
	case StoreErrorKindTransport:
		return "TransportError"
	case StoreErrorKindValidation:
		return "ValidationError"
	case StoreErrorKindNotFound:
		return "NotFoundError"
	default:
		return fmt.Sprintf("StoreErrorKind(%d)", int(k))
	}
}

// sentinel returns the error value errors.Is matches for the kind.
func (k StoreErrorKind) sentinel() error {
	switch k {
	case StoreErrorKindTransport:
		return ErrTransport
	case StoreErrorKindValidation:
		return ErrValidation
	case StoreErrorKindNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// StoreErrorCode defines error codes for store errors.
// Format: STR-XXYYYY where XX is category and YYYY is specific error.
type StoreErrorCode string

const (
	// Transport errors (01XXXX)
	ErrCodeStoreUnreachable      StoreErrorCode = "STR-010001"
	ErrCodeStoreUnexpectedStatus StoreErrorCode = "STR-010002"
	ErrCodeStoreMalformedPayload StoreErrorCode = "STR-010003"

	// Validation errors (02XXXX)
	ErrCodeStoreRejected StoreErrorCode = "STR-020001"
	ErrCodeStoreConflict StoreErrorCode = "STR-020002"

	// Not found errors (03XXXX)
	ErrCodeStoreNotFound StoreErrorCode = "STR-030001"
)

// StoreError represents a failure reported by, or while talking to, the
// Transaction Store.
type StoreError struct {
	Kind       StoreErrorKind
	Code       StoreErrorCode
	Message    string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *StoreError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// NewTransportError creates a StoreError of the transport kind.
func NewTransportError(code StoreErrorCode, message string, statusCode int, err error) *StoreError {
	return &StoreError{
		Kind:       StoreErrorKindTransport,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

// NewValidationError creates a StoreError of the validation kind.
func NewValidationError(code StoreErrorCode, message string, statusCode int) *StoreError {
	return &StoreError{
		Kind:       StoreErrorKindValidation,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewNotFoundError creates a StoreError of the not-found kind.
func NewNotFoundError(message string) *StoreError {
	return &StoreError{
		Kind:       StoreErrorKindNotFound,
		Code:       ErrCodeStoreNotFound,
		Message:    message,
		StatusCode: 404,
	}
}
