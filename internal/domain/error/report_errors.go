// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidData is returned when aggregation input violates its data contract.
	ErrInvalidData = errors.New("invalid aggregation input")

	// ErrUnknownTransactionType is returned when a transaction type is neither income nor expense.
	ErrUnknownTransactionType = errors.New("unknown transaction type")

	// ErrNonPositiveAmount is returned when a transaction amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")

	// ErrMalformedMonthKey is returned when a monthly report key is not YYYY-MM.
	ErrMalformedMonthKey = errors.New("malformed month key")

	// ErrNegativeMonthlyTotal is returned when a monthly report total is negative.
	ErrNegativeMonthlyTotal = errors.New("monthly totals must not be negative")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Invalid data errors (01XXXX)
	ErrCodeUnknownTransactionType ReportErrorCode = "RPT-010001"
	ErrCodeNonPositiveAmount      ReportErrorCode = "RPT-010002"
	ErrCodeMalformedMonthKey      ReportErrorCode = "RPT-010003"
	ErrCodeNegativeMonthlyTotal   ReportErrorCode = "RPT-010004"
)

// ReportError is the InvalidDataError kind: aggregation input broke the data
// contract. It is a programmer or data-contract violation, not a user-facing error.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// Is makes every ReportError match ErrInvalidData.
func (e *ReportError) Is(target error) bool {
	return target == ErrInvalidData
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
