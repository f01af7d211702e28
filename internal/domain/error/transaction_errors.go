// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Transaction form errors, raised before anything is submitted to the store.
var (
	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionDate is returned when the transaction date is missing.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the transaction amount is not positive.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrCategoryRequired is returned when no category is given.
	ErrCategoryRequired = errors.New("category is required")

	// ErrCategoryTypeMismatch is returned when the category does not exist for the transaction type.
	ErrCategoryTypeMismatch = errors.New("invalid category for the transaction type")

	// ErrInvalidCategoryName is returned when a category name is empty.
	ErrInvalidCategoryName = errors.New("invalid category name")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeCategoryRequired         TransactionErrorCode = "TXN-010004"
	ErrCodeCategoryTypeMismatch     TransactionErrorCode = "TXN-010005"
	ErrCodeInvalidCategoryName      TransactionErrorCode = "TXN-010006"
	ErrCodeInvalidTransactionID     TransactionErrorCode = "TXN-010007"
)

// TransactionError represents a form validation failure. It is a
// ValidationError in the error taxonomy and matches ErrValidation.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// Is makes every TransactionError match ErrValidation.
func (e *TransactionError) Is(target error) bool {
	return target == ErrValidation
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
