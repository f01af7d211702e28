// Package entity defines the core business entities for the domain layer.
package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction (income or expense).
// The zero value is not a valid type.
type TransactionType int

const (
	TransactionTypeIncome TransactionType = iota + 1
	TransactionTypeExpense
)

// TransactionTypes lists every valid transaction type in display order.
var TransactionTypes = []TransactionType{TransactionTypeIncome, TransactionTypeExpense}

// ParseTransactionType converts the wire representation into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch s {
	case "income":
		return TransactionTypeIncome, nil
	case "expense":
		return TransactionTypeExpense, nil
	default:
		return 0, fmt.Errorf("unknown transaction type %q", s)
	}
}

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

// String returns the wire representation of the type.
func (t TransactionType) String() string {
	switch t {
	case TransactionTypeIncome:
		return "income"
	case TransactionTypeExpense:
		return "expense"
	default:
		return fmt.Sprintf("TransactionType(%d)", int(t))
	}
}

// MarshalJSON encodes the type as "income" or "expense".
func (t TransactionType) MarshalJSON() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("cannot marshal invalid transaction type %d", int(t))
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes "income" or "expense" and rejects anything else.
func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("transaction type must be a string: %w", err)
	}
	parsed, err := ParseTransactionType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Transaction represents a single income or expense event held by the
// Transaction Store. Amount is always a positive magnitude; the direction is
// carried by Type.
type Transaction struct {
	ID          int64
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

// TransactionInput holds the user-editable fields of a transaction, used for
// both creation and update.
type TransactionInput struct {
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Description string
	Date        time.Time
}

// TransactionFilter narrows a transaction listing. Zero values mean "no filter".
type TransactionFilter struct {
	Type      *TransactionType
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

// IsEmpty reports whether the filter matches every transaction.
func (f TransactionFilter) IsEmpty() bool {
	return f.Type == nil && f.Category == "" && f.StartDate == nil && f.EndDate == nil
}
