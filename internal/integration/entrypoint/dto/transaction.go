package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
)

// DateLayout is the calendar date format used in requests and responses.
const DateLayout = "2006-01-02"

// TransactionRequest represents the request body for transaction creation and update.
// Amount accepts a JSON number or a numeric string.
type TransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description" binding:"max=255"`
	Date        string          `json:"date" binding:"required"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          int64      `json:"id"`
	Amount      string     `json:"amount"`
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
}

// TransactionMutationResponse is returned by create, update and delete: the
// affected transaction (when there is one) and the refreshed dashboard.
type TransactionMutationResponse struct {
	Transaction *TransactionResponse `json:"transaction,omitempty"`
	Dashboard   DashboardResponse    `json:"dashboard"`
	// Stale is true when the refresh after the write failed.
	Stale bool `json:"stale,omitempty"`
}

// ParseDate accepts a calendar date or a full RFC 3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// ToTransactionResponse converts a Transaction entity to its DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:          txn.ID,
		Amount:      money(txn.Amount),
		Type:        txn.Type.String(),
		Category:    txn.Category,
		Description: txn.Description,
		Date:        txn.Date.Format(DateLayout),
	}
	if !txn.CreatedAt.IsZero() {
		createdAt := txn.CreatedAt
		response.CreatedAt = &createdAt
	}
	return response
}

// ToTransactionListResponse converts a list of transactions to its DTO.
func ToTransactionListResponse(transactions []entity.Transaction) TransactionListResponse {
	items := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		items[i] = ToTransactionResponse(&transactions[i])
	}
	return TransactionListResponse{Transactions: items, Count: len(items)}
}
