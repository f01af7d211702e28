package store

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
)

// transactionPayload is the store's JSON representation of a transaction.
// Amounts arrive as JSON numbers and are decoded straight into decimals.
type transactionPayload struct {
	ID          int64                  `json:"id"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        entity.TransactionType `json:"type"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Date        time.Time              `json:"date"`
	CreatedAt   time.Time              `json:"created_at"`
}

func (p transactionPayload) toEntity() entity.Transaction {
	return entity.Transaction{
		ID:          p.ID,
		Amount:      p.Amount,
		Type:        p.Type,
		Category:    p.Category,
		Description: p.Description,
		Date:        p.Date,
		CreatedAt:   p.CreatedAt,
	}
}

// transactionRequest is the body of create and update calls. The amount is
// sent as a bare JSON number, which decimal.Decimal would quote.
type transactionRequest struct {
	Amount      json.Number            `json:"amount"`
	Type        entity.TransactionType `json:"type"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Date        time.Time              `json:"date"`
}

func newTransactionRequest(input entity.TransactionInput) transactionRequest {
	return transactionRequest{
		Amount:      json.Number(input.Amount.String()),
		Type:        input.Type,
		Category:    input.Category,
		Description: input.Description,
		Date:        input.Date,
	}
}

type categoryPayload struct {
	ID   int64                  `json:"id"`
	Name string                 `json:"name"`
	Type entity.TransactionType `json:"type"`
}

func (p categoryPayload) toEntity() entity.Category {
	return entity.Category{ID: p.ID, Name: p.Name, Type: p.Type}
}

type categoryRequest struct {
	Name string                 `json:"name"`
	Type entity.TransactionType `json:"type"`
}

type monthlyReportPayload struct {
	Month         string          `json:"month"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetAmount     decimal.Decimal `json:"net_amount"`
}

func (p monthlyReportPayload) toEntity() entity.MonthlyReportRow {
	return entity.MonthlyReportRow{
		Month:         p.Month,
		TotalIncome:   p.TotalIncome,
		TotalExpenses: p.TotalExpenses,
		NetAmount:     p.NetAmount,
	}
}
