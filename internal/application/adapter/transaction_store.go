// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-tracker/insights/internal/domain/entity"
)

// TransactionStore defines the external store that holds transactions and
// categories. Implementations report failures as *domainerror.StoreError so
// callers can tell transport, validation and not-found failures apart.
type TransactionStore interface {
	// ListTransactions returns the transactions matching the filter, newest first.
	ListTransactions(ctx context.Context, filter entity.TransactionFilter) ([]entity.Transaction, error)

	// GetTransaction returns a single transaction or a not-found error.
	GetTransaction(ctx context.Context, id int64) (*entity.Transaction, error)

	// CreateTransaction stores a new transaction; the store assigns its id.
	CreateTransaction(ctx context.Context, input entity.TransactionInput) (*entity.Transaction, error)

	// UpdateTransaction replaces the editable fields of an existing transaction.
	UpdateTransaction(ctx context.Context, id int64, input entity.TransactionInput) (*entity.Transaction, error)

	// DeleteTransaction removes a transaction. Deleting the same id twice fails with not-found.
	DeleteTransaction(ctx context.Context, id int64) error

	// ListCategories returns every category, ordered by type then name.
	ListCategories(ctx context.Context) ([]entity.Category, error)

	// CreateCategory stores a new category. Duplicates are rejected as validation errors.
	CreateCategory(ctx context.Context, input entity.CategoryInput) (*entity.Category, error)

	// MonthlyReport returns per-month income and expense totals.
	MonthlyReport(ctx context.Context) ([]entity.MonthlyReportRow, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}
