package dashboard

import (
	"context"
	"fmt"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
)

// ListTransactionsUseCase lists transactions straight from the store.
type ListTransactionsUseCase struct {
	store    adapter.TransactionStore
	notifier adapter.Notifier
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(store adapter.TransactionStore, notifier adapter.Notifier) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		store:    store,
		notifier: notifier,
	}
}

// Execute returns the transactions matching the filter.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, filter entity.TransactionFilter) ([]entity.Transaction, error) {
	transactions, err := uc.store.ListTransactions(ctx, filter)
	if err != nil {
		notifyFailure(ctx, uc.notifier, err)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// GetTransactionUseCase fetches a single transaction from the store.
type GetTransactionUseCase struct {
	store adapter.TransactionStore
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(store adapter.TransactionStore) *GetTransactionUseCase {
	return &GetTransactionUseCase{store: store}
}

// Execute returns the transaction with the given id.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, id int64) (*entity.Transaction, error) {
	if err := validateTransactionID(id); err != nil {
		return nil, err
	}

	transaction, err := uc.store.GetTransaction(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}
