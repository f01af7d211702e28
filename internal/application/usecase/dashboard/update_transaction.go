package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
)

// UpdateTransactionInput represents the input for transaction update.
type UpdateTransactionInput struct {
	ID   int64
	Form TransactionForm
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
	Views       *entity.Views
	Stale       bool
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	store    adapter.TransactionStore
	refresh  *RefreshDashboardUseCase
	notifier adapter.Notifier
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	store adapter.TransactionStore,
	refresh *RefreshDashboardUseCase,
	notifier adapter.Notifier,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		store:    store,
		refresh:  refresh,
		notifier: notifier,
	}
}

// Execute validates the form, replaces the transaction in the store and re-fetches.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	if err := validateTransactionID(input.ID); err != nil {
		return nil, err
	}

	txnInput, err := uc.refresh.resolveTransactionForm(ctx, input.Form)
	if err != nil {
		return nil, err
	}

	transaction, err := uc.store.UpdateTransaction(ctx, input.ID, txnInput)
	if err != nil {
		slog.Warn("Transaction update rejected", "id", input.ID, "error", err)
		notifyFailure(ctx, uc.notifier, err)
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	views, stale := uc.refresh.afterMutation(ctx)
	return &UpdateTransactionOutput{
		Transaction: transaction,
		Views:       views,
		Stale:       stale,
	}, nil
}
