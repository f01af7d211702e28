package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Form TransactionForm
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
	Views       *entity.Views
	// Stale is true when the post-write refresh failed and Views predate the write.
	Stale bool
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	store    adapter.TransactionStore
	refresh  *RefreshDashboardUseCase
	notifier adapter.Notifier
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	store adapter.TransactionStore,
	refresh *RefreshDashboardUseCase,
	notifier adapter.Notifier,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		store:    store,
		refresh:  refresh,
		notifier: notifier,
	}
}

// Execute validates the form, creates the transaction in the store and
// re-fetches so the returned views include it.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	txnInput, err := uc.refresh.resolveTransactionForm(ctx, input.Form)
	if err != nil {
		return nil, err
	}

	transaction, err := uc.store.CreateTransaction(ctx, txnInput)
	if err != nil {
		slog.Warn("Transaction creation rejected", "category", txnInput.Category, "error", err)
		notifyFailure(ctx, uc.notifier, err)
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	views, stale := uc.refresh.afterMutation(ctx)
	return &CreateTransactionOutput{
		Transaction: transaction,
		Views:       views,
		Stale:       stale,
	}, nil
}
