package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/application/usecase/report"
	"github.com/finance-tracker/insights/internal/domain/entity"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	ID int64
}

// DeleteTransactionOutput represents the output of transaction deletion.
type DeleteTransactionOutput struct {
	Views *entity.Views
	Stale bool
}

// DeleteTransactionUseCase deletes a transaction optimistically: the local
// views drop it before the store confirms, and are restored if the store refuses.
type DeleteTransactionUseCase struct {
	store    adapter.TransactionStore
	state    *ViewState
	refresh  *RefreshDashboardUseCase
	notifier adapter.Notifier
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	store adapter.TransactionStore,
	state *ViewState,
	refresh *RefreshDashboardUseCase,
	notifier adapter.Notifier,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		store:    store,
		state:    state,
		refresh:  refresh,
		notifier: notifier,
	}
}

// Execute removes the transaction locally, deletes it in the store and then
// re-fetches. On failure the state is rolled back by a fresh fetch, or to the
// pre-delete pair when that fetch fails too.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	if err := validateTransactionID(input.ID); err != nil {
		return nil, err
	}

	if _, err := uc.refresh.ensureSnapshot(ctx); err != nil {
		return nil, err
	}

	generation := uc.state.nextGeneration()
	previousSnapshot, previousViews := uc.state.Current()

	optimistic := previousSnapshot.WithoutTransaction(input.ID)
	if optimisticViews, err := report.DeriveViews(optimistic); err == nil {
		uc.state.commit(generation, optimistic, optimisticViews)
	} else {
		slog.Warn("Skipping optimistic delete", "id", input.ID, "error", err)
	}

	if err := uc.store.DeleteTransaction(ctx, input.ID); err != nil {
		slog.Warn("Transaction deletion failed, rolling back", "id", input.ID, "error", err)
		notifyFailure(ctx, uc.notifier, err)
		uc.rollback(ctx, previousSnapshot, previousViews)
		return nil, fmt.Errorf("failed to delete transaction: %w", err)
	}

	views, stale := uc.refresh.afterMutation(ctx)
	return &DeleteTransactionOutput{Views: views, Stale: stale}, nil
}

func (uc *DeleteTransactionUseCase) rollback(ctx context.Context, snapshot *entity.Snapshot, views *entity.Views) {
	if _, err := uc.refresh.Execute(ctx); err == nil {
		return
	}
	uc.state.commit(uc.state.nextGeneration(), snapshot, views)
	slog.Info("Restored pre-delete dashboard state")
}
