package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/application/usecase/report"
	"github.com/finance-tracker/insights/internal/domain/entity"
)

// RefreshDashboardUseCase fetches a fresh snapshot from the store and
// re-derives every view from it.
type RefreshDashboardUseCase struct {
	store    adapter.TransactionStore
	state    *ViewState
	notifier adapter.Notifier
	now      func() time.Time
}

// NewRefreshDashboardUseCase creates a new RefreshDashboardUseCase instance.
func NewRefreshDashboardUseCase(
	store adapter.TransactionStore,
	state *ViewState,
	notifier adapter.Notifier,
) *RefreshDashboardUseCase {
	return &RefreshDashboardUseCase{
		store:    store,
		state:    state,
		notifier: notifier,
		now:      time.Now,
	}
}

// WithClock replaces the clock used to stamp snapshots.
func (uc *RefreshDashboardUseCase) WithClock(now func() time.Time) *RefreshDashboardUseCase {
	uc.now = now
	return uc
}

// Execute fetches transactions, categories and the monthly report in parallel,
// derives the views and publishes both. Failures leave the previous state untouched.
func (uc *RefreshDashboardUseCase) Execute(ctx context.Context) (*entity.Views, error) {
	generation := uc.state.nextGeneration()
	started := time.Now()

	snapshot, err := uc.fetchSnapshot(ctx)
	if err != nil {
		slog.Error("Failed to fetch dashboard snapshot", "error", err)
		notifyFailure(ctx, uc.notifier, err)
		return nil, err
	}

	views, err := report.DeriveViews(snapshot)
	if err != nil {
		slog.Error("Failed to derive dashboard views", "error", err)
		notifyFailure(ctx, uc.notifier, err)
		return nil, fmt.Errorf("failed to derive views: %w", err)
	}

	if !uc.state.commit(generation, snapshot, views) {
		// A newer refresh already landed; hand back what it published.
		_, current := uc.state.Current()
		return current, nil
	}

	slog.Info("Dashboard refreshed",
		"transactions", len(snapshot.Transactions),
		"categories", len(snapshot.Categories),
		"months", len(views.Series),
		"duration", time.Since(started),
	)
	return views, nil
}

func (uc *RefreshDashboardUseCase) fetchSnapshot(ctx context.Context) (*entity.Snapshot, error) {
	var (
		transactions []entity.Transaction
		categories   []entity.Category
		rows         []entity.MonthlyReportRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = uc.store.ListTransactions(gctx, entity.TransactionFilter{})
		if err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = uc.store.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rows, err = uc.store.MonthlyReport(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch monthly report: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &entity.Snapshot{
		Transactions:  transactions,
		Categories:    categories,
		MonthlyReport: rows,
		FetchedAt:     uc.now(),
	}, nil
}

// afterMutation refreshes the state following a successful store mutation.
// When the refresh fails the last published views are returned and stale is true.
func (uc *RefreshDashboardUseCase) afterMutation(ctx context.Context) (views *entity.Views, stale bool) {
	views, err := uc.Execute(ctx)
	if err != nil {
		slog.Warn("Refresh after mutation failed, serving previous views", "error", err)
		_, current := uc.state.Current()
		return current, true
	}
	return views, false
}

// ensureSnapshot returns the current snapshot, refreshing first when none is loaded.
func (uc *RefreshDashboardUseCase) ensureSnapshot(ctx context.Context) (*entity.Snapshot, error) {
	if snapshot, _ := uc.state.Current(); snapshot != nil {
		return snapshot, nil
	}
	if _, err := uc.Execute(ctx); err != nil {
		return nil, err
	}
	snapshot, _ := uc.state.Current()
	return snapshot, nil
}
