package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/finance-tracker/insights/internal/application/usecase/report"
	"github.com/finance-tracker/insights/internal/domain/entity"
)

// GetDashboardInput represents the input for reading the dashboard views.
type GetDashboardInput struct {
	// Refresh forces a re-fetch from the store before deriving.
	Refresh   bool
	StartDate *time.Time
	EndDate   *time.Time
}

// GetDashboardOutput represents the output of reading the dashboard views.
type GetDashboardOutput struct {
	Views *entity.Views
	// Filtered is true when the views were derived from a date-restricted transaction list.
	Filtered bool
}

// GetDashboardUseCase serves the latest views, fetching a snapshot when none
// is loaded yet.
type GetDashboardUseCase struct {
	state   *ViewState
	refresh *RefreshDashboardUseCase
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(state *ViewState, refresh *RefreshDashboardUseCase) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		state:   state,
		refresh: refresh,
	}
}

// Execute returns the dashboard views. With a period the views are derived
// from the matching transactions only, and the monthly series is rebuilt from
// those transactions instead of the store's monthly report.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*GetDashboardOutput, error) {
	if input.Refresh || !uc.state.Loaded() {
		if _, err := uc.refresh.Execute(ctx); err != nil {
			return nil, err
		}
	}

	snapshot, views := uc.state.Current()
	if input.StartDate == nil && input.EndDate == nil {
		return &GetDashboardOutput{Views: views}, nil
	}

	filtered := report.FilterTransactions(snapshot.Transactions, entity.TransactionFilter{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	periodViews, err := report.DeriveViews(&entity.Snapshot{
		Transactions:  filtered,
		Categories:    snapshot.Categories,
		MonthlyReport: report.MonthlyRowsFromTransactions(filtered),
		FetchedAt:     snapshot.FetchedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to derive period views: %w", err)
	}

	return &GetDashboardOutput{Views: periodViews, Filtered: true}, nil
}
