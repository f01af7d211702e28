package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

// ListCategoriesUseCase lists the store's categories, optionally restricted to one type.
type ListCategoriesUseCase struct {
	store    adapter.TransactionStore
	notifier adapter.Notifier
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(store adapter.TransactionStore, notifier adapter.Notifier) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		store:    store,
		notifier: notifier,
	}
}

// Execute returns the categories, keeping only those of txnType when it is set.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, txnType *entity.TransactionType) ([]entity.Category, error) {
	categories, err := uc.store.ListCategories(ctx)
	if err != nil {
		notifyFailure(ctx, uc.notifier, err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if txnType != nil {
		categories = entity.CategoriesOfType(categories, *txnType)
	}
	return categories, nil
}

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name string
	Type string
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	store    adapter.TransactionStore
	refresh  *RefreshDashboardUseCase
	notifier adapter.Notifier
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(
	store adapter.TransactionStore,
	refresh *RefreshDashboardUseCase,
	notifier adapter.Notifier,
) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		store:    store,
		refresh:  refresh,
		notifier: notifier,
	}
}

// Execute creates the category and refreshes so transaction forms accept it.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidCategoryName,
			"category name is required",
			domainerror.ErrInvalidCategoryName,
		)
	}

	txnType, err := entity.ParseTransactionType(strings.TrimSpace(input.Type))
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'income' or 'expense'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	category, err := uc.store.CreateCategory(ctx, entity.CategoryInput{Name: name, Type: txnType})
	if err != nil {
		slog.Warn("Category creation rejected", "name", name, "error", err)
		notifyFailure(ctx, uc.notifier, err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	uc.refresh.afterMutation(ctx)
	return category, nil
}
