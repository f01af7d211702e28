package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

// TransactionForm is a transaction as submitted by the user, before validation.
type TransactionForm struct {
	Amount      decimal.Decimal
	Type        string
	Category    string
	Description string
	Date        time.Time
}

// validateTransactionForm checks the form against the known categories and
// converts it into store input. Nothing reaches the store when it fails.
func validateTransactionForm(form TransactionForm, categories []entity.Category) (entity.TransactionInput, error) {
	txnType, err := entity.ParseTransactionType(strings.TrimSpace(form.Type))
	if err != nil {
		return entity.TransactionInput{}, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'income' or 'expense'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if !form.Amount.IsPositive() {
		return entity.TransactionInput{}, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if form.Date.IsZero() {
		return entity.TransactionInput{}, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	category := strings.TrimSpace(form.Category)
	if category == "" {
		return entity.TransactionInput{}, domainerror.NewTransactionError(
			domainerror.ErrCodeCategoryRequired,
			"category is required",
			domainerror.ErrCategoryRequired,
		)
	}

	if _, ok := entity.FindCategory(categories, category, txnType); !ok {
		return entity.TransactionInput{}, domainerror.NewTransactionError(
			domainerror.ErrCodeCategoryTypeMismatch,
			fmt.Sprintf("category '%s' is not a known %s category", category, txnType),
			domainerror.ErrCategoryTypeMismatch,
		)
	}

	return entity.TransactionInput{
		Amount:      form.Amount,
		Type:        txnType,
		Category:    category,
		Description: strings.TrimSpace(form.Description),
		Date:        form.Date,
	}, nil
}

// resolveTransactionForm validates the form against the loaded categories.
// An unknown category triggers one refresh before the form is rejected, so
// categories created in the store since the last refresh are accepted.
func (uc *RefreshDashboardUseCase) resolveTransactionForm(ctx context.Context, form TransactionForm) (entity.TransactionInput, error) {
	wasLoaded := uc.state.Loaded()
	snapshot, err := uc.ensureSnapshot(ctx)
	if err != nil {
		return entity.TransactionInput{}, err
	}

	input, err := validateTransactionForm(form, snapshot.Categories)
	var txnErr *domainerror.TransactionError
	if !wasLoaded || !errors.As(err, &txnErr) || txnErr.Code != domainerror.ErrCodeCategoryTypeMismatch {
		return input, err
	}

	if _, refreshErr := uc.Execute(ctx); refreshErr != nil {
		return input, err
	}
	snapshot, _ = uc.state.Current()
	return validateTransactionForm(form, snapshot.Categories)
}

func validateTransactionID(id int64) error {
	if id <= 0 {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionID,
			"transaction id must be a positive integer",
			nil,
		)
	}
	return nil
}
