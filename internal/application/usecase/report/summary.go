// Package report contains the transaction aggregation and reporting engine.
//
// Every function in this package is pure: it reads an in-memory snapshot,
// never performs I/O, holds no shared state and returns freshly allocated
// results. The functions are safe to call concurrently. The only failure mode
// is a *domainerror.ReportError (the InvalidDataError kind) on input that
// breaks the data contract.
package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

// ComputeSummary partitions transactions by type and sums each partition.
// The result does not depend on input order. An empty list yields all zeros.
func ComputeSummary(transactions []entity.Transaction) (entity.Summary, error) {
	income := decimal.Zero
	expenses := decimal.Zero

	for i := range transactions {
		txn := &transactions[i]
		if err := validateTransaction(txn); err != nil {
			return entity.Summary{}, err
		}

		switch txn.Type {
		case entity.TransactionTypeIncome:
			income = income.Add(txn.Amount)
		case entity.TransactionTypeExpense:
			expenses = expenses.Add(txn.Amount)
		}
	}

	return entity.Summary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
	}, nil
}

// validateTransaction checks the invariants the engine relies on. Category and
// type consistency is enforced upstream and not re-checked here.
func validateTransaction(txn *entity.Transaction) error {
	if err := validateType(txn.Type); err != nil {
		return domainerror.NewReportError(
			domainerror.ErrCodeUnknownTransactionType,
			fmt.Sprintf("transaction %d has an unknown type", txn.ID),
			err,
		)
	}

	if !txn.Amount.IsPositive() {
		return domainerror.NewReportError(
			domainerror.ErrCodeNonPositiveAmount,
			fmt.Sprintf("transaction %d has amount %s", txn.ID, txn.Amount.String()),
			domainerror.ErrNonPositiveAmount,
		)
	}

	return nil
}

func validateType(t entity.TransactionType) error {
	switch t {
	case entity.TransactionTypeIncome, entity.TransactionTypeExpense:
		return nil
	default:
		return fmt.Errorf("%w: %s", domainerror.ErrUnknownTransactionType, t)
	}
}
