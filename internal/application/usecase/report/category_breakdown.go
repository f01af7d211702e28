package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

// percentScale is the number of decimal places kept for display percentages.
const percentScale = 2

// ComputeCategoryBreakdown sums amounts per category for transactions of the
// given type. Categories without matching transactions are omitted.
func ComputeCategoryBreakdown(
	transactions []entity.Transaction,
	transactionType entity.TransactionType,
) (entity.CategoryBreakdown, error) {
	if err := validateType(transactionType); err != nil {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeUnknownTransactionType,
			"breakdown requested for an unknown type",
			err,
		)
	}

	breakdown := make(entity.CategoryBreakdown)
	for i := range transactions {
		txn := &transactions[i]
		if err := validateTransaction(txn); err != nil {
			return nil, err
		}
		if txn.Type != transactionType {
			continue
		}

		current, ok := breakdown[txn.Category]
		if !ok {
			current = decimal.Zero
		}
		breakdown[txn.Category] = current.Add(txn.Amount)
	}

	return breakdown, nil
}

// Share returns part divided by total. When total is zero the share is
// undefined; Share reports zero so callers can display 0%.
func Share(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total)
}

// BreakdownItem is one category of a breakdown, prepared for display.
type BreakdownItem struct {
	Category   string
	Amount     decimal.Decimal
	Percentage decimal.Decimal
}

// BreakdownItems flattens a breakdown into a slice sorted by descending amount,
// then by name. Percentage is the share of the breakdown total, in percent,
// rounded to two decimal places.
func BreakdownItems(breakdown entity.CategoryBreakdown) []BreakdownItem {
	total := breakdown.Total()
	hundred := decimal.NewFromInt(100)

	items := make([]BreakdownItem, 0, len(breakdown))
	for name, amount := range breakdown {
		items = append(items, BreakdownItem{
			Category:   name,
			Amount:     amount,
			Percentage: Share(amount, total).Mul(hundred).Round(percentScale),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if cmp := items[i].Amount.Cmp(items[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return items[i].Category < items[j].Category
	})

	return items
}
