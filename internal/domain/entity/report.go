// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyReportRow is one row of the store's monthly report query.
// Month is a "YYYY-MM" key; totals are non-negative sums for that month.
type MonthlyReportRow struct {
	Month         string
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetAmount     decimal.Decimal
}

// Snapshot is the immutable input of the aggregation engine: everything the
// presentation side fetched from the store in one refresh.
type Snapshot struct {
	Transactions  []Transaction
	Categories    []Category
	MonthlyReport []MonthlyReportRow
	FetchedAt     time.Time
}

// WithoutTransaction returns a copy of the snapshot with the given transaction removed.
// The receiver is left untouched.
func (s *Snapshot) WithoutTransaction(id int64) *Snapshot {
	transactions := make([]Transaction, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		if t.ID != id {
			transactions = append(transactions, t)
		}
	}
	return &Snapshot{
		Transactions:  transactions,
		Categories:    s.Categories,
		MonthlyReport: s.MonthlyReport,
		FetchedAt:     s.FetchedAt,
	}
}

// Summary holds aggregate totals over a transaction set.
// Balance is always TotalIncome minus TotalExpenses and may be negative.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
}

// CategoryBreakdown maps a category name to the summed amount of its
// transactions, restricted to one transaction type. Categories with no
// transactions are absent.
type CategoryBreakdown map[string]decimal.Decimal

// Total returns the sum of every bucket.
func (b CategoryBreakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range b {
		total = total.Add(amount)
	}
	return total
}

// MonthlyPoint is one entry of a monthly series, ready for charting.
type MonthlyPoint struct {
	Month      MonthKey
	MonthLabel string
	Income     decimal.Decimal
	Expenses   decimal.Decimal
	Net        decimal.Decimal
}

// MonthlySeries is ordered chronologically, oldest first, one point per month.
type MonthlySeries []MonthlyPoint

// Views bundles every derived view computed from one snapshot.
type Views struct {
	Summary          Summary
	ExpenseBreakdown CategoryBreakdown
	IncomeBreakdown  CategoryBreakdown
	Series           MonthlySeries
	DerivedAt        time.Time
}

// Breakdown returns the breakdown for the given type.
func (v *Views) Breakdown(t TransactionType) CategoryBreakdown {
	switch t {
	case TransactionTypeIncome:
		return v.IncomeBreakdown
	case TransactionTypeExpense:
		return v.ExpenseBreakdown
	default:
		return nil
	}
}
