package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
)

// DeriveViews computes every derived view from one snapshot: the summary, the
// expense and income breakdowns and the monthly series. It is the single
// entry point the presentation side calls after each snapshot change.
func DeriveViews(snapshot *entity.Snapshot) (*entity.Views, error) {
	if snapshot == nil {
		snapshot = &entity.Snapshot{}
	}

	summary, err := ComputeSummary(snapshot.Transactions)
	if err != nil {
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}

	expenses, err := ComputeCategoryBreakdown(snapshot.Transactions, entity.TransactionTypeExpense)
	if err != nil {
		return nil, fmt.Errorf("failed to compute expense breakdown: %w", err)
	}

	income, err := ComputeCategoryBreakdown(snapshot.Transactions, entity.TransactionTypeIncome)
	if err != nil {
		return nil, fmt.Errorf("failed to compute income breakdown: %w", err)
	}

	series, err := BuildMonthlySeries(snapshot.MonthlyReport)
	if err != nil {
		return nil, fmt.Errorf("failed to build monthly series: %w", err)
	}

	return &entity.Views{
		Summary:          summary,
		ExpenseBreakdown: expenses,
		IncomeBreakdown:  income,
		Series:           series,
		DerivedAt:        snapshot.FetchedAt,
	}, nil
}

// FilterTransactions returns the transactions matching the filter, preserving
// input order. Date bounds are inclusive and compare calendar dates.
func FilterTransactions(transactions []entity.Transaction, filter entity.TransactionFilter) []entity.Transaction {
	if filter.IsEmpty() {
		return transactions
	}

	result := make([]entity.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if filter.Type != nil && txn.Type != *filter.Type {
			continue
		}
		if filter.Category != "" && txn.Category != filter.Category {
			continue
		}
		if filter.StartDate != nil && calendarDate(txn.Date) < calendarDate(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && calendarDate(txn.Date) > calendarDate(*filter.EndDate) {
			continue
		}
		result = append(result, txn)
	}
	return result
}

// MonthlyRowsFromTransactions groups transactions into monthly report rows,
// newest month first, the same shape the store's monthly report returns. It is
// used when views are derived for a filtered period.
func MonthlyRowsFromTransactions(transactions []entity.Transaction) []entity.MonthlyReportRow {
	totals := make(map[entity.MonthKey]*monthTotals)
	for _, txn := range transactions {
		key := entity.MonthKeyOf(txn.Date)
		bucket, ok := totals[key]
		if !ok {
			bucket = &monthTotals{income: decimal.Zero, expenses: decimal.Zero}
			totals[key] = bucket
		}
		switch txn.Type {
		case entity.TransactionTypeIncome:
			bucket.income = bucket.income.Add(txn.Amount)
		case entity.TransactionTypeExpense:
			bucket.expenses = bucket.expenses.Add(txn.Amount)
		}
	}

	keys := make([]entity.MonthKey, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[j].Before(keys[i])
	})

	rows := make([]entity.MonthlyReportRow, 0, len(keys))
	for _, key := range keys {
		bucket := totals[key]
		rows = append(rows, entity.MonthlyReportRow{
			Month:         key.String(),
			TotalIncome:   bucket.income,
			TotalExpenses: bucket.expenses,
			NetAmount:     bucket.income.Sub(bucket.expenses),
		})
	}
	return rows
}

// calendarDate flattens a timestamp to a comparable yyyymmdd integer in its own location.
func calendarDate(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
