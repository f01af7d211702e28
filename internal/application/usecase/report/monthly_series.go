package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

// moneyScale is the number of decimal places monetary values are rounded to for display.
const moneyScale = 2

// monthTotals accumulates the totals of one month key.
type monthTotals struct {
	income   decimal.Decimal
	expenses decimal.Decimal
}

// BuildMonthlySeries turns monthly report rows, in any order, into a series
// ordered oldest to newest with one point per distinct month.
//
// Rows sharing a month key are merged by summing their totals. Net is derived
// from the exact totals (the row's NetAmount is ignored) and then income,
// expenses and net are rounded half away from zero to two decimal places.
func BuildMonthlySeries(rows []entity.MonthlyReportRow) (entity.MonthlySeries, error) {
	totals := make(map[entity.MonthKey]*monthTotals, len(rows))
	keys := make([]entity.MonthKey, 0, len(rows))

	for _, row := range rows {
		key, err := entity.ParseMonthKey(row.Month)
		if err != nil {
			return nil, domainerror.NewReportError(
				domainerror.ErrCodeMalformedMonthKey,
				fmt.Sprintf("monthly report row %q", row.Month),
				fmt.Errorf("%w: %v", domainerror.ErrMalformedMonthKey, err),
			)
		}

		if row.TotalIncome.IsNegative() || row.TotalExpenses.IsNegative() {
			return nil, domainerror.NewReportError(
				domainerror.ErrCodeNegativeMonthlyTotal,
				fmt.Sprintf("monthly report row %s has income %s and expenses %s",
					key, row.TotalIncome.String(), row.TotalExpenses.String()),
				domainerror.ErrNegativeMonthlyTotal,
			)
		}

		bucket, ok := totals[key]
		if !ok {
			bucket = &monthTotals{income: decimal.Zero, expenses: decimal.Zero}
			totals[key] = bucket
			keys = append(keys, key)
		}
		bucket.income = bucket.income.Add(row.TotalIncome)
		bucket.expenses = bucket.expenses.Add(row.TotalExpenses)
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].Before(keys[j])
	})

	series := make(entity.MonthlySeries, 0, len(keys))
	for _, key := range keys {
		bucket := totals[key]
		net := bucket.income.Sub(bucket.expenses)
		series = append(series, entity.MonthlyPoint{
			Month:      key,
			MonthLabel: FormatMonthLabel(key),
			Income:     bucket.income.Round(moneyScale),
			Expenses:   bucket.expenses.Round(moneyScale),
			Net:        net.Round(moneyScale),
		})
	}

	return series, nil
}

// FormatMonthLabel renders a month key as "{abbreviated month} {year}", e.g.
// "Jan 2024", using a fixed English table.
func FormatMonthLabel(key entity.MonthKey) string {
	return key.Label()
}

// MonthLabel parses a "YYYY-MM" key and formats it as a label.
func MonthLabel(month string) (string, error) {
	key, err := entity.ParseMonthKey(month)
	if err != nil {
		return "", domainerror.NewReportError(
			domainerror.ErrCodeMalformedMonthKey,
			fmt.Sprintf("month %q", month),
			fmt.Errorf("%w: %v", domainerror.ErrMalformedMonthKey, err),
		)
	}
	return FormatMonthLabel(key), nil
}
