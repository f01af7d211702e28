package report

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

func newRow(month, income, expenses string) entity.MonthlyReportRow {
	return entity.MonthlyReportRow{
		Month:         month,
		TotalIncome:   decimal.RequireFromString(income),
		TotalExpenses: decimal.RequireFromString(expenses),
	}
}

func TestBuildMonthlySeries_SingleRow(t *testing.T) {
	series, err := BuildMonthlySeries([]entity.MonthlyReportRow{newRow("2024-01", "1000", "400")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected 1 point, got %d", len(series))
	}

	point := series[0]
	if point.MonthLabel != "Jan 2024" {
		t.Errorf("expected label Jan 2024, got %s", point.MonthLabel)
	}
	if got := point.Income.StringFixed(2); got != "1000.00" {
		t.Errorf("expected income 1000.00, got %s", got)
	}
	if got := point.Expenses.StringFixed(2); got != "400.00" {
		t.Errorf("expected expenses 400.00, got %s", got)
	}
	if got := point.Net.StringFixed(2); got != "600.00" {
		t.Errorf("expected net 600.00, got %s", got)
	}
}

func TestBuildMonthlySeries_Ordering(t *testing.T) {
	tests := []struct {
		name     string
		months   []string
		expected []string
	}{
		{
			name:     "shuffled input",
			months:   []string{"2024-03", "2024-01", "2024-02"},
			expected: []string{"Jan 2024", "Feb 2024", "Mar 2024"},
		},
		{
			name:     "newest first as returned by the store",
			months:   []string{"2024-02", "2024-01", "2023-12", "2023-11"},
			expected: []string{"Nov 2023", "Dec 2023", "Jan 2024", "Feb 2024"},
		},
		{
			name:     "already ascending",
			months:   []string{"2022-10", "2023-10"},
			expected: []string{"Oct 2022", "Oct 2023"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]entity.MonthlyReportRow, 0, len(tt.months))
			for _, month := range tt.months {
				rows = append(rows, newRow(month, "1", "1"))
			}

			series, err := BuildMonthlySeries(rows)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(series) != len(tt.expected) {
				t.Fatalf("expected %d points, got %d", len(tt.expected), len(series))
			}

			for i, label := range tt.expected {
				if series[i].MonthLabel != label {
					t.Errorf("position %d: expected %s, got %s", i, label, series[i].MonthLabel)
				}
			}
			for i := 1; i < len(series); i++ {
				if !series[i-1].Month.Before(series[i].Month) {
					t.Errorf("series not strictly ascending at %d: %s then %s",
						i, series[i-1].Month, series[i].Month)
				}
			}
		})
	}
}

func TestBuildMonthlySeries_DuplicateMonthsAreMerged(t *testing.T) {
	rows := []entity.MonthlyReportRow{
		newRow("2024-05", "100", "40"),
		newRow("2024-04", "10", "0"),
		newRow("2024-05", "50.25", "10.10"),
	}

	series, err := BuildMonthlySeries(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series))
	}

	may := series[1]
	if may.MonthLabel != "May 2024" {
		t.Fatalf("expected May 2024 last, got %s", may.MonthLabel)
	}
	assertDecimal(t, "income", "150.25", may.Income)
	assertDecimal(t, "expenses", "50.10", may.Expenses)
	assertDecimal(t, "net", "100.15", may.Net)
}

func TestBuildMonthlySeries_Rounding(t *testing.T) {
	series, err := BuildMonthlySeries([]entity.MonthlyReportRow{
		newRow("2024-07", "10.005", "3.333"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	point := series[0]
	assertDecimal(t, "income", "10.01", point.Income)
	assertDecimal(t, "expenses", "3.33", point.Expenses)
	// 10.005 - 3.333 = 6.672
	assertDecimal(t, "net", "6.67", point.Net)
}

func TestBuildMonthlySeries_IgnoresReportedNet(t *testing.T) {
	row := newRow("2024-01", "100", "30")
	row.NetAmount = decimal.NewFromInt(999)

	series, err := BuildMonthlySeries([]entity.MonthlyReportRow{row})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "net", "70", series[0].Net)
}

func TestBuildMonthlySeries_Empty(t *testing.T) {
	series, err := BuildMonthlySeries(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 0 {
		t.Errorf("expected empty series, got %v", series)
	}
}

func TestBuildMonthlySeries_InvalidData(t *testing.T) {
	tests := []struct {
		name         string
		row          entity.MonthlyReportRow
		expectedCode domainerror.ReportErrorCode
	}{
		{name: "empty key", row: newRow("", "1", "1"), expectedCode: domainerror.ErrCodeMalformedMonthKey},
		{name: "full date", row: newRow("2024-01-15", "1", "1"), expectedCode: domainerror.ErrCodeMalformedMonthKey},
		{name: "month thirteen", row: newRow("2024-13", "1", "1"), expectedCode: domainerror.ErrCodeMalformedMonthKey},
		{name: "month zero", row: newRow("2024-00", "1", "1"), expectedCode: domainerror.ErrCodeMalformedMonthKey},
		{name: "slash separator", row: newRow("2024/01", "1", "1"), expectedCode: domainerror.ErrCodeMalformedMonthKey},
		{name: "signed month", row: newRow("2024-+1", "1", "1"), expectedCode: domainerror.ErrCodeMalformedMonthKey},
		{name: "negative income", row: newRow("2024-01", "-1", "1"), expectedCode: domainerror.ErrCodeNegativeMonthlyTotal},
		{name: "negative expenses", row: newRow("2024-01", "1", "-0.01"), expectedCode: domainerror.ErrCodeNegativeMonthlyTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildMonthlySeries([]entity.MonthlyReportRow{tt.row})
			if !errors.Is(err, domainerror.ErrInvalidData) {
				t.Fatalf("expected ErrInvalidData, got %v", err)
			}

			var reportErr *domainerror.ReportError
			if !errors.As(err, &reportErr) {
				t.Fatalf("expected *ReportError, got %T", err)
			}
			if reportErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, reportErr.Code)
			}
		})
	}
}

func TestMonthLabel(t *testing.T) {
	tests := []struct {
		month    string
		expected string
	}{
		{month: "2024-01", expected: "Jan 2024"},
		{month: "2023-09", expected: "Sep 2023"},
		{month: "1999-12", expected: "Dec 1999"},
		{month: "0999-05", expected: "May 0999"},
	}

	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			got, err := MonthLabel(tt.month)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}

	if _, err := MonthLabel("January 2024"); !errors.Is(err, domainerror.ErrInvalidData) {
		t.Errorf("expected ErrInvalidData for a malformed key, got %v", err)
	}
}
