package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/application/usecase/report"
	"github.com/finance-tracker/insights/internal/domain/entity"
)

// SummaryResponse represents the summary cards.
type SummaryResponse struct {
	TotalIncome   string `json:"total_income"`
	TotalExpenses string `json:"total_expenses"`
	Balance       string `json:"balance"`
}

// BreakdownItemResponse represents one slice of a category breakdown.
type BreakdownItemResponse struct {
	Category   string `json:"category"`
	Amount     string `json:"amount"`
	Percentage string `json:"percentage"`
}

// BreakdownResponse represents the breakdown of one transaction type by category.
type BreakdownResponse struct {
	Type  string                  `json:"type"`
	Total string                  `json:"total"`
	Items []BreakdownItemResponse `json:"items"`
}

// MonthlyPointResponse represents one month of the income/expense series.
type MonthlyPointResponse struct {
	Month    string `json:"month"`
	Label    string `json:"label"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
}

// DashboardResponse represents every derived view.
type DashboardResponse struct {
	Summary   SummaryResponse        `json:"summary"`
	Expenses  BreakdownResponse      `json:"expenses"`
	Income    BreakdownResponse      `json:"income"`
	Monthly   []MonthlyPointResponse `json:"monthly"`
	DerivedAt time.Time              `json:"derived_at"`
	Filtered  bool                   `json:"filtered,omitempty"`
}

// money renders an amount or a percentage with exactly two decimal places.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ToSummaryResponse converts a Summary to its DTO.
func ToSummaryResponse(summary entity.Summary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:   money(summary.TotalIncome),
		TotalExpenses: money(summary.TotalExpenses),
		Balance:       money(summary.Balance),
	}
}

// ToBreakdownResponse converts a breakdown to its DTO, largest category first.
func ToBreakdownResponse(txnType entity.TransactionType, breakdown entity.CategoryBreakdown) BreakdownResponse {
	items := report.BreakdownItems(breakdown)
	response := BreakdownResponse{
		Type:  txnType.String(),
		Total: money(breakdown.Total()),
		Items: make([]BreakdownItemResponse, len(items)),
	}
	for i, item := range items {
		response.Items[i] = BreakdownItemResponse{
			Category:   item.Category,
			Amount:     money(item.Amount),
			Percentage: money(item.Percentage),
		}
	}
	return response
}

// ToMonthlyResponse converts a monthly series to its DTO.
func ToMonthlyResponse(series entity.MonthlySeries) []MonthlyPointResponse {
	points := make([]MonthlyPointResponse, len(series))
	for i, point := range series {
		points[i] = MonthlyPointResponse{
			Month:    point.Month.String(),
			Label:    point.MonthLabel,
			Income:   money(point.Income),
			Expenses: money(point.Expenses),
			Net:      money(point.Net),
		}
	}
	return points
}

// ToDashboardResponse converts the derived views to their DTO.
func ToDashboardResponse(views *entity.Views, filtered bool) DashboardResponse {
	if views == nil {
		views = &entity.Views{}
	}
	return DashboardResponse{
		Summary:   ToSummaryResponse(views.Summary),
		Expenses:  ToBreakdownResponse(entity.TransactionTypeExpense, views.ExpenseBreakdown),
		Income:    ToBreakdownResponse(entity.TransactionTypeIncome, views.IncomeBreakdown),
		Monthly:   ToMonthlyResponse(views.Series),
		DerivedAt: views.DerivedAt,
		Filtered:  filtered,
	}
}
