package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/insights/internal/application/usecase/dashboard"
	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getDashboardUseCase *dashboard.GetDashboardUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(getDashboardUseCase *dashboard.GetDashboardUseCase) *DashboardController {
	return &DashboardController{
		getDashboardUseCase: getDashboardUseCase,
	}
}

// Get handles GET /dashboard requests.
func (c *DashboardController) Get(ctx *gin.Context) {
	output, ok := c.load(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output.Views, output.Filtered))
}

// Summary handles GET /dashboard/summary requests.
func (c *DashboardController) Summary(ctx *gin.Context) {
	output, ok := c.load(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output.Views.Summary))
}

// Categories handles GET /dashboard/categories requests.
// The type query parameter selects expense (default) or income.
func (c *DashboardController) Categories(ctx *gin.Context) {
	txnType := entity.TransactionTypeExpense
	if value := ctx.Query("type"); value != "" {
		parsed, err := entity.ParseTransactionType(value)
		if err != nil {
			badRequest(ctx, domainerror.ErrCodeInvalidQueryType, "type must be 'income' or 'expense'")
			return
		}
		txnType = parsed
	}

	output, ok := c.load(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.ToBreakdownResponse(txnType, output.Views.Breakdown(txnType)))
}

// Monthly handles GET /dashboard/monthly requests.
func (c *DashboardController) Monthly(ctx *gin.Context) {
	output, ok := c.load(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"months": dto.ToMonthlyResponse(output.Views.Series)})
}

func (c *DashboardController) load(ctx *gin.Context) (*dashboard.GetDashboardOutput, bool) {
	start, end, ok := parseDateRange(ctx)
	if !ok {
		return nil, false
	}

	output, err := c.getDashboardUseCase.Execute(ctx.Request.Context(), dashboard.GetDashboardInput{
		Refresh:   ctx.Query("refresh") == "true",
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		respondError(ctx, err)
		return nil, false
	}
	return output, true
}
