package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/insights/internal/application/usecase/dashboard"
	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase   *dashboard.ListTransactionsUseCase
	getUseCase    *dashboard.GetTransactionUseCase
	createUseCase *dashboard.CreateTransactionUseCase
	updateUseCase *dashboard.UpdateTransactionUseCase
	deleteUseCase *dashboard.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *dashboard.ListTransactionsUseCase,
	getUseCase *dashboard.GetTransactionUseCase,
	createUseCase *dashboard.CreateTransactionUseCase,
	updateUseCase *dashboard.UpdateTransactionUseCase,
	deleteUseCase *dashboard.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	var filter entity.TransactionFilter

	if value := ctx.Query("type"); value != "" {
		txnType, err := entity.ParseTransactionType(value)
		if err != nil {
			badRequest(ctx, domainerror.ErrCodeInvalidQueryType, "type must be 'income' or 'expense'")
			return
		}
		filter.Type = &txnType
	}
	filter.Category = ctx.Query("category")

	start, end, ok := parseDateRange(ctx)
	if !ok {
		return
	}
	filter.StartDate = start
	filter.EndDate = end

	transactions, err := c.listUseCase.Execute(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(transactions))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	txn, err := c.getUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	form, ok := bindTransactionForm(ctx)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), dashboard.CreateTransactionInput{Form: form})
	if err != nil {
		respondError(ctx, err)
		return
	}

	txn := dto.ToTransactionResponse(output.Transaction)
	ctx.JSON(http.StatusCreated, dto.TransactionMutationResponse{
		Transaction: &txn,
		Dashboard:   dto.ToDashboardResponse(output.Views, false),
		Stale:       output.Stale,
	})
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	form, ok := bindTransactionForm(ctx)
	if !ok {
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), dashboard.UpdateTransactionInput{
		ID:   id,
		Form: form,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	txn := dto.ToTransactionResponse(output.Transaction)
	ctx.JSON(http.StatusOK, dto.TransactionMutationResponse{
		Transaction: &txn,
		Dashboard:   dto.ToDashboardResponse(output.Views, false),
		Stale:       output.Stale,
	})
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), dashboard.DeleteTransactionInput{ID: id})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TransactionMutationResponse{
		Dashboard: dto.ToDashboardResponse(output.Views, false),
		Stale:     output.Stale,
	})
}

func bindTransactionForm(ctx *gin.Context) (dashboard.TransactionForm, bool) {
	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, domainerror.ErrCodeInvalidRequestBody, "Invalid request body: "+err.Error())
		return dashboard.TransactionForm{}, false
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		badRequest(ctx, domainerror.ErrCodeInvalidDateFormat, "Invalid date format. Use YYYY-MM-DD")
		return dashboard.TransactionForm{}, false
	}

	return dashboard.TransactionForm{
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	}, true
}
