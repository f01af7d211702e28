package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/insights/internal/application/usecase/dashboard"
	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase   *dashboard.ListCategoriesUseCase
	createUseCase *dashboard.CreateCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *dashboard.ListCategoriesUseCase,
	createUseCase *dashboard.CreateCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	var txnType *entity.TransactionType
	if value := ctx.Query("type"); value != "" {
		parsed, err := entity.ParseTransactionType(value)
		if err != nil {
			badRequest(ctx, domainerror.ErrCodeInvalidQueryType, "type must be 'income' or 'expense'")
			return
		}
		txnType = &parsed
	}

	categories, err := c.listUseCase.Execute(ctx.Request.Context(), txnType)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(categories))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, domainerror.ErrCodeInvalidRequestBody, "Invalid request body: "+err.Error())
		return
	}

	category, err := c.createUseCase.Execute(ctx.Request.Context(), dashboard.CreateCategoryInput{
		Name: req.Name,
		Type: req.Type,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}
