// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/integration/entrypoint/dto"
)

// respondError maps a use case error onto a status code and error body.
// Form and store validation failures are 422, unknown ids 404, store
// transport failures 502 and invalid store data 500.
func respondError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	var storeErr *domainerror.StoreError
	if errors.As(err, &storeErr) {
		switch storeErr.Kind {
		case domainerror.StoreErrorKindNotFound:
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error: storeErr.Message,
				Code:  string(storeErr.Code),
			})
		case domainerror.StoreErrorKindValidation:
			ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
				Error: storeErr.Message,
				Code:  string(storeErr.Code),
			})
		default:
			ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{
				Error:   "Transaction store unavailable",
				Code:    string(storeErr.Code),
				Details: storeErr.Message,
			})
		}
		return
	}

	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		slog.Error("Store data violates the aggregation contract", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Invalid data received from the transaction store",
			Code:    string(reportErr.Code),
			Details: reportErr.Message,
		})
		return
	}

	slog.Error("Unexpected error", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Internal server error",
		Code:  string(domainerror.ErrCodeInternal),
	})
}

func badRequest(ctx *gin.Context, code domainerror.RequestErrorCode, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// parseID reads a positive integer path parameter.
func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(ctx, domainerror.ErrCodeInvalidID, "Invalid transaction ID")
		return 0, false
	}
	return id, true
}

// parseDateRange reads the optional start_date and end_date query parameters.
func parseDateRange(ctx *gin.Context) (start, end *time.Time, ok bool) {
	if value := ctx.Query("start_date"); value != "" {
		parsed, err := time.Parse(dto.DateLayout, value)
		if err != nil {
			badRequest(ctx, domainerror.ErrCodeInvalidDateFormat, "Invalid start_date format. Use YYYY-MM-DD")
			return nil, nil, false
		}
		start = &parsed
	}
	if value := ctx.Query("end_date"); value != "" {
		parsed, err := time.Parse(dto.DateLayout, value)
		if err != nil {
			badRequest(ctx, domainerror.ErrCodeInvalidDateFormat, "Invalid end_date format. Use YYYY-MM-DD")
			return nil, nil, false
		}
		end = &parsed
	}
	if start != nil && end != nil && start.After(*end) {
		badRequest(ctx, domainerror.ErrCodeInvalidDateRange, "start_date must not be after end_date")
		return nil, nil, false
	}
	return start, end, true
}
