package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/insights/internal/application/adapter"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/integration/entrypoint/dto"
)

// NotificationController handles notification endpoints.
type NotificationController struct {
	notifier adapter.Notifier
}

// NewNotificationController creates a new notification controller instance.
func NewNotificationController(notifier adapter.Notifier) *NotificationController {
	return &NotificationController{notifier: notifier}
}

// List handles GET /notifications requests.
func (c *NotificationController) List(ctx *gin.Context) {
	notifications, err := c.notifier.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToNotificationListResponse(notifications))
}

// Dismiss handles DELETE /notifications/:id requests.
func (c *NotificationController) Dismiss(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, domainerror.ErrCodeInvalidID, "Invalid notification ID")
		return
	}

	if err := c.notifier.Dismiss(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
