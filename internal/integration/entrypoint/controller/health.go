package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// healthCheckTimeout bounds each dependency probe.
const healthCheckTimeout = 2 * time.Second

// HealthChecker probes one dependency.
type HealthChecker func(ctx context.Context) error

// HealthController handles health check endpoints.
type HealthController struct {
	storeChecker    HealthChecker
	notifierChecker HealthChecker
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status        string `json:"status"`
	Store         string `json:"store"`
	Notifications string `json:"notifications"`
	Timestamp     string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil notifierChecker means notifications are kept in memory.
func NewHealthController(storeChecker, notifierChecker HealthChecker) *HealthController {
	return &HealthController{
		storeChecker:    storeChecker,
		notifierChecker: notifierChecker,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies.
// Status stays "ok" while the store is down.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:        "ok",
		Store:         probe(c.Request.Context(), h.storeChecker, "connected"),
		Notifications: "memory",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}

	if h.notifierChecker != nil {
		response.Notifications = probe(c.Request.Context(), h.notifierChecker, "redis")
	}

	c.JSON(http.StatusOK, response)
}

func probe(ctx context.Context, checker HealthChecker, up string) string {
	if checker == nil {
		return "disconnected"
	}
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	if err := checker(ctx); err != nil {
		return "disconnected"
	}
	return up
}
