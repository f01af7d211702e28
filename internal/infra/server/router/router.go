// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/insights/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/insights/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	dashboardController    *controller.DashboardController
	transactionController  *controller.TransactionController
	categoryController     *controller.CategoryController
	notificationController *controller.NotificationController
	mutationRateLimiter    *middleware.RateLimiter
	allowedOrigins         []string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	dashboardController *controller.DashboardController,
	transactionController *controller.TransactionController,
	categoryController *controller.CategoryController,
	notificationController *controller.NotificationController,
	mutationRateLimiter *middleware.RateLimiter,
	allowedOrigins []string,
) *Router {
	return &Router{
		healthController:       healthController,
		dashboardController:    dashboardController,
		transactionController:  transactionController,
		categoryController:     categoryController,
		notificationController: notificationController,
		mutationRateLimiter:    mutationRateLimiter,
		allowedOrigins:         allowedOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	r.engine.Use(middleware.RequestID(), middleware.CORS(r.allowedOrigins))

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	limit := r.mutationLimit()

	v1 := r.engine.Group("/api/v1")
	{
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("", r.dashboardController.Get)
			dashboard.GET("/summary", r.dashboardController.Summary)
			dashboard.GET("/categories", r.dashboardController.Categories)
			dashboard.GET("/monthly", r.dashboardController.Monthly)
		}

		transactions := v1.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.GET("/:id", r.transactionController.Get)
			transactions.POST("", limit, r.transactionController.Create)
			transactions.PUT("/:id", limit, r.transactionController.Update)
			transactions.DELETE("/:id", limit, r.transactionController.Delete)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", limit, r.categoryController.Create)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", r.notificationController.List)
			notifications.DELETE("/:id", r.notificationController.Dismiss)
		}
	}
}

func (r *Router) mutationLimit() gin.HandlerFunc {
	if r.mutationRateLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return r.mutationRateLimiter.Middleware()
}
