// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/finance-tracker/insights/config"
	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/application/usecase/dashboard"
	"github.com/finance-tracker/insights/internal/infra/cache"
	"github.com/finance-tracker/insights/internal/infra/server/router"
	"github.com/finance-tracker/insights/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/insights/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/insights/internal/integration/notification"
	"github.com/finance-tracker/insights/internal/integration/store"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	Store       *store.Client
	Redis       *cache.Redis
	Notifier    adapter.Notifier
	State       *dashboard.ViewState
	RateLimiter *middleware.RateLimiter
	Router      *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// A nil redis connection keeps notifications in process memory.
func NewInjector(cfg *config.Config, redisConn *cache.Redis) (*Injector, error) {
	storeClient, err := store.NewClient(store.Config{
		BaseURL:      cfg.Store.BaseURL,
		Timeout:      cfg.Store.Timeout,
		MaxRetries:   cfg.Store.MaxRetries,
		RetryBackoff: cfg.Store.RetryBackoff,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create store client: %w", err)
	}

	// Create notifier
	notifyOpts := notification.Options{
		TTL:      cfg.Notifications.TTL,
		MaxItems: cfg.Notifications.MaxItems,
	}
	var notifier adapter.Notifier
	var notifierChecker controller.HealthChecker
	if redisConn != nil {
		notifier = notification.NewRedisNotifier(redisConn.Client(), notifyOpts)
		notifierChecker = redisConn.HealthCheck
		slog.Info("Notifications stored in Redis")
	} else {
		notifier = notification.NewMemoryNotifier(notifyOpts)
		slog.Info("Notifications stored in memory")
	}

	state := dashboard.NewViewState()

	// Create dashboard use cases
	refreshUseCase := dashboard.NewRefreshDashboardUseCase(storeClient, state, notifier)
	getDashboardUseCase := dashboard.NewGetDashboardUseCase(state, refreshUseCase)

	// Create transaction use cases
	listTransactionsUseCase := dashboard.NewListTransactionsUseCase(storeClient, notifier)
	getTransactionUseCase := dashboard.NewGetTransactionUseCase(storeClient)
	createTransactionUseCase := dashboard.NewCreateTransactionUseCase(storeClient, refreshUseCase, notifier)
	updateTransactionUseCase := dashboard.NewUpdateTransactionUseCase(storeClient, refreshUseCase, notifier)
	deleteTransactionUseCase := dashboard.NewDeleteTransactionUseCase(storeClient, state, refreshUseCase, notifier)

	// Create category use cases
	listCategoriesUseCase := dashboard.NewListCategoriesUseCase(storeClient, notifier)
	createCategoryUseCase := dashboard.NewCreateCategoryUseCase(storeClient, refreshUseCase, notifier)

	// Create controllers
	healthController := controller.NewHealthController(storeClient.Ping, notifierChecker)
	dashboardController := controller.NewDashboardController(getDashboardUseCase)
	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		getTransactionUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)
	categoryController := controller.NewCategoryController(listCategoriesUseCase, createCategoryUseCase)
	notificationController := controller.NewNotificationController(notifier)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var rateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		rateLimiter = middleware.NewRateLimiter(1000, cfg.RateLimit.Window)
	} else {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
	}

	r := router.NewRouter(
		healthController,
		dashboardController,
		transactionController,
		categoryController,
		notificationController,
		rateLimiter,
		cfg.CORS.AllowedOrigins,
	)

	return &Injector{
		Config:      cfg,
		Store:       storeClient,
		Redis:       redisConn,
		Notifier:    notifier,
		State:       state,
		RateLimiter: rateLimiter,
		Router:      r,
	}, nil
}
