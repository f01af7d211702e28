// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/insights/config"
	"github.com/finance-tracker/insights/internal/infra/cache"
	"github.com/finance-tracker/insights/internal/infra/dependency"
	"github.com/finance-tracker/insights/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	client       *http.Client
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Dependencies
	injector *dependency.Injector
	redis    *cache.Redis
}

// suite-wide doubles, created once and cleared before each scenario
var (
	testDB    *mock.Db
	testStore *mock.Store
	testRedis *mock.Redis
	testClock *mock.Time
)

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		var err error
		testDB, err = mock.NewDb()
		if err != nil {
			panic(fmt.Sprintf("failed to open store database: %v", err))
		}
		testRedis, err = mock.NewRedis()
		if err != nil {
			panic(fmt.Sprintf("failed to start miniredis: %v", err))
		}
		testClock = mock.NewTime()
		testStore = mock.NewStore(testDB, testClock.Now)
	})

	ctx.AfterSuite(func() {
		testStore.Close()
		testRedis.Close()
		_ = testDB.Close()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if err := testDB.ClearDB(); err != nil {
			return ctx, fmt.Errorf("failed to clear store database: %w", err)
		}
		if err := testRedis.ClearRedis(); err != nil {
			return ctx, fmt.Errorf("failed to clear redis: %w", err)
		}
		testStore.Reset()
		testClock.SetCurrentTime(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))

		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil {
			tc.close()
		}
		return ctx, nil
	})

	registerStoreSteps(ctx)
	registerAPISteps(ctx)
	registerResponseSteps(ctx)
}

// newTestContext wires a fresh application against the suite doubles, so
// every scenario starts with an empty dashboard state.
func newTestContext() (*TestContext, error) {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Store.BaseURL = testStore.URL()
	cfg.Store.Timeout = 2 * time.Second
	cfg.Store.RetryBackoff = 10 * time.Millisecond
	cfg.Redis = config.RedisConfig{URL: testRedis.URL()}

	redisConn, err := cache.NewRedisConnection(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	injector, err := dependency.NewInjector(cfg, redisConn)
	if err != nil {
		_ = redisConn.Close()
		return nil, err
	}

	return &TestContext{
		server:         httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
		client:         &http.Client{Timeout: 10 * time.Second},
		requestHeaders: make(map[string]string),
		injector:       injector,
		redis:          redisConn,
	}, nil
}

func (tc *TestContext) close() {
	if tc.server != nil {
		tc.server.Close()
	}
	if tc.redis != nil {
		_ = tc.redis.Close()
	}
}
