package dependency

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/insights/config"
	"github.com/finance-tracker/insights/internal/infra/cache"
	"github.com/finance-tracker/insights/internal/integration/notification"
)

func newStore(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/categories":
			_, _ = io.WriteString(w, `[{"id": 1, "name": "Food", "type": "expense"}]`)
		case "/transactions":
			_, _ = io.WriteString(w, `[{"id": 1, "amount": 12.5, "type": "expense", "category": "Food", "date": "2024-01-02T00:00:00Z"}]`)
		case "/transactions/monthly":
			_, _ = io.WriteString(w, `[{"month": "2024-01", "total_income": 0, "total_expenses": 12.5, "net_amount": -12.5}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(storeURL string) *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Store.BaseURL = storeURL
	cfg.Store.Timeout = time.Second
	cfg.RateLimit = config.RateLimitConfig{MaxAttempts: 2, Window: time.Minute}
	cfg.CORS.AllowedOrigins = []string{"http://app.test"}
	return cfg
}

func TestNewInjector_MemoryNotifications(t *testing.T) {
	store := newStore(t)

	injector, err := NewInjector(testConfig(store.URL), nil)
	require.NoError(t, err)
	assert.IsType(t, &notification.MemoryNotifier{}, injector.Notifier)

	engine := injector.Router.Setup("test")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"balance":"-12.50"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.True(t, injector.State.Loaded())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"notifications":"memory"`)
}

func TestNewInjector_TestEnvironmentRaisesRateLimit(t *testing.T) {
	store := newStore(t)

	injector, err := NewInjector(testConfig(store.URL), nil)
	require.NoError(t, err)
	engine := injector.Router.Setup("test")

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestNewInjector_ProductionRateLimitAndCORS(t *testing.T) {
	store := newStore(t)
	cfg := testConfig(store.URL)
	cfg.Server.Environment = "production"

	injector, err := NewInjector(cfg, nil)
	require.NoError(t, err)
	engine := injector.Router.Setup("test")

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusTooManyRequests}, codes)

	// preflight
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/dashboard", nil)
	req.Header.Set("Origin", "http://app.test")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewInjector_RedisNotifications(t *testing.T) {
	store := newStore(t)
	server := miniredis.RunT(t)

	redisConn, err := cache.NewRedisConnection(&config.RedisConfig{URL: "redis://" + server.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisConn.Close() })

	injector, err := NewInjector(testConfig(store.URL), redisConn)
	require.NoError(t, err)
	assert.IsType(t, &notification.RedisNotifier{}, injector.Notifier)

	w := httptest.NewRecorder()
	injector.Router.Setup("test").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Contains(t, w.Body.String(), `"notifications":"redis"`)
	assert.Contains(t, w.Body.String(), `"store":"connected"`)
}

func TestNewInjector_InvalidStoreURL(t *testing.T) {
	_, err := NewInjector(testConfig("store:8080"), nil)
	assert.Error(t, err)
}
