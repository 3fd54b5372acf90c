package security

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreprog02/saas-sst/internal/config"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/middleware"
)

func TestRateLimiter(t *testing.T) {
	clock := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(3, time.Minute)
	rl.now = func() time.Time { return clock }

	t.Run("limit per key", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			assert.True(t, rl.Allow("tenant-a"))
		}
		assert.False(t, rl.Allow("tenant-a"))
		assert.True(t, rl.Allow("tenant-b"))
	})

	t.Run("retry after the window", func(t *testing.T) {
		clock = clock.Add(20 * time.Second)
		assert.Equal(t, 40*time.Second, rl.RetryAfter("tenant-a"))
		assert.Zero(t, rl.RetryAfter("unknown"))

		clock = clock.Add(40 * time.Second)
		assert.True(t, rl.Allow("tenant-a"))
	})

	t.Run("sweep idle buckets", func(t *testing.T) {
		clock = clock.Add(5 * time.Minute)
		assert.Equal(t, 2, rl.Sweep(2*time.Minute))
		assert.Equal(t, 0, rl.Stats()["active_keys"])
	})
}

func TestRateLimiter_RunStopsWithContext(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		rl.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func newMiddleware(limit int) (*SecurityMiddleware, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	cfg := &config.Config{
		Logging:  config.LoggingConfig{Level: "error"},
		Security: config.SecurityConfig{RateLimitPerMinute: limit},
	}
	return NewSecurityMiddleware(cfg, logger.NewLogger(cfg), reg), reg
}

func tenantRequest(tenantID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	return req.WithContext(context.WithValue(req.Context(), middleware.TenantContextKey, tenantID))
}

func TestRateLimitByTenant(t *testing.T) {
	m, _ := newMiddleware(2)
	handler := m.RateLimitByTenant(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, tenantRequest("tenant-a"))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, tenantRequest("tenant-a"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected.WithLabelValues("tenant-a")))

	// another tenant has its own budget
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, tenantRequest("tenant-b"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitByTenant_Disabled(t *testing.T) {
	m, _ := newMiddleware(0)
	assert.Nil(t, m.RateLimiter())

	handler := m.RateLimitByTenant(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, tenantRequest("tenant-a"))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	m, _ := newMiddleware(0)
	rec := httptest.NewRecorder()
	m.SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "deny", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "frame-ancestors 'none'")
}
