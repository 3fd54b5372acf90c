package security

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/andreprog02/saas-sst/internal/config"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/middleware"
)

// SecurityMiddleware provides response hardening and per-tenant rate limiting
type SecurityMiddleware struct {
	logger      *logger.Logger
	rateLimiter *RateLimiter
	rejected    *prometheus.CounterVec
}

// NewSecurityMiddleware creates a new security middleware. A non-positive
// limit disables rate limiting.
func NewSecurityMiddleware(cfg *config.Config, logger *logger.Logger, reg prometheus.Registerer) *SecurityMiddleware {
	m := &SecurityMiddleware{
		logger: logger,
		rejected: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "sst_rate_limited_requests_total",
			Help: "Requests rejected by the per-tenant rate limit",
		}, []string{"tenant_id"}),
	}
	if cfg.Security.RateLimitPerMinute > 0 {
		m.rateLimiter = NewRateLimiter(cfg.Security.RateLimitPerMinute, time.Minute)
	}
	return m
}

// RateLimiter returns the limiter, or nil when limiting is disabled
func (m *SecurityMiddleware) RateLimiter() *RateLimiter {
	return m.rateLimiter
}

// SecurityHeaders adds security headers to responses
func (m *SecurityMiddleware) SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

		next.ServeHTTP(w, r)
	})
}

// RateLimitByTenant limits requests per resolved tenant. It must run after
// the tenant middleware.
func (m *SecurityMiddleware) RateLimitByTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantIDFromContext(r.Context())
		if m.rateLimiter == nil || !ok {
			next.ServeHTTP(w, r)
			return
		}

		if !m.rateLimiter.Allow(tenantID) {
			m.rejected.WithLabelValues(tenantID).Inc()
			m.logger.WithTenant(tenantID).Warn("Rate limit exceeded")

			retry := int(m.rateLimiter.RetryAfter(tenantID).Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":     "Rate limit exceeded",
				"status":    http.StatusTooManyRequests,
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
