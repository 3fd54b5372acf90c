package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/services"
)

// TenantHeader carries the tenant a request acts for. It is set by the
// upstream authentication layer.
const TenantHeader = "X-Tenant-ID"

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

// TenantContextKey is the context key for the resolved tenant ID
const TenantContextKey ContextKey = "tenant_id"

// TenantMiddleware resolves the request tenant against the active tenants
type TenantMiddleware struct {
	logger  *logger.Logger
	tenants services.TenantService
}

// NewTenantMiddleware creates a new tenant middleware
func NewTenantMiddleware(logger *logger.Logger, tenants services.TenantService) *TenantMiddleware {
	return &TenantMiddleware{logger: logger, tenants: tenants}
}

// RequireTenant rejects requests without an active tenant and stores the
// tenant ID in the request context
func (m *TenantMiddleware) RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.Header.Get(TenantHeader)
		if tenantID == "" {
			writeError(w, http.StatusBadRequest, "Missing "+TenantHeader+" header")
			return
		}

		tenant, err := m.tenants.ResolveActive(r.Context(), tenantID)
		switch {
		case errors.Is(err, services.ErrNotFound):
			writeError(w, http.StatusNotFound, "Tenant not found")
			return
		case errors.Is(err, services.ErrTenantInactive):
			m.logger.WithTenant(tenantID).Warn("Request for inactive tenant rejected")
			writeError(w, http.StatusForbidden, "Tenant is inactive")
			return
		case err != nil:
			m.logger.WithTenant(tenantID).WithError(err).Error("Failed to resolve tenant")
			writeError(w, http.StatusInternalServerError, "Failed to resolve tenant")
			return
		}

		ctx := context.WithValue(r.Context(), TenantContextKey, tenant.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TenantIDFromContext returns the tenant resolved by RequireTenant
func TenantIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(TenantContextKey).(string)
	return id, ok && id != ""
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":     message,
		"status":    statusCode,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
