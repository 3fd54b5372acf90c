package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/andreprog02/saas-sst/internal/config"
	"github.com/andreprog02/saas-sst/internal/database"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/services"
)

// componentCheck is one dependency checked by the health endpoints
type componentCheck struct {
	name     string
	critical bool
	ping     func(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	logger  *logger.Logger
	checks  []componentCheck
	db      *database.Connection
	timeout time.Duration
}

// NewHealthHandler creates a new health handler. Redis only gates readiness
// when the dashboard cache is enabled.
func NewHealthHandler(logger *logger.Logger, db *database.Connection, cache *services.CacheService, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		logger: logger,
		db:     db,
		checks: []componentCheck{
			{name: "database", critical: true, ping: db.Ping},
			{name: "redis", critical: cfg.Cache.Enabled, ping: cache.Ping},
		},
		timeout: 3 * time.Second,
	}
}

// ComponentHealth is the state of one dependency
type ComponentHealth struct {
	Status   string `json:"status"`
	Critical bool   `json:"critical"`
	Error    string `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
	Database   *database.PoolStats        `json:"database,omitempty"`
}

func (h *HealthHandler) checkComponents(ctx context.Context) (map[string]ComponentHealth, bool) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	healthy := true
	components := make(map[string]ComponentHealth, len(h.checks))
	for _, c := range h.checks {
		state := ComponentHealth{Status: "healthy", Critical: c.critical}
		if err := c.ping(ctx); err != nil {
			state.Status = "unhealthy"
			state.Error = err.Error()
			if c.critical {
				healthy = false
			}
			h.logger.WithError(err).WithField("component", c.name).Warn("Health check failed")
		}
		components[c.name] = state
	}
	return components, healthy
}

// HandleHealthCheck reports every component
func (h *HealthHandler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	components, healthy := h.checkComponents(r.Context())

	response := HealthResponse{
		Status:     "healthy",
		Timestamp:  time.Now().UTC(),
		Components: components,
	}
	if h.db != nil && r.URL.Query().Get("include_pool") == "true" {
		response.Database, _ = h.db.Stats()
	}

	status := http.StatusOK
	if !healthy {
		response.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	writeJSONResponse(w, status, response)
}

// HandleLiveness answers as long as the process serves requests
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HandleReadiness fails while a critical component is down
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	if _, healthy := h.checkComponents(r.Context()); !healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Service Unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
