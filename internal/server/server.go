package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andreprog02/saas-sst/internal/config"
	"github.com/andreprog02/saas-sst/internal/handlers"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/middleware"
	"github.com/andreprog02/saas-sst/internal/security"
)

// RequestIDHeader carries the request correlation ID
const RequestIDHeader = "X-Request-ID"

// Server represents the HTTP server
type Server struct {
	config            *config.Config
	logger            *logger.Logger
	router            *mux.Router
	httpServer        *http.Server
	complianceHandler *handlers.ComplianceHandler
	recordsHandler    *handlers.RecordsHandler
	registryHandler   *handlers.RegistryHandler
	healthHandler     *handlers.HealthHandler
	tenantMiddleware  *middleware.TenantMiddleware
	securityMW        *security.SecurityMiddleware
	registry          *prometheus.Registry
}

// NewServer creates a new HTTP server
func NewServer(
	config *config.Config,
	logger *logger.Logger,
	complianceHandler *handlers.ComplianceHandler,
	recordsHandler *handlers.RecordsHandler,
	registryHandler *handlers.RegistryHandler,
	healthHandler *handlers.HealthHandler,
	tenantMiddleware *middleware.TenantMiddleware,
	securityMW *security.SecurityMiddleware,
	registry *prometheus.Registry,
) *Server {
	server := &Server{
		config:            config,
		logger:            logger,
		router:            mux.NewRouter(),
		complianceHandler: complianceHandler,
		recordsHandler:    recordsHandler,
		registryHandler:   registryHandler,
		healthHandler:     healthHandler,
		tenantMiddleware:  tenantMiddleware,
		securityMW:        securityMW,
		registry:          registry,
	}

	server.setupRoutes()
	server.setupHTTPServer()

	return server
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health check endpoints (no tenant required)
	s.router.HandleFunc("/health", s.healthHandler.HandleHealthCheck).Methods("GET")
	s.router.HandleFunc("/health/ready", s.healthHandler.HandleReadiness).Methods("GET")
	s.router.HandleFunc("/health/live", s.healthHandler.HandleLiveness).Methods("GET")

	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")

	// Everything under /api/v1 acts for exactly one tenant
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.tenantMiddleware.RequireTenant)
	api.Use(s.securityMW.RateLimitByTenant)
	s.complianceHandler.RegisterRoutes(api)
	s.recordsHandler.RegisterRoutes(api)
	s.registryHandler.RegisterRoutes(api)

	s.router.Use(s.securityMW.SecurityHeaders)
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.NoStoreMiddleware)
	s.router.Use(middleware.CompressionMiddleware)
}

// setupHTTPServer configures the HTTP server
func (s *Server) setupHTTPServer() {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Server.Host, s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.config.Server.IdleTimeout) * time.Second,
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.config.Server.Port).Info("Starting HTTP server")

	// blocks until the server is shut down
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.WithError(err).Error("HTTP server error")
		return err
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// Middleware

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(RequestIDHeader) == "" {
			r.Header.Set(RequestIDHeader, uuid.NewString())
		}
		w.Header().Set(RequestIDHeader, r.Header.Get(RequestIDHeader))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.logger.WithRequest(r.Header.Get(RequestIDHeader)).WithFields(map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"tenant_id":   r.Header.Get(middleware.TenantHeader),
			"status":      wrapped.statusCode,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_addr": r.RemoteAddr,
		}).Info("HTTP request")
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
