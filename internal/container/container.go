package container

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/config"
	"github.com/andreprog02/saas-sst/internal/database"
	"github.com/andreprog02/saas-sst/internal/handlers"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/middleware"
	"github.com/andreprog02/saas-sst/internal/models"
	"github.com/andreprog02/saas-sst/internal/repositories"
	"github.com/andreprog02/saas-sst/internal/security"
	"github.com/andreprog02/saas-sst/internal/server"
	"github.com/andreprog02/saas-sst/internal/services"
)

// NewRegistry creates the Prometheus registry served on /metrics
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewDashboardCache returns the redis-backed cache, or nil when caching is disabled
func NewDashboardCache(cfg *config.Config, cache *services.CacheService) services.DashboardCache {
	if !cfg.Cache.Enabled {
		return nil
	}
	return cache
}

// Module provides dependency injection configuration
var Module = fx.Options(
	// Configuration
	fx.Provide(config.LoadConfig),
	fx.Provide(func(cfg *config.Config) (*compliance.PolicySet, error) {
		return compliance.LoadPolicies(cfg.Compliance)
	}),
	fx.Provide(func() compliance.Clock { return compliance.SystemClock{} }),

	// Logging
	fx.Provide(logger.NewLogger),

	// Metrics
	fx.Provide(NewRegistry),
	fx.Provide(func(reg *prometheus.Registry) prometheus.Registerer { return reg }),
	fx.Provide(services.NewMetrics),

	// Database
	fx.Provide(database.NewConnection),
	fx.Provide(database.NewMigrator),
	fx.Provide(database.NewRedisClient),

	// Repositories
	fx.Provide(repositories.NewTenantRepository),
	fx.Provide(repositories.NewNormRepository),
	fx.Provide(repositories.NewScopeProvider),

	// Services
	fx.Provide(services.NewCacheService),
	fx.Provide(NewDashboardCache),
	fx.Provide(services.NewTenantService),
	fx.Provide(services.NewDashboardService),
	fx.Provide(services.NewDisciplinaryService),
	fx.Provide(services.NewInspectionService),
	fx.Provide(services.NewVaccinationService),
	fx.Provide(services.NewAbsenceService),
	fx.Provide(services.NewPPEService),
	fx.Provide(services.NewEmployeeService),
	fx.Provide(services.NewAssetService),
	fx.Provide(services.NewExportService),

	// Handlers
	fx.Provide(handlers.NewComplianceHandler),
	fx.Provide(handlers.NewRecordsHandler),
	fx.Provide(handlers.NewRegistryHandler),
	fx.Provide(handlers.NewHealthHandler),

	// Middleware
	fx.Provide(middleware.NewTenantMiddleware),
	fx.Provide(security.NewSecurityMiddleware),

	// Server
	fx.Provide(server.NewServer),

	// Models (for validation)
	fx.Provide(models.NewValidationService),

	// Invoke migrations on startup
	fx.Invoke(func(migrator *database.Migrator) error {
		return migrator.Up()
	}),

	// Sweep idle rate limit buckets while running
	fx.Invoke(func(lc fx.Lifecycle, sm *security.SecurityMiddleware) {
		rl := sm.RateLimiter()
		if rl == nil {
			return
		}
		ctx, cancel := context.WithCancel(context.Background())
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go rl.Run(ctx, 5*time.Minute)
				return nil
			},
			OnStop: func(context.Context) error {
				cancel()
				return nil
			},
		})
	}),

	// Release connections on shutdown
	fx.Invoke(func(lc fx.Lifecycle, db *database.Connection, client *redis.Client) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				client.Close()
				return db.Close()
			},
		})
	}),
)
