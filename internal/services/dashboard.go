package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/config"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/repositories"
)

// dashboardService implements DashboardService
type dashboardService struct {
	logger   *logger.Logger
	scopes   repositories.ScopeProvider
	policies *compliance.PolicySet
	clock    compliance.Clock
	cache    DashboardCache
	metrics  *Metrics
	ttl      time.Duration
}

// NewDashboardService creates a new dashboard service. A nil cache disables caching.
func NewDashboardService(
	logger *logger.Logger,
	scopes repositories.ScopeProvider,
	policies *compliance.PolicySet,
	clock compliance.Clock,
	cache DashboardCache,
	metrics *Metrics,
	cfg *config.Config,
) DashboardService {
	return &dashboardService{
		logger:   logger,
		scopes:   scopes,
		policies: policies,
		clock:    clock,
		cache:    cache,
		metrics:  metrics,
		ttl:      time.Duration(cfg.Cache.DashboardTTL) * time.Second,
	}
}

// GetDashboard returns the tenant's dashboard as of today. The tag version
// is read before the snapshot so a write committed while the dashboard is
// being built keeps the stale result out of the cache.
func (s *dashboardService) GetDashboard(ctx context.Context, tenantID string) (*compliance.Dashboard, error) {
	today := s.clock.Today()
	key := DashboardKey(tenantID, today)
	tag := TenantTag(tenantID)
	cacheable := false
	var version int64

	if s.cache != nil {
		var cached compliance.Dashboard
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			s.metrics.CacheHit()
			return &cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.WithTenant(tenantID).WithError(err).Warn("Dashboard cache read failed")
		}

		version, err = s.cache.Version(ctx, tag)
		if err != nil {
			s.logger.WithTenant(tenantID).WithError(err).Warn("Dashboard cache version read failed")
		} else {
			cacheable = true
		}
	}

	snap, err := s.scopes.ForTenant(tenantID).Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	dashboard := compliance.BuildDashboard(snap, s.policies, today)
	s.metrics.ObserveDashboard(&dashboard)

	s.logger.WithTenant(tenantID).WithField("obligations", len(snap.Obligations)).Debug("Dashboard built")

	if cacheable {
		stored, err := s.cache.SetIfVersion(ctx, key, dashboard, s.ttl, tag, version)
		switch {
		case err != nil:
			s.logger.WithTenant(tenantID).WithError(err).Warn("Dashboard cache write failed")
		case !stored:
			s.logger.WithTenant(tenantID).Debug("Dashboard changed while building, not cached")
		}
	}

	return &dashboard, nil
}

// Invalidate drops every cached dashboard of the tenant
func (s *dashboardService) Invalidate(ctx context.Context, tenantID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateByTag(ctx, TenantTag(tenantID))
}

// invalidateAfterWrite is called by write services once their transaction committed
func invalidateAfterWrite(ctx context.Context, log *logger.Logger, dashboards DashboardService, tenantID string) {
	if err := dashboards.Invalidate(ctx, tenantID); err != nil {
		log.WithTenant(tenantID).WithError(err).Warn("Failed to invalidate dashboard cache")
	}
}
