package services

import (
	"context"
	"fmt"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/models"
	"github.com/andreprog02/saas-sst/internal/repositories"
)

// assetService implements AssetService
type assetService struct {
	logger     *logger.Logger
	scopes     repositories.ScopeProvider
	validator  *models.ValidationService
	dashboards DashboardService
	metrics    *Metrics
}

// NewAssetService creates a new asset service
func NewAssetService(
	logger *logger.Logger,
	scopes repositories.ScopeProvider,
	validator *models.ValidationService,
	dashboards DashboardService,
	metrics *Metrics,
) AssetService {
	return &assetService{
		logger:     logger,
		scopes:     scopes,
		validator:  validator,
		dashboards: dashboards,
		metrics:    metrics,
	}
}

// CreateLocation creates a location for assets and stock
func (s *assetService) CreateLocation(ctx context.Context, tenantID string, location *models.Location) (*models.Location, error) {
	location.TenantID = tenantID
	if err := s.validator.ValidateStruct(location); err != nil {
		return nil, err
	}
	if err := s.scopes.ForTenant(tenantID).CreateLocation(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}
	s.metrics.RecordCreated("location")
	return location, nil
}

// CreateExtinguisher registers an extinguisher. Inspection fields are set by
// inspections only.
func (s *assetService) CreateExtinguisher(ctx context.Context, tenantID string, e *models.Extinguisher) (*models.Extinguisher, error) {
	e.TenantID = tenantID
	e.Location = nil
	e.LastInspectionAt = nil
	if e.Status == "" {
		e.Status = compliance.AssetActive
	}
	if err := s.validator.ValidateStruct(e); err != nil {
		return nil, err
	}

	err := s.scopes.ForTenant(tenantID).Transaction(ctx, func(tx repositories.TenantScope) error {
		if err := checkLocation(ctx, tx, e.LocationID); err != nil {
			return err
		}
		return tx.CreateExtinguisher(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithAsset(tenantID, models.AssetTypeExtinguisher, e.ID).Info("Extinguisher registered")
	s.metrics.RecordCreated("extinguisher")
	invalidateAfterWrite(ctx, s.logger, s.dashboards, tenantID)

	return e, nil
}

// CreateEquipment registers a safety equipment asset
func (s *assetService) CreateEquipment(ctx context.Context, tenantID string, e *models.SafetyEquipment) (*models.SafetyEquipment, error) {
	e.TenantID = tenantID
	e.Location = nil
	e.LastInspectionAt = nil
	if e.Status == "" {
		e.Status = compliance.AssetActive
	}
	if err := s.validator.ValidateStruct(e); err != nil {
		return nil, err
	}

	err := s.scopes.ForTenant(tenantID).Transaction(ctx, func(tx repositories.TenantScope) error {
		if err := checkLocation(ctx, tx, e.LocationID); err != nil {
			return err
		}
		return tx.CreateEquipment(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithAsset(tenantID, models.AssetTypeEquipment, e.ID).Info("Equipment registered")
	s.metrics.RecordCreated("equipment")
	invalidateAfterWrite(ctx, s.logger, s.dashboards, tenantID)

	return e, nil
}

// checkLocation verifies an optional location reference within the tenant
func checkLocation(ctx context.Context, tx repositories.TenantScope, locationID *string) error {
	if locationID == nil {
		return nil
	}
	if _, err := tx.GetLocation(ctx, *locationID); err != nil {
		return fmt.Errorf("failed to get location: %w", err)
	}
	return nil
}
