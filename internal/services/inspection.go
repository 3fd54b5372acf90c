package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/models"
	"github.com/andreprog02/saas-sst/internal/repositories"
)

// inspectionService implements InspectionService
type inspectionService struct {
	logger     *logger.Logger
	scopes     repositories.ScopeProvider
	validator  *models.ValidationService
	clock      compliance.Clock
	dashboards DashboardService
	metrics    *Metrics
}

// NewInspectionService creates a new inspection service
func NewInspectionService(
	logger *logger.Logger,
	scopes repositories.ScopeProvider,
	validator *models.ValidationService,
	clock compliance.Clock,
	dashboards DashboardService,
	metrics *Metrics,
) InspectionService {
	return &inspectionService{
		logger:     logger,
		scopes:     scopes,
		validator:  validator,
		clock:      clock,
		dashboards: dashboards,
		metrics:    metrics,
	}
}

// checklistAsset is an inspected asset whose checklist an inspection overlays
type checklistAsset interface {
	Checklist() compliance.AssetChecklist
	SetChecklist(compliance.AssetChecklist)
}

// RecordInspection appends an inspection event and re-bases the checklist of
// its asset in the same transaction. Maintenance and hydrostatic due dates
// are left untouched.
func (s *inspectionService) RecordInspection(ctx context.Context, tenantID string, inspection *models.InspectionRecord) (*models.InspectionRecord, error) {
	inspection.TenantID = tenantID
	if inspection.InspectedAt.IsZero() {
		inspection.InspectedAt = s.clock.Today()
	}
	if err := s.validator.ValidateStruct(inspection); err != nil {
		return nil, err
	}
	for i := range inspection.Evidence {
		inspection.Evidence[i].TenantID = tenantID
		if err := s.validator.ValidateStruct(&inspection.Evidence[i]); err != nil {
			return nil, err
		}
	}

	err := s.scopes.ForTenant(tenantID).Transaction(ctx, func(tx repositories.TenantScope) error {
		asset, save, err := lockAsset(ctx, tx, inspection.AssetType, inspection.AssetID)
		if err != nil {
			return err
		}

		if err := tx.CreateInspection(ctx, inspection); err != nil {
			return fmt.Errorf("failed to create inspection: %w", err)
		}

		asset.SetChecklist(compliance.ApplyChecklist(asset.Checklist(), inspection.Result(), inspection.InspectedAt))
		return save()
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithAsset(tenantID, inspection.AssetType, inspection.AssetID).
		WithField("evidence", len(inspection.Evidence)).
		Info("Inspection recorded")
	s.metrics.RecordCreated("inspection")
	invalidateAfterWrite(ctx, s.logger, s.dashboards, tenantID)

	return inspection, nil
}

func lockAsset(ctx context.Context, tx repositories.TenantScope, assetType, assetID string) (checklistAsset, func() error, error) {
	var (
		asset checklistAsset
		save  func() error
		err   error
	)

	switch assetType {
	case models.AssetTypeExtinguisher:
		var e *models.Extinguisher
		if e, err = tx.LockExtinguisher(ctx, assetID); err == nil {
			asset = e
			save = func() error { return tx.SaveExtinguisherChecklist(ctx, e) }
		}
	case models.AssetTypeEquipment:
		var e *models.SafetyEquipment
		if e, err = tx.LockEquipment(ctx, assetID); err == nil {
			asset = e
			save = func() error { return tx.SaveEquipmentChecklist(ctx, e) }
		}
	default:
		return nil, nil, fmt.Errorf("unknown asset type %q: %w", assetType, ErrAssetNotFound)
	}

	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, fmt.Errorf("%s %s: %w", assetType, assetID, ErrAssetNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock %s: %w", assetType, err)
	}
	return asset, save, nil
}

// ListInspections returns the inspection history of an asset, newest first
func (s *inspectionService) ListInspections(ctx context.Context, tenantID, assetType, assetID string) ([]*models.InspectionRecord, error) {
	return s.scopes.ForTenant(tenantID).ListInspections(ctx, assetType, assetID)
}
