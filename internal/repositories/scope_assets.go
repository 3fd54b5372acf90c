package repositories

import (
	"context"

	"github.com/andreprog02/saas-sst/internal/models"
)

// CreateExtinguisher registers an extinguisher
func (s *tenantScope) CreateExtinguisher(ctx context.Context, extinguisher *models.Extinguisher) error {
	extinguisher.TenantID = s.tenantID
	return s.create(ctx, extinguisher)
}

// LockExtinguisher retrieves an extinguisher and locks its row until the transaction ends
func (s *tenantScope) LockExtinguisher(ctx context.Context, id string) (*models.Extinguisher, error) {
	var extinguisher models.Extinguisher
	if err := first(s.locked(ctx), &extinguisher, "id = ?", id); err != nil {
		return nil, err
	}
	return &extinguisher, nil
}

// ListExtinguishers retrieves the tenant's extinguishers with their locations
func (s *tenantScope) ListExtinguishers(ctx context.Context) ([]*models.Extinguisher, error) {
	var extinguishers []*models.Extinguisher
	err := s.query(ctx).Preload("Location").Order("serial_number").Find(&extinguishers).Error
	return extinguishers, err
}

// SaveExtinguisherChecklist writes only the checklist columns of an extinguisher
func (s *tenantScope) SaveExtinguisherChecklist(ctx context.Context, e *models.Extinguisher) error {
	return s.updates(ctx, &models.Extinguisher{}, e.ID, map[string]interface{}{
		"signage_ok":         e.SignageOK,
		"access_clear":       e.AccessClear,
		"seal_intact":        e.SealIntact,
		"pressure_ok":        e.PressureOK,
		"last_inspection_at": e.LastInspectionAt,
	})
}

// CreateEquipment registers a safety equipment asset
func (s *tenantScope) CreateEquipment(ctx context.Context, equipment *models.SafetyEquipment) error {
	equipment.TenantID = s.tenantID
	return s.create(ctx, equipment)
}

// LockEquipment retrieves an equipment asset and locks its row until the transaction ends
func (s *tenantScope) LockEquipment(ctx context.Context, id string) (*models.SafetyEquipment, error) {
	var equipment models.SafetyEquipment
	if err := first(s.locked(ctx), &equipment, "id = ?", id); err != nil {
		return nil, err
	}
	return &equipment, nil
}

// ListEquipment retrieves the tenant's equipment with their locations
func (s *tenantScope) ListEquipment(ctx context.Context) ([]*models.SafetyEquipment, error) {
	var equipment []*models.SafetyEquipment
	err := s.query(ctx).Preload("Location").Order("name").Find(&equipment).Error
	return equipment, err
}

// SaveEquipmentChecklist writes only the checklist columns of an equipment asset
func (s *tenantScope) SaveEquipmentChecklist(ctx context.Context, e *models.SafetyEquipment) error {
	return s.updates(ctx, &models.SafetyEquipment{}, e.ID, map[string]interface{}{
		"signage_ok":         e.SignageOK,
		"access_clear":       e.AccessClear,
		"operational":        e.Operational,
		"last_inspection_at": e.LastInspectionAt,
	})
}

// CreateInspection appends an inspection event with its evidence files
func (s *tenantScope) CreateInspection(ctx context.Context, inspection *models.InspectionRecord) error {
	inspection.TenantID = s.tenantID
	for i := range inspection.Evidence {
		inspection.Evidence[i].TenantID = s.tenantID
	}
	return s.create(ctx, inspection)
}

// ListInspections returns the inspection history of one asset, newest first
func (s *tenantScope) ListInspections(ctx context.Context, assetType, assetID string) ([]*models.InspectionRecord, error) {
	var inspections []*models.InspectionRecord
	err := s.query(ctx).
		Preload("Evidence").
		Where("asset_type = ? AND asset_id = ?", assetType, assetID).
		Order("inspected_at DESC").
		Find(&inspections).Error
	return inspections, err
}
