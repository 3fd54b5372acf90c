package services

import (
	"context"
	"fmt"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/models"
	"github.com/andreprog02/saas-sst/internal/repositories"
)

// ppeService implements PPEService
type ppeService struct {
	logger     *logger.Logger
	scopes     repositories.ScopeProvider
	validator  *models.ValidationService
	clock      compliance.Clock
	dashboards DashboardService
	metrics    *Metrics
}

// NewPPEService creates a new PPE service
func NewPPEService(
	logger *logger.Logger,
	scopes repositories.ScopeProvider,
	validator *models.ValidationService,
	clock compliance.Clock,
	dashboards DashboardService,
	metrics *Metrics,
) PPEService {
	return &ppeService{
		logger:     logger,
		scopes:     scopes,
		validator:  validator,
		clock:      clock,
		dashboards: dashboards,
		metrics:    metrics,
	}
}

// Deliver hands PPE from stock to an active employee and lowers the stock
func (s *ppeService) Deliver(ctx context.Context, tenantID string, delivery *models.PPEDelivery) (*models.PPEDelivery, error) {
	delivery.TenantID = tenantID
	if delivery.DeliveredOn.IsZero() {
		delivery.DeliveredOn = s.clock.Today()
	}
	if err := s.validator.ValidateStruct(delivery); err != nil {
		return nil, err
	}

	err := s.scopes.ForTenant(tenantID).Transaction(ctx, func(tx repositories.TenantScope) error {
		employee, err := tx.LockEmployee(ctx, delivery.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		if !employee.Status.Eligible() {
			return fmt.Errorf("employee %s is %s: %w", employee.ID, employee.Status, ErrEmployeeNotEligible)
		}

		item, err := tx.LockPPEItem(ctx, delivery.ItemID)
		if err != nil {
			return fmt.Errorf("failed to get PPE item: %w", err)
		}
		if item.Quantity < delivery.Quantity {
			return fmt.Errorf("%d requested, %d on hand: %w", delivery.Quantity, item.Quantity, ErrInsufficientStock)
		}

		if err := tx.UpdatePPEQuantity(ctx, item.ID, item.Quantity-delivery.Quantity); err != nil {
			return err
		}
		return tx.CreatePPEDelivery(ctx, delivery)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithEmployee(tenantID, delivery.EmployeeID).
		WithField("item_id", delivery.ItemID).
		WithField("quantity", delivery.Quantity).
		Info("PPE delivered")
	s.metrics.RecordCreated("ppe_delivery")
	invalidateAfterWrite(ctx, s.logger, s.dashboards, tenantID)

	return delivery, nil
}

// CreateType creates a PPE type
func (s *ppeService) CreateType(ctx context.Context, tenantID string, ppeType *models.PPEType) (*models.PPEType, error) {
	ppeType.TenantID = tenantID
	if err := s.validator.ValidateStruct(ppeType); err != nil {
		return nil, err
	}
	if err := s.scopes.ForTenant(tenantID).CreatePPEType(ctx, ppeType); err != nil {
		return nil, fmt.Errorf("failed to create PPE type: %w", err)
	}
	s.metrics.RecordCreated("ppe_type")
	return ppeType, nil
}

// CreateItem adds a stock line of an existing PPE type
func (s *ppeService) CreateItem(ctx context.Context, tenantID string, item *models.PPEItem) (*models.PPEItem, error) {
	item.TenantID = tenantID
	item.Type = nil
	item.Location = nil
	if err := s.validator.ValidateStruct(item); err != nil {
		return nil, err
	}

	err := s.scopes.ForTenant(tenantID).Transaction(ctx, func(tx repositories.TenantScope) error {
		if _, err := tx.GetPPEType(ctx, item.TypeID); err != nil {
			return fmt.Errorf("failed to get PPE type: %w", err)
		}
		if err := checkLocation(ctx, tx, item.LocationID); err != nil {
			return err
		}
		return tx.CreatePPEItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithTenant(tenantID).
		WithField("item_id", item.ID).
		WithField("quantity", item.Quantity).
		Info("PPE stock line created")
	s.metrics.RecordCreated("ppe_item")
	invalidateAfterWrite(ctx, s.logger, s.dashboards, tenantID)

	return item, nil
}

// ListItems returns the tenant's PPE stock
func (s *ppeService) ListItems(ctx context.Context, tenantID string) ([]*models.PPEItem, error) {
	return s.scopes.ForTenant(tenantID).ListPPEItems(ctx)
}
