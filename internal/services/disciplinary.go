package services

import (
	"context"
	"fmt"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/models"
	"github.com/andreprog02/saas-sst/internal/repositories"
)

// disciplinaryService implements DisciplinaryService
type disciplinaryService struct {
	logger     *logger.Logger
	scopes     repositories.ScopeProvider
	validator  *models.ValidationService
	dashboards DashboardService
	metrics    *Metrics
}

// NewDisciplinaryService creates a new disciplinary service
func NewDisciplinaryService(
	logger *logger.Logger,
	scopes repositories.ScopeProvider,
	validator *models.ValidationService,
	dashboards DashboardService,
	metrics *Metrics,
) DisciplinaryService {
	return &disciplinaryService{
		logger:     logger,
		scopes:     scopes,
		validator:  validator,
		dashboards: dashboards,
		metrics:    metrics,
	}
}

// CreateRecord stores a disciplinary record and flags it as a repeat when the
// employee already has a record in the same category. The employee row stays
// locked until the record is committed so concurrent creations see each other.
func (s *disciplinaryService) CreateRecord(ctx context.Context, tenantID string, record *models.DisciplinaryRecord) (*models.DisciplinaryRecord, error) {
	record.TenantID = tenantID
	if err := s.validator.ValidateStruct(record); err != nil {
		return nil, err
	}

	err := s.scopes.ForTenant(tenantID).Transaction(ctx, func(tx repositories.TenantScope) error {
		employee, err := tx.LockEmployee(ctx, record.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		if !employee.Status.Eligible() {
			return fmt.Errorf("employee %s is %s: %w", employee.ID, employee.Status, ErrEmployeeNotEligible)
		}

		if _, err := tx.GetDisciplinaryCategory(ctx, record.CategoryID); err != nil {
			return fmt.Errorf("failed to get category: %w", err)
		}

		history, err := tx.ListIncidents(ctx, record.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to load incident history: %w", err)
		}
		record.IsRepeat = compliance.MarkRepeat(record.EmployeeID, record.CategoryID, history)

		return tx.CreateDisciplinaryRecord(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithEmployee(tenantID, record.EmployeeID).
		WithField("is_repeat", record.IsRepeat).
		Info("Disciplinary record created")
	s.metrics.RecordCreated("disciplinary_record")
	invalidateAfterWrite(ctx, s.logger, s.dashboards, tenantID)

	return record, nil
}

// CreateCategory creates a disciplinary category
func (s *disciplinaryService) CreateCategory(ctx context.Context, tenantID string, category *models.DisciplinaryCategory) (*models.DisciplinaryCategory, error) {
	category.TenantID = tenantID
	if err := s.validator.ValidateStruct(category); err != nil {
		return nil, err
	}
	if err := s.scopes.ForTenant(tenantID).CreateDisciplinaryCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create disciplinary category: %w", err)
	}
	s.metrics.RecordCreated("disciplinary_category")
	return category, nil
}

// UpdateRecord changes the category, date or description of a record. Fields
// left empty keep their stored value. The repeat flag keeps the value
// computed at creation.
func (s *disciplinaryService) UpdateRecord(ctx context.Context, tenantID string, record *models.DisciplinaryRecord) (*models.DisciplinaryRecord, error) {
	var updated *models.DisciplinaryRecord

	err := s.scopes.ForTenant(tenantID).Transaction(ctx, func(tx repositories.TenantScope) error {
		existing, err := tx.GetDisciplinaryRecord(ctx, record.ID)
		if err != nil {
			return fmt.Errorf("failed to get disciplinary record: %w", err)
		}

		if record.CategoryID != "" && record.CategoryID != existing.CategoryID {
			if _, err := tx.GetDisciplinaryCategory(ctx, record.CategoryID); err != nil {
				return fmt.Errorf("failed to get category: %w", err)
			}
			existing.CategoryID = record.CategoryID
			existing.Category = nil
		}
		if !record.IncidentDate.IsZero() {
			existing.IncidentDate = record.IncidentDate
		}
		if record.Description != "" {
			existing.Description = record.Description
		}

		if err := s.validator.ValidateStruct(existing); err != nil {
			return err
		}
		if err := tx.UpdateDisciplinaryRecord(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateAfterWrite(ctx, s.logger, s.dashboards, tenantID)
	return updated, nil
}

// DeleteRecord removes a disciplinary record
func (s *disciplinaryService) DeleteRecord(ctx context.Context, tenantID, id string) error {
	if err := s.scopes.ForTenant(tenantID).DeleteDisciplinaryRecord(ctx, id); err != nil {
		return fmt.Errorf("failed to delete disciplinary record: %w", err)
	}
	invalidateAfterWrite(ctx, s.logger, s.dashboards, tenantID)
	return nil
}
