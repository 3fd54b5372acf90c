package services

import (
	"context"
	"fmt"
	"time"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/models"
	"github.com/andreprog02/saas-sst/internal/repositories"
)

// vaccinationService implements VaccinationService
type vaccinationService struct {
	logger     *logger.Logger
	scopes     repositories.ScopeProvider
	validator  *models.ValidationService
	clock      compliance.Clock
	dashboards DashboardService
	metrics    *Metrics
}

// NewVaccinationService creates a new vaccination service
func NewVaccinationService(
	logger *logger.Logger,
	scopes repositories.ScopeProvider,
	validator *models.ValidationService,
	clock compliance.Clock,
	dashboards DashboardService,
	metrics *Metrics,
) VaccinationService {
	return &vaccinationService{
		logger:     logger,
		scopes:     scopes,
		validator:  validator,
		clock:      clock,
		dashboards: dashboards,
		metrics:    metrics,
	}
}

// Register stores a vaccination, deriving the booster date when none was given
func (s *vaccinationService) Register(ctx context.Context, tenantID string, vaccination *models.Vaccination) (*models.Vaccination, error) {
	vaccination.TenantID = tenantID
	if err := s.validator.ValidateStruct(vaccination); err != nil {
		return nil, err
	}

	vaccination.DeriveBoosterDue()

	err := s.scopes.ForTenant(tenantID).Transaction(ctx, func(tx repositories.TenantScope) error {
		if _, err := tx.GetEmployee(ctx, vaccination.EmployeeID); err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		return tx.CreateVaccination(ctx, vaccination)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithEmployee(tenantID, vaccination.EmployeeID).
		WithField("vaccine", vaccination.VaccineName).
		Info("Vaccination registered")
	s.metrics.RecordCreated("vaccination")
	invalidateAfterWrite(ctx, s.logger, s.dashboards, tenantID)

	return vaccination, nil
}

// RecordBooster re-bases a vaccination on a new dose. A zero appliedOn means today.
func (s *vaccinationService) RecordBooster(ctx context.Context, tenantID, id string, appliedOn time.Time, dose string) (*models.Vaccination, error) {
	if appliedOn.IsZero() {
		appliedOn = s.clock.Today()
	}

	var vaccination *models.Vaccination
	err := s.scopes.ForTenant(tenantID).Transaction(ctx, func(tx repositories.TenantScope) error {
		v, err := tx.GetVaccination(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get vaccination: %w", err)
		}
		v.RecordBooster(compliance.Date(appliedOn), dose)
		if err := s.validator.ValidateStruct(v); err != nil {
			return err
		}
		if err := tx.UpdateVaccination(ctx, v); err != nil {
			return err
		}
		vaccination = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithEmployee(tenantID, vaccination.EmployeeID).
		WithField("vaccination_id", vaccination.ID).
		Info("Booster recorded")
	invalidateAfterWrite(ctx, s.logger, s.dashboards, tenantID)

	return vaccination, nil
}
