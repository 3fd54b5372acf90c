package services

import (
	"context"
	"fmt"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/models"
	"github.com/andreprog02/saas-sst/internal/repositories"
)

// AbsenceView is an absence with its duration as of today
type AbsenceView struct {
	*models.Absence
	Days int  `json:"days"`
	Open bool `json:"open"`
}

// absenceService implements AbsenceService
type absenceService struct {
	logger     *logger.Logger
	scopes     repositories.ScopeProvider
	validator  *models.ValidationService
	clock      compliance.Clock
	dashboards DashboardService
	metrics    *Metrics
}

// NewAbsenceService creates a new absence service
func NewAbsenceService(
	logger *logger.Logger,
	scopes repositories.ScopeProvider,
	validator *models.ValidationService,
	clock compliance.Clock,
	dashboards DashboardService,
	metrics *Metrics,
) AbsenceService {
	return &absenceService{
		logger:     logger,
		scopes:     scopes,
		validator:  validator,
		clock:      clock,
		dashboards: dashboards,
		metrics:    metrics,
	}
}

// Register stores an absence for an existing employee
func (s *absenceService) Register(ctx context.Context, tenantID string, absence *models.Absence) (*models.Absence, error) {
	absence.TenantID = tenantID
	if err := s.validator.ValidateStruct(absence); err != nil {
		return nil, err
	}
	if absence.EndDate != nil && absence.EndDate.Before(absence.StartDate) {
		return nil, fmt.Errorf("%w: field 'end_date' must not precede start_date", models.ErrValidation)
	}

	err := s.scopes.ForTenant(tenantID).Transaction(ctx, func(tx repositories.TenantScope) error {
		if _, err := tx.GetEmployee(ctx, absence.EmployeeID); err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		return tx.CreateAbsence(ctx, absence)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithEmployee(tenantID, absence.EmployeeID).
		WithField("kind", absence.Kind).
		Info("Absence registered")
	s.metrics.RecordCreated("absence")
	invalidateAfterWrite(ctx, s.logger, s.dashboards, tenantID)

	return absence, nil
}

// ListForEmployee returns an employee's absences with their durations
func (s *absenceService) ListForEmployee(ctx context.Context, tenantID, employeeID string) ([]AbsenceView, error) {
	absences, err := s.scopes.ForTenant(tenantID).ListAbsences(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	views := make([]AbsenceView, len(absences))
	for i, a := range absences {
		views[i] = AbsenceView{
			Absence: a,
			Days:    a.Days(today),
			Open:    a.EndDate == nil || compliance.Date(*a.EndDate).After(today),
		}
	}
	return views, nil
}
