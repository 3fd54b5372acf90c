package services

import (
	"context"
	"fmt"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/models"
	"github.com/andreprog02/saas-sst/internal/repositories"
)

// employeeService implements EmployeeService
type employeeService struct {
	logger     *logger.Logger
	scopes     repositories.ScopeProvider
	norms      repositories.NormRepository
	validator  *models.ValidationService
	dashboards DashboardService
	metrics    *Metrics
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	logger *logger.Logger,
	scopes repositories.ScopeProvider,
	norms repositories.NormRepository,
	validator *models.ValidationService,
	dashboards DashboardService,
	metrics *Metrics,
) EmployeeService {
	return &employeeService{
		logger:     logger,
		scopes:     scopes,
		norms:      norms,
		validator:  validator,
		dashboards: dashboards,
		metrics:    metrics,
	}
}

// CreateDepartment creates a department with the norms its workers must follow
func (s *employeeService) CreateDepartment(ctx context.Context, tenantID string, department *models.Department, normIDs []string) (*models.Department, error) {
	department.TenantID = tenantID
	department.RequiredNorms = nil
	if err := s.validator.ValidateStruct(department); err != nil {
		return nil, err
	}

	if err := s.scopes.ForTenant(tenantID).CreateDepartment(ctx, department, normIDs); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	s.logger.WithTenant(tenantID).
		WithField("department_id", department.ID).
		WithField("norms", len(normIDs)).
		Info("Department created")
	s.metrics.RecordCreated("department")
	return department, nil
}

// ListDepartments returns the tenant's departments with their required norms
func (s *employeeService) ListDepartments(ctx context.Context, tenantID string) ([]*models.Department, error) {
	return s.scopes.ForTenant(tenantID).ListDepartments(ctx)
}

// CreateEmployee registers an employee. A missing status means active.
func (s *employeeService) CreateEmployee(ctx context.Context, tenantID string, employee *models.Employee) (*models.Employee, error) {
	employee.TenantID = tenantID
	employee.Department = nil
	if employee.Status == "" {
		employee.Status = compliance.EmployeeActive
	}
	if err := s.validator.ValidateStruct(employee); err != nil {
		return nil, err
	}

	err := s.scopes.ForTenant(tenantID).Transaction(ctx, func(tx repositories.TenantScope) error {
		if employee.DepartmentID != nil {
			if _, err := tx.GetDepartment(ctx, *employee.DepartmentID); err != nil {
				return fmt.Errorf("failed to get department: %w", err)
			}
		}
		return tx.CreateEmployee(ctx, employee)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithEmployee(tenantID, employee.ID).Info("Employee created")
	s.metrics.RecordCreated("employee")
	invalidateAfterWrite(ctx, s.logger, s.dashboards, tenantID)

	return employee, nil
}

// ListEmployees returns every employee of the tenant
func (s *employeeService) ListEmployees(ctx context.Context, tenantID string) ([]*models.Employee, error) {
	return s.scopes.ForTenant(tenantID).ListEmployees(ctx)
}

// UpdateEmployee applies the fields set in changes to a stored employee.
// Empty fields keep their stored value.
func (s *employeeService) UpdateEmployee(ctx context.Context, tenantID string, changes *models.Employee) (*models.Employee, error) {
	var updated *models.Employee

	err := s.scopes.ForTenant(tenantID).Transaction(ctx, func(tx repositories.TenantScope) error {
		existing, err := tx.LockEmployee(ctx, changes.ID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}

		if changes.DepartmentID != nil {
			if _, err := tx.GetDepartment(ctx, *changes.DepartmentID); err != nil {
				return fmt.Errorf("failed to get department: %w", err)
			}
			existing.DepartmentID = changes.DepartmentID
		}
		if changes.Name != "" {
			existing.Name = changes.Name
		}
		if changes.TaxID != "" {
			existing.TaxID = changes.TaxID
		}
		if changes.JobTitle != "" {
			existing.JobTitle = changes.JobTitle
		}
		if !changes.HiredOn.IsZero() {
			existing.HiredOn = changes.HiredOn
		}
		if changes.Status != "" {
			existing.Status = changes.Status
		}

		if err := s.validator.ValidateStruct(existing); err != nil {
			return err
		}
		if err := tx.UpdateEmployee(ctx, existing); err != nil {
			return err
		}

		updated, err = tx.GetEmployee(ctx, existing.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithEmployee(tenantID, updated.ID).
		WithField("status", updated.Status).
		Info("Employee updated")
	invalidateAfterWrite(ctx, s.logger, s.dashboards, tenantID)

	return updated, nil
}

// CreateTrainingCertificate records a completed training of an employee
func (s *employeeService) CreateTrainingCertificate(ctx context.Context, tenantID string, certificate *models.TrainingCertificate) (*models.TrainingCertificate, error) {
	certificate.TenantID = tenantID
	certificate.Employee = nil
	certificate.Norm = nil
	if err := s.validator.ValidateStruct(certificate); err != nil {
		return nil, err
	}
	if certificate.ValidUntil != nil && certificate.ValidUntil.Before(certificate.CompletedOn) {
		return nil, fmt.Errorf("%w: field 'valid_until' must not precede completed_on", models.ErrValidation)
	}

	if certificate.NormID != nil {
		if _, err := s.norms.GetByID(ctx, *certificate.NormID); err != nil {
			return nil, fmt.Errorf("failed to get regulatory norm: %w", err)
		}
	}

	err := s.scopes.ForTenant(tenantID).Transaction(ctx, func(tx repositories.TenantScope) error {
		if _, err := tx.GetEmployee(ctx, certificate.EmployeeID); err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		return tx.CreateTrainingCertificate(ctx, certificate)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithEmployee(tenantID, certificate.EmployeeID).
		WithField("title", certificate.Title).
		Info("Training certificate recorded")
	s.metrics.RecordCreated("training_certificate")
	invalidateAfterWrite(ctx, s.logger, s.dashboards, tenantID)

	return certificate, nil
}
