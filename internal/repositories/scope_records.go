package repositories

import (
	"context"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/models"
)

// CreateVaccination creates a vaccination record
func (s *tenantScope) CreateVaccination(ctx context.Context, vaccination *models.Vaccination) error {
	vaccination.TenantID = s.tenantID
	return s.create(ctx, vaccination)
}

// GetVaccination retrieves a vaccination by ID
func (s *tenantScope) GetVaccination(ctx context.Context, id string) (*models.Vaccination, error) {
	var vaccination models.Vaccination
	if err := first(s.query(ctx), &vaccination, "id = ?", id); err != nil {
		return nil, err
	}
	return &vaccination, nil
}

// UpdateVaccination writes the dose and booster columns of a vaccination
func (s *tenantScope) UpdateVaccination(ctx context.Context, v *models.Vaccination) error {
	return s.updates(ctx, &models.Vaccination{}, v.ID, map[string]interface{}{
		"vaccine_name":      v.VaccineName,
		"dose":              v.Dose,
		"applied_on":        v.AppliedOn,
		"months_to_booster": v.MonthsToBooster,
		"booster_due":       v.BoosterDue,
	})
}

// CreateTrainingCertificate creates a training certificate
func (s *tenantScope) CreateTrainingCertificate(ctx context.Context, certificate *models.TrainingCertificate) error {
	certificate.TenantID = s.tenantID
	return s.create(ctx, certificate)
}

// CreateAbsence creates an absence record
func (s *tenantScope) CreateAbsence(ctx context.Context, absence *models.Absence) error {
	absence.TenantID = s.tenantID
	return s.create(ctx, absence)
}

// ListAbsences returns the absences of one employee, oldest first
func (s *tenantScope) ListAbsences(ctx context.Context, employeeID string) ([]*models.Absence, error) {
	var absences []*models.Absence
	err := s.query(ctx).Where("employee_id = ?", employeeID).Order("start_date").Find(&absences).Error
	return absences, err
}

// Snapshot loads the tenant's obligations, assets, stock, absences,
// incidents and workforce in their compliance form
func (s *tenantScope) Snapshot(ctx context.Context) (compliance.TenantSnapshot, error) {
	snap := compliance.TenantSnapshot{TenantID: s.tenantID}

	extinguishers, err := s.ListExtinguishers(ctx)
	if err != nil {
		return snap, err
	}
	for _, e := range extinguishers {
		snap.Obligations = appendInstances(snap.Obligations, e.Obligations())
		snap.Assets = append(snap.Assets, e)
	}

	equipment, err := s.ListEquipment(ctx)
	if err != nil {
		return snap, err
	}
	for _, e := range equipment {
		snap.Obligations = appendInstances(snap.Obligations, e.Obligations())
		snap.Assets = append(snap.Assets, e)
	}

	items, err := s.ListPPEItems(ctx)
	if err != nil {
		return snap, err
	}
	for _, item := range items {
		snap.Obligations = appendInstances(snap.Obligations, item.Obligations())
		snap.Stock = append(snap.Stock, item.StockLevel())
	}

	var vaccinations []*models.Vaccination
	if err := s.query(ctx).Preload("Employee.Department").Find(&vaccinations).Error; err != nil {
		return snap, err
	}
	for _, v := range vaccinations {
		snap.Obligations = appendInstances(snap.Obligations, v.Obligations())
	}

	var certificates []*models.TrainingCertificate
	if err := s.query(ctx).Preload("Employee.Department").Preload("Norm").Find(&certificates).Error; err != nil {
		return snap, err
	}
	for _, c := range certificates {
		snap.Obligations = appendInstances(snap.Obligations, c.Obligations())
	}

	var absences []*models.Absence
	if err := s.query(ctx).Preload("Employee.Department").Order("start_date").Find(&absences).Error; err != nil {
		return snap, err
	}
	for _, a := range absences {
		snap.Absences = append(snap.Absences, a.Period())
	}

	var records []*models.DisciplinaryRecord
	if err := s.query(ctx).Preload("Employee.Department").Preload("Category").Find(&records).Error; err != nil {
		return snap, err
	}
	for _, r := range records {
		snap.Incidents = append(snap.Incidents, r.Entry())
	}

	var statuses []compliance.EmployeeStatus
	if err := s.query(ctx).Model(&models.Employee{}).Pluck("status", &statuses).Error; err != nil {
		return snap, err
	}
	snap.Employees = statuses

	return snap, nil
}

func appendInstances(dst []compliance.Obligation, instances []compliance.Instance) []compliance.Obligation {
	for _, in := range instances {
		dst = append(dst, in)
	}
	return dst
}
