package services

import (
	"context"
	"io"
	"time"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/models"
)

// TenantService resolves the tenant a request acts for
type TenantService interface {
	ResolveActive(ctx context.Context, tenantID string) (*models.Tenant, error)
}

// DashboardService defines the interface for the per-tenant compliance dashboard
type DashboardService interface {
	GetDashboard(ctx context.Context, tenantID string) (*compliance.Dashboard, error)
	Invalidate(ctx context.Context, tenantID string) error
}

// EmployeeService defines the interface for departments, employees and their trainings
type EmployeeService interface {
	CreateDepartment(ctx context.Context, tenantID string, department *models.Department, normIDs []string) (*models.Department, error)
	ListDepartments(ctx context.Context, tenantID string) ([]*models.Department, error)
	CreateEmployee(ctx context.Context, tenantID string, employee *models.Employee) (*models.Employee, error)
	ListEmployees(ctx context.Context, tenantID string) ([]*models.Employee, error)
	UpdateEmployee(ctx context.Context, tenantID string, changes *models.Employee) (*models.Employee, error)
	CreateTrainingCertificate(ctx context.Context, tenantID string, certificate *models.TrainingCertificate) (*models.TrainingCertificate, error)
}

// AssetService defines the interface for locations and inspected assets
type AssetService interface {
	CreateLocation(ctx context.Context, tenantID string, location *models.Location) (*models.Location, error)
	CreateExtinguisher(ctx context.Context, tenantID string, extinguisher *models.Extinguisher) (*models.Extinguisher, error)
	CreateEquipment(ctx context.Context, tenantID string, equipment *models.SafetyEquipment) (*models.SafetyEquipment, error)
}

// DisciplinaryService defines the interface for disciplinary record keeping
type DisciplinaryService interface {
	CreateCategory(ctx context.Context, tenantID string, category *models.DisciplinaryCategory) (*models.DisciplinaryCategory, error)
	CreateRecord(ctx context.Context, tenantID string, record *models.DisciplinaryRecord) (*models.DisciplinaryRecord, error)
	UpdateRecord(ctx context.Context, tenantID string, record *models.DisciplinaryRecord) (*models.DisciplinaryRecord, error)
	DeleteRecord(ctx context.Context, tenantID, id string) error
}

// InspectionService defines the interface for asset inspections
type InspectionService interface {
	RecordInspection(ctx context.Context, tenantID string, inspection *models.InspectionRecord) (*models.InspectionRecord, error)
	ListInspections(ctx context.Context, tenantID, assetType, assetID string) ([]*models.InspectionRecord, error)
}

// VaccinationService defines the interface for vaccination records
type VaccinationService interface {
	Register(ctx context.Context, tenantID string, vaccination *models.Vaccination) (*models.Vaccination, error)
	RecordBooster(ctx context.Context, tenantID, id string, appliedOn time.Time, dose string) (*models.Vaccination, error)
}

// AbsenceService defines the interface for leave and accident absences
type AbsenceService interface {
	Register(ctx context.Context, tenantID string, absence *models.Absence) (*models.Absence, error)
	ListForEmployee(ctx context.Context, tenantID, employeeID string) ([]AbsenceView, error)
}

// PPEService defines the interface for PPE stock and its movements
type PPEService interface {
	CreateType(ctx context.Context, tenantID string, ppeType *models.PPEType) (*models.PPEType, error)
	CreateItem(ctx context.Context, tenantID string, item *models.PPEItem) (*models.PPEItem, error)
	ListItems(ctx context.Context, tenantID string) ([]*models.PPEItem, error)
	Deliver(ctx context.Context, tenantID string, delivery *models.PPEDelivery) (*models.PPEDelivery, error)
}

// ExportService defines the interface for tabular exports
type ExportService interface {
	WriteExtinguishersCSV(ctx context.Context, tenantID string, w io.Writer) error
}

// DashboardCache is the subset of CacheService the dashboard depends on
type DashboardCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Version(ctx context.Context, tag string) (int64, error)
	SetIfVersion(ctx context.Context, key string, value interface{}, expiration time.Duration, tag string, version int64) (bool, error)
	InvalidateByTag(ctx context.Context, tag string) error
}
