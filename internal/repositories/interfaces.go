package repositories

import (
	"context"
	"errors"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/models"
)

// ErrNotFound is returned when a record does not exist within the tenant
var ErrNotFound = errors.New("record not found")

// TenantRepository defines the interface for the tenant registry. It is the
// only repository that is not itself scoped to a tenant.
type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id string) (*models.Tenant, error)
	GetAll(ctx context.Context) ([]*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	Delete(ctx context.Context, id string) error
}

// NormRepository defines the interface for the shared regulatory norm catalog
type NormRepository interface {
	GetAll(ctx context.Context) ([]*models.RegulatoryNorm, error)
	GetByID(ctx context.Context, id string) (*models.RegulatoryNorm, error)
	GetByCode(ctx context.Context, code string) (*models.RegulatoryNorm, error)
	Seed(ctx context.Context, norms []models.RegulatoryNorm) (int, error)
}

// ScopeProvider hands out repositories bound to one tenant
type ScopeProvider interface {
	ForTenant(tenantID string) TenantScope
}

// TenantScope defines every data operation on tenant-owned records. An
// implementation is bound to a single tenant: reads are filtered by it and
// writes are stamped with it, whatever the caller put in TenantID.
type TenantScope interface {
	TenantID() string
	// Transaction runs fn with a scope whose operations share one database transaction
	Transaction(ctx context.Context, fn func(scope TenantScope) error) error

	// Departments
	CreateDepartment(ctx context.Context, department *models.Department, normIDs []string) error
	GetDepartment(ctx context.Context, id string) (*models.Department, error)
	ListDepartments(ctx context.Context) ([]*models.Department, error)

	// Employees
	CreateEmployee(ctx context.Context, employee *models.Employee) error
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	LockEmployee(ctx context.Context, id string) (*models.Employee, error)
	ListEmployees(ctx context.Context) ([]*models.Employee, error)
	UpdateEmployee(ctx context.Context, employee *models.Employee) error

	// Disciplinary records
	CreateDisciplinaryCategory(ctx context.Context, category *models.DisciplinaryCategory) error
	GetDisciplinaryCategory(ctx context.Context, id string) (*models.DisciplinaryCategory, error)
	CreateDisciplinaryRecord(ctx context.Context, record *models.DisciplinaryRecord) error
	GetDisciplinaryRecord(ctx context.Context, id string) (*models.DisciplinaryRecord, error)
	UpdateDisciplinaryRecord(ctx context.Context, record *models.DisciplinaryRecord) error
	DeleteDisciplinaryRecord(ctx context.Context, id string) error
	ListIncidents(ctx context.Context, employeeID string) ([]compliance.Incident, error)

	// Locations and PPE stock
	CreateLocation(ctx context.Context, location *models.Location) error
	GetLocation(ctx context.Context, id string) (*models.Location, error)
	CreatePPEType(ctx context.Context, ppeType *models.PPEType) error
	GetPPEType(ctx context.Context, id string) (*models.PPEType, error)
	CreatePPEItem(ctx context.Context, item *models.PPEItem) error
	ListPPEItems(ctx context.Context) ([]*models.PPEItem, error)
	LockPPEItem(ctx context.Context, id string) (*models.PPEItem, error)
	UpdatePPEQuantity(ctx context.Context, id string, quantity int) error
	CreatePPEDelivery(ctx context.Context, delivery *models.PPEDelivery) error

	// Assets
	CreateExtinguisher(ctx context.Context, extinguisher *models.Extinguisher) error
	LockExtinguisher(ctx context.Context, id string) (*models.Extinguisher, error)
	ListExtinguishers(ctx context.Context) ([]*models.Extinguisher, error)
	SaveExtinguisherChecklist(ctx context.Context, extinguisher *models.Extinguisher) error
	CreateEquipment(ctx context.Context, equipment *models.SafetyEquipment) error
	LockEquipment(ctx context.Context, id string) (*models.SafetyEquipment, error)
	ListEquipment(ctx context.Context) ([]*models.SafetyEquipment, error)
	SaveEquipmentChecklist(ctx context.Context, equipment *models.SafetyEquipment) error

	// Inspections
	CreateInspection(ctx context.Context, inspection *models.InspectionRecord) error
	ListInspections(ctx context.Context, assetType, assetID string) ([]*models.InspectionRecord, error)

	// Health records
	CreateVaccination(ctx context.Context, vaccination *models.Vaccination) error
	GetVaccination(ctx context.Context, id string) (*models.Vaccination, error)
	UpdateVaccination(ctx context.Context, vaccination *models.Vaccination) error
	CreateTrainingCertificate(ctx context.Context, certificate *models.TrainingCertificate) error
	CreateAbsence(ctx context.Context, absence *models.Absence) error
	ListAbsences(ctx context.Context, employeeID string) ([]*models.Absence, error)

	// Snapshot loads everything the compliance dashboard needs
	Snapshot(ctx context.Context) (compliance.TenantSnapshot, error)
}
