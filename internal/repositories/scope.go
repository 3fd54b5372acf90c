package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/database"
	"github.com/andreprog02/saas-sst/internal/models"
)

// scopeProvider implements ScopeProvider
type scopeProvider struct {
	db *database.Connection
}

// NewScopeProvider creates the factory for tenant-bound repositories
func NewScopeProvider(db *database.Connection) ScopeProvider {
	return &scopeProvider{db: db}
}

// ForTenant returns a repository bound to tenantID
func (p *scopeProvider) ForTenant(tenantID string) TenantScope {
	return &tenantScope{db: p.db.DB, tenantID: tenantID}
}

// tenantScope implements TenantScope
type tenantScope struct {
	db       *gorm.DB
	tenantID string
}

func first(db *gorm.DB, dest interface{}, conds ...interface{}) error {
	err := db.First(dest, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// query starts every read and update; it is the single place the tenant filter is applied
func (s *tenantScope) query(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Where("tenant_id = ?", s.tenantID)
}

func (s *tenantScope) locked(ctx context.Context) *gorm.DB {
	return s.query(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
}

func (s *tenantScope) create(ctx context.Context, value interface{}) error {
	return s.db.WithContext(ctx).Create(value).Error
}

func (s *tenantScope) updates(ctx context.Context, model interface{}, id string, values map[string]interface{}) error {
	res := s.query(ctx).Model(model).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *tenantScope) TenantID() string {
	return s.tenantID
}

// Transaction runs fn inside a database transaction bound to the same tenant
func (s *tenantScope) Transaction(ctx context.Context, fn func(scope TenantScope) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&tenantScope{db: tx, tenantID: s.tenantID})
	})
}

// CreateDepartment creates a department and links the required norms. Every
// norm ID must exist in the catalog.
func (s *tenantScope) CreateDepartment(ctx context.Context, department *models.Department, normIDs []string) error {
	department.TenantID = s.tenantID
	if len(normIDs) > 0 {
		unique := make(map[string]struct{}, len(normIDs))
		for _, id := range normIDs {
			unique[id] = struct{}{}
		}
		var norms []models.RegulatoryNorm
		if err := s.db.WithContext(ctx).Where("id IN ?", normIDs).Find(&norms).Error; err != nil {
			return err
		}
		if len(norms) != len(unique) {
			return fmt.Errorf("regulatory norm: %w", ErrNotFound)
		}
		department.RequiredNorms = norms
	}
	return s.create(ctx, department)
}

// GetDepartment retrieves a department by ID
func (s *tenantScope) GetDepartment(ctx context.Context, id string) (*models.Department, error) {
	var department models.Department
	if err := first(s.query(ctx), &department, "id = ?", id); err != nil {
		return nil, err
	}
	return &department, nil
}

// ListDepartments retrieves the tenant's departments with their norms
func (s *tenantScope) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	var departments []*models.Department
	err := s.query(ctx).Preload("RequiredNorms").Order("name").Find(&departments).Error
	return departments, err
}

// CreateEmployee creates an employee
func (s *tenantScope) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	employee.TenantID = s.tenantID
	return s.create(ctx, employee)
}

// GetEmployee retrieves an employee by ID
func (s *tenantScope) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	var employee models.Employee
	if err := first(s.query(ctx).Preload("Department"), &employee, "id = ?", id); err != nil {
		return nil, err
	}
	return &employee, nil
}

// LockEmployee retrieves an employee and locks its row until the transaction ends
func (s *tenantScope) LockEmployee(ctx context.Context, id string) (*models.Employee, error) {
	var employee models.Employee
	if err := first(s.locked(ctx), &employee, "id = ?", id); err != nil {
		return nil, err
	}
	return &employee, nil
}

// ListEmployees retrieves every employee of the tenant
func (s *tenantScope) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	var employees []*models.Employee
	err := s.query(ctx).Preload("Department").Order("name").Find(&employees).Error
	return employees, err
}

// UpdateEmployee updates the editable employee fields
func (s *tenantScope) UpdateEmployee(ctx context.Context, employee *models.Employee) error {
	employee.TenantID = s.tenantID
	return s.updates(ctx, &models.Employee{}, employee.ID, map[string]interface{}{
		"department_id": employee.DepartmentID,
		"name":          employee.Name,
		"tax_id":        employee.TaxID,
		"job_title":     employee.JobTitle,
		"hired_on":      employee.HiredOn,
		"status":        employee.Status,
	})
}

// CreateDisciplinaryCategory creates a disciplinary category
func (s *tenantScope) CreateDisciplinaryCategory(ctx context.Context, category *models.DisciplinaryCategory) error {
	category.TenantID = s.tenantID
	return s.create(ctx, category)
}

// GetDisciplinaryCategory retrieves a category by ID
func (s *tenantScope) GetDisciplinaryCategory(ctx context.Context, id string) (*models.DisciplinaryCategory, error) {
	var category models.DisciplinaryCategory
	if err := first(s.query(ctx), &category, "id = ?", id); err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateDisciplinaryRecord inserts a record as given, including its IsRepeat flag
func (s *tenantScope) CreateDisciplinaryRecord(ctx context.Context, record *models.DisciplinaryRecord) error {
	record.TenantID = s.tenantID
	return s.create(ctx, record)
}

// GetDisciplinaryRecord retrieves a record by ID
func (s *tenantScope) GetDisciplinaryRecord(ctx context.Context, id string) (*models.DisciplinaryRecord, error) {
	var record models.DisciplinaryRecord
	if err := first(s.query(ctx).Preload("Category"), &record, "id = ?", id); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateDisciplinaryRecord updates the editable fields. The employee and the
// repeat flag are fixed at creation and never written here.
func (s *tenantScope) UpdateDisciplinaryRecord(ctx context.Context, record *models.DisciplinaryRecord) error {
	return s.updates(ctx, &models.DisciplinaryRecord{}, record.ID, map[string]interface{}{
		"category_id":   record.CategoryID,
		"incident_date": record.IncidentDate,
		"description":   record.Description,
	})
}

// DeleteDisciplinaryRecord deletes a record
func (s *tenantScope) DeleteDisciplinaryRecord(ctx context.Context, id string) error {
	res := s.query(ctx).Delete(&models.DisciplinaryRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListIncidents returns the disciplinary history of one employee
func (s *tenantScope) ListIncidents(ctx context.Context, employeeID string) ([]compliance.Incident, error) {
	var records []models.DisciplinaryRecord
	err := s.query(ctx).
		Select("employee_id", "category_id", "incident_date").
		Where("employee_id = ?", employeeID).
		Order("incident_date").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	incidents := make([]compliance.Incident, len(records))
	for i := range records {
		incidents[i] = records[i].Incident()
	}
	return incidents, nil
}

// CreateLocation creates a location
func (s *tenantScope) CreateLocation(ctx context.Context, location *models.Location) error {
	location.TenantID = s.tenantID
	return s.create(ctx, location)
}

// GetLocation retrieves a location by ID
func (s *tenantScope) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	var location models.Location
	if err := first(s.query(ctx), &location, "id = ?", id); err != nil {
		return nil, err
	}
	return &location, nil
}

// CreatePPEType creates a PPE type
func (s *tenantScope) CreatePPEType(ctx context.Context, ppeType *models.PPEType) error {
	ppeType.TenantID = s.tenantID
	return s.create(ctx, ppeType)
}

// GetPPEType retrieves a PPE type by ID
func (s *tenantScope) GetPPEType(ctx context.Context, id string) (*models.PPEType, error) {
	var ppeType models.PPEType
	if err := first(s.query(ctx), &ppeType, "id = ?", id); err != nil {
		return nil, err
	}
	return &ppeType, nil
}

// CreatePPEItem creates a PPE stock line
func (s *tenantScope) CreatePPEItem(ctx context.Context, item *models.PPEItem) error {
	item.TenantID = s.tenantID
	return s.create(ctx, item)
}

// ListPPEItems retrieves the tenant's PPE stock
func (s *tenantScope) ListPPEItems(ctx context.Context) ([]*models.PPEItem, error) {
	var items []*models.PPEItem
	err := s.query(ctx).Preload("Type").Preload("Location").Order("name").Find(&items).Error
	return items, err
}

// LockPPEItem retrieves a stock line and locks its row until the transaction ends
func (s *tenantScope) LockPPEItem(ctx context.Context, id string) (*models.PPEItem, error) {
	var item models.PPEItem
	if err := first(s.locked(ctx), &item, "id = ?", id); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdatePPEQuantity sets the on-hand quantity of a stock line
func (s *tenantScope) UpdatePPEQuantity(ctx context.Context, id string, quantity int) error {
	return s.updates(ctx, &models.PPEItem{}, id, map[string]interface{}{"quantity": quantity})
}

// CreatePPEDelivery records a delivery
func (s *tenantScope) CreatePPEDelivery(ctx context.Context, delivery *models.PPEDelivery) error {
	delivery.TenantID = s.tenantID
	return s.create(ctx, delivery)
}
