package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/database/dbtest"
	"github.com/andreprog02/saas-sst/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type repoFixture struct {
	tenants TenantRepository
	norms   NormRepository
	scopes  ScopeProvider
}

func setup(t *testing.T) *repoFixture {
	t.Helper()
	db := dbtest.Open(t)
	return &repoFixture{
		tenants: NewTenantRepository(db),
		norms:   NewNormRepository(db),
		scopes:  NewScopeProvider(db),
	}
}

func (f *repoFixture) tenant(t *testing.T, taxID string) TenantScope {
	t.Helper()
	tenant := &models.Tenant{TradeName: "Acme " + taxID, LegalName: "Acme Ltda", TaxID: taxID, IsActive: true}
	require.NoError(t, f.tenants.Create(context.Background(), tenant))
	return f.scopes.ForTenant(tenant.ID)
}

func TestTenantScope_Isolation(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	a := f.tenant(t, "11.111.111/0001-11")
	b := f.tenant(t, "22.222.222/0001-22")

	employee := &models.Employee{Name: "Maria", HiredOn: day(2020, 1, 1)}
	require.NoError(t, a.CreateEmployee(ctx, employee))
	assert.Equal(t, a.TenantID(), employee.TenantID)

	// a forged tenant on the payload is overwritten by the scope
	forged := &models.Employee{TenantID: a.TenantID(), Name: "João", HiredOn: day(2021, 1, 1)}
	require.NoError(t, b.CreateEmployee(ctx, forged))
	assert.Equal(t, b.TenantID(), forged.TenantID)

	_, err := b.GetEmployee(ctx, employee.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = b.LockEmployee(ctx, employee.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	employee.Name = "Hijacked"
	err = b.UpdateEmployee(ctx, employee)
	assert.True(t, errors.Is(err, ErrNotFound))

	got, err := a.GetEmployee(ctx, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", got.Name)

	listA, err := a.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, listA, 1)
	listB, err := b.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, listB, 1)
	assert.Equal(t, "João", listB[0].Name)
}

func TestTenantScope_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	scope := f.tenant(t, "11.111.111/0001-11")

	boom := errors.New("boom")
	err := scope.Transaction(ctx, func(tx TenantScope) error {
		assert.Equal(t, scope.TenantID(), tx.TenantID())
		require.NoError(t, tx.CreateExtinguisher(ctx, &models.Extinguisher{SerialNumber: "EXT-1", Agent: "co2"}))
		return boom
	})
	assert.Equal(t, boom, err)

	extinguishers, err := scope.ListExtinguishers(ctx)
	require.NoError(t, err)
	assert.Empty(t, extinguishers)
}

func TestDisciplinaryRecords(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	scope := f.tenant(t, "11.111.111/0001-11")

	employee := &models.Employee{Name: "Maria", HiredOn: day(2020, 1, 1)}
	require.NoError(t, scope.CreateEmployee(ctx, employee))
	category := &models.DisciplinaryCategory{Name: "No helmet"}
	require.NoError(t, scope.CreateDisciplinaryCategory(ctx, category))

	first := &models.DisciplinaryRecord{EmployeeID: employee.ID, CategoryID: category.ID, IncidentDate: day(2024, 5, 20)}
	second := &models.DisciplinaryRecord{EmployeeID: employee.ID, CategoryID: category.ID, IncidentDate: day(2024, 1, 3), IsRepeat: true}
	require.NoError(t, scope.CreateDisciplinaryRecord(ctx, first))
	require.NoError(t, scope.CreateDisciplinaryRecord(ctx, second))

	incidents, err := scope.ListIncidents(ctx, employee.ID)
	require.NoError(t, err)
	require.Len(t, incidents, 2)
	assert.Equal(t, compliance.Incident{EmployeeID: employee.ID, CategoryID: category.ID, Date: day(2024, 1, 3)}, incidents[0])

	t.Run("update never touches the repeat flag", func(t *testing.T) {
		edit := &models.DisciplinaryRecord{ID: second.ID, CategoryID: category.ID, IncidentDate: day(2024, 1, 4), Description: "edited", IsRepeat: false}
		require.NoError(t, scope.UpdateDisciplinaryRecord(ctx, edit))

		got, err := scope.GetDisciplinaryRecord(ctx, second.ID)
		require.NoError(t, err)
		assert.True(t, got.IsRepeat)
		assert.Equal(t, "edited", got.Description)
		require.NotNil(t, got.Category)
		assert.Equal(t, "No helmet", got.Category.Name)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, scope.DeleteDisciplinaryRecord(ctx, first.ID))
		assert.True(t, errors.Is(scope.DeleteDisciplinaryRecord(ctx, first.ID), ErrNotFound))
	})
}

func TestPPEStock(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	scope := f.tenant(t, "11.111.111/0001-11")

	location := &models.Location{Name: "Store"}
	require.NoError(t, scope.CreateLocation(ctx, location))
	ppeType := &models.PPEType{Name: "Gloves"}
	require.NoError(t, scope.CreatePPEType(ctx, ppeType))
	item := &models.PPEItem{TypeID: ppeType.ID, LocationID: &location.ID, Name: "Nitrile gloves", Quantity: 10, MinimumQuantity: 4}
	require.NoError(t, scope.CreatePPEItem(ctx, item))

	require.NoError(t, scope.UpdatePPEQuantity(ctx, item.ID, 3))
	locked, err := scope.LockPPEItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, locked.Quantity)

	items, err := scope.ListPPEItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Type)
	require.NotNil(t, items[0].Location)
	assert.True(t, items[0].StockLevel().Low())
	assert.Equal(t, "Store", items[0].StockLevel().Subject.Group)
}

func TestExtinguisherChecklist(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	scope := f.tenant(t, "11.111.111/0001-11")

	due := day(2025, 1, 1)
	ext := &models.Extinguisher{SerialNumber: "EXT-1", Agent: "co2", MaintenanceDue: &due}
	require.NoError(t, scope.CreateExtinguisher(ctx, ext))

	yes := true
	inspected := day(2024, 6, 1)
	ext.SealIntact = &yes
	ext.LastInspectionAt = &inspected
	ext.MaintenanceDue = nil
	require.NoError(t, scope.SaveExtinguisherChecklist(ctx, ext))

	got, err := scope.LockExtinguisher(ctx, ext.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SealIntact)
	assert.True(t, *got.SealIntact)
	assert.True(t, inspected.Equal(*got.LastInspectionAt))
	// due dates are not checklist columns
	require.NotNil(t, got.MaintenanceDue)
	assert.True(t, due.Equal(*got.MaintenanceDue))

	inspection := &models.InspectionRecord{
		AssetType:       models.AssetTypeExtinguisher,
		AssetID:         ext.ID,
		InspectedAt:     inspected,
		ResponsibleName: "Ana",
		Evidence:        []models.EvidenceFile{{FileName: "tag.jpg", StorageKey: "k/1"}},
	}
	require.NoError(t, scope.CreateInspection(ctx, inspection))

	history, err := scope.ListInspections(ctx, models.AssetTypeExtinguisher, ext.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Len(t, history[0].Evidence, 1)
	assert.Equal(t, scope.TenantID(), history[0].Evidence[0].TenantID)
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	scope := f.tenant(t, "11.111.111/0001-11")
	other := f.tenant(t, "22.222.222/0001-22")

	dept := &models.Department{Name: "Warehouse"}
	require.NoError(t, scope.CreateDepartment(ctx, dept, nil))
	employee := &models.Employee{Name: "Maria", HiredOn: day(2020, 1, 1), DepartmentID: &dept.ID}
	require.NoError(t, scope.CreateEmployee(ctx, employee))

	require.NoError(t, scope.CreateExtinguisher(ctx, &models.Extinguisher{SerialNumber: "EXT-1", Agent: "co2"}))
	require.NoError(t, scope.CreateEquipment(ctx, &models.SafetyEquipment{Name: "Hydrant", Category: "hydrant"}))
	require.NoError(t, scope.CreateVaccination(ctx, &models.Vaccination{EmployeeID: employee.ID, VaccineName: "Tetanus", AppliedOn: day(2024, 1, 10)}))
	require.NoError(t, scope.CreateTrainingCertificate(ctx, &models.TrainingCertificate{EmployeeID: employee.ID, Title: "Height", CompletedOn: day(2023, 6, 1)}))
	require.NoError(t, scope.CreateAbsence(ctx, &models.Absence{EmployeeID: employee.ID, Kind: "leave", StartDate: day(2024, 5, 1)}))

	require.NoError(t, other.CreateExtinguisher(ctx, &models.Extinguisher{SerialNumber: "EXT-OTHER", Agent: "co2"}))

	snap, err := scope.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, scope.TenantID(), snap.TenantID)
	// 2 extinguisher + 1 equipment + 1 vaccine + 1 training
	assert.Len(t, snap.Obligations, 5)
	assert.Len(t, snap.Assets, 2)
	for _, a := range snap.Assets {
		assert.NotEqual(t, "EXT-OTHER", a.InspectionSubject().Label)
	}
	require.Len(t, snap.Absences, 1)
	assert.Equal(t, "Warehouse", snap.Absences[0].Employee.Group)
	assert.Equal(t, []compliance.EmployeeStatus{compliance.EmployeeActive}, snap.Employees)
}

func TestNormRepository_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.norms.Seed(ctx, models.DefaultNorms)
	require.NoError(t, err)
	assert.Equal(t, len(models.DefaultNorms), created)

	created, err = f.norms.Seed(ctx, models.DefaultNorms)
	require.NoError(t, err)
	assert.Zero(t, created)

	all, err := f.norms.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(models.DefaultNorms))

	norm, err := f.norms.GetByCode(ctx, models.DefaultNorms[0].Code)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultNorms[0].Title, norm.Title)

	_, err = f.norms.GetByCode(ctx, "NR-99")
	assert.True(t, errors.Is(err, ErrNotFound))

	byID, err := f.norms.GetByID(ctx, norm.ID)
	require.NoError(t, err)
	assert.Equal(t, norm.Code, byID.Code)
}

func TestDepartments(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	a := f.tenant(t, "11.111.111/0001-11")
	b := f.tenant(t, "22.222.222/0001-22")

	_, err := f.norms.Seed(ctx, models.DefaultNorms)
	require.NoError(t, err)
	nr06, err := f.norms.GetByCode(ctx, "NR-06")
	require.NoError(t, err)

	department := &models.Department{Name: "Warehouse"}
	require.NoError(t, a.CreateDepartment(ctx, department, []string{nr06.ID, nr06.ID}))

	got, err := a.GetDepartment(ctx, department.ID)
	require.NoError(t, err)
	assert.Equal(t, "Warehouse", got.Name)
	_, err = b.GetDepartment(ctx, department.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	err = a.CreateDepartment(ctx, &models.Department{Name: "Office"}, []string{nr06.ID, "00000000-0000-0000-0000-000000000000"})
	assert.True(t, errors.Is(err, ErrNotFound))

	departments, err := a.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, departments, 1)
	assert.Len(t, departments[0].RequiredNorms, 1)
}

func TestLocationsAndPPETypes(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	a := f.tenant(t, "11.111.111/0001-11")
	b := f.tenant(t, "22.222.222/0001-22")

	location := &models.Location{Name: "Dock 1"}
	require.NoError(t, a.CreateLocation(ctx, location))
	ppeType := &models.PPEType{Name: "Gloves"}
	require.NoError(t, a.CreatePPEType(ctx, ppeType))

	gotLocation, err := a.GetLocation(ctx, location.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dock 1", gotLocation.Name)
	gotType, err := a.GetPPEType(ctx, ppeType.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gloves", gotType.Name)

	_, err = b.GetLocation(ctx, location.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = b.GetPPEType(ctx, ppeType.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTenantRepository(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	tenant := &models.Tenant{TradeName: "Acme", LegalName: "Acme Ltda", TaxID: "11.111.111/0001-11", IsActive: true}
	require.NoError(t, f.tenants.Create(ctx, tenant))
	assert.NotEmpty(t, tenant.ID)

	tenant.IsActive = false
	require.NoError(t, f.tenants.Update(ctx, tenant))
	got, err := f.tenants.GetByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, f.tenants.Delete(ctx, tenant.ID))
	_, err = f.tenants.GetByID(ctx, tenant.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}
