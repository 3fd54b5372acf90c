package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/config"
	"github.com/andreprog02/saas-sst/internal/models"
	"github.com/andreprog02/saas-sst/internal/repositories"
)

// MockDashboardCache is a mock implementation of DashboardCache
type MockDashboardCache struct {
	mock.Mock
}

func (m *MockDashboardCache) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockDashboardCache) Version(ctx context.Context, tag string) (int64, error) {
	args := m.Called(ctx, tag)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardCache) SetIfVersion(ctx context.Context, key string, value interface{}, expiration time.Duration, tag string, version int64) (bool, error) {
	args := m.Called(ctx, key, value, expiration, tag, version)
	return args.Bool(0), args.Error(1)
}

func (m *MockDashboardCache) InvalidateByTag(ctx context.Context, tag string) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func TestDashboardService_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tenantA := f.tenant(t, "11222333000181")
	tenantB := f.tenant(t, "44555666000199")

	f.extinguisher(t, tenantA, datePtr(2024, 5, 1))  // overdue
	f.extinguisher(t, tenantA, datePtr(2024, 6, 20)) // due soon
	f.extinguisher(t, tenantB, datePtr(2025, 1, 1))  // ok
	f.employee(t, tenantA, compliance.EmployeeActive)
	f.employee(t, tenantA, compliance.EmployeeSuspended)

	dashboard, err := f.dashboards.GetDashboard(ctx, tenantA)
	require.NoError(t, err)

	maintenance := dashboard.Obligations[compliance.KindExtinguisherMaintenance]
	assert.Equal(t, compliance.StateCounts{Overdue: 1, DueSoon: 1}, maintenance)
	assert.Equal(t, compliance.StateCounts{Unknown: 2}, dashboard.Obligations[compliance.KindHydrostaticTest])
	assert.Equal(t, 1, dashboard.RechargeDueSoon)
	assert.Len(t, dashboard.PendingInspections, 2, "never inspected active extinguishers")
	assert.Len(t, dashboard.EmployeesByStatus, 2)

	other, err := f.dashboards.GetDashboard(ctx, tenantB)
	require.NoError(t, err)
	assert.Equal(t, compliance.StateCounts{OK: 1}, other.Obligations[compliance.KindExtinguisherMaintenance])
	assert.Empty(t, other.EmployeesByStatus)
}

func TestDashboardService_Rollups(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tenantID := f.tenant(t, "11222333000181")
	scope := f.scopes.ForTenant(tenantID)

	dept := &models.Department{Name: "Warehouse"}
	require.NoError(t, scope.CreateDepartment(ctx, dept, nil))
	employee := &models.Employee{Name: "Ana Costa", HiredOn: date(2021, 1, 1), DepartmentID: &dept.ID}
	require.NoError(t, scope.CreateEmployee(ctx, employee))

	ppeType := &models.PPEType{Name: "Helmet"}
	require.NoError(t, scope.CreatePPEType(ctx, ppeType))
	require.NoError(t, scope.CreatePPEItem(ctx, &models.PPEItem{TypeID: ppeType.ID, Name: "Helmet", Quantity: 2, MinimumQuantity: 5, ValidUntil: datePtr(2024, 5, 31)}))

	require.NoError(t, scope.CreateVaccination(ctx, &models.Vaccination{EmployeeID: employee.ID, VaccineName: "Tetanus", AppliedOn: date(2014, 6, 1)}))
	require.NoError(t, scope.CreateTrainingCertificate(ctx, &models.TrainingCertificate{EmployeeID: employee.ID, Title: "Height work", CompletedOn: date(2023, 6, 1), ValidUntil: datePtr(2024, 6, 15)}))
	require.NoError(t, scope.CreateAbsence(ctx, &models.Absence{EmployeeID: employee.ID, Kind: "medical_leave", StartDate: date(2024, 5, 27)}))

	disciplinary := NewDisciplinaryService(f.logger, f.scopes, f.validator, f.dashboards, f.metrics)
	category := f.category(t, tenantID, "Missing PPE")
	for _, d := range []time.Time{date(2024, 4, 3), date(2024, 5, 8)} {
		_, err := disciplinary.CreateRecord(ctx, tenantID, &models.DisciplinaryRecord{EmployeeID: employee.ID, CategoryID: category.ID, IncidentDate: d})
		require.NoError(t, err)
	}

	dashboard, err := f.dashboards.GetDashboard(ctx, tenantID)
	require.NoError(t, err)

	assert.Equal(t, compliance.StateCounts{Overdue: 1}, dashboard.Obligations[compliance.KindPPEValidity])
	assert.Equal(t, compliance.StateCounts{Unknown: 1}, dashboard.Obligations[compliance.KindVaccineBooster])
	assert.Equal(t, compliance.StateCounts{DueSoon: 1}, dashboard.Obligations[compliance.KindTrainingCertificate])
	require.Len(t, dashboard.LowStock, 1)
	require.Len(t, dashboard.OpenAbsences, 1)
	assert.Equal(t, 5, dashboard.OpenAbsences[0].Days)
	assert.Equal(t, "Warehouse", dashboard.OpenAbsences[0].Employee.Group)
	assert.Equal(t, []compliance.GroupCount{{Key: "Missing PPE", Count: 2}}, dashboard.IncidentsByCategory)
	assert.Equal(t, []compliance.GroupCount{{Key: "Warehouse", Count: 2}}, dashboard.IncidentsByDepartment)
	assert.Equal(t, 1, dashboard.RepeatIncidents)
	assert.Len(t, dashboard.IncidentsByMonth, 2)
}

func TestDashboardService_Cache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tenantID := f.tenant(t, "11222333000181")
	key := DashboardKey(tenantID, today)
	cfg := &config.Config{Cache: config.CacheConfig{DashboardTTL: 120}}

	t.Run("miss builds and stores", func(t *testing.T) {
		cache := new(MockDashboardCache)
		cache.On("Get", ctx, key, mock.Anything).Return(ErrCacheMiss)
		cache.On("Version", ctx, TenantTag(tenantID)).Return(int64(7), nil)
		cache.On("SetIfVersion", ctx, key, mock.AnythingOfType("compliance.Dashboard"), 120*time.Second, TenantTag(tenantID), int64(7)).Return(true, nil)

		metrics := NewMetrics(prometheus.NewRegistry())
		svc := NewDashboardService(f.logger, f.scopes, f.policies, f.clock, cache, metrics, cfg)

		dashboard, err := svc.GetDashboard(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, tenantID, dashboard.TenantID)
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.dashboardBuilds))
		cache.AssertExpectations(t)
	})

	t.Run("hit skips the database", func(t *testing.T) {
		cache := new(MockDashboardCache)
		cache.On("Get", ctx, key, mock.Anything).
			Run(func(args mock.Arguments) {
				d := args.Get(2).(*compliance.Dashboard)
				d.TenantID = "cached"
			}).
			Return(nil)

		metrics := NewMetrics(prometheus.NewRegistry())
		svc := NewDashboardService(f.logger, f.scopes, f.policies, f.clock, cache, metrics, cfg)

		dashboard, err := svc.GetDashboard(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, "cached", dashboard.TenantID)
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.cacheHits))
		assert.Equal(t, float64(0), testutil.ToFloat64(metrics.dashboardBuilds))
		cache.AssertNotCalled(t, "SetIfVersion", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache errors do not fail the request", func(t *testing.T) {
		cache := new(MockDashboardCache)
		cache.On("Get", ctx, key, mock.Anything).Return(errors.New("connection refused"))
		cache.On("Version", ctx, TenantTag(tenantID)).Return(int64(0), errors.New("connection refused"))

		svc := NewDashboardService(f.logger, f.scopes, f.policies, f.clock, cache, NewMetrics(prometheus.NewRegistry()), cfg)

		_, err := svc.GetDashboard(ctx, tenantID)
		assert.NoError(t, err)
		// without a version the result is never written
		cache.AssertNotCalled(t, "SetIfVersion", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("write errors do not fail the request", func(t *testing.T) {
		cache := new(MockDashboardCache)
		cache.On("Get", ctx, key, mock.Anything).Return(ErrCacheMiss)
		cache.On("Version", ctx, TenantTag(tenantID)).Return(int64(0), nil)
		cache.On("SetIfVersion", ctx, key, mock.Anything, mock.Anything, mock.Anything, int64(0)).Return(false, errors.New("connection refused"))

		svc := NewDashboardService(f.logger, f.scopes, f.policies, f.clock, cache, NewMetrics(prometheus.NewRegistry()), cfg)

		_, err := svc.GetDashboard(ctx, tenantID)
		assert.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("writes invalidate the tenant tag", func(t *testing.T) {
		cache := new(MockDashboardCache)
		cache.On("InvalidateByTag", ctx, TenantTag(tenantID)).Return(nil)

		metrics := NewMetrics(prometheus.NewRegistry())
		dashboards := NewDashboardService(f.logger, f.scopes, f.policies, f.clock, cache, metrics, cfg)
		svc := NewVaccinationService(f.logger, f.scopes, f.validator, f.clock, dashboards, metrics)

		_, err := svc.Register(ctx, tenantID, &models.Vaccination{
			EmployeeID:  f.employee(t, tenantID, compliance.EmployeeActive).ID,
			VaccineName: "Yellow fever",
			AppliedOn:   date(2024, 5, 1),
		})
		require.NoError(t, err)
		cache.AssertExpectations(t)
	})
}

// versionedCache is an in-memory DashboardCache with per-tag versions
type versionedCache struct {
	values   map[string]compliance.Dashboard
	versions map[string]int64
}

func newVersionedCache() *versionedCache {
	return &versionedCache{values: map[string]compliance.Dashboard{}, versions: map[string]int64{}}
}

func (c *versionedCache) Get(_ context.Context, key string, dest interface{}) error {
	v, ok := c.values[key]
	if !ok {
		return ErrCacheMiss
	}
	*dest.(*compliance.Dashboard) = v
	return nil
}

func (c *versionedCache) Version(_ context.Context, tag string) (int64, error) {
	return c.versions[tag], nil
}

func (c *versionedCache) SetIfVersion(_ context.Context, key string, value interface{}, _ time.Duration, tag string, version int64) (bool, error) {
	if c.versions[tag] != version {
		return false, nil
	}
	c.values[key] = value.(compliance.Dashboard)
	return true, nil
}

func (c *versionedCache) InvalidateByTag(_ context.Context, tag string) error {
	c.versions[tag]++
	c.values = map[string]compliance.Dashboard{}
	return nil
}

// afterSnapshot runs a callback once, right after the first snapshot is read
type afterSnapshot struct {
	repositories.ScopeProvider
	fn func()
}

func (p *afterSnapshot) ForTenant(tenantID string) repositories.TenantScope {
	return &afterSnapshotScope{TenantScope: p.ScopeProvider.ForTenant(tenantID), owner: p}
}

type afterSnapshotScope struct {
	repositories.TenantScope
	owner *afterSnapshot
}

func (s *afterSnapshotScope) Snapshot(ctx context.Context) (compliance.TenantSnapshot, error) {
	snap, err := s.TenantScope.Snapshot(ctx)
	if fn := s.owner.fn; fn != nil {
		s.owner.fn = nil
		fn()
	}
	return snap, err
}

func TestDashboardService_WriteDuringBuildIsNotCached(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tenantID := f.tenant(t, "11222333000181")
	cfg := &config.Config{Cache: config.CacheConfig{DashboardTTL: 300}}
	cache := newVersionedCache()

	scopes := &afterSnapshot{ScopeProvider: f.scopes}
	dashboards := NewDashboardService(f.logger, scopes, f.policies, f.clock, cache, f.metrics, cfg)
	assets := NewAssetService(f.logger, f.scopes, f.validator, dashboards, f.metrics)

	scopes.fn = func() {
		_, err := assets.CreateExtinguisher(ctx, tenantID, &models.Extinguisher{
			SerialNumber:   "EXT-900",
			Agent:          "water",
			MaintenanceDue: datePtr(2024, 5, 1),
		})
		require.NoError(t, err)
	}

	stale, err := dashboards.GetDashboard(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, compliance.StateCounts{}, stale.Obligations[compliance.KindExtinguisherMaintenance])
	assert.Empty(t, cache.values, "a build overtaken by a write must not be cached")

	fresh, err := dashboards.GetDashboard(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, compliance.StateCounts{Overdue: 1}, fresh.Obligations[compliance.KindExtinguisherMaintenance])
	assert.Len(t, cache.values, 1)

	cached, err := dashboards.GetDashboard(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, fresh.Obligations, cached.Obligations)
}

func TestMetrics_ObserveDashboard(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	metrics.ObserveDashboard(&compliance.Dashboard{
		TenantID: "t1",
		Obligations: map[compliance.Kind]compliance.StateCounts{
			compliance.KindHydrostaticTest: {OK: 4, Overdue: 1},
		},
		PendingInspections: make([]compliance.PendingInspection, 3),
	})

	assert.Equal(t, float64(4), testutil.ToFloat64(metrics.obligations.WithLabelValues("t1", "hydrostatic_test", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.obligations.WithLabelValues("t1", "hydrostatic_test", "overdue")))
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.pendingInspections.WithLabelValues("t1")))
}
