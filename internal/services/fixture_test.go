package services

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/config"
	"github.com/andreprog02/saas-sst/internal/database/dbtest"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/models"
	"github.com/andreprog02/saas-sst/internal/repositories"
)

var today = date(2024, 6, 1)

type fixture struct {
	scopes     repositories.ScopeProvider
	tenants    repositories.TenantRepository
	norms      repositories.NormRepository
	logger     *logger.Logger
	validator  *models.ValidationService
	clock      compliance.Clock
	policies   *compliance.PolicySet
	metrics    *Metrics
	dashboards DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn := dbtest.Open(t)
	cfg := &config.Config{
		Logging: config.LoggingConfig{Level: "error", Format: "text"},
		Cache:   config.CacheConfig{DashboardTTL: 60},
	}

	f := &fixture{
		scopes:    repositories.NewScopeProvider(conn),
		tenants:   repositories.NewTenantRepository(conn),
		norms:     repositories.NewNormRepository(conn),
		logger:    logger.NewLogger(cfg),
		validator: models.NewValidationService(),
		clock:     compliance.FixedClock{Day: today},
		policies:  compliance.DefaultPolicies(),
		metrics:   NewMetrics(prometheus.NewRegistry()),
	}
	f.dashboards = NewDashboardService(f.logger, f.scopes, f.policies, f.clock, nil, f.metrics, cfg)
	return f
}

func (f *fixture) tenant(t *testing.T, taxID string) string {
	t.Helper()
	tenant := &models.Tenant{TradeName: "Acme " + taxID, LegalName: "Acme Ltda", TaxID: taxID, IsActive: true}
	require.NoError(t, f.tenants.Create(context.Background(), tenant))
	return tenant.ID
}

func (f *fixture) employee(t *testing.T, tenantID string, status compliance.EmployeeStatus) *models.Employee {
	t.Helper()
	e := &models.Employee{Name: "Maria Souza", HiredOn: date(2020, 3, 1), Status: status}
	require.NoError(t, f.scopes.ForTenant(tenantID).CreateEmployee(context.Background(), e))
	return e
}

func (f *fixture) category(t *testing.T, tenantID, name string) *models.DisciplinaryCategory {
	t.Helper()
	c := &models.DisciplinaryCategory{Name: name}
	require.NoError(t, f.scopes.ForTenant(tenantID).CreateDisciplinaryCategory(context.Background(), c))
	return c
}

func (f *fixture) extinguisher(t *testing.T, tenantID string, maintenanceDue *time.Time) *models.Extinguisher {
	t.Helper()
	e := &models.Extinguisher{SerialNumber: "EXT-001", Agent: "co2", CapacityKg: 6, MaintenanceDue: maintenanceDue}
	require.NoError(t, f.scopes.ForTenant(tenantID).CreateExtinguisher(context.Background(), e))
	return e
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func boolPtr(b bool) *bool {
	return &b
}

func day(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
