package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/models"
)

func TestPPEService_Deliver(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewPPEService(f.logger, f.scopes, f.validator, f.clock, f.dashboards, f.metrics)

	tenantID := f.tenant(t, "11222333000181")
	scope := f.scopes.ForTenant(tenantID)

	ppeType := &models.PPEType{Name: "Gloves"}
	require.NoError(t, scope.CreatePPEType(ctx, ppeType))
	item := &models.PPEItem{TypeID: ppeType.ID, Name: "Nitrile gloves", ApprovalCertificate: "CA 12345", Quantity: 10, MinimumQuantity: 2}
	require.NoError(t, scope.CreatePPEItem(ctx, item))

	active := f.employee(t, tenantID, compliance.EmployeeActive)
	onLeave := f.employee(t, tenantID, compliance.EmployeeOnLeave)

	stock := func() int {
		items, err := scope.ListPPEItems(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		return items[0].Quantity
	}

	t.Run("lowers stock", func(t *testing.T) {
		delivery, err := svc.Deliver(ctx, tenantID, &models.PPEDelivery{EmployeeID: active.ID, ItemID: item.ID, Quantity: 3})
		require.NoError(t, err)
		assert.Equal(t, today, delivery.DeliveredOn)
		assert.Equal(t, 7, stock())
	})

	t.Run("insufficient stock", func(t *testing.T) {
		_, err := svc.Deliver(ctx, tenantID, &models.PPEDelivery{EmployeeID: active.ID, ItemID: item.ID, Quantity: 8})
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, 7, stock())
	})

	t.Run("employee not eligible", func(t *testing.T) {
		_, err := svc.Deliver(ctx, tenantID, &models.PPEDelivery{EmployeeID: onLeave.ID, ItemID: item.ID, Quantity: 1})
		assert.ErrorIs(t, err, ErrEmployeeNotEligible)
		assert.Equal(t, 7, stock())
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := svc.Deliver(ctx, tenantID, &models.PPEDelivery{EmployeeID: active.ID, ItemID: item.ID})
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestPPEService_CreateItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewPPEService(f.logger, f.scopes, f.validator, f.clock, f.dashboards, f.metrics)
	tenantA := f.tenant(t, "11222333000181")
	tenantB := f.tenant(t, "44555666000199")

	helmet, err := svc.CreateType(ctx, tenantA, &models.PPEType{Name: "Helmet"})
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, tenantA, &models.PPEItem{
		TypeID: helmet.ID, Name: "Helmet class B", Quantity: 2, MinimumQuantity: 5, ValidUntil: datePtr(2024, 6, 15),
	})
	require.NoError(t, err)
	assert.Equal(t, tenantA, item.TenantID)

	items, err := svc.ListItems(ctx, tenantA)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Helmet class B", items[0].Name)

	dashboard, err := f.dashboards.GetDashboard(ctx, tenantA)
	require.NoError(t, err)
	assert.Len(t, dashboard.LowStock, 1)
	assert.Equal(t, compliance.StateCounts{DueSoon: 1}, dashboard.Obligations[compliance.KindPPEValidity])

	t.Run("type of another tenant", func(t *testing.T) {
		_, err := svc.CreateItem(ctx, tenantB, &models.PPEItem{TypeID: helmet.ID, Name: "Borrowed"})
		assert.ErrorIs(t, err, ErrNotFound)

		items, err := svc.ListItems(ctx, tenantB)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("unknown location", func(t *testing.T) {
		missing := "00000000-0000-0000-0000-000000000000"
		_, err := svc.CreateItem(ctx, tenantA, &models.PPEItem{TypeID: helmet.ID, Name: "Helmet", LocationID: &missing})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("negative quantity", func(t *testing.T) {
		_, err := svc.CreateItem(ctx, tenantA, &models.PPEItem{TypeID: helmet.ID, Name: "Helmet", Quantity: -1})
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("type name required", func(t *testing.T) {
		_, err := svc.CreateType(ctx, tenantA, &models.PPEType{})
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}
