package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreprog02/saas-sst/internal/models"
)

func TestInspectionService_RecordInspection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewInspectionService(f.logger, f.scopes, f.validator, f.clock, f.dashboards, f.metrics)

	tenantID := f.tenant(t, "11222333000181")
	ext := f.extinguisher(t, tenantID, datePtr(2024, 9, 1))
	require.NoError(t, f.scopes.ForTenant(tenantID).SaveExtinguisherChecklist(ctx, &models.Extinguisher{
		ID:         ext.ID,
		PressureOK: boolPtr(true),
		SealIntact: boolPtr(true),
	}))

	inspection, err := svc.RecordInspection(ctx, tenantID, &models.InspectionRecord{
		AssetType:       models.AssetTypeExtinguisher,
		AssetID:         ext.ID,
		InspectedAt:     date(2024, 5, 20),
		ResponsibleName: "João Lima",
		SignageOK:       boolPtr(false),
		Evidence: []models.EvidenceFile{
			{FileName: "front.jpg", ContentType: "image/jpeg", SizeBytes: 2048, StorageKey: "inspections/front.jpg"},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, inspection.ID)

	stored := loadExtinguisher(t, f, tenantID, ext.ID)
	assert.Equal(t, false, *stored.SignageOK)
	assert.Equal(t, true, *stored.PressureOK, "fields not covered by the inspection are kept")
	assert.Equal(t, true, *stored.SealIntact)
	assert.Nil(t, stored.AccessClear)
	assert.Equal(t, "2024-05-20", day(stored.LastInspectionAt))
	assert.Equal(t, "2024-09-01", day(stored.MaintenanceDue), "maintenance chain is not re-based")

	history, err := svc.ListInspections(ctx, tenantID, models.AssetTypeExtinguisher, ext.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Len(t, history[0].Evidence, 1)
	assert.Equal(t, tenantID, history[0].Evidence[0].TenantID)
}

func TestInspectionService_OlderInspectionDoesNotMoveDateBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewInspectionService(f.logger, f.scopes, f.validator, f.clock, f.dashboards, f.metrics)

	tenantID := f.tenant(t, "11222333000181")
	ext := f.extinguisher(t, tenantID, nil)

	for _, at := range []int{20, 10} {
		_, err := svc.RecordInspection(ctx, tenantID, &models.InspectionRecord{
			AssetType:       models.AssetTypeExtinguisher,
			AssetID:         ext.ID,
			InspectedAt:     date(2024, 5, at),
			ResponsibleName: "João Lima",
			AccessClear:     boolPtr(at == 10),
		})
		require.NoError(t, err)
	}

	stored := loadExtinguisher(t, f, tenantID, ext.ID)
	assert.Equal(t, "2024-05-20", day(stored.LastInspectionAt))
	assert.Equal(t, false, *stored.AccessClear, "back-dated inspection does not overwrite a newer result")

	history, err := svc.ListInspections(ctx, tenantID, models.AssetTypeExtinguisher, ext.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestInspectionService_Equipment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewInspectionService(f.logger, f.scopes, f.validator, f.clock, f.dashboards, f.metrics)

	tenantID := f.tenant(t, "11222333000181")
	eq := &models.SafetyEquipment{Name: "Eyewash station", Category: "eyewash"}
	require.NoError(t, f.scopes.ForTenant(tenantID).CreateEquipment(ctx, eq))

	inspection, err := svc.RecordInspection(ctx, tenantID, &models.InspectionRecord{
		AssetType:       models.AssetTypeEquipment,
		AssetID:         eq.ID,
		ResponsibleName: "João Lima",
		Operational:     boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, today, inspection.InspectedAt, "missing inspection time defaults to today")

	equipment, err := f.scopes.ForTenant(tenantID).ListEquipment(ctx)
	require.NoError(t, err)
	require.Len(t, equipment, 1)
	assert.Equal(t, true, *equipment[0].Operational)
	assert.Equal(t, "2024-06-01", day(equipment[0].LastInspectionAt))
}

func TestInspectionService_AssetNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewInspectionService(f.logger, f.scopes, f.validator, f.clock, f.dashboards, f.metrics)

	tenantA := f.tenant(t, "11222333000181")
	tenantB := f.tenant(t, "44555666000199")
	foreign := f.extinguisher(t, tenantB, nil)

	_, err := svc.RecordInspection(ctx, tenantA, &models.InspectionRecord{
		AssetType:       models.AssetTypeExtinguisher,
		AssetID:         foreign.ID,
		InspectedAt:     today,
		ResponsibleName: "João Lima",
	})
	assert.ErrorIs(t, err, ErrAssetNotFound)

	history, err := svc.ListInspections(ctx, tenantB, models.AssetTypeExtinguisher, foreign.ID)
	require.NoError(t, err)
	assert.Empty(t, history, "failed inspection must not be stored")
}

func loadExtinguisher(t *testing.T, f *fixture, tenantID, id string) *models.Extinguisher {
	t.Helper()
	all, err := f.scopes.ForTenant(tenantID).ListExtinguishers(context.Background())
	require.NoError(t, err)
	for _, e := range all {
		if e.ID == id {
			return e
		}
	}
	t.Fatalf("extinguisher %s not found", id)
	return nil
}
