package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/andreprog02/saas-sst/internal/compliance"
)

// Extinguisher is a fire extinguisher. Maintenance (recharge) and hydrostatic
// test due dates are set by the operator; inspections only update the
// checklist flags.
type Extinguisher struct {
	ID                    string                 `json:"id" gorm:"primaryKey;type:uuid"`
	TenantID              string                 `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	LocationID            *string                `json:"location_id,omitempty" gorm:"type:uuid;index"`
	SerialNumber          string                 `json:"serial_number" gorm:"size:50;not null" validate:"required,max=50"`
	Agent                 string                 `json:"agent" gorm:"size:20;not null" validate:"required,oneof=water foam co2 abc_powder bc_powder"`
	CapacityKg            float64                `json:"capacity_kg" validate:"gte=0"`
	Status                compliance.AssetStatus `json:"status" gorm:"size:20;not null;default:active;index" validate:"required,oneof=active maintenance reserve condemned"`
	LastMaintenanceOn     *time.Time             `json:"last_maintenance_on,omitempty" gorm:"type:date"`
	MaintenanceDue        *time.Time             `json:"maintenance_due,omitempty" gorm:"type:date"`
	LastHydrostaticTestOn *time.Time             `json:"last_hydrostatic_test_on,omitempty" gorm:"type:date"`
	HydrostaticTestDue    *time.Time             `json:"hydrostatic_test_due,omitempty" gorm:"type:date"`
	SignageOK             *bool                  `json:"signage_ok,omitempty"`
	AccessClear           *bool                  `json:"access_clear,omitempty"`
	SealIntact            *bool                  `json:"seal_intact,omitempty"`
	PressureOK            *bool                  `json:"pressure_ok,omitempty"`
	LastInspectionAt      *time.Time             `json:"last_inspection_at,omitempty"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
	DeletedAt             gorm.DeletedAt         `json:"-" gorm:"index"`

	// Relationships
	Location *Location `json:"location,omitempty" gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Extinguisher
func (Extinguisher) TableName() string {
	return "extinguishers"
}

func (e *Extinguisher) BeforeCreate(tx *gorm.DB) error {
	assignID(&e.ID)
	if e.Status == "" {
		e.Status = compliance.AssetActive
	}
	return nil
}

func (e *Extinguisher) InspectionSubject() compliance.Subject {
	return compliance.Subject{ID: e.ID, Label: e.SerialNumber, Group: locationName(e.Location)}
}

func (e *Extinguisher) OperationalStatus() compliance.AssetStatus { return e.Status }

func (e *Extinguisher) LastInspection() *time.Time { return e.LastInspectionAt }

// Obligations returns the maintenance and hydrostatic test obligations.
// Condemned extinguishers carry none.
func (e *Extinguisher) Obligations() []compliance.Instance {
	if e.Status == compliance.AssetCondemned {
		return nil
	}
	subject := e.InspectionSubject()
	return []compliance.Instance{
		{
			Kind:   compliance.KindExtinguisherMaintenance,
			Of:     subject,
			Base:   baseOr(e.LastMaintenanceOn, e.CreatedAt),
			Target: e.MaintenanceDue,
		},
		{
			Kind:   compliance.KindHydrostaticTest,
			Of:     subject,
			Base:   baseOr(e.LastHydrostaticTestOn, e.CreatedAt),
			Target: e.HydrostaticTestDue,
		},
	}
}

// Checklist returns the inspection state carried on the extinguisher
func (e *Extinguisher) Checklist() compliance.AssetChecklist {
	return compliance.AssetChecklist{
		SignageOK:        e.SignageOK,
		AccessClear:      e.AccessClear,
		SealIntact:       e.SealIntact,
		PressureOK:       e.PressureOK,
		LastInspectionAt: e.LastInspectionAt,
	}
}

// SetChecklist copies the checklist fields an extinguisher tracks
func (e *Extinguisher) SetChecklist(c compliance.AssetChecklist) {
	e.SignageOK = c.SignageOK
	e.AccessClear = c.AccessClear
	e.SealIntact = c.SealIntact
	e.PressureOK = c.PressureOK
	e.LastInspectionAt = c.LastInspectionAt
}
