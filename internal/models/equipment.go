package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/andreprog02/saas-sst/internal/compliance"
)

// SafetyEquipment is any other inspected safety asset (hydrants, emergency
// lights, eyewash stations, alarm panels)
type SafetyEquipment struct {
	ID                string                 `json:"id" gorm:"primaryKey;type:uuid"`
	TenantID          string                 `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	LocationID        *string                `json:"location_id,omitempty" gorm:"type:uuid;index"`
	Name              string                 `json:"name" gorm:"not null" validate:"required,min=1,max=255"`
	Category          string                 `json:"category" gorm:"size:50;not null" validate:"required,max=50"`
	Status            compliance.AssetStatus `json:"status" gorm:"size:20;not null;default:active;index" validate:"required,oneof=active maintenance reserve condemned"`
	LastMaintenanceOn *time.Time             `json:"last_maintenance_on,omitempty" gorm:"type:date"`
	MaintenanceDue    *time.Time             `json:"maintenance_due,omitempty" gorm:"type:date"`
	SignageOK         *bool                  `json:"signage_ok,omitempty"`
	AccessClear       *bool                  `json:"access_clear,omitempty"`
	Operational       *bool                  `json:"operational,omitempty"`
	LastInspectionAt  *time.Time             `json:"last_inspection_at,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
	DeletedAt         gorm.DeletedAt         `json:"-" gorm:"index"`

	// Relationships
	Location *Location `json:"location,omitempty" gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for SafetyEquipment
func (SafetyEquipment) TableName() string {
	return "safety_equipment"
}

func (s *SafetyEquipment) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	if s.Status == "" {
		s.Status = compliance.AssetActive
	}
	return nil
}

func (s *SafetyEquipment) InspectionSubject() compliance.Subject {
	return compliance.Subject{ID: s.ID, Label: s.Name, Group: locationName(s.Location)}
}

func (s *SafetyEquipment) OperationalStatus() compliance.AssetStatus { return s.Status }

func (s *SafetyEquipment) LastInspection() *time.Time { return s.LastInspectionAt }

// Obligations returns the maintenance obligation; condemned equipment carries none
func (s *SafetyEquipment) Obligations() []compliance.Instance {
	if s.Status == compliance.AssetCondemned {
		return nil
	}
	return []compliance.Instance{{
		Kind:   compliance.KindEquipmentMaintenance,
		Of:     s.InspectionSubject(),
		Base:   baseOr(s.LastMaintenanceOn, s.CreatedAt),
		Target: s.MaintenanceDue,
	}}
}

// Checklist returns the inspection state carried on the equipment
func (s *SafetyEquipment) Checklist() compliance.AssetChecklist {
	return compliance.AssetChecklist{
		SignageOK:        s.SignageOK,
		AccessClear:      s.AccessClear,
		Operational:      s.Operational,
		LastInspectionAt: s.LastInspectionAt,
	}
}

// SetChecklist copies the checklist fields the equipment tracks
func (s *SafetyEquipment) SetChecklist(c compliance.AssetChecklist) {
	s.SignageOK = c.SignageOK
	s.AccessClear = c.AccessClear
	s.Operational = c.Operational
	s.LastInspectionAt = c.LastInspectionAt
}
