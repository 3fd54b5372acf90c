package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/andreprog02/saas-sst/internal/compliance"
)

// Inspected asset types
const (
	AssetTypeExtinguisher = "extinguisher"
	AssetTypeEquipment    = "equipment"
)

// InspectionRecord is an append-only inspection event for one asset. Checklist
// fields left nil were not covered by the inspection.
type InspectionRecord struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	TenantID        string    `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	AssetType       string    `json:"asset_type" gorm:"size:20;not null;index:idx_inspection_asset" validate:"required,oneof=extinguisher equipment"`
	AssetID         string    `json:"asset_id" gorm:"type:uuid;not null;index:idx_inspection_asset" validate:"required"`
	InspectedAt     time.Time `json:"inspected_at" gorm:"not null" validate:"required"`
	ResponsibleName string    `json:"responsible_name" gorm:"not null" validate:"required,max=255"`
	SignageOK       *bool     `json:"signage_ok,omitempty"`
	AccessClear     *bool     `json:"access_clear,omitempty"`
	SealIntact      *bool     `json:"seal_intact,omitempty"`
	PressureOK      *bool     `json:"pressure_ok,omitempty"`
	Operational     *bool     `json:"operational,omitempty"`
	Notes           string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"`

	// Relationships
	Evidence []EvidenceFile `json:"evidence,omitempty" gorm:"foreignKey:InspectionID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for InspectionRecord
func (InspectionRecord) TableName() string {
	return "inspection_records"
}

func (r *InspectionRecord) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

// Result returns the checklist items observed by this inspection
func (r *InspectionRecord) Result() compliance.ChecklistResult {
	return compliance.ChecklistResult{
		SignageOK:   r.SignageOK,
		AccessClear: r.AccessClear,
		SealIntact:  r.SealIntact,
		PressureOK:  r.PressureOK,
		Operational: r.Operational,
	}
}

// EvidenceFile is metadata for a photo or document attached to an inspection.
// The content itself lives in external storage.
type EvidenceFile struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid"`
	TenantID     string    `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	InspectionID string    `json:"inspection_id" gorm:"type:uuid;not null;index"`
	FileName     string    `json:"file_name" gorm:"not null" validate:"required,max=255"`
	ContentType  string    `json:"content_type" gorm:"size:100"`
	SizeBytes    int64     `json:"size_bytes" validate:"gte=0"`
	StorageKey   string    `json:"storage_key" gorm:"not null" validate:"required"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the table name for EvidenceFile
func (EvidenceFile) TableName() string {
	return "evidence_files"
}

func (f *EvidenceFile) BeforeCreate(tx *gorm.DB) error {
	assignID(&f.ID)
	return nil
}
