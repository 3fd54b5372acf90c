package models

import (
	"time"

	"gorm.io/gorm"
)

// Department is a work sector of a tenant together with the safety
// requirements that apply to people working in it
type Department struct {
	ID                string         `json:"id" gorm:"primaryKey;type:uuid"`
	TenantID          string         `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	Name              string         `json:"name" gorm:"size:100;not null" validate:"required,min=1,max=100"`
	RequiredPPE       string         `json:"required_ppe,omitempty" gorm:"type:text"`
	RequiredVaccines  string         `json:"required_vaccines,omitempty" gorm:"type:text"`
	RequiredTrainings string         `json:"required_trainings,omitempty" gorm:"type:text"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	RequiredNorms []RegulatoryNorm `json:"required_norms,omitempty" gorm:"many2many:department_norms"`
}

// TableName returns the table name for Department
func (Department) TableName() string {
	return "departments"
}

func (d *Department) BeforeCreate(tx *gorm.DB) error {
	assignID(&d.ID)
	return nil
}
