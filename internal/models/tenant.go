package models

import (
	"time"

	"gorm.io/gorm"
)

// Tenant is a company; every other record belongs to exactly one tenant
type Tenant struct {
	ID           string         `json:"id" gorm:"primaryKey;type:uuid"`
	TradeName    string         `json:"trade_name" gorm:"not null" validate:"required,min=1,max=255"`
	LegalName    string         `json:"legal_name" gorm:"not null" validate:"required,min=1,max=255"`
	TaxID        string         `json:"tax_id" gorm:"size:18;not null;uniqueIndex" validate:"required,min=14,max=18"`
	Phone        string         `json:"phone" gorm:"size:20" validate:"max=20"`
	ContactEmail string         `json:"contact_email" validate:"omitempty,email"`
	Address      string         `json:"address" gorm:"type:text"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Departments []Department `json:"departments,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	Employees   []Employee   `json:"employees,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	Locations   []Location   `json:"locations,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Tenant
func (Tenant) TableName() string {
	return "tenants"
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}
