package models

import (
	"time"

	"gorm.io/gorm"
)

// Location is a place where assets and PPE stock are kept
type Location struct {
	ID          string         `json:"id" gorm:"primaryKey;type:uuid"`
	TenantID    string         `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	Name        string         `json:"name" gorm:"size:100;not null" validate:"required,min=1,max=100"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for Location
func (Location) TableName() string {
	return "locations"
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	assignID(&l.ID)
	return nil
}

func locationName(l *Location) string {
	if l == nil {
		return ""
	}
	return l.Name
}
