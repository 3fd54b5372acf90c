package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/andreprog02/saas-sst/internal/compliance"
)

// Employee is a worker of a tenant
type Employee struct {
	ID           string                    `json:"id" gorm:"primaryKey;type:uuid"`
	TenantID     string                    `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	DepartmentID *string                   `json:"department_id,omitempty" gorm:"type:uuid;index"`
	Name         string                    `json:"name" gorm:"not null" validate:"required,min=1,max=255"`
	TaxID        string                    `json:"tax_id" gorm:"size:14" validate:"omitempty,max=14"`
	JobTitle     string                    `json:"job_title" gorm:"size:100" validate:"max=100"`
	HiredOn      time.Time                 `json:"hired_on" gorm:"type:date" validate:"required"`
	Status       compliance.EmployeeStatus `json:"status" gorm:"size:20;not null;default:active;index" validate:"required,oneof=active on_leave medical_leave parental_leave suspended terminated"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
	DeletedAt    gorm.DeletedAt            `json:"-" gorm:"index"`

	// Relationships
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Employee
func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	assignID(&e.ID)
	if e.Status == "" {
		e.Status = compliance.EmployeeActive
	}
	return nil
}

// Subject returns the employee as a compliance subject grouped by department
func (e *Employee) Subject() compliance.Subject {
	s := compliance.Subject{ID: e.ID, Label: e.Name}
	if e.Department != nil {
		s.Group = e.Department.Name
	}
	return s
}

// DepartmentName returns the department name or an empty string
func (e *Employee) DepartmentName() string {
	if e.Department == nil {
		return ""
	}
	return e.Department.Name
}
