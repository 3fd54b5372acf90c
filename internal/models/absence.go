package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/andreprog02/saas-sst/internal/compliance"
)

// Absence is a leave or work-accident absence of an employee
type Absence struct {
	ID         string     `json:"id" gorm:"primaryKey;type:uuid"`
	TenantID   string     `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	EmployeeID string     `json:"employee_id" gorm:"type:uuid;not null;index" validate:"required"`
	Kind       string     `json:"kind" gorm:"size:20;not null" validate:"required,oneof=leave medical_leave parental_leave work_accident"`
	StartDate  time.Time  `json:"start_date" gorm:"type:date;not null" validate:"required"`
	EndDate    *time.Time `json:"end_date,omitempty" gorm:"type:date"`
	Notes      string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relationships
	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Absence
func (Absence) TableName() string {
	return "absences"
}

func (a *Absence) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

// Days returns the absence duration as of today
func (a *Absence) Days(today time.Time) int {
	return compliance.AbsenceDays(a.StartDate, a.EndDate, today)
}

// Period returns the absence as a dashboard period
func (a *Absence) Period() compliance.AbsencePeriod {
	p := compliance.AbsencePeriod{
		Employee: compliance.Subject{ID: a.EmployeeID},
		Kind:     a.Kind,
		Start:    a.StartDate,
		End:      a.EndDate,
	}
	if a.Employee != nil {
		p.Employee = a.Employee.Subject()
	}
	return p
}
