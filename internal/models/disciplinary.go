package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/andreprog02/saas-sst/internal/compliance"
)

// DisciplinaryCategory groups disciplinary incidents of the same nature
type DisciplinaryCategory struct {
	ID        string         `json:"id" gorm:"primaryKey;type:uuid"`
	TenantID  string         `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	Name      string         `json:"name" gorm:"size:100;not null" validate:"required,min=1,max=100"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for DisciplinaryCategory
func (DisciplinaryCategory) TableName() string {
	return "disciplinary_categories"
}

func (c *DisciplinaryCategory) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}

// DisciplinaryRecord is one incident. IsRepeat is derived when the record is
// created and never recomputed.
type DisciplinaryRecord struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid"`
	TenantID     string    `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	EmployeeID   string    `json:"employee_id" gorm:"type:uuid;not null;index:idx_disciplinary_employee_category" validate:"required"`
	CategoryID   string    `json:"category_id" gorm:"type:uuid;not null;index:idx_disciplinary_employee_category" validate:"required"`
	IncidentDate time.Time `json:"incident_date" gorm:"type:date;not null" validate:"required"`
	Description  string    `json:"description" gorm:"type:text"`
	IsRepeat     bool      `json:"is_repeat" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Employee *Employee             `json:"employee,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	Category *DisciplinaryCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for DisciplinaryRecord
func (DisciplinaryRecord) TableName() string {
	return "disciplinary_records"
}

func (r *DisciplinaryRecord) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

// Incident returns the recidivism key of the record
func (r *DisciplinaryRecord) Incident() compliance.Incident {
	return compliance.Incident{EmployeeID: r.EmployeeID, CategoryID: r.CategoryID, Date: r.IncidentDate}
}

// Entry returns the record as a dashboard entry; relationships must be preloaded
// for category and department names.
func (r *DisciplinaryRecord) Entry() compliance.DisciplinaryEntry {
	e := compliance.DisciplinaryEntry{Incident: r.Incident(), IsRepeat: r.IsRepeat}
	if r.Category != nil {
		e.Category = r.Category.Name
	}
	if r.Employee != nil {
		e.Department = r.Employee.DepartmentName()
	}
	return e
}
