package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/andreprog02/saas-sst/internal/compliance"
)

// Vaccination is a dose applied to an employee. BoosterDue is derived from
// AppliedOn and MonthsToBooster when not given explicitly.
type Vaccination struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid"`
	TenantID        string     `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	EmployeeID      string     `json:"employee_id" gorm:"type:uuid;not null;index" validate:"required"`
	VaccineName     string     `json:"vaccine_name" gorm:"size:100;not null" validate:"required,max=100"`
	Dose            string     `json:"dose,omitempty" gorm:"size:20" validate:"max=20"`
	AppliedOn       time.Time  `json:"applied_on" gorm:"type:date;not null" validate:"required"`
	MonthsToBooster int        `json:"months_to_booster" gorm:"not null;default:0" validate:"min=0"`
	BoosterDue      *time.Time `json:"booster_due,omitempty" gorm:"type:date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relationships
	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Vaccination
func (Vaccination) TableName() string {
	return "vaccinations"
}

func (v *Vaccination) BeforeCreate(tx *gorm.DB) error {
	assignID(&v.ID)
	return nil
}

// DeriveBoosterDue fills BoosterDue if it is unset. An explicit date is kept.
func (v *Vaccination) DeriveBoosterDue() {
	v.BoosterDue = compliance.FillTarget(v.BoosterDue, compliance.DeriveBoosterDue(v.AppliedOn, v.MonthsToBooster))
}

// RecordBooster re-bases the vaccination on a newly applied dose and
// recomputes the next booster date.
func (v *Vaccination) RecordBooster(appliedOn time.Time, dose string) {
	v.AppliedOn = appliedOn
	if dose != "" {
		v.Dose = dose
	}
	v.BoosterDue = compliance.DeriveBoosterDue(appliedOn, v.MonthsToBooster)
}

// Obligations returns the booster obligation
func (v *Vaccination) Obligations() []compliance.Instance {
	subject := compliance.Subject{ID: v.ID, Label: v.VaccineName}
	if v.Employee != nil {
		subject.Label = v.Employee.Name + " - " + v.VaccineName
		subject.Group = v.Employee.DepartmentName()
	}
	return []compliance.Instance{{
		Kind:   compliance.KindVaccineBooster,
		Of:     subject,
		Base:   v.AppliedOn,
		Target: v.BoosterDue,
	}}
}
