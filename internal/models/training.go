package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/andreprog02/saas-sst/internal/compliance"
)

// TrainingCertificate records a completed training. A nil ValidUntil never expires.
type TrainingCertificate struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	TenantID    string     `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	EmployeeID  string     `json:"employee_id" gorm:"type:uuid;not null;index" validate:"required"`
	NormID      *string    `json:"norm_id,omitempty" gorm:"type:uuid;index"`
	Title       string     `json:"title" gorm:"not null" validate:"required,max=255"`
	CompletedOn time.Time  `json:"completed_on" gorm:"type:date;not null" validate:"required"`
	ValidUntil  *time.Time `json:"valid_until,omitempty" gorm:"type:date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	Employee *Employee       `json:"employee,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	Norm     *RegulatoryNorm `json:"norm,omitempty" gorm:"foreignKey:NormID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for TrainingCertificate
func (TrainingCertificate) TableName() string {
	return "training_certificates"
}

func (c *TrainingCertificate) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}

// Obligations returns the certificate validity obligation
func (c *TrainingCertificate) Obligations() []compliance.Instance {
	title := c.Title
	if c.Norm != nil {
		title = c.Norm.Code + " " + title
	}
	subject := compliance.Subject{ID: c.ID, Label: title}
	if c.Employee != nil {
		subject.Label = c.Employee.Name + " - " + title
		subject.Group = c.Employee.DepartmentName()
	}
	return []compliance.Instance{{
		Kind:   compliance.KindTrainingCertificate,
		Of:     subject,
		Base:   c.CompletedOn,
		Target: c.ValidUntil,
	}}
}
