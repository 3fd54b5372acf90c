package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/andreprog02/saas-sst/internal/compliance"
)

// PPEType is a kind of personal protective equipment (helmet, boots, gloves)
type PPEType struct {
	ID        string         `json:"id" gorm:"primaryKey;type:uuid"`
	TenantID  string         `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	Name      string         `json:"name" gorm:"size:100;not null" validate:"required,min=1,max=100"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for PPEType
func (PPEType) TableName() string {
	return "ppe_types"
}

func (p *PPEType) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// PPEItem is a stock line of protective equipment
type PPEItem struct {
	ID                  string         `json:"id" gorm:"primaryKey;type:uuid"`
	TenantID            string         `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	TypeID              string         `json:"type_id" gorm:"type:uuid;not null;index" validate:"required"`
	LocationID          *string        `json:"location_id,omitempty" gorm:"type:uuid;index"`
	Name                string         `json:"name" gorm:"not null" validate:"required,min=1,max=255"`
	ApprovalCertificate string         `json:"approval_certificate,omitempty" gorm:"size:20" validate:"max=20"`
	Quantity            int            `json:"quantity" gorm:"not null;default:0" validate:"min=0"`
	MinimumQuantity     int            `json:"minimum_quantity" gorm:"not null;default:0" validate:"min=0"`
	ValidUntil          *time.Time     `json:"valid_until,omitempty" gorm:"type:date"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Type     *PPEType  `json:"type,omitempty" gorm:"foreignKey:TypeID;constraint:OnDelete:CASCADE"`
	Location *Location `json:"location,omitempty" gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for PPEItem
func (PPEItem) TableName() string {
	return "ppe_items"
}

func (p *PPEItem) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

func (p *PPEItem) subject() compliance.Subject {
	return compliance.Subject{ID: p.ID, Label: p.Name, Group: locationName(p.Location)}
}

// Obligations returns the validity obligation of the stock line
func (p *PPEItem) Obligations() []compliance.Instance {
	return []compliance.Instance{{
		Kind:   compliance.KindPPEValidity,
		Of:     p.subject(),
		Base:   p.CreatedAt,
		Target: p.ValidUntil,
	}}
}

// StockLevel returns the on-hand quantity view of the item
func (p *PPEItem) StockLevel() compliance.StockLevel {
	return compliance.StockLevel{Subject: p.subject(), Quantity: p.Quantity, Minimum: p.MinimumQuantity}
}

// PPEDelivery records protective equipment handed to an employee from stock
type PPEDelivery struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	TenantID    string    `json:"tenant_id" gorm:"type:uuid;not null;index" validate:"required"`
	EmployeeID  string    `json:"employee_id" gorm:"type:uuid;not null;index" validate:"required"`
	ItemID      string    `json:"item_id" gorm:"type:uuid;not null;index" validate:"required"`
	Quantity    int       `json:"quantity" gorm:"not null" validate:"min=1"`
	DeliveredOn time.Time `json:"delivered_on" gorm:"type:date;not null" validate:"required"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	Item     *PPEItem  `json:"item,omitempty" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for PPEDelivery
func (PPEDelivery) TableName() string {
	return "ppe_deliveries"
}

func (d *PPEDelivery) BeforeCreate(tx *gorm.DB) error {
	assignID(&d.ID)
	return nil
}
