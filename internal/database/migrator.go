package database

import (
	"gorm.io/gorm"

	"github.com/andreprog02/saas-sst/internal/models"
)

// Migrator handles database migrations
type Migrator struct {
	db *Connection
}

// NewMigrator creates a new migrator instance
func NewMigrator(db *Connection) *Migrator {
	return &Migrator{db: db}
}

// Models lists every persisted model in dependency order
func Models() []interface{} {
	return []interface{}{
		&models.Tenant{},
		&models.RegulatoryNorm{},
		&models.Department{},
		&models.Employee{},
		&models.DisciplinaryCategory{},
		&models.DisciplinaryRecord{},
		&models.Location{},
		&models.PPEType{},
		&models.PPEItem{},
		&models.PPEDelivery{},
		&models.Extinguisher{},
		&models.SafetyEquipment{},
		&models.InspectionRecord{},
		&models.EvidenceFile{},
		&models.Vaccination{},
		&models.TrainingCertificate{},
		&models.Absence{},
	}
}

// Up creates or updates every table
func (m *Migrator) Up() error {
	return m.db.AutoMigrate(Models()...)
}

// Down drops every table, dependents first
func (m *Migrator) Down() error {
	if err := m.db.Migrator().DropTable("department_norms"); err != nil {
		return err
	}
	all := Models()
	for i := len(all) - 1; i >= 0; i-- {
		if err := m.db.Migrator().DropTable(all[i]); err != nil {
			return err
		}
	}
	return nil
}

// TableStatus reports whether the table of one model exists
type TableStatus struct {
	Table  string
	Exists bool
}

// Status lists the migration state of every table
func (m *Migrator) Status() ([]TableStatus, error) {
	var out []TableStatus
	for _, model := range Models() {
		stmt := &gorm.Statement{DB: m.db.DB}
		if err := stmt.Parse(model); err != nil {
			return nil, err
		}
		out = append(out, TableStatus{
			Table:  stmt.Schema.Table,
			Exists: m.db.Migrator().HasTable(model),
		})
	}
	return out, nil
}
