package models

import "gorm.io/gorm"

// RegulatoryNorm is an entry of the shared regulatory norm catalog (NR-01, NR-35, ...)
type RegulatoryNorm struct {
	ID          string `json:"id" gorm:"primaryKey;type:uuid"`
	Code        string `json:"code" gorm:"size:10;not null;uniqueIndex" validate:"required,max=10"`
	Title       string `json:"title" gorm:"not null" validate:"required,max=255"`
	Description string `json:"description,omitempty" gorm:"type:text"`
}

// TableName returns the table name for RegulatoryNorm
func (RegulatoryNorm) TableName() string {
	return "regulatory_norms"
}

func (n *RegulatoryNorm) BeforeCreate(tx *gorm.DB) error {
	assignID(&n.ID)
	return nil
}

// DefaultNorms is the catalog seeded on a fresh database
var DefaultNorms = []RegulatoryNorm{
	{Code: "NR-01", Title: "Disposições Gerais e Gerenciamento de Riscos Ocupacionais"},
	{Code: "NR-03", Title: "Embargo ou Interdição"},
	{Code: "NR-04", Title: "SESMT"},
	{Code: "NR-05", Title: "CIPA"},
	{Code: "NR-06", Title: "Equipamento de Proteção Individual - EPI"},
	{Code: "NR-07", Title: "PCMSO"},
	{Code: "NR-09", Title: "Avaliação e Controle de Exposições Ocupacionais"},
	{Code: "NR-10", Title: "Segurança em Instalações e Serviços em Eletricidade"},
	{Code: "NR-12", Title: "Segurança em Máquinas e Equipamentos"},
	{Code: "NR-18", Title: "Indústria da Construção"},
	{Code: "NR-20", Title: "Inflamáveis e Combustíveis"},
	{Code: "NR-23", Title: "Proteção Contra Incêndios"},
	{Code: "NR-33", Title: "Espaços Confinados"},
	{Code: "NR-35", Title: "Trabalho em Altura"},
}
