package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Condiciones de descuento de renovación.
const (
	DescuentoPorVencer = "expiring_soon"
	DescuentoVencida   = "expired"
)

// DescuentoRenovacion is an admin-configured renewal discount rule, read-only
// at transaction time.
//
//	expiring_soon: applies when 0 < days-until-expiry ≤ DiasAntes
//	expired:       applies when the subscription expired ≤ DiasDespues days ago
type DescuentoRenovacion struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre     string          `gorm:"not null"`
	Porcentaje decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Condicion  string          `gorm:"type:varchar(20);not null"`
	// DiasAntes applies to expiring_soon rules, DiasDespues to expired rules;
	// the irrelevant one stays zero.
	DiasAntes   int  `gorm:"not null;default:0"`
	DiasDespues int  `gorm:"not null;default:0"`
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default pluralization.
func (DescuentoRenovacion) TableName() string { return "descuentos_renovacion" }
