package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados de suscripción.
const (
	SuscripcionActive    = "active"
	SuscripcionExpired   = "expired"
	SuscripcionCancelled = "cancelled"
	SuscripcionPending   = "pending"
)

// Suscripcion is one membership period. A profile accumulates historical rows
// but holds at most one "active" subscription: renewals extend the active row
// instead of stacking new ones.
//
// VentaID points at the sale that created or last renewed the subscription,
// so an approved void can cancel exactly the subscription it paid for.
type Suscripcion struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PerfilID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	PlanID      uuid.UUID  `gorm:"type:uuid;not null"`
	VentaID     *uuid.UUID `gorm:"type:uuid;index"`
	Estado      string     `gorm:"type:varchar(20);not null;default:'active'"`
	FechaInicio time.Time  `gorm:"not null"`
	FechaFin    time.Time  `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Plan   *Plan   `gorm:"foreignKey:PlanID"`
	Perfil *Perfil `gorm:"foreignKey:PerfilID"`
}

// TableName overrides GORM's default pluralization.
func (Suscripcion) TableName() string { return "suscripciones" }
