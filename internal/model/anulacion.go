package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados de una solicitud de anulación.
const (
	AnulacionPending  = "pending"
	AnulacionApproved = "approved"
	AnulacionRejected = "rejected"
)

// MotivoMinLen is the minimum length of the free-text void reason.
const MotivoMinLen = 10

// SolicitudAnulacion is a staff-initiated, admin-reviewed request to void a
// completed sale. The sale row is never deleted — only status-flagged — so the
// original revenue record survives as an audit trail.
type SolicitudAnulacion struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID `gorm:"type:uuid;index;not null"`
	SolicitadaPorID uuid.UUID `gorm:"type:uuid;not null"`
	Motivo         string    `gorm:"not null"`
	Estado         string    `gorm:"type:varchar(20);not null;default:'pending'"`
	RevisadaPorID  *uuid.UUID `gorm:"type:uuid"`
	RevisadaAt     *time.Time
	CreatedAt      time.Time

	Venta         *Venta   `gorm:"foreignKey:VentaID"`
	SolicitadaPor *Usuario `gorm:"foreignKey:SolicitadaPorID"`
	RevisadaPor   *Usuario `gorm:"foreignKey:RevisadaPorID"`
}

// TableName overrides GORM's default pluralization.
func (SolicitudAnulacion) TableName() string { return "solicitudes_anulacion" }
