package model

import (
	"time"

	"github.com/google/uuid"
)

// Asistencia records one member check-in at the entrance. Rows are immutable.
type Asistencia struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PerfilID      uuid.UUID `gorm:"type:uuid;index;not null"`
	SuscripcionID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time

	Perfil *Perfil `gorm:"foreignKey:PerfilID"`
}
