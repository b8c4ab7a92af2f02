package model

import (
	"time"

	"github.com/google/uuid"
)

// Maquina is a gym machine tracked by administration.
// Estado: "operativa" | "mantenimiento" | "baja"
type Maquina struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string    `gorm:"not null"`
	GrupoMuscular string    `gorm:"not null"`
	Estado        string    `gorm:"type:varchar(20);not null;default:'operativa'"`
	Observaciones *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
