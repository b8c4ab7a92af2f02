package model

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a membership plan sold at reception. Precio is whole Chilean pesos.
type Plan struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"not null"`
	Descripcion  *string
	Precio       int64 `gorm:"not null"`
	DuracionDias int   `gorm:"not null"`
	Activo       bool  `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
