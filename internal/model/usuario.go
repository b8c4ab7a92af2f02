package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles del sistema.
const (
	RolSocio         = "socio"
	RolRecepcionista = "recepcionista"
	RolAdministrador = "administrador"
)

// Usuario stores system users with role-based access.
// The RUT (Chilean national ID) doubles as the login credential.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RUT          string    `gorm:"uniqueIndex;not null;column:rut"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
