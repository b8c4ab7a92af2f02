package model

import (
	"time"

	"github.com/google/uuid"
)

// Perfil is the member-facing profile attached to a Usuario with rol "socio".
// Objetivo/Nivel feed the routine generator; Email receives receipt copies.
type Perfil struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Email           *string
	Telefono        *string
	FechaNacimiento *time.Time `gorm:"type:date"`
	// Objetivo: "perdida_peso" | "hipertrofia" | "resistencia" | "salud_general"
	Objetivo string `gorm:"type:varchar(30);not null;default:'salud_general'"`
	// Nivel: "principiante" | "intermedio" | "avanzado"
	Nivel     string `gorm:"type:varchar(20);not null;default:'principiante'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}
