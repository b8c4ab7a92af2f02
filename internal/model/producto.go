package model

import (
	"time"

	"github.com/google/uuid"
)

// Producto is a counter product (bebidas, suplementos, accesorios).
// Precio is whole Chilean pesos — CLP has no fractional unit.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	Precio      int64 `gorm:"not null"`
	Activo      bool  `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
