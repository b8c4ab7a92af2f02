package model

import (
	"time"

	"github.com/google/uuid"
)

// Caja represents one till session: opened with an initial cash float, closed
// with a declared count per payment method. At most one row may have
// ClosedAt = NULL at any time — enforced by a partial unique index (see
// infra.applySchemaPatches), not by read-then-write logic.
//
// Expected amounts and differences are frozen at close so that the audit view
// of a closed register never shifts if a sale is voided afterwards.
type Caja struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AbiertaPorID uuid.UUID `gorm:"type:uuid;not null"`
	MontoInicial int64     `gorm:"not null"`
	OpenedAt     time.Time
	ClosedAt     *time.Time `gorm:"index"`

	// Declared at close (nil while open)
	DeclaradoEfectivo      *int64
	DeclaradoTarjeta       *int64
	DeclaradoTransferencia *int64

	// Computed and frozen at close
	EsperadoEfectivo        *int64
	EsperadoTarjeta         *int64
	EsperadoTransferencia   *int64
	DiferenciaEfectivo      *int64
	DiferenciaTarjeta       *int64
	DiferenciaTransferencia *int64

	Observaciones *string

	AbiertaPor *Usuario `gorm:"foreignKey:AbiertaPorID"`
}

// TableName overrides GORM's default pluralization (cajas, not cajaes).
func (Caja) TableName() string { return "cajas" }

// Abierta reports whether the till session is still open.
func (c *Caja) Abierta() bool { return c.ClosedAt == nil }
