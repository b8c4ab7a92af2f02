package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una venta. Once "voided" the state is terminal.
const (
	VentaCompleted   = "completed"
	VentaVoidPending = "void_pending"
	VentaVoided      = "voided"
)

// Métodos de pago. Webpay settles through the card terminal operator, so
// register reconciliation folds it into the card bucket.
const (
	PagoCash     = "cash"
	PagoCard     = "card"
	PagoWebpay   = "webpay"
	PagoTransfer = "transfer"
)

// Tipos de línea de venta.
const (
	ItemPlan     = "plan"
	ItemProducto = "product"
)

// Venta is one point-of-sale transaction. Line prices are resolved from the
// live catalog at creation and frozen: later catalog edits never alter a
// persisted sale. Total is always Σ(PrecioUnitario × Cantidad).
type Venta struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CajaID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	PerfilID   *uuid.UUID `gorm:"type:uuid;index"`
	VendedorID uuid.UUID  `gorm:"type:uuid;not null"`
	MetodoPago string     `gorm:"type:varchar(20);not null"`
	Estado     string     `gorm:"type:varchar(20);not null;default:'completed'"`
	Total      int64      `gorm:"not null"`

	// Boleta numbering: NumeroBoleta is the formatted "TI-YYYYMMDD-NNNN".
	// FechaBoleta (YYYYMMDD, Chile local time) + SecuenciaBoleta carry the
	// day-scoped uniqueness via a composite unique index.
	NumeroBoleta    string `gorm:"uniqueIndex;not null"`
	FechaBoleta     string `gorm:"type:varchar(8);not null;uniqueIndex:idx_boleta_dia"`
	SecuenciaBoleta int    `gorm:"not null;uniqueIndex:idx_boleta_dia"`

	// Renewal discount applied to the plan line, if any (audit trail)
	DescuentoID     *uuid.UUID       `gorm:"type:uuid"`
	DescuentoNombre *string
	DescuentoPct    *decimal.Decimal `gorm:"type:decimal(5,2)"`

	Observaciones *string
	CreatedAt     time.Time

	Items    []VentaItem `gorm:"foreignKey:VentaID"`
	Perfil   *Perfil     `gorm:"foreignKey:PerfilID"`
	Vendedor *Usuario    `gorm:"foreignKey:VendedorID"`
}

// TieneItemPlan reports whether the sale contains at least one plan line.
func (v *Venta) TieneItemPlan() bool {
	for _, item := range v.Items {
		if item.TipoItem == ItemPlan {
			return true
		}
	}
	return false
}

// VentaItem is one frozen line of a sale.
type VentaItem struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID uuid.UUID `gorm:"type:uuid;index;not null"`
	// TipoItem: "plan" | "product"
	TipoItem       string    `gorm:"type:varchar(10);not null"`
	ItemID         uuid.UUID `gorm:"type:uuid;not null"`
	Descripcion    string    `gorm:"not null"` // catalog name at time of sale
	Cantidad       int       `gorm:"not null"`
	PrecioUnitario int64     `gorm:"not null"`
	Subtotal       int64     `gorm:"not null"`
}

// TableName overrides GORM's default pluralization.
func (VentaItem) TableName() string { return "venta_items" }
