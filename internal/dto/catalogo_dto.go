package dto

import "github.com/shopspring/decimal"

// ─── Planes ──────────────────────────────────────────────────────────────────

type PlanRequest struct {
	Nombre       string  `json:"nombre"        validate:"required"`
	Descripcion  *string `json:"descripcion"`
	Precio       int64   `json:"precio"        validate:"required,gt=0"`
	DuracionDias int     `json:"duracion_dias" validate:"required,gt=0"`
	Activo       *bool   `json:"activo"`
}

type PlanResponse struct {
	ID           string  `json:"id"`
	Nombre       string  `json:"nombre"`
	Descripcion  *string `json:"descripcion"`
	Precio       int64   `json:"precio"`
	DuracionDias int     `json:"duracion_dias"`
	Activo       bool    `json:"activo"`
}

// ─── Productos ───────────────────────────────────────────────────────────────

type ProductoRequest struct {
	Nombre      string  `json:"nombre"      validate:"required"`
	Descripcion *string `json:"descripcion"`
	Precio      int64   `json:"precio"      validate:"required,gt=0"`
	Activo      *bool   `json:"activo"`
}

type ProductoResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Precio      int64   `json:"precio"`
	Activo      bool    `json:"activo"`
}

// ─── Maquinas ────────────────────────────────────────────────────────────────

type MaquinaRequest struct {
	Nombre        string  `json:"nombre"         validate:"required"`
	GrupoMuscular string  `json:"grupo_muscular" validate:"required"`
	Estado        string  `json:"estado"         validate:"omitempty,oneof=operativa mantenimiento baja"`
	Observaciones *string `json:"observaciones"`
}

type MaquinaResponse struct {
	ID            string  `json:"id"`
	Nombre        string  `json:"nombre"`
	GrupoMuscular string  `json:"grupo_muscular"`
	Estado        string  `json:"estado"`
	Observaciones *string `json:"observaciones"`
}

// ─── Descuentos de renovación ────────────────────────────────────────────────

type DescuentoRequest struct {
	Nombre     string          `json:"nombre"       validate:"required"`
	Porcentaje decimal.Decimal `json:"porcentaje"   validate:"required,gt=0,max=100"`
	Condicion  string          `json:"condicion"    validate:"required,oneof=expiring_soon expired"`
	DiasAntes  int             `json:"dias_antes"   validate:"min=0"`
	DiasDespues int            `json:"dias_despues" validate:"min=0"`
	Activo     *bool           `json:"activo"`
}

type DescuentoResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Porcentaje  decimal.Decimal `json:"porcentaje"`
	Condicion   string          `json:"condicion"`
	DiasAntes   int             `json:"dias_antes"`
	DiasDespues int             `json:"dias_despues"`
	Activo      bool            `json:"activo"`
}

// ─── Price screen ────────────────────────────────────────────────────────────

// PrecioItem is one row of the cached POS price list.
type PrecioItem struct {
	Type   string `json:"type"` // plan | product
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Precio int64  `json:"precio"`
}

type ListaPreciosResponse struct {
	Items []PrecioItem `json:"items"`
}
