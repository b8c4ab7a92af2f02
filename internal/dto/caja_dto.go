package dto

// JSON field names on the cash-register endpoints follow the frontend
// contract (camelCase, English) — they are consumed verbatim by the
// reception UI.

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	InitialAmount int64 `json:"initialAmount" validate:"min=0"`
}

type CerrarCajaRequest struct {
	DeclaredCash     int64   `json:"declaredCash"     validate:"min=0"`
	DeclaredCard     int64   `json:"declaredCard"     validate:"min=0"`
	DeclaredTransfer int64   `json:"declaredTransfer" validate:"min=0"`
	Notes            *string `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// TotalesPorMetodo carries amounts per payment method. Webpay is folded into
// the card bucket before these are built.
type TotalesPorMetodo struct {
	Cash     int64 `json:"cash"`
	Card     int64 `json:"card"`
	Transfer int64 `json:"transfer"`
	Total    int64 `json:"total"`
}

type CajaResponse struct {
	ID            string            `json:"id"`
	OpenedBy      string            `json:"openedBy"`
	OpenedAt      string            `json:"openedAt"`
	InitialAmount int64             `json:"initialAmount"`
	CurrentTotals TotalesPorMetodo  `json:"currentTotals"`
	Declared      *TotalesPorMetodo `json:"declared,omitempty"`
	Expected      *TotalesPorMetodo `json:"expected,omitempty"`
	Differences   *DiferenciasCaja  `json:"differences,omitempty"`
	Notes         *string           `json:"notes,omitempty"`
	ClosedAt      *string           `json:"closedAt,omitempty"`
}

type DiferenciasCaja struct {
	CashDiff     int64 `json:"cashDiff"`
	CardDiff     int64 `json:"cardDiff"`
	TransferDiff int64 `json:"transferDiff"`
	TotalDiff    int64 `json:"totalDiff"`
}

// EstadoCajaResponse is the envelope of GET /reception/cash-register.
type EstadoCajaResponse struct {
	IsOpen       bool          `json:"isOpen"`
	CashRegister *CajaResponse `json:"cashRegister"`
}
