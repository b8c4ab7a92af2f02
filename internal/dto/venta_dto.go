package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	Type     string `json:"type"     validate:"required,oneof=plan product"`
	ID       string `json:"id"       validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// CrearVentaRequest is the body of POST /reception/sales. UserID optionally
// links the sale to a member (required for the subscription side effect).
// Unit prices are NEVER client-supplied — they are resolved from the live
// catalog server-side.
type CrearVentaRequest struct {
	UserID        *string            `json:"userId"        validate:"omitempty,uuid"`
	Items         []ItemVentaRequest `json:"items"         validate:"required,min=1,dive"`
	PaymentMethod string             `json:"paymentMethod" validate:"required,oneof=cash card webpay transfer"`
	Notes         *string            `json:"notes"`
}

// HistorialVentasFilter is bound from the query string of
// GET /reception/sales/history.
type HistorialVentasFilter struct {
	Status        string `form:"status"        validate:"omitempty,oneof=completed void_pending voided all"`
	PaymentMethod string `form:"paymentMethod" validate:"omitempty,oneof=cash card webpay transfer"`
	Fecha         string `form:"date"` // YYYY-MM-DD; empty = today
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=50" validate:"min=1,max=200"`

	// FechaBoleta (YYYYMMDD) is derived from Fecha by the service so history
	// is cut on the same Chile-local day as receipt numbering, not on the DB
	// server's calendar.
	FechaBoleta string `form:"-"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaItemResponse struct {
	Type        string `json:"type"`
	ItemID      string `json:"itemId"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	Subtotal    int64  `json:"subtotal"`
}

// DescuentoAplicadoResponse reports the renewal discount the processor
// applied (or the resolver would apply). Zero-valued when none applies.
type DescuentoAplicadoResponse struct {
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountName    *string         `json:"discountName"`
	DiscountID      *string         `json:"discountId"`
}

// SuscripcionResponse describes the subscription created or renewed by a
// plan sale, and is also the body of GET /member/subscription.
type SuscripcionResponse struct {
	ID        string `json:"id"`
	PlanID    string `json:"planId"`
	PlanName  string `json:"planName"`
	Status    string `json:"status"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Renewed   bool   `json:"renewed"`
}

type VentaResponse struct {
	ID            string                     `json:"id"`
	ReceiptNumber string                     `json:"receiptNumber"`
	Status        string                     `json:"status"`
	PaymentMethod string                     `json:"paymentMethod"`
	Total         int64                      `json:"total"`
	Items         []VentaItemResponse        `json:"items"`
	UserID        *string                    `json:"userId,omitempty"`
	Discount      *DescuentoAplicadoResponse `json:"discount,omitempty"`
	Subscription  *SuscripcionResponse       `json:"subscription,omitempty"`
	Notes         *string                    `json:"notes,omitempty"`
	CreatedAt     string                     `json:"createdAt"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
