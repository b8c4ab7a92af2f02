package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SolicitarAnulacionRequest struct {
	Reason string `json:"reason" validate:"required,min=10"`
}

// AnulacionFilter is bound from the query string of GET /admin/void-requests.
type AnulacionFilter struct {
	Status string `form:"status" validate:"omitempty,oneof=pending approved rejected all"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SolicitudAnulacionResponse struct {
	ID          string  `json:"id"`
	SaleID      string  `json:"saleId"`
	RequestedBy string  `json:"requestedBy"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	ReviewedBy  *string `json:"reviewedBy,omitempty"`
	ReviewedAt  *string `json:"reviewedAt,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	// SaleStatus reflects the sale after the action (void_pending / voided / completed)
	SaleStatus string `json:"saleStatus"`
}

type SolicitudAnulacionListResponse struct {
	Data  []SolicitudAnulacionResponse `json:"data"`
	Total int64                        `json:"total"`
	Page  int                          `json:"page"`
	Limit int                          `json:"limit"`
}
