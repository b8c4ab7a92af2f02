package dto

// ─── Check-in ────────────────────────────────────────────────────────────────

type CheckInResponse struct {
	ID             string `json:"id"`
	CheckedInAt    string `json:"checkedInAt"`
	SubscriptionID string `json:"subscriptionId"`
	EndDate        string `json:"endDate"`
}

// AsistenciaItem is one row of the member's check-in history.
type AsistenciaItem struct {
	ID          string `json:"id"`
	CheckedInAt string `json:"checkedInAt"`
}

// ─── Rutinas ─────────────────────────────────────────────────────────────────

type GenerarRutinaRequest struct {
	DiasSemana int `json:"dias_semana" validate:"required,min=1,max=7"`
}

// RutinaGeneradaResponse — Source is "ai" when the sidecar answered, or
// "template" when the deterministic fallback produced the routine.
type RutinaGeneradaResponse struct {
	Texto  string `json:"texto"`
	Source string `json:"source"`
}
