package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RutinaPayload is sent to the AI text-generation sidecar. The sidecar owns
// prompt construction; this client only ships the member parameters.
type RutinaPayload struct {
	Objetivo   string `json:"objetivo"`
	Nivel      string `json:"nivel"`
	DiasSemana int    `json:"dias_semana"`
	Edad       *int   `json:"edad,omitempty"`
}

// RutinaResponse is returned by the sidecar.
type RutinaResponse struct {
	Texto  string `json:"texto"`
	Modelo string `json:"modelo"`
}

// RutinasClient is an HTTP client that delegates routine text generation to
// the AI sidecar. Failures here never reach the member: the service layer
// falls back to a deterministic template.
type RutinasClient struct {
	sidecarURL string
	httpClient *http.Client
}

func NewRutinasClient(sidecarURL string) *RutinasClient {
	return &RutinasClient{
		sidecarURL: sidecarURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// Generar sends a POST to the sidecar and returns the generated routine text.
func (c *RutinasClient) Generar(ctx context.Context, payload RutinaPayload) (*RutinaResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("rutinas: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sidecarURL+"/generar", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("rutinas: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rutinas: sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rutinas: sidecar returned %d", resp.StatusCode)
	}

	var result RutinaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("rutinas: decode response: %w", err)
	}
	return &result, nil
}
