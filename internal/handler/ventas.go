package handler

import (
	"net/http"

	"github.com/wipxap/TITANIUM-sub000/internal/dto"
	"github.com/wipxap/TITANIUM-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type VentaHandler struct {
	ventas      service.VentaService
	anulaciones service.AnulacionService
}

func NewVentaHandler(ventas service.VentaService, anulaciones service.AnulacionService) *VentaHandler {
	return &VentaHandler{ventas: ventas, anulaciones: anulaciones}
}

// Crear POST /reception/sales
func (h *VentaHandler) Crear(c *gin.Context) {
	vendedorID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CrearVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ventas.Crear(c.Request.Context(), vendedorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener GET /reception/sales/:id
func (h *VentaHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.ventas.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial GET /reception/sales/history
func (h *VentaHandler) Historial(c *gin.Context) {
	var filter dto.HistorialVentasFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.ventas.Historial(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Boleta GET /reception/sales/:id/receipt — streams the PDF receipt.
func (h *VentaHandler) Boleta(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	path, err := h.ventas.BoletaPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}

// SolicitarAnulacion POST /reception/sales/:id/void-request
func (h *VentaHandler) SolicitarAnulacion(c *gin.Context) {
	solicitanteID, ok := currentUserID(c)
	if !ok {
		return
	}
	ventaID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.SolicitarAnulacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.anulaciones.Solicitar(c.Request.Context(), ventaID, solicitanteID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
