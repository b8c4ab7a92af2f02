package handler

import (
	"net/http"

	"github.com/wipxap/TITANIUM-sub000/internal/dto"
	"github.com/wipxap/TITANIUM-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type AnulacionHandler struct {
	anulaciones service.AnulacionService
}

func NewAnulacionHandler(anulaciones service.AnulacionService) *AnulacionHandler {
	return &AnulacionHandler{anulaciones: anulaciones}
}

// Listar GET /admin/void-requests
func (h *AnulacionHandler) Listar(c *gin.Context) {
	var filter dto.AnulacionFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.anulaciones.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Aprobar POST /admin/void-requests/:id/approve
func (h *AnulacionHandler) Aprobar(c *gin.Context) {
	revisorID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.anulaciones.Aprobar(c.Request.Context(), id, revisorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Rechazar POST /admin/void-requests/:id/reject
func (h *AnulacionHandler) Rechazar(c *gin.Context) {
	revisorID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.anulaciones.Rechazar(c.Request.Context(), id, revisorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
