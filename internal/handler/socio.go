package handler

import (
	"net/http"
	"strconv"

	"github.com/wipxap/TITANIUM-sub000/internal/dto"
	"github.com/wipxap/TITANIUM-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type SocioHandler struct {
	asistencias service.AsistenciaService
	rutinas     service.RutinaService
}

func NewSocioHandler(asistencias service.AsistenciaService, rutinas service.RutinaService) *SocioHandler {
	return &SocioHandler{asistencias: asistencias, rutinas: rutinas}
}

// CheckIn POST /member/check-in
func (h *SocioHandler) CheckIn(c *gin.Context) {
	usuarioID, ok := currentUserID(c)
	if !ok {
		return
	}
	resp, err := h.asistencias.CheckIn(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// MisAsistencias GET /member/check-ins
func (h *SocioHandler) MisAsistencias(c *gin.Context) {
	usuarioID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	resp, err := h.asistencias.MisAsistencias(c.Request.Context(), usuarioID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MiSuscripcion GET /member/subscription
func (h *SocioHandler) MiSuscripcion(c *gin.Context) {
	usuarioID, ok := currentUserID(c)
	if !ok {
		return
	}
	resp, err := h.asistencias.MiSuscripcion(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GenerarRutina POST /member/routine
func (h *SocioHandler) GenerarRutina(c *gin.Context) {
	usuarioID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.GenerarRutinaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.rutinas.Generar(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
