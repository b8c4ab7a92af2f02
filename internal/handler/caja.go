package handler

import (
	"net/http"

	"github.com/wipxap/TITANIUM-sub000/internal/apierror"
	"github.com/wipxap/TITANIUM-sub000/internal/dto"
	"github.com/wipxap/TITANIUM-sub000/internal/middleware"
	"github.com/wipxap/TITANIUM-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct {
	cajas service.CajaService
}

func NewCajaHandler(cajas service.CajaService) *CajaHandler {
	return &CajaHandler{cajas: cajas}
}

// currentUserID extracts the authenticated user's UUID from the JWT claims.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return uuid.Nil, false
	}
	return id, true
}

// Estado GET /reception/cash-register
func (h *CajaHandler) Estado(c *gin.Context) {
	resp, err := h.cajas.Estado(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Abrir POST /reception/cash-register/open
func (h *CajaHandler) Abrir(c *gin.Context) {
	usuarioID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.cajas.Abrir(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cerrar POST /reception/cash-register/close
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.cajas.Cerrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Detalle GET /admin/cash-registers/:id
func (h *CajaHandler) Detalle(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.cajas.Detalle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial GET /admin/cash-registers
func (h *CajaHandler) Historial(c *gin.Context) {
	var filter struct {
		Page  int `form:"page,default=1"   validate:"min=1"`
		Limit int `form:"limit,default=20" validate:"min=1,max=100"`
	}
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	cajas, total, err := h.cajas.Historial(c.Request.Context(), filter.Page, filter.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  cajas,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}
