package handler

import (
	"net/http"

	"github.com/wipxap/TITANIUM-sub000/internal/dto"
	"github.com/wipxap/TITANIUM-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogoHandler struct {
	catalogo   service.CatalogoService
	descuentos service.DescuentoService
}

func NewCatalogoHandler(catalogo service.CatalogoService, descuentos service.DescuentoService) *CatalogoHandler {
	return &CatalogoHandler{catalogo: catalogo, descuentos: descuentos}
}

// ─── Planes ──────────────────────────────────────────────────────────────────

func (h *CatalogoHandler) CrearPlan(c *gin.Context) {
	var req dto.PlanRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.catalogo.CrearPlan(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarPlanes(c *gin.Context) {
	resp, err := h.catalogo.ListarPlanes(c.Request.Context(), c.Query("all") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ActualizarPlan(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.PlanRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.catalogo.ActualizarPlan(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) DesactivarPlan(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogo.DesactivarPlan(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ─── Productos ───────────────────────────────────────────────────────────────

func (h *CatalogoHandler) CrearProducto(c *gin.Context) {
	var req dto.ProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.catalogo.CrearProducto(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarProductos(c *gin.Context) {
	resp, err := h.catalogo.ListarProductos(c.Request.Context(), c.Query("all") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ActualizarProducto(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.catalogo.ActualizarProducto(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) DesactivarProducto(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogo.DesactivarProducto(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ─── Maquinas ────────────────────────────────────────────────────────────────

func (h *CatalogoHandler) CrearMaquina(c *gin.Context) {
	var req dto.MaquinaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.catalogo.CrearMaquina(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarMaquinas(c *gin.Context) {
	resp, err := h.catalogo.ListarMaquinas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ActualizarMaquina(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.MaquinaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.catalogo.ActualizarMaquina(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ─── Descuentos de renovación ────────────────────────────────────────────────

func (h *CatalogoHandler) CrearDescuento(c *gin.Context) {
	var req dto.DescuentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.descuentos.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarDescuentos(c *gin.Context) {
	resp, err := h.descuentos.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ActualizarDescuento(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.DescuentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.descuentos.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
