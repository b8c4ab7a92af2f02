package handler

import (
	"net/http"

	"github.com/wipxap/TITANIUM-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type PreciosHandler struct {
	catalogo   service.CatalogoService
	descuentos service.DescuentoService
}

func NewPreciosHandler(catalogo service.CatalogoService, descuentos service.DescuentoService) *PreciosHandler {
	return &PreciosHandler{catalogo: catalogo, descuentos: descuentos}
}

// Lista GET /prices — public price board, redis-cached.
func (h *PreciosHandler) Lista(c *gin.Context) {
	resp, err := h.catalogo.ListaPrecios(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescuentoRenovacion GET /reception/profiles/:id/renewal-discount — preview
// of the discount the sale processor would apply right now. Read-only.
func (h *PreciosHandler) DescuentoRenovacion(c *gin.Context) {
	perfilID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.descuentos.Resolver(c.Request.Context(), perfilID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
