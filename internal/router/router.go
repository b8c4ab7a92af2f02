package router

import (
	"time"

	"github.com/wipxap/TITANIUM-sub000/internal/config"
	"github.com/wipxap/TITANIUM-sub000/internal/handler"
	"github.com/wipxap/TITANIUM-sub000/internal/middleware"
	"github.com/wipxap/TITANIUM-sub000/internal/model"

	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router needs wired in.
type Handlers struct {
	Auth      *handler.AuthHandler
	Caja      *handler.CajaHandler
	Ventas    *handler.VentaHandler
	Anulacion *handler.AnulacionHandler
	Catalogo  *handler.CatalogoHandler
	Precios   *handler.PreciosHandler
	Socio     *handler.SocioHandler
	Health    *handler.HealthHandler
}

// New assembles the Gin engine with the full middleware chain and route tree.
func New(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.CORS(),
	)

	r.GET("/health", h.Health.Check)

	v1 := r.Group("/v1", middleware.RateLimiter(300, time.Minute))

	// Public
	auth := v1.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
	v1.GET("/prices", h.Precios.Lista)

	// Staff: receptionists and administrators
	recepcion := v1.Group("/reception",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(model.RolRecepcionista, model.RolAdministrador),
	)
	{
		recepcion.GET("/cash-register", h.Caja.Estado)
		recepcion.POST("/cash-register/open", h.Caja.Abrir)
		recepcion.POST("/cash-register/close", h.Caja.Cerrar)

		recepcion.POST("/sales", h.Ventas.Crear)
		recepcion.GET("/sales/history", h.Ventas.Historial)
		recepcion.GET("/sales/:id", h.Ventas.Obtener)
		recepcion.GET("/sales/:id/receipt", h.Ventas.Boleta)
		recepcion.POST("/sales/:id/void-request", h.Ventas.SolicitarAnulacion)

		recepcion.GET("/profiles/:id/renewal-discount", h.Precios.DescuentoRenovacion)
	}

	// Administrators only
	admin := v1.Group("/admin",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(model.RolAdministrador),
	)
	{
		admin.GET("/void-requests", h.Anulacion.Listar)
		admin.POST("/void-requests/:id/approve", h.Anulacion.Aprobar)
		admin.POST("/void-requests/:id/reject", h.Anulacion.Rechazar)

		admin.GET("/cash-registers", h.Caja.Historial)
		admin.GET("/cash-registers/:id", h.Caja.Detalle)

		admin.POST("/plans", h.Catalogo.CrearPlan)
		admin.GET("/plans", h.Catalogo.ListarPlanes)
		admin.PUT("/plans/:id", h.Catalogo.ActualizarPlan)
		admin.DELETE("/plans/:id", h.Catalogo.DesactivarPlan)

		admin.POST("/products", h.Catalogo.CrearProducto)
		admin.GET("/products", h.Catalogo.ListarProductos)
		admin.PUT("/products/:id", h.Catalogo.ActualizarProducto)
		admin.DELETE("/products/:id", h.Catalogo.DesactivarProducto)

		admin.POST("/machines", h.Catalogo.CrearMaquina)
		admin.GET("/machines", h.Catalogo.ListarMaquinas)
		admin.PUT("/machines/:id", h.Catalogo.ActualizarMaquina)

		admin.POST("/discounts", h.Catalogo.CrearDescuento)
		admin.GET("/discounts", h.Catalogo.ListarDescuentos)
		admin.PUT("/discounts/:id", h.Catalogo.ActualizarDescuento)

		admin.POST("/users", h.Auth.CrearUsuario)
		admin.GET("/users", h.Auth.ListarUsuarios)
		admin.PUT("/users/:id", h.Auth.ActualizarUsuario)
		admin.DELETE("/users/:id", h.Auth.DesactivarUsuario)
	}

	// Members
	socio := v1.Group("/member",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(model.RolSocio),
	)
	{
		socio.POST("/check-in", h.Socio.CheckIn)
		socio.GET("/check-ins", h.Socio.MisAsistencias)
		socio.GET("/subscription", h.Socio.MiSuscripcion)
		socio.POST("/routine", h.Socio.GenerarRutina)
	}

	return r
}
