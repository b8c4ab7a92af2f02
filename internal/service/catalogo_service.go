package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/wipxap/TITANIUM-sub000/internal/apierror"
	"github.com/wipxap/TITANIUM-sub000/internal/dto"
	"github.com/wipxap/TITANIUM-sub000/internal/model"
	"github.com/wipxap/TITANIUM-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	preciosCacheKey = "precios:pos"
	preciosCacheTTL = 60 * time.Second
)

// CatalogoService manages the sellable catalog (planes, productos) plus the
// machine inventory, and serves the cached public price list.
type CatalogoService interface {
	CrearPlan(ctx context.Context, req dto.PlanRequest) (*dto.PlanResponse, error)
	ListarPlanes(ctx context.Context, incluirInactivos bool) ([]dto.PlanResponse, error)
	ActualizarPlan(ctx context.Context, id uuid.UUID, req dto.PlanRequest) (*dto.PlanResponse, error)
	DesactivarPlan(ctx context.Context, id uuid.UUID) error

	CrearProducto(ctx context.Context, req dto.ProductoRequest) (*dto.ProductoResponse, error)
	ListarProductos(ctx context.Context, incluirInactivos bool) ([]dto.ProductoResponse, error)
	ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.ProductoRequest) (*dto.ProductoResponse, error)
	DesactivarProducto(ctx context.Context, id uuid.UUID) error

	CrearMaquina(ctx context.Context, req dto.MaquinaRequest) (*dto.MaquinaResponse, error)
	ListarMaquinas(ctx context.Context) ([]dto.MaquinaResponse, error)
	ActualizarMaquina(ctx context.Context, id uuid.UUID, req dto.MaquinaRequest) (*dto.MaquinaResponse, error)

	// ListaPrecios serves the public POS price board, cached in redis.
	ListaPrecios(ctx context.Context) (*dto.ListaPreciosResponse, error)
}

type catalogoService struct {
	planes    repository.PlanRepository
	productos repository.ProductoRepository
	maquinas  repository.MaquinaRepository
	rdb       *redis.Client
}

func NewCatalogoService(
	planes repository.PlanRepository,
	productos repository.ProductoRepository,
	maquinas repository.MaquinaRepository,
	rdb *redis.Client,
) CatalogoService {
	return &catalogoService{planes: planes, productos: productos, maquinas: maquinas, rdb: rdb}
}

// ─── Planes ──────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearPlan(ctx context.Context, req dto.PlanRequest) (*dto.PlanResponse, error) {
	plan := &model.Plan{
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		Precio:       req.Precio,
		DuracionDias: req.DuracionDias,
		Activo:       true,
	}
	if req.Activo != nil {
		plan.Activo = *req.Activo
	}
	if err := s.planes.Create(ctx, plan); err != nil {
		return nil, err
	}
	s.invalidarPrecios(ctx)
	return planToResponse(plan), nil
}

func (s *catalogoService) ListarPlanes(ctx context.Context, incluirInactivos bool) ([]dto.PlanResponse, error) {
	planes, err := s.planes.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PlanResponse, len(planes))
	for i := range planes {
		resp[i] = *planToResponse(&planes[i])
	}
	return resp, nil
}

func (s *catalogoService) ActualizarPlan(ctx context.Context, id uuid.UUID, req dto.PlanRequest) (*dto.PlanResponse, error) {
	plan, err := s.planes.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("plan no encontrado")
	}
	plan.Nombre = req.Nombre
	plan.Descripcion = req.Descripcion
	plan.Precio = req.Precio
	plan.DuracionDias = req.DuracionDias
	if req.Activo != nil {
		plan.Activo = *req.Activo
	}
	if err := s.planes.Update(ctx, plan); err != nil {
		return nil, err
	}
	s.invalidarPrecios(ctx)
	return planToResponse(plan), nil
}

func (s *catalogoService) DesactivarPlan(ctx context.Context, id uuid.UUID) error {
	if _, err := s.planes.FindByID(ctx, id); err != nil {
		return apierror.NoEncontrado("plan no encontrado")
	}
	if err := s.planes.Desactivar(ctx, id); err != nil {
		return err
	}
	s.invalidarPrecios(ctx)
	return nil
}

// ─── Productos ───────────────────────────────────────────────────────────────

func (s *catalogoService) CrearProducto(ctx context.Context, req dto.ProductoRequest) (*dto.ProductoResponse, error) {
	producto := &model.Producto{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Activo:      true,
	}
	if req.Activo != nil {
		producto.Activo = *req.Activo
	}
	if err := s.productos.Create(ctx, producto); err != nil {
		return nil, err
	}
	s.invalidarPrecios(ctx)
	return productoToResponse(producto), nil
}

func (s *catalogoService) ListarProductos(ctx context.Context, incluirInactivos bool) ([]dto.ProductoResponse, error) {
	productos, err := s.productos.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		resp[i] = *productoToResponse(&productos[i])
	}
	return resp, nil
}

func (s *catalogoService) ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.ProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.productos.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("producto no encontrado")
	}
	producto.Nombre = req.Nombre
	producto.Descripcion = req.Descripcion
	producto.Precio = req.Precio
	if req.Activo != nil {
		producto.Activo = *req.Activo
	}
	if err := s.productos.Update(ctx, producto); err != nil {
		return nil, err
	}
	s.invalidarPrecios(ctx)
	return productoToResponse(producto), nil
}

func (s *catalogoService) DesactivarProducto(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productos.FindByID(ctx, id); err != nil {
		return apierror.NoEncontrado("producto no encontrado")
	}
	if err := s.productos.Desactivar(ctx, id); err != nil {
		return err
	}
	s.invalidarPrecios(ctx)
	return nil
}

// ─── Maquinas ────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearMaquina(ctx context.Context, req dto.MaquinaRequest) (*dto.MaquinaResponse, error) {
	maquina := &model.Maquina{
		Nombre:        req.Nombre,
		GrupoMuscular: req.GrupoMuscular,
		Observaciones: req.Observaciones,
	}
	if req.Estado != "" {
		maquina.Estado = req.Estado
	}
	if err := s.maquinas.Create(ctx, maquina); err != nil {
		return nil, err
	}
	return maquinaToResponse(maquina), nil
}

func (s *catalogoService) ListarMaquinas(ctx context.Context) ([]dto.MaquinaResponse, error) {
	maquinas, err := s.maquinas.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MaquinaResponse, len(maquinas))
	for i := range maquinas {
		resp[i] = *maquinaToResponse(&maquinas[i])
	}
	return resp, nil
}

func (s *catalogoService) ActualizarMaquina(ctx context.Context, id uuid.UUID, req dto.MaquinaRequest) (*dto.MaquinaResponse, error) {
	maquina, err := s.maquinas.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("máquina no encontrada")
	}
	maquina.Nombre = req.Nombre
	maquina.GrupoMuscular = req.GrupoMuscular
	maquina.Observaciones = req.Observaciones
	if req.Estado != "" {
		maquina.Estado = req.Estado
	}
	if err := s.maquinas.Update(ctx, maquina); err != nil {
		return nil, err
	}
	return maquinaToResponse(maquina), nil
}

// ─── Price list ──────────────────────────────────────────────────────────────

func (s *catalogoService) ListaPrecios(ctx context.Context) (*dto.ListaPreciosResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, preciosCacheKey).Bytes(); err == nil {
			var resp dto.ListaPreciosResponse
			if json.Unmarshal(cached, &resp) == nil {
				return &resp, nil
			}
		}
	}

	planes, err := s.planes.List(ctx, false)
	if err != nil {
		return nil, err
	}
	productos, err := s.productos.List(ctx, false)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListaPreciosResponse{Items: make([]dto.PrecioItem, 0, len(planes)+len(productos))}
	for i := range planes {
		resp.Items = append(resp.Items, dto.PrecioItem{
			Type:   model.ItemPlan,
			ID:     planes[i].ID.String(),
			Nombre: planes[i].Nombre,
			Precio: planes[i].Precio,
		})
	}
	for i := range productos {
		resp.Items = append(resp.Items, dto.PrecioItem{
			Type:   model.ItemProducto,
			ID:     productos[i].ID.String(),
			Nombre: productos[i].Nombre,
			Precio: productos[i].Precio,
		})
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, preciosCacheKey, payload, preciosCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("no se pudo cachear lista de precios")
			}
		}
	}
	return resp, nil
}

// invalidarPrecios drops the cached price board after any catalog mutation.
// The TTL would expire it anyway; this just shortens the stale window.
func (s *catalogoService) invalidarPrecios(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, preciosCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar cache de precios")
	}
}

func planToResponse(p *model.Plan) *dto.PlanResponse {
	return &dto.PlanResponse{
		ID:           p.ID.String(),
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		Precio:       p.Precio,
		DuracionDias: p.DuracionDias,
		Activo:       p.Activo,
	}
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Activo:      p.Activo,
	}
}

func maquinaToResponse(m *model.Maquina) *dto.MaquinaResponse {
	return &dto.MaquinaResponse{
		ID:            m.ID.String(),
		Nombre:        m.Nombre,
		GrupoMuscular: m.GrupoMuscular,
		Estado:        m.Estado,
		Observaciones: m.Observaciones,
	}
}
