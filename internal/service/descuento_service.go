package service

import (
	"context"
	"errors"
	"time"

	"github.com/wipxap/TITANIUM-sub000/internal/apierror"
	"github.com/wipxap/TITANIUM-sub000/internal/dto"
	"github.com/wipxap/TITANIUM-sub000/internal/model"
	"github.com/wipxap/TITANIUM-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DescuentoService interface {
	// Resolver returns the best applicable renewal discount for a profile.
	// Read-only; a profile without subscription history yields the
	// zero-discount result, never an error.
	Resolver(ctx context.Context, perfilID uuid.UUID) (*dto.DescuentoAplicadoResponse, error)

	// Admin CRUD over the rule catalog
	Crear(ctx context.Context, req dto.DescuentoRequest) (*dto.DescuentoResponse, error)
	Listar(ctx context.Context) ([]dto.DescuentoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.DescuentoRequest) (*dto.DescuentoResponse, error)
}

type descuentoService struct {
	reglas        repository.DescuentoRepository
	suscripciones repository.SuscripcionRepository
}

func NewDescuentoService(reglas repository.DescuentoRepository, suscripciones repository.SuscripcionRepository) DescuentoService {
	return &descuentoService{reglas: reglas, suscripciones: suscripciones}
}

// sinDescuento is the {0, null, null} default.
func sinDescuento() *dto.DescuentoAplicadoResponse {
	return &dto.DescuentoAplicadoResponse{DiscountPercent: decimal.Zero}
}

func (s *descuentoService) Resolver(ctx context.Context, perfilID uuid.UUID) (*dto.DescuentoAplicadoResponse, error) {
	sub, err := s.suscripciones.FindUltimaPorPerfil(ctx, perfilID)
	if err != nil {
		// Only the no-history case defaults to zero discount; a failing
		// lookup must not quote full price as if it were authoritative.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sinDescuento(), nil
		}
		return nil, err
	}

	dias := diasHastaVencimiento(sub.FechaFin, time.Now())

	activas, err := s.reglas.ListActivos(ctx)
	if err != nil {
		return nil, err
	}

	var mejor *model.DescuentoRenovacion
	for i := range activas {
		regla := &activas[i]
		if !reglaAplica(regla, dias) {
			continue
		}
		// ListActivos orders by percent desc, so the first applicable rule is
		// already the winner; the comparison guards against reordering.
		if mejor == nil || regla.Porcentaje.GreaterThan(mejor.Porcentaje) {
			mejor = regla
		}
	}
	if mejor == nil {
		return sinDescuento(), nil
	}

	id := mejor.ID.String()
	nombre := mejor.Nombre
	return &dto.DescuentoAplicadoResponse{
		DiscountPercent: mejor.Porcentaje,
		DiscountName:    &nombre,
		DiscountID:      &id,
	}, nil
}

// reglaAplica evaluates one rule against the signed days-until-expiry.
func reglaAplica(regla *model.DescuentoRenovacion, dias int) bool {
	switch regla.Condicion {
	case model.DescuentoPorVencer:
		return dias > 0 && dias <= regla.DiasAntes
	case model.DescuentoVencida:
		return dias <= 0 && -dias <= regla.DiasDespues
	default:
		return false
	}
}

// AplicarPorcentaje discounts an integer peso price by pct, rounding to the
// nearest peso (CLP has no fractional unit).
func AplicarPorcentaje(precio int64, pct decimal.Decimal) int64 {
	if pct.IsZero() {
		return precio
	}
	factor := decimal.NewFromInt(100).Sub(pct).Div(decimal.NewFromInt(100))
	return decimal.NewFromInt(precio).Mul(factor).Round(0).IntPart()
}

// ── Admin CRUD ───────────────────────────────────────────────────────────────

func (s *descuentoService) Crear(ctx context.Context, req dto.DescuentoRequest) (*dto.DescuentoResponse, error) {
	if err := validarCondicion(req); err != nil {
		return nil, err
	}
	regla := &model.DescuentoRenovacion{
		Nombre:      req.Nombre,
		Porcentaje:  req.Porcentaje,
		Condicion:   req.Condicion,
		DiasAntes:   req.DiasAntes,
		DiasDespues: req.DiasDespues,
		Activo:      true,
	}
	if req.Activo != nil {
		regla.Activo = *req.Activo
	}
	if err := s.reglas.Create(ctx, regla); err != nil {
		return nil, err
	}
	return descuentoToResponse(regla), nil
}

func (s *descuentoService) Listar(ctx context.Context) ([]dto.DescuentoResponse, error) {
	reglas, err := s.reglas.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DescuentoResponse, len(reglas))
	for i := range reglas {
		resp[i] = *descuentoToResponse(&reglas[i])
	}
	return resp, nil
}

func (s *descuentoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.DescuentoRequest) (*dto.DescuentoResponse, error) {
	if err := validarCondicion(req); err != nil {
		return nil, err
	}
	regla, err := s.reglas.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("descuento no encontrado")
	}
	regla.Nombre = req.Nombre
	regla.Porcentaje = req.Porcentaje
	regla.Condicion = req.Condicion
	regla.DiasAntes = req.DiasAntes
	regla.DiasDespues = req.DiasDespues
	if req.Activo != nil {
		regla.Activo = *req.Activo
	}
	if err := s.reglas.Update(ctx, regla); err != nil {
		return nil, err
	}
	return descuentoToResponse(regla), nil
}

func validarCondicion(req dto.DescuentoRequest) error {
	if req.Condicion == model.DescuentoPorVencer && req.DiasAntes <= 0 {
		return apierror.Validacion("dias_antes debe ser mayor a 0 para reglas expiring_soon")
	}
	if req.Condicion == model.DescuentoVencida && req.DiasDespues <= 0 {
		return apierror.Validacion("dias_despues debe ser mayor a 0 para reglas expired")
	}
	return nil
}

func descuentoToResponse(d *model.DescuentoRenovacion) *dto.DescuentoResponse {
	return &dto.DescuentoResponse{
		ID:          d.ID.String(),
		Nombre:      d.Nombre,
		Porcentaje:  d.Porcentaje,
		Condicion:   d.Condicion,
		DiasAntes:   d.DiasAntes,
		DiasDespues: d.DiasDespues,
		Activo:      d.Activo,
	}
}
