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
	"gorm.io/gorm"
)

type CajaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.CajaResponse, error)
	// Estado answers GET /reception/cash-register: {isOpen:false} is a normal
	// response, not an error.
	Estado(ctx context.Context) (*dto.EstadoCajaResponse, error)
	Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.CajaResponse, error)
	// CajaAbierta is the gate the sale processor calls before accepting a sale.
	CajaAbierta(ctx context.Context) (*model.Caja, error)
	Historial(ctx context.Context, page, limit int) ([]dto.CajaResponse, int64, error)
	Detalle(ctx context.Context, id uuid.UUID) (*dto.CajaResponse, error)
}

type cajaService struct {
	cajas repository.CajaRepository
}

func NewCajaService(cajas repository.CajaRepository) CajaService {
	return &cajaService{cajas: cajas}
}

func (s *cajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.CajaResponse, error) {
	if _, err := s.cajas.FindAbierta(ctx); err == nil {
		return nil, apierror.Conflicto("ya existe una caja abierta; ciérrela antes de abrir otra")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	caja := &model.Caja{
		AbiertaPorID: usuarioID,
		MontoInicial: req.InitialAmount,
		OpenedAt:     time.Now(),
	}
	if err := s.cajas.Create(ctx, caja); err != nil {
		// Two concurrent opens: the pre-check passed for both but the partial
		// unique index rejects the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflicto("ya existe una caja abierta; ciérrela antes de abrir otra")
		}
		return nil, err
	}

	resp, err := s.toResponse(ctx, caja)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *cajaService) Estado(ctx context.Context) (*dto.EstadoCajaResponse, error) {
	caja, err := s.cajas.FindAbierta(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.EstadoCajaResponse{IsOpen: false}, nil
		}
		return nil, err
	}
	resp, err := s.toResponse(ctx, caja)
	if err != nil {
		return nil, err
	}
	return &dto.EstadoCajaResponse{IsOpen: true, CashRegister: resp}, nil
}

func (s *cajaService) Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.CajaResponse, error) {
	caja, err := s.cajas.FindAbierta(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Conflicto("no hay caja abierta que cerrar")
		}
		return nil, err
	}

	totales, err := s.totalesActuales(ctx, caja)
	if err != nil {
		return nil, err
	}

	// Expected cash includes the opening float; card and transfer don't have one.
	esperadoEfectivo := caja.MontoInicial + totales.Cash
	esperadoTarjeta := totales.Card
	esperadoTransfer := totales.Transfer

	difEfectivo := req.DeclaredCash - esperadoEfectivo
	difTarjeta := req.DeclaredCard - esperadoTarjeta
	difTransfer := req.DeclaredTransfer - esperadoTransfer

	now := time.Now()
	caja.ClosedAt = &now
	caja.DeclaradoEfectivo = &req.DeclaredCash
	caja.DeclaradoTarjeta = &req.DeclaredCard
	caja.DeclaradoTransferencia = &req.DeclaredTransfer
	caja.EsperadoEfectivo = &esperadoEfectivo
	caja.EsperadoTarjeta = &esperadoTarjeta
	caja.EsperadoTransferencia = &esperadoTransfer
	caja.DiferenciaEfectivo = &difEfectivo
	caja.DiferenciaTarjeta = &difTarjeta
	caja.DiferenciaTransferencia = &difTransfer
	if req.Notes != nil {
		caja.Observaciones = req.Notes
	}

	if err := s.cajas.Update(ctx, caja); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, caja)
}

func (s *cajaService) CajaAbierta(ctx context.Context) (*model.Caja, error) {
	caja, err := s.cajas.FindAbierta(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Conflicto("caja cerrada; ábrala antes de registrar ventas")
		}
		return nil, err
	}
	return caja, nil
}

func (s *cajaService) Historial(ctx context.Context, page, limit int) ([]dto.CajaResponse, int64, error) {
	cajas, total, err := s.cajas.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.CajaResponse, 0, len(cajas))
	for i := range cajas {
		r, err := s.toResponse(ctx, &cajas[i])
		if err != nil {
			return nil, 0, err
		}
		resp = append(resp, *r)
	}
	return resp, total, nil
}

func (s *cajaService) Detalle(ctx context.Context, id uuid.UUID) (*dto.CajaResponse, error) {
	caja, err := s.cajas.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("caja no encontrada")
	}
	return s.toResponse(ctx, caja)
}

// totalesActuales folds webpay into card: both settle through the terminal
// operator and the cashier only ever counts three buckets.
func (s *cajaService) totalesActuales(ctx context.Context, caja *model.Caja) (*dto.TotalesPorMetodo, error) {
	sums, err := s.cajas.SumVentasPorMetodo(ctx, caja.ID)
	if err != nil {
		return nil, err
	}
	t := &dto.TotalesPorMetodo{
		Cash:     sums[model.PagoCash],
		Card:     sums[model.PagoCard] + sums[model.PagoWebpay],
		Transfer: sums[model.PagoTransfer],
	}
	t.Total = t.Cash + t.Card + t.Transfer
	return t, nil
}

func (s *cajaService) toResponse(ctx context.Context, caja *model.Caja) (*dto.CajaResponse, error) {
	totales, err := s.totalesActuales(ctx, caja)
	if err != nil {
		return nil, err
	}

	resp := &dto.CajaResponse{
		ID:            caja.ID.String(),
		OpenedBy:      caja.AbiertaPorID.String(),
		OpenedAt:      caja.OpenedAt.In(zonaChile).Format(time.RFC3339),
		InitialAmount: caja.MontoInicial,
		CurrentTotals: *totales,
		Notes:         caja.Observaciones,
	}

	if caja.ClosedAt != nil {
		closed := caja.ClosedAt.In(zonaChile).Format(time.RFC3339)
		resp.ClosedAt = &closed
		resp.Declared = &dto.TotalesPorMetodo{
			Cash:     deref(caja.DeclaradoEfectivo),
			Card:     deref(caja.DeclaradoTarjeta),
			Transfer: deref(caja.DeclaradoTransferencia),
		}
		resp.Declared.Total = resp.Declared.Cash + resp.Declared.Card + resp.Declared.Transfer
		resp.Expected = &dto.TotalesPorMetodo{
			Cash:     deref(caja.EsperadoEfectivo),
			Card:     deref(caja.EsperadoTarjeta),
			Transfer: deref(caja.EsperadoTransferencia),
		}
		resp.Expected.Total = resp.Expected.Cash + resp.Expected.Card + resp.Expected.Transfer
		resp.Differences = &dto.DiferenciasCaja{
			CashDiff:     deref(caja.DiferenciaEfectivo),
			CardDiff:     deref(caja.DiferenciaTarjeta),
			TransferDiff: deref(caja.DiferenciaTransferencia),
		}
		resp.Differences.TotalDiff = resp.Differences.CashDiff + resp.Differences.CardDiff + resp.Differences.TransferDiff
	}
	return resp, nil
}

func deref(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
