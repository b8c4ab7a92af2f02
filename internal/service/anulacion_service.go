package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/wipxap/TITANIUM-sub000/internal/apierror"
	"github.com/wipxap/TITANIUM-sub000/internal/dto"
	"github.com/wipxap/TITANIUM-sub000/internal/model"
	"github.com/wipxap/TITANIUM-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnulacionService drives the void workflow: a receptionist requests, an
// administrator approves or rejects. Sales are never deleted, only
// status-flagged.
type AnulacionService interface {
	Solicitar(ctx context.Context, ventaID, solicitanteID uuid.UUID, req dto.SolicitarAnulacionRequest) (*dto.SolicitudAnulacionResponse, error)
	Aprobar(ctx context.Context, solicitudID, revisorID uuid.UUID) (*dto.SolicitudAnulacionResponse, error)
	Rechazar(ctx context.Context, solicitudID, revisorID uuid.UUID) (*dto.SolicitudAnulacionResponse, error)
	Listar(ctx context.Context, filter dto.AnulacionFilter) (*dto.SolicitudAnulacionListResponse, error)
}

type anulacionService struct {
	solicitudes   repository.AnulacionRepository
	ventas        repository.VentaRepository
	suscripciones repository.SuscripcionRepository
}

func NewAnulacionService(
	solicitudes repository.AnulacionRepository,
	ventas repository.VentaRepository,
	suscripciones repository.SuscripcionRepository,
) AnulacionService {
	return &anulacionService{
		solicitudes:   solicitudes,
		ventas:        ventas,
		suscripciones: suscripciones,
	}
}

func (s *anulacionService) Solicitar(ctx context.Context, ventaID, solicitanteID uuid.UUID, req dto.SolicitarAnulacionRequest) (*dto.SolicitudAnulacionResponse, error) {
	if utf8.RuneCountInString(req.Reason) < model.MotivoMinLen {
		return nil, apierror.Validacion("el motivo debe tener al menos 10 caracteres")
	}

	venta, err := s.ventas.FindByID(ctx, ventaID)
	if err != nil {
		return nil, apierror.NoEncontrado("venta no encontrada")
	}
	if venta.Estado != model.VentaCompleted {
		return nil, apierror.Conflicto("solo se puede solicitar la anulación de ventas completadas")
	}
	if _, err := s.solicitudes.FindPendientePorVenta(ctx, venta.ID); err == nil {
		return nil, apierror.Conflicto("la venta ya tiene una solicitud de anulación pendiente")
	}

	solicitud := &model.SolicitudAnulacion{
		VentaID:         venta.ID,
		SolicitadaPorID: solicitanteID,
		Motivo:          req.Reason,
		Estado:          model.AnulacionPending,
	}
	err = runTx(s.solicitudes.DB(), func(tx *gorm.DB) error {
		if err := s.solicitudes.CreateTx(tx, solicitud); err != nil {
			return err
		}
		return s.ventas.UpdateEstadoTx(tx, venta.ID, model.VentaVoidPending)
	})
	if err != nil {
		return nil, err
	}
	return toSolicitudResponse(solicitud, model.VentaVoidPending), nil
}

func (s *anulacionService) Aprobar(ctx context.Context, solicitudID, revisorID uuid.UUID) (*dto.SolicitudAnulacionResponse, error) {
	solicitud, err := s.pendiente(ctx, solicitudID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	solicitud.Estado = model.AnulacionApproved
	solicitud.RevisadaPorID = &revisorID
	solicitud.RevisadaAt = &now

	err = runTx(s.solicitudes.DB(), func(tx *gorm.DB) error {
		if err := s.ventas.UpdateEstadoTx(tx, solicitud.VentaID, model.VentaVoided); err != nil {
			return err
		}
		if err := s.solicitudes.UpdateTx(tx, solicitud); err != nil {
			return err
		}
		return s.cancelarSuscripcionDeVenta(ctx, tx, solicitud)
	})
	if err != nil {
		return nil, err
	}
	return toSolicitudResponse(solicitud, model.VentaVoided), nil
}

func (s *anulacionService) Rechazar(ctx context.Context, solicitudID, revisorID uuid.UUID) (*dto.SolicitudAnulacionResponse, error) {
	solicitud, err := s.pendiente(ctx, solicitudID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	solicitud.Estado = model.AnulacionRejected
	solicitud.RevisadaPorID = &revisorID
	solicitud.RevisadaAt = &now

	err = runTx(s.solicitudes.DB(), func(tx *gorm.DB) error {
		if err := s.ventas.UpdateEstadoTx(tx, solicitud.VentaID, model.VentaCompleted); err != nil {
			return err
		}
		return s.solicitudes.UpdateTx(tx, solicitud)
	})
	if err != nil {
		return nil, err
	}
	return toSolicitudResponse(solicitud, model.VentaCompleted), nil
}

func (s *anulacionService) pendiente(ctx context.Context, solicitudID uuid.UUID) (*model.SolicitudAnulacion, error) {
	solicitud, err := s.solicitudes.FindByID(ctx, solicitudID)
	if err != nil {
		return nil, apierror.NoEncontrado("solicitud de anulación no encontrada")
	}
	if solicitud.Estado != model.AnulacionPending {
		return nil, apierror.Conflicto("la solicitud ya fue revisada")
	}
	return solicitud, nil
}

// cancelarSuscripcionDeVenta undoes the membership side effect of a voided
// plan sale. Only the subscription this exact sale created or last renewed is
// touched, and only while still active — periods paid by later sales survive.
func (s *anulacionService) cancelarSuscripcionDeVenta(ctx context.Context, tx *gorm.DB, solicitud *model.SolicitudAnulacion) error {
	if solicitud.Venta == nil || !solicitud.Venta.TieneItemPlan() {
		return nil
	}
	sub, err := s.suscripciones.FindPorVenta(ctx, solicitud.VentaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if sub.Estado != model.SuscripcionActive {
		return nil
	}
	sub.Estado = model.SuscripcionCancelled
	return s.suscripciones.UpdateTx(tx, sub)
}

func (s *anulacionService) Listar(ctx context.Context, filter dto.AnulacionFilter) (*dto.SolicitudAnulacionListResponse, error) {
	solicitudes, total, err := s.solicitudes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.SolicitudAnulacionResponse, 0, len(solicitudes))
	for i := range solicitudes {
		sol := &solicitudes[i]
		saleStatus := ""
		if sol.Venta != nil {
			saleStatus = sol.Venta.Estado
		}
		data = append(data, *toSolicitudResponse(sol, saleStatus))
	}
	return &dto.SolicitudAnulacionListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func toSolicitudResponse(s *model.SolicitudAnulacion, saleStatus string) *dto.SolicitudAnulacionResponse {
	resp := &dto.SolicitudAnulacionResponse{
		ID:          s.ID.String(),
		SaleID:      s.VentaID.String(),
		RequestedBy: s.SolicitadaPorID.String(),
		Reason:      s.Motivo,
		Status:      s.Estado,
		CreatedAt:   s.CreatedAt.In(zonaChile).Format(time.RFC3339),
		SaleStatus:  saleStatus,
	}
	if s.RevisadaPorID != nil {
		id := s.RevisadaPorID.String()
		resp.ReviewedBy = &id
	}
	if s.RevisadaAt != nil {
		at := s.RevisadaAt.In(zonaChile).Format(time.RFC3339)
		resp.ReviewedAt = &at
	}
	return resp
}
