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

// AsistenciaService handles member check-ins and the member-facing
// subscription view.
type AsistenciaService interface {
	CheckIn(ctx context.Context, usuarioID uuid.UUID) (*dto.CheckInResponse, error)
	MisAsistencias(ctx context.Context, usuarioID uuid.UUID, limit int) ([]dto.AsistenciaItem, error)
	MiSuscripcion(ctx context.Context, usuarioID uuid.UUID) (*dto.SuscripcionResponse, error)
}

type asistenciaService struct {
	asistencias   repository.AsistenciaRepository
	perfiles      repository.PerfilRepository
	suscripciones repository.SuscripcionRepository
}

func NewAsistenciaService(
	asistencias repository.AsistenciaRepository,
	perfiles repository.PerfilRepository,
	suscripciones repository.SuscripcionRepository,
) AsistenciaService {
	return &asistenciaService{
		asistencias:   asistencias,
		perfiles:      perfiles,
		suscripciones: suscripciones,
	}
}

func (s *asistenciaService) CheckIn(ctx context.Context, usuarioID uuid.UUID) (*dto.CheckInResponse, error) {
	perfil, err := s.perfiles.FindByUsuarioID(ctx, usuarioID)
	if err != nil {
		return nil, apierror.NoEncontrado("perfil no encontrado")
	}

	sub, err := s.suscripciones.FindActivaPorPerfil(ctx, perfil.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Conflicto("no tiene una suscripción activa")
		}
		return nil, err
	}
	if sub.FechaFin.Before(time.Now()) {
		return nil, apierror.Conflicto("su suscripción está vencida")
	}

	asistencia := &model.Asistencia{
		PerfilID:      perfil.ID,
		SuscripcionID: sub.ID,
	}
	if err := s.asistencias.Create(ctx, asistencia); err != nil {
		return nil, err
	}

	return &dto.CheckInResponse{
		ID:             asistencia.ID.String(),
		CheckedInAt:    asistencia.CreatedAt.In(zonaChile).Format(time.RFC3339),
		SubscriptionID: sub.ID.String(),
		EndDate:        sub.FechaFin.In(zonaChile).Format("2006-01-02"),
	}, nil
}

func (s *asistenciaService) MisAsistencias(ctx context.Context, usuarioID uuid.UUID, limit int) ([]dto.AsistenciaItem, error) {
	perfil, err := s.perfiles.FindByUsuarioID(ctx, usuarioID)
	if err != nil {
		return nil, apierror.NoEncontrado("perfil no encontrado")
	}
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	asistencias, err := s.asistencias.ListPorPerfil(ctx, perfil.ID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AsistenciaItem, 0, len(asistencias))
	for _, a := range asistencias {
		out = append(out, dto.AsistenciaItem{
			ID:          a.ID.String(),
			CheckedInAt: a.CreatedAt.In(zonaChile).Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *asistenciaService) MiSuscripcion(ctx context.Context, usuarioID uuid.UUID) (*dto.SuscripcionResponse, error) {
	perfil, err := s.perfiles.FindByUsuarioID(ctx, usuarioID)
	if err != nil {
		return nil, apierror.NoEncontrado("perfil no encontrado")
	}
	sub, err := s.suscripciones.FindUltimaPorPerfil(ctx, perfil.ID)
	if err != nil {
		return nil, apierror.NoEncontrado("no registra suscripciones")
	}
	nombrePlan := ""
	if sub.Plan != nil {
		nombrePlan = sub.Plan.Nombre
	}
	return toSuscripcionResponse(sub, nombrePlan, false), nil
}
