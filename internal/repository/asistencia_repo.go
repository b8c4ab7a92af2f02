package repository

import (
	"context"

	"github.com/wipxap/TITANIUM-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AsistenciaRepository interface {
	Create(ctx context.Context, a *model.Asistencia) error
	ListPorPerfil(ctx context.Context, perfilID uuid.UUID, limit int) ([]model.Asistencia, error)
}

type asistenciaRepo struct{ db *gorm.DB }

func NewAsistenciaRepository(db *gorm.DB) AsistenciaRepository { return &asistenciaRepo{db: db} }

func (r *asistenciaRepo) Create(ctx context.Context, a *model.Asistencia) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *asistenciaRepo) ListPorPerfil(ctx context.Context, perfilID uuid.UUID, limit int) ([]model.Asistencia, error) {
	var asistencias []model.Asistencia
	err := r.db.WithContext(ctx).
		Where("perfil_id = ?", perfilID).
		Order("created_at DESC").
		Limit(limit).
		Find(&asistencias).Error
	return asistencias, err
}
