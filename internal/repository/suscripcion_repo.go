package repository

import (
	"context"

	"github.com/wipxap/TITANIUM-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SuscripcionRepository interface {
	CreateTx(tx *gorm.DB, s *model.Suscripcion) error
	UpdateTx(tx *gorm.DB, s *model.Suscripcion) error
	// FindActivaPorPerfil returns the profile's single active subscription.
	FindActivaPorPerfil(ctx context.Context, perfilID uuid.UUID) (*model.Suscripcion, error)
	// FindUltimaPorPerfil returns the most recent subscription by end date,
	// regardless of status — the discount resolver anchors on it.
	FindUltimaPorPerfil(ctx context.Context, perfilID uuid.UUID) (*model.Suscripcion, error)
	FindPorVenta(ctx context.Context, ventaID uuid.UUID) (*model.Suscripcion, error)
}

type suscripcionRepo struct{ db *gorm.DB }

func NewSuscripcionRepository(db *gorm.DB) SuscripcionRepository { return &suscripcionRepo{db: db} }

func (r *suscripcionRepo) CreateTx(tx *gorm.DB, s *model.Suscripcion) error {
	return tx.Create(s).Error
}

func (r *suscripcionRepo) UpdateTx(tx *gorm.DB, s *model.Suscripcion) error {
	return tx.Save(s).Error
}

func (r *suscripcionRepo) FindActivaPorPerfil(ctx context.Context, perfilID uuid.UUID) (*model.Suscripcion, error) {
	var s model.Suscripcion
	err := r.db.WithContext(ctx).Preload("Plan").
		Where("perfil_id = ? AND estado = ?", perfilID, model.SuscripcionActive).
		First(&s).Error
	return &s, err
}

func (r *suscripcionRepo) FindUltimaPorPerfil(ctx context.Context, perfilID uuid.UUID) (*model.Suscripcion, error) {
	var s model.Suscripcion
	err := r.db.WithContext(ctx).Preload("Plan").
		Where("perfil_id = ?", perfilID).
		Order("fecha_fin DESC").
		First(&s).Error
	return &s, err
}

func (r *suscripcionRepo) FindPorVenta(ctx context.Context, ventaID uuid.UUID) (*model.Suscripcion, error) {
	var s model.Suscripcion
	err := r.db.WithContext(ctx).Where("venta_id = ?", ventaID).First(&s).Error
	return &s, err
}
