package repository

import (
	"context"

	"github.com/wipxap/TITANIUM-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DescuentoRepository interface {
	Create(ctx context.Context, d *model.DescuentoRenovacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DescuentoRenovacion, error)
	// ListActivos is what the resolver reads: active rules ordered so the
	// first applicable hit at the highest percent wins the tie-break.
	ListActivos(ctx context.Context) ([]model.DescuentoRenovacion, error)
	List(ctx context.Context) ([]model.DescuentoRenovacion, error)
	Update(ctx context.Context, d *model.DescuentoRenovacion) error
}

type descuentoRepo struct{ db *gorm.DB }

func NewDescuentoRepository(db *gorm.DB) DescuentoRepository { return &descuentoRepo{db: db} }

func (r *descuentoRepo) Create(ctx context.Context, d *model.DescuentoRenovacion) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *descuentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DescuentoRenovacion, error) {
	var d model.DescuentoRenovacion
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *descuentoRepo) ListActivos(ctx context.Context) ([]model.DescuentoRenovacion, error) {
	var reglas []model.DescuentoRenovacion
	err := r.db.WithContext(ctx).
		Where("activo = true").
		Order("porcentaje DESC, created_at ASC").
		Find(&reglas).Error
	return reglas, err
}

func (r *descuentoRepo) List(ctx context.Context) ([]model.DescuentoRenovacion, error) {
	var reglas []model.DescuentoRenovacion
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&reglas).Error
	return reglas, err
}

func (r *descuentoRepo) Update(ctx context.Context, d *model.DescuentoRenovacion) error {
	return r.db.WithContext(ctx).Save(d).Error
}
