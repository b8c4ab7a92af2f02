package repository

import (
	"context"

	"github.com/wipxap/TITANIUM-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PerfilRepository interface {
	Create(ctx context.Context, p *model.Perfil) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Perfil, error)
	FindByUsuarioID(ctx context.Context, usuarioID uuid.UUID) (*model.Perfil, error)
	Update(ctx context.Context, p *model.Perfil) error
}

type perfilRepo struct{ db *gorm.DB }

func NewPerfilRepository(db *gorm.DB) PerfilRepository { return &perfilRepo{db: db} }

func (r *perfilRepo) Create(ctx context.Context, p *model.Perfil) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *perfilRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Perfil, error) {
	var p model.Perfil
	err := r.db.WithContext(ctx).Preload("Usuario").First(&p, id).Error
	return &p, err
}

func (r *perfilRepo) FindByUsuarioID(ctx context.Context, usuarioID uuid.UUID) (*model.Perfil, error) {
	var p model.Perfil
	err := r.db.WithContext(ctx).Preload("Usuario").Where("usuario_id = ?", usuarioID).First(&p).Error
	return &p, err
}

func (r *perfilRepo) Update(ctx context.Context, p *model.Perfil) error {
	return r.db.WithContext(ctx).Save(p).Error
}
