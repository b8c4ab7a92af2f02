package repository

import (
	"context"

	"github.com/wipxap/TITANIUM-sub000/internal/dto"
	"github.com/wipxap/TITANIUM-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnulacionRepository interface {
	CreateTx(tx *gorm.DB, s *model.SolicitudAnulacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SolicitudAnulacion, error)
	FindPendientePorVenta(ctx context.Context, ventaID uuid.UUID) (*model.SolicitudAnulacion, error)
	UpdateTx(tx *gorm.DB, s *model.SolicitudAnulacion) error
	List(ctx context.Context, filter dto.AnulacionFilter) ([]model.SolicitudAnulacion, int64, error)
	DB() *gorm.DB
}

type anulacionRepo struct{ db *gorm.DB }

func NewAnulacionRepository(db *gorm.DB) AnulacionRepository { return &anulacionRepo{db: db} }

func (r *anulacionRepo) DB() *gorm.DB { return r.db }

func (r *anulacionRepo) CreateTx(tx *gorm.DB, s *model.SolicitudAnulacion) error {
	return tx.Create(s).Error
}

func (r *anulacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SolicitudAnulacion, error) {
	var s model.SolicitudAnulacion
	err := r.db.WithContext(ctx).Preload("Venta.Items").First(&s, id).Error
	return &s, err
}

func (r *anulacionRepo) FindPendientePorVenta(ctx context.Context, ventaID uuid.UUID) (*model.SolicitudAnulacion, error) {
	var s model.SolicitudAnulacion
	err := r.db.WithContext(ctx).
		Where("venta_id = ? AND estado = ?", ventaID, model.AnulacionPending).
		First(&s).Error
	return &s, err
}

func (r *anulacionRepo) UpdateTx(tx *gorm.DB, s *model.SolicitudAnulacion) error {
	return tx.Save(s).Error
}

func (r *anulacionRepo) List(ctx context.Context, filter dto.AnulacionFilter) ([]model.SolicitudAnulacion, int64, error) {
	var solicitudes []model.SolicitudAnulacion
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.SolicitudAnulacion{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("estado = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Venta").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&solicitudes).Error

	return solicitudes, total, err
}
