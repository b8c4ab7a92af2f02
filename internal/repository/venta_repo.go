package repository

import (
	"context"

	"github.com/wipxap/TITANIUM-sub000/internal/dto"
	"github.com/wipxap/TITANIUM-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	// MaxSecuenciaDia returns the highest receipt sequence already allocated
	// for fechaBoleta (YYYYMMDD), 0 when the day has no sales yet. Runs on tx
	// so the read and the subsequent insert share the transaction; the unique
	// (fecha_boleta, secuencia_boleta) index backs up the race.
	MaxSecuenciaDia(ctx context.Context, tx *gorm.DB, fechaBoleta string) (int, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	List(ctx context.Context, filter dto.HistorialVentasFilter) ([]model.Venta, int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Items").First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) MaxSecuenciaDia(ctx context.Context, tx *gorm.DB, fechaBoleta string) (int, error) {
	var max int
	err := tx.WithContext(ctx).
		Model(&model.Venta{}).
		Select("COALESCE(MAX(secuencia_boleta), 0)").
		Where("fecha_boleta = ?", fechaBoleta).
		Scan(&max).Error
	return max, err
}

func (r *ventaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *ventaRepo) List(ctx context.Context, filter dto.HistorialVentasFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("estado = ?", filter.Status)
	}
	if filter.PaymentMethod != "" {
		q = q.Where("metodo_pago = ?", filter.PaymentMethod)
	}
	if filter.FechaBoleta != "" {
		q = q.Where("fecha_boleta = ?", filter.FechaBoleta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error

	return ventas, total, err
}
