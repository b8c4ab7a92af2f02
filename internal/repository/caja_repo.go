package repository

import (
	"context"

	"github.com/wipxap/TITANIUM-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CajaRepository interface {
	Create(ctx context.Context, c *model.Caja) error
	// FindAbierta returns the register with closed_at IS NULL, or
	// gorm.ErrRecordNotFound. The partial unique index guarantees there is
	// at most one.
	FindAbierta(ctx context.Context) (*model.Caja, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	Update(ctx context.Context, c *model.Caja) error
	// SumVentasPorMetodo sums non-voided sale totals of the register, keyed by
	// raw payment method (cash/card/webpay/transfer). Sales in void_pending
	// still count — they are financially real until the void is approved.
	SumVentasPorMetodo(ctx context.Context, cajaID uuid.UUID) (map[string]int64, error)
	List(ctx context.Context, page, limit int) ([]model.Caja, int64, error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) Create(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) FindAbierta(ctx context.Context) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).Where("closed_at IS NULL").First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *cajaRepo) Update(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cajaRepo) SumVentasPorMetodo(ctx context.Context, cajaID uuid.UUID) (map[string]int64, error) {
	rows := []struct {
		MetodoPago string
		Suma       int64
	}{}
	err := r.db.WithContext(ctx).
		Model(&model.Venta{}).
		Select("metodo_pago, COALESCE(SUM(total), 0) AS suma").
		Where("caja_id = ? AND estado <> ?", cajaID, model.VentaVoided).
		Group("metodo_pago").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := map[string]int64{
		model.PagoCash:     0,
		model.PagoCard:     0,
		model.PagoWebpay:   0,
		model.PagoTransfer: 0,
	}
	for _, row := range rows {
		sums[row.MetodoPago] = row.Suma
	}
	return sums, nil
}

func (r *cajaRepo) List(ctx context.Context, page, limit int) ([]model.Caja, int64, error) {
	var cajas []model.Caja
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Caja{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("opened_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&cajas).Error
	return cajas, total, err
}
