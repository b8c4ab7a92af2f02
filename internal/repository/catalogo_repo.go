package repository

import (
	"context"

	"github.com/wipxap/TITANIUM-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ─── Planes ──────────────────────────────────────────────────────────────────

type PlanRepository interface {
	Create(ctx context.Context, p *model.Plan) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Plan, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Plan, error)
	Update(ctx context.Context, p *model.Plan) error
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type planRepo struct{ db *gorm.DB }

func NewPlanRepository(db *gorm.DB) PlanRepository { return &planRepo{db: db} }

func (r *planRepo) Create(ctx context.Context, p *model.Plan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *planRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Plan, error) {
	var p model.Plan
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *planRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Plan, error) {
	var planes []model.Plan
	q := r.db.WithContext(ctx)
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Order("precio ASC").Find(&planes).Error
	return planes, err
}

func (r *planRepo) Update(ctx context.Context, p *model.Plan) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *planRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Plan{}).Where("id = ?", id).Update("activo", false).Error
}

// ─── Productos ───────────────────────────────────────────────────────────────

type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Producto, error) {
	var productos []model.Producto
	q := r.db.WithContext(ctx)
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

// ─── Maquinas ────────────────────────────────────────────────────────────────

type MaquinaRepository interface {
	Create(ctx context.Context, m *model.Maquina) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Maquina, error)
	List(ctx context.Context) ([]model.Maquina, error)
	Update(ctx context.Context, m *model.Maquina) error
}

type maquinaRepo struct{ db *gorm.DB }

func NewMaquinaRepository(db *gorm.DB) MaquinaRepository { return &maquinaRepo{db: db} }

func (r *maquinaRepo) Create(ctx context.Context, m *model.Maquina) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *maquinaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Maquina, error) {
	var m model.Maquina
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *maquinaRepo) List(ctx context.Context) ([]model.Maquina, error) {
	var maquinas []model.Maquina
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&maquinas).Error
	return maquinas, err
}

func (r *maquinaRepo) Update(ctx context.Context, m *model.Maquina) error {
	return r.db.WithContext(ctx).Save(m).Error
}
