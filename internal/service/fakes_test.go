package service

import (
	"context"
	"sort"
	"time"

	"github.com/wipxap/TITANIUM-sub000/internal/dto"
	"github.com/wipxap/TITANIUM-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. All DB() methods return nil so runTx executes
// the closure directly, without a database.

// ─── Cajas ───────────────────────────────────────────────────────────────────

type fakeCajaRepo struct {
	cajas  []*model.Caja
	ventas *fakeVentaRepo
}

func (f *fakeCajaRepo) Create(_ context.Context, c *model.Caja) error {
	for _, existente := range f.cajas {
		if existente.ClosedAt == nil {
			return gorm.ErrDuplicatedKey
		}
	}
	c.ID = uuid.New()
	f.cajas = append(f.cajas, c)
	return nil
}

func (f *fakeCajaRepo) FindAbierta(_ context.Context) (*model.Caja, error) {
	for _, c := range f.cajas {
		if c.ClosedAt == nil {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCajaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caja, error) {
	for _, c := range f.cajas {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCajaRepo) Update(_ context.Context, c *model.Caja) error {
	for i, existente := range f.cajas {
		if existente.ID == c.ID {
			f.cajas[i] = c
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCajaRepo) SumVentasPorMetodo(_ context.Context, cajaID uuid.UUID) (map[string]int64, error) {
	sums := map[string]int64{
		model.PagoCash:     0,
		model.PagoCard:     0,
		model.PagoWebpay:   0,
		model.PagoTransfer: 0,
	}
	if f.ventas == nil {
		return sums, nil
	}
	for _, v := range f.ventas.ventas {
		if v.CajaID != cajaID || v.Estado == model.VentaVoided {
			continue
		}
		sums[v.MetodoPago] += v.Total
	}
	return sums, nil
}

func (f *fakeCajaRepo) List(_ context.Context, page, limit int) ([]model.Caja, int64, error) {
	out := make([]model.Caja, 0, len(f.cajas))
	for _, c := range f.cajas {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

// ─── Ventas ──────────────────────────────────────────────────────────────────

type fakeVentaRepo struct {
	ventas []*model.Venta
	// dupRestantes makes the next N Creates fail with a unique violation, to
	// exercise the receipt retry loop.
	dupRestantes int
}

func (f *fakeVentaRepo) DB() *gorm.DB { return nil }

func (f *fakeVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if f.dupRestantes > 0 {
		f.dupRestantes--
		return gorm.ErrDuplicatedKey
	}
	for _, existente := range f.ventas {
		if existente.FechaBoleta == v.FechaBoleta && existente.SecuenciaBoleta == v.SecuenciaBoleta {
			return gorm.ErrDuplicatedKey
		}
	}
	v.ID = uuid.New()
	v.CreatedAt = time.Now()
	for i := range v.Items {
		v.Items[i].ID = uuid.New()
		v.Items[i].VentaID = v.ID
	}
	f.ventas = append(f.ventas, v)
	return nil
}

func (f *fakeVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	for _, v := range f.ventas {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVentaRepo) MaxSecuenciaDia(_ context.Context, _ *gorm.DB, fecha string) (int, error) {
	max := 0
	for _, v := range f.ventas {
		if v.FechaBoleta == fecha && v.SecuenciaBoleta > max {
			max = v.SecuenciaBoleta
		}
	}
	return max, nil
}

func (f *fakeVentaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	for _, v := range f.ventas {
		if v.ID == id {
			v.Estado = estado
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeVentaRepo) List(_ context.Context, filter dto.HistorialVentasFilter) ([]model.Venta, int64, error) {
	out := []model.Venta{}
	for _, v := range f.ventas {
		if filter.Status != "" && filter.Status != "all" && v.Estado != filter.Status {
			continue
		}
		if filter.PaymentMethod != "" && v.MetodoPago != filter.PaymentMethod {
			continue
		}
		if filter.FechaBoleta != "" && v.FechaBoleta != filter.FechaBoleta {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

// ─── Perfiles ────────────────────────────────────────────────────────────────

type fakePerfilRepo struct {
	perfiles []*model.Perfil
}

func (f *fakePerfilRepo) Create(_ context.Context, p *model.Perfil) error {
	p.ID = uuid.New()
	f.perfiles = append(f.perfiles, p)
	return nil
}

func (f *fakePerfilRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Perfil, error) {
	for _, p := range f.perfiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePerfilRepo) FindByUsuarioID(_ context.Context, usuarioID uuid.UUID) (*model.Perfil, error) {
	for _, p := range f.perfiles {
		if p.UsuarioID == usuarioID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePerfilRepo) Update(_ context.Context, p *model.Perfil) error { return nil }

// ─── Planes y productos ──────────────────────────────────────────────────────

type fakePlanRepo struct {
	planes []*model.Plan
}

func (f *fakePlanRepo) Create(_ context.Context, p *model.Plan) error {
	p.ID = uuid.New()
	f.planes = append(f.planes, p)
	return nil
}

func (f *fakePlanRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Plan, error) {
	for _, p := range f.planes {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePlanRepo) List(_ context.Context, incluirInactivos bool) ([]model.Plan, error) {
	out := []model.Plan{}
	for _, p := range f.planes {
		if p.Activo || incluirInactivos {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) Update(_ context.Context, p *model.Plan) error { return nil }

func (f *fakePlanRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	for _, p := range f.planes {
		if p.ID == id {
			p.Activo = false
		}
	}
	return nil
}

type fakeProductoRepo struct {
	productos []*model.Producto
}

func (f *fakeProductoRepo) Create(_ context.Context, p *model.Producto) error {
	p.ID = uuid.New()
	f.productos = append(f.productos, p)
	return nil
}

func (f *fakeProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	for _, p := range f.productos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductoRepo) List(_ context.Context, incluirInactivos bool) ([]model.Producto, error) {
	out := []model.Producto{}
	for _, p := range f.productos {
		if p.Activo || incluirInactivos {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductoRepo) Update(_ context.Context, p *model.Producto) error { return nil }

func (f *fakeProductoRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	for _, p := range f.productos {
		if p.ID == id {
			p.Activo = false
		}
	}
	return nil
}

// ─── Suscripciones ───────────────────────────────────────────────────────────

type fakeSuscripcionRepo struct {
	subs []*model.Suscripcion
}

func (f *fakeSuscripcionRepo) CreateTx(_ *gorm.DB, s *model.Suscripcion) error {
	s.ID = uuid.New()
	f.subs = append(f.subs, s)
	return nil
}

func (f *fakeSuscripcionRepo) UpdateTx(_ *gorm.DB, s *model.Suscripcion) error {
	for i, existente := range f.subs {
		if existente.ID == s.ID {
			f.subs[i] = s
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeSuscripcionRepo) FindActivaPorPerfil(_ context.Context, perfilID uuid.UUID) (*model.Suscripcion, error) {
	for _, s := range f.subs {
		if s.PerfilID == perfilID && s.Estado == model.SuscripcionActive {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSuscripcionRepo) FindUltimaPorPerfil(_ context.Context, perfilID uuid.UUID) (*model.Suscripcion, error) {
	var ultima *model.Suscripcion
	for _, s := range f.subs {
		if s.PerfilID != perfilID {
			continue
		}
		if ultima == nil || s.FechaFin.After(ultima.FechaFin) {
			ultima = s
		}
	}
	if ultima == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return ultima, nil
}

func (f *fakeSuscripcionRepo) FindPorVenta(_ context.Context, ventaID uuid.UUID) (*model.Suscripcion, error) {
	for _, s := range f.subs {
		if s.VentaID != nil && *s.VentaID == ventaID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ─── Descuentos ──────────────────────────────────────────────────────────────

type fakeDescuentoRepo struct {
	reglas []*model.DescuentoRenovacion
}

func (f *fakeDescuentoRepo) Create(_ context.Context, d *model.DescuentoRenovacion) error {
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	f.reglas = append(f.reglas, d)
	return nil
}

func (f *fakeDescuentoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.DescuentoRenovacion, error) {
	for _, d := range f.reglas {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDescuentoRepo) ListActivos(_ context.Context) ([]model.DescuentoRenovacion, error) {
	out := []model.DescuentoRenovacion{}
	for _, d := range f.reglas {
		if d.Activo {
			out = append(out, *d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Porcentaje.Equal(out[j].Porcentaje) {
			return out[i].Porcentaje.GreaterThan(out[j].Porcentaje)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeDescuentoRepo) List(_ context.Context) ([]model.DescuentoRenovacion, error) {
	out := make([]model.DescuentoRenovacion, 0, len(f.reglas))
	for _, d := range f.reglas {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDescuentoRepo) Update(_ context.Context, d *model.DescuentoRenovacion) error { return nil }

// ─── Anulaciones ─────────────────────────────────────────────────────────────

type fakeAnulacionRepo struct {
	solicitudes []*model.SolicitudAnulacion
	ventas      *fakeVentaRepo
}

func (f *fakeAnulacionRepo) DB() *gorm.DB { return nil }

func (f *fakeAnulacionRepo) CreateTx(_ *gorm.DB, s *model.SolicitudAnulacion) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	f.solicitudes = append(f.solicitudes, s)
	return nil
}

func (f *fakeAnulacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SolicitudAnulacion, error) {
	for _, s := range f.solicitudes {
		if s.ID == id {
			if f.ventas != nil {
				for _, v := range f.ventas.ventas {
					if v.ID == s.VentaID {
						s.Venta = v
					}
				}
			}
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAnulacionRepo) FindPendientePorVenta(_ context.Context, ventaID uuid.UUID) (*model.SolicitudAnulacion, error) {
	for _, s := range f.solicitudes {
		if s.VentaID == ventaID && s.Estado == model.AnulacionPending {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAnulacionRepo) UpdateTx(_ *gorm.DB, s *model.SolicitudAnulacion) error {
	for i, existente := range f.solicitudes {
		if existente.ID == s.ID {
			f.solicitudes[i] = s
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeAnulacionRepo) List(_ context.Context, filter dto.AnulacionFilter) ([]model.SolicitudAnulacion, int64, error) {
	out := []model.SolicitudAnulacion{}
	for _, s := range f.solicitudes {
		if filter.Status != "" && filter.Status != "all" && s.Estado != filter.Status {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

// ─── Asistencias ─────────────────────────────────────────────────────────────

type fakeAsistenciaRepo struct {
	asistencias []*model.Asistencia
}

func (f *fakeAsistenciaRepo) Create(_ context.Context, a *model.Asistencia) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	f.asistencias = append(f.asistencias, a)
	return nil
}

func (f *fakeAsistenciaRepo) ListPorPerfil(_ context.Context, perfilID uuid.UUID, limit int) ([]model.Asistencia, error) {
	out := []model.Asistencia{}
	for _, a := range f.asistencias {
		if a.PerfilID == perfilID {
			out = append(out, *a)
		}
	}
	return out, nil
}
