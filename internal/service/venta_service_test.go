package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/wipxap/TITANIUM-sub000/internal/apierror"
	"github.com/wipxap/TITANIUM-sub000/internal/config"
	"github.com/wipxap/TITANIUM-sub000/internal/dto"
	"github.com/wipxap/TITANIUM-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ventaFixture struct {
	cajas         *fakeCajaRepo
	ventas        *fakeVentaRepo
	perfiles      *fakePerfilRepo
	planes        *fakePlanRepo
	productos     *fakeProductoRepo
	suscripciones *fakeSuscripcionRepo
	descuentos    *fakeDescuentoRepo
	svc           VentaService
}

func nuevaVentaFixture(t *testing.T) *ventaFixture {
	t.Helper()
	ventas := &fakeVentaRepo{}
	f := &ventaFixture{
		cajas:         &fakeCajaRepo{ventas: ventas},
		ventas:        ventas,
		perfiles:      &fakePerfilRepo{},
		planes:        &fakePlanRepo{},
		productos:     &fakeProductoRepo{},
		suscripciones: &fakeSuscripcionRepo{},
		descuentos:    &fakeDescuentoRepo{},
	}
	cfg := &config.Config{BoletaPrefijo: "TI", PDFStoragePath: t.TempDir()}
	cajaSvc := NewCajaService(f.cajas)
	descSvc := NewDescuentoService(f.descuentos, f.suscripciones)
	f.svc = NewVentaService(f.ventas, cajaSvc, f.perfiles, f.planes, f.productos, f.suscripciones, descSvc, nil, cfg)
	return f
}

func (f *ventaFixture) abrirCaja(t *testing.T) {
	t.Helper()
	_, err := NewCajaService(f.cajas).Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{InitialAmount: 10000})
	require.NoError(t, err)
}

func (f *ventaFixture) conProducto(precio int64) *model.Producto {
	p := &model.Producto{ID: uuid.New(), Nombre: "Bebida isotónica", Precio: precio, Activo: true}
	f.productos.productos = append(f.productos.productos, p)
	return p
}

func (f *ventaFixture) conPlan(precio int64, dias int) *model.Plan {
	p := &model.Plan{ID: uuid.New(), Nombre: "Plan Mensual", Precio: precio, DuracionDias: dias, Activo: true}
	f.planes.planes = append(f.planes.planes, p)
	return p
}

func (f *ventaFixture) conSocio() (usuarioID uuid.UUID, perfil *model.Perfil) {
	usuarioID = uuid.New()
	perfil = &model.Perfil{ID: uuid.New(), UsuarioID: usuarioID}
	f.perfiles.perfiles = append(f.perfiles.perfiles, perfil)
	return usuarioID, perfil
}

func TestCrearVentaCajaCerrada(t *testing.T) {
	f := nuevaVentaFixture(t)
	producto := f.conProducto(1500)

	_, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearVentaRequest{
		Items:         []dto.ItemVentaRequest{{Type: "product", ID: producto.ID.String(), Quantity: 1}},
		PaymentMethod: model.PagoCash,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apierror.ErrConflicto)
}

func TestCrearVentaNumeracionBoleta(t *testing.T) {
	f := nuevaVentaFixture(t)
	f.abrirCaja(t)
	producto := f.conProducto(1500)
	ctx := context.Background()

	hoy := fechaBoleta(time.Now())
	for i := 1; i <= 3; i++ {
		resp, err := f.svc.Crear(ctx, uuid.New(), dto.CrearVentaRequest{
			Items:         []dto.ItemVentaRequest{{Type: "product", ID: producto.ID.String(), Quantity: 1}},
			PaymentMethod: model.PagoCash,
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("TI-%s-%04d", hoy, i), resp.ReceiptNumber)
	}
}

func TestCrearVentaReintentaBoletaDuplicada(t *testing.T) {
	f := nuevaVentaFixture(t)
	f.abrirCaja(t)
	producto := f.conProducto(1500)
	f.ventas.dupRestantes = 1 // first insert collides, retry must win

	resp, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearVentaRequest{
		Items:         []dto.ItemVentaRequest{{Type: "product", ID: producto.ID.String(), Quantity: 1}},
		PaymentMethod: model.PagoCash,
	})
	require.NoError(t, err)
	assert.Contains(t, resp.ReceiptNumber, "-0001")
}

func TestCrearVentaPreciosDelServidor(t *testing.T) {
	f := nuevaVentaFixture(t)
	f.abrirCaja(t)
	producto := f.conProducto(1500)

	resp, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearVentaRequest{
		Items:         []dto.ItemVentaRequest{{Type: "product", ID: producto.ID.String(), Quantity: 2}},
		PaymentMethod: model.PagoCard,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(1500), resp.Items[0].UnitPrice)
	assert.Equal(t, int64(3000), resp.Items[0].Subtotal)
	assert.Equal(t, model.VentaCompleted, resp.Status)
}

func TestCrearVentaProductoInactivo(t *testing.T) {
	f := nuevaVentaFixture(t)
	f.abrirCaja(t)
	producto := f.conProducto(1500)
	producto.Activo = false

	_, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearVentaRequest{
		Items:         []dto.ItemVentaRequest{{Type: "product", ID: producto.ID.String(), Quantity: 1}},
		PaymentMethod: model.PagoCash,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestCrearVentaPlanSinSocio(t *testing.T) {
	f := nuevaVentaFixture(t)
	f.abrirCaja(t)
	plan := f.conPlan(30000, 30)

	_, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearVentaRequest{
		Items:         []dto.ItemVentaRequest{{Type: "plan", ID: plan.ID.String(), Quantity: 1}},
		PaymentMethod: model.PagoCash,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestCrearVentaPlanNuevaSuscripcion(t *testing.T) {
	f := nuevaVentaFixture(t)
	f.abrirCaja(t)
	plan := f.conPlan(30000, 30)
	usuarioID, perfil := f.conSocio()
	userID := usuarioID.String()

	resp, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearVentaRequest{
		UserID:        &userID,
		Items:         []dto.ItemVentaRequest{{Type: "plan", ID: plan.ID.String(), Quantity: 1}},
		PaymentMethod: model.PagoWebpay,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Subscription)
	assert.False(t, resp.Subscription.Renewed)
	assert.Equal(t, model.SuscripcionActive, resp.Subscription.Status)
	assert.Equal(t, int64(30000), resp.Total)
	assert.Nil(t, resp.Discount)

	require.Len(t, f.suscripciones.subs, 1)
	sub := f.suscripciones.subs[0]
	assert.Equal(t, perfil.ID, sub.PerfilID)
	require.NotNil(t, sub.VentaID)
	esperado := time.Now().AddDate(0, 0, 30)
	assert.WithinDuration(t, esperado, sub.FechaFin, time.Minute)
}

func TestCrearVentaRenovacionConDescuento(t *testing.T) {
	f := nuevaVentaFixture(t)
	f.abrirCaja(t)
	plan := f.conPlan(30000, 30)
	usuarioID, perfil := f.conSocio()
	userID := usuarioID.String()

	// Active subscription expiring in 5 days
	finActual := time.Now().AddDate(0, 0, 5)
	f.suscripciones.subs = append(f.suscripciones.subs, &model.Suscripcion{
		ID:          uuid.New(),
		PerfilID:    perfil.ID,
		PlanID:      plan.ID,
		Estado:      model.SuscripcionActive,
		FechaInicio: time.Now().AddDate(0, 0, -25),
		FechaFin:    finActual,
	})
	// 10% when renewing within 7 days of expiry
	f.descuentos.reglas = append(f.descuentos.reglas, &model.DescuentoRenovacion{
		ID:         uuid.New(),
		Nombre:     "Renovación anticipada",
		Porcentaje: decimal.NewFromInt(10),
		Condicion:  model.DescuentoPorVencer,
		DiasAntes:  7,
		Activo:     true,
	})

	resp, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearVentaRequest{
		UserID:        &userID,
		Items:         []dto.ItemVentaRequest{{Type: "plan", ID: plan.ID.String(), Quantity: 1}},
		PaymentMethod: model.PagoCash,
	})
	require.NoError(t, err)

	// 30000 - 10% = 27000, frozen on the line and the total
	assert.Equal(t, int64(27000), resp.Total)
	require.NotNil(t, resp.Discount)
	assert.True(t, decimal.NewFromInt(10).Equal(resp.Discount.DiscountPercent))

	// The active subscription was extended, not replaced
	require.NotNil(t, resp.Subscription)
	assert.True(t, resp.Subscription.Renewed)
	require.Len(t, f.suscripciones.subs, 1)
	sub := f.suscripciones.subs[0]
	assert.WithinDuration(t, finActual.AddDate(0, 0, 30), sub.FechaFin, time.Minute)
}

func TestCrearVentaMixtaDescuentoSoloAlPlan(t *testing.T) {
	f := nuevaVentaFixture(t)
	f.abrirCaja(t)
	plan := f.conPlan(30000, 30)
	producto := f.conProducto(2000)
	usuarioID, perfil := f.conSocio()
	userID := usuarioID.String()

	f.suscripciones.subs = append(f.suscripciones.subs, &model.Suscripcion{
		ID:       uuid.New(),
		PerfilID: perfil.ID,
		PlanID:   plan.ID,
		Estado:   model.SuscripcionActive,
		FechaFin: time.Now().AddDate(0, 0, 3),
	})
	f.descuentos.reglas = append(f.descuentos.reglas, &model.DescuentoRenovacion{
		ID:         uuid.New(),
		Nombre:     "Renovación anticipada",
		Porcentaje: decimal.NewFromInt(10),
		Condicion:  model.DescuentoPorVencer,
		DiasAntes:  7,
		Activo:     true,
	})

	resp, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearVentaRequest{
		UserID: &userID,
		Items: []dto.ItemVentaRequest{
			{Type: "plan", ID: plan.ID.String(), Quantity: 1},
			{Type: "product", ID: producto.ID.String(), Quantity: 2},
		},
		PaymentMethod: model.PagoCash,
	})
	require.NoError(t, err)
	// Plan discounted to 27000; products at list price
	assert.Equal(t, int64(27000+4000), resp.Total)
}

func TestCrearVentaDosPlanes(t *testing.T) {
	f := nuevaVentaFixture(t)
	f.abrirCaja(t)
	plan := f.conPlan(30000, 30)
	usuarioID, _ := f.conSocio()
	userID := usuarioID.String()

	_, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearVentaRequest{
		UserID: &userID,
		Items: []dto.ItemVentaRequest{
			{Type: "plan", ID: plan.ID.String(), Quantity: 1},
			{Type: "plan", ID: plan.ID.String(), Quantity: 1},
		},
		PaymentMethod: model.PagoCash,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestPrecioCongeladoTrasCambioDeCatalogo(t *testing.T) {
	f := nuevaVentaFixture(t)
	f.abrirCaja(t)
	producto := f.conProducto(1500)
	ctx := context.Background()

	resp, err := f.svc.Crear(ctx, uuid.New(), dto.CrearVentaRequest{
		Items:         []dto.ItemVentaRequest{{Type: "product", ID: producto.ID.String(), Quantity: 1}},
		PaymentMethod: model.PagoCash,
	})
	require.NoError(t, err)

	// Catalog price changes afterwards; the stored sale must not move
	producto.Precio = 9900

	ventaID := uuid.MustParse(resp.ID)
	releida, err := f.svc.Obtener(ctx, ventaID)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), releida.Total)
	assert.Equal(t, int64(1500), releida.Items[0].UnitPrice)
}

func TestHistorialCortaPorDiaDeBoleta(t *testing.T) {
	f := nuevaVentaFixture(t)
	f.abrirCaja(t)
	producto := f.conProducto(1500)
	ctx := context.Background()

	_, err := f.svc.Crear(ctx, uuid.New(), dto.CrearVentaRequest{
		Items:         []dto.ItemVentaRequest{{Type: "product", ID: producto.ID.String(), Quantity: 1}},
		PaymentMethod: model.PagoCash,
	})
	require.NoError(t, err)

	// Una venta del día de boleta anterior, insertada por detrás del servicio
	ayer := time.Now().In(zonaChile).AddDate(0, 0, -1)
	fechaAyer := fechaBoleta(ayer)
	f.ventas.ventas = append(f.ventas.ventas, &model.Venta{
		ID:              uuid.New(),
		NumeroBoleta:    "TI-" + fechaAyer + "-0001",
		FechaBoleta:     fechaAyer,
		SecuenciaBoleta: 1,
		Estado:          model.VentaCompleted,
		MetodoPago:      model.PagoCash,
	})

	hoy, err := f.svc.Historial(ctx, dto.HistorialVentasFilter{Page: 1, Limit: 50})
	require.NoError(t, err)
	require.Len(t, hoy.Data, 1)
	assert.Contains(t, hoy.Data[0].ReceiptNumber, fechaBoleta(time.Now()))

	deAyer, err := f.svc.Historial(ctx, dto.HistorialVentasFilter{
		Fecha: ayer.Format("2006-01-02"),
		Page:  1,
		Limit: 50,
	})
	require.NoError(t, err)
	require.Len(t, deAyer.Data, 1)
	assert.Equal(t, "TI-"+fechaAyer+"-0001", deAyer.Data[0].ReceiptNumber)
}

func TestHistorialFechaInvalida(t *testing.T) {
	f := nuevaVentaFixture(t)

	_, err := f.svc.Historial(context.Background(), dto.HistorialVentasFilter{Fecha: "31-08-2026", Page: 1, Limit: 50})
	require.Error(t, err)
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}
