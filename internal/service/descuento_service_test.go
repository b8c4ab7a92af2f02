package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wipxap/TITANIUM-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regla(nombre string, pct int64, condicion string, diasAntes, diasDespues int) *model.DescuentoRenovacion {
	return &model.DescuentoRenovacion{
		ID:          uuid.New(),
		Nombre:      nombre,
		Porcentaje:  decimal.NewFromInt(pct),
		Condicion:   condicion,
		DiasAntes:   diasAntes,
		DiasDespues: diasDespues,
		Activo:      true,
		CreatedAt:   time.Now(),
	}
}

func fixtureResolver(subs *fakeSuscripcionRepo, reglas ...*model.DescuentoRenovacion) DescuentoService {
	repo := &fakeDescuentoRepo{reglas: reglas}
	return NewDescuentoService(repo, subs)
}

func suscripcionQueVence(perfilID uuid.UUID, dias int) *model.Suscripcion {
	return &model.Suscripcion{
		ID:       uuid.New(),
		PerfilID: perfilID,
		Estado:   model.SuscripcionActive,
		FechaFin: time.Now().Add(time.Duration(dias) * 24 * time.Hour),
	}
}

// suscripcionesCaidas simula un repositorio cuya consulta de suscripciones
// falla (conexión perdida, timeout).
type suscripcionesCaidas struct {
	fakeSuscripcionRepo
	err error
}

func (f *suscripcionesCaidas) FindUltimaPorPerfil(context.Context, uuid.UUID) (*model.Suscripcion, error) {
	return nil, f.err
}

func TestResolverSinSuscripcion(t *testing.T) {
	svc := fixtureResolver(&fakeSuscripcionRepo{}, regla("x", 10, model.DescuentoPorVencer, 7, 0))

	resp, err := svc.Resolver(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, resp.DiscountPercent.IsZero())
	assert.Nil(t, resp.DiscountName)
	assert.Nil(t, resp.DiscountID)
}

func TestResolverPropagaErrorDeRepositorio(t *testing.T) {
	subs := &suscripcionesCaidas{err: errors.New("driver: bad connection")}
	svc := NewDescuentoService(&fakeDescuentoRepo{reglas: []*model.DescuentoRenovacion{
		regla("x", 10, model.DescuentoPorVencer, 7, 0),
	}}, subs)

	resp, err := svc.Resolver(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorContains(t, err, "bad connection")
	assert.Nil(t, resp)
}

func TestResolverPorVencerDentroDeVentana(t *testing.T) {
	perfilID := uuid.New()
	subs := &fakeSuscripcionRepo{subs: []*model.Suscripcion{suscripcionQueVence(perfilID, 5)}}
	svc := fixtureResolver(subs, regla("Renovación anticipada", 10, model.DescuentoPorVencer, 7, 0))

	resp, err := svc.Resolver(context.Background(), perfilID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(resp.DiscountPercent))
	require.NotNil(t, resp.DiscountName)
	assert.Equal(t, "Renovación anticipada", *resp.DiscountName)
}

func TestResolverFueraDeVentana(t *testing.T) {
	perfilID := uuid.New()
	subs := &fakeSuscripcionRepo{subs: []*model.Suscripcion{suscripcionQueVence(perfilID, 10)}}
	svc := fixtureResolver(subs, regla("Renovación anticipada", 10, model.DescuentoPorVencer, 7, 0))

	resp, err := svc.Resolver(context.Background(), perfilID)
	require.NoError(t, err)
	assert.True(t, resp.DiscountPercent.IsZero())
}

func TestResolverVencidaDentroDeGracia(t *testing.T) {
	perfilID := uuid.New()
	// Expired 3 days ago
	subs := &fakeSuscripcionRepo{subs: []*model.Suscripcion{suscripcionQueVence(perfilID, -3)}}
	svc := fixtureResolver(subs, regla("Reenganche", 20, model.DescuentoVencida, 0, 5))

	resp, err := svc.Resolver(context.Background(), perfilID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(resp.DiscountPercent))
}

func TestResolverVencidaFueraDeGracia(t *testing.T) {
	perfilID := uuid.New()
	subs := &fakeSuscripcionRepo{subs: []*model.Suscripcion{suscripcionQueVence(perfilID, -10)}}
	svc := fixtureResolver(subs, regla("Reenganche", 20, model.DescuentoVencida, 0, 5))

	resp, err := svc.Resolver(context.Background(), perfilID)
	require.NoError(t, err)
	assert.True(t, resp.DiscountPercent.IsZero())
}

func TestResolverGanaElMayorPorcentaje(t *testing.T) {
	perfilID := uuid.New()
	subs := &fakeSuscripcionRepo{subs: []*model.Suscripcion{suscripcionQueVence(perfilID, 2)}}
	svc := fixtureResolver(subs,
		regla("Chico", 10, model.DescuentoPorVencer, 7, 0),
		regla("Grande", 15, model.DescuentoPorVencer, 3, 0),
	)

	resp, err := svc.Resolver(context.Background(), perfilID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(15).Equal(resp.DiscountPercent))
	assert.Equal(t, "Grande", *resp.DiscountName)
}

func TestResolverIgnoraReglasInactivas(t *testing.T) {
	perfilID := uuid.New()
	subs := &fakeSuscripcionRepo{subs: []*model.Suscripcion{suscripcionQueVence(perfilID, 2)}}
	inactiva := regla("Apagada", 50, model.DescuentoPorVencer, 7, 0)
	inactiva.Activo = false
	svc := fixtureResolver(subs, inactiva, regla("Vigente", 10, model.DescuentoPorVencer, 7, 0))

	resp, err := svc.Resolver(context.Background(), perfilID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(resp.DiscountPercent))
}

func TestResolverAnclaEnUltimaSuscripcion(t *testing.T) {
	perfilID := uuid.New()
	// An old cancelled subscription long expired, plus a recent one in window:
	// the resolver must anchor on the latest by end date.
	vieja := suscripcionQueVence(perfilID, -400)
	vieja.Estado = model.SuscripcionCancelled
	reciente := suscripcionQueVence(perfilID, 4)
	subs := &fakeSuscripcionRepo{subs: []*model.Suscripcion{vieja, reciente}}
	svc := fixtureResolver(subs, regla("Renovación anticipada", 10, model.DescuentoPorVencer, 7, 0))

	resp, err := svc.Resolver(context.Background(), perfilID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(resp.DiscountPercent))
}

func TestAplicarPorcentaje(t *testing.T) {
	assert.Equal(t, int64(27000), AplicarPorcentaje(30000, decimal.NewFromInt(10)))
	assert.Equal(t, int64(30000), AplicarPorcentaje(30000, decimal.Zero))
	// Rounds to the nearest whole peso
	assert.Equal(t, int64(669), AplicarPorcentaje(999, decimal.NewFromInt(33)))
}

func TestDiasHastaVencimiento(t *testing.T) {
	ahora := time.Now()
	assert.Equal(t, 5, diasHastaVencimiento(ahora.Add(5*24*time.Hour), ahora))
	// Partial days round up: expiring in 12 hours still counts as 1 day out
	assert.Equal(t, 1, diasHastaVencimiento(ahora.Add(12*time.Hour), ahora))
	assert.Equal(t, 0, diasHastaVencimiento(ahora, ahora))
	assert.Equal(t, -3, diasHastaVencimiento(ahora.Add(-3*24*time.Hour), ahora))
}
