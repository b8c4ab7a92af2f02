package service

import (
	"context"
	"testing"

	"github.com/wipxap/TITANIUM-sub000/internal/apierror"
	"github.com/wipxap/TITANIUM-sub000/internal/config"
	"github.com/wipxap/TITANIUM-sub000/internal/dto"
	"github.com/wipxap/TITANIUM-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUsuarioRepo struct {
	usuarios []*model.Usuario
}

func (f *fakeUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	for _, existente := range f.usuarios {
		if existente.RUT == u.RUT {
			return gorm.ErrDuplicatedKey
		}
	}
	u.ID = uuid.New()
	f.usuarios = append(f.usuarios, u)
	return nil
}

func (f *fakeUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	for _, u := range f.usuarios {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsuarioRepo) FindByRUT(_ context.Context, rut string) (*model.Usuario, error) {
	for _, u := range f.usuarios {
		if u.RUT == rut {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := []model.Usuario{}
	for _, u := range f.usuarios {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	out := []model.Usuario{}
	for _, u := range f.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsuarioRepo) Update(_ context.Context, u *model.Usuario) error { return nil }

func (f *fakeUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	for _, u := range f.usuarios {
		if u.ID == id {
			u.Activo = false
		}
	}
	return nil
}

func (f *fakeUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error { return nil }

func authFixture() (*fakeUsuarioRepo, *fakePerfilRepo, AuthService) {
	usuarios := &fakeUsuarioRepo{}
	perfiles := &fakePerfilRepo{}
	cfg := &config.Config{JWTSecret: "secreto-de-prueba", JWTExpirationHours: 8, JWTRefreshHours: 24}
	return usuarios, perfiles, NewAuthService(usuarios, perfiles, cfg)
}

func conUsuario(usuarios *fakeUsuarioRepo, rut, password, rol string) *model.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.Usuario{
		ID:           uuid.New(),
		RUT:          rut,
		Nombre:       "Usuario Prueba",
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
	}
	usuarios.usuarios = append(usuarios.usuarios, u)
	return u
}

func TestLogin(t *testing.T) {
	usuarios, _, svc := authFixture()
	conUsuario(usuarios, "12345678-5", "secreta123", model.RolRecepcionista)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{RUT: "12345678-5", Password: "secreta123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, model.RolRecepcionista, resp.User.Rol)
}

func TestLoginNormalizaRUT(t *testing.T) {
	usuarios, _, svc := authFixture()
	conUsuario(usuarios, "12345678-K", "secreta123", model.RolSocio)

	_, err := svc.Login(context.Background(), dto.LoginRequest{RUT: "12.345.678-k", Password: "secreta123"})
	require.NoError(t, err)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	usuarios, _, svc := authFixture()
	conUsuario(usuarios, "12345678-5", "secreta123", model.RolSocio)
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginRequest{RUT: "12345678-5", Password: "equivocada"})
	assert.ErrorIs(t, err, apierror.ErrValidacion)

	_, err = svc.Login(ctx, dto.LoginRequest{RUT: "99999999-9", Password: "secreta123"})
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestLoginUsuarioInactivo(t *testing.T) {
	usuarios, _, svc := authFixture()
	u := conUsuario(usuarios, "12345678-5", "secreta123", model.RolSocio)
	u.Activo = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{RUT: "12345678-5", Password: "secreta123"})
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestRefresh(t *testing.T) {
	usuarios, _, svc := authFixture()
	conUsuario(usuarios, "12345678-5", "secreta123", model.RolAdministrador)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{RUT: "12345678-5", Password: "secreta123"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)

	_, err = svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: "no-es-un-token"})
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestCrearUsuarioSocioCreaPerfil(t *testing.T) {
	_, perfiles, svc := authFixture()

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		RUT:      "11111111-1",
		Nombre:   "Socio Nuevo",
		Password: "secreta123",
		Rol:      model.RolSocio,
		Objetivo: "hipertrofia",
		Nivel:    "intermedio",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PerfilID)
	require.Len(t, perfiles.perfiles, 1)
	assert.Equal(t, "hipertrofia", perfiles.perfiles[0].Objetivo)
}

func TestCrearUsuarioStaffNoCreaPerfil(t *testing.T) {
	_, perfiles, svc := authFixture()

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		RUT:      "22222222-2",
		Nombre:   "Recep",
		Password: "secreta123",
		Rol:      model.RolRecepcionista,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.PerfilID)
	assert.Empty(t, perfiles.perfiles)
}

func TestCrearUsuarioRUTDuplicado(t *testing.T) {
	usuarios, _, svc := authFixture()
	conUsuario(usuarios, "12345678-5", "secreta123", model.RolSocio)

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		RUT:      "12.345.678-5",
		Nombre:   "Repetido",
		Password: "secreta123",
		Rol:      model.RolSocio,
	})
	assert.ErrorIs(t, err, apierror.ErrConflicto)
}
