package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wipxap/TITANIUM-sub000/internal/apierror"
	"github.com/wipxap/TITANIUM-sub000/internal/config"
	"github.com/wipxap/TITANIUM-sub000/internal/dto"
	"github.com/wipxap/TITANIUM-sub000/internal/middleware"
	"github.com/wipxap/TITANIUM-sub000/internal/model"
	"github.com/wipxap/TITANIUM-sub000/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error)

	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	DesactivarUsuario(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	usuarios repository.UsuarioRepository
	perfiles repository.PerfilRepository
	cfg      *config.Config
}

func NewAuthService(usuarios repository.UsuarioRepository, perfiles repository.PerfilRepository, cfg *config.Config) AuthService {
	return &authService{usuarios: usuarios, perfiles: perfiles, cfg: cfg}
}

// normalizarRUT strips dots and uppercases the verifier digit, so
// "12.345.678-k" and "12345678-K" hit the same row.
func normalizarRUT(rut string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(rut), ".", ""))
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := s.usuarios.FindByRUT(ctx, normalizarRUT(req.RUT))
	if err != nil || !usuario.Activo {
		// Same message for unknown RUT and wrong password
		return nil, apierror.Validacion("credenciales inválidas")
	}
	if bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(req.Password)) != nil {
		return nil, apierror.Validacion("credenciales inválidas")
	}
	return s.emitirTokens(ctx, usuario)
}

func (s *authService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error) {
	claims := &middleware.JWTClaims{}
	token, err := jwt.ParseWithClaims(req.RefreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.Validacion("refresh token inválido o expirado")
	}

	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apierror.Validacion("refresh token inválido o expirado")
	}
	usuario, err := s.usuarios.FindByID(ctx, usuarioID)
	if err != nil || !usuario.Activo {
		return nil, apierror.Validacion("refresh token inválido o expirado")
	}
	return s.emitirTokens(ctx, usuario)
}

func (s *authService) emitirTokens(ctx context.Context, usuario *model.Usuario) (*dto.LoginResponse, error) {
	access, err := s.firmarToken(usuario, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.firmarToken(usuario, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	resp := &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         *s.toUsuarioResponse(ctx, usuario),
	}
	return resp, nil
}

func (s *authService) firmarToken(usuario *model.Usuario, vigencia time.Duration) (string, error) {
	now := time.Now()
	claims := middleware.JWTClaims{
		UserID: usuario.ID.String(),
		RUT:    usuario.RUT,
		Rol:    usuario.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(vigencia)),
			Subject:   usuario.ID.String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	rut := normalizarRUT(req.RUT)
	if _, err := s.usuarios.FindByRUT(ctx, rut); err == nil {
		return nil, apierror.Conflicto("ya existe un usuario con ese RUT")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	usuario := &model.Usuario{
		RUT:          rut,
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Activo:       true,
	}
	if err := s.usuarios.Create(ctx, usuario); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflicto("ya existe un usuario con ese RUT")
		}
		return nil, err
	}

	// Socios get a training profile; staff accounts don't.
	if req.Rol == model.RolSocio {
		perfil := &model.Perfil{
			UsuarioID: usuario.ID,
			Email:     req.Email,
		}
		if req.Objetivo != "" {
			perfil.Objetivo = req.Objetivo
		}
		if req.Nivel != "" {
			perfil.Nivel = req.Nivel
		}
		if err := s.perfiles.Create(ctx, perfil); err != nil {
			return nil, err
		}
	}
	return s.toUsuarioResponse(ctx, usuario), nil
}

func (s *authService) ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error) {
	var (
		usuarios []model.Usuario
		err      error
	)
	if incluirInactivos {
		usuarios, err = s.usuarios.ListAll(ctx)
	} else {
		usuarios, err = s.usuarios.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		resp = append(resp, *s.toUsuarioResponse(ctx, &usuarios[i]))
	}
	return resp, nil
}

func (s *authService) ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("usuario no encontrado")
	}
	if req.Nombre != "" {
		usuario.Nombre = req.Nombre
	}
	if req.Email != nil {
		usuario.Email = req.Email
	}
	if req.Rol != "" {
		usuario.Rol = req.Rol
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		usuario.PasswordHash = string(hash)
	}
	if err := s.usuarios.Update(ctx, usuario); err != nil {
		return nil, err
	}
	return s.toUsuarioResponse(ctx, usuario), nil
}

func (s *authService) DesactivarUsuario(ctx context.Context, id uuid.UUID) error {
	if _, err := s.usuarios.FindByID(ctx, id); err != nil {
		return apierror.NoEncontrado("usuario no encontrado")
	}
	return s.usuarios.SoftDelete(ctx, id)
}

func (s *authService) toUsuarioResponse(ctx context.Context, u *model.Usuario) *dto.UsuarioResponse {
	resp := &dto.UsuarioResponse{
		ID:     u.ID.String(),
		RUT:    u.RUT,
		Nombre: u.Nombre,
		Email:  u.Email,
		Rol:    u.Rol,
		Activo: u.Activo,
	}
	if u.Rol == model.RolSocio {
		if perfil, err := s.perfiles.FindByUsuarioID(ctx, u.ID); err == nil {
			id := perfil.ID.String()
			resp.PerfilID = &id
		}
	}
	return resp
}
