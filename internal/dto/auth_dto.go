package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	RUT      string `json:"rut"      validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CrearUsuarioRequest struct {
	RUT      string  `json:"rut"      validate:"required"`
	Nombre   string  `json:"nombre"   validate:"required"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Rol      string  `json:"rol"      validate:"required,oneof=socio recepcionista administrador"`
	// Perfil fields — only used when Rol is "socio"
	Objetivo string `json:"objetivo" validate:"omitempty,oneof=perdida_peso hipertrofia resistencia salud_general"`
	Nivel    string `json:"nivel"    validate:"omitempty,oneof=principiante intermedio avanzado"`
}

type ActualizarUsuarioRequest struct {
	Nombre   string  `json:"nombre"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password string  `json:"password" validate:"omitempty,min=6"`
	Rol      string  `json:"rol"      validate:"omitempty,oneof=socio recepcionista administrador"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID     string  `json:"id"`
	RUT    string  `json:"rut"`
	Nombre string  `json:"nombre"`
	Email  *string `json:"email"`
	Rol    string  `json:"rol"`
	Activo bool    `json:"activo"`
	// PerfilID is set for socios
	PerfilID *string `json:"perfil_id,omitempty"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}
