package dto

import "time"

// CreateUsuarioRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUsuarioRequest struct {
	Username    string   `json:"username" validate:"required,min=3,max=150"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	FirstName   string   `json:"first_name" validate:"max=150"`
	LastName    string   `json:"last_name" validate:"max=150"`
	IsSuperuser bool     `json:"is_superuser"`
	Grupos      []string `json:"grupos"`
}

// UsuarioResponse salida de un usuario (sin password).
type UsuarioResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Nombre      string     `json:"nombre"`
	IsActive    bool       `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// LoginRequest entrada para login; Login acepta username o email.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string          `json:"token"`
	User  UsuarioResponse `json:"user"`
}

// PerfilRequest edición del perfil propio.
type PerfilRequest struct {
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Email     string `json:"email" validate:"required,email"`
}

// CambiarPasswordRequest cambio de contraseña del usuario autenticado.
type CambiarPasswordRequest struct {
	Actual       string `json:"actual" validate:"required"`
	Nueva        string `json:"nueva" validate:"required,min=8"`
	Confirmacion string `json:"confirmacion" validate:"required,eqfield=Nueva"`
}

// SolicitarResetRequest inicio de recuperación de contraseña.
type SolicitarResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ConfirmarResetRequest fija la nueva contraseña con el token recibido por correo.
type ConfirmarResetRequest struct {
	Token        string `json:"token" validate:"required"`
	Nueva        string `json:"nueva" validate:"required,min=8"`
	Confirmacion string `json:"confirmacion" validate:"required,eqfield=Nueva"`
}

// AppResponse módulo instalado visible para el usuario.
type AppResponse struct {
	Nombre string `json:"nombre"`
	Titulo string `json:"titulo"`
}
