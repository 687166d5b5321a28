package dto

// RegisterRequest cuerpo de POST /api/auth/register.
type RegisterRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Name      string `json:"name" validate:"required,max=200"`
	Role      string `json:"role" validate:"required,oneof=admin manager employee"`
}

// LoginRequest cuerpo de POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserDTO usuario en respuestas. Nunca incluye el hash de contraseña.
type UserDTO struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

// LoginResponse token emitido más el usuario autenticado.
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
