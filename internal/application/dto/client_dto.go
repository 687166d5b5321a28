package dto

// CreateClientRequest cuerpo de POST /api/clients.
type CreateClientRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	ContactName string `json:"contact_name" validate:"omitempty,max=200"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	Address     string `json:"address" validate:"omitempty,max=300"`
}

// UpdateClientRequest cuerpo de PUT /api/clients/:id.
type UpdateClientRequest struct {
	Name        string `json:"name" validate:"omitempty,max=200"`
	ContactName string `json:"contact_name" validate:"omitempty,max=200"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	Address     string `json:"address" validate:"omitempty,max=300"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ClientDTO cliente en respuestas.
type ClientDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Status      string `json:"status"`
}
