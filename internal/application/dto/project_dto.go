package dto

import "github.com/shopspring/decimal"

// CreateProjectRequest cuerpo de POST /api/projects.
type CreateProjectRequest struct {
	ClientID    string `json:"client_id" validate:"omitempty"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	StartDate   string `json:"start_date" validate:"omitempty"` // YYYY-MM-DD
	EndDate     string `json:"end_date" validate:"omitempty"`
	Budget      string `json:"budget" validate:"omitempty"` // decimal como string
}

// UpdateProjectRequest cuerpo de PUT /api/projects/:id.
type UpdateProjectRequest struct {
	Name        string `json:"name" validate:"omitempty,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Status      string `json:"status" validate:"omitempty,oneof=planned active on_hold done cancelled"`
	StartDate   string `json:"start_date" validate:"omitempty"`
	EndDate     string `json:"end_date" validate:"omitempty"`
	Budget      string `json:"budget" validate:"omitempty"`
}

// ListProjectsRequest parámetros para GET /api/projects.
type ListProjectsRequest struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,oneof=planned active on_hold done cancelled"`
}

// ProjectDTO proyecto en respuestas.
type ProjectDTO struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	StartDate   string          `json:"start_date,omitempty"`
	EndDate     string          `json:"end_date,omitempty"`
	Budget      decimal.Decimal `json:"budget"`
}
