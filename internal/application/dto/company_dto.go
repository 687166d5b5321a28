package dto

// CreateCompanyRequest cuerpo de POST /api/companies.
type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	TaxID   string `json:"tax_id" validate:"required,max=50"`
	Address string `json:"address" validate:"omitempty,max=300"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// UpdateCompanyRequest cuerpo de PUT /api/companies/:id.
type UpdateCompanyRequest struct {
	Name    string `json:"name" validate:"omitempty,max=200"`
	Address string `json:"address" validate:"omitempty,max=300"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
	Status  string `json:"status" validate:"omitempty,oneof=active suspended inactive"`
}

// CompanyDTO empresa en respuestas.
type CompanyDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Status  string `json:"status"`
}
