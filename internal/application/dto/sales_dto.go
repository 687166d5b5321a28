package dto

import "github.com/shopspring/decimal"

// CreateSaleRequest cuerpo de POST /api/sales. La venta nace en pending.
type CreateSaleRequest struct {
	ProductName string `json:"product_name" validate:"required,max=200"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	TotalAmount string `json:"total_amount" validate:"required"` // decimal como string
	Notes       string `json:"notes" validate:"omitempty,max=500"`
}

// UpdateSaleStatusRequest cuerpo de PATCH /api/sales/:id/status.
type UpdateSaleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress sold cancelled"`
}

// ListSalesRequest parámetros para GET /api/sales.
type ListSalesRequest struct {
	PageRequest
	SoldBy    string `query:"sold_by"`
	Status    string `query:"status" validate:"omitempty,oneof=pending in_progress sold cancelled"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// SaleDTO representación de salida de una venta.
type SaleDTO struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	SoldBy      string          `json:"sold_by"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   string          `json:"created_at"`
	SoldAt      string          `json:"sold_at,omitempty"`
}
