package dto

import "github.com/shopspring/decimal"

// CreateInvoiceItemRequest una línea de la factura a crear.
type CreateInvoiceItemRequest struct {
	Description string `json:"description" validate:"required,max=300"`
	Quantity    string `json:"quantity" validate:"required"`   // decimal como string
	UnitPrice   string `json:"unit_price" validate:"required"` // decimal como string
	TaxRate     string `json:"tax_rate" validate:"omitempty"`  // porcentaje; vacío = 0
}

// CreateInvoiceRequest cuerpo de POST /api/invoices.
// Los totales se calculan en el servidor; jamás se aceptan del cliente.
type CreateInvoiceRequest struct {
	ClientID  string                     `json:"client_id" validate:"required"`
	IssueDate string                     `json:"issue_date" validate:"omitempty"` // YYYY-MM-DD; vacío = hoy
	DueDate   string                     `json:"due_date" validate:"omitempty"`
	Items     []CreateInvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateInvoiceStatusRequest cuerpo de PATCH /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft pending approved sent paid cancelled"`
}

// ListInvoicesRequest parámetros para GET /api/invoices.
type ListInvoicesRequest struct {
	PageRequest
	ClientID  string `query:"client_id"`
	Status    string `query:"status" validate:"omitempty,oneof=draft pending approved sent paid cancelled"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// InvoiceItemDTO línea de la factura en respuestas.
type InvoiceItemDTO struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// InvoiceDTO factura completa en respuestas.
type InvoiceDTO struct {
	ID         string           `json:"id"`
	CompanyID  string           `json:"company_id"`
	CreatedBy  string           `json:"created_by"`
	ClientID   string           `json:"client_id"`
	Number     string           `json:"number"`
	Status     string           `json:"status"`
	Subtotal   decimal.Decimal  `json:"subtotal"`
	TaxTotal   decimal.Decimal  `json:"tax_total"`
	GrandTotal decimal.Decimal  `json:"grand_total"`
	IssueDate  string           `json:"issue_date"`
	DueDate    string           `json:"due_date,omitempty"`
	Items      []InvoiceItemDTO `json:"items,omitempty"`
}
