package dto

// CreateDeliveryRequest cuerpo de POST /api/deliveries.
type CreateDeliveryRequest struct {
	InvoiceID string `json:"invoice_id" validate:"omitempty"`
	Address   string `json:"address" validate:"required,max=300"`
	Notes     string `json:"notes" validate:"omitempty,max=500"`
}

// AssignDeliveryRequest cuerpo de PATCH /api/deliveries/:id/assign.
type AssignDeliveryRequest struct {
	AssignedTo string `json:"assigned_to" validate:"required"`
}

// UpdateDeliveryStatusRequest cuerpo de PATCH /api/deliveries/:id/status.
type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=assigned in_transit delivered failed"`
	Notes  string `json:"notes" validate:"omitempty,max=500"`
}

// ListDeliveriesRequest parámetros para GET /api/deliveries.
type ListDeliveriesRequest struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,oneof=pending assigned in_transit delivered failed"`
}

// DeliveryDTO entrega en respuestas.
type DeliveryDTO struct {
	ID          string `json:"id"`
	InvoiceID   string `json:"invoice_id,omitempty"`
	AssignedTo  string `json:"assigned_to,omitempty"`
	Address     string `json:"address"`
	Notes       string `json:"notes,omitempty"`
	Status      string `json:"status"`
	DeliveredAt string `json:"delivered_at,omitempty"`
}
