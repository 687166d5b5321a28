package entity

import "time"

// Estados de Delivery.
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusAssigned  = "assigned"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
)

// Delivery es una entrega a rastrear, opcionalmente ligada a una factura.
// La referencia a la factura es informativa: el revenue sigue saliendo de la
// factura, nunca de la entrega.
type Delivery struct {
	ID          string
	CompanyID   string
	InvoiceID   string // vacío = entrega sin factura asociada
	AssignedTo  string // UserID del repartidor; vacío mientras está pending
	Address     string
	Notes       string
	Status      string
	DeliveredAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// deliveryTransitions: pending -> assigned -> in_transit -> delivered | failed.
var deliveryTransitions = map[string][]string{
	DeliveryStatusPending:   {DeliveryStatusAssigned, DeliveryStatusFailed},
	DeliveryStatusAssigned:  {DeliveryStatusInTransit, DeliveryStatusFailed},
	DeliveryStatusInTransit: {DeliveryStatusDelivered, DeliveryStatusFailed},
}

// CanTransitionDelivery indica si el cambio de estado from -> to está permitido.
func CanTransitionDelivery(from, to string) bool {
	for _, next := range deliveryTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
