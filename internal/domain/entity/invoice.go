package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Invoice.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusPending   = "pending"
	InvoiceStatusApproved  = "approved"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// RevenueInvoiceStatuses es la lista cerrada de estados que cuentan como
// ingreso realizado. Es una regla de negocio fija, no configurable.
var RevenueInvoiceStatuses = []string{InvoiceStatusApproved, InvoiceStatusPaid}

// Invoice representa la cabecera de una factura emitida a un cliente.
type Invoice struct {
	ID         string
	CompanyID  string
	CreatedBy  string // UserID del emisor
	ClientID   string
	Number     string // consecutivo por empresa, ej. "F-2026-00042"
	Status     string
	Subtotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
	IssueDate  time.Time
	DueDate    *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InvoiceItem es una línea de detalle de la factura.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal // porcentaje, ej. 19
	Subtotal    decimal.Decimal // Quantity * UnitPrice
}

// invoiceTransitions define el flujo draft -> pending -> approved -> sent -> paid.
// cancelled es alcanzable desde cualquier estado no terminal.
var invoiceTransitions = map[string][]string{
	InvoiceStatusDraft:    {InvoiceStatusPending, InvoiceStatusCancelled},
	InvoiceStatusPending:  {InvoiceStatusApproved, InvoiceStatusCancelled},
	InvoiceStatusApproved: {InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled},
	InvoiceStatusSent:     {InvoiceStatusPaid, InvoiceStatusCancelled},
}

// CanTransitionInvoice indica si el cambio de estado from -> to está permitido.
func CanTransitionInvoice(from, to string) bool {
	for _, next := range invoiceTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidInvoiceStatus indica si s es un estado conocido.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusApproved,
		InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}
