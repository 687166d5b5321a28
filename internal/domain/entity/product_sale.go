package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de ProductSale. Solo "sold" cuenta como ingreso realizado:
// una venta pendiente, en proceso o cancelada jamás debe sumarse al revenue.
const (
	SaleStatusPending    = "pending"
	SaleStatusInProgress = "in_progress"
	SaleStatusSold       = "sold"
	SaleStatusCancelled  = "cancelled"
)

// ProductSale representa la venta de un producto registrada por un vendedor.
type ProductSale struct {
	ID          string
	CompanyID   string
	SoldBy      string // UserID del vendedor
	ProductName string
	Quantity    int
	TotalAmount decimal.Decimal
	Status      string // pending | in_progress | sold | cancelled
	Notes       string
	CreatedAt   time.Time
	SoldAt      *time.Time // se fija al pasar a sold; nil en cualquier otro estado
	UpdatedAt   time.Time
}

// saleTransitions define el grafo de transiciones permitido.
// sold y cancelled son estados terminales.
var saleTransitions = map[string][]string{
	SaleStatusPending:    {SaleStatusInProgress, SaleStatusSold, SaleStatusCancelled},
	SaleStatusInProgress: {SaleStatusSold, SaleStatusCancelled},
}

// CanTransitionSale indica si el cambio de estado from -> to está permitido.
func CanTransitionSale(from, to string) bool {
	for _, next := range saleTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidSaleStatus indica si s es un estado conocido.
func ValidSaleStatus(s string) bool {
	switch s {
	case SaleStatusPending, SaleStatusInProgress, SaleStatusSold, SaleStatusCancelled:
		return true
	}
	return false
}
