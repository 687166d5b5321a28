package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de Transaction.
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// Transaction es un movimiento manual del libro (ingreso o gasto),
// independiente de ventas y facturas. Amount siempre es >= 0; el signo
// lo determina Type.
type Transaction struct {
	ID          string
	CompanyID   string // vacío = movimiento personal sin empresa
	UserID      string // vacío = sin usuario asociado
	Type        string // income | expense
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        time.Time // fecha contable (solo día, sin hora)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsIncome indica si el movimiento suma al ingreso.
func (t Transaction) IsIncome() bool { return t.Type == TransactionTypeIncome }
