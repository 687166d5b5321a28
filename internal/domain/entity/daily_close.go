package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyClose es el cierre financiero de un día para una empresa, generado por
// el job nocturno. Se persiste con upsert: reejecutar el cierre de un día ya
// cerrado sobreescribe la fila (idempotente).
type DailyClose struct {
	ID            string
	CompanyID     string
	Date          time.Time // día cerrado (00:00 local)
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetProfit     decimal.Decimal
	IncomeCount   int
	ExpenseCount  int
	CreatedAt     time.Time
}
