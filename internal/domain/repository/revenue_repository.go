package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RevenueFilter acota las lecturas del agregador de ingresos.
// Un campo vacío/nil NO restringe esa dimensión (nunca significa "sin filas").
//
// Las fechas acotan por día calendario: StartDate incluye su día desde las
// 00:00 y EndDate cuenta su día COMPLETO, sin importar la hora de las filas.
// Sobre columnas con hora las implementaciones cortan en < EndDate + 1 día.
type RevenueFilter struct {
	CompanyID string
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
}

// RevenueSums total y número de filas de una de las tres fuentes.
type RevenueSums struct {
	Total decimal.Decimal
	Count int
}

// RevenueRepository expone las tres lecturas de solo lectura que alimentan el
// resumen financiero. Cada consulta aplica su allow-list de estados en SQL:
//   - ventas: solo status = 'sold'
//   - facturas: solo status IN ('approved', 'paid')
//
// La allow-list es una regla de negocio fija ("solo cuenta revenue realizado"),
// no un parámetro.
type RevenueRepository interface {
	// TransactionTotals suma y cuenta transacciones del libro, particionadas por tipo.
	TransactionTotals(ctx context.Context, f RevenueFilter) (income, expenses RevenueSums, err error)
	// SoldSalesTotals suma y cuenta ventas con estado sold.
	SoldSalesTotals(ctx context.Context, f RevenueFilter) (RevenueSums, error)
	// RevenueInvoiceTotals suma y cuenta facturas en estado approved o paid.
	RevenueInvoiceTotals(ctx context.Context, f RevenueFilter) (RevenueSums, error)
}
