package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// Asegura que RevenueRepo implementa repository.RevenueRepository.
var _ repository.RevenueRepository = (*RevenueRepo)(nil)

// RevenueRepo consultas de solo lectura que alimentan el resumen financiero.
// Las allow-list de estados van fijas en el SQL: solo ventas sold y facturas
// approved/paid cuentan como ingreso. Nunca se parametrizan desde fuera.
type RevenueRepo struct {
	pool *pgxpool.Pool
}

// NewRevenueRepository construye el adaptador de agregación de ingresos.
func NewRevenueRepository(pool *pgxpool.Pool) *RevenueRepo {
	return &RevenueRepo{pool: pool}
}

// TransactionTotals suma y cuenta las transacciones del libro, particionadas
// por tipo. COALESCE devuelve cero cuando el filtro no deja filas.
func (r *RevenueRepo) TransactionTotals(
	ctx context.Context,
	f repository.RevenueFilter,
) (income, expenses repository.RevenueSums, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(amount) FILTER (WHERE type = 'income'),  0) AS income_total,
	    COUNT(*)             FILTER (WHERE type = 'income')      AS income_count,
	    COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS expense_total,
	    COUNT(*)             FILTER (WHERE type = 'expense')     AS expense_count
	FROM transactions
	WHERE ($1 = '' OR company_id::TEXT = $1)
	  AND ($2 = '' OR user_id::TEXT = $2)
	  AND ($3::DATE IS NULL OR date >= $3)
	  AND ($4::DATE IS NULL OR date <= $4)`

	err = r.pool.QueryRow(ctx, query, f.CompanyID, f.UserID, f.StartDate, f.EndDate).
		Scan(&income.Total, &income.Count, &expenses.Total, &expenses.Count)
	if err != nil {
		return repository.RevenueSums{}, repository.RevenueSums{},
			fmt.Errorf("revenue.TransactionTotals: %w", err)
	}
	return income, expenses, nil
}

// SoldSalesTotals suma y cuenta ventas con estado sold. El filtro de fechas
// aplica sobre sold_at, el momento en que el ingreso se realizó.
func (r *RevenueRepo) SoldSalesTotals(
	ctx context.Context,
	f repository.RevenueFilter,
) (repository.RevenueSums, error) {
	const query = `
	SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
	FROM product_sales
	WHERE status = 'sold'
	  AND ($1 = '' OR company_id::TEXT = $1)
	  AND ($2 = '' OR sold_by::TEXT = $2)
	  AND ($3::TIMESTAMPTZ IS NULL OR sold_at >= $3)
	  AND ($4::TIMESTAMPTZ IS NULL OR sold_at < $4::TIMESTAMPTZ + INTERVAL '1 day')`

	var sums repository.RevenueSums
	err := r.pool.QueryRow(ctx, query, f.CompanyID, f.UserID, f.StartDate, f.EndDate).
		Scan(&sums.Total, &sums.Count)
	if err != nil {
		return repository.RevenueSums{}, fmt.Errorf("revenue.SoldSalesTotals: %w", err)
	}
	return sums, nil
}

// RevenueInvoiceTotals suma y cuenta facturas en estado approved o paid.
// Una factura draft, pending, sent o cancelled jamás entra al total.
func (r *RevenueRepo) RevenueInvoiceTotals(
	ctx context.Context,
	f repository.RevenueFilter,
) (repository.RevenueSums, error) {
	const query = `
	SELECT COALESCE(SUM(grand_total), 0), COUNT(*)
	FROM invoices
	WHERE status IN ('approved', 'paid')
	  AND ($1 = '' OR company_id::TEXT = $1)
	  AND ($2 = '' OR created_by::TEXT = $2)
	  AND ($3::DATE IS NULL OR issue_date >= $3)
	  AND ($4::DATE IS NULL OR issue_date <= $4)`

	var sums repository.RevenueSums
	err := r.pool.QueryRow(ctx, query, f.CompanyID, f.UserID, f.StartDate, f.EndDate).
		Scan(&sums.Total, &sums.Count)
	if err != nil {
		return repository.RevenueSums{}, fmt.Errorf("revenue.RevenueInvoiceTotals: %w", err)
	}
	return sums, nil
}
