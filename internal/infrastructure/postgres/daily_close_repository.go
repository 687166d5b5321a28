package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// Asegura que DailyCloseRepo implementa repository.DailyCloseRepository.
var _ repository.DailyCloseRepository = (*DailyCloseRepo)(nil)

// DailyCloseRepo implementación del puerto DailyCloseRepository sobre PostgreSQL.
type DailyCloseRepo struct {
	pool *pgxpool.Pool
}

// NewDailyCloseRepository construye el adaptador de persistencia de cierres.
func NewDailyCloseRepository(pool *pgxpool.Pool) *DailyCloseRepo {
	return &DailyCloseRepo{pool: pool}
}

// Upsert inserta o reemplaza el cierre de (company_id, date). Reejecutar el
// job de un día ya cerrado sobreescribe la fila.
func (r *DailyCloseRepo) Upsert(ctx context.Context, c *entity.DailyClose) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO daily_closes (id, company_id, date, total_income, total_expenses, net_profit, income_count, expense_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (company_id, date) DO UPDATE
		SET total_income = EXCLUDED.total_income,
		    total_expenses = EXCLUDED.total_expenses,
		    net_profit = EXCLUDED.net_profit,
		    income_count = EXCLUDED.income_count,
		    expense_count = EXCLUDED.expense_count`
	_, err := r.pool.Exec(ctx, query,
		c.ID, c.CompanyID, c.Date, c.TotalIncome, c.TotalExpenses, c.NetProfit,
		c.IncomeCount, c.ExpenseCount, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert daily close: %w", err)
	}
	return nil
}

// GetByCompanyAndDate obtiene el cierre de una empresa y día; nil, nil si no existe.
func (r *DailyCloseRepo) GetByCompanyAndDate(ctx context.Context, companyID string, dateISO string) (*entity.DailyClose, error) {
	const query = `
		SELECT id, company_id, date, total_income, total_expenses, net_profit, income_count, expense_count, created_at
		FROM daily_closes WHERE company_id = $1 AND date = $2::DATE`
	var c entity.DailyClose
	err := r.pool.QueryRow(ctx, query, companyID, dateISO).Scan(
		&c.ID, &c.CompanyID, &c.Date, &c.TotalIncome, &c.TotalExpenses, &c.NetProfit,
		&c.IncomeCount, &c.ExpenseCount, &c.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily close: %w", err)
	}
	return &c, nil
}
