package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// Asegura que DailyReportRepo implementa repository.DailyReportRepository.
var _ repository.DailyReportRepository = (*DailyReportRepo)(nil)

// DailyReportRepo implementación del puerto DailyReportRepository sobre PostgreSQL.
type DailyReportRepo struct {
	pool *pgxpool.Pool
}

// NewDailyReportRepository construye el adaptador de persistencia de reportes.
func NewDailyReportRepository(pool *pgxpool.Pool) *DailyReportRepo {
	return &DailyReportRepo{pool: pool}
}

// Upsert inserta el reporte del día o reemplaza el existente (user_id, date).
func (r *DailyReportRepo) Upsert(ctx context.Context, rep *entity.DailyReport) error {
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO daily_reports (id, company_id, user_id, date, summary, blockers, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, date) DO UPDATE
		SET summary = EXCLUDED.summary, blockers = EXCLUDED.blockers, updated_at = EXCLUDED.updated_at`
	_, err := r.pool.Exec(ctx, query,
		rep.ID, rep.CompanyID, rep.UserID, rep.Date, rep.Summary, rep.Blockers,
		rep.CreatedAt, rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert daily report: %w", err)
	}
	return nil
}

// GetByUserAndDate obtiene el reporte de un usuario y fecha; nil, nil si no existe.
func (r *DailyReportRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*entity.DailyReport, error) {
	const query = `
		SELECT id, company_id, user_id, date, summary, blockers, created_at, updated_at
		FROM daily_reports WHERE user_id = $1 AND date = $2`
	var rep entity.DailyReport
	err := r.pool.QueryRow(ctx, query, userID, date).Scan(
		&rep.ID, &rep.CompanyID, &rep.UserID, &rep.Date, &rep.Summary, &rep.Blockers,
		&rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily report: %w", err)
	}
	return &rep, nil
}

// ListByCompany devuelve los reportes de la empresa en [start, end].
func (r *DailyReportRepo) ListByCompany(ctx context.Context, companyID string, start, end time.Time, limit, offset int) ([]entity.DailyReport, error) {
	const query = `
		SELECT id, company_id, user_id, date, summary, blockers, created_at, updated_at
		FROM daily_reports
		WHERE company_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date DESC LIMIT $4 OFFSET $5`
	rows, err := r.pool.Query(ctx, query, companyID, start, end, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list daily reports: %w", err)
	}
	defer rows.Close()

	var out []entity.DailyReport
	for rows.Next() {
		var rep entity.DailyReport
		if err := rows.Scan(
			&rep.ID, &rep.CompanyID, &rep.UserID, &rep.Date, &rep.Summary, &rep.Blockers,
			&rep.CreatedAt, &rep.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list daily reports scan: %w", err)
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}
