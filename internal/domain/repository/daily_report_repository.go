package repository

import (
	"context"
	"time"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
)

// DailyReportRepository puerto de persistencia para reportes diarios.
type DailyReportRepository interface {
	// Upsert inserta el reporte del día o reemplaza el existente (user_id, date).
	Upsert(ctx context.Context, r *entity.DailyReport) error
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*entity.DailyReport, error)
	ListByCompany(ctx context.Context, companyID string, start, end time.Time, limit, offset int) ([]entity.DailyReport, error)
}
