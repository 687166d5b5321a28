package repository

import (
	"context"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
)

// DailyCloseRepository puerto de persistencia para cierres diarios.
type DailyCloseRepository interface {
	// Upsert inserta o reemplaza el cierre de (company_id, date). El job
	// nocturno puede reejecutarse sin duplicar filas.
	Upsert(ctx context.Context, c *entity.DailyClose) error
	GetByCompanyAndDate(ctx context.Context, companyID string, dateISO string) (*entity.DailyClose, error)
}
