package repository

import (
	"context"
	"time"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
)

// AttendanceRepository puerto de persistencia para jornadas de asistencia.
type AttendanceRepository interface {
	Create(ctx context.Context, a *entity.Attendance) error
	Update(ctx context.Context, a *entity.Attendance) error
	// GetOpenByUser devuelve la jornada abierta (check_out IS NULL) del usuario
	// en la fecha indicada; nil, nil si no hay ninguna.
	GetOpenByUser(ctx context.Context, userID string, date time.Time) (*entity.Attendance, error)
	ListByUser(ctx context.Context, userID string, start, end time.Time) ([]entity.Attendance, error)
}
