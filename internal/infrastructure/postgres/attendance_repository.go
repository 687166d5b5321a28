package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ubsapps/ubs-erp-api/internal/domain"
	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// Asegura que AttendanceRepo implementa repository.AttendanceRepository.
var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

// AttendanceRepo implementación del puerto AttendanceRepository sobre PostgreSQL.
// El índice único parcial (user_id, date) WHERE check_out IS NULL respalda en
// DB la regla de una sola jornada abierta.
type AttendanceRepo struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository construye el adaptador de persistencia de asistencia.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepo {
	return &AttendanceRepo{pool: pool}
}

// Create persiste una jornada. Si choca con el índice de jornada abierta
// devuelve domain.ErrConflict.
func (r *AttendanceRepo) Create(ctx context.Context, a *entity.Attendance) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO attendance (id, company_id, user_id, date, check_in, check_out, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.CompanyID, a.UserID, a.Date, a.CheckIn, a.CheckOut, a.Notes,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

// Update persiste check-out y notas de una jornada.
func (r *AttendanceRepo) Update(ctx context.Context, a *entity.Attendance) error {
	const query = `
		UPDATE attendance SET check_out = $2, notes = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, a.ID, a.CheckOut, a.Notes, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update attendance: no existe %s", a.ID)
	}
	return nil
}

// GetOpenByUser devuelve la jornada abierta del usuario en la fecha; nil, nil si no hay.
func (r *AttendanceRepo) GetOpenByUser(ctx context.Context, userID string, date time.Time) (*entity.Attendance, error) {
	const query = `
		SELECT id, company_id, user_id, date, check_in, check_out, notes, created_at, updated_at
		FROM attendance
		WHERE user_id = $1 AND date = $2 AND check_out IS NULL`
	var a entity.Attendance
	err := r.pool.QueryRow(ctx, query, userID, date).Scan(
		&a.ID, &a.CompanyID, &a.UserID, &a.Date, &a.CheckIn, &a.CheckOut, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open attendance: %w", err)
	}
	return &a, nil
}

// ListByUser devuelve las jornadas del usuario en [start, end], más recientes primero.
func (r *AttendanceRepo) ListByUser(ctx context.Context, userID string, start, end time.Time) ([]entity.Attendance, error) {
	const query = `
		SELECT id, company_id, user_id, date, check_in, check_out, notes, created_at, updated_at
		FROM attendance
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date DESC, check_in DESC`
	rows, err := r.pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var out []entity.Attendance
	for rows.Next() {
		var a entity.Attendance
		if err := rows.Scan(
			&a.ID, &a.CompanyID, &a.UserID, &a.Date, &a.CheckIn, &a.CheckOut, &a.Notes,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list attendance scan: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
