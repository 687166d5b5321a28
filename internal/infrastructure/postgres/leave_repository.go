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

// Asegura que LeaveRepo implementa repository.LeaveRepository.
var _ repository.LeaveRepository = (*LeaveRepo)(nil)

// LeaveRepo implementación del puerto LeaveRepository sobre PostgreSQL.
type LeaveRepo struct {
	pool *pgxpool.Pool
}

// NewLeaveRepository construye el adaptador de persistencia de ausencias.
func NewLeaveRepository(pool *pgxpool.Pool) *LeaveRepo {
	return &LeaveRepo{pool: pool}
}

// Create persiste una solicitud de ausencia.
func (r *LeaveRepo) Create(ctx context.Context, l *entity.LeaveRequest) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO leave_requests (id, company_id, user_id, type, start_date, end_date, reason, status, reviewed_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, '')::UUID, $10, $11)`
	_, err := r.pool.Exec(ctx, query,
		l.ID, l.CompanyID, l.UserID, l.Type, l.StartDate, l.EndDate,
		l.Reason, l.Status, l.ReviewedBy, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert leave: %w", err)
	}
	return nil
}

// Update persiste estado y revisor de una solicitud.
func (r *LeaveRepo) Update(ctx context.Context, l *entity.LeaveRequest) error {
	const query = `
		UPDATE leave_requests
		SET status = $2, reviewed_by = NULLIF($3, '')::UUID, updated_at = $4
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, l.ID, l.Status, l.ReviewedBy, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update leave: no existe %s", l.ID)
	}
	return nil
}

// GetByID obtiene una solicitud por ID; nil, nil si no existe.
func (r *LeaveRepo) GetByID(ctx context.Context, id string) (*entity.LeaveRequest, error) {
	const query = `
		SELECT id, company_id, user_id, type, start_date, end_date, reason, status,
		       COALESCE(reviewed_by::TEXT, ''), created_at, updated_at
		FROM leave_requests WHERE id = $1`
	var l entity.LeaveRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.CompanyID, &l.UserID, &l.Type, &l.StartDate, &l.EndDate,
		&l.Reason, &l.Status, &l.ReviewedBy, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get leave: %w", err)
	}
	return &l, nil
}

// ListByUser devuelve las solicitudes del usuario, más recientes primero.
func (r *LeaveRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]entity.LeaveRequest, error) {
	const query = `
		SELECT id, company_id, user_id, type, start_date, end_date, reason, status,
		       COALESCE(reviewed_by::TEXT, ''), created_at, updated_at
		FROM leave_requests
		WHERE user_id = $1 ORDER BY start_date DESC LIMIT $2 OFFSET $3`
	return r.scanMany(ctx, query, userID, limit, offset)
}

// ListApprovedOverlapping devuelve las ausencias aprobadas del usuario que se
// solapan con [start, end]; extremos inclusivos.
func (r *LeaveRepo) ListApprovedOverlapping(ctx context.Context, userID string, start, end time.Time) ([]entity.LeaveRequest, error) {
	const query = `
		SELECT id, company_id, user_id, type, start_date, end_date, reason, status,
		       COALESCE(reviewed_by::TEXT, ''), created_at, updated_at
		FROM leave_requests
		WHERE user_id = $1 AND status = 'approved'
		  AND start_date <= $3 AND end_date >= $2`
	return r.scanMany(ctx, query, userID, start, end)
}

func (r *LeaveRepo) scanMany(ctx context.Context, query string, args ...any) ([]entity.LeaveRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	defer rows.Close()

	var out []entity.LeaveRequest
	for rows.Next() {
		var l entity.LeaveRequest
		if err := rows.Scan(
			&l.ID, &l.CompanyID, &l.UserID, &l.Type, &l.StartDate, &l.EndDate,
			&l.Reason, &l.Status, &l.ReviewedBy, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list leaves scan: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
