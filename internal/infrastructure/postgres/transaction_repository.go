package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// Asegura que TransactionRepo implementa repository.TransactionRepository.
var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL.
type TransactionRepo struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository construye el adaptador de persistencia del libro.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create persiste un movimiento del libro.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO transactions (id, company_id, user_id, type, amount, description, category, date, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::UUID, NULLIF($3, '')::UUID, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		tx.ID, tx.CompanyID, tx.UserID, tx.Type, tx.Amount,
		tx.Description, tx.Category, tx.Date, tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// Update modifica un movimiento existente.
func (r *TransactionRepo) Update(ctx context.Context, tx *entity.Transaction) error {
	const query = `
		UPDATE transactions
		SET type = $2, amount = $3, description = $4, category = $5, date = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		tx.ID, tx.Type, tx.Amount, tx.Description, tx.Category, tx.Date, tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update transaction: no existe %s", tx.ID)
	}
	return nil
}

// Delete elimina un movimiento.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; nil, nil si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	const query = `
		SELECT id, COALESCE(company_id::TEXT, ''), COALESCE(user_id::TEXT, ''),
		       type, amount, description, category, date, created_at, updated_at
		FROM transactions WHERE id = $1`
	var t entity.Transaction
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.CompanyID, &t.UserID, &t.Type, &t.Amount,
		&t.Description, &t.Category, &t.Date, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// List devuelve los movimientos que cumplen el filtro, por fecha descendente.
// Las condiciones se arman dinámicamente; solo filtra lo que viene informado.
func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]entity.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, COALESCE(company_id::TEXT, ''), COALESCE(user_id::TEXT, ''),
		       type, amount, description, category, date, created_at, updated_at
		FROM transactions WHERE 1=1`)

	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		sb.WriteString(" AND " + cond + "$" + strconv.Itoa(len(args)))
	}

	if f.CompanyID != "" {
		add("company_id::TEXT = ", f.CompanyID)
	}
	if f.UserID != "" {
		add("user_id::TEXT = ", f.UserID)
	}
	if f.Type != "" {
		add("type = ", f.Type)
	}
	if f.Category != "" {
		add("category = ", f.Category)
	}
	if f.StartDate != nil {
		add("date >= ", *f.StartDate)
	}
	if f.EndDate != nil {
		add("date <= ", *f.EndDate)
	}

	sb.WriteString(" ORDER BY date DESC, created_at DESC")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(
			&t.ID, &t.CompanyID, &t.UserID, &t.Type, &t.Amount,
			&t.Description, &t.Category, &t.Date, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list transactions scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
