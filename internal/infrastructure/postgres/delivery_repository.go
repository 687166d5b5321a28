package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// Asegura que DeliveryRepo implementa repository.DeliveryRepository.
var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación del puerto DeliveryRepository sobre PostgreSQL.
type DeliveryRepo struct {
	pool *pgxpool.Pool
}

// NewDeliveryRepository construye el adaptador de persistencia de entregas.
func NewDeliveryRepository(pool *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{pool: pool}
}

// Create persiste una entrega nueva.
func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO deliveries (id, company_id, invoice_id, assigned_to, address, notes, status, delivered_at, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, '')::UUID, NULLIF($4, '')::UUID, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		d.ID, d.CompanyID, d.InvoiceID, d.AssignedTo, d.Address, d.Notes,
		d.Status, d.DeliveredAt, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// Update persiste estado, repartidor, notas y delivered_at.
func (r *DeliveryRepo) Update(ctx context.Context, d *entity.Delivery) error {
	const query = `
		UPDATE deliveries
		SET assigned_to = NULLIF($2, '')::UUID, notes = $3, status = $4, delivered_at = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		d.ID, d.AssignedTo, d.Notes, d.Status, d.DeliveredAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update delivery: no existe %s", d.ID)
	}
	return nil
}

// GetByID obtiene una entrega por ID; nil, nil si no existe.
func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	const query = `
		SELECT id, company_id, COALESCE(invoice_id::TEXT, ''), COALESCE(assigned_to::TEXT, ''),
		       address, notes, status, delivered_at, created_at, updated_at
		FROM deliveries WHERE id = $1`
	var d entity.Delivery
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.CompanyID, &d.InvoiceID, &d.AssignedTo,
		&d.Address, &d.Notes, &d.Status, &d.DeliveredAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return &d, nil
}

// ListByCompany devuelve las entregas de la empresa, opcionalmente por estado.
func (r *DeliveryRepo) ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]entity.Delivery, error) {
	const query = `
		SELECT id, company_id, COALESCE(invoice_id::TEXT, ''), COALESCE(assigned_to::TEXT, ''),
		       address, notes, status, delivered_at, created_at, updated_at
		FROM deliveries
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(ctx, query, companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var out []entity.Delivery
	for rows.Next() {
		var d entity.Delivery
		if err := rows.Scan(
			&d.ID, &d.CompanyID, &d.InvoiceID, &d.AssignedTo,
			&d.Address, &d.Notes, &d.Status, &d.DeliveredAt, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list deliveries scan: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
