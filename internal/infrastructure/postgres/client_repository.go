package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// Asegura que ClientRepo implementa repository.ClientRepository.
var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	pool *pgxpool.Pool
}

// NewClientRepository construye el adaptador de persistencia para clientes.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

// Create persiste un cliente nuevo.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO clients (id, company_id, name, contact_name, email, phone, address, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		c.ID, c.CompanyID, c.Name, c.ContactName, c.Email, c.Phone, c.Address, c.Status,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// Update modifica un cliente existente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	const query = `
		UPDATE clients
		SET name = $2, contact_name = $3, email = $4, phone = $5, address = $6, status = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		c.ID, c.Name, c.ContactName, c.Email, c.Phone, c.Address, c.Status, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update client: no existe %s", c.ID)
	}
	return nil
}

// GetByID obtiene un cliente por ID; nil, nil si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	const query = `
		SELECT id, company_id, name, contact_name, email, phone, address, status, created_at, updated_at
		FROM clients WHERE id = $1`
	var c entity.Client
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.ContactName, &c.Email, &c.Phone, &c.Address, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// ListByCompany devuelve los clientes de la empresa paginados por nombre.
func (r *ClientRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]entity.Client, error) {
	const query = `
		SELECT id, company_id, name, contact_name, email, phone, address, status, created_at, updated_at
		FROM clients WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var out []entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.Name, &c.ContactName, &c.Email, &c.Phone, &c.Address, &c.Status,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list clients scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
