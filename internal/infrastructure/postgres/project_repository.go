package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// Asegura que ProjectRepo implementa repository.ProjectRepository.
var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación del puerto ProjectRepository sobre PostgreSQL.
type ProjectRepo struct {
	pool *pgxpool.Pool
}

// NewProjectRepository construye el adaptador de persistencia de proyectos.
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

// Create persiste un proyecto nuevo.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO projects (id, company_id, client_id, name, description, status, start_date, end_date, budget, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, '')::UUID, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.CompanyID, p.ClientID, p.Name, p.Description, p.Status,
		p.StartDate, p.EndDate, p.Budget, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// Update modifica un proyecto existente.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	const query = `
		UPDATE projects
		SET name = $2, description = $3, status = $4, start_date = $5, end_date = $6, budget = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Status, p.StartDate, p.EndDate, p.Budget, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update project: no existe %s", p.ID)
	}
	return nil
}

// GetByID obtiene un proyecto por ID; nil, nil si no existe.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	const query = `
		SELECT id, company_id, COALESCE(client_id::TEXT, ''), name, description, status,
		       start_date, end_date, budget, created_at, updated_at
		FROM projects WHERE id = $1`
	var p entity.Project
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CompanyID, &p.ClientID, &p.Name, &p.Description, &p.Status,
		&p.StartDate, &p.EndDate, &p.Budget, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// ListByCompany devuelve los proyectos de la empresa, opcionalmente por estado.
func (r *ProjectRepo) ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]entity.Project, error) {
	const query = `
		SELECT id, company_id, COALESCE(client_id::TEXT, ''), name, description, status,
		       start_date, end_date, budget, created_at, updated_at
		FROM projects
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(ctx, query, companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.ClientID, &p.Name, &p.Description, &p.Status,
			&p.StartDate, &p.EndDate, &p.Budget, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list projects scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
