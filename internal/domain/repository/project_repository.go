package repository

import (
	"context"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
)

// ProjectRepository puerto de persistencia para proyectos.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	Update(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]entity.Project, error)
}
