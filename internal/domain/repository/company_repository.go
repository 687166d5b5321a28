package repository

import (
	"context"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
)

// CompanyRepository puerto de persistencia para empresas (tenants).
type CompanyRepository interface {
	Create(ctx context.Context, c *entity.Company) error
	Update(ctx context.Context, c *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]entity.Company, error)
	// ListActiveIDs devuelve los IDs de empresas activas (para el cierre diario).
	ListActiveIDs(ctx context.Context) ([]string, error)
}
