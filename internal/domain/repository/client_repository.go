package repository

import (
	"context"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
)

// ClientRepository puerto de persistencia para clientes de una empresa.
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	Update(ctx context.Context, c *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]entity.Client, error)
}
