package repository

import (
	"context"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
)

// DeliveryRepository puerto de persistencia para entregas.
type DeliveryRepository interface {
	Create(ctx context.Context, d *entity.Delivery) error
	Update(ctx context.Context, d *entity.Delivery) error
	GetByID(ctx context.Context, id string) (*entity.Delivery, error)
	ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]entity.Delivery, error)
}
