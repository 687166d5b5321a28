package repository

import (
	"context"
	"time"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
)

// SaleFilter filtros para listados de ventas.
type SaleFilter struct {
	CompanyID string
	SoldBy    string
	Status    string
	StartDate *time.Time // sobre created_at, inclusive
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// ProductSaleRepository puerto de persistencia para ventas de producto.
type ProductSaleRepository interface {
	Create(ctx context.Context, s *entity.ProductSale) error
	// Update persiste estado, notas y sold_at. El caso de uso valida la transición.
	Update(ctx context.Context, s *entity.ProductSale) error
	GetByID(ctx context.Context, id string) (*entity.ProductSale, error)
	List(ctx context.Context, f SaleFilter) ([]entity.ProductSale, error)
}
