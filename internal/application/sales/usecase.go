// Package sales gestiona el ciclo de vida de las ventas de producto.
//
// El grafo de estados vive en el dominio (entity.CanTransitionSale); aquí se
// aplica y se fija SoldAt en el instante exacto de la transición a sold, que
// es el momento en que la venta entra al revenue.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ubsapps/ubs-erp-api/internal/application/dto"
	"github.com/ubsapps/ubs-erp-api/internal/domain"
	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// SalesUseCase casos de uso de ventas.
type SalesUseCase struct {
	saleRepo repository.ProductSaleRepository
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(saleRepo repository.ProductSaleRepository) *SalesUseCase {
	return &SalesUseCase{saleRepo: saleRepo}
}

// Create registra una venta nueva en estado pending.
func (uc *SalesUseCase) Create(
	ctx context.Context,
	companyID, userID string,
	in dto.CreateSaleRequest,
) (*dto.SaleDTO, error) {
	amount, err := decimal.NewFromString(in.TotalAmount)
	if err != nil || amount.IsNegative() {
		return nil, fmt.Errorf("%w: monto %q", domain.ErrInvalidInput, in.TotalAmount)
	}

	now := time.Now()
	sale := &entity.ProductSale{
		CompanyID:   companyID,
		SoldBy:      userID,
		ProductName: in.ProductName,
		Quantity:    in.Quantity,
		TotalAmount: amount,
		Status:      entity.SaleStatusPending,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.saleRepo.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("sales.Create: %w", err)
	}
	out := toSaleDTO(*sale)
	return &out, nil
}

// UpdateStatus aplica una transición de estado. Al pasar a sold se fija
// SoldAt; sold y cancelled son terminales.
func (uc *SalesUseCase) UpdateStatus(
	ctx context.Context,
	companyID, id string,
	in dto.UpdateSaleStatusRequest,
) (*dto.SaleDTO, error) {
	if !entity.ValidSaleStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}

	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sales.UpdateStatus: %w", err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if !entity.CanTransitionSale(sale.Status, in.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, sale.Status, in.Status)
	}

	now := time.Now()
	sale.Status = in.Status
	sale.UpdatedAt = now
	if in.Status == entity.SaleStatusSold {
		sale.SoldAt = &now
	}

	if err := uc.saleRepo.Update(ctx, sale); err != nil {
		return nil, fmt.Errorf("sales.UpdateStatus: %w", err)
	}
	out := toSaleDTO(*sale)
	return &out, nil
}

// GetByID devuelve una venta de la empresa.
func (uc *SalesUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.SaleDTO, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sales.GetByID: %w", err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	out := toSaleDTO(*sale)
	return &out, nil
}

// List devuelve las ventas de la empresa, con filtros opcionales.
func (uc *SalesUseCase) List(
	ctx context.Context,
	companyID string,
	in dto.ListSalesRequest,
) ([]dto.SaleDTO, error) {
	in.DefaultPage()

	f := repository.SaleFilter{
		CompanyID: companyID,
		SoldBy:    in.SoldBy,
		Status:    in.Status,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.StartDate != "" {
		t, err := time.Parse(dateLayout, in.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, in.StartDate)
		}
		f.StartDate = &t
	}
	if in.EndDate != "" {
		t, err := time.Parse(dateLayout, in.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, in.EndDate)
		}
		f.EndDate = &t
	}

	sales, err := uc.saleRepo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("sales.List: %w", err)
	}
	out := make([]dto.SaleDTO, len(sales))
	for i, s := range sales {
		out[i] = toSaleDTO(s)
	}
	return out, nil
}

func toSaleDTO(s entity.ProductSale) dto.SaleDTO {
	d := dto.SaleDTO{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		SoldBy:      s.SoldBy,
		ProductName: s.ProductName,
		Quantity:    s.Quantity,
		TotalAmount: s.TotalAmount,
		Status:      s.Status,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
	}
	if s.SoldAt != nil {
		d.SoldAt = s.SoldAt.Format(time.RFC3339)
	}
	return d
}
