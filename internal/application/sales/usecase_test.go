package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubsapps/ubs-erp-api/internal/application/dto"
	"github.com/ubsapps/ubs-erp-api/internal/application/sales"
	"github.com/ubsapps/ubs-erp-api/internal/domain"
	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// fakeSaleRepo repositorio en memoria indexado por ID.
type fakeSaleRepo struct {
	byID map[string]*entity.ProductSale
	next int
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{byID: make(map[string]*entity.ProductSale)}
}

func (r *fakeSaleRepo) Create(_ context.Context, s *entity.ProductSale) error {
	r.next++
	s.ID = string(rune('a' + r.next - 1))
	cp := *s
	r.byID[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) Update(_ context.Context, s *entity.ProductSale) error {
	cp := *s
	r.byID[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.ProductSale, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) List(_ context.Context, f repository.SaleFilter) ([]entity.ProductSale, error) {
	var out []entity.ProductSale
	for _, s := range r.byID {
		if f.CompanyID != "" && s.CompanyID != f.CompanyID {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

const (
	testCompany = "co-1"
	testUser    = "u-1"
)

func createSale(t *testing.T, uc *sales.SalesUseCase) *dto.SaleDTO {
	t.Helper()
	sale, err := uc.Create(context.Background(), testCompany, testUser, dto.CreateSaleRequest{
		ProductName: "Licencia anual",
		Quantity:    1,
		TotalAmount: "499.99",
	})
	require.NoError(t, err)
	return sale
}

func TestCreate_NaceEnPending(t *testing.T) {
	uc := sales.NewSalesUseCase(newFakeSaleRepo())
	sale := createSale(t, uc)

	assert.Equal(t, entity.SaleStatusPending, sale.Status)
	assert.Empty(t, sale.SoldAt, "una venta recién creada no tiene sold_at")
}

// La transición a sold fija SoldAt: ese es el instante en que la venta
// empieza a contar como ingreso.
func TestUpdateStatus_PendingASoldFijaSoldAt(t *testing.T) {
	uc := sales.NewSalesUseCase(newFakeSaleRepo())
	sale := createSale(t, uc)

	updated, err := uc.UpdateStatus(context.Background(), testCompany, sale.ID,
		dto.UpdateSaleStatusRequest{Status: entity.SaleStatusSold})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusSold, updated.Status)
	assert.NotEmpty(t, updated.SoldAt)
}

// sold es terminal: no se puede reabrir ni cancelar.
func TestUpdateStatus_SoldEsTerminal(t *testing.T) {
	uc := sales.NewSalesUseCase(newFakeSaleRepo())
	sale := createSale(t, uc)

	_, err := uc.UpdateStatus(context.Background(), testCompany, sale.ID,
		dto.UpdateSaleStatusRequest{Status: entity.SaleStatusSold})
	require.NoError(t, err)

	for _, next := range []string{entity.SaleStatusPending, entity.SaleStatusInProgress, entity.SaleStatusCancelled} {
		_, err := uc.UpdateStatus(context.Background(), testCompany, sale.ID,
			dto.UpdateSaleStatusRequest{Status: next})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "sold -> %s debería fallar", next)
	}
}

func TestUpdateStatus_EstadoDesconocido(t *testing.T) {
	uc := sales.NewSalesUseCase(newFakeSaleRepo())
	sale := createSale(t, uc)

	_, err := uc.UpdateStatus(context.Background(), testCompany, sale.ID,
		dto.UpdateSaleStatusRequest{Status: "shipped"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_OtraEmpresaProhibido(t *testing.T) {
	uc := sales.NewSalesUseCase(newFakeSaleRepo())
	sale := createSale(t, uc)

	_, err := uc.UpdateStatus(context.Background(), "co-ajena", sale.ID,
		dto.UpdateSaleStatusRequest{Status: entity.SaleStatusSold})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_MontoInvalido(t *testing.T) {
	uc := sales.NewSalesUseCase(newFakeSaleRepo())

	for _, amount := range []string{"abc", "-10"} {
		_, err := uc.Create(context.Background(), testCompany, testUser, dto.CreateSaleRequest{
			ProductName: "X", Quantity: 1, TotalAmount: amount,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto %q", amount)
	}
}
