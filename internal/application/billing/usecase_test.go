package billing_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubsapps/ubs-erp-api/internal/application/billing"
	"github.com/ubsapps/ubs-erp-api/internal/application/dto"
	"github.com/ubsapps/ubs-erp-api/internal/domain"
	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices  map[string]*entity.Invoice
	items     map[string][]entity.InvoiceItem
	seq       int
	itemErrAt int // si > 0, CreateItem falla en la línea N
	itemCalls int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[string]*entity.Invoice),
		items:    make(map[string][]entity.InvoiceItem),
	}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.seq++
	inv.ID = fmt.Sprintf("inv-%d", r.seq)
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) CreateItem(_ context.Context, item *entity.InvoiceItem) error {
	r.itemCalls++
	if r.itemErrAt > 0 && r.itemCalls == r.itemErrAt {
		return errors.New("insert invoice item: conexión perdida")
	}
	r.items[item.InvoiceID] = append(r.items[item.InvoiceID], *item)
	return nil
}

func (r *fakeInvoiceRepo) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	inv, ok := r.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	inv.UpdatedAt = updatedAt
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetItemsByInvoiceID(_ context.Context, invoiceID string) ([]entity.InvoiceItem, error) {
	return r.items[invoiceID], nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, f repository.InvoiceFilter) ([]entity.Invoice, error) {
	var out []entity.Invoice
	for _, inv := range r.invoices {
		if f.CompanyID != "" && inv.CompanyID != f.CompanyID {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		out = append(out, *inv)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) NextNumber(_ context.Context, _ string, year int) (string, error) {
	return fmt.Sprintf("F-%d-%05d", year, r.seq+1), nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (r *fakeClientRepo) Create(_ context.Context, c *entity.Client) error { return nil }
func (r *fakeClientRepo) Update(_ context.Context, c *entity.Client) error { return nil }
func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}
func (r *fakeClientRepo) ListByCompany(_ context.Context, _ string, _, _ int) ([]entity.Client, error) {
	return nil, nil
}

// fakeTxRunner imita la semántica transaccional del runner real: ejecuta fn
// sobre el repo y, si fn devuelve error, restaura el estado previo (rollback).
type fakeTxRunner struct {
	repo *fakeInvoiceRepo
}

func (r *fakeTxRunner) RunBilling(_ context.Context, fn func(repository.InvoiceRepository) error) error {
	snapInvoices := make(map[string]*entity.Invoice, len(r.repo.invoices))
	for id, inv := range r.repo.invoices {
		cp := *inv
		snapInvoices[id] = &cp
	}
	snapItems := make(map[string][]entity.InvoiceItem, len(r.repo.items))
	for id, its := range r.repo.items {
		snapItems[id] = append([]entity.InvoiceItem(nil), its...)
	}
	snapSeq := r.repo.seq

	if err := fn(r.repo); err != nil {
		r.repo.invoices, r.repo.items, r.repo.seq = snapInvoices, snapItems, snapSeq
		return err
	}
	return nil
}

const testCompany = "co-1"

func newUC() (*billing.InvoiceUseCase, *fakeInvoiceRepo) {
	invRepo := newFakeInvoiceRepo()
	clientRepo := &fakeClientRepo{clients: map[string]*entity.Client{
		"cl-1": {ID: "cl-1", CompanyID: testCompany, Name: "ACME S.A."},
	}}
	return billing.NewInvoiceUseCase(&fakeTxRunner{repo: invRepo}, invRepo, clientRepo), invRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// Los totales se calculan en el servidor, línea a línea y en decimal:
// 2 x 150.00 + IVA 19% = 300.00 + 57.00; 1 x 99.99 sin IVA.
func TestCreate_CalculaTotalesEnServidor(t *testing.T) {
	uc, _ := newUC()

	inv, err := uc.Create(context.Background(), testCompany, "u-1", dto.CreateInvoiceRequest{
		ClientID: "cl-1",
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Consultoría", Quantity: "2", UnitPrice: "150.00", TaxRate: "19"},
			{Description: "Soporte", Quantity: "1", UnitPrice: "99.99"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	assert.True(t, inv.Subtotal.Equal(decimal.RequireFromString("399.99")), "subtotal: %s", inv.Subtotal)
	assert.True(t, inv.TaxTotal.Equal(decimal.RequireFromString("57.00")), "impuestos: %s", inv.TaxTotal)
	assert.True(t, inv.GrandTotal.Equal(decimal.RequireFromString("456.99")), "total: %s", inv.GrandTotal)
	assert.Len(t, inv.Items, 2)
	assert.NotEmpty(t, inv.Number)
}

func TestCreate_ClienteDeOtraEmpresa(t *testing.T) {
	uc, _ := newUC()

	_, err := uc.Create(context.Background(), "co-ajena", "u-1", dto.CreateInvoiceRequest{
		ClientID: "cl-1",
		Items:    []dto.CreateInvoiceItemRequest{{Description: "X", Quantity: "1", UnitPrice: "10"}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_CantidadInvalida(t *testing.T) {
	uc, _ := newUC()

	_, err := uc.Create(context.Background(), testCompany, "u-1", dto.CreateInvoiceRequest{
		ClientID: "cl-1",
		Items:    []dto.CreateInvoiceItemRequest{{Description: "X", Quantity: "0", UnitPrice: "10"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Si una línea falla a mitad de la inserción, la transacción revierte todo:
// no puede quedar una cabecera cuyos totales no cuadran con su detalle.
func TestCreate_FalloEnUnaLineaNoDejaFacturaAMedias(t *testing.T) {
	uc, repo := newUC()
	repo.itemErrAt = 2

	_, err := uc.Create(context.Background(), testCompany, "u-1", dto.CreateInvoiceRequest{
		ClientID: "cl-1",
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Licencias", Quantity: "1", UnitPrice: "100.00", TaxRate: "19"},
			{Description: "Soporte", Quantity: "3", UnitPrice: "25.00", TaxRate: "19"},
		},
	})
	require.Error(t, err)
	assert.Empty(t, repo.invoices, "no debe quedar cabecera persistida")
	assert.Empty(t, repo.items, "no debe quedar ninguna línea persistida")
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus
// ──────────────────────────────────────────────────────────────────────────────

func createInvoice(t *testing.T, uc *billing.InvoiceUseCase) *dto.InvoiceDTO {
	t.Helper()
	inv, err := uc.Create(context.Background(), testCompany, "u-1", dto.CreateInvoiceRequest{
		ClientID: "cl-1",
		Items:    []dto.CreateInvoiceItemRequest{{Description: "X", Quantity: "1", UnitPrice: "100"}},
	})
	require.NoError(t, err)
	return inv
}

// Flujo completo hasta paid, paso a paso.
func TestUpdateStatus_FlujoCompleto(t *testing.T) {
	uc, _ := newUC()
	inv := createInvoice(t, uc)

	for _, status := range []string{
		entity.InvoiceStatusPending,
		entity.InvoiceStatusApproved,
		entity.InvoiceStatusSent,
		entity.InvoiceStatusPaid,
	} {
		updated, err := uc.UpdateStatus(context.Background(), testCompany, inv.ID,
			dto.UpdateInvoiceStatusRequest{Status: status})
		require.NoError(t, err, "transición a %s", status)
		assert.Equal(t, status, updated.Status)
	}
}

// Saltarse pasos del flujo no está permitido (draft -> paid).
func TestUpdateStatus_SaltoProhibido(t *testing.T) {
	uc, _ := newUC()
	inv := createInvoice(t, uc)

	_, err := uc.UpdateStatus(context.Background(), testCompany, inv.ID,
		dto.UpdateInvoiceStatusRequest{Status: entity.InvoiceStatusPaid})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// cancelled es alcanzable desde cualquier estado no terminal, y es terminal.
func TestUpdateStatus_Cancelacion(t *testing.T) {
	uc, _ := newUC()
	inv := createInvoice(t, uc)

	cancelled, err := uc.UpdateStatus(context.Background(), testCompany, inv.ID,
		dto.UpdateInvoiceStatusRequest{Status: entity.InvoiceStatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusCancelled, cancelled.Status)

	_, err = uc.UpdateStatus(context.Background(), testCompany, inv.ID,
		dto.UpdateInvoiceStatusRequest{Status: entity.InvoiceStatusPending})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
