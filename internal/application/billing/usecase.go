// Package billing gestiona facturas: emisión con totales calculados en el
// servidor, flujo de estados y representación PDF.
//
// Solo las facturas en estado approved o paid cuentan como ingreso realizado;
// esa allow-list vive en entity.RevenueInvoiceStatuses y en las consultas del
// agregador financiero, no aquí.
package billing

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

var hundred = decimal.NewFromInt(100)

// InvoiceUseCase casos de uso de facturación.
type InvoiceUseCase struct {
	txRunner    BillingTxRunner
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{txRunner: txRunner, invoiceRepo: invoiceRepo, clientRepo: clientRepo}
}

// Create emite una factura en estado draft con sus líneas.
// Subtotal, impuestos y total se calculan aquí en decimal, línea a línea.
func (uc *InvoiceUseCase) Create(
	ctx context.Context,
	companyID, userID string,
	in dto.CreateInvoiceRequest,
) (*dto.InvoiceDTO, error) {
	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, fmt.Errorf("billing.Create: %w", err)
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	issueDate := time.Now()
	if in.IssueDate != "" {
		issueDate, err = time.Parse(dateLayout, in.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: issue_date %q", domain.ErrInvalidInput, in.IssueDate)
		}
	}
	var dueDate *time.Time
	if in.DueDate != "" {
		t, err := time.Parse(dateLayout, in.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: due_date %q", domain.ErrInvalidInput, in.DueDate)
		}
		dueDate = &t
	}

	items, subtotal, taxTotal, err := buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	number, err := uc.invoiceRepo.NextNumber(ctx, companyID, issueDate.Year())
	if err != nil {
		return nil, fmt.Errorf("billing.Create: consecutivo: %w", err)
	}

	now := time.Now()
	inv := &entity.Invoice{
		CompanyID:  companyID,
		CreatedBy:  userID,
		ClientID:   in.ClientID,
		Number:     number,
		Status:     entity.InvoiceStatusDraft,
		Subtotal:   subtotal,
		TaxTotal:   taxTotal,
		GrandTotal: subtotal.Add(taxTotal),
		IssueDate:  issueDate,
		DueDate:    dueDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	// Cabecera y líneas en una sola transacción: si una línea falla no queda
	// una factura con totales que no cuadran con su detalle.
	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		for i := range items {
			items[i].InvoiceID = inv.ID
			if err := invoiceRepo.CreateItem(ctx, &items[i]); err != nil {
				return fmt.Errorf("línea %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("billing.Create: %w", err)
	}

	out := toInvoiceDTO(*inv, items)
	return &out, nil
}

// UpdateStatus aplica una transición del flujo
// draft -> pending -> approved -> sent -> paid (cancelled desde no terminales).
func (uc *InvoiceUseCase) UpdateStatus(
	ctx context.Context,
	companyID, id string,
	in dto.UpdateInvoiceStatusRequest,
) (*dto.InvoiceDTO, error) {
	if !entity.ValidInvoiceStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}

	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("billing.UpdateStatus: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if !entity.CanTransitionInvoice(inv.Status, in.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, inv.Status, in.Status)
	}

	now := time.Now()
	if err := uc.invoiceRepo.UpdateStatus(ctx, id, in.Status, now); err != nil {
		return nil, fmt.Errorf("billing.UpdateStatus: %w", err)
	}
	inv.Status = in.Status
	inv.UpdatedAt = now

	out := toInvoiceDTO(*inv, nil)
	return &out, nil
}

// GetByID devuelve la factura con sus líneas.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.InvoiceDTO, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("billing.GetByID: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("billing.GetByID: líneas: %w", err)
	}
	out := toInvoiceDTO(*inv, items)
	return &out, nil
}

// List devuelve las facturas de la empresa (sin líneas).
func (uc *InvoiceUseCase) List(
	ctx context.Context,
	companyID string,
	in dto.ListInvoicesRequest,
) ([]dto.InvoiceDTO, error) {
	in.DefaultPage()

	f := repository.InvoiceFilter{
		CompanyID: companyID,
		ClientID:  in.ClientID,
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

	invoices, err := uc.invoiceRepo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("billing.List: %w", err)
	}
	out := make([]dto.InvoiceDTO, len(invoices))
	for i, inv := range invoices {
		out[i] = toInvoiceDTO(inv, nil)
	}
	return out, nil
}

// buildItems valida y calcula cada línea: subtotal = qty * precio, impuesto
// del subtotal según tax_rate. Todo en decimal; redondeo a 2 al final.
func buildItems(reqs []dto.CreateInvoiceItemRequest) (items []entity.InvoiceItem, subtotal, taxTotal decimal.Decimal, err error) {
	subtotal, taxTotal = decimal.Zero, decimal.Zero
	items = make([]entity.InvoiceItem, 0, len(reqs))

	for i, r := range reqs {
		qty, err := decimal.NewFromString(r.Quantity)
		if err != nil || !qty.IsPositive() {
			return nil, decimal.Zero, decimal.Zero,
				fmt.Errorf("%w: cantidad %q en línea %d", domain.ErrInvalidInput, r.Quantity, i+1)
		}
		price, err := decimal.NewFromString(r.UnitPrice)
		if err != nil || price.IsNegative() {
			return nil, decimal.Zero, decimal.Zero,
				fmt.Errorf("%w: precio %q en línea %d", domain.ErrInvalidInput, r.UnitPrice, i+1)
		}
		taxRate := decimal.Zero
		if r.TaxRate != "" {
			taxRate, err = decimal.NewFromString(r.TaxRate)
			if err != nil || taxRate.IsNegative() {
				return nil, decimal.Zero, decimal.Zero,
					fmt.Errorf("%w: tax_rate %q en línea %d", domain.ErrInvalidInput, r.TaxRate, i+1)
			}
		}

		lineSubtotal := qty.Mul(price).Round(2)
		lineTax := lineSubtotal.Mul(taxRate).Div(hundred).Round(2)

		items = append(items, entity.InvoiceItem{
			Description: r.Description,
			Quantity:    qty,
			UnitPrice:   price,
			TaxRate:     taxRate,
			Subtotal:    lineSubtotal,
		})
		subtotal = subtotal.Add(lineSubtotal)
		taxTotal = taxTotal.Add(lineTax)
	}
	return items, subtotal, taxTotal, nil
}

func toInvoiceDTO(inv entity.Invoice, items []entity.InvoiceItem) dto.InvoiceDTO {
	d := dto.InvoiceDTO{
		ID:         inv.ID,
		CompanyID:  inv.CompanyID,
		CreatedBy:  inv.CreatedBy,
		ClientID:   inv.ClientID,
		Number:     inv.Number,
		Status:     inv.Status,
		Subtotal:   inv.Subtotal,
		TaxTotal:   inv.TaxTotal,
		GrandTotal: inv.GrandTotal,
		IssueDate:  inv.IssueDate.Format(dateLayout),
	}
	if inv.DueDate != nil {
		d.DueDate = inv.DueDate.Format(dateLayout)
	}
	for _, it := range items {
		d.Items = append(d.Items, dto.InvoiceItemDTO{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Subtotal:    it.Subtotal,
		})
	}
	return d
}
