package billing

import (
	"context"
	"fmt"

	"github.com/ubsapps/ubs-erp-api/internal/domain"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// PDFUseCase arma los datos de la factura y delega el render al generador.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	clientRepo  repository.ClientRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	clientRepo  repository.ClientRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		clientRepo:  clientRepo,
		generator:   generator,
	}
}

// GenerarPDF devuelve los bytes del PDF de la factura.
func (uc *PDFUseCase) GenerarPDF(ctx context.Context, companyID, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("billing.GenerarPDF: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}

	items, err := uc.invoiceRepo.GetItemsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("billing.GenerarPDF: líneas: %w", err)
	}
	company, err := uc.companyRepo.GetByID(ctx, inv.CompanyID)
	if err != nil {
		return nil, "", fmt.Errorf("billing.GenerarPDF: empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	client, err := uc.clientRepo.GetByID(ctx, inv.ClientID)
	if err != nil {
		return nil, "", fmt.Errorf("billing.GenerarPDF: cliente: %w", err)
	}
	if client == nil {
		return nil, "", domain.ErrNotFound
	}

	data, err := uc.generator.GenerateInvoicePDF(ctx, inv, items, company, client)
	if err != nil {
		return nil, "", fmt.Errorf("billing.GenerarPDF: render: %w", err)
	}
	filename := fmt.Sprintf("factura-%s.pdf", inv.Number)
	return data, filename, nil
}
