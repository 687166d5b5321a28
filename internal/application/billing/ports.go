package billing

import (
	"context"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con el repo
// de facturación atado a la tx. Cabecera y líneas de una factura se escriben
// juntas o no se escribe nada.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// InvoicePDFGenerator puerto para la representación gráfica de la factura
// (implementado en infrastructure/pdf con Maroto).
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		items []entity.InvoiceItem,
		company *entity.Company,
		client *entity.Client,
	) ([]byte, error)
}
