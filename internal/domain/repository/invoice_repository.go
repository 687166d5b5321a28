package repository

import (
	"context"
	"time"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
)

// InvoiceFilter filtros para listados de facturas.
type InvoiceFilter struct {
	CompanyID string
	CreatedBy string
	ClientID  string
	Status    string
	StartDate *time.Time // sobre issue_date, inclusive
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// InvoiceRepository puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(ctx context.Context, invoiceID string) ([]entity.InvoiceItem, error)
	List(ctx context.Context, f InvoiceFilter) ([]entity.Invoice, error)
	// NextNumber devuelve el siguiente consecutivo de factura para la empresa.
	NextNumber(ctx context.Context, companyID string, year int) (string, error)
}
