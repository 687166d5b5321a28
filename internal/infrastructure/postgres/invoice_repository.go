package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// Asegura que InvoiceRepo implementa repository.InvoiceRepository.
var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia de facturación.
// Acepta el pool o una tx (Querier) para poder participar en transacciones.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de una factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO invoices (id, company_id, created_by, client_id, number, status, subtotal, tax_total, grand_total, issue_date, due_date, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, '')::UUID, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, inv.CreatedBy, inv.ClientID, inv.Number, inv.Status,
		inv.Subtotal, inv.TaxTotal, inv.GrandTotal, inv.IssueDate, inv.DueDate,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert invoice: número %s duplicado: %w", inv.Number, err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la factura.
func (r *InvoiceRepo) CreateItem(ctx context.Context, item *entity.InvoiceItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO invoice_items (id, invoice_id, description, quantity, unit_price, tax_rate, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.InvoiceID, item.Description, item.Quantity,
		item.UnitPrice, item.TaxRate, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado de la factura.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	const query = `UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update invoice status: no existe %s", id)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura; nil, nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	const query = `
		SELECT id, company_id, COALESCE(created_by::TEXT, ''), client_id, number, status,
		       subtotal, tax_total, grand_total, issue_date, due_date, created_at, updated_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.CompanyID, &inv.CreatedBy, &inv.ClientID, &inv.Number, &inv.Status,
		&inv.Subtotal, &inv.TaxTotal, &inv.GrandTotal, &inv.IssueDate, &inv.DueDate,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetItemsByInvoiceID devuelve las líneas de una factura.
func (r *InvoiceRepo) GetItemsByInvoiceID(ctx context.Context, invoiceID string) ([]entity.InvoiceItem, error) {
	const query = `
		SELECT id, invoice_id, description, quantity, unit_price, tax_rate, subtotal
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice items: %w", err)
	}
	defer rows.Close()

	var out []entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(
			&it.ID, &it.InvoiceID, &it.Description, &it.Quantity,
			&it.UnitPrice, &it.TaxRate, &it.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("get invoice items scan: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// List devuelve las cabeceras que cumplen el filtro, por fecha de emisión descendente.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]entity.Invoice, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, company_id, COALESCE(created_by::TEXT, ''), client_id, number, status,
		       subtotal, tax_total, grand_total, issue_date, due_date, created_at, updated_at
		FROM invoices WHERE 1=1`)

	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		sb.WriteString(" AND " + cond + "$" + strconv.Itoa(len(args)))
	}

	if f.CompanyID != "" {
		add("company_id::TEXT = ", f.CompanyID)
	}
	if f.CreatedBy != "" {
		add("created_by::TEXT = ", f.CreatedBy)
	}
	if f.ClientID != "" {
		add("client_id::TEXT = ", f.ClientID)
	}
	if f.Status != "" {
		add("status = ", f.Status)
	}
	if f.StartDate != nil {
		add("issue_date >= ", *f.StartDate)
	}
	if f.EndDate != nil {
		add("issue_date <= ", *f.EndDate)
	}

	sb.WriteString(" ORDER BY issue_date DESC, created_at DESC")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var out []entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.CompanyID, &inv.CreatedBy, &inv.ClientID, &inv.Number, &inv.Status,
			&inv.Subtotal, &inv.TaxTotal, &inv.GrandTotal, &inv.IssueDate, &inv.DueDate,
			&inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list invoices scan: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// NextNumber devuelve el siguiente consecutivo de factura de la empresa para
// el año dado, con formato "F-<año>-00042".
func (r *InvoiceRepo) NextNumber(ctx context.Context, companyID string, year int) (string, error) {
	const query = `
		SELECT COUNT(*) FROM invoices
		WHERE company_id = $1 AND number LIKE $2`
	prefix := fmt.Sprintf("F-%d-", year)
	var count int
	if err := r.q.QueryRow(ctx, query, companyID, prefix+"%").Scan(&count); err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return fmt.Sprintf("%s%05d", prefix, count+1), nil
}
