package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// Asegura que ProductSaleRepo implementa repository.ProductSaleRepository.
var _ repository.ProductSaleRepository = (*ProductSaleRepo)(nil)

// ProductSaleRepo implementación del puerto ProductSaleRepository sobre PostgreSQL.
type ProductSaleRepo struct {
	pool *pgxpool.Pool
}

// NewProductSaleRepository construye el adaptador de persistencia de ventas.
func NewProductSaleRepository(pool *pgxpool.Pool) *ProductSaleRepo {
	return &ProductSaleRepo{pool: pool}
}

// Create persiste una venta nueva.
func (r *ProductSaleRepo) Create(ctx context.Context, s *entity.ProductSale) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO product_sales (id, company_id, sold_by, product_name, quantity, total_amount, status, notes, sold_at, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, '')::UUID, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(ctx, query,
		s.ID, s.CompanyID, s.SoldBy, s.ProductName, s.Quantity,
		s.TotalAmount, s.Status, s.Notes, s.SoldAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// Update persiste estado, notas y sold_at de una venta existente.
func (r *ProductSaleRepo) Update(ctx context.Context, s *entity.ProductSale) error {
	const query = `
		UPDATE product_sales
		SET status = $2, notes = $3, sold_at = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, s.ID, s.Status, s.Notes, s.SoldAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update sale: no existe %s", s.ID)
	}
	return nil
}

// GetByID obtiene una venta por ID; nil, nil si no existe.
func (r *ProductSaleRepo) GetByID(ctx context.Context, id string) (*entity.ProductSale, error) {
	const query = `
		SELECT id, company_id, COALESCE(sold_by::TEXT, ''), product_name, quantity,
		       total_amount, status, notes, sold_at, created_at, updated_at
		FROM product_sales WHERE id = $1`
	var s entity.ProductSale
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CompanyID, &s.SoldBy, &s.ProductName, &s.Quantity,
		&s.TotalAmount, &s.Status, &s.Notes, &s.SoldAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// List devuelve las ventas que cumplen el filtro, por fecha de alta descendente.
func (r *ProductSaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]entity.ProductSale, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, company_id, COALESCE(sold_by::TEXT, ''), product_name, quantity,
		       total_amount, status, notes, sold_at, created_at, updated_at
		FROM product_sales WHERE 1=1`)

	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		sb.WriteString(" AND " + cond + "$" + strconv.Itoa(len(args)))
	}

	if f.CompanyID != "" {
		add("company_id::TEXT = ", f.CompanyID)
	}
	if f.SoldBy != "" {
		add("sold_by::TEXT = ", f.SoldBy)
	}
	if f.Status != "" {
		add("status = ", f.Status)
	}
	if f.StartDate != nil {
		add("created_at >= ", *f.StartDate)
	}
	if f.EndDate != nil {
		add("created_at <= ", *f.EndDate)
	}

	sb.WriteString(" ORDER BY created_at DESC")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []entity.ProductSale
	for rows.Next() {
		var s entity.ProductSale
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.SoldBy, &s.ProductName, &s.Quantity,
			&s.TotalAmount, &s.Status, &s.Notes, &s.SoldAt, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list sales scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
