package repository

import (
	"context"
	"time"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
)

// TransactionFilter filtros para listados de transacciones.
// Campos vacíos/nil no restringen esa dimensión.
type TransactionFilter struct {
	CompanyID string
	UserID    string
	Type      string     // income | expense | vacío
	Category  string
	StartDate *time.Time // inclusive
	EndDate   *time.Time // inclusive
	Limit     int
	Offset    int
}

// TransactionRepository puerto de persistencia para movimientos del libro.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	Update(ctx context.Context, tx *entity.Transaction) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	// List devuelve las transacciones que cumplen el filtro, ordenadas por
	// fecha descendente. Limit siempre viene acotado por el caso de uso.
	List(ctx context.Context, f TransactionFilter) ([]entity.Transaction, error)
}
