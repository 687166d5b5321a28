package finance

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

// CreateTransaction registra un movimiento manual del libro.
func (uc *FinanceUseCase) CreateTransaction(
	ctx context.Context,
	companyID, defaultUserID string,
	in dto.CreateTransactionRequest,
) (*dto.TransactionDTO, error) {
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, in.Date)
	}
	userID := in.UserID
	if userID == "" {
		userID = defaultUserID
	}

	now := time.Now()
	tx := &entity.Transaction{
		CompanyID:   companyID,
		UserID:      userID,
		Type:        in.Type,
		Amount:      amount,
		Description: in.Description,
		Category:    in.Category,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("finance.CreateTransaction: %w", err)
	}
	out := toTransactionDTO(*tx)
	return &out, nil
}

// UpdateTransaction modifica un movimiento existente. Solo se tocan los
// campos presentes en la petición.
func (uc *FinanceUseCase) UpdateTransaction(
	ctx context.Context,
	companyID, id string,
	in dto.UpdateTransactionRequest,
) (*dto.TransactionDTO, error) {
	tx, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finance.UpdateTransaction: %w", err)
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	if tx.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	if in.Type != "" {
		tx.Type = in.Type
	}
	if in.Amount != "" {
		amount, err := parseAmount(in.Amount)
		if err != nil {
			return nil, err
		}
		tx.Amount = amount
	}
	if in.Date != "" {
		date, err := time.Parse(dateLayout, in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, in.Date)
		}
		tx.Date = date
	}
	if in.Description != "" {
		tx.Description = in.Description
	}
	if in.Category != "" {
		tx.Category = in.Category
	}
	tx.UpdatedAt = time.Now()

	if err := uc.txRepo.Update(ctx, tx); err != nil {
		return nil, fmt.Errorf("finance.UpdateTransaction: %w", err)
	}
	out := toTransactionDTO(*tx)
	return &out, nil
}

// DeleteTransaction elimina un movimiento del libro.
func (uc *FinanceUseCase) DeleteTransaction(ctx context.Context, companyID, id string) error {
	tx, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("finance.DeleteTransaction: %w", err)
	}
	if tx == nil {
		return domain.ErrNotFound
	}
	if tx.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if err := uc.txRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("finance.DeleteTransaction: %w", err)
	}
	return nil
}

// ListTransactions lista movimientos con filtros y paginación acotada.
func (uc *FinanceUseCase) ListTransactions(
	ctx context.Context,
	companyID string,
	in dto.ListTransactionsRequest,
) ([]dto.TransactionDTO, error) {
	in.DefaultPage()
	if in.Limit > uc.maxPage {
		in.Limit = uc.maxPage
	}

	f := repository.TransactionFilter{
		CompanyID: companyID,
		UserID:    in.UserID,
		Type:      in.Type,
		Category:  in.Category,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	var err error
	if f.StartDate, f.EndDate, err = parsePeriod(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	txs, err := uc.txRepo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("finance.ListTransactions: %w", err)
	}
	out := make([]dto.TransactionDTO, len(txs))
	for i, tx := range txs {
		out[i] = toTransactionDTO(tx)
	}
	return out, nil
}

// ParseSummaryFilters convierte los parámetros de query del resumen en filtros
// tipados. Fechas vacías = dimensión sin restricción.
func ParseSummaryFilters(companyID string, in dto.SummaryRequest) (SummaryFilters, error) {
	start, end, err := parsePeriod(in.StartDate, in.EndDate)
	if err != nil {
		return SummaryFilters{}, err
	}
	return SummaryFilters{
		CompanyID: companyID,
		UserID:    in.UserID,
		StartDate: start,
		EndDate:   end,
	}, nil
}

func parsePeriod(startStr, endStr string) (start, end *time.Time, err error) {
	if startStr != "" {
		t, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, startStr)
		}
		start = &t
	}
	if endStr != "" {
		t, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, endStr)
		}
		end = &t
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}
	return start, end, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: monto %q", domain.ErrInvalidInput, s)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: el monto no puede ser negativo", domain.ErrInvalidInput)
	}
	return amount, nil
}

func toTransactionDTO(tx entity.Transaction) dto.TransactionDTO {
	return dto.TransactionDTO{
		ID:          tx.ID,
		CompanyID:   tx.CompanyID,
		UserID:      tx.UserID,
		Type:        tx.Type,
		Amount:      tx.Amount,
		Description: tx.Description,
		Category:    tx.Category,
		Date:        tx.Date.Format(dateLayout),
	}
}
