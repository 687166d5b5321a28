package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/ubsapps/ubs-erp-api/internal/application/dto"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// Policy políticas operativas del agregador: timeout por lectura y reintentos
// acotados con backoff. El original no tenía ninguna de las dos; aquí son
// configurables con defaults seguros.
type Policy struct {
	QueryTimeout  time.Duration // 0 = sin timeout por lectura
	RetryAttempts int           // intentos totales por lectura; <1 se trata como 1
}

// SummaryFilters acota el resumen. Todos los campos son opcionales:
// un campo vacío/nil NO restringe esa dimensión.
type SummaryFilters struct {
	CompanyID string
	UserID    string
	StartDate *time.Time // inclusive
	EndDate   *time.Time // inclusive; su día calendario cuenta completo
}

// FinanceUseCase calcula el resumen financiero uniendo tres fuentes
// independientes y hace el bucketing por períodos para los gráficos.
//
// Sin estado entre llamadas: invocaciones concurrentes con filtros distintos
// no interfieren entre sí.
type FinanceUseCase struct {
	revenueRepo repository.RevenueRepository
	txRepo      repository.TransactionRepository
	policy      Policy
	maxPage     int
}

// NewFinanceUseCase construye el caso de uso. maxPage acota cuántas
// transacciones puede devolver un listado o alimentar un gráfico.
func NewFinanceUseCase(
	revenueRepo repository.RevenueRepository,
	txRepo repository.TransactionRepository,
	policy Policy,
	maxPage int,
) *FinanceUseCase {
	if maxPage <= 0 {
		maxPage = 500
	}
	return &FinanceUseCase{
		revenueRepo: revenueRepo,
		txRepo:      txRepo,
		policy:      policy,
		maxPage:     maxPage,
	}
}

// GetSummary une las tres fuentes de ingreso en un solo resumen:
//
//	TotalIncome  = Σ transacciones income + Σ ventas sold + Σ facturas approved/paid
//	TotalExpenses = Σ transacciones expense (ventas y facturas jamás son gasto)
//	NetProfit    = TotalIncome - TotalExpenses
//
// Las tres lecturas van en paralelo (no hay dependencia de orden entre ellas).
// Si cualquiera falla, falla la operación completa: un total financiero nunca
// se reporta parcial. Cero filas no es error: resumen en ceros.
func (uc *FinanceUseCase) GetSummary(ctx context.Context, f SummaryFilters) (*dto.FinancialSummaryDTO, error) {
	rf := repository.RevenueFilter{
		CompanyID: f.CompanyID,
		UserID:    f.UserID,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
	}

	type txResult struct {
		income, expenses repository.RevenueSums
		err              error
	}
	type sumsResult struct {
		sums repository.RevenueSums
		err  error
	}

	txCh := make(chan txResult, 1)
	salesCh := make(chan sumsResult, 1)
	invCh := make(chan sumsResult, 1)

	go func() {
		var income, expenses repository.RevenueSums
		err := uc.readWithPolicy(ctx, func(rctx context.Context) error {
			var err error
			income, expenses, err = uc.revenueRepo.TransactionTotals(rctx, rf)
			return err
		})
		txCh <- txResult{income, expenses, err}
	}()
	go func() {
		var sums repository.RevenueSums
		err := uc.readWithPolicy(ctx, func(rctx context.Context) error {
			var err error
			sums, err = uc.revenueRepo.SoldSalesTotals(rctx, rf)
			return err
		})
		salesCh <- sumsResult{sums, err}
	}()
	go func() {
		var sums repository.RevenueSums
		err := uc.readWithPolicy(ctx, func(rctx context.Context) error {
			var err error
			sums, err = uc.revenueRepo.RevenueInvoiceTotals(rctx, rf)
			return err
		})
		invCh <- sumsResult{sums, err}
	}()

	txRes := <-txCh
	salesRes := <-salesCh
	invRes := <-invCh

	if txRes.err != nil {
		return nil, fmt.Errorf("finance: transacciones: %w", txRes.err)
	}
	if salesRes.err != nil {
		return nil, fmt.Errorf("finance: ventas: %w", salesRes.err)
	}
	if invRes.err != nil {
		return nil, fmt.Errorf("finance: facturas: %w", invRes.err)
	}

	totalIncome := txRes.income.Total.Add(salesRes.sums.Total).Add(invRes.sums.Total)
	totalExpenses := txRes.expenses.Total

	return &dto.FinancialSummaryDTO{
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		NetProfit:     totalIncome.Sub(totalExpenses),
		IncomeCount:   txRes.income.Count + salesRes.sums.Count + invRes.sums.Count,
		ExpenseCount:  txRes.expenses.Count,
	}, nil
}

// GetRevenueChart devuelve periodCount buckets (del más antiguo al actual) con
// los ingresos y gastos de las transacciones del libro. periodCount <= 0 usa 6.
func (uc *FinanceUseCase) GetRevenueChart(
	ctx context.Context,
	companyID, userID string,
	periodCount int,
	g Granularity,
) ([]dto.RevenueBucketDTO, error) {
	if periodCount <= 0 {
		periodCount = 6
	}
	now := time.Now()
	start := WindowStart(now, periodCount, g)

	txs, err := uc.txRepo.List(ctx, repository.TransactionFilter{
		CompanyID: companyID,
		UserID:    userID,
		StartDate: &start,
		Limit:     uc.maxPage,
	})
	if err != nil {
		return nil, fmt.Errorf("finance: gráfico de ingresos: %w", err)
	}

	buckets := BucketByPeriod(txs, periodCount, g)
	out := make([]dto.RevenueBucketDTO, len(buckets))
	for i, b := range buckets {
		out[i] = dto.RevenueBucketDTO{Label: b.Label, Income: b.Income, Expenses: b.Expenses}
	}
	return out, nil
}

// readWithPolicy ejecuta una lectura con timeout por intento y reintentos con
// backoff exponencial (100ms, 200ms, 400ms, ...). Si el contexto padre se
// cancela, no se reintenta.
func (uc *FinanceUseCase) readWithPolicy(ctx context.Context, read func(context.Context) error) error {
	attempts := uc.policy.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		rctx := ctx
		var cancel context.CancelFunc
		if uc.policy.QueryTimeout > 0 {
			rctx, cancel = context.WithTimeout(ctx, uc.policy.QueryTimeout)
		}
		err = read(rctx)
		if cancel != nil {
			cancel()
		}
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-time.After(time.Duration(1<<i) * 100 * time.Millisecond):
		case <-ctx.Done():
			return err
		}
	}
	return err
}
