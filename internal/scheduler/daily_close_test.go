package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubsapps/ubs-erp-api/internal/application/finance"
	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
	"github.com/ubsapps/ubs-erp-api/pkg/config"
	"github.com/ubsapps/ubs-erp-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeCompanyRepo struct {
	activeIDs []string
	err       error
}

func (f *fakeCompanyRepo) Create(context.Context, *entity.Company) error { return nil }
func (f *fakeCompanyRepo) Update(context.Context, *entity.Company) error { return nil }
func (f *fakeCompanyRepo) GetByID(context.Context, string) (*entity.Company, error) {
	return nil, nil
}
func (f *fakeCompanyRepo) List(context.Context, int, int) ([]entity.Company, error) {
	return nil, nil
}
func (f *fakeCompanyRepo) ListActiveIDs(context.Context) ([]string, error) {
	return f.activeIDs, f.err
}

type fakeCloseRepo struct {
	upserts []entity.DailyClose
	err     error
}

func (f *fakeCloseRepo) Upsert(_ context.Context, c *entity.DailyClose) error {
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, *c)
	return nil
}

func (f *fakeCloseRepo) GetByCompanyAndDate(context.Context, string, string) (*entity.DailyClose, error) {
	return nil, nil
}

// fakeRevenueRepo devuelve totales fijos por empresa y registra los filtros
// con los que fue consultado. Las ventas seeded se filtran con la misma
// semántica de corte que el SQL: el día de EndDate cuenta completo.
type fakeRevenueRepo struct {
	income    decimal.Decimal
	sales     []entity.ProductSale
	failFor   string // companyID que debe fallar
	lastStart *time.Time
	lastEnd   *time.Time
}

func (f *fakeRevenueRepo) TransactionTotals(_ context.Context, flt repository.RevenueFilter) (repository.RevenueSums, repository.RevenueSums, error) {
	if flt.CompanyID == f.failFor {
		return repository.RevenueSums{}, repository.RevenueSums{}, errors.New("db caída")
	}
	f.lastStart, f.lastEnd = flt.StartDate, flt.EndDate
	income := repository.RevenueSums{Total: f.income}
	if !f.income.IsZero() {
		income.Count = 1
	}
	return income, repository.RevenueSums{}, nil
}

func (f *fakeRevenueRepo) SoldSalesTotals(_ context.Context, flt repository.RevenueFilter) (repository.RevenueSums, error) {
	sums := repository.RevenueSums{Total: decimal.Zero}
	for _, s := range f.sales {
		if s.Status != entity.SaleStatusSold || s.SoldAt == nil {
			continue
		}
		if flt.CompanyID != "" && s.CompanyID != flt.CompanyID {
			continue
		}
		if flt.StartDate != nil && s.SoldAt.Before(*flt.StartDate) {
			continue
		}
		if flt.EndDate != nil && !s.SoldAt.Before(flt.EndDate.AddDate(0, 0, 1)) {
			continue
		}
		sums.Total = sums.Total.Add(s.TotalAmount)
		sums.Count++
	}
	return sums, nil
}

func (f *fakeRevenueRepo) RevenueInvoiceTotals(context.Context, repository.RevenueFilter) (repository.RevenueSums, error) {
	return repository.RevenueSums{}, nil
}

type fakeTxRepo struct{}

func (f *fakeTxRepo) Create(context.Context, *entity.Transaction) error { return nil }
func (f *fakeTxRepo) Update(context.Context, *entity.Transaction) error { return nil }
func (f *fakeTxRepo) Delete(context.Context, string) error              { return nil }
func (f *fakeTxRepo) GetByID(context.Context, string) (*entity.Transaction, error) {
	return nil, nil
}
func (f *fakeTxRepo) List(context.Context, repository.TransactionFilter) ([]entity.Transaction, error) {
	return nil, nil
}

func newTestScheduler(revenueRepo *fakeRevenueRepo, companyRepo *fakeCompanyRepo, closeRepo *fakeCloseRepo) *DailyCloseScheduler {
	financeUC := finance.NewFinanceUseCase(revenueRepo, &fakeTxRepo{}, finance.Policy{RetryAttempts: 1}, 100)
	s := NewDailyCloseScheduler(
		config.SchedulerConfig{Enabled: true, CronSpec: "0 0 5 * * *"},
		financeUC, companyRepo, closeRepo,
		logger.New(logger.Config{Env: "development", Level: "error"}),
	)
	// Reloj fijo para que el "día anterior" sea determinista.
	s.now = func() time.Time {
		return time.Date(2026, 8, 28, 5, 0, 0, 0, time.UTC)
	}
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRunOnce_CierraElDiaAnteriorPorEmpresa(t *testing.T) {
	revenueRepo := &fakeRevenueRepo{income: decimal.NewFromInt(1500)}
	companyRepo := &fakeCompanyRepo{activeIDs: []string{"co-1", "co-2"}}
	closeRepo := &fakeCloseRepo{}
	s := newTestScheduler(revenueRepo, companyRepo, closeRepo)

	require.NoError(t, s.RunOnce(context.Background()))
	require.Len(t, closeRepo.upserts, 2, "debe cerrar cada empresa activa")

	c := closeRepo.upserts[0]
	assert.Equal(t, "co-1", c.CompanyID)
	assert.Equal(t, "2026-08-27", c.Date.Format("2006-01-02"), "el cierre es del día anterior")
	assert.True(t, c.TotalIncome.Equal(decimal.NewFromInt(1500)))
	assert.True(t, c.NetProfit.Equal(decimal.NewFromInt(1500)))

	// Ambos extremos son el día calendario cerrado; EndDate cuenta ese día
	// completo según el contrato del RevenueFilter.
	require.NotNil(t, revenueRepo.lastStart)
	require.NotNil(t, revenueRepo.lastEnd)
	assert.Equal(t, "2026-08-27 00:00:00", revenueRepo.lastStart.Format("2006-01-02 15:04:05"))
	assert.Equal(t, "2026-08-27 00:00:00", revenueRepo.lastEnd.Format("2006-01-02 15:04:05"))
}

// Una venta vendida la madrugada del día del job (antes de que corra el cierre
// de las 05:00) pertenece al cierre de HOY, no al de ayer. Si entrara a ambos
// se contaría dos veces.
func TestRunOnce_VentaDeLaMadrugadaNoEntraAlCierreDeAyer(t *testing.T) {
	soldYesterday := time.Date(2026, 8, 27, 18, 30, 0, 0, time.UTC)
	soldToday := time.Date(2026, 8, 28, 4, 0, 0, 0, time.UTC)
	revenueRepo := &fakeRevenueRepo{
		income: decimal.Zero,
		sales: []entity.ProductSale{
			{CompanyID: "co-1", Status: entity.SaleStatusSold, TotalAmount: decimal.NewFromInt(100), SoldAt: &soldYesterday},
			{CompanyID: "co-1", Status: entity.SaleStatusSold, TotalAmount: decimal.NewFromInt(999), SoldAt: &soldToday},
		},
	}
	companyRepo := &fakeCompanyRepo{activeIDs: []string{"co-1"}}
	closeRepo := &fakeCloseRepo{}
	s := newTestScheduler(revenueRepo, companyRepo, closeRepo)

	require.NoError(t, s.RunOnce(context.Background()))
	require.Len(t, closeRepo.upserts, 1)

	c := closeRepo.upserts[0]
	assert.Equal(t, "2026-08-27", c.Date.Format("2006-01-02"))
	assert.True(t, c.TotalIncome.Equal(decimal.NewFromInt(100)),
		"solo la venta del día cerrado cuenta, no la de la madrugada siguiente: %s", c.TotalIncome)
	assert.Equal(t, 1, c.IncomeCount)
}

func TestRunOnce_UnaEmpresaFallidaNoAbortaLasDemas(t *testing.T) {
	revenueRepo := &fakeRevenueRepo{income: decimal.NewFromInt(100), failFor: "co-1"}
	companyRepo := &fakeCompanyRepo{activeIDs: []string{"co-1", "co-2", "co-3"}}
	closeRepo := &fakeCloseRepo{}
	s := newTestScheduler(revenueRepo, companyRepo, closeRepo)

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 de 3", "debe reportar cuántas empresas fallaron")
	assert.Len(t, closeRepo.upserts, 2, "las empresas sanas se cierran igual")
}

func TestRunOnce_ErrorListandoEmpresasAborta(t *testing.T) {
	revenueRepo := &fakeRevenueRepo{income: decimal.NewFromInt(100)}
	companyRepo := &fakeCompanyRepo{err: errors.New("db caída")}
	closeRepo := &fakeCloseRepo{}
	s := newTestScheduler(revenueRepo, companyRepo, closeRepo)

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Empty(t, closeRepo.upserts)
}

func TestStart_DeshabilitadoNoRegistraJob(t *testing.T) {
	revenueRepo := &fakeRevenueRepo{}
	companyRepo := &fakeCompanyRepo{}
	closeRepo := &fakeCloseRepo{}
	s := newTestScheduler(revenueRepo, companyRepo, closeRepo)
	s.cfg.Enabled = false

	require.NoError(t, s.Start())
	assert.Zero(t, s.jobID, "no debe registrarse ningún job")
	s.Stop()
}
