package finance_test

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
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del RevenueRepository: replica en memoria lo que las consultas SQL
// hacen en producción, incluida la allow-list de estados (sold para ventas,
// approved/paid para facturas).
// ──────────────────────────────────────────────────────────────────────────────

type fakeRevenueRepo struct {
	txs      []entity.Transaction
	sales    []entity.ProductSale
	invoices []entity.Invoice

	// Fallos pendientes por fuente (cada lectura consume uno). Permite probar
	// la semántica todo-o-nada y los reintentos.
	failTx    int
	failSales int
	failInv   int

	txCalls int // lecturas de transacciones realizadas (contando reintentos)
}

var errRead = errors.New("lectura fallida")

func matchesFilter(companyID, userID string, date time.Time, f repository.RevenueFilter) bool {
	if f.CompanyID != "" && companyID != f.CompanyID {
		return false
	}
	if f.UserID != "" && userID != f.UserID {
		return false
	}
	if f.StartDate != nil && date.Before(*f.StartDate) {
		return false
	}
	// El día calendario de EndDate cuenta completo, igual que el corte
	// < EndDate + 1 día de las consultas reales.
	if f.EndDate != nil && !date.Before(f.EndDate.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func (r *fakeRevenueRepo) TransactionTotals(_ context.Context, f repository.RevenueFilter) (income, expenses repository.RevenueSums, err error) {
	r.txCalls++
	if r.failTx > 0 {
		r.failTx--
		return repository.RevenueSums{}, repository.RevenueSums{}, errRead
	}
	income.Total, expenses.Total = decimal.Zero, decimal.Zero
	for _, tx := range r.txs {
		if !matchesFilter(tx.CompanyID, tx.UserID, tx.Date, f) {
			continue
		}
		if tx.IsIncome() {
			income.Total = income.Total.Add(tx.Amount)
			income.Count++
		} else {
			expenses.Total = expenses.Total.Add(tx.Amount)
			expenses.Count++
		}
	}
	return income, expenses, nil
}

func (r *fakeRevenueRepo) SoldSalesTotals(_ context.Context, f repository.RevenueFilter) (repository.RevenueSums, error) {
	if r.failSales > 0 {
		r.failSales--
		return repository.RevenueSums{}, errRead
	}
	sums := repository.RevenueSums{Total: decimal.Zero}
	for _, s := range r.sales {
		if s.Status != entity.SaleStatusSold {
			continue // regla dura: solo sold entra al revenue
		}
		when := s.CreatedAt
		if s.SoldAt != nil {
			when = *s.SoldAt // el filtro real corre sobre sold_at
		}
		if !matchesFilter(s.CompanyID, s.SoldBy, when, f) {
			continue
		}
		sums.Total = sums.Total.Add(s.TotalAmount)
		sums.Count++
	}
	return sums, nil
}

func (r *fakeRevenueRepo) RevenueInvoiceTotals(_ context.Context, f repository.RevenueFilter) (repository.RevenueSums, error) {
	if r.failInv > 0 {
		r.failInv--
		return repository.RevenueSums{}, errRead
	}
	sums := repository.RevenueSums{Total: decimal.Zero}
	for _, inv := range r.invoices {
		if inv.Status != entity.InvoiceStatusApproved && inv.Status != entity.InvoiceStatusPaid {
			continue
		}
		if !matchesFilter(inv.CompanyID, inv.CreatedBy, inv.IssueDate, f) {
			continue
		}
		sums.Total = sums.Total.Add(inv.GrandTotal)
		sums.Count++
	}
	return sums, nil
}

type fakeTxRepo struct {
	txs []entity.Transaction
}

func (r *fakeTxRepo) Create(context.Context, *entity.Transaction) error { return nil }
func (r *fakeTxRepo) Update(context.Context, *entity.Transaction) error { return nil }
func (r *fakeTxRepo) Delete(context.Context, string) error              { return nil }
func (r *fakeTxRepo) GetByID(context.Context, string) (*entity.Transaction, error) {
	return nil, nil
}
func (r *fakeTxRepo) List(_ context.Context, f repository.TransactionFilter) ([]entity.Transaction, error) {
	var out []entity.Transaction
	for _, tx := range r.txs {
		rf := repository.RevenueFilter{CompanyID: f.CompanyID, UserID: f.UserID, StartDate: f.StartDate, EndDate: f.EndDate}
		if matchesFilter(tx.CompanyID, tx.UserID, tx.Date, rf) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testCompany = "co-1"

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUC(repo *fakeRevenueRepo) *finance.FinanceUseCase {
	return finance.NewFinanceUseCase(repo, &fakeTxRepo{}, finance.Policy{RetryAttempts: 1}, 500)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetSummary
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: income 100 + expense 30 en transacciones, una venta
// sold de 50 y una factura paid de 20.
func TestGetSummary_UnionDeTresFuentes(t *testing.T) {
	repo := &fakeRevenueRepo{
		txs: []entity.Transaction{
			{CompanyID: testCompany, Type: entity.TransactionTypeIncome, Amount: money("100"), Date: date("2024-01-05")},
			{CompanyID: testCompany, Type: entity.TransactionTypeExpense, Amount: money("30"), Date: date("2024-01-10")},
		},
		sales: []entity.ProductSale{
			{CompanyID: testCompany, Status: entity.SaleStatusSold, TotalAmount: money("50"), CreatedAt: date("2024-01-07")},
		},
		invoices: []entity.Invoice{
			{CompanyID: testCompany, Status: entity.InvoiceStatusPaid, GrandTotal: money("20"), IssueDate: date("2024-01-08")},
		},
	}

	summary, err := newUC(repo).GetSummary(context.Background(), finance.SummaryFilters{CompanyID: testCompany})
	require.NoError(t, err)

	assert.True(t, summary.TotalIncome.Equal(money("170")), "total income: %s", summary.TotalIncome)
	assert.True(t, summary.TotalExpenses.Equal(money("30")), "total expenses: %s", summary.TotalExpenses)
	assert.True(t, summary.NetProfit.Equal(money("140")), "net profit: %s", summary.NetProfit)
	assert.Equal(t, 3, summary.IncomeCount)
	assert.Equal(t, 1, summary.ExpenseCount)
}

// Una venta pendiente jamás suma al revenue, por grande que sea.
func TestGetSummary_VentaPendienteNoCuenta(t *testing.T) {
	repo := &fakeRevenueRepo{
		sales: []entity.ProductSale{
			{CompanyID: testCompany, Status: entity.SaleStatusPending, TotalAmount: money("1000"), CreatedAt: date("2024-02-01")},
		},
	}

	summary, err := newUC(repo).GetSummary(context.Background(), finance.SummaryFilters{CompanyID: testCompany})
	require.NoError(t, err)
	assert.True(t, summary.TotalIncome.IsZero())
	assert.Equal(t, 0, summary.IncomeCount)
}

// Cambiar una venta de sold a otro estado debe restar exactamente su monto.
func TestGetSummary_TransicionDeSoldRestaExacto(t *testing.T) {
	sale := entity.ProductSale{CompanyID: testCompany, Status: entity.SaleStatusSold, TotalAmount: money("75.25"), CreatedAt: date("2024-03-01")}
	repo := &fakeRevenueRepo{sales: []entity.ProductSale{sale}}
	uc := newUC(repo)

	before, err := uc.GetSummary(context.Background(), finance.SummaryFilters{CompanyID: testCompany})
	require.NoError(t, err)

	repo.sales[0].Status = entity.SaleStatusCancelled
	after, err := uc.GetSummary(context.Background(), finance.SummaryFilters{CompanyID: testCompany})
	require.NoError(t, err)

	diff := before.TotalIncome.Sub(after.TotalIncome)
	assert.True(t, diff.Equal(sale.TotalAmount), "diferencia: %s", diff)
}

// NetProfit == TotalIncome - TotalExpenses, para cualquier conjunto de filtros.
func TestGetSummary_InvarianteNetProfit(t *testing.T) {
	repo := &fakeRevenueRepo{
		txs: []entity.Transaction{
			{CompanyID: testCompany, UserID: "u1", Type: entity.TransactionTypeIncome, Amount: money("19.99"), Date: date("2024-01-01")},
			{CompanyID: testCompany, UserID: "u2", Type: entity.TransactionTypeExpense, Amount: money("7.33"), Date: date("2024-02-15")},
			{CompanyID: "otra", Type: entity.TransactionTypeIncome, Amount: money("500"), Date: date("2024-02-20")},
		},
		sales: []entity.ProductSale{
			{CompanyID: testCompany, SoldBy: "u1", Status: entity.SaleStatusSold, TotalAmount: money("120.10"), CreatedAt: date("2024-02-01")},
		},
		invoices: []entity.Invoice{
			{CompanyID: testCompany, CreatedBy: "u2", Status: entity.InvoiceStatusApproved, GrandTotal: money("80.01"), IssueDate: date("2024-01-20")},
		},
	}
	uc := newUC(repo)

	start, end := date("2024-01-01"), date("2024-02-28")
	filterSets := []finance.SummaryFilters{
		{},
		{CompanyID: testCompany},
		{CompanyID: testCompany, UserID: "u1"},
		{CompanyID: testCompany, StartDate: &start, EndDate: &end},
	}
	for _, f := range filterSets {
		summary, err := uc.GetSummary(context.Background(), f)
		require.NoError(t, err)
		assert.True(t, summary.NetProfit.Equal(summary.TotalIncome.Sub(summary.TotalExpenses)))
	}
}

// Un filtro ausente no restringe: sin CompanyID deben entrar ambas empresas.
func TestGetSummary_FiltroVacioNoRestringe(t *testing.T) {
	repo := &fakeRevenueRepo{
		txs: []entity.Transaction{
			{CompanyID: "co-1", Type: entity.TransactionTypeIncome, Amount: money("10"), Date: date("2024-01-01")},
			{CompanyID: "co-2", Type: entity.TransactionTypeIncome, Amount: money("20"), Date: date("2024-01-02")},
		},
	}

	summary, err := newUC(repo).GetSummary(context.Background(), finance.SummaryFilters{})
	require.NoError(t, err)
	assert.True(t, summary.TotalIncome.Equal(money("30")))
}

// Cero filas no es error: resumen en ceros.
func TestGetSummary_SinFilas(t *testing.T) {
	summary, err := newUC(&fakeRevenueRepo{}).GetSummary(context.Background(), finance.SummaryFilters{CompanyID: testCompany})
	require.NoError(t, err)
	assert.True(t, summary.TotalIncome.IsZero())
	assert.True(t, summary.TotalExpenses.IsZero())
	assert.True(t, summary.NetProfit.IsZero())
	assert.Equal(t, 0, summary.IncomeCount)
	assert.Equal(t, 0, summary.ExpenseCount)
}

// Si una de las tres lecturas falla, falla la operación completa:
// nunca se devuelve un resumen parcial.
func TestGetSummary_FalloDeUnaFuenteAbortaTodo(t *testing.T) {
	repo := &fakeRevenueRepo{
		txs: []entity.Transaction{
			{CompanyID: testCompany, Type: entity.TransactionTypeIncome, Amount: money("100"), Date: date("2024-01-01")},
		},
		failSales: 1,
	}

	summary, err := newUC(repo).GetSummary(context.Background(), finance.SummaryFilters{CompanyID: testCompany})
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.ErrorIs(t, err, errRead)
}

// Idempotencia: dos llamadas con filtros idénticos y datos sin cambios
// producen el mismo resultado.
func TestGetSummary_Idempotente(t *testing.T) {
	repo := &fakeRevenueRepo{
		txs: []entity.Transaction{
			{CompanyID: testCompany, Type: entity.TransactionTypeIncome, Amount: money("42.42"), Date: date("2024-05-05")},
		},
	}
	uc := newUC(repo)

	first, err := uc.GetSummary(context.Background(), finance.SummaryFilters{CompanyID: testCompany})
	require.NoError(t, err)
	second, err := uc.GetSummary(context.Background(), finance.SummaryFilters{CompanyID: testCompany})
	require.NoError(t, err)

	assert.True(t, first.TotalIncome.Equal(second.TotalIncome))
	assert.True(t, first.NetProfit.Equal(second.NetProfit))
	assert.Equal(t, first.IncomeCount, second.IncomeCount)
}

// Con reintentos habilitados, un fallo transitorio de la lectura de
// transacciones se recupera en el segundo intento.
func TestGetSummary_ReintentoTrasFalloTransitorio(t *testing.T) {
	repo := &fakeRevenueRepo{
		txs: []entity.Transaction{
			{CompanyID: testCompany, Type: entity.TransactionTypeIncome, Amount: money("10"), Date: date("2024-01-01")},
		},
		failTx: 1,
	}
	uc := finance.NewFinanceUseCase(repo, &fakeTxRepo{}, finance.Policy{RetryAttempts: 3}, 500)

	summary, err := uc.GetSummary(context.Background(), finance.SummaryFilters{CompanyID: testCompany})
	require.NoError(t, err)
	assert.True(t, summary.TotalIncome.Equal(money("10")))
	assert.Equal(t, 2, repo.txCalls, "un fallo + un reintento exitoso")
}
