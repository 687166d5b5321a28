package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
)

// Reloj fijo para que los buckets generados sean deterministas.
var testNow = time.Date(2026, time.August, 28, 15, 4, 5, 0, time.UTC)

func tx(typ, amount, day string) entity.Transaction {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return entity.Transaction{Type: typ, Amount: decimal.RequireFromString(amount), Date: d}
}

// Sin transacciones: exactamente periodCount buckets en cero, del más antiguo
// al más reciente, terminando en el mes actual.
func TestBucketByPeriod_VacioDevuelveVentanaCompleta(t *testing.T) {
	buckets := bucketByPeriodAt(nil, 6, GranularityMonth, testNow)

	require.Len(t, buckets, 6)
	assert.Equal(t, "mar 2026", buckets[0].Label)
	assert.Equal(t, "ago 2026", buckets[5].Label)
	for _, b := range buckets {
		assert.True(t, b.Income.IsZero())
		assert.True(t, b.Expenses.IsZero())
	}
}

func TestBucketByPeriod_AcumulaPorMes(t *testing.T) {
	txs := []entity.Transaction{
		tx(entity.TransactionTypeIncome, "100", "2026-08-01"),
		tx(entity.TransactionTypeIncome, "50", "2026-08-20"),
		tx(entity.TransactionTypeExpense, "30", "2026-07-15"),
		tx(entity.TransactionTypeIncome, "7", "2026-03-02"),
	}

	buckets := bucketByPeriodAt(txs, 6, GranularityMonth, testNow)
	require.Len(t, buckets, 6)

	// mar 2026 (índice 0), jul 2026 (índice 4), ago 2026 (índice 5)
	assert.True(t, buckets[0].Income.Equal(decimal.RequireFromString("7")))
	assert.True(t, buckets[4].Expenses.Equal(decimal.RequireFromString("30")))
	assert.True(t, buckets[5].Income.Equal(decimal.RequireFromString("150")))
	assert.True(t, buckets[5].Expenses.IsZero())
}

// Transacciones fuera de la ventana o con fecha cero se ignoran sin abortar.
func TestBucketByPeriod_IgnoraFueraDeVentanaYFechaCero(t *testing.T) {
	txs := []entity.Transaction{
		tx(entity.TransactionTypeIncome, "999", "2020-01-01"), // muy antigua
		{Type: entity.TransactionTypeIncome, Amount: decimal.RequireFromString("500")}, // fecha cero
		tx(entity.TransactionTypeIncome, "25", "2026-08-10"),
	}

	buckets := bucketByPeriodAt(txs, 3, GranularityMonth, testNow)
	require.Len(t, buckets, 3)

	var total decimal.Decimal
	for _, b := range buckets {
		total = total.Add(b.Income)
	}
	assert.True(t, total.Equal(decimal.RequireFromString("25")))
}

func TestBucketByPeriod_GranularidadDia(t *testing.T) {
	txs := []entity.Transaction{
		tx(entity.TransactionTypeExpense, "12.50", "2026-08-28"),
		tx(entity.TransactionTypeExpense, "10", "2026-08-26"),
	}

	buckets := bucketByPeriodAt(txs, 7, GranularityDay, testNow)
	require.Len(t, buckets, 7)
	assert.Equal(t, "22 ago", buckets[0].Label)
	assert.Equal(t, "28 ago", buckets[6].Label)
	assert.True(t, buckets[6].Expenses.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, buckets[4].Expenses.Equal(decimal.RequireFromString("10")))
}

func TestBucketByPeriod_GranularidadAnio(t *testing.T) {
	txs := []entity.Transaction{
		tx(entity.TransactionTypeIncome, "1000", "2025-06-30"),
		tx(entity.TransactionTypeIncome, "2000", "2026-01-01"),
	}

	buckets := bucketByPeriodAt(txs, 3, GranularityYear, testNow)
	require.Len(t, buckets, 3)
	assert.Equal(t, "2024", buckets[0].Label)
	assert.True(t, buckets[1].Income.Equal(decimal.RequireFromString("1000")))
	assert.True(t, buckets[2].Income.Equal(decimal.RequireFromString("2000")))
}

func TestBucketByPeriod_PeriodCountNoPositivo(t *testing.T) {
	assert.Empty(t, bucketByPeriodAt(nil, 0, GranularityMonth, testNow))
}

func TestParseGranularity(t *testing.T) {
	cases := []struct {
		in      string
		want    Granularity
		wantErr bool
	}{
		{"", GranularityMonth, false},
		{"month", GranularityMonth, false},
		{"day", GranularityDay, false},
		{"year", GranularityYear, false},
		{"week", "", true},
	}
	for _, c := range cases {
		got, err := ParseGranularity(c.in)
		if c.wantErr {
			assert.Error(t, err, "entrada %q", c.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}
