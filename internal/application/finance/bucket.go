// Package finance contiene el agregador de ingresos: resumen financiero
// multi-fuente (transacciones + ventas sold + facturas approved/paid) y
// bucketing por períodos para los gráficos del dashboard.
package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
)

// Granularity del bucketing temporal.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ParseGranularity normaliza el parámetro de query; vacío equivale a month.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "", "month":
		return GranularityMonth, nil
	case "day":
		return GranularityDay, nil
	case "year":
		return GranularityYear, nil
	}
	return "", fmt.Errorf("granularidad desconocida: %q", s)
}

// Bucket acumula ingresos y gastos de un período calendario.
type Bucket struct {
	Label    string
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// BucketByPeriod agrupa transacciones en exactamente periodCount períodos
// consecutivos que terminan en el período actual, del más antiguo al más
// reciente. Los períodos sin actividad quedan en cero (el eje temporal del
// gráfico siempre tiene ancho fijo). Transacciones fuera de la ventana o con
// fecha cero se ignoran; el resto de filas malas ya fue saneado en el borde
// de deserialización.
//
// Función pura: no retiene estado entre llamadas.
func BucketByPeriod(txs []entity.Transaction, periodCount int, g Granularity) []Bucket {
	return bucketByPeriodAt(txs, periodCount, g, time.Now())
}

// bucketByPeriodAt versión con reloj inyectado para tests deterministas.
func bucketByPeriodAt(txs []entity.Transaction, periodCount int, g Granularity, now time.Time) []Bucket {
	if periodCount <= 0 {
		return []Bucket{}
	}

	// 1) Generar las claves de los períodos, del más antiguo al actual,
	//    inicializadas en cero.
	buckets := make([]Bucket, periodCount)
	index := make(map[string]int, periodCount)
	for i := 0; i < periodCount; i++ {
		start := periodStart(now, g, -(periodCount - 1 - i))
		key := periodKey(start, g)
		buckets[i] = Bucket{Label: periodLabel(start, g), Income: decimal.Zero, Expenses: decimal.Zero}
		index[key] = i
	}

	// 2) Una sola pasada: acumular cada transacción en su bucket.
	for _, tx := range txs {
		if tx.Date.IsZero() {
			continue // fecha inválida: el gráfico degrada, no aborta
		}
		i, ok := index[periodKey(tx.Date, g)]
		if !ok {
			continue // fuera de la ventana generada
		}
		if tx.IsIncome() {
			buckets[i].Income = buckets[i].Income.Add(tx.Amount)
		} else {
			buckets[i].Expenses = buckets[i].Expenses.Add(tx.Amount)
		}
	}
	return buckets
}

// WindowStart devuelve el inicio del período más antiguo de una ventana de
// periodCount períodos que termina ahora. Útil para acotar la consulta SQL.
func WindowStart(now time.Time, periodCount int, g Granularity) time.Time {
	if periodCount <= 0 {
		periodCount = 1
	}
	return periodStart(now, g, -(periodCount - 1))
}

// periodStart devuelve el inicio del período de t desplazado offset períodos.
func periodStart(t time.Time, g Granularity, offset int) time.Time {
	switch g {
	case GranularityDay:
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		return d.AddDate(0, 0, offset)
	case GranularityYear:
		return time.Date(t.Year()+offset, 1, 1, 0, 0, 0, 0, t.Location())
	default: // month
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, offset, 0)
	}
}

// periodKey clave de agrupación: día "2006-01-02", mes "2006-01", año "2006".
func periodKey(t time.Time, g Granularity) string {
	switch g {
	case GranularityDay:
		return t.Format("2006-01-02")
	case GranularityYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

var shortMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// periodLabel etiqueta legible para el eje del gráfico, ej. "ene 2026".
func periodLabel(t time.Time, g Granularity) string {
	switch g {
	case GranularityDay:
		return fmt.Sprintf("%02d %s", t.Day(), shortMonths[t.Month()-1])
	case GranularityYear:
		return t.Format("2006")
	default:
		return fmt.Sprintf("%s %d", shortMonths[t.Month()-1], t.Year())
	}
}
