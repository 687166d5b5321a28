// Package excel serializa el resumen financiero a un libro .xlsx con dos
// hojas: "Resumen" (totales y netProfit) y "Transacciones" (el listado que
// alimentó el período).
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ubsapps/ubs-erp-api/internal/application/dto"
	"github.com/ubsapps/ubs-erp-api/internal/application/finance"
)

// Asegura que SummaryExporter implementa finance.SummaryExporter.
var _ finance.SummaryExporter = (*SummaryExporter)(nil)

// SummaryExporter exportador del resumen financiero basado en Excelize.
type SummaryExporter struct{}

// NewSummaryExporter construye el exportador.
func NewSummaryExporter() *SummaryExporter { return &SummaryExporter{} }

// ExportSummary arma el libro y devuelve sus bytes.
func (e *SummaryExporter) ExportSummary(
	summary dto.FinancialSummaryDTO,
	transactions []dto.TransactionDTO,
	periodLabel string,
) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const resumen = "Resumen"
	if err := f.SetSheetName("Sheet1", resumen); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	// Hoja Resumen
	cells := map[string]any{
		"A1": "Resumen financiero",
		"A2": "Período",
		"B2": periodLabel,
		"A4": "Ingresos totales",
		"B4": summary.TotalIncome.StringFixed(2),
		"A5": "Gastos totales",
		"B5": summary.TotalExpenses.StringFixed(2),
		"A6": "Utilidad neta",
		"B6": summary.NetProfit.StringFixed(2),
		"A8": "Movimientos de ingreso",
		"B8": summary.IncomeCount,
		"A9": "Movimientos de gasto",
		"B9": summary.ExpenseCount,
	}
	for cell, v := range cells {
		if err := f.SetCellValue(resumen, cell, v); err != nil {
			return nil, fmt.Errorf("excel: celda %s: %w", cell, err)
		}
	}
	_ = f.SetCellStyle(resumen, "A1", "A1", bold)
	_ = f.SetCellStyle(resumen, "A6", "B6", bold)
	_ = f.SetColWidth(resumen, "A", "A", 24)
	_ = f.SetColWidth(resumen, "B", "B", 18)

	// Hoja Transacciones
	const hoja = "Transacciones"
	if _, err := f.NewSheet(hoja); err != nil {
		return nil, fmt.Errorf("excel: hoja transacciones: %w", err)
	}
	headers := []string{"Fecha", "Tipo", "Monto", "Categoría", "Descripción"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(hoja, cell, h); err != nil {
			return nil, fmt.Errorf("excel: cabecera %s: %w", cell, err)
		}
	}
	_ = f.SetCellStyle(hoja, "A1", "E1", bold)

	for i, tx := range transactions {
		row := i + 2
		_ = f.SetCellValue(hoja, fmt.Sprintf("A%d", row), tx.Date)
		_ = f.SetCellValue(hoja, fmt.Sprintf("B%d", row), tx.Type)
		_ = f.SetCellValue(hoja, fmt.Sprintf("C%d", row), tx.Amount.StringFixed(2))
		_ = f.SetCellValue(hoja, fmt.Sprintf("D%d", row), tx.Category)
		_ = f.SetCellValue(hoja, fmt.Sprintf("E%d", row), tx.Description)
	}
	_ = f.SetColWidth(hoja, "A", "B", 12)
	_ = f.SetColWidth(hoja, "C", "C", 14)
	_ = f.SetColWidth(hoja, "D", "E", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
