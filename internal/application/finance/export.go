package finance

import (
	"context"
	"fmt"

	"github.com/ubsapps/ubs-erp-api/internal/application/dto"
)

// SummaryExporter puerto para el exportador del resumen financiero
// (implementado en infrastructure/excel con Excelize).
type SummaryExporter interface {
	ExportSummary(
		summary dto.FinancialSummaryDTO,
		transactions []dto.TransactionDTO,
		periodLabel string,
	) ([]byte, error)
}

// ExportSummary calcula el resumen y lo serializa vía el exportador inyectado.
// Devuelve los bytes del archivo .xlsx.
func (uc *FinanceUseCase) ExportSummary(
	ctx context.Context,
	exporter SummaryExporter,
	companyID string,
	in dto.SummaryRequest,
) ([]byte, error) {
	filters, err := ParseSummaryFilters(companyID, in)
	if err != nil {
		return nil, err
	}

	summary, err := uc.GetSummary(ctx, filters)
	if err != nil {
		return nil, err
	}

	// Listado acompañante: las transacciones del mismo período, acotadas al
	// tope de página del agregador.
	txs, err := uc.ListTransactions(ctx, companyID, dto.ListTransactionsRequest{
		PageRequest: dto.PageRequest{Limit: uc.maxPage},
		UserID:      in.UserID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	})
	if err != nil {
		return nil, err
	}

	label := periodRangeLabel(in.StartDate, in.EndDate)
	data, err := exporter.ExportSummary(*summary, txs, label)
	if err != nil {
		return nil, fmt.Errorf("finance.ExportSummary: %w", err)
	}
	return data, nil
}

func periodRangeLabel(start, end string) string {
	switch {
	case start == "" && end == "":
		return "Todo el histórico"
	case start == "":
		return fmt.Sprintf("Hasta %s", end)
	case end == "":
		return fmt.Sprintf("Desde %s", start)
	default:
		return fmt.Sprintf("%s a %s", start, end)
	}
}
