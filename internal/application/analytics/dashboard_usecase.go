package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/ubsapps/ubs-erp-api/internal/application/dto"
	"github.com/ubsapps/ubs-erp-api/internal/application/finance"
)

// DashboardUseCase arma el tablero de la empresa: resumen del mes en curso,
// cifras de hoy y la serie de los últimos seis meses. Las tres piezas se
// obtienen en paralelo; si cualquiera falla, el tablero completo falla.
type DashboardUseCase struct {
	finance *finance.FinanceUseCase
	now     func() time.Time
}

func NewDashboardUseCase(financeUC *finance.FinanceUseCase) *DashboardUseCase {
	return &DashboardUseCase{finance: financeUC, now: time.Now}
}

// GetDashboard devuelve el tablero para la empresa.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, companyID string) (*dto.DashboardDTO, error) {
	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	type monthResult struct {
		summary *dto.FinancialSummaryDTO
		err     error
	}
	type todayResult struct {
		summary *dto.FinancialSummaryDTO
		err     error
	}
	type chartResult struct {
		buckets []dto.RevenueBucketDTO
		err     error
	}

	monthCh := make(chan monthResult, 1)
	todayCh := make(chan todayResult, 1)
	chartCh := make(chan chartResult, 1)

	go func() {
		s, err := uc.finance.GetSummary(ctx, finance.SummaryFilters{
			CompanyID: companyID,
			StartDate: &monthStart,
			EndDate:   &now,
		})
		monthCh <- monthResult{summary: s, err: err}
	}()

	go func() {
		s, err := uc.finance.GetSummary(ctx, finance.SummaryFilters{
			CompanyID: companyID,
			StartDate: &dayStart,
			EndDate:   &now,
		})
		todayCh <- todayResult{summary: s, err: err}
	}()

	go func() {
		buckets, err := uc.finance.GetRevenueChart(ctx, companyID, "", 6, finance.GranularityMonth)
		chartCh <- chartResult{buckets: buckets, err: err}
	}()

	month := <-monthCh
	today := <-todayCh
	chart := <-chartCh

	if month.err != nil {
		return nil, fmt.Errorf("analytics.GetDashboard: mes: %w", month.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("analytics.GetDashboard: hoy: %w", today.err)
	}
	if chart.err != nil {
		return nil, fmt.Errorf("analytics.GetDashboard: gráfico: %w", chart.err)
	}

	return &dto.DashboardDTO{
		MonthSummary: *month.summary,
		TodaySummary: *today.summary,
		RevenueChart: chart.buckets,
	}, nil
}
