package dto

// DashboardDTO respuesta de GET /api/dashboard: resumen del mes en curso,
// cifras del día y la serie de los últimos meses, leídos en paralelo.
type DashboardDTO struct {
	MonthSummary FinancialSummaryDTO `json:"month_summary"`
	TodaySummary FinancialSummaryDTO `json:"today_summary"`
	RevenueChart []RevenueBucketDTO  `json:"revenue_chart"`
}
