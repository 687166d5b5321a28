package dto

// SubmitDailyReportRequest cuerpo de POST /api/reports/daily.
type SubmitDailyReportRequest struct {
	Date     string `json:"date" validate:"omitempty"` // YYYY-MM-DD; vacío = hoy
	Summary  string `json:"summary" validate:"required,max=2000"`
	Blockers string `json:"blockers" validate:"omitempty,max=1000"`
}

// ListDailyReportsRequest parámetros para GET /api/reports/daily.
type ListDailyReportsRequest struct {
	PageRequest
	StartDate string `query:"start_date" validate:"omitempty"`
	EndDate   string `query:"end_date" validate:"omitempty"`
}

// DailyReportDTO reporte diario en respuestas.
type DailyReportDTO struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Date     string `json:"date"`
	Summary  string `json:"summary"`
	Blockers string `json:"blockers,omitempty"`
}
