package entity

import "time"

// DailyReport es el reporte diario de trabajo que envía un empleado.
// Por usuario y día existe a lo sumo un reporte (el último envío reemplaza).
type DailyReport struct {
	ID        string
	CompanyID string
	UserID    string
	Date      time.Time // día reportado (00:00 local)
	Summary   string
	Blockers  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
