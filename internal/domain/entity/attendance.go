package entity

import "time"

// Attendance registra una jornada de un empleado: check-in y check-out.
// Una jornada abierta tiene CheckOut == nil; solo puede haber una abierta
// por usuario y día.
type Attendance struct {
	ID        string
	CompanyID string
	UserID    string
	Date      time.Time // día de la jornada (00:00 local)
	CheckIn   time.Time
	CheckOut  *time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkedHours devuelve las horas trabajadas de la jornada; 0 si sigue abierta.
func (a Attendance) WorkedHours() float64 {
	if a.CheckOut == nil {
		return 0
	}
	return a.CheckOut.Sub(a.CheckIn).Hours()
}

// Open indica si la jornada sigue abierta (sin check-out).
func (a Attendance) Open() bool { return a.CheckOut == nil }
