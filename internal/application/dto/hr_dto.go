package dto

// CheckInRequest cuerpo de POST /api/attendance/check-in.
type CheckInRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=500"`
}

// AttendanceDTO jornada de asistencia en respuestas.
type AttendanceDTO struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Date        string  `json:"date"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out,omitempty"`
	WorkedHours float64 `json:"worked_hours"`
	Notes       string  `json:"notes,omitempty"`
}

// ListAttendanceRequest parámetros para GET /api/attendance.
type ListAttendanceRequest struct {
	StartDate string `query:"start_date" validate:"omitempty"`
	EndDate   string `query:"end_date" validate:"omitempty"`
}

// CreateLeaveRequest cuerpo de POST /api/leaves.
type CreateLeaveRequest struct {
	Type      string `json:"type" validate:"required,oneof=vacation sick personal unpaid"`
	StartDate string `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" validate:"required"`
	Reason    string `json:"reason" validate:"omitempty,max=500"`
}

// ReviewLeaveRequest cuerpo de PATCH /api/leaves/:id/review.
type ReviewLeaveRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// LeaveDTO solicitud de ausencia en respuestas.
type LeaveDTO struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason,omitempty"`
	Status     string `json:"status"`
	ReviewedBy string `json:"reviewed_by,omitempty"`
}
