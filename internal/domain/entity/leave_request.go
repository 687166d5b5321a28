package entity

import "time"

// Tipos y estados de LeaveRequest.
const (
	LeaveTypeVacation = "vacation"
	LeaveTypeSick     = "sick"
	LeaveTypePersonal = "personal"
	LeaveTypeUnpaid   = "unpaid"

	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

// LeaveRequest es una solicitud de ausencia de un empleado.
type LeaveRequest struct {
	ID         string
	CompanyID  string
	UserID     string
	Type       string // vacation | sick | personal | unpaid
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     string // pending | approved | rejected
	ReviewedBy string // UserID del aprobador; vacío mientras está pendiente
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Overlaps indica si el rango [StartDate, EndDate] se solapa con otro rango.
// Los extremos son inclusivos: terminar el día que otra empieza es solape.
func (l LeaveRequest) Overlaps(start, end time.Time) bool {
	return !l.StartDate.After(end) && !start.After(l.EndDate)
}

// ValidLeaveType indica si t es un tipo conocido.
func ValidLeaveType(t string) bool {
	switch t {
	case LeaveTypeVacation, LeaveTypeSick, LeaveTypePersonal, LeaveTypeUnpaid:
		return true
	}
	return false
}
