package hr

import (
	"context"
	"fmt"
	"time"

	"github.com/ubsapps/ubs-erp-api/internal/application/dto"
	"github.com/ubsapps/ubs-erp-api/internal/domain"
	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// AttendanceUseCase gestiona las jornadas de asistencia: check-in, check-out
// y consulta. La regla central es una sola jornada abierta por usuario y día.
type AttendanceUseCase struct {
	attendanceRepo repository.AttendanceRepository
	now            func() time.Time
}

// NewAttendanceUseCase construye el caso de uso.
func NewAttendanceUseCase(attendanceRepo repository.AttendanceRepository) *AttendanceUseCase {
	return &AttendanceUseCase{
		attendanceRepo: attendanceRepo,
		now:            time.Now,
	}
}

// CheckIn abre la jornada del día para el usuario. Si ya tiene una jornada
// abierta hoy devuelve ErrConflict.
func (uc *AttendanceUseCase) CheckIn(
	ctx context.Context,
	companyID, userID string,
	in dto.CheckInRequest,
) (*dto.AttendanceDTO, error) {
	now := uc.now()
	day := truncateToDay(now)

	open, err := uc.attendanceRepo.GetOpenByUser(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("hr.CheckIn: %w", err)
	}
	if open != nil {
		return nil, fmt.Errorf("%w: ya existe una jornada abierta hoy", domain.ErrConflict)
	}

	a := &entity.Attendance{
		CompanyID: companyID,
		UserID:    userID,
		Date:      day,
		CheckIn:   now,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.attendanceRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("hr.CheckIn: %w", err)
	}

	d := toAttendanceDTO(*a)
	return &d, nil
}

// CheckOut cierra la jornada abierta del día. Si no hay ninguna abierta
// devuelve ErrNotFound.
func (uc *AttendanceUseCase) CheckOut(ctx context.Context, userID string) (*dto.AttendanceDTO, error) {
	now := uc.now()
	day := truncateToDay(now)

	open, err := uc.attendanceRepo.GetOpenByUser(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("hr.CheckOut: %w", err)
	}
	if open == nil {
		return nil, fmt.Errorf("%w: no hay jornada abierta hoy", domain.ErrNotFound)
	}

	open.CheckOut = &now
	open.UpdatedAt = now
	if err := uc.attendanceRepo.Update(ctx, open); err != nil {
		return nil, fmt.Errorf("hr.CheckOut: %w", err)
	}

	d := toAttendanceDTO(*open)
	return &d, nil
}

// ListByUser devuelve las jornadas del usuario en el rango [start, end].
// Con rango vacío se devuelve el mes en curso.
func (uc *AttendanceUseCase) ListByUser(
	ctx context.Context,
	userID string,
	in dto.ListAttendanceRequest,
) ([]dto.AttendanceDTO, error) {
	now := uc.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := truncateToDay(now)

	var err error
	if in.StartDate != "" {
		start, err = time.Parse(dateLayout, in.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, in.StartDate)
		}
	}
	if in.EndDate != "" {
		end, err = time.Parse(dateLayout, in.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, in.EndDate)
		}
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}

	rows, err := uc.attendanceRepo.ListByUser(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("hr.ListByUser: %w", err)
	}

	out := make([]dto.AttendanceDTO, 0, len(rows))
	for _, a := range rows {
		out = append(out, toAttendanceDTO(a))
	}
	return out, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func toAttendanceDTO(a entity.Attendance) dto.AttendanceDTO {
	d := dto.AttendanceDTO{
		ID:          a.ID,
		UserID:      a.UserID,
		Date:        a.Date.Format(dateLayout),
		CheckIn:     a.CheckIn.Format(time.RFC3339),
		WorkedHours: a.WorkedHours(),
		Notes:       a.Notes,
	}
	if a.CheckOut != nil {
		d.CheckOut = a.CheckOut.Format(time.RFC3339)
	}
	return d
}
