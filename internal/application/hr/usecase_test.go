package hr

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubsapps/ubs-erp-api/internal/application/dto"
	"github.com/ubsapps/ubs-erp-api/internal/domain"
	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
)

var testNow = time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeAttendanceRepo struct {
	rows map[string]*entity.Attendance
	seq  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: make(map[string]*entity.Attendance)}
}

func (r *fakeAttendanceRepo) Create(_ context.Context, a *entity.Attendance) error {
	r.seq++
	a.ID = fmt.Sprintf("att-%d", r.seq)
	cp := *a
	r.rows[a.ID] = &cp
	return nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, a *entity.Attendance) error {
	if _, ok := r.rows[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	r.rows[a.ID] = &cp
	return nil
}

func (r *fakeAttendanceRepo) GetOpenByUser(_ context.Context, userID string, date time.Time) (*entity.Attendance, error) {
	for _, a := range r.rows {
		if a.UserID == userID && a.Date.Equal(date) && a.Open() {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) ListByUser(_ context.Context, userID string, start, end time.Time) ([]entity.Attendance, error) {
	var out []entity.Attendance
	for _, a := range r.rows {
		if a.UserID == userID && !a.Date.Before(start) && !a.Date.After(end) {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	rows map[string]*entity.LeaveRequest
	seq  int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{rows: make(map[string]*entity.LeaveRequest)}
}

func (r *fakeLeaveRepo) Create(_ context.Context, l *entity.LeaveRequest) error {
	r.seq++
	l.ID = fmt.Sprintf("lv-%d", r.seq)
	cp := *l
	r.rows[l.ID] = &cp
	return nil
}

func (r *fakeLeaveRepo) Update(_ context.Context, l *entity.LeaveRequest) error {
	if _, ok := r.rows[l.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *l
	r.rows[l.ID] = &cp
	return nil
}

func (r *fakeLeaveRepo) GetByID(_ context.Context, id string) (*entity.LeaveRequest, error) {
	l, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLeaveRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]entity.LeaveRequest, error) {
	var out []entity.LeaveRequest
	for _, l := range r.rows {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) ListApprovedOverlapping(_ context.Context, userID string, start, end time.Time) ([]entity.LeaveRequest, error) {
	var out []entity.LeaveRequest
	for _, l := range r.rows {
		if l.UserID == userID && l.Status == entity.LeaveStatusApproved && l.Overlaps(start, end) {
			out = append(out, *l)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Asistencia
// ──────────────────────────────────────────────────────────────────────────────

func newAttendanceUC() *AttendanceUseCase {
	uc := NewAttendanceUseCase(newFakeAttendanceRepo())
	uc.now = func() time.Time { return testNow }
	return uc
}

func TestCheckIn_AbreJornada(t *testing.T) {
	uc := newAttendanceUC()

	a, err := uc.CheckIn(context.Background(), "co-1", "u-1", dto.CheckInRequest{Notes: "turno mañana"})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", a.Date)
	assert.Empty(t, a.CheckOut)
	assert.Zero(t, a.WorkedHours)
}

// Un segundo check-in el mismo día, con la jornada aún abierta, es conflicto.
func TestCheckIn_DobleEsConflicto(t *testing.T) {
	uc := newAttendanceUC()

	_, err := uc.CheckIn(context.Background(), "co-1", "u-1", dto.CheckInRequest{})
	require.NoError(t, err)

	_, err = uc.CheckIn(context.Background(), "co-1", "u-1", dto.CheckInRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCheckOut_CierraYCalculaHoras(t *testing.T) {
	uc := newAttendanceUC()

	_, err := uc.CheckIn(context.Background(), "co-1", "u-1", dto.CheckInRequest{})
	require.NoError(t, err)

	uc.now = func() time.Time { return testNow.Add(8 * time.Hour) }
	a, err := uc.CheckOut(context.Background(), "u-1")
	require.NoError(t, err)
	assert.NotEmpty(t, a.CheckOut)
	assert.InDelta(t, 8.0, a.WorkedHours, 0.001)

	// Tras cerrar se puede abrir otra jornada el mismo día.
	_, err = uc.CheckIn(context.Background(), "co-1", "u-1", dto.CheckInRequest{})
	assert.NoError(t, err)
}

func TestCheckOut_SinJornadaAbierta(t *testing.T) {
	uc := newAttendanceUC()

	_, err := uc.CheckOut(context.Background(), "u-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ausencias
// ──────────────────────────────────────────────────────────────────────────────

func TestLeaveRequest_NaceEnPending(t *testing.T) {
	uc := NewLeaveUseCase(newFakeLeaveRepo())

	l, err := uc.Request(context.Background(), "co-1", "u-1", dto.CreateLeaveRequest{
		Type:      entity.LeaveTypeVacation,
		StartDate: "2026-09-07",
		EndDate:   "2026-09-11",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.LeaveStatusPending, l.Status)
	assert.Empty(t, l.ReviewedBy)
}

func TestLeaveRequest_RangoInvertido(t *testing.T) {
	uc := NewLeaveUseCase(newFakeLeaveRepo())

	_, err := uc.Request(context.Background(), "co-1", "u-1", dto.CreateLeaveRequest{
		Type:      entity.LeaveTypeSick,
		StartDate: "2026-09-11",
		EndDate:   "2026-09-07",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLeaveReview_ApruebaYFijaRevisor(t *testing.T) {
	uc := NewLeaveUseCase(newFakeLeaveRepo())

	l, err := uc.Request(context.Background(), "co-1", "u-1", dto.CreateLeaveRequest{
		Type:      entity.LeaveTypeVacation,
		StartDate: "2026-09-07",
		EndDate:   "2026-09-11",
	})
	require.NoError(t, err)

	approved, err := uc.Review(context.Background(), "co-1", "manager-1", l.ID,
		dto.ReviewLeaveRequest{Status: entity.LeaveStatusApproved})
	require.NoError(t, err)
	assert.Equal(t, entity.LeaveStatusApproved, approved.Status)
	assert.Equal(t, "manager-1", approved.ReviewedBy)

	// La revisión es única: una segunda devuelve transición inválida.
	_, err = uc.Review(context.Background(), "co-1", "manager-2", l.ID,
		dto.ReviewLeaveRequest{Status: entity.LeaveStatusRejected})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Una nueva solicitud que se solapa con una ausencia ya aprobada es conflicto.
// Los extremos son inclusivos: empezar el día que la otra termina también lo es.
func TestLeaveRequest_SolapeConAprobada(t *testing.T) {
	uc := NewLeaveUseCase(newFakeLeaveRepo())

	first, err := uc.Request(context.Background(), "co-1", "u-1", dto.CreateLeaveRequest{
		Type:      entity.LeaveTypeVacation,
		StartDate: "2026-09-07",
		EndDate:   "2026-09-11",
	})
	require.NoError(t, err)
	_, err = uc.Review(context.Background(), "co-1", "manager-1", first.ID,
		dto.ReviewLeaveRequest{Status: entity.LeaveStatusApproved})
	require.NoError(t, err)

	_, err = uc.Request(context.Background(), "co-1", "u-1", dto.CreateLeaveRequest{
		Type:      entity.LeaveTypePersonal,
		StartDate: "2026-09-11",
		EndDate:   "2026-09-14",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Un rango contiguo sin solape (desde el día siguiente) sí se admite.
	_, err = uc.Request(context.Background(), "co-1", "u-1", dto.CreateLeaveRequest{
		Type:      entity.LeaveTypePersonal,
		StartDate: "2026-09-12",
		EndDate:   "2026-09-14",
	})
	assert.NoError(t, err)
}

func TestLeaveReview_OtraEmpresaProhibido(t *testing.T) {
	uc := NewLeaveUseCase(newFakeLeaveRepo())

	l, err := uc.Request(context.Background(), "co-1", "u-1", dto.CreateLeaveRequest{
		Type:      entity.LeaveTypeUnpaid,
		StartDate: "2026-09-07",
		EndDate:   "2026-09-08",
	})
	require.NoError(t, err)

	_, err = uc.Review(context.Background(), "co-ajena", "manager-1", l.ID,
		dto.ReviewLeaveRequest{Status: entity.LeaveStatusApproved})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
