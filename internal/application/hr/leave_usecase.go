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

// LeaveUseCase gestiona las solicitudes de ausencia y su aprobación.
type LeaveUseCase struct {
	leaveRepo repository.LeaveRepository
}

// NewLeaveUseCase construye el caso de uso.
func NewLeaveUseCase(leaveRepo repository.LeaveRepository) *LeaveUseCase {
	return &LeaveUseCase{leaveRepo: leaveRepo}
}

// Request crea una solicitud en estado pending. Si el rango se solapa con
// una ausencia ya aprobada del mismo usuario devuelve ErrConflict.
func (uc *LeaveUseCase) Request(
	ctx context.Context,
	companyID, userID string,
	in dto.CreateLeaveRequest,
) (*dto.LeaveDTO, error) {
	if !entity.ValidLeaveType(in.Type) {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, in.Type)
	}
	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, in.StartDate)
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, in.EndDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}

	overlapping, err := uc.leaveRepo.ListApprovedOverlapping(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("hr.Request: %w", err)
	}
	if len(overlapping) > 0 {
		return nil, fmt.Errorf("%w: el rango se solapa con una ausencia aprobada", domain.ErrConflict)
	}

	now := time.Now()
	l := &entity.LeaveRequest{
		CompanyID: companyID,
		UserID:    userID,
		Type:      in.Type,
		StartDate: start,
		EndDate:   end,
		Reason:    in.Reason,
		Status:    entity.LeaveStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.leaveRepo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("hr.Request: %w", err)
	}

	d := toLeaveDTO(*l)
	return &d, nil
}

// Review aprueba o rechaza una solicitud pendiente. Solo las pendientes
// admiten revisión; repetirla devuelve ErrInvalidTransition.
func (uc *LeaveUseCase) Review(
	ctx context.Context,
	companyID, reviewerID, id string,
	in dto.ReviewLeaveRequest,
) (*dto.LeaveDTO, error) {
	if in.Status != entity.LeaveStatusApproved && in.Status != entity.LeaveStatusRejected {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}

	l, err := uc.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("hr.Review: %w", err)
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	if l.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if l.Status != entity.LeaveStatusPending {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, l.Status, in.Status)
	}

	// Si entre la solicitud y la aprobación se aprobó otra ausencia
	// solapada, rechazamos el conflicto en vez de duplicar cobertura.
	if in.Status == entity.LeaveStatusApproved {
		overlapping, err := uc.leaveRepo.ListApprovedOverlapping(ctx, l.UserID, l.StartDate, l.EndDate)
		if err != nil {
			return nil, fmt.Errorf("hr.Review: %w", err)
		}
		if len(overlapping) > 0 {
			return nil, fmt.Errorf("%w: ya hay una ausencia aprobada en ese rango", domain.ErrConflict)
		}
	}

	l.Status = in.Status
	l.ReviewedBy = reviewerID
	l.UpdatedAt = time.Now()
	if err := uc.leaveRepo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("hr.Review: %w", err)
	}

	d := toLeaveDTO(*l)
	return &d, nil
}

// ListByUser devuelve las solicitudes del usuario, paginadas.
func (uc *LeaveUseCase) ListByUser(
	ctx context.Context,
	userID string,
	page dto.PageRequest,
) ([]dto.LeaveDTO, error) {
	page.DefaultPage()
	rows, err := uc.leaveRepo.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("hr.ListByUser: %w", err)
	}
	out := make([]dto.LeaveDTO, 0, len(rows))
	for _, l := range rows {
		out = append(out, toLeaveDTO(l))
	}
	return out, nil
}

func toLeaveDTO(l entity.LeaveRequest) dto.LeaveDTO {
	return dto.LeaveDTO{
		ID:         l.ID,
		UserID:     l.UserID,
		Type:       l.Type,
		StartDate:  l.StartDate.Format(dateLayout),
		EndDate:    l.EndDate.Format(dateLayout),
		Reason:     l.Reason,
		Status:     l.Status,
		ReviewedBy: l.ReviewedBy,
	}
}
