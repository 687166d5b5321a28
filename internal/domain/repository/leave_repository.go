package repository

import (
	"context"
	"time"

	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
)

// LeaveRepository puerto de persistencia para solicitudes de ausencia.
type LeaveRepository interface {
	Create(ctx context.Context, l *entity.LeaveRequest) error
	Update(ctx context.Context, l *entity.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*entity.LeaveRequest, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]entity.LeaveRequest, error)
	// ListApprovedOverlapping devuelve las ausencias aprobadas del usuario que
	// se solapan con [start, end] (extremos inclusivos).
	ListApprovedOverlapping(ctx context.Context, userID string, start, end time.Time) ([]entity.LeaveRequest, error)
}
