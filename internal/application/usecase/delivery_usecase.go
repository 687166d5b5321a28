package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ubsapps/ubs-erp-api/internal/application/dto"
	"github.com/ubsapps/ubs-erp-api/internal/domain"
	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// DeliveryUseCase gestiona el rastreo de entregas. Las entregas no generan
// ingresos: si hay factura asociada, el ingreso sale de la factura.
type DeliveryUseCase struct {
	deliveryRepo repository.DeliveryRepository
	invoiceRepo  repository.InvoiceRepository
	userRepo     repository.UserRepository
}

func NewDeliveryUseCase(
	deliveryRepo repository.DeliveryRepository,
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
) *DeliveryUseCase {
	return &DeliveryUseCase{
		deliveryRepo: deliveryRepo,
		invoiceRepo:  invoiceRepo,
		userRepo:     userRepo,
	}
}

// Create registra una entrega en estado pending. La factura, si se indica,
// debe existir y ser de la misma empresa.
func (uc *DeliveryUseCase) Create(ctx context.Context, companyID string, in dto.CreateDeliveryRequest) (*dto.DeliveryDTO, error) {
	if in.InvoiceID != "" {
		inv, err := uc.invoiceRepo.GetByID(ctx, in.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("usecase.DeliveryCreate: %w", err)
		}
		if inv == nil {
			return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, in.InvoiceID)
		}
		if inv.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	d := &entity.Delivery{
		CompanyID: companyID,
		InvoiceID: in.InvoiceID,
		Address:   in.Address,
		Notes:     in.Notes,
		Status:    entity.DeliveryStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.deliveryRepo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("usecase.DeliveryCreate: %w", err)
	}
	out := toDeliveryDTO(*d)
	return &out, nil
}

// Assign asigna un repartidor y pasa la entrega a assigned. El repartidor
// debe ser un usuario de la misma empresa.
func (uc *DeliveryUseCase) Assign(ctx context.Context, companyID, id string, in dto.AssignDeliveryRequest) (*dto.DeliveryDTO, error) {
	d, err := uc.getOwned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransitionDelivery(d.Status, entity.DeliveryStatusAssigned) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, d.Status, entity.DeliveryStatusAssigned)
	}

	u, err := uc.userRepo.GetByID(ctx, in.AssignedTo)
	if err != nil {
		return nil, fmt.Errorf("usecase.DeliveryAssign: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, in.AssignedTo)
	}
	if u.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	d.AssignedTo = in.AssignedTo
	d.Status = entity.DeliveryStatusAssigned
	d.UpdatedAt = time.Now()
	if err := uc.deliveryRepo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("usecase.DeliveryAssign: %w", err)
	}
	out := toDeliveryDTO(*d)
	return &out, nil
}

// UpdateStatus aplica una transición del flujo
// pending -> assigned -> in_transit -> delivered | failed.
func (uc *DeliveryUseCase) UpdateStatus(ctx context.Context, companyID, id string, in dto.UpdateDeliveryStatusRequest) (*dto.DeliveryDTO, error) {
	d, err := uc.getOwned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransitionDelivery(d.Status, in.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, d.Status, in.Status)
	}

	now := time.Now()
	d.Status = in.Status
	if in.Notes != "" {
		d.Notes = in.Notes
	}
	if in.Status == entity.DeliveryStatusDelivered {
		d.DeliveredAt = &now
	}
	d.UpdatedAt = now
	if err := uc.deliveryRepo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("usecase.DeliveryUpdateStatus: %w", err)
	}
	out := toDeliveryDTO(*d)
	return &out, nil
}

func (uc *DeliveryUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.DeliveryDTO, error) {
	d, err := uc.getOwned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	out := toDeliveryDTO(*d)
	return &out, nil
}

func (uc *DeliveryUseCase) List(ctx context.Context, companyID string, in dto.ListDeliveriesRequest) ([]dto.DeliveryDTO, error) {
	in.DefaultPage()
	rows, err := uc.deliveryRepo.ListByCompany(ctx, companyID, in.Status, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("usecase.DeliveryList: %w", err)
	}
	out := make([]dto.DeliveryDTO, 0, len(rows))
	for _, d := range rows {
		out = append(out, toDeliveryDTO(d))
	}
	return out, nil
}

func (uc *DeliveryUseCase) getOwned(ctx context.Context, companyID, id string) (*entity.Delivery, error) {
	d, err := uc.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase.DeliveryGet: %w", err)
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if d.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return d, nil
}

func toDeliveryDTO(d entity.Delivery) dto.DeliveryDTO {
	out := dto.DeliveryDTO{
		ID:         d.ID,
		InvoiceID:  d.InvoiceID,
		AssignedTo: d.AssignedTo,
		Address:    d.Address,
		Notes:      d.Notes,
		Status:     d.Status,
	}
	if d.DeliveredAt != nil {
		out.DeliveredAt = d.DeliveredAt.Format(time.RFC3339)
	}
	return out
}
