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

// ClientUseCase administra los clientes de una empresa.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
}

func NewClientUseCase(clientRepo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo}
}

func (uc *ClientUseCase) Create(ctx context.Context, companyID string, in dto.CreateClientRequest) (*dto.ClientDTO, error) {
	now := time.Now()
	c := &entity.Client{
		CompanyID:   companyID,
		Name:        in.Name,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.clientRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("usecase.ClientCreate: %w", err)
	}
	d := toClientDTO(*c)
	return &d, nil
}

func (uc *ClientUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateClientRequest) (*dto.ClientDTO, error) {
	c, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase.ClientUpdate: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	if in.Name != "" {
		c.Name = in.Name
	}
	if in.ContactName != "" {
		c.ContactName = in.ContactName
	}
	if in.Email != "" {
		c.Email = in.Email
	}
	if in.Phone != "" {
		c.Phone = in.Phone
	}
	if in.Address != "" {
		c.Address = in.Address
	}
	if in.Status != "" {
		c.Status = in.Status
	}
	c.UpdatedAt = time.Now()

	if err := uc.clientRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("usecase.ClientUpdate: %w", err)
	}
	d := toClientDTO(*c)
	return &d, nil
}

func (uc *ClientUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ClientDTO, error) {
	c, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase.ClientGetByID: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	d := toClientDTO(*c)
	return &d, nil
}

func (uc *ClientUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.ClientDTO, error) {
	page.DefaultPage()
	rows, err := uc.clientRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("usecase.ClientList: %w", err)
	}
	out := make([]dto.ClientDTO, 0, len(rows))
	for _, c := range rows {
		out = append(out, toClientDTO(c))
	}
	return out, nil
}

func toClientDTO(c entity.Client) dto.ClientDTO {
	return dto.ClientDTO{
		ID:          c.ID,
		Name:        c.Name,
		ContactName: c.ContactName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		Status:      c.Status,
	}
}
