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

const dateLayout = "2006-01-02"

// CompanyUseCase administra las empresas (tenants) del sistema.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
}

func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo}
}

// Create da de alta una empresa en estado active.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyDTO, error) {
	now := time.Now()
	c := &entity.Company{
		Name:      in.Name,
		TaxID:     in.TaxID,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    entity.CompanyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companyRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("usecase.CompanyCreate: %w", err)
	}
	d := toCompanyDTO(*c)
	return &d, nil
}

// Update modifica los campos presentes en la petición.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyDTO, error) {
	c, err := uc.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase.CompanyUpdate: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != "" {
		c.Name = in.Name
	}
	if in.Address != "" {
		c.Address = in.Address
	}
	if in.Phone != "" {
		c.Phone = in.Phone
	}
	if in.Email != "" {
		c.Email = in.Email
	}
	if in.Status != "" {
		c.Status = in.Status
	}
	c.UpdatedAt = time.Now()

	if err := uc.companyRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("usecase.CompanyUpdate: %w", err)
	}
	d := toCompanyDTO(*c)
	return &d, nil
}

func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyDTO, error) {
	c, err := uc.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase.CompanyGetByID: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	d := toCompanyDTO(*c)
	return &d, nil
}

func (uc *CompanyUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.CompanyDTO, error) {
	page.DefaultPage()
	rows, err := uc.companyRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("usecase.CompanyList: %w", err)
	}
	out := make([]dto.CompanyDTO, 0, len(rows))
	for _, c := range rows {
		out = append(out, toCompanyDTO(c))
	}
	return out, nil
}

func toCompanyDTO(c entity.Company) dto.CompanyDTO {
	return dto.CompanyDTO{
		ID:      c.ID,
		Name:    c.Name,
		TaxID:   c.TaxID,
		Address: c.Address,
		Phone:   c.Phone,
		Email:   c.Email,
		Status:  c.Status,
	}
}
