package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ubsapps/ubs-erp-api/internal/application/dto"
	"github.com/ubsapps/ubs-erp-api/internal/domain"
	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
)

// ProjectUseCase administra los proyectos de una empresa.
type ProjectUseCase struct {
	projectRepo repository.ProjectRepository
	clientRepo  repository.ClientRepository
}

func NewProjectUseCase(
	projectRepo repository.ProjectRepository,
	clientRepo repository.ClientRepository,
) *ProjectUseCase {
	return &ProjectUseCase{projectRepo: projectRepo, clientRepo: clientRepo}
}

// Create da de alta un proyecto en estado planned. Si lleva cliente, el
// cliente debe existir y pertenecer a la misma empresa.
func (uc *ProjectUseCase) Create(ctx context.Context, companyID string, in dto.CreateProjectRequest) (*dto.ProjectDTO, error) {
	if in.ClientID != "" {
		client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
		if err != nil {
			return nil, fmt.Errorf("usecase.ProjectCreate: %w", err)
		}
		if client == nil {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.ClientID)
		}
		if client.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}

	start, err := parseOptionalDate(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, in.StartDate)
	}
	end, err := parseOptionalDate(in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, in.EndDate)
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}

	budget := decimal.Zero
	if in.Budget != "" {
		budget, err = decimal.NewFromString(in.Budget)
		if err != nil || budget.IsNegative() {
			return nil, fmt.Errorf("%w: budget %q", domain.ErrInvalidInput, in.Budget)
		}
	}

	now := time.Now()
	p := &entity.Project{
		CompanyID:   companyID,
		ClientID:    in.ClientID,
		Name:        in.Name,
		Description: in.Description,
		Status:      entity.ProjectStatusPlanned,
		StartDate:   start,
		EndDate:     end,
		Budget:      budget,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.projectRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("usecase.ProjectCreate: %w", err)
	}
	d := toProjectDTO(*p)
	return &d, nil
}

func (uc *ProjectUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProjectRequest) (*dto.ProjectDTO, error) {
	p, err := uc.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase.ProjectUpdate: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Status != "" {
		if !entity.ValidProjectStatus(in.Status) {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
		}
		p.Status = in.Status
	}
	if in.StartDate != "" {
		t, err := time.Parse(dateLayout, in.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, in.StartDate)
		}
		p.StartDate = &t
	}
	if in.EndDate != "" {
		t, err := time.Parse(dateLayout, in.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, in.EndDate)
		}
		p.EndDate = &t
	}
	if in.Budget != "" {
		budget, err := decimal.NewFromString(in.Budget)
		if err != nil || budget.IsNegative() {
			return nil, fmt.Errorf("%w: budget %q", domain.ErrInvalidInput, in.Budget)
		}
		p.Budget = budget
	}
	p.UpdatedAt = time.Now()

	if err := uc.projectRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("usecase.ProjectUpdate: %w", err)
	}
	d := toProjectDTO(*p)
	return &d, nil
}

func (uc *ProjectUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProjectDTO, error) {
	p, err := uc.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase.ProjectGetByID: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	d := toProjectDTO(*p)
	return &d, nil
}

func (uc *ProjectUseCase) List(ctx context.Context, companyID string, in dto.ListProjectsRequest) ([]dto.ProjectDTO, error) {
	in.DefaultPage()
	rows, err := uc.projectRepo.ListByCompany(ctx, companyID, in.Status, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("usecase.ProjectList: %w", err)
	}
	out := make([]dto.ProjectDTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, toProjectDTO(p))
	}
	return out, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toProjectDTO(p entity.Project) dto.ProjectDTO {
	d := dto.ProjectDTO{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		Budget:      p.Budget,
	}
	if p.StartDate != nil {
		d.StartDate = p.StartDate.Format(dateLayout)
	}
	if p.EndDate != nil {
		d.EndDate = p.EndDate.Format(dateLayout)
	}
	return d
}
