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

// DailyReportUseCase gestiona los reportes diarios de trabajo.
type DailyReportUseCase struct {
	reportRepo repository.DailyReportRepository
}

func NewDailyReportUseCase(reportRepo repository.DailyReportRepository) *DailyReportUseCase {
	return &DailyReportUseCase{reportRepo: reportRepo}
}

// Submit envía el reporte del día. Un segundo envío del mismo día reemplaza
// al anterior (upsert por usuario y fecha).
func (uc *DailyReportUseCase) Submit(
	ctx context.Context,
	companyID, userID string,
	in dto.SubmitDailyReportRequest,
) (*dto.DailyReportDTO, error) {
	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if in.Date != "" {
		var err error
		day, err = time.Parse(dateLayout, in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date %q", domain.ErrInvalidInput, in.Date)
		}
		if day.After(now) {
			return nil, fmt.Errorf("%w: no se reportan días futuros", domain.ErrInvalidInput)
		}
	}

	r := &entity.DailyReport{
		CompanyID: companyID,
		UserID:    userID,
		Date:      day,
		Summary:   in.Summary,
		Blockers:  in.Blockers,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.reportRepo.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("usecase.ReportSubmit: %w", err)
	}
	d := toDailyReportDTO(*r)
	return &d, nil
}

// GetByUserAndDate devuelve el reporte de un usuario para una fecha dada.
func (uc *DailyReportUseCase) GetByUserAndDate(ctx context.Context, userID, date string) (*dto.DailyReportDTO, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", domain.ErrInvalidInput, date)
	}
	r, err := uc.reportRepo.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("usecase.ReportGet: %w", err)
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	d := toDailyReportDTO(*r)
	return &d, nil
}

// ListByCompany devuelve los reportes de la empresa en el rango pedido.
// Con rango vacío se devuelve la última semana.
func (uc *DailyReportUseCase) ListByCompany(
	ctx context.Context,
	companyID string,
	in dto.ListDailyReportsRequest,
) ([]dto.DailyReportDTO, error) {
	in.DefaultPage()

	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -7)

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

	rows, err := uc.reportRepo.ListByCompany(ctx, companyID, start, end, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("usecase.ReportList: %w", err)
	}
	out := make([]dto.DailyReportDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, toDailyReportDTO(r))
	}
	return out, nil
}

func toDailyReportDTO(r entity.DailyReport) dto.DailyReportDTO {
	return dto.DailyReportDTO{
		ID:       r.ID,
		UserID:   r.UserID,
		Date:     r.Date.Format(dateLayout),
		Summary:  r.Summary,
		Blockers: r.Blockers,
	}
}
