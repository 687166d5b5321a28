// Package scheduler ejecuta el cierre financiero nocturno: para cada empresa
// activa calcula el resumen del día anterior y lo persiste con upsert, de modo
// que reejecutar el job no duplica filas.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ubsapps/ubs-erp-api/internal/application/finance"
	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
	"github.com/ubsapps/ubs-erp-api/internal/domain/repository"
	"github.com/ubsapps/ubs-erp-api/pkg/config"
	"github.com/ubsapps/ubs-erp-api/pkg/logger"
)

// DailyCloseScheduler programa y ejecuta el cierre diario.
type DailyCloseScheduler struct {
	cronScheduler *cron.Cron
	jobID         cron.EntryID
	cfg           config.SchedulerConfig
	financeUC     *finance.FinanceUseCase
	companyRepo   repository.CompanyRepository
	closeRepo     repository.DailyCloseRepository
	log           *logger.Logger
	now           func() time.Time
}

// NewDailyCloseScheduler construye el scheduler. No arranca hasta Start.
func NewDailyCloseScheduler(
	cfg config.SchedulerConfig,
	financeUC *finance.FinanceUseCase,
	companyRepo repository.CompanyRepository,
	closeRepo repository.DailyCloseRepository,
	log *logger.Logger,
) *DailyCloseScheduler {
	return &DailyCloseScheduler{
		cronScheduler: cron.New(cron.WithSeconds()),
		cfg:           cfg,
		financeUC:     financeUC,
		companyRepo:   companyRepo,
		closeRepo:     closeRepo,
		log:           log,
		now:           time.Now,
	}
}

// Start registra el job con el cron spec configurado y arranca el scheduler.
func (s *DailyCloseScheduler) Start() error {
	if !s.cfg.Enabled {
		s.log.Info().Msg("cierre diario deshabilitado por configuración")
		return nil
	}

	var err error
	s.jobID, err = s.cronScheduler.AddFunc(s.cfg.CronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := s.RunOnce(ctx); err != nil {
			s.log.Error().Err(err).Msg("cierre diario falló")
		}
	})
	if err != nil {
		return fmt.Errorf("scheduler: registrar job: %w", err)
	}

	s.cronScheduler.Start()
	s.log.Info().Str("cron", s.cfg.CronSpec).Msg("cierre diario programado")
	return nil
}

// Stop detiene el scheduler. Los jobs en curso terminan.
func (s *DailyCloseScheduler) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

// RunOnce cierra el día anterior para todas las empresas activas. El fallo de
// una empresa no aborta las demás; se acumula y reporta al final.
func (s *DailyCloseScheduler) RunOnce(ctx context.Context) error {
	now := s.now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)

	ids, err := s.companyRepo.ListActiveIDs(ctx)
	if err != nil {
		return fmt.Errorf("scheduler: empresas activas: %w", err)
	}

	var failed int
	for _, companyID := range ids {
		if err := s.closeCompany(ctx, companyID, day); err != nil {
			failed++
			s.log.Error().Err(err).Str("company_id", companyID).Msg("cierre de empresa falló")
		}
	}

	s.log.Info().
		Str("date", day.Format("2006-01-02")).
		Int("companies", len(ids)).
		Int("failed", failed).
		Msg("cierre diario ejecutado")

	if failed > 0 {
		return fmt.Errorf("scheduler: %d de %d empresas fallaron", failed, len(ids))
	}
	return nil
}

func (s *DailyCloseScheduler) closeCompany(ctx context.Context, companyID string, day time.Time) error {
	// El rango es el día calendario cerrado: EndDate cuenta ese día completo
	// (ver repository.RevenueFilter), así que ambos extremos son la misma fecha.
	summary, err := s.financeUC.GetSummary(ctx, finance.SummaryFilters{
		CompanyID: companyID,
		StartDate: &day,
		EndDate:   &day,
	})
	if err != nil {
		return err
	}

	return s.closeRepo.Upsert(ctx, &entity.DailyClose{
		CompanyID:     companyID,
		Date:          day,
		TotalIncome:   summary.TotalIncome,
		TotalExpenses: summary.TotalExpenses,
		NetProfit:     summary.NetProfit,
		IncomeCount:   summary.IncomeCount,
		ExpenseCount:  summary.ExpenseCount,
		CreatedAt:     s.now(),
	})
}
