package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/ubsapps/ubs-erp-api/docs"
	"github.com/ubsapps/ubs-erp-api/internal/application/analytics"
	"github.com/ubsapps/ubs-erp-api/internal/application/auth"
	"github.com/ubsapps/ubs-erp-api/internal/application/billing"
	"github.com/ubsapps/ubs-erp-api/internal/application/finance"
	"github.com/ubsapps/ubs-erp-api/internal/application/hr"
	"github.com/ubsapps/ubs-erp-api/internal/application/sales"
	"github.com/ubsapps/ubs-erp-api/internal/application/usecase"
	infraexcel "github.com/ubsapps/ubs-erp-api/internal/infrastructure/excel"
	infrapdf "github.com/ubsapps/ubs-erp-api/internal/infrastructure/pdf"
	"github.com/ubsapps/ubs-erp-api/internal/infrastructure/postgres"
	httpRouter "github.com/ubsapps/ubs-erp-api/internal/interfaces/http"
	"github.com/ubsapps/ubs-erp-api/internal/scheduler"
	"github.com/ubsapps/ubs-erp-api/pkg/config"
	"github.com/ubsapps/ubs-erp-api/pkg/logger"
)

// @title           UBS ERP API
// @version         1.0
// @description     API de gestión empresarial: finanzas, ventas, facturación, RRHH, proyectos y entregas.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
// @description     Escriba "Bearer" seguido de un espacio y el token JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.RunMigrations(cfg.DB); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	saleRepo := postgres.NewProductSaleRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	revenueRepo := postgres.NewRevenueRepository(pool)
	attendanceRepo := postgres.NewAttendanceRepository(pool)
	leaveRepo := postgres.NewLeaveRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	reportRepo := postgres.NewDailyReportRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	closeRepo := postgres.NewDailyCloseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	financeUC := finance.NewFinanceUseCase(revenueRepo, txRepo, finance.Policy{
		QueryTimeout:  cfg.Finance.QueryTimeout,
		RetryAttempts: cfg.Finance.RetryAttempts,
	}, cfg.Finance.MaxPageLimit)
	salesUC := sales.NewSalesUseCase(saleRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, clientRepo)
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, companyRepo, clientRepo, infrapdf.NewMarotoPDFGenerator())
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, cfg.JWT)
	attendanceUC := hr.NewAttendanceUseCase(attendanceRepo)
	leaveUC := hr.NewLeaveUseCase(leaveRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	projectUC := usecase.NewProjectUseCase(projectRepo, clientRepo)
	reportUC := usecase.NewDailyReportUseCase(reportRepo)
	deliveryUC := usecase.NewDeliveryUseCase(deliveryRepo, invoiceRepo, userRepo)
	dashboardUC := analytics.NewDashboardUseCase(financeUC)

	// Cierre diario programado por empresa
	closeScheduler := scheduler.NewDailyCloseScheduler(
		cfg.Scheduler, financeUC, companyRepo, closeRepo, log.Component("scheduler"),
	)
	if err := closeScheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("cierre diario programado")
	}
	defer closeScheduler.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "UBS ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    companyUC,
		ClientUC:     clientUC,
		ProjectUC:    projectUC,
		ReportUC:     reportUC,
		DeliveryUC:   deliveryUC,
		FinanceUC:    financeUC,
		Exporter:     infraexcel.NewSummaryExporter(),
		SalesUC:      salesUC,
		InvoiceUC:    invoiceUC,
		InvoicePDFUC: invoicePDFUC,
		AttendanceUC: attendanceUC,
		LeaveUC:      leaveUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
