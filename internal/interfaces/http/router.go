package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ubsapps/ubs-erp-api/internal/application/analytics"
	"github.com/ubsapps/ubs-erp-api/internal/application/auth"
	"github.com/ubsapps/ubs-erp-api/internal/application/billing"
	"github.com/ubsapps/ubs-erp-api/internal/application/finance"
	"github.com/ubsapps/ubs-erp-api/internal/application/hr"
	"github.com/ubsapps/ubs-erp-api/internal/application/sales"
	"github.com/ubsapps/ubs-erp-api/internal/application/usecase"
	"github.com/ubsapps/ubs-erp-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	ClientUC     *usecase.ClientUseCase
	ProjectUC    *usecase.ProjectUseCase
	ReportUC     *usecase.DailyReportUseCase
	DeliveryUC   *usecase.DeliveryUseCase
	FinanceUC    *finance.FinanceUseCase
	Exporter     finance.SummaryExporter
	SalesUC      *sales.SalesUseCase
	InvoiceUC    *billing.InvoiceUseCase
	InvoicePDFUC *billing.PDFUseCase
	AttendanceUC *hr.AttendanceUseCase
	LeaveUC      *hr.LeaveUseCase
	DashboardUC  *analytics.DashboardUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies (protegido; escritura solo admin)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Post("/", RequireRole(entity.RoleAdmin), companyHandler.Create)
	companies.Put("/:id", RequireRole(entity.RoleAdmin), companyHandler.Update)

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)

	// Finance (protegido)
	financeGroup := protected.Group("/finance")
	financeHandler := NewFinanceHandler(deps.FinanceUC, deps.Exporter)
	financeGroup.Get("/summary", financeHandler.GetSummary)
	financeGroup.Get("/summary/export", financeHandler.ExportSummary)
	financeGroup.Get("/revenue-chart", financeHandler.GetRevenueChart)
	financeGroup.Post("/transactions", financeHandler.CreateTransaction)
	financeGroup.Get("/transactions", financeHandler.ListTransactions)
	financeGroup.Put("/transactions/:id", financeHandler.UpdateTransaction)
	financeGroup.Delete("/transactions/:id", financeHandler.DeleteTransaction)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/:id", salesHandler.GetByID)
	salesGroup.Patch("/:id/status", salesHandler.UpdateStatus)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)

	// HR: asistencia y permisos (protegido; revisión solo admin/manager)
	hrGroup := protected.Group("/hr")
	hrHandler := NewHRHandler(deps.AttendanceUC, deps.LeaveUC)
	hrGroup.Post("/attendance/check-in", hrHandler.CheckIn)
	hrGroup.Post("/attendance/check-out", hrHandler.CheckOut)
	hrGroup.Get("/attendance", hrHandler.ListAttendance)
	hrGroup.Post("/leaves", hrHandler.RequestLeave)
	hrGroup.Get("/leaves", hrHandler.ListLeaves)
	hrGroup.Patch("/leaves/:id/review", RequireRole(entity.RoleAdmin, entity.RoleManager), hrHandler.ReviewLeave)

	// Projects (protegido)
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Put("/:id", projectHandler.Update)

	// Daily reports (protegido; listado de empresa solo admin/manager)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Post("/", reportHandler.Submit)
	reports.Get("/mine/:date", reportHandler.GetMine)
	reports.Get("/", RequireRole(entity.RoleAdmin, entity.RoleManager), reportHandler.ListByCompany)

	// Deliveries (protegido)
	deliveries := protected.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	deliveries.Post("/", deliveryHandler.Create)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Patch("/:id/assign", deliveryHandler.Assign)
	deliveries.Patch("/:id/status", deliveryHandler.UpdateStatus)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)
}
