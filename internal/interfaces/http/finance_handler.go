package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ubsapps/ubs-erp-api/internal/application/dto"
	"github.com/ubsapps/ubs-erp-api/internal/application/finance"
	"github.com/ubsapps/ubs-erp-api/pkg/validate"
)

// FinanceHandler maneja el resumen financiero, el gráfico de ingresos y el
// CRUD de transacciones del libro (protegido).
type FinanceHandler struct {
	uc       *finance.FinanceUseCase
	exporter finance.SummaryExporter
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *finance.FinanceUseCase, exporter finance.SummaryExporter) *FinanceHandler {
	return &FinanceHandler{uc: uc, exporter: exporter}
}

// GetSummary godoc
// @Summary      Resumen financiero consolidado
// @Description  Suma transacciones del libro, ventas vendidas y facturas aprobadas o pagadas.
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        user_id     query  string  false  "Filtrar por usuario"
// @Param        start_date  query  string  false  "YYYY-MM-DD, inclusive"
// @Param        end_date    query  string  false  "YYYY-MM-DD, inclusive"
// @Success      200  {object}  dto.FinancialSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/summary [get]
func (h *FinanceHandler) GetSummary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.SummaryRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c, "parámetros inválidos")
	}
	filters, err := finance.ParseSummaryFilters(companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetSummary(c.Context(), filters)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetRevenueChart godoc
// @Summary      Gráfico de ingresos y gastos por período
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        periods      query  int     false  "Número de períodos (default 6)"
// @Param        granularity  query  string  false  "day | month | year (default month)"
// @Param        user_id      query  string  false  "Filtrar por usuario"
// @Success      200  {array}  dto.RevenueBucketDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/revenue-chart [get]
func (h *FinanceHandler) GetRevenueChart(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.RevenueChartRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c, "parámetros inválidos")
	}
	g, err := finance.ParseGranularity(in.Granularity)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetRevenueChart(c.Context(), companyID, in.UserID, in.Periods, g)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportSummary godoc
// @Summary      Exportar el resumen financiero a Excel
// @Tags         finance
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        user_id     query  string  false  "Filtrar por usuario"
// @Param        start_date  query  string  false  "YYYY-MM-DD, inclusive"
// @Param        end_date    query  string  false  "YYYY-MM-DD, inclusive"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/summary/export [get]
func (h *FinanceHandler) ExportSummary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.SummaryRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c, "parámetros inválidos")
	}
	data, err := h.uc.ExportSummary(c.Context(), h.exporter, companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("resumen-financiero-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}

// CreateTransaction godoc
// @Summary      Registrar transacción del libro
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Datos de la transacción"
// @Success      201   {object}  dto.TransactionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/finance/transactions [post]
func (h *FinanceHandler) CreateTransaction(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badBody(c, err.Error())
	}
	out, err := h.uc.CreateTransaction(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateTransaction godoc
// @Summary      Actualizar transacción del libro
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la transacción"
// @Param        body  body  dto.UpdateTransactionRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.TransactionDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/finance/transactions/{id} [put]
func (h *FinanceHandler) UpdateTransaction(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	id := c.Params("id")
	var in dto.UpdateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badBody(c, err.Error())
	}
	out, err := h.uc.UpdateTransaction(c.Context(), companyID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteTransaction godoc
// @Summary      Eliminar transacción del libro
// @Tags         finance
// @Security     Bearer
// @Param        id  path  string  true  "ID de la transacción"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finance/transactions/{id} [delete]
func (h *FinanceHandler) DeleteTransaction(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	id := c.Params("id")
	if err := h.uc.DeleteTransaction(c.Context(), companyID, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTransactions godoc
// @Summary      Listar transacciones del libro
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "income | expense"
// @Param        category    query  string  false  "Categoría"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.TransactionDTO
// @Router       /api/finance/transactions [get]
func (h *FinanceHandler) ListTransactions(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.ListTransactionsRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c, "parámetros inválidos")
	}
	out, err := h.uc.ListTransactions(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
