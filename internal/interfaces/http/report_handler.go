package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ubsapps/ubs-erp-api/internal/application/dto"
	"github.com/ubsapps/ubs-erp-api/internal/application/usecase"
	"github.com/ubsapps/ubs-erp-api/pkg/validate"
)

// ReportHandler maneja los reportes diarios de trabajo (protegido).
type ReportHandler struct {
	uc *usecase.DailyReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.DailyReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Submit godoc
// @Summary      Enviar el reporte diario
// @Description  Un reporte por usuario y día; reenviar el mismo día lo reemplaza.
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitDailyReportRequest  true  "Contenido del reporte"
// @Success      200   {object}  dto.DailyReportDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports [post]
func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.SubmitDailyReportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badBody(c, err.Error())
	}
	out, err := h.uc.Submit(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetMine godoc
// @Summary      Obtener el reporte propio de una fecha
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date  path  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.DailyReportDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/mine/{date} [get]
func (h *ReportHandler) GetMine(c *fiber.Ctx) error {
	userID := GetUserID(c)
	out, err := h.uc.GetByUserAndDate(c.Context(), userID, c.Params("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByCompany godoc
// @Summary      Listar reportes de la empresa
// @Description  Por defecto devuelve los últimos 7 días. Requiere rol admin o manager.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.DailyReportDTO
// @Router       /api/reports [get]
func (h *ReportHandler) ListByCompany(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.ListDailyReportsRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c, "parámetros inválidos")
	}
	out, err := h.uc.ListByCompany(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
