package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ubsapps/ubs-erp-api/internal/application/analytics"
)

// DashboardHandler maneja el dashboard gerencial (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Dashboard financiero de la empresa
// @Description  Resumen del mes, resumen del día y gráfico de los últimos 6 meses.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.uc.GetDashboard(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
