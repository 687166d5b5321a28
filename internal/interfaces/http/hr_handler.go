package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ubsapps/ubs-erp-api/internal/application/dto"
	"github.com/ubsapps/ubs-erp-api/internal/application/hr"
	"github.com/ubsapps/ubs-erp-api/pkg/validate"
)

// HRHandler maneja asistencia y permisos (protegido). La revisión de permisos
// se restringe por rol en el router.
type HRHandler struct {
	attendanceUC *hr.AttendanceUseCase
	leaveUC      *hr.LeaveUseCase
}

// NewHRHandler construye el handler.
func NewHRHandler(attendanceUC *hr.AttendanceUseCase, leaveUC *hr.LeaveUseCase) *HRHandler {
	return &HRHandler{attendanceUC: attendanceUC, leaveUC: leaveUC}
}

// CheckIn godoc
// @Summary      Abrir la jornada del día
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckInRequest  false  "Notas opcionales"
// @Success      201   {object}  dto.AttendanceDTO
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/hr/attendance/check-in [post]
func (h *HRHandler) CheckIn(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.CheckInRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c, "cuerpo inválido")
		}
	}
	out, err := h.attendanceUC.CheckIn(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CheckOut godoc
// @Summary      Cerrar la jornada abierta
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AttendanceDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hr/attendance/check-out [post]
func (h *HRHandler) CheckOut(c *fiber.Ctx) error {
	userID := GetUserID(c)
	out, err := h.attendanceUC.CheckOut(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAttendance godoc
// @Summary      Listar la asistencia propia
// @Description  Sin rango devuelve el mes en curso.
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.AttendanceDTO
// @Router       /api/hr/attendance [get]
func (h *HRHandler) ListAttendance(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.ListAttendanceRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c, "parámetros inválidos")
	}
	out, err := h.attendanceUC.ListByUser(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RequestLeave godoc
// @Summary      Solicitar permiso o vacaciones
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeaveRequest  true  "Datos de la solicitud"
// @Success      201   {object}  dto.LeaveDTO
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/hr/leaves [post]
func (h *HRHandler) RequestLeave(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.CreateLeaveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badBody(c, err.Error())
	}
	out, err := h.leaveUC.Request(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ReviewLeave godoc
// @Summary      Aprobar o rechazar una solicitud de permiso
// @Description  Solo solicitudes pendientes. Requiere rol admin o manager.
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.ReviewLeaveRequest  true  "Decisión"
// @Success      200   {object}  dto.LeaveDTO
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/hr/leaves/{id}/review [patch]
func (h *HRHandler) ReviewLeave(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	reviewerID := GetUserID(c)
	id := c.Params("id")
	var in dto.ReviewLeaveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badBody(c, err.Error())
	}
	out, err := h.leaveUC.Review(c.Context(), companyID, reviewerID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListLeaves godoc
// @Summary      Listar las solicitudes de permiso propias
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LeaveDTO
// @Router       /api/hr/leaves [get]
func (h *HRHandler) ListLeaves(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c, "parámetros inválidos")
	}
	out, err := h.leaveUC.ListByUser(c.Context(), userID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
