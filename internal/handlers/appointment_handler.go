package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/estudiobarber/turnos-api/internal/httperr"
	"github.com/estudiobarber/turnos-api/internal/httpresp"
	"github.com/estudiobarber/turnos-api/internal/middleware"
	"github.com/estudiobarber/turnos-api/internal/timezone"
	ucAppointment "github.com/estudiobarber/turnos-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER (admin calendar)
// ======================================================

type AppointmentHandler struct {
	listByDateUC  *ucAppointment.ListAppointmentsByDate
	listByMonthUC *ucAppointment.ListAppointmentsByMonth
	cancelUC      *ucAppointment.CancelAppointment
	refundUC      *ucAppointment.RefundAppointment
	tz            string
}

func NewAppointmentHandler(
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByMonthUC *ucAppointment.ListAppointmentsByMonth,
	cancelUC *ucAppointment.CancelAppointment,
	refundUC *ucAppointment.RefundAppointment,
	tz string,
) *AppointmentHandler {
	return &AppointmentHandler{
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
		cancelUC:      cancelUC,
		refundUC:      refundUC,
		tz:            tz,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Fecha obligatoria.")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location(h.tz))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar turnos.")
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Año y mes son obligatorios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Año inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mes inválido.")
		return
	}

	out, err := h.listByMonthUC.Execute(c.Request.Context(), year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar turnos.")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// CANCEL / REFUND
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), userID, uint(id))
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Turno no encontrado.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "El turno no puede cancelarse.")
		default:
			httperr.Internal(c, "failed_to_cancel", "Error al cancelar el turno.")
		}
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Refund(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.refundUC.Execute(c.Request.Context(), userID, uint(id))
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Turno no encontrado.")
		case httperr.IsBusiness(err, "nothing_to_refund"):
			httperr.BadRequest(c, "nothing_to_refund", "El turno no tiene pagos registrados.")
		default:
			httperr.Internal(c, "failed_to_refund", "Error al reembolsar el turno.")
		}
		return
	}

	httpresp.OK(c, ap)
}
