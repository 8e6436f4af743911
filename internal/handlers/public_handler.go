package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/estudiobarber/turnos-api/internal/cache"
	domain "github.com/estudiobarber/turnos-api/internal/domain/appointment"
	"github.com/estudiobarber/turnos-api/internal/httperr"
	"github.com/estudiobarber/turnos-api/internal/httpresp"
	"github.com/estudiobarber/turnos-api/internal/models"
	"github.com/estudiobarber/turnos-api/internal/timezone"
	ucAppointment "github.com/estudiobarber/turnos-api/internal/usecase/appointment"
	ucPayment "github.com/estudiobarber/turnos-api/internal/usecase/payment"
)

const catalogCacheTTL = 60 * time.Second

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db    *gorm.DB
	cache cache.Cache
	tz    string

	availabilityUC *ucAppointment.GetAvailability
	createUC       *ucAppointment.CreateAppointment
	preferenceUC   *ucPayment.CreatePreference
}

func NewPublicHandler(
	db *gorm.DB,
	cache cache.Cache,
	tz string,
	availabilityUC *ucAppointment.GetAvailability,
	createUC *ucAppointment.CreateAppointment,
	preferenceUC *ucPayment.CreatePreference,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		cache:          cache,
		tz:             tz,
		availabilityUC: availabilityUC,
		createUC:       createUC,
		preferenceUC:   preferenceUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type AvailabilityRequest struct {
	BarberID uint   `json:"barberId" binding:"required"`
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Duration int    `json:"duration"`
}

type CreateAppointmentRequest struct {
	CustomerID    string `json:"customerId" binding:"required"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	BarberID      uint   `json:"barberId" binding:"required"`
	ServiceID     uint   `json:"serviceId" binding:"required"`
	Date          string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime     string `json:"start_time" binding:"required"` // HH:mm
}

type CreatePreferenceRequest struct {
	AppointmentID uint    `json:"appointmentId" binding:"required"`
	Title         string  `json:"title"`
	Amount        float64 `json:"amount" binding:"required"`
	PayType       string  `json:"payType" binding:"required"`
}

////////////////////////////////////////////////////////
// CATALOG (cached)
////////////////////////////////////////////////////////

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	const key = "catalog:barbers"

	if raw, hit, _ := h.cache.Get(c.Request.Context(), key); hit {
		c.Data(http.StatusOK, "application/json", raw)
		return
	}

	var barbers []models.Barber
	if err := h.db.
		Where("active = true").
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Error al listar barberos.")
		return
	}

	payload, _ := json.Marshal(httpresp.ListResponse[models.Barber]{
		Data:  barbers,
		Total: len(barbers),
	})
	_ = h.cache.Set(c.Request.Context(), key, payload, catalogCacheTTL)

	c.Data(http.StatusOK, "application/json", payload)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	const key = "catalog:services"

	if raw, hit, _ := h.cache.Get(c.Request.Context(), key); hit {
		c.Data(http.StatusOK, "application/json", raw)
		return
	}

	var services []models.Service
	if err := h.db.
		Where("active = true").
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al listar servicios.")
		return
	}

	payload, _ := json.Marshal(httpresp.ListResponse[models.Service]{
		Data:  services,
		Total: len(services),
	})
	_ = h.cache.Set(c.Request.Context(), key, payload, catalogCacheTTL)

	c.Data(http.StatusOK, "application/json", payload)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) GetAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_fields", "Faltan datos obligatorios.")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, timezone.Location(h.tz))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BarberID:    req.BarberID,
			Date:        date,
			SlotMinutes: req.Duration,
		},
	)
	if err != nil {
		if httperr.IsBusiness(err, "barber_not_found") {
			httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
			return
		}
		if httperr.IsBusiness(err, "missing_fields") {
			httperr.BadRequest(c, "missing_fields", "Faltan datos obligatorios.")
			return
		}
		httperr.Internal(c, "availability_error", "Error procesando la disponibilidad.")
		return
	}

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}

	httpresp.OK(c, gin.H{
		"date":            req.Date,
		"available_slots": starts,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_fields", "Faltan datos obligatorios.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			CustomerID:    req.CustomerID,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
			BarberID:      req.BarberID,
			ServiceID:     req.ServiceID,
			Date:          req.Date,
			Time:          req.StartTime,
		},
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "slot_taken"):
			httperr.Conflict(c, "slot_taken", "El horario ya está reservado.")
		case httperr.IsBusiness(err, "service_not_found"):
			httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		case httperr.IsBusiness(err, "barber_not_found"):
			httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		case httperr.IsBusiness(err, "missing_fields"),
			httperr.IsBusiness(err, "invalid_customer_id"),
			httperr.IsBusiness(err, "invalid_date_or_time"):
			httperr.BadRequest(c, err.Error(), "Datos inválidos.")
		default:
			httperr.Internal(c, "failed_to_create_appointment", "Error interno.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appointment": ap})
}

////////////////////////////////////////////////////////
// APPOINTMENT LOOKUP (redirect pages)
////////////////////////////////////////////////////////

// GetAppointment backs the success/pending redirect pages: they must confirm
// the real payment state from the ledger instead of trusting URL parameters.
func (h *PublicHandler) GetAppointment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Service").
		Preload("Barber").
		First(&ap, uint(id)).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Turno no encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"appointment": ap})
}

////////////////////////////////////////////////////////
// PAYMENT PREFERENCE
////////////////////////////////////////////////////////

func (h *PublicHandler) CreatePaymentPreference(c *gin.Context) {
	var req CreatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_fields", "Datos incompletos.")
		return
	}

	out, err := h.preferenceUC.Execute(
		c.Request.Context(),
		ucPayment.CreatePreferenceInput{
			AppointmentID: req.AppointmentID,
			Title:         req.Title,
			Amount:        req.Amount,
			PayType:       req.PayType,
		},
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Turno no encontrado.")
		case httperr.IsBusiness(err, "payment_gateway_error"):
			httperr.Upstream(c, "payment_gateway_error", "Error creando preferencia.")
		case httperr.IsBusiness(err, "missing_fields"),
			httperr.IsBusiness(err, "invalid_pay_type"),
			httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, err.Error(), "Datos incompletos.")
		default:
			httperr.Internal(c, "failed_to_create_preference", "Error interno.")
		}
		return
	}

	httpresp.OK(c, out)
}
