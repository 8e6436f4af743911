package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/estudiobarber/turnos-api/internal/cache"
	"github.com/estudiobarber/turnos-api/internal/httperr"
	"github.com/estudiobarber/turnos-api/internal/httpresp"
	"github.com/estudiobarber/turnos-api/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewServiceHandler(db *gorm.DB, cache cache.Cache) *ServiceHandler {
	return &ServiceHandler{db: db, cache: cache}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_minutes" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	DepositMin  float64 `json:"deposit_min" binding:"required,gt=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DurationMin *int     `json:"duration_minutes,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	DepositMin  *float64 `json:"deposit_min,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al listar servicios.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	// deposit must hold the slot without exceeding the price
	if req.DepositMin > req.Price {
		httperr.BadRequest(c, "invalid_deposit", "La seña no puede superar el precio.")
		return
	}

	svc := models.Service{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		DepositMin:  req.DepositMin,
		Active:      true,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Error al crear el servicio.")
		return
	}

	_ = h.cache.Delete(c.Request.Context(), "catalog:services")

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, uint(id)).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DepositMin != nil {
		svc.DepositMin = *req.DepositMin
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if svc.DepositMin <= 0 || svc.DepositMin > svc.Price {
		httperr.BadRequest(c, "invalid_deposit", "La seña no puede superar el precio.")
		return
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Error al actualizar el servicio.")
		return
	}

	_ = h.cache.Delete(c.Request.Context(), "catalog:services")

	httpresp.OK(c, svc)
}
