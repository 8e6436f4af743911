package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/estudiobarber/turnos-api/internal/cache"
	"github.com/estudiobarber/turnos-api/internal/httperr"
	"github.com/estudiobarber/turnos-api/internal/httpresp"
	"github.com/estudiobarber/turnos-api/internal/infra/storage"
	"github.com/estudiobarber/turnos-api/internal/models"
)

const maxAvatarBytes = 5 << 20

type BarberHandler struct {
	db      *gorm.DB
	cache   cache.Cache
	avatars *storage.AvatarStore
}

func NewBarberHandler(db *gorm.DB, cache cache.Cache, avatars *storage.AvatarStore) *BarberHandler {
	return &BarberHandler{db: db, cache: cache, avatars: avatars}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	Bio         string `json:"bio"`
}

type SetBarberActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// --------- Handlers ---------

func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.Order("id ASC").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Error al listar barberos.")
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	barber := models.Barber{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Active:      true,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Error al crear el barbero.")
		return
	}

	_ = h.cache.Delete(c.Request.Context(), "catalog:barbers")

	c.JSON(http.StatusCreated, barber)
}

func (h *BarberHandler) SetActive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req SetBarberActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, uint(id)).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return
	}

	barber.Active = *req.Active
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Error al actualizar el barbero.")
		return
	}

	_ = h.cache.Delete(c.Request.Context(), "catalog:barbers")

	httpresp.OK(c, barber)
}

// UploadAvatar stores the barber portrait in S3 (resized, webp) and saves
// the resulting URL.
func (h *BarberHandler) UploadAvatar(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, uint(id)).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_avatar", "Falta el archivo de imagen.")
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		httperr.BadRequest(c, "avatar_too_large", "La imagen supera los 5MB.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_avatar", "Error al leer la imagen.")
		return
	}
	defer file.Close()

	url, err := h.avatars.Upload(c.Request.Context(), barber.ID, file)
	if err != nil {
		httperr.Upstream(c, "failed_to_upload_avatar", "Error al subir la imagen.")
		return
	}

	barber.AvatarURL = url
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Error al actualizar el barbero.")
		return
	}

	_ = h.cache.Delete(c.Request.Context(), "catalog:barbers")

	httpresp.OK(c, barber)
}
