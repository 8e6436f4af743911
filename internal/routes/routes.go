package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/estudiobarber/turnos-api/internal/audit"
	"github.com/estudiobarber/turnos-api/internal/cache"
	"github.com/estudiobarber/turnos-api/internal/config"
	"github.com/estudiobarber/turnos-api/internal/handlers"
	"github.com/estudiobarber/turnos-api/internal/infra/mercadopago"
	infraRepo "github.com/estudiobarber/turnos-api/internal/infra/repository"
	"github.com/estudiobarber/turnos-api/internal/infra/storage"
	"github.com/estudiobarber/turnos-api/internal/middleware"
	ucAppointment "github.com/estudiobarber/turnos-api/internal/usecase/appointment"
	ucPayment "github.com/estudiobarber/turnos-api/internal/usecase/payment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, store cache.Cache, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	gateway, err := mercadopago.New(cfg)
	if err != nil {
		log.Fatalf("failed to init mercadopago gateway: %v", err)
	}

	avatars := storage.NewAvatarStore(cfg)

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		ucAppointment.WorkingWindow{
			Open:            cfg.WorkOpen,
			Close:           cfg.WorkClose,
			DefaultSlotMins: cfg.DefaultSlotMins,
		},
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	refundAppointmentUC := ucAppointment.NewRefundAppointment(
		appointmentRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	listByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
		cfg.Timezone,
	)

	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
		cfg.Timezone,
	)

	createPreferenceUC := ucPayment.NewCreatePreference(
		appointmentRepo,
		gateway,
		auditDispatcher,
	)

	processWebhookUC := ucPayment.NewProcessWebhook(
		appointmentRepo,
		gateway,
		auditDispatcher,
		cfg.Timezone,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	publicHandler := handlers.NewPublicHandler(
		db,
		store,
		cfg.Timezone,
		availabilityUC,
		createAppointmentUC,
		createPreferenceUC,
	)

	webhookHandler := handlers.NewWebhookHandler(processWebhookUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		listByDateUC,
		listByMonthUC,
		cancelAppointmentUC,
		refundAppointmentUC,
		cfg.Timezone,
	)

	serviceHandler := handlers.NewServiceHandler(db, store)
	barberHandler := handlers.NewBarberHandler(db, store, avatars)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC (booking wizard)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.POST("/availability", publicHandler.GetAvailability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/appointments/:id", publicHandler.GetAppointment)
			publicAPI.POST("/payments/preference", publicHandler.CreatePaymentPreference)
		}

		// ------------------------------
		// PAYMENT WEBHOOK
		// ------------------------------
		api.POST("/payments/webhook", webhookHandler.HandlePayment)

		// ------------------------------
		// AUTH (staff)
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADMIN (staff calendar + catalog)
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/appointments", appointmentHandler.ListByDate)
			admin.GET("/appointments/month", appointmentHandler.ListByMonth)
			admin.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			admin.PATCH("/appointments/:id/refund", appointmentHandler.Refund)

			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)

			admin.GET("/barbers", barberHandler.List)
			admin.POST("/barbers", barberHandler.Create)
			admin.PATCH("/barbers/:id/active", barberHandler.SetActive)
			admin.POST("/barbers/:id/avatar", barberHandler.UploadAvatar)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
