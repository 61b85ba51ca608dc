package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-saas/internal/audit"
	"github.com/BruksfildServices01/agenda-saas/internal/config"
	"github.com/BruksfildServices01/agenda-saas/internal/handlers"
	infraRepo "github.com/BruksfildServices01/agenda-saas/internal/infra/repository"
	"github.com/BruksfildServices01/agenda-saas/internal/middleware"
	"github.com/BruksfildServices01/agenda-saas/internal/payments"
	"github.com/BruksfildServices01/agenda-saas/internal/storage"
	ucBooking "github.com/BruksfildServices01/agenda-saas/internal/usecase/booking"
	"github.com/BruksfildServices01/agenda-saas/internal/webhooks"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	webhookSender := webhooks.NewSender()
	webhookDispatcher := webhooks.NewDispatcher(db, webhookSender)

	// interface nil de verdade quando o bucket não está configurado
	var photoStorage storage.PhotoStorage
	if s3Storage := storage.NewS3PhotoStorage(cfg); s3Storage != nil {
		photoStorage = s3Storage
	}

	planCheckout, err := payments.NewPlanCheckout(cfg.MercadoPagoAccessToken)
	if err != nil {
		log.Printf("mercado pago desabilitado: %v", err)
		planCheckout = nil
	}

	// ======================================================
	// 🧠 USE CASES — BOOKING
	// ======================================================
	createAppointmentUC := ucBooking.NewCreateAppointment(
		bookingRepo,
		auditDispatcher,
		webhookDispatcher,
	)

	updateAppointmentStatusUC := ucBooking.NewUpdateAppointmentStatus(
		bookingRepo,
		auditDispatcher,
		webhookDispatcher,
	)

	listAvailableSlotsUC := ucBooking.NewListAvailableSlots(bookingRepo)

	bulkGenerateSlotsUC := ucBooking.NewBulkGenerateSlots(bookingRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	companyHandler := handlers.NewCompanyHandler(db, planCheckout)

	professionalHandler := handlers.NewProfessionalHandler(db, photoStorage)
	serviceHandler := handlers.NewServiceHandler(db)

	slotHandler := handlers.NewSlotHandler(
		db,
		bookingRepo,
		listAvailableSlotsUC,
		bulkGenerateSlotsUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookingRepo,
		createAppointmentUC,
		updateAppointmentStatusUC,
	)

	webhookHandler := handlers.NewWebhookHandler(db, webhookSender)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		bookingRepo,
		listAvailableSlotsUC,
		createAppointmentUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA (vitrine por slug)
		// ------------------------------
		publicAPI := api.Group("/public/:slug")
		{
			publicAPI.GET("", publicHandler.GetCompany)
			publicAPI.GET("/professionals", publicHandler.ListProfessionals)
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/professionals/:professionalId/services", publicHandler.ListProfessionalServices)
			publicAPI.GET("/slots", publicHandler.ListAvailableSlots)

			publicAPI.POST(
				"/appointments",
				middleware.PublicRateLimit(rdb, cfg.PublicBookingPerMin),
				publicHandler.CreateAppointment,
			)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/company", companyHandler.GetMeCompany)
			secured.PATCH("/me/company", companyHandler.UpdateMeCompany)
			secured.POST("/me/company/plan-checkout", companyHandler.PlanCheckout)

			// ------------------------------
			// PROFESSIONALS
			// ------------------------------
			secured.GET("/me/professionals", professionalHandler.List)
			secured.POST("/me/professionals", professionalHandler.Create)
			secured.GET("/me/professionals/:id", professionalHandler.GetByID)
			secured.PATCH("/me/professionals/:id", professionalHandler.Update)
			secured.DELETE("/me/professionals/:id", professionalHandler.Delete)
			secured.POST("/me/professionals/:id/photo", professionalHandler.UploadPhoto)

			secured.GET("/me/professionals/:id/services", professionalHandler.ListServices)
			secured.POST("/me/professionals/:id/services/:serviceId", professionalHandler.AssociateService)
			secured.DELETE("/me/professionals/:id/services/:serviceId", professionalHandler.DissociateService)

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.GET("/me/services/:id", serviceHandler.GetByID)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			// ------------------------------
			// SLOTS
			// ------------------------------
			secured.GET("/me/slots", slotHandler.List)
			secured.POST("/me/slots", slotHandler.Create)
			secured.POST("/me/slots/bulk", slotHandler.BulkCreate)
			secured.DELETE("/me/slots/:id", slotHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.PATCH("/me/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// WEBHOOKS
			// ------------------------------
			secured.GET("/me/webhooks", webhookHandler.List)
			secured.POST("/me/webhooks", webhookHandler.Create)
			secured.PATCH("/me/webhooks/:id", webhookHandler.Update)
			secured.DELETE("/me/webhooks/:id", webhookHandler.Delete)
			secured.POST("/me/webhooks/:id/test", webhookHandler.Test)

			secured.GET("/me/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// 👑 SUPERADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireSuperadmin())
			{
				admin.GET("/companies", companyHandler.List)
				admin.POST("/companies", companyHandler.Create)
				admin.GET("/companies/:id", companyHandler.GetByID)
				admin.PATCH("/companies/:id", companyHandler.Update)
			}
		}
	}
}
