package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendaflow/salon-scheduler/internal/audit"
	"github.com/agendaflow/salon-scheduler/internal/cache"
	"github.com/agendaflow/salon-scheduler/internal/config"
	"github.com/agendaflow/salon-scheduler/internal/handlers"
	infraRepo "github.com/agendaflow/salon-scheduler/internal/infra/repository"
	"github.com/agendaflow/salon-scheduler/internal/middleware"
	"github.com/agendaflow/salon-scheduler/internal/payments"
	"github.com/agendaflow/salon-scheduler/internal/storage"
	ucAppointment "github.com/agendaflow/salon-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

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

	availabilityCache := cache.NewAvailabilityCache(cfg)
	uploader := storage.NewUploader(cfg)

	var paymentLinks payments.LinkGenerator = payments.Disabled{}
	if cfg.MercadoPagoToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			log.Printf("mercadopago desabilitado: %v", err)
		} else {
			paymentLinks = mp
		}
	}

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		bookingRepo,
		auditDispatcher,
		availabilityCache,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		bookingRepo,
		auditDispatcher,
		availabilityCache,
	)

	approveAppointmentUC := ucAppointment.NewApproveAppointment(
		bookingRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		bookingRepo,
		auditDispatcher,
		availabilityCache,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		bookingRepo,
		auditDispatcher,
		availabilityCache,
	)

	noShowUC := ucAppointment.NewMarkNoShow(
		bookingRepo,
		auditDispatcher,
		availabilityCache,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		bookingRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		bookingRepo,
	)

	availabilityUC := ucAppointment.NewGetAvailability(
		bookingRepo,
		availabilityCache,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	locationHandler := handlers.NewLocationHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)
	exceptionHandler := handlers.NewExceptionHandler(db)

	agentHandler := handlers.NewAgentHandler(db, uploader)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		approveAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		noShowUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		availabilityUC,
		paymentLinks,
		bookingRepo,
	)

	dashboardHandler := handlers.NewDashboardHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, bookingRepo, createAppointmentUC, availabilityUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/agents", publicHandler.ListAgents)
			publicAPI.GET("/:slug/availability", publicHandler.AvailabilityForClient)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
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

			// ------------------------------
			// LOCATIONS
			// ------------------------------
			secured.GET("/me/locations", locationHandler.List)
			secured.POST("/me/locations", locationHandler.Create)
			secured.GET("/me/locations/:id", locationHandler.Get)
			secured.PATCH("/me/locations/:id", locationHandler.Update)

			secured.GET("/me/locations/:id/exceptions", exceptionHandler.List)
			secured.POST("/me/locations/:id/exceptions", exceptionHandler.Create)
			secured.PATCH("/me/locations/:id/exceptions/:exceptionId", exceptionHandler.Update)
			secured.DELETE("/me/locations/:id/exceptions/:exceptionId", exceptionHandler.Delete)

			// ------------------------------
			// SCHEDULES (unidade ou profissional)
			// ------------------------------
			secured.GET("/me/schedules/:ownerType/:id", scheduleHandler.Get)
			secured.PUT("/me/schedules/:ownerType/:id", scheduleHandler.Update)

			// ------------------------------
			// AGENTS
			// ------------------------------
			secured.GET("/me/agents", agentHandler.List)
			secured.POST("/me/agents", agentHandler.Create)
			secured.GET("/me/agents/:id", agentHandler.Get)
			secured.PATCH("/me/agents/:id", agentHandler.Update)
			secured.POST("/me/agents/:id/avatar", agentHandler.UploadAvatar)

			secured.GET("/me/agents/:id/blocks", agentHandler.ListBlocks)
			secured.POST("/me/agents/:id/blocks", agentHandler.CreateBlock)
			secured.DELETE("/me/agents/:id/blocks/:blockId", agentHandler.DeleteBlock)

			// ------------------------------
			// CATALOG
			// ------------------------------
			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/extras", serviceHandler.ListExtras)
			secured.POST("/me/extras", serviceHandler.CreateExtra)
			secured.PATCH("/me/extras/:id", serviceHandler.UpdateExtra)

			secured.GET("/me/clients", clientHandler.List)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/me/appointments/availability", appointmentHandler.Availability)
			secured.PATCH("/me/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/me/appointments/:id/approve", appointmentHandler.Approve)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)
			secured.POST("/me/appointments/:id/payment-link", appointmentHandler.PaymentLink)

			secured.GET("/me/dashboard", dashboardHandler.Summary)
			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
