package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/opal-salon/salon-scheduler/internal/audit"
	"github.com/opal-salon/salon-scheduler/internal/config"
	"github.com/opal-salon/salon-scheduler/internal/handlers"
	"github.com/opal-salon/salon-scheduler/internal/infra/cache"
	infraRepo "github.com/opal-salon/salon-scheduler/internal/infra/repository"
	"github.com/opal-salon/salon-scheduler/internal/middleware"
	"github.com/opal-salon/salon-scheduler/internal/schedule"
	ucAppointment "github.com/opal-salon/salon-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, snap cache.DaySnapshot, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	scheduleSource := infraRepo.NewScheduleGormSource(db)
	resolver := schedule.NewResolver(scheduleSource)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	retry := ucAppointment.RetryPolicy{
		Attempts: cfg.RevalidateAttempts,
		Backoff:  time.Duration(cfg.RevalidateBackoffMs) * time.Millisecond,
	}

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo, resolver, snap, retry, auditDispatcher,
	)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo, resolver, snap, retry, auditDispatcher,
	)
	moveAppointmentUC := ucAppointment.NewMoveAppointment(
		appointmentRepo, resolver, snap, retry, auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, auditDispatcher)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(appointmentRepo, auditDispatcher)
	purgeAppointmentsUC := ucAppointment.NewPurgeOldAppointments(appointmentRepo, auditDispatcher)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo, resolver)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, resolver, snap)
	freeWindowUC := ucAppointment.NewGetFreeWindow(appointmentRepo, resolver)

	listWaitlistUC := ucAppointment.NewListWaitlist(appointmentRepo)
	addWaitlistUC := ucAppointment.NewAddWaitlistEntry(appointmentRepo, auditDispatcher)
	updateWaitlistUC := ucAppointment.NewUpdateWaitlistEntry(appointmentRepo, auditDispatcher)
	removeWaitlistUC := ucAppointment.NewRemoveWaitlistEntry(appointmentRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		moveAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		deleteAppointmentUC,
		purgeAppointmentsUC,
		listAppointmentsByDateUC,
		availabilityUC,
		freeWindowUC,
	)

	employeeHandler := handlers.NewEmployeeHandler(db, auditDispatcher)
	scheduleHandler := handlers.NewScheduleHandler(db, resolver, auditDispatcher)
	customerHandler := handlers.NewCustomerHandler(db)
	waitlistHandler := handlers.NewWaitlistHandler(
		listWaitlistUC, addWaitlistUC, updateWaitlistUC, removeWaitlistUC,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// OPERATIONAL
	// ======================================================
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/move", appointmentHandler.Move)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.POST("/appointments/purge", appointmentHandler.Purge)

			secured.GET("/availability", appointmentHandler.Availability)
			secured.GET("/availability/window", appointmentHandler.FreeWindow)

			// ------------------------------
			// EMPLOYEES + SCHEDULES
			// ------------------------------
			secured.GET("/employees", employeeHandler.List)
			secured.POST("/employees", employeeHandler.Create)
			secured.GET("/employees/:id", employeeHandler.Get)
			secured.PATCH("/employees/:id", employeeHandler.Update)
			secured.DELETE("/employees/:id", employeeHandler.Deactivate)

			secured.GET("/employees/:id/schedule", scheduleHandler.Resolved)
			secured.GET("/employees/:id/schedule/exceptions", scheduleHandler.ListExceptions)
			secured.POST("/employees/:id/schedule/exceptions", scheduleHandler.CreateException)
			secured.DELETE("/employees/:id/schedule/exceptions/:exception_id", scheduleHandler.DeleteException)

			secured.GET("/employees/:id/schedule/overrides", scheduleHandler.ListOverrides)
			secured.PUT("/employees/:id/schedule/overrides", scheduleHandler.PutOverride)
			secured.DELETE("/employees/:id/schedule/overrides/:date", scheduleHandler.DeleteOverride)

			// ------------------------------
			// CUSTOMERS
			// ------------------------------
			secured.GET("/customers", customerHandler.List)
			secured.GET("/customers/:phone", customerHandler.GetByPhone)
			secured.PUT("/customers", customerHandler.Upsert)

			// ------------------------------
			// WAITLIST
			// ------------------------------
			secured.GET("/waitlist", waitlistHandler.List)
			secured.POST("/waitlist", waitlistHandler.Create)
			secured.PATCH("/waitlist/:id", waitlistHandler.Update)
			secured.DELETE("/waitlist/:id", waitlistHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
