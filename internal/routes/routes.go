package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"scheduling-app-server/internal/audit"
	"scheduling-app-server/internal/config"
	"scheduling-app-server/internal/handlers"
	"scheduling-app-server/internal/middleware"
	"scheduling-app-server/internal/models"
	"scheduling-app-server/internal/scheduling"
	"scheduling-app-server/internal/store"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	st := store.New(db)
	validator := scheduling.NewValidator(st, st)
	activity := audit.NewLoginLog(cfg.LoginActivityPath)

	authHandler := handlers.NewAuthHandler(db, cfg, handlers.NewDBCredentialVerifier(db), activity, st)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, cfg, validator, st)
	customerHandler := handlers.NewCustomerHandler(db)
	contactHandler := handlers.NewContactHandler(db)
	locationHandler := handlers.NewLocationHandler(db)
	reportHandler := handlers.NewReportHandler(st)

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerSecond, cfg.LoginRateBurst)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/login", middleware.RateLimit(loginLimiter), authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// User directory; creation is admin-only
		userRoutes := private.Group("/users")
		{
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin), userHandler.CreateUser)
		}

		// Appointment routes; validation happens inside the handlers
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/upcoming", appointmentHandler.GetUpcomingAppointment)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
		}

		// Customer routes; deleting a customer removes its appointments too
		customerRoutes := private.Group("/customers")
		{
			customerRoutes.POST("", customerHandler.CreateCustomer)
			customerRoutes.GET("", customerHandler.GetCustomers)
			customerRoutes.GET("/:id", customerHandler.GetCustomerByID)
			customerRoutes.PUT("/:id", customerHandler.UpdateCustomer)
			customerRoutes.DELETE("/:id", customerHandler.DeleteCustomer)
		}

		// Contact directory; creation is admin-only
		contactRoutes := private.Group("/contacts")
		{
			contactRoutes.GET("", contactHandler.GetContacts)
			contactRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin), contactHandler.CreateContact)
		}

		// Seeded reference data for customer forms
		countryRoutes := private.Group("/countries")
		{
			countryRoutes.GET("", locationHandler.GetCountries)
			countryRoutes.GET("/:id/divisions", locationHandler.GetDivisionsByCountry)
		}

		// Reports
		reportRoutes := private.Group("/reports")
		{
			reportRoutes.GET("/appointments-by-type-month", reportHandler.GetAppointmentsByTypeAndMonth)
			reportRoutes.GET("/contact-schedules", reportHandler.GetContactSchedules)
			reportRoutes.GET("/appointments-by-customer", reportHandler.GetAppointmentsByCustomer)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
