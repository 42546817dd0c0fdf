package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tattoo-studio-server/internal/config"
	"tattoo-studio-server/internal/handlers"
	"tattoo-studio-server/internal/logging"
	"tattoo-studio-server/internal/middleware"
	"tattoo-studio-server/internal/models"
	"tattoo-studio-server/internal/storage"
	"tattoo-studio-server/internal/store"
)

// Dependencies are the services the handlers are built from.
type Dependencies struct {
	Cfg      *config.Config
	Store    *store.Store
	KV       storage.KeyValue
	Admin    *models.Admin
	Logger   *logging.Logger
	Gatherer prometheus.Gatherer
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(deps.Store)
	adminHandler := handlers.NewAdminHandler(deps.Store, deps.Logger)
	authHandler := handlers.NewAuthHandler(deps.Admin, deps.Store, deps.Cfg, deps.Logger)
	preferencesHandler := handlers.NewPreferencesHandler(deps.KV)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		public.GET("/catalog", bookingHandler.GetCatalog)
		public.GET("/availability", bookingHandler.GetAvailability)
		public.POST("/appointments", bookingHandler.CreateAppointment)

		calendarRoutes := public.Group("/calendar")
		{
			calendarRoutes.GET("", bookingHandler.GetCalendar)
			calendarRoutes.GET("/:date", bookingHandler.GetDaySchedule)
		}

		preferenceRoutes := public.Group("/preferences")
		{
			preferenceRoutes.GET("/theme", preferencesHandler.GetTheme)
			preferenceRoutes.PUT("/theme", preferencesHandler.UpdateTheme)
		}

		public.POST("/auth/login", authHandler.Login)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(deps.Cfg))
	{
		private.POST("/auth/logout", authHandler.Logout)

		adminRoutes := private.Group("/admin")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.GET("/appointments", adminHandler.GetAppointments)
			adminRoutes.DELETE("/appointments/:id", adminHandler.DeleteAppointment)

			adminRoutes.GET("/filter", adminHandler.GetFilter)
			adminRoutes.PUT("/filter", adminHandler.SetFilter)
			adminRoutes.DELETE("/filter", adminHandler.ResetFilter)

			adminRoutes.GET("/stats", adminHandler.GetStats)
			adminRoutes.GET("/export", adminHandler.ExportCSV)
		}
	}
}
