package main

import (
	"github.com/brikvest/backend/internal/middleware"
	"github.com/brikvest/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Separate limiters so a flood of one submission type does not
	// lock out the others.
	reservationLimiter := middleware.NewRateLimiter(5, 10)
	bidLimiter := middleware.NewRateLimiter(2, 5)
	groupLimiter := middleware.NewRateLimiter(5, 10)
	loginLimiter := middleware.NewRateLimiter(1, 5)

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", svc.healthHandler.CheckHealth)

		// Properties (public read)
		api.GET("/properties", svc.propertyHandler.List)
		api.GET("/properties/:id", svc.propertyHandler.GetByID)
		api.POST("/seed-properties", svc.propertyHandler.Seed)

		// Reservations
		api.POST("/reservations", reservationLimiter.Middleware(), svc.reservationHandler.Create)
		api.GET("/reservations", svc.reservationHandler.ListByEmail)

		// Developer bids
		api.POST("/developer-bids", bidLimiter.Middleware(), svc.bidHandler.Create)
		api.GET("/developer-bids", svc.bidHandler.List)
		api.GET("/developer-bids/:id", svc.bidHandler.GetByID)

		// Investment groups
		api.GET("/investment-groups", svc.groupHandler.List)
		api.GET("/investment-groups/:id", svc.groupHandler.GetByID)
		api.GET("/investment-groups/:id/members", svc.groupHandler.Members)
		api.POST("/investment-groups", groupLimiter.Middleware(), svc.groupHandler.Create)
		api.POST("/investment-groups/join", groupLimiter.Middleware(), svc.groupHandler.Join)
		api.POST("/investment-groups/:id/contributions", groupLimiter.Middleware(), svc.groupHandler.Contribute)

		// Admin login (public, rate limited)
		api.POST("/admin/login", loginLimiter.Middleware(), svc.authHandler.Login)

		// Admin routes
		admin := api.Group("")
		admin.Use(middleware.AdminAuthRequired(), middleware.AuditLog())
		{
			admin.POST("/admin/logout", svc.authHandler.Logout)
			admin.GET("/admin/me", svc.authHandler.GetCurrentUser)

			admin.POST("/properties", svc.propertyHandler.Create)
			admin.PUT("/properties/:id", svc.propertyHandler.Update)
			admin.DELETE("/properties/:id", svc.propertyHandler.Delete)

			admin.GET("/reservations/all", svc.reservationHandler.ListAll)

			admin.PUT("/investment-groups/:id/status", svc.groupHandler.UpdateStatus)

			admin.POST("/upload/document", svc.uploadHandler.UploadDocument)
			admin.POST("/upload/image", svc.uploadHandler.UploadImage)

			admin.GET("/admin/system-logs", svc.systemLogHandler.List)
		}
	}
}
