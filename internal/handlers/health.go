package handlers

import (
	"github.com/brikvest/backend/internal/models"
	"github.com/brikvest/backend/internal/services"
	"github.com/gin-gonic/gin"
)

// HealthHandler reports subsystem status.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
// GET /api/health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	mailMode := "inline"
	if q := services.GetMailQueue(); q != nil && q.IsAsync() {
		mailMode = "async (Redis)"
	}

	sessionBackend := "memory"
	if _, ok := services.GetSessionStore().(*services.RedisSessionStore); ok {
		sessionBackend = "redis"
	}

	var activeProperties int64
	models.GetDB().Model(&models.Property{}).
		Where("status = ?", models.PropertyStatusActive).
		Count(&activeProperties)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "brikvest",
		"components": gin.H{
			"database":          dbStatus,
			"mail_queue":        mailMode,
			"session_store":     sessionBackend,
			"active_properties": activeProperties,
		},
	})
}
