package middleware

import (
	"net/http"
	"strings"

	"github.com/brikvest/backend/internal/services"
	"github.com/gin-gonic/gin"
)

const (
	ContextSessionID = "session_id"
	ContextUserID    = "user_id"
	ContextUsername  = "username"
	ContextRole      = "role"
)

// AdminAuthRequired checks for a valid admin session token.
// Tokens are opaque session IDs sent as "Authorization: Bearer <id>".
func AdminAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "invalid authorization header format"})
			c.Abort()
			return
		}

		sessionID := parts[1]
		session, err := services.GetSessionStore().Get(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "invalid or expired session"})
			c.Abort()
			return
		}

		if session.Role != "admin" && session.Role != "super_admin" {
			c.JSON(http.StatusForbidden, gin.H{"code": 403, "message": "admin access required"})
			c.Abort()
			return
		}

		c.Set(ContextSessionID, sessionID)
		c.Set(ContextUserID, session.UserID)
		c.Set(ContextUsername, session.Username)
		c.Set(ContextRole, session.Role)

		c.Next()
	}
}

// GetSessionID gets the current session ID from context
func GetSessionID(c *gin.Context) string {
	if id, exists := c.Get(ContextSessionID); exists {
		return id.(string)
	}
	return ""
}

// GetUserID gets the current user ID from context
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// GetUsername gets the current username from context
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get(ContextUsername); exists {
		return username.(string)
	}
	return ""
}

// GetRole gets the current user role from context
func GetRole(c *gin.Context) string {
	if role, exists := c.Get(ContextRole); exists {
		return role.(string)
	}
	return ""
}
