package services

import (
	"context"
	"errors"
	"time"

	"github.com/brikvest/backend/internal/config"
	"github.com/brikvest/backend/internal/models"
	"github.com/brikvest/backend/internal/utils"
	"github.com/brikvest/backend/pkg/logger"
	"github.com/brikvest/backend/pkg/response"
	"gorm.io/gorm"
)

// AuthService authenticates back-office users and manages their sessions.
type AuthService struct {
	db         *gorm.DB
	sessions   SessionStore
	sessionTTL time.Duration
}

func NewAuthService(db *gorm.DB, sessions SessionStore, sessionCfg *config.SessionConfig) *AuthService {
	ttl := 24 * time.Hour
	if sessionCfg != nil && sessionCfg.TTLHours > 0 {
		ttl = time.Duration(sessionCfg.TTLHours) * time.Hour
	}
	return &AuthService{
		db:         db,
		sessions:   sessions,
		sessionTTL: ttl,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	SessionID string       `json:"session_id"`
	User      *models.User `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Login verifies credentials and opens a session. Missing users, disabled
// accounts and wrong passwords all read as the same 401; a valid login for
// a non-admin role is a 403 and opens no session.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid username or password")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, response.NewUnauthorized("invalid username or password")
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthorized("invalid username or password")
	}

	if !user.IsAdmin() {
		return nil, response.NewForbidden("admin access required")
	}

	expiresAt := time.Now().Add(s.sessionTTL)
	token, err := s.sessions.Create(ctx, &Session{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.db.Save(&user).Error; err != nil {
		logger.Warnf("[Auth] Failed to record last login for %s: %v", user.Username, err)
	}

	return &LoginResponse{
		SessionID: token,
		User:      &user,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout removes the session. Always succeeds, even for unknown tokens.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// GetUserByID retrieves a user by ID.
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// CreateAdminIfNotExists provisions the default admin account on first boot.
func (s *AuthService) CreateAdminIfNotExists() error {
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("role IN ?", []string{models.RoleAdmin, models.RoleSuperAdmin}).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := utils.HashPassword("admin")
	if err != nil {
		return err
	}

	admin := models.User{
		Username: "admin",
		Password: hashedPassword,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	return s.db.Create(&admin).Error
}
