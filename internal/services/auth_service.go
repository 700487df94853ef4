// file: internal/services/auth_service.go
package services

import (
	"academichub/internal/cache"
	"academichub/internal/config"
	"academichub/internal/models"
	"academichub/internal/repositories"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// authService implements AuthService
type authService struct {
	userRepo repositories.UserRepository
	cache    cache.Cache
	config   *config.AuthConfig
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	cache cache.Cache,
	cfg *config.AuthConfig,
	logger *zap.Logger,
) AuthService {
	return &authService{
		userRepo: userRepo,
		cache:    cache,
		config:   cfg,
		logger:   logger,
	}
}

// Claims is the JWT payload for access tokens
type Claims struct {
	UserID        int64           `json:"user_id"`
	InstitutionID int64           `json:"institution_id"`
	Role          models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// ===============================
// AUTHENTICATION
// ===============================

// Login verifies credentials and issues an access token. A successful login
// stamps the user's last-login time.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid login request", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("Failed to load user for login", zap.Error(err))
		return nil, NewInternalError("failed to authenticate")
	}
	// The same message covers unknown email, wrong password and disabled
	// accounts so responses don't leak which one it was.
	if user == nil || !user.Active {
		return nil, NewUnauthorizedError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Failed login attempt", zap.String("email", req.Email))
		return nil, NewUnauthorizedError("invalid credentials")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Warn("Failed to stamp last login", zap.Error(err), zap.Int64("user_id", user.ID))
	}

	expiresAt := now.Add(s.config.JWTExpiry)
	token, err := s.generateAccessToken(user, expiresAt)
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err))
		return nil, NewInternalError("failed to authenticate")
	}

	s.logger.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.Int64("institution_id", user.InstitutionID),
	)

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

func (s *authService) generateAccessToken(user *models.User, expiresAt time.Time) (string, error) {
	claims := &Claims{
		UserID:        user.ID,
		InstitutionID: user.InstitutionID,
		Role:          user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// ===============================
// PASSWORD RECOVERY
// ===============================

// RequestPasswordReset issues a single-use reset token for the account.
// Unknown emails get the same nil response as known ones. Requests are
// rate-limited per email through the cache.
func (s *authService) RequestPasswordReset(ctx context.Context, req *ForgotPasswordRequest) error {
	if err := validate.Struct(req); err != nil {
		return NewValidationError("invalid password reset request", err)
	}

	if err := s.checkPasswordResetRateLimit(ctx, req.Email); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("Failed to load user for password reset", zap.Error(err))
		return NewInternalError("failed to process password reset")
	}
	if user == nil {
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		s.logger.Error("Failed to generate reset token", zap.Error(err))
		return NewInternalError("failed to process password reset")
	}

	expires := time.Now().Add(s.config.ResetTokenTTL)
	user.ResetToken = &token
	user.ResetTokenExpires = &expires

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to store reset token", zap.Error(err), zap.Int64("user_id", user.ID))
		return NewInternalError("failed to process password reset")
	}

	s.logger.Info("Password reset requested",
		zap.Int64("user_id", user.ID),
		zap.Time("expires", expires),
	)

	return nil
}

// ResetPassword consumes a reset token and sets a new password. The token
// pair is cleared on success so it can never be replayed.
func (s *authService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := validate.Struct(req); err != nil {
		return NewValidationError("invalid password reset request", err)
	}

	user, err := s.userRepo.GetByResetToken(ctx, req.Token)
	if err != nil {
		s.logger.Error("Failed to load user by reset token", zap.Error(err))
		return NewInternalError("failed to reset password")
	}
	if user == nil || !user.HasValidResetToken() {
		return NewUnauthorizedError("invalid or expired reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.config.BCryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return NewInternalError("failed to reset password")
	}

	user.PasswordHash = string(hash)
	user.ResetToken = nil
	user.ResetTokenExpires = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to store new password", zap.Error(err), zap.Int64("user_id", user.ID))
		return NewInternalError("failed to reset password")
	}

	s.logger.Info("Password reset completed", zap.Int64("user_id", user.ID))
	return nil
}

func (s *authService) checkPasswordResetRateLimit(ctx context.Context, email string) error {
	key := "pwreset:" + email
	count, err := s.cache.Increment(ctx, key, s.config.ResetRateWindow)
	if err != nil {
		// Cache trouble must not block password recovery.
		s.logger.Warn("Password reset rate limit check failed", zap.Error(err))
		return nil
	}

	if count > int64(s.config.ResetRateLimit) {
		return NewRateLimitError("too many password reset requests", map[string]interface{}{
			"retry_after": s.config.ResetRateWindow.String(),
		})
	}
	return nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
