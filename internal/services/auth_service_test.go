// file: internal/services/auth_service_test.go
package services

import (
	"academichub/internal/cache"
	"academichub/internal/config"
	"academichub/internal/models"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	userRepo *fakeUserRepo
	cfg      *config.AuthConfig
	service  AuthService
	user     *models.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	userRepo := newFakeUserRepo()

	cfg := &config.AuthConfig{
		JWTSecret:       "test-secret",
		JWTExpiry:       24 * time.Hour,
		BCryptCost:      bcrypt.MinCost,
		ResetTokenTTL:   time.Hour,
		ResetRateLimit:  3,
		ResetRateWindow: time.Hour,
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name: "Alice", Email: "alice@example.com",
		PasswordHash:  string(hash),
		Role:          models.RoleTeacher,
		InstitutionID: 1, Active: true,
	}
	require.NoError(t, userRepo.Create(context.Background(), user))

	provider := cache.NewMemoryCache(cache.DefaultConfig(), zap.NewNop())
	t.Cleanup(func() { provider.Close() })

	return &authFixture{
		userRepo: userRepo,
		cfg:      cfg,
		service:  NewAuthService(userRepo, provider, cfg, zap.NewNop()),
		user:     user,
	}
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.service.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(f.cfg.JWTExpiry), resp.ExpiresAt, time.Minute)
	require.NotNil(t, resp.User.LastLogin, "successful login stamps last_login")

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(resp.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(f.cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, f.user.ID, claims.UserID)
	assert.Equal(t, f.user.InstitutionID, claims.InstitutionID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	f := newAuthFixture(t)

	// Wrong password, unknown account and disabled account get the same
	// message so callers cannot probe which emails exist.
	_, wrongPassword := f.service.Login(context.Background(), &LoginRequest{
		Email: "alice@example.com", Password: "nope12",
	})
	_, unknownEmail := f.service.Login(context.Background(), &LoginRequest{
		Email: "ghost@example.com", Password: "secret123",
	})

	f.user.Active = false
	require.NoError(t, f.userRepo.Update(context.Background(), f.user))
	_, disabled := f.service.Login(context.Background(), &LoginRequest{
		Email: "alice@example.com", Password: "secret123",
	})

	for _, err := range []error{wrongPassword, unknownEmail, disabled} {
		require.Error(t, err)
		serviceErr := GetServiceError(err)
		assert.Equal(t, "UNAUTHORIZED", serviceErr.Type)
		assert.Equal(t, "invalid credentials", serviceErr.Message)
	}
}

func TestRequestPasswordReset(t *testing.T) {
	f := newAuthFixture(t)

	err := f.service.RequestPasswordReset(context.Background(), &ForgotPasswordRequest{
		Email: "alice@example.com",
	})
	require.NoError(t, err)

	stored, err := f.userRepo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.ResetToken)
	require.NotNil(t, stored.ResetTokenExpires)
	assert.Len(t, *stored.ResetToken, 64)
	assert.WithinDuration(t, time.Now().Add(f.cfg.ResetTokenTTL), *stored.ResetTokenExpires, time.Minute)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	// Unknown emails are indistinguishable from known ones.
	err := f.service.RequestPasswordReset(context.Background(), &ForgotPasswordRequest{
		Email: "ghost@example.com",
	})
	assert.NoError(t, err)
}

func TestRequestPasswordResetRateLimited(t *testing.T) {
	f := newAuthFixture(t)

	req := &ForgotPasswordRequest{Email: "alice@example.com"}
	for i := 0; i < f.cfg.ResetRateLimit; i++ {
		require.NoError(t, f.service.RequestPasswordReset(context.Background(), req))
	}

	err := f.service.RequestPasswordReset(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "RATE_LIMIT", GetServiceError(err).Type)
}

func TestResetPassword(t *testing.T) {
	f := newAuthFixture(t)

	require.NoError(t, f.service.RequestPasswordReset(context.Background(), &ForgotPasswordRequest{
		Email: "alice@example.com",
	}))
	stored, err := f.userRepo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	token := *stored.ResetToken

	require.NoError(t, f.service.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token:       token,
		NewPassword: "brandnew1",
	}))

	stored, err = f.userRepo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Nil(t, stored.ResetToken, "consumed tokens are cleared")
	assert.Nil(t, stored.ResetTokenExpires)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("brandnew1")))

	// The token pair was cleared, replaying it must fail.
	err = f.service.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token:       token,
		NewPassword: "another1",
	})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", GetServiceError(err).Type)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newAuthFixture(t)

	token := "deadbeef"
	past := time.Now().Add(-time.Minute)
	f.user.ResetToken = &token
	f.user.ResetTokenExpires = &past
	require.NoError(t, f.userRepo.Update(context.Background(), f.user))

	err := f.service.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token:       token,
		NewPassword: "brandnew1",
	})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", GetServiceError(err).Type)
}
