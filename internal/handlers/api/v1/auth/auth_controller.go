// file: internal/handlers/api/v1/auth/auth_controller.go
package auth

import (
	"academichub/internal/middleware"
	"academichub/internal/services"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type AuthController struct {
	serviceCollection *services.ServiceCollection
	logger            *zap.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(serviceCollection *services.ServiceCollection, logger *zap.Logger) *AuthController {
	return &AuthController{
		serviceCollection: serviceCollection,
		logger:            logger,
	}
}

// Login handles credential authentication
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	resp, err := c.serviceCollection.AuthService.Login(r.Context(), &req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, resp)
}

// ForgotPassword starts the password recovery flow. The response is the
// same whether or not the email exists.
func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req services.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	if err := c.serviceCollection.AuthService.RequestPasswordReset(r.Context(), &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"message": "if the account exists, a reset token has been issued",
	})
}

// ResetPassword completes the password recovery flow
func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req services.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	if err := c.serviceCollection.AuthService.ResetPassword(r.Context(), &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "password updated",
	})
}
