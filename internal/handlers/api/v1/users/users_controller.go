// file: internal/handlers/api/v1/users/users_controller.go
package users

import (
	"academichub/internal/middleware"
	"academichub/internal/models"
	"academichub/internal/services"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type UserController struct {
	serviceCollection *services.ServiceCollection
	logger            *zap.Logger
}

// NewUserController creates a new user controller
func NewUserController(serviceCollection *services.ServiceCollection, logger *zap.Logger) *UserController {
	return &UserController{
		serviceCollection: serviceCollection,
		logger:            logger,
	}
}

// CreateUser handles user creation
func (c *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req services.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	user, err := c.serviceCollection.UserService.CreateUser(r.Context(), &req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, user)
}

// UpdateUser handles a full user overwrite
func (c *UserController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid user ID", err))
		return
	}

	var req services.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.ID = id

	user, err := c.serviceCollection.UserService.UpdateUser(r.Context(), &req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, user)
}

// GetUser handles user retrieval by ID
func (c *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid user ID", err))
		return
	}

	user, err := c.serviceCollection.UserService.GetUserByID(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, user)
}

// ListUsers handles user listing for one institution. An optional role
// query narrows the result to one role.
func (c *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	institutionID, err := strconv.ParseInt(mux.Vars(r)["institutionID"], 10, 64)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid institution ID", err))
		return
	}

	if roleStr := r.URL.Query().Get("role"); roleStr != "" {
		users, err := c.serviceCollection.UserService.ListUsersByRole(r.Context(), institutionID, models.UserRole(roleStr))
		if err != nil {
			middleware.WriteError(w, r, err)
			return
		}
		middleware.WriteJSON(w, http.StatusOK, users)
		return
	}

	users, err := c.serviceCollection.UserService.ListUsersByInstitution(r.Context(), institutionID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, users)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
