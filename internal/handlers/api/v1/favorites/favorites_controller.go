// file: internal/handlers/api/v1/favorites/favorites_controller.go
package favorites

import (
	"academichub/internal/middleware"
	"academichub/internal/services"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type FavoriteController struct {
	serviceCollection *services.ServiceCollection
	logger            *zap.Logger
}

// NewFavoriteController creates a new favorite controller
func NewFavoriteController(serviceCollection *services.ServiceCollection, logger *zap.Logger) *FavoriteController {
	return &FavoriteController{
		serviceCollection: serviceCollection,
		logger:            logger,
	}
}

// AddFavorite bookmarks a file for the authenticated user
func (c *FavoriteController) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, fileID, err := c.identify(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := c.serviceCollection.FavoriteService.AddFavorite(r.Context(), userID, fileID); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusNoContent, nil)
}

// RemoveFavorite removes a bookmark
func (c *FavoriteController) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, fileID, err := c.identify(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := c.serviceCollection.FavoriteService.RemoveFavorite(r.Context(), userID, fileID); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusNoContent, nil)
}

// ListFavorites returns the authenticated user's favorited files
func (c *FavoriteController) ListFavorites(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		middleware.WriteError(w, r, services.NewUnauthorizedError("authentication required"))
		return
	}

	files, err := c.serviceCollection.FavoriteService.ListFavorites(r.Context(), claims.UserID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, files)
}

// CheckFavorite reports whether the authenticated user favorited a file
func (c *FavoriteController) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	userID, fileID, err := c.identify(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	favorite, err := c.serviceCollection.FavoriteService.IsFavorite(r.Context(), userID, fileID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]bool{"favorite": favorite})
}

func (c *FavoriteController) identify(r *http.Request) (userID, fileID int64, err error) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		return 0, 0, services.NewUnauthorizedError("authentication required")
	}

	fileID, parseErr := strconv.ParseInt(mux.Vars(r)["fileID"], 10, 64)
	if parseErr != nil {
		return 0, 0, services.NewValidationError("invalid file ID", parseErr)
	}
	return claims.UserID, fileID, nil
}
