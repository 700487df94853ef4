// file: internal/router/router.go
package router

import (
	"academichub/internal/handlers/api/v1/auth"
	"academichub/internal/handlers/api/v1/comments"
	"academichub/internal/handlers/api/v1/disciplines"
	"academichub/internal/handlers/api/v1/favorites"
	"academichub/internal/handlers/api/v1/files"
	"academichub/internal/handlers/api/v1/institutions"
	"academichub/internal/handlers/api/v1/users"
	"academichub/internal/middleware"
	"academichub/internal/models"
	"academichub/internal/services"
	"academichub/internal/storage"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// SetupRouter configures all HTTP routes and returns the main handler.
// The store may be nil; the upload endpoint then rejects requests.
func SetupRouter(sc *services.ServiceCollection, store storage.Store, logger *zap.Logger) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.RequestID(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		status := "ok"
		code := http.StatusOK
		if err := sc.Repositories.Ping(req.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		middleware.WriteJSON(w, code, map[string]string{"status": status})
	}).Methods(http.MethodGet)

	authController := auth.NewAuthController(sc, logger)
	institutionController := institutions.NewInstitutionController(sc, logger)
	userController := users.NewUserController(sc, logger)
	disciplineController := disciplines.NewDisciplineController(sc, logger)
	fileController := files.NewFileController(sc, store, logger)
	favoriteController := favorites.NewFavoriteController(sc, logger)
	commentController := comments.NewCommentController(sc, logger)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public endpoints
	api.HandleFunc("/auth/login", authController.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/forgot-password", authController.ForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password", authController.ResetPassword).Methods(http.MethodPost)

	// Everything below requires a valid token
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(&sc.Config.Auth))

	// Management endpoints, admins only
	admin := protected.NewRoute().Subrouter()
	admin.Use(middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))

	admin.HandleFunc("/institutions", institutionController.CreateInstitution).Methods(http.MethodPost)
	admin.HandleFunc("/institutions/{id:[0-9]+}", institutionController.UpdateInstitution).Methods(http.MethodPut)
	admin.HandleFunc("/users", userController.CreateUser).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id:[0-9]+}", userController.UpdateUser).Methods(http.MethodPut)
	admin.HandleFunc("/files/{id:[0-9]+}/approve", fileController.ApproveFile).Methods(http.MethodPost)
	admin.HandleFunc("/files/{id:[0-9]+}/reject", fileController.RejectFile).Methods(http.MethodPost)
	admin.HandleFunc("/institutions/{institutionID:[0-9]+}/files/pending", fileController.ListPending).Methods(http.MethodGet)

	// Institutions
	protected.HandleFunc("/institutions", institutionController.ListInstitutions).Methods(http.MethodGet)
	protected.HandleFunc("/institutions/{id:[0-9]+}", institutionController.GetInstitution).Methods(http.MethodGet)
	protected.HandleFunc("/institutions/code/{code}", institutionController.GetInstitutionByCode).Methods(http.MethodGet)

	// Users
	protected.HandleFunc("/users/{id:[0-9]+}", userController.GetUser).Methods(http.MethodGet)
	protected.HandleFunc("/institutions/{institutionID:[0-9]+}/users", userController.ListUsers).Methods(http.MethodGet)

	// Disciplines
	protected.HandleFunc("/disciplines", disciplineController.CreateDiscipline).Methods(http.MethodPost)
	protected.HandleFunc("/disciplines/{id:[0-9]+}", disciplineController.UpdateDiscipline).Methods(http.MethodPut)
	protected.HandleFunc("/disciplines/{id:[0-9]+}", disciplineController.GetDiscipline).Methods(http.MethodGet)
	protected.HandleFunc("/institutions/{institutionID:[0-9]+}/disciplines", disciplineController.ListDisciplines).Methods(http.MethodGet)

	// Files
	protected.HandleFunc("/files", fileController.CreateFile).Methods(http.MethodPost)
	protected.HandleFunc("/files/upload", fileController.UploadFile).Methods(http.MethodPost)
	protected.HandleFunc("/files/{id:[0-9]+}", fileController.UpdateFile).Methods(http.MethodPut)
	protected.HandleFunc("/files/{id:[0-9]+}", fileController.GetFile).Methods(http.MethodGet)
	protected.HandleFunc("/files/{id:[0-9]+}/download", fileController.RegisterDownload).Methods(http.MethodPost)
	protected.HandleFunc("/disciplines/{disciplineID:[0-9]+}/files", fileController.ListByDiscipline).Methods(http.MethodGet)
	protected.HandleFunc("/institutions/{institutionID:[0-9]+}/files/top", fileController.ListMostDownloaded).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userID:[0-9]+}/files", fileController.ListByUploader).Methods(http.MethodGet)

	// Favorites
	protected.HandleFunc("/favorites", favoriteController.ListFavorites).Methods(http.MethodGet)
	protected.HandleFunc("/files/{fileID:[0-9]+}/favorite", favoriteController.AddFavorite).Methods(http.MethodPost)
	protected.HandleFunc("/files/{fileID:[0-9]+}/favorite", favoriteController.RemoveFavorite).Methods(http.MethodDelete)
	protected.HandleFunc("/files/{fileID:[0-9]+}/favorite", favoriteController.CheckFavorite).Methods(http.MethodGet)

	// Comments
	protected.HandleFunc("/comments", commentController.AddComment).Methods(http.MethodPost)
	protected.HandleFunc("/comments/{id:[0-9]+}", commentController.UpdateComment).Methods(http.MethodPut)
	protected.HandleFunc("/comments/{id:[0-9]+}", commentController.GetComment).Methods(http.MethodGet)
	protected.HandleFunc("/comments/{id:[0-9]+}", commentController.DeleteComment).Methods(http.MethodDelete)
	protected.HandleFunc("/files/{fileID:[0-9]+}/comments", commentController.ListByFile).Methods(http.MethodGet)

	return r
}
