// file: internal/services/service_collection.go
package services

import (
	"academichub/internal/cache"
	"academichub/internal/config"
	"academichub/internal/repositories"
	"fmt"

	"go.uber.org/zap"
)

// ServiceCollection holds all services with dependency injection
type ServiceCollection struct {
	InstitutionService InstitutionService
	UserService        UserService
	AuthService        AuthService
	DisciplineService  DisciplineService
	FileService        FileService
	FavoriteService    FavoriteService
	CommentService     CommentService

	Repositories *repositories.Collection
	Cache        cache.Cache
	Logger       *zap.Logger
	Config       *config.Config
}

// NewServiceCollection wires every service with its collaborators
func NewServiceCollection(
	repos *repositories.Collection,
	cacheProvider cache.Cache,
	cfg *config.Config,
	logger *zap.Logger,
) (*ServiceCollection, error) {
	if repos == nil {
		return nil, fmt.Errorf("repository collection is required")
	}
	if cacheProvider == nil {
		return nil, fmt.Errorf("cache is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	sc := &ServiceCollection{
		Repositories: repos,
		Cache:        cacheProvider,
		Logger:       logger,
		Config:       cfg,
	}

	sc.InstitutionService = NewInstitutionService(repos.Institution, repos.User, logger)
	sc.UserService = NewUserService(repos.User, repos.Institution, cfg.Auth.BCryptCost, logger)
	sc.AuthService = NewAuthService(repos.User, cacheProvider, &cfg.Auth, logger)
	sc.DisciplineService = NewDisciplineService(repos.Discipline, repos.Institution, logger)
	sc.FileService = NewFileService(repos.File, repos.Discipline, repos.User, repos.Favorite, repos.Comment, logger)
	sc.FavoriteService = NewFavoriteService(repos.Favorite, repos.File, repos.User, repos.Comment, logger)
	sc.CommentService = NewCommentService(repos.Comment, repos.File, repos.User, logger)

	logger.Info("Service collection initialized successfully")
	return sc, nil
}
