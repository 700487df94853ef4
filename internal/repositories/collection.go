// file: internal/repositories/collection.go
package repositories

import (
	"academichub/internal/database"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Collection holds all repository instances for dependency injection
type Collection struct {
	Institution InstitutionRepository
	User        UserRepository
	Discipline  DisciplineRepository
	File        FileRepository
	Favorite    FavoriteRepository
	Comment     CommentRepository

	// Database and logger for custom operations
	db     *database.Manager
	logger *zap.Logger
}

// NewCollection creates a new repository collection with all dependencies
func NewCollection(db *database.Manager, logger *zap.Logger) (*Collection, error) {
	if db == nil {
		return nil, fmt.Errorf("database manager is required")
	}
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	collection := &Collection{
		db:     db,
		logger: logger,
	}

	collection.Institution = NewInstitutionRepository(db, logger)
	collection.User = NewUserRepository(db, logger)
	collection.Discipline = NewDisciplineRepository(db, logger)
	collection.File = NewFileRepository(db, logger)
	collection.Favorite = NewFavoriteRepository(db, logger)
	collection.Comment = NewCommentRepository(db, logger)

	logger.Info("Repository collection initialized successfully")

	return collection, nil
}

// Ping verifies database connectivity on behalf of the collection
func (c *Collection) Ping(ctx context.Context) error {
	return c.db.DB().PingContext(ctx)
}
