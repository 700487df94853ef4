// file: internal/services/favorite_service.go
package services

import (
	"academichub/internal/models"
	"academichub/internal/repositories"
	"context"

	"go.uber.org/zap"
)

// favoriteService implements FavoriteService
type favoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	fileRepo     repositories.FileRepository
	userRepo     repositories.UserRepository
	commentRepo  repositories.CommentRepository
	logger       *zap.Logger
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(
	favoriteRepo repositories.FavoriteRepository,
	fileRepo repositories.FileRepository,
	userRepo repositories.UserRepository,
	commentRepo repositories.CommentRepository,
	logger *zap.Logger,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		fileRepo:     fileRepo,
		userRepo:     userRepo,
		commentRepo:  commentRepo,
		logger:       logger,
	}
}

// AddFavorite bookmarks a file for a user. Favoriting a file that is
// already favorited is a silent no-op, the operation is idempotent.
func (s *favoriteService) AddFavorite(ctx context.Context, userID, fileID int64) error {
	if userID <= 0 || fileID <= 0 {
		return NewValidationError("invalid user or file ID", nil)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return NewInternalError("failed to load user")
	}
	if user == nil {
		return EntityNotFoundError("user", userID)
	}

	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return NewInternalError("failed to load file")
	}
	if file == nil {
		return EntityNotFoundError("file", fileID)
	}

	exists, err := s.favoriteRepo.ExistsByUserAndFile(ctx, userID, fileID)
	if err != nil {
		return NewInternalError("failed to check favorite")
	}
	if exists {
		return nil
	}

	favorite := &models.Favorite{UserID: userID, FileID: fileID}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		s.logger.Error("Failed to create favorite", zap.Error(err),
			zap.Int64("user_id", userID), zap.Int64("file_id", fileID))
		return NewInternalError("failed to add favorite")
	}

	s.logger.Info("Favorite added",
		zap.Int64("user_id", userID),
		zap.Int64("file_id", fileID),
	)
	return nil
}

// RemoveFavorite deletes a bookmark. Removing a favorite that does not
// exist is an error, unlike the idempotent add.
func (s *favoriteService) RemoveFavorite(ctx context.Context, userID, fileID int64) error {
	if userID <= 0 || fileID <= 0 {
		return NewValidationError("invalid user or file ID", nil)
	}

	deleted, err := s.favoriteRepo.DeleteByUserAndFile(ctx, userID, fileID)
	if err != nil {
		s.logger.Error("Failed to delete favorite", zap.Error(err),
			zap.Int64("user_id", userID), zap.Int64("file_id", fileID))
		return NewInternalError("failed to remove favorite")
	}
	if !deleted {
		return EntityNotFoundError("favorite", fileID)
	}

	s.logger.Info("Favorite removed",
		zap.Int64("user_id", userID),
		zap.Int64("file_id", fileID),
	)
	return nil
}

// ListFavorites returns the current projection of a user's favorited files,
// most recently favorited first. Files reflect their live state, including
// any moderation changes since the bookmark was made.
func (s *favoriteService) ListFavorites(ctx context.Context, userID int64) ([]*models.File, error) {
	if userID <= 0 {
		return nil, NewValidationError("invalid user ID", nil)
	}

	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to list favorites")
	}

	files := make([]*models.File, 0, len(favorites))
	for _, favorite := range favorites {
		file, err := s.fileRepo.GetByID(ctx, favorite.FileID)
		if err != nil {
			return nil, NewInternalError("failed to load favorite file")
		}
		if file == nil {
			// The file was deleted after being favorited; skip it.
			continue
		}

		favCount, err := s.favoriteRepo.CountByFile(ctx, file.ID)
		if err != nil {
			return nil, NewInternalError("failed to compute file engagement")
		}
		commentCount, err := s.commentRepo.CountActiveByFile(ctx, file.ID)
		if err != nil {
			return nil, NewInternalError("failed to compute file engagement")
		}
		file.FavoritesCount = favCount
		file.CommentsCount = commentCount

		files = append(files, file)
	}

	return files, nil
}

// IsFavorite reports whether a user has bookmarked a file
func (s *favoriteService) IsFavorite(ctx context.Context, userID, fileID int64) (bool, error) {
	if userID <= 0 || fileID <= 0 {
		return false, NewValidationError("invalid user or file ID", nil)
	}

	exists, err := s.favoriteRepo.ExistsByUserAndFile(ctx, userID, fileID)
	if err != nil {
		return false, NewInternalError("failed to check favorite")
	}
	return exists, nil
}
