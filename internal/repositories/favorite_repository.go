// file: internal/repositories/favorite_repository.go
package repositories

import (
	"academichub/internal/database"
	"academichub/internal/models"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// favoriteRepository implements FavoriteRepository
type favoriteRepository struct {
	*BaseRepository
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *database.Manager, logger *zap.Logger) FavoriteRepository {
	return &favoriteRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create inserts a new favorite. The (user_id, file_id) unique constraint
// rejects duplicates; callers check existence first for the idempotent path.
func (r *favoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	query := `
		INSERT INTO favorites (user_id, file_id)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(ctx, query, favorite.UserID, favorite.FileID).
		Scan(&favorite.ID, &favorite.CreatedAt, &favorite.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

// GetByUserAndFile retrieves the favorite for a (user, file) pair, nil when absent
func (r *favoriteRepository) GetByUserAndFile(ctx context.Context, userID, fileID int64) (*models.Favorite, error) {
	query := `
		SELECT id, user_id, file_id, created_at, updated_at
		FROM favorites
		WHERE user_id = $1 AND file_id = $2`

	var fav models.Favorite
	err := r.QueryRowContext(ctx, query, userID, fileID).Scan(
		&fav.ID, &fav.UserID, &fav.FileID, &fav.CreatedAt, &fav.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}
	return &fav, nil
}

// DeleteByUserAndFile removes the favorite for a (user, file) pair. The
// returned bool reports whether a row was actually deleted.
func (r *favoriteRepository) DeleteByUserAndFile(ctx context.Context, userID, fileID int64) (bool, error) {
	result, err := r.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND file_id = $2`,
		userID, fileID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete favorite: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// ListByUser returns a user's favorites, newest first
func (r *favoriteRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Favorite, error) {
	query := `
		SELECT id, user_id, file_id, created_at, updated_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []*models.Favorite
	for rows.Next() {
		var fav models.Favorite
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.FileID, &fav.CreatedAt, &fav.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, &fav)
	}

	return favorites, rows.Err()
}

// ExistsByUserAndFile reports whether a user already favorited a file
func (r *favoriteRepository) ExistsByUserAndFile(ctx context.Context, userID, fileID int64) (bool, error) {
	count, err := r.CountRow(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = $1 AND file_id = $2`,
		userID, fileID,
	)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByFile counts how many users favorited a file
func (r *favoriteRepository) CountByFile(ctx context.Context, fileID int64) (int64, error) {
	return r.CountRow(ctx, `SELECT COUNT(*) FROM favorites WHERE file_id = $1`, fileID)
}

// CountByUser counts a user's favorites
func (r *favoriteRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return r.CountRow(ctx, `SELECT COUNT(*) FROM favorites WHERE user_id = $1`, userID)
}
