// file: internal/repositories/comment_repository.go
package repositories

import (
	"academichub/internal/database"
	"academichub/internal/models"
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// commentRepository implements CommentRepository
type commentRepository struct {
	*BaseRepository
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *database.Manager, logger *zap.Logger) CommentRepository {
	return &commentRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const commentSelect = `
	SELECT
		c.id, c.content, c.user_id, c.file_id, c.active,
		c.created_at, c.updated_at,
		u.name, f.title
	FROM comments c
	JOIN users u ON c.user_id = u.id
	JOIN files f ON c.file_id = f.id`

// Create inserts a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (content, user_id, file_id, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(ctx, query,
		comment.Content, comment.UserID, comment.FileID, comment.Active,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment by ID
func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	return r.scanOne(r.QueryRowContext(ctx, commentSelect+` WHERE c.id = $1`, id))
}

// Update persists content and active-flag changes
func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	query := `
		UPDATE comments SET
			content = $2, active = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.QueryRowContext(ctx, query,
		comment.ID, comment.Content, comment.Active,
	).Scan(&comment.UpdatedAt)
	if err != nil {
		if r.IsNotFound(err) {
			return fmt.Errorf("comment %d not found", comment.ID)
		}
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

// ListActiveByFile returns the visible comments of a file in conversation
// order (oldest first).
func (r *commentRepository) ListActiveByFile(ctx context.Context, fileID int64) ([]*models.Comment, error) {
	query := commentSelect + `
		WHERE c.file_id = $1 AND c.active = TRUE
		ORDER BY c.created_at ASC`
	return r.list(ctx, query, fileID)
}

// ListByUser returns every comment authored by a user, hidden ones included,
// newest first.
func (r *commentRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Comment, error) {
	query := commentSelect + ` WHERE c.user_id = $1 ORDER BY c.created_at DESC`
	return r.list(ctx, query, userID)
}

// CountActiveByFile counts the visible comments of a file
func (r *commentRepository) CountActiveByFile(ctx context.Context, fileID int64) (int64, error) {
	return r.CountRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE file_id = $1 AND active = TRUE`,
		fileID,
	)
}

func (r *commentRepository) scanOne(row *sql.Row) (*models.Comment, error) {
	var comment models.Comment
	err := row.Scan(
		&comment.ID, &comment.Content, &comment.UserID, &comment.FileID,
		&comment.Active, &comment.CreatedAt, &comment.UpdatedAt,
		&comment.UserName, &comment.FileTitle,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Comment, error) {
	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(
			&comment.ID, &comment.Content, &comment.UserID, &comment.FileID,
			&comment.Active, &comment.CreatedAt, &comment.UpdatedAt,
			&comment.UserName, &comment.FileTitle,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}

	return comments, rows.Err()
}
