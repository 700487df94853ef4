// file: internal/services/comment_service.go
package services

import (
	"academichub/internal/models"
	"academichub/internal/repositories"
	"context"

	"go.uber.org/zap"
)

// commentService implements CommentService
type commentService struct {
	commentRepo repositories.CommentRepository
	fileRepo    repositories.FileRepository
	userRepo    repositories.UserRepository
	logger      *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo repositories.CommentRepository,
	fileRepo repositories.FileRepository,
	userRepo repositories.UserRepository,
	logger *zap.Logger,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		fileRepo:    fileRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// AddComment posts a remark on a file. New comments are always visible.
func (s *commentService) AddComment(ctx context.Context, req *CreateCommentRequest) (*models.Comment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid create comment request", err)
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, NewInternalError("failed to load user")
	}
	if user == nil {
		return nil, EntityNotFoundError("user", req.UserID)
	}

	file, err := s.fileRepo.GetByID(ctx, req.FileID)
	if err != nil {
		return nil, NewInternalError("failed to load file")
	}
	if file == nil {
		return nil, EntityNotFoundError("file", req.FileID)
	}

	comment := &models.Comment{
		Content: req.Content,
		UserID:  user.ID,
		FileID:  file.ID,
		Active:  true,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.logger.Error("Failed to create comment", zap.Error(err),
			zap.Int64("user_id", req.UserID), zap.Int64("file_id", req.FileID))
		return nil, NewInternalError("failed to add comment")
	}

	comment.UserName = user.Name
	comment.FileTitle = file.Title

	s.logger.Info("Comment added",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("file_id", comment.FileID),
	)

	return comment, nil
}

// UpdateComment edits the content of an existing comment. The visibility
// flag is not touched here.
func (s *commentService) UpdateComment(ctx context.Context, req *UpdateCommentRequest) (*models.Comment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid update comment request", err)
	}

	comment, err := s.commentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, NewInternalError("failed to load comment")
	}
	if comment == nil {
		return nil, EntityNotFoundError("comment", req.ID)
	}

	comment.Content = req.Content

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		s.logger.Error("Failed to update comment", zap.Error(err), zap.Int64("comment_id", req.ID))
		return nil, NewInternalError("failed to update comment")
	}

	s.logger.Info("Comment updated", zap.Int64("comment_id", comment.ID))
	return comment, nil
}

// GetCommentByID retrieves a comment by ID
func (s *commentService) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	if id <= 0 {
		return nil, NewValidationError("invalid comment ID", nil)
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load comment")
	}
	if comment == nil {
		return nil, EntityNotFoundError("comment", id)
	}
	return comment, nil
}

// DeleteComment hides a comment. The row and its content stay in place so
// moderation can audit what was said.
func (s *commentService) DeleteComment(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewValidationError("invalid comment ID", nil)
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return NewInternalError("failed to load comment")
	}
	if comment == nil {
		return EntityNotFoundError("comment", id)
	}

	comment.Deactivate()

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		s.logger.Error("Failed to delete comment", zap.Error(err), zap.Int64("comment_id", id))
		return NewInternalError("failed to delete comment")
	}

	s.logger.Info("Comment deleted", zap.Int64("comment_id", id))
	return nil
}

// ListByFile returns a file's visible comments in conversation order
func (s *commentService) ListByFile(ctx context.Context, fileID int64) ([]*models.Comment, error) {
	if fileID <= 0 {
		return nil, NewValidationError("invalid file ID", nil)
	}

	comments, err := s.commentRepo.ListActiveByFile(ctx, fileID)
	if err != nil {
		return nil, NewInternalError("failed to list comments")
	}
	return comments, nil
}
