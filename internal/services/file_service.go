// file: internal/services/file_service.go
package services

import (
	"academichub/internal/models"
	"academichub/internal/repositories"
	"context"
	"errors"

	"database/sql"

	"go.uber.org/zap"
)

// fileService implements FileService
type fileService struct {
	fileRepo       repositories.FileRepository
	disciplineRepo repositories.DisciplineRepository
	userRepo       repositories.UserRepository
	favoriteRepo   repositories.FavoriteRepository
	commentRepo    repositories.CommentRepository
	logger         *zap.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo repositories.FileRepository,
	disciplineRepo repositories.DisciplineRepository,
	userRepo repositories.UserRepository,
	favoriteRepo repositories.FavoriteRepository,
	commentRepo repositories.CommentRepository,
	logger *zap.Logger,
) FileService {
	return &fileService{
		fileRepo:       fileRepo,
		disciplineRepo: disciplineRepo,
		userRepo:       userRepo,
		favoriteRepo:   favoriteRepo,
		commentRepo:    commentRepo,
		logger:         logger,
	}
}

// CreateFile registers file metadata. Every new file enters the moderation
// queue as PENDING regardless of what the caller sends, and its institution
// is derived from the discipline, never taken from input.
func (s *fileService) CreateFile(ctx context.Context, req *CreateFileRequest) (*models.File, error) {
	if err := validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid create file request", err)
	}
	if !req.FileType.Valid() {
		return nil, NewValidationError("invalid file type", nil)
	}

	discipline, err := s.disciplineRepo.GetByID(ctx, req.DisciplineID)
	if err != nil {
		return nil, NewInternalError("failed to load discipline")
	}
	if discipline == nil {
		return nil, EntityNotFoundError("discipline", req.DisciplineID)
	}

	uploader, err := s.userRepo.GetByID(ctx, req.UploadedByID)
	if err != nil {
		return nil, NewInternalError("failed to load uploader")
	}
	if uploader == nil {
		return nil, EntityNotFoundError("user", req.UploadedByID)
	}

	file := &models.File{
		Title:         req.Title,
		FileName:      req.FileName,
		FileType:      req.FileType,
		FileSize:      req.FileSize,
		FilePath:      req.FilePath,
		Description:   req.Description,
		Version:       req.Version,
		DisciplineID:  discipline.ID,
		InstitutionID: discipline.InstitutionID,
		UploadedByID:  uploader.ID,
		Status:        models.StatusPending,
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		s.logger.Error("Failed to create file", zap.Error(err), zap.String("title", req.Title))
		return nil, NewInternalError("failed to create file")
	}

	file.DisciplineName = discipline.Name
	file.InstitutionName = discipline.InstitutionName
	file.UploadedByName = uploader.Name

	s.logger.Info("File created",
		zap.Int64("file_id", file.ID),
		zap.Int64("discipline_id", file.DisciplineID),
		zap.Int64("uploaded_by", file.UploadedByID),
	)

	return s.decorate(ctx, file)
}

// UpdateFile overwrites file metadata. Moving the file to another discipline
// re-derives the denormalized institution; the moderation status and
// approval timestamp are left exactly as they were.
func (s *fileService) UpdateFile(ctx context.Context, req *UpdateFileRequest) (*models.File, error) {
	if err := validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid update file request", err)
	}
	if !req.FileType.Valid() {
		return nil, NewValidationError("invalid file type", nil)
	}

	file, err := s.fileRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, NewInternalError("failed to load file")
	}
	if file == nil {
		return nil, EntityNotFoundError("file", req.ID)
	}

	discipline, err := s.disciplineRepo.GetByID(ctx, req.DisciplineID)
	if err != nil {
		return nil, NewInternalError("failed to load discipline")
	}
	if discipline == nil {
		return nil, EntityNotFoundError("discipline", req.DisciplineID)
	}

	file.Title = req.Title
	file.FileName = req.FileName
	file.FileType = req.FileType
	file.FileSize = req.FileSize
	file.FilePath = req.FilePath
	file.Description = req.Description
	file.Version = req.Version
	file.DisciplineID = discipline.ID
	file.InstitutionID = discipline.InstitutionID

	if err := s.fileRepo.Update(ctx, file); err != nil {
		s.logger.Error("Failed to update file", zap.Error(err), zap.Int64("file_id", req.ID))
		return nil, NewInternalError("failed to update file")
	}

	file.DisciplineName = discipline.Name
	file.InstitutionName = discipline.InstitutionName

	s.logger.Info("File updated", zap.Int64("file_id", file.ID))

	return s.decorate(ctx, file)
}

// GetFileByID retrieves a file with live engagement counts
func (s *fileService) GetFileByID(ctx context.Context, id int64) (*models.File, error) {
	if id <= 0 {
		return nil, NewValidationError("invalid file ID", nil)
	}

	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load file")
	}
	if file == nil {
		return nil, EntityNotFoundError("file", id)
	}

	return s.decorate(ctx, file)
}

// ApproveFile moves a file to APPROVED and stamps the approval time.
// Re-approving an already approved file re-stamps the timestamp.
func (s *fileService) ApproveFile(ctx context.Context, id int64) (*models.File, error) {
	file, err := s.loadFile(ctx, id)
	if err != nil {
		return nil, err
	}

	file.Approve()

	if err := s.fileRepo.Update(ctx, file); err != nil {
		s.logger.Error("Failed to approve file", zap.Error(err), zap.Int64("file_id", id))
		return nil, NewInternalError("failed to approve file")
	}

	s.logger.Info("File approved", zap.Int64("file_id", file.ID))
	return s.decorate(ctx, file)
}

// RejectFile moves a file to REJECTED. A previously stamped approval time is
// kept as an audit trace.
func (s *fileService) RejectFile(ctx context.Context, id int64) (*models.File, error) {
	file, err := s.loadFile(ctx, id)
	if err != nil {
		return nil, err
	}

	file.Reject()

	if err := s.fileRepo.Update(ctx, file); err != nil {
		s.logger.Error("Failed to reject file", zap.Error(err), zap.Int64("file_id", id))
		return nil, NewInternalError("failed to reject file")
	}

	s.logger.Info("File rejected", zap.Int64("file_id", file.ID))
	return s.decorate(ctx, file)
}

// IncrementDownloadCount bumps the download counter. The count grows on
// every call, whatever the file's moderation status.
func (s *fileService) IncrementDownloadCount(ctx context.Context, id int64) (int, error) {
	if id <= 0 {
		return 0, NewValidationError("invalid file ID", nil)
	}

	count, err := s.fileRepo.IncrementDownloadCount(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, EntityNotFoundError("file", id)
		}
		s.logger.Error("Failed to increment download count", zap.Error(err), zap.Int64("file_id", id))
		return 0, NewInternalError("failed to increment download count")
	}
	return count, nil
}

// ListApprovedByDiscipline returns a discipline's approved files, newest first
func (s *fileService) ListApprovedByDiscipline(ctx context.Context, disciplineID int64) ([]*models.File, error) {
	if disciplineID <= 0 {
		return nil, NewValidationError("invalid discipline ID", nil)
	}

	files, err := s.fileRepo.ListApprovedByDiscipline(ctx, disciplineID)
	if err != nil {
		return nil, NewInternalError("failed to list files")
	}
	return s.decorateAll(ctx, files)
}

// ListPendingByInstitution returns an institution's moderation queue, newest first
func (s *fileService) ListPendingByInstitution(ctx context.Context, institutionID int64) ([]*models.File, error) {
	if institutionID <= 0 {
		return nil, NewValidationError("invalid institution ID", nil)
	}

	files, err := s.fileRepo.ListPendingByInstitution(ctx, institutionID)
	if err != nil {
		return nil, NewInternalError("failed to list files")
	}
	return s.decorateAll(ctx, files)
}

// ListByUploader returns the files one user uploaded
func (s *fileService) ListByUploader(ctx context.Context, userID int64) ([]*models.File, error) {
	if userID <= 0 {
		return nil, NewValidationError("invalid user ID", nil)
	}

	files, err := s.fileRepo.ListByUploader(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to list files")
	}
	return s.decorateAll(ctx, files)
}

// ListMostDownloaded returns an institution's most downloaded approved files
func (s *fileService) ListMostDownloaded(ctx context.Context, institutionID int64, limit int) ([]*models.File, error) {
	if institutionID <= 0 {
		return nil, NewValidationError("invalid institution ID", nil)
	}
	if limit <= 0 {
		limit = 10
	}

	files, err := s.fileRepo.ListMostDownloaded(ctx, institutionID, limit)
	if err != nil {
		return nil, NewInternalError("failed to list files")
	}
	return s.decorateAll(ctx, files)
}

func (s *fileService) loadFile(ctx context.Context, id int64) (*models.File, error) {
	if id <= 0 {
		return nil, NewValidationError("invalid file ID", nil)
	}

	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load file")
	}
	if file == nil {
		return nil, EntityNotFoundError("file", id)
	}
	return file, nil
}

// decorate attaches live favorite and active-comment counts
func (s *fileService) decorate(ctx context.Context, file *models.File) (*models.File, error) {
	favorites, err := s.favoriteRepo.CountByFile(ctx, file.ID)
	if err != nil {
		s.logger.Error("Failed to count favorites", zap.Error(err), zap.Int64("file_id", file.ID))
		return nil, NewInternalError("failed to compute file engagement")
	}

	comments, err := s.commentRepo.CountActiveByFile(ctx, file.ID)
	if err != nil {
		s.logger.Error("Failed to count comments", zap.Error(err), zap.Int64("file_id", file.ID))
		return nil, NewInternalError("failed to compute file engagement")
	}

	file.FavoritesCount = favorites
	file.CommentsCount = comments
	return file, nil
}

func (s *fileService) decorateAll(ctx context.Context, files []*models.File) ([]*models.File, error) {
	for _, file := range files {
		if _, err := s.decorate(ctx, file); err != nil {
			return nil, err
		}
	}
	return files, nil
}
