// file: internal/repositories/file_repository.go
package repositories

import (
	"academichub/internal/database"
	"academichub/internal/models"
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// fileRepository implements FileRepository
type fileRepository struct {
	*BaseRepository
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *database.Manager, logger *zap.Logger) FileRepository {
	return &fileRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const fileSelect = `
	SELECT
		f.id, f.title, f.file_name, f.file_type, f.file_size, f.file_path,
		f.description, f.discipline_id, f.institution_id, f.uploaded_by,
		f.status, f.download_count, f.approved_at, f.version,
		f.created_at, f.updated_at,
		d.name, i.name, u.name
	FROM files f
	JOIN disciplines d ON f.discipline_id = d.id
	JOIN institutions i ON f.institution_id = i.id
	JOIN users u ON f.uploaded_by = u.id`

// Create inserts a new file record
func (r *fileRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (
			title, file_name, file_type, file_size, file_path, description,
			discipline_id, institution_id, uploaded_by, status,
			download_count, approved_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(
		ctx, query,
		file.Title, file.FileName, file.FileType, file.FileSize,
		file.FilePath, file.Description, file.DisciplineID,
		file.InstitutionID, file.UploadedByID, file.Status,
		file.DownloadCount, file.ApprovedAt, file.Version,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	r.GetLogger().Info("File record created",
		zap.Int64("file_id", file.ID),
		zap.Int64("discipline_id", file.DisciplineID),
		zap.String("status", string(file.Status)),
	)

	return nil
}

// GetByID retrieves a file by ID
func (r *fileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	return r.scanOne(r.QueryRowContext(ctx, fileSelect+` WHERE f.id = $1`, id))
}

// Update persists changes to an existing file
func (r *fileRepository) Update(ctx context.Context, file *models.File) error {
	query := `
		UPDATE files SET
			title = $2, file_name = $3, file_type = $4, file_size = $5,
			file_path = $6, description = $7, discipline_id = $8,
			institution_id = $9, status = $10, download_count = $11,
			approved_at = $12, version = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.QueryRowContext(
		ctx, query,
		file.ID, file.Title, file.FileName, file.FileType, file.FileSize,
		file.FilePath, file.Description, file.DisciplineID,
		file.InstitutionID, file.Status, file.DownloadCount,
		file.ApprovedAt, file.Version,
	).Scan(&file.UpdatedAt)

	if err != nil {
		if r.IsNotFound(err) {
			return fmt.Errorf("file %d not found", file.ID)
		}
		return fmt.Errorf("failed to update file: %w", err)
	}

	return nil
}

// Delete removes a file record. Favorites and comments cascade at the
// schema level.
func (r *fileRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// ListApprovedByDiscipline returns approved files of one discipline,
// newest first.
func (r *fileRepository) ListApprovedByDiscipline(ctx context.Context, disciplineID int64) ([]*models.File, error) {
	query := fileSelect + `
		WHERE f.discipline_id = $1 AND f.status = $2
		ORDER BY f.created_at DESC`
	return r.list(ctx, query, disciplineID, models.StatusApproved)
}

// ListPendingByInstitution returns files awaiting review across one
// institution, newest first.
func (r *fileRepository) ListPendingByInstitution(ctx context.Context, institutionID int64) ([]*models.File, error) {
	query := fileSelect + `
		WHERE f.institution_id = $1 AND f.status = $2
		ORDER BY f.created_at DESC`
	return r.list(ctx, query, institutionID, models.StatusPending)
}

// ListByUploader returns the files one user uploaded, newest first
func (r *fileRepository) ListByUploader(ctx context.Context, userID int64) ([]*models.File, error) {
	query := fileSelect + ` WHERE f.uploaded_by = $1 ORDER BY f.created_at DESC`
	return r.list(ctx, query, userID)
}

// ListMostDownloaded returns the institution's most downloaded approved files
func (r *fileRepository) ListMostDownloaded(ctx context.Context, institutionID int64, limit int) ([]*models.File, error) {
	query := fileSelect + `
		WHERE f.institution_id = $1 AND f.status = $2
		ORDER BY f.download_count DESC
		LIMIT $3`
	return r.list(ctx, query, institutionID, models.StatusApproved, limit)
}

// IncrementDownloadCount bumps the counter atomically and returns the new value
func (r *fileRepository) IncrementDownloadCount(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.QueryRowContext(ctx,
		`UPDATE files SET download_count = download_count + 1, updated_at = NOW()
		 WHERE id = $1
		 RETURNING download_count`, id,
	).Scan(&count)
	if err != nil {
		if r.IsNotFound(err) {
			return 0, sql.ErrNoRows
		}
		return 0, fmt.Errorf("failed to increment download count: %w", err)
	}
	return count, nil
}

// CountByStatusAndInstitution counts files of one status within an institution
func (r *fileRepository) CountByStatusAndInstitution(ctx context.Context, status models.FileStatus, institutionID int64) (int64, error) {
	return r.CountRow(ctx,
		`SELECT COUNT(*) FROM files WHERE institution_id = $1 AND status = $2`,
		institutionID, status,
	)
}

func (r *fileRepository) scanOne(row *sql.Row) (*models.File, error) {
	var file models.File
	err := row.Scan(
		&file.ID, &file.Title, &file.FileName, &file.FileType, &file.FileSize,
		&file.FilePath, &file.Description, &file.DisciplineID,
		&file.InstitutionID, &file.UploadedByID, &file.Status,
		&file.DownloadCount, &file.ApprovedAt, &file.Version,
		&file.CreatedAt, &file.UpdatedAt,
		&file.DisciplineName, &file.InstitutionName, &file.UploadedByName,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return &file, nil
}

func (r *fileRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.File, error) {
	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	var files []*models.File
	for rows.Next() {
		var file models.File
		if err := rows.Scan(
			&file.ID, &file.Title, &file.FileName, &file.FileType, &file.FileSize,
			&file.FilePath, &file.Description, &file.DisciplineID,
			&file.InstitutionID, &file.UploadedByID, &file.Status,
			&file.DownloadCount, &file.ApprovedAt, &file.Version,
			&file.CreatedAt, &file.UpdatedAt,
			&file.DisciplineName, &file.InstitutionName, &file.UploadedByName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, &file)
	}

	return files, rows.Err()
}
