// file: internal/repositories/interfaces.go
package repositories

import (
	"academichub/internal/models"
	"context"
)

// ===============================
// REPOSITORY INTERFACES
// ===============================

// All GetByX finders return (nil, nil) when no row matches; callers translate
// that into their own not-found error. Count queries use the same predicates
// as their list counterparts.

// InstitutionRepository defines storage operations for institutions
type InstitutionRepository interface {
	Create(ctx context.Context, institution *models.Institution) error
	GetByID(ctx context.Context, id int64) (*models.Institution, error)
	GetByName(ctx context.Context, name string) (*models.Institution, error)
	GetByCode(ctx context.Context, code string) (*models.Institution, error)
	Update(ctx context.Context, institution *models.Institution) error
	Delete(ctx context.Context, id int64) error

	ListActive(ctx context.Context) ([]*models.Institution, error)
	ListExpired(ctx context.Context) ([]*models.Institution, error)

	ExistsByName(ctx context.Context, name string) (bool, error)
	CountActive(ctx context.Context) (int64, error)

	// TotalStorageUsedBytes sums file sizes across every discipline of the
	// institution. Always computed live, never cached.
	TotalStorageUsedBytes(ctx context.Context, institutionID int64) (int64, error)
}

// UserRepository defines storage operations for users
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetToken(ctx context.Context, token string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error

	ListByInstitution(ctx context.Context, institutionID int64) ([]*models.User, error)
	ListActiveByInstitution(ctx context.Context, institutionID int64) ([]*models.User, error)
	ListByRoleAndInstitution(ctx context.Context, role models.UserRole, institutionID int64) ([]*models.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountActiveByInstitution(ctx context.Context, institutionID int64) (int64, error)
}

// DisciplineRepository defines storage operations for disciplines
type DisciplineRepository interface {
	Create(ctx context.Context, discipline *models.Discipline) error
	GetByID(ctx context.Context, id int64) (*models.Discipline, error)
	Update(ctx context.Context, discipline *models.Discipline) error
	Delete(ctx context.Context, id int64) error

	ListByInstitution(ctx context.Context, institutionID int64) ([]*models.Discipline, error)
	ListActiveByInstitution(ctx context.Context, institutionID int64) ([]*models.Discipline, error)
	SearchByName(ctx context.Context, institutionID int64, name string) ([]*models.Discipline, error)

	// ExistsByCodeAndInstitution checks the per-tenant code constraint; the
	// same code may exist in two different institutions without conflict.
	ExistsByCodeAndInstitution(ctx context.Context, code string, institutionID int64) (bool, error)

	CountFiles(ctx context.Context, disciplineID int64) (int64, error)
	TotalStorageUsedBytes(ctx context.Context, disciplineID int64) (int64, error)
}

// FileRepository defines storage operations for files
type FileRepository interface {
	Create(ctx context.Context, file *models.File) error
	GetByID(ctx context.Context, id int64) (*models.File, error)
	Update(ctx context.Context, file *models.File) error
	Delete(ctx context.Context, id int64) error

	// ListApprovedByDiscipline and ListPendingByInstitution are the two
	// moderation-filtered listings, both ordered newest first.
	ListApprovedByDiscipline(ctx context.Context, disciplineID int64) ([]*models.File, error)
	ListPendingByInstitution(ctx context.Context, institutionID int64) ([]*models.File, error)
	ListByUploader(ctx context.Context, userID int64) ([]*models.File, error)
	ListMostDownloaded(ctx context.Context, institutionID int64, limit int) ([]*models.File, error)

	// IncrementDownloadCount bumps the counter atomically and returns the
	// new value.
	IncrementDownloadCount(ctx context.Context, id int64) (int, error)

	CountByStatusAndInstitution(ctx context.Context, status models.FileStatus, institutionID int64) (int64, error)
}

// FavoriteRepository defines storage operations for favorites
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	GetByUserAndFile(ctx context.Context, userID, fileID int64) (*models.Favorite, error)
	DeleteByUserAndFile(ctx context.Context, userID, fileID int64) (bool, error)

	// ListByUser is ordered by favorite creation time, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*models.Favorite, error)

	ExistsByUserAndFile(ctx context.Context, userID, fileID int64) (bool, error)
	CountByFile(ctx context.Context, fileID int64) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

// CommentRepository defines storage operations for comments
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error

	// ListActiveByFile is ordered oldest first so threads read top-down.
	ListActiveByFile(ctx context.Context, fileID int64) ([]*models.Comment, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Comment, error)

	CountActiveByFile(ctx context.Context, fileID int64) (int64, error)
}
