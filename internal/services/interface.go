// file: internal/services/interface.go
package services

import (
	"academichub/internal/models"
	"context"
)

// InstitutionService manages tenant institutions
type InstitutionService interface {
	CreateInstitution(ctx context.Context, req *CreateInstitutionRequest) (*models.Institution, error)
	UpdateInstitution(ctx context.Context, req *UpdateInstitutionRequest) (*models.Institution, error)
	GetInstitutionByID(ctx context.Context, id int64) (*models.Institution, error)
	GetInstitutionByCode(ctx context.Context, code string) (*models.Institution, error)
	ListActiveInstitutions(ctx context.Context) ([]*models.Institution, error)
	ListExpiredInstitutions(ctx context.Context) ([]*models.Institution, error)
}

// UserService manages institution-scoped users
type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, req *UpdateUserRequest) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsersByInstitution(ctx context.Context, institutionID int64) ([]*models.User, error)
	ListUsersByRole(ctx context.Context, institutionID int64, role models.UserRole) ([]*models.User, error)
}

// AuthService handles authentication and password recovery
type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	RequestPasswordReset(ctx context.Context, req *ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *ResetPasswordRequest) error
}

// DisciplineService manages subject groupings within an institution
type DisciplineService interface {
	CreateDiscipline(ctx context.Context, req *CreateDisciplineRequest) (*models.Discipline, error)
	UpdateDiscipline(ctx context.Context, req *UpdateDisciplineRequest) (*models.Discipline, error)
	GetDisciplineByID(ctx context.Context, id int64) (*models.Discipline, error)
	ListActiveByInstitution(ctx context.Context, institutionID int64) ([]*models.Discipline, error)
	SearchByName(ctx context.Context, institutionID int64, name string) ([]*models.Discipline, error)
}

// FileService manages academic files and their moderation lifecycle
type FileService interface {
	CreateFile(ctx context.Context, req *CreateFileRequest) (*models.File, error)
	UpdateFile(ctx context.Context, req *UpdateFileRequest) (*models.File, error)
	GetFileByID(ctx context.Context, id int64) (*models.File, error)
	ApproveFile(ctx context.Context, id int64) (*models.File, error)
	RejectFile(ctx context.Context, id int64) (*models.File, error)
	IncrementDownloadCount(ctx context.Context, id int64) (int, error)
	ListApprovedByDiscipline(ctx context.Context, disciplineID int64) ([]*models.File, error)
	ListPendingByInstitution(ctx context.Context, institutionID int64) ([]*models.File, error)
	ListByUploader(ctx context.Context, userID int64) ([]*models.File, error)
	ListMostDownloaded(ctx context.Context, institutionID int64, limit int) ([]*models.File, error)
}

// FavoriteService manages per-user file bookmarks
type FavoriteService interface {
	AddFavorite(ctx context.Context, userID, fileID int64) error
	RemoveFavorite(ctx context.Context, userID, fileID int64) error
	ListFavorites(ctx context.Context, userID int64) ([]*models.File, error)
	IsFavorite(ctx context.Context, userID, fileID int64) (bool, error)
}

// CommentService manages file comments with soft deletion
type CommentService interface {
	AddComment(ctx context.Context, req *CreateCommentRequest) (*models.Comment, error)
	UpdateComment(ctx context.Context, req *UpdateCommentRequest) (*models.Comment, error)
	GetCommentByID(ctx context.Context, id int64) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
	ListByFile(ctx context.Context, fileID int64) ([]*models.Comment, error)
}
