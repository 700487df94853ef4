// file: internal/services/types.go
package services

import (
	"academichub/internal/models"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for request structs
var validate = validator.New()

// ===============================
// INSTITUTION REQUESTS
// ===============================

// CreateInstitutionRequest carries input for institution creation
type CreateInstitutionRequest struct {
	Name         string          `json:"name" validate:"required,max=100"`
	Code         *string         `json:"code,omitempty" validate:"omitempty,max=50"`
	Description  *string         `json:"description,omitempty" validate:"omitempty,max=200"`
	Plan         models.PlanType `json:"plan,omitempty"`
	MaxUsers     *int            `json:"max_users,omitempty" validate:"omitempty,gt=0"`
	MaxStorageGB *int            `json:"max_storage_gb,omitempty" validate:"omitempty,gt=0"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty"`
}

// UpdateInstitutionRequest carries input for a full institution overwrite
type UpdateInstitutionRequest struct {
	ID           int64           `json:"id" validate:"required,gt=0"`
	Name         string          `json:"name" validate:"required,max=100"`
	Code         *string         `json:"code,omitempty" validate:"omitempty,max=50"`
	Description  *string         `json:"description,omitempty" validate:"omitempty,max=200"`
	Plan         models.PlanType `json:"plan" validate:"required"`
	MaxUsers     int             `json:"max_users" validate:"gt=0"`
	MaxStorageGB int             `json:"max_storage_gb" validate:"gt=0"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty"`
	Active       bool            `json:"active"`
}

// ===============================
// USER REQUESTS
// ===============================

// CreateUserRequest carries input for user creation
type CreateUserRequest struct {
	Name          string          `json:"name" validate:"required,max=100"`
	Email         string          `json:"email" validate:"required,email,max=100"`
	Password      string          `json:"password" validate:"required,min=6,max=72"`
	Role          models.UserRole `json:"role" validate:"required"`
	InstitutionID int64           `json:"institution_id" validate:"required,gt=0"`
}

// UpdateUserRequest carries input for a user overwrite. Password is optional:
// empty means keep the current hash.
type UpdateUserRequest struct {
	ID            int64           `json:"id" validate:"required,gt=0"`
	Name          string          `json:"name" validate:"required,max=100"`
	Email         string          `json:"email" validate:"required,email,max=100"`
	Password      string          `json:"password,omitempty" validate:"omitempty,min=6,max=72"`
	Role          models.UserRole `json:"role" validate:"required"`
	InstitutionID int64           `json:"institution_id" validate:"required,gt=0"`
	Active        bool            `json:"active"`
}

// ===============================
// AUTH REQUESTS
// ===============================

// LoginRequest carries credentials for authentication
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the authenticated user and access token
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// ForgotPasswordRequest starts the password recovery flow
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes the password recovery flow
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

// ===============================
// DISCIPLINE REQUESTS
// ===============================

// CreateDisciplineRequest carries input for discipline creation
type CreateDisciplineRequest struct {
	Name          string  `json:"name" validate:"required,max=100"`
	Code          *string `json:"code,omitempty" validate:"omitempty,max=20"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=500"`
	InstitutionID int64   `json:"institution_id" validate:"required,gt=0"`
}

// UpdateDisciplineRequest carries input for a discipline overwrite
type UpdateDisciplineRequest struct {
	ID            int64   `json:"id" validate:"required,gt=0"`
	Name          string  `json:"name" validate:"required,max=100"`
	Code          *string `json:"code,omitempty" validate:"omitempty,max=20"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=500"`
	InstitutionID int64   `json:"institution_id" validate:"required,gt=0"`
	Active        bool    `json:"active"`
}

// ===============================
// FILE REQUESTS
// ===============================

// CreateFileRequest carries metadata for file registration. The uploaded
// bytes travel separately through the storage collaborator.
type CreateFileRequest struct {
	Title        string          `json:"title" validate:"required,max=200"`
	FileName     string          `json:"file_name" validate:"required,max=500"`
	FileType     models.FileType `json:"file_type" validate:"required"`
	FileSize     int64           `json:"file_size" validate:"required,gt=0"`
	FilePath     *string         `json:"file_path,omitempty" validate:"omitempty,max=500"`
	Description  *string         `json:"description,omitempty" validate:"omitempty,max=1000"`
	Version      *string         `json:"version,omitempty" validate:"omitempty,max=20"`
	DisciplineID int64           `json:"discipline_id" validate:"required,gt=0"`
	UploadedByID int64           `json:"uploaded_by_id" validate:"required,gt=0"`
}

// UpdateFileRequest carries metadata for a full file overwrite. Status is
// never touched here; moderation has its own operations.
type UpdateFileRequest struct {
	ID           int64           `json:"id" validate:"required,gt=0"`
	Title        string          `json:"title" validate:"required,max=200"`
	FileName     string          `json:"file_name" validate:"required,max=500"`
	FileType     models.FileType `json:"file_type" validate:"required"`
	FileSize     int64           `json:"file_size" validate:"required,gt=0"`
	FilePath     *string         `json:"file_path,omitempty" validate:"omitempty,max=500"`
	Description  *string         `json:"description,omitempty" validate:"omitempty,max=1000"`
	Version      *string         `json:"version,omitempty" validate:"omitempty,max=20"`
	DisciplineID int64           `json:"discipline_id" validate:"required,gt=0"`
}

// ===============================
// ENGAGEMENT REQUESTS
// ===============================

// CreateCommentRequest carries input for comment creation
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
	UserID  int64  `json:"user_id" validate:"required,gt=0"`
	FileID  int64  `json:"file_id" validate:"required,gt=0"`
}

// UpdateCommentRequest carries input for a comment content edit
type UpdateCommentRequest struct {
	ID      int64  `json:"id" validate:"required,gt=0"`
	Content string `json:"content" validate:"required,max=2000"`
}
