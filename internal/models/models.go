// file: internal/models/models.go
package models

import (
	"strings"
	"time"
)

const (
	// DefaultMaxUsers is the user ceiling applied when an institution is
	// created without an explicit limit.
	DefaultMaxUsers = 10
	// DefaultMaxStorageGB is the storage ceiling applied when an institution
	// is created without an explicit limit.
	DefaultMaxStorageGB = 5

	bytesPerGB = int64(1) << 30
)

// ===============================
// CORE ENTITIES
// ===============================

// Institution is the tenant root. Users, disciplines and files are isolated
// per institution.
type Institution struct {
	ID          int64    `json:"id" db:"id"`
	Name        string   `json:"name" db:"name" validate:"required,max=100"`
	Code        *string  `json:"code,omitempty" db:"code" validate:"omitempty,max=50"`
	Description *string  `json:"description,omitempty" db:"description" validate:"omitempty,max=200"`
	Plan        PlanType `json:"plan" db:"plan"`

	// Plan limits. Enforced at write time by the services.
	MaxUsers     int `json:"max_users" db:"max_users" validate:"gt=0"`
	MaxStorageGB int `json:"max_storage_gb" db:"max_storage_gb" validate:"gt=0"`

	// ExpiresAt is the plan expiration. Nil means the plan never expires.
	ExpiresAt *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	Active    bool       `json:"active" db:"active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Computed fields (not in DB) - recomputed on every read
	TotalUsers         int64 `json:"total_users" db:"-"`
	TotalStorageUsedGB int64 `json:"total_storage_used_gb" db:"-"`
}

// IsExpired reports whether the plan expiration has passed.
// An institution with no expiration never expires.
func (i *Institution) IsExpired() bool {
	return i.ExpiresAt != nil && i.ExpiresAt.Before(time.Now())
}

// User is a principal scoped to exactly one institution.
type User struct {
	ID            int64    `json:"id" db:"id"`
	Name          string   `json:"name" db:"name" validate:"required,max=100"`
	Email         string   `json:"email" db:"email" validate:"required,email,max=100"`
	PasswordHash  string   `json:"-" db:"password_hash"`
	Role          UserRole `json:"role" db:"role"`
	InstitutionID int64    `json:"institution_id" db:"institution_id" validate:"required"`
	Active        bool     `json:"active" db:"active"`

	// LastLogin is stamped after each successful authentication.
	LastLogin *time.Time `json:"last_login,omitempty" db:"last_login"`

	// Password recovery pair. Both fields are cleared when the token is
	// consumed so a token can never be used twice.
	ResetToken        *string    `json:"-" db:"reset_token"`
	ResetTokenExpires *time.Time `json:"-" db:"reset_token_expires"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Computed fields (not in DB)
	InstitutionName string `json:"institution_name,omitempty" db:"-"`
}

// IsAdmin reports whether the user has management permissions.
// True for both ADMIN and SUPER_ADMIN.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// IsTeacher reports whether the user is a teacher.
func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

// IsStudent reports whether the user is a student.
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// HasValidResetToken reports whether the stored reset token exists and has
// not expired yet.
func (u *User) HasValidResetToken() bool {
	return u.ResetToken != nil &&
		u.ResetTokenExpires != nil &&
		u.ResetTokenExpires.After(time.Now())
}

// Discipline groups files by subject within one institution.
type Discipline struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name" validate:"required,max=100"`

	// Code is a short identifier such as "ANAT01". Unique within the owning
	// institution, not globally.
	Code          *string `json:"code,omitempty" db:"code" validate:"omitempty,max=20"`
	Description   *string `json:"description,omitempty" db:"description" validate:"omitempty,max=500"`
	InstitutionID int64   `json:"institution_id" db:"institution_id" validate:"required"`
	Active        bool    `json:"active" db:"active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Computed fields (not in DB) - recomputed on every read
	InstitutionName       string `json:"institution_name,omitempty" db:"-"`
	TotalFiles            int64  `json:"total_files" db:"-"`
	TotalStorageUsedBytes int64  `json:"total_storage_used_bytes" db:"-"`
}

// File is a versioned academic artifact. It becomes visible to students only
// after moderation approves it.
type File struct {
	ID       int64    `json:"id" db:"id"`
	Title    string   `json:"title" db:"title" validate:"required,max=200"`
	FileName string   `json:"file_name" db:"file_name" validate:"required,max=500"`
	FileType FileType `json:"file_type" db:"file_type"`
	FileSize int64    `json:"file_size" db:"file_size" validate:"gt=0"`
	FilePath *string  `json:"file_path,omitempty" db:"file_path" validate:"omitempty,max=500"`

	Description *string `json:"description,omitempty" db:"description" validate:"omitempty,max=1000"`

	DisciplineID int64 `json:"discipline_id" db:"discipline_id" validate:"required"`

	// InstitutionID is denormalized from the owning discipline for query
	// efficiency. It must always agree with discipline.institution_id; the
	// services re-derive it on every create and re-parenting update.
	InstitutionID int64 `json:"institution_id" db:"institution_id"`

	// UploadedByID is an immutable audit reference to the uploader.
	UploadedByID int64 `json:"uploaded_by_id" db:"uploaded_by"`

	Status        FileStatus `json:"status" db:"status"`
	DownloadCount int        `json:"download_count" db:"download_count"`

	// ApprovedAt is stamped on approval and deliberately left in place if the
	// file is later rejected, as an audit trail of the earlier approval.
	ApprovedAt *time.Time `json:"approved_at,omitempty" db:"approved_at"`
	Version    *string    `json:"version,omitempty" db:"version" validate:"omitempty,max=20"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Computed fields (not in DB) - recomputed on every read
	DisciplineName  string `json:"discipline_name,omitempty" db:"-"`
	InstitutionName string `json:"institution_name,omitempty" db:"-"`
	UploadedByName  string `json:"uploaded_by_name,omitempty" db:"-"`
	FavoritesCount  int64  `json:"favorites_count" db:"-"`
	CommentsCount   int64  `json:"comments_count" db:"-"`
}

// IsApproved reports whether the file passed moderation.
func (f *File) IsApproved() bool { return f.Status == StatusApproved }

// IsPending reports whether the file is still waiting for review.
func (f *File) IsPending() bool { return f.Status == StatusPending }

// IsRejected reports whether the file was rejected.
func (f *File) IsRejected() bool { return f.Status == StatusRejected }

// Approve moves the file to APPROVED and stamps the approval time.
// Re-approving an already-approved file re-stamps the timestamp.
func (f *File) Approve() {
	now := time.Now()
	f.Status = StatusApproved
	f.ApprovedAt = &now
}

// Reject moves the file to REJECTED. ApprovedAt is not touched.
func (f *File) Reject() {
	f.Status = StatusRejected
}

// FileExtension returns the lowercased extension of FileName. When the name
// carries no dot it falls back to the file type's symbolic name.
func (f *File) FileExtension() string {
	if idx := strings.LastIndex(f.FileName, "."); idx >= 0 && idx < len(f.FileName)-1 {
		return strings.ToLower(f.FileName[idx+1:])
	}
	return strings.ToLower(string(f.FileType))
}

// Favorite is a (user, file) pair. The pair is unique: a user can favorite a
// given file at most once.
type Favorite struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id" validate:"required"`
	FileID int64 `json:"file_id" db:"file_id" validate:"required"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Comment is a user remark on a file. Moderation hides comments by flipping
// Active to false; the row and its content are retained for audit.
type Comment struct {
	ID      int64  `json:"id" db:"id"`
	Content string `json:"content" db:"content" validate:"required,max=2000"`
	UserID  int64  `json:"user_id" db:"user_id" validate:"required"`
	FileID  int64  `json:"file_id" db:"file_id" validate:"required"`
	Active  bool   `json:"active" db:"active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Computed fields (not in DB)
	UserName  string `json:"user_name,omitempty" db:"-"`
	FileTitle string `json:"file_title,omitempty" db:"-"`
}

// Deactivate hides the comment from listings (soft delete).
func (c *Comment) Deactivate() { c.Active = false }

// Activate makes a previously hidden comment visible again.
func (c *Comment) Activate() { c.Active = true }

// ===============================
// AGGREGATION HELPERS
// ===============================

// BytesToGB converts a byte count to whole gigabytes (integer division).
func BytesToGB(bytes int64) int64 {
	return bytes / bytesPerGB
}
