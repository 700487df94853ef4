// file: internal/models/enums.go
package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// ===============================
// PLAN TYPE
// ===============================

// PlanType determines an institution's limits and features.
type PlanType string

const (
	PlanFree       PlanType = "FREE"
	PlanBasic      PlanType = "BASIC"
	PlanPremium    PlanType = "PREMIUM"
	PlanEnterprise PlanType = "ENTERPRISE"
)

// Valid reports whether the plan is one of the known plan types.
func (p PlanType) Valid() bool {
	switch p {
	case PlanFree, PlanBasic, PlanPremium, PlanEnterprise:
		return true
	}
	return false
}

// Value implements driver.Valuer. Plans are stored by symbolic name.
func (p PlanType) Value() (driver.Value, error) {
	return string(p), nil
}

// Scan implements sql.Scanner
func (p *PlanType) Scan(value interface{}) error {
	s, err := scanEnumString(value)
	if err != nil {
		return fmt.Errorf("failed to scan plan type: %w", err)
	}
	*p = PlanType(s)
	return nil
}

// ===============================
// USER ROLE
// ===============================

// UserRole determines permissions. Hierarchy: SUPER_ADMIN > ADMIN > TEACHER > STUDENT.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleTeacher    UserRole = "TEACHER"
	RoleStudent    UserRole = "STUDENT"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// Value implements driver.Valuer. Roles are stored by symbolic name.
func (r UserRole) Value() (driver.Value, error) {
	return string(r), nil
}

// Scan implements sql.Scanner
func (r *UserRole) Scan(value interface{}) error {
	s, err := scanEnumString(value)
	if err != nil {
		return fmt.Errorf("failed to scan user role: %w", err)
	}
	*r = UserRole(s)
	return nil
}

// ===============================
// FILE STATUS
// ===============================

// FileStatus tracks a file through the moderation workflow.
// Flow: PENDING -> APPROVED or PENDING -> REJECTED. Both outcomes are terminal.
type FileStatus string

const (
	StatusPending  FileStatus = "PENDING"
	StatusApproved FileStatus = "APPROVED"
	StatusRejected FileStatus = "REJECTED"
)

// Valid reports whether the status is one of the known statuses.
func (s FileStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Value implements driver.Valuer. Statuses are stored by symbolic name.
func (s FileStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Scan implements sql.Scanner
func (s *FileStatus) Scan(value interface{}) error {
	str, err := scanEnumString(value)
	if err != nil {
		return fmt.Errorf("failed to scan file status: %w", err)
	}
	*s = FileStatus(str)
	return nil
}

// ===============================
// FILE TYPE
// ===============================

// FileType is the closed set of supported file formats.
type FileType string

const (
	FileTypePDF  FileType = "PDF"
	FileTypeDOC  FileType = "DOC"
	FileTypeDOCX FileType = "DOCX"
	FileTypeXLS  FileType = "XLS"
	FileTypeXLSX FileType = "XLSX"
	FileTypePPT  FileType = "PPT"
	FileTypePPTX FileType = "PPTX"
	FileTypeIMG  FileType = "IMG"
	FileTypeJPG  FileType = "JPG"
	FileTypeJPEG FileType = "JPEG"
	FileTypePNG  FileType = "PNG"
	FileTypeGIF  FileType = "GIF"
	FileTypeTXT  FileType = "TXT"
)

// AllFileTypes lists every supported file type.
var AllFileTypes = []FileType{
	FileTypePDF, FileTypeDOC, FileTypeDOCX, FileTypeXLS, FileTypeXLSX,
	FileTypePPT, FileTypePPTX, FileTypeIMG, FileTypeJPG, FileTypeJPEG,
	FileTypePNG, FileTypeGIF, FileTypeTXT,
}

// Valid reports whether the file type is one of the supported formats.
func (t FileType) Valid() bool {
	for _, known := range AllFileTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer. File types are stored by symbolic name.
func (t FileType) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan implements sql.Scanner
func (t *FileType) Scan(value interface{}) error {
	s, err := scanEnumString(value)
	if err != nil {
		return fmt.Errorf("failed to scan file type: %w", err)
	}
	*t = FileType(s)
	return nil
}

// ParseFileType converts a symbolic name (any case) to a FileType.
func ParseFileType(s string) (FileType, error) {
	t := FileType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown file type %q", s)
	}
	return t, nil
}

// scanEnumString normalizes the driver value for enum columns.
func scanEnumString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported type %T", value)
	}
}
