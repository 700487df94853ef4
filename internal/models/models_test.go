// file: internal/models/models_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstitutionIsExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	assert.True(t, (&Institution{ExpiresAt: &past}).IsExpired())
	assert.False(t, (&Institution{ExpiresAt: &future}).IsExpired())
	assert.False(t, (&Institution{}).IsExpired(), "nil expiration never expires")
}

func TestUserRoleHelpers(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.True(t, (&User{Role: RoleSuperAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleTeacher}).IsAdmin())
	assert.True(t, (&User{Role: RoleTeacher}).IsTeacher())
	assert.True(t, (&User{Role: RoleStudent}).IsStudent())
}

func TestUserHasValidResetToken(t *testing.T) {
	token := "abc"
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Minute)

	assert.True(t, (&User{ResetToken: &token, ResetTokenExpires: &future}).HasValidResetToken())
	assert.False(t, (&User{ResetToken: &token, ResetTokenExpires: &past}).HasValidResetToken())
	assert.False(t, (&User{ResetToken: &token}).HasValidResetToken())
	assert.False(t, (&User{}).HasValidResetToken())
}

func TestFileApprove(t *testing.T) {
	file := &File{Status: StatusPending}
	file.Approve()

	assert.Equal(t, StatusApproved, file.Status)
	require.NotNil(t, file.ApprovedAt)
	assert.WithinDuration(t, time.Now(), *file.ApprovedAt, time.Second)
}

func TestFileRejectKeepsApprovedAt(t *testing.T) {
	stamp := time.Now().Add(-time.Hour)
	file := &File{Status: StatusApproved, ApprovedAt: &stamp}
	file.Reject()

	assert.Equal(t, StatusRejected, file.Status)
	require.NotNil(t, file.ApprovedAt)
	assert.Equal(t, stamp, *file.ApprovedAt)
}

func TestFileExtension(t *testing.T) {
	cases := []struct {
		fileName string
		fileType FileType
		want     string
	}{
		{"notes.PDF", FileTypePDF, "pdf"},
		{"archive.tar.gz", FileTypeTXT, "gz"},
		{"noextension", FileTypeDOCX, "docx"},
		{"trailingdot.", FileTypePNG, "png"},
	}

	for _, tc := range cases {
		file := &File{FileName: tc.fileName, FileType: tc.fileType}
		assert.Equal(t, tc.want, file.FileExtension(), tc.fileName)
	}
}

func TestBytesToGB(t *testing.T) {
	assert.Equal(t, int64(0), BytesToGB(0))
	assert.Equal(t, int64(0), BytesToGB(1<<30-1), "partial gigabytes truncate")
	assert.Equal(t, int64(1), BytesToGB(1<<30))
	assert.Equal(t, int64(5), BytesToGB(5*(1<<30)+123))
}

func TestCommentSoftDelete(t *testing.T) {
	comment := &Comment{Active: true}
	comment.Deactivate()
	assert.False(t, comment.Active)
	comment.Activate()
	assert.True(t, comment.Active)
}

func TestEnumScanAndValue(t *testing.T) {
	var status FileStatus
	require.NoError(t, status.Scan("APPROVED"))
	assert.Equal(t, StatusApproved, status)

	val, err := status.Value()
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", val)

	var role UserRole
	require.NoError(t, role.Scan([]byte("TEACHER")))
	assert.Equal(t, RoleTeacher, role)

	var plan PlanType
	require.NoError(t, plan.Scan("ENTERPRISE"))
	assert.True(t, plan.Valid())
}

func TestParseFileType(t *testing.T) {
	ft, err := ParseFileType("pdf")
	require.NoError(t, err)
	assert.Equal(t, FileTypePDF, ft)

	_, err = ParseFileType("exe")
	assert.Error(t, err)
}
