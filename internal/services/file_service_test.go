// file: internal/services/file_service_test.go
package services

import (
	"academichub/internal/models"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fileFixture struct {
	fileRepo       *fakeFileRepo
	disciplineRepo *fakeDisciplineRepo
	userRepo       *fakeUserRepo
	favoriteRepo   *fakeFavoriteRepo
	commentRepo    *fakeCommentRepo
	service        FileService
	discipline     *models.Discipline
	uploader       *models.User
}

func newFileFixture(t *testing.T) *fileFixture {
	t.Helper()

	fileRepo := newFakeFileRepo()
	disciplineRepo := newFakeDisciplineRepo()
	userRepo := newFakeUserRepo()
	favoriteRepo := newFakeFavoriteRepo()
	commentRepo := newFakeCommentRepo()

	discipline := &models.Discipline{
		Name:            "Anatomy",
		InstitutionID:   1,
		InstitutionName: "State University",
		Active:          true,
	}
	require.NoError(t, disciplineRepo.Create(context.Background(), discipline))

	uploader := &models.User{
		Name: "Alice", Email: "alice@example.com",
		Role: models.RoleTeacher, InstitutionID: 1, Active: true,
	}
	require.NoError(t, userRepo.Create(context.Background(), uploader))

	return &fileFixture{
		fileRepo:       fileRepo,
		disciplineRepo: disciplineRepo,
		userRepo:       userRepo,
		favoriteRepo:   favoriteRepo,
		commentRepo:    commentRepo,
		service:        NewFileService(fileRepo, disciplineRepo, userRepo, favoriteRepo, commentRepo, zap.NewNop()),
		discipline:     discipline,
		uploader:       uploader,
	}
}

func (f *fileFixture) createFile(t *testing.T) *models.File {
	t.Helper()

	file, err := f.service.CreateFile(context.Background(), &CreateFileRequest{
		Title:        "Skeletal System Notes",
		FileName:     "skeletal.pdf",
		FileType:     models.FileTypePDF,
		FileSize:     2048,
		DisciplineID: f.discipline.ID,
		UploadedByID: f.uploader.ID,
	})
	require.NoError(t, err)
	return file
}

func TestCreateFileForcesPending(t *testing.T) {
	f := newFileFixture(t)

	file := f.createFile(t)

	assert.Equal(t, models.StatusPending, file.Status, "new files always enter moderation as PENDING")
	assert.Nil(t, file.ApprovedAt)
	assert.Equal(t, f.discipline.InstitutionID, file.InstitutionID,
		"institution is derived from the discipline")
	assert.Equal(t, "Alice", file.UploadedByName)
}

func TestCreateFileUnknownDiscipline(t *testing.T) {
	f := newFileFixture(t)

	_, err := f.service.CreateFile(context.Background(), &CreateFileRequest{
		Title:        "Notes",
		FileName:     "notes.pdf",
		FileType:     models.FileTypePDF,
		FileSize:     100,
		DisciplineID: 999,
		UploadedByID: f.uploader.ID,
	})

	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestCreateFileRejectsZeroSize(t *testing.T) {
	f := newFileFixture(t)

	_, err := f.service.CreateFile(context.Background(), &CreateFileRequest{
		Title:        "Notes",
		FileName:     "notes.pdf",
		FileType:     models.FileTypePDF,
		FileSize:     0,
		DisciplineID: f.discipline.ID,
		UploadedByID: f.uploader.ID,
	})

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestApproveFile(t *testing.T) {
	f := newFileFixture(t)
	file := f.createFile(t)

	approved, err := f.service.ApproveFile(context.Background(), file.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	assert.WithinDuration(t, time.Now(), *approved.ApprovedAt, time.Second)
}

func TestReapproveFileRestamps(t *testing.T) {
	f := newFileFixture(t)
	file := f.createFile(t)

	approved, err := f.service.ApproveFile(context.Background(), file.ID)
	require.NoError(t, err)
	firstStamp := *approved.ApprovedAt
	updates := f.fileRepo.updates

	time.Sleep(10 * time.Millisecond)
	before := time.Now()

	again, err := f.service.ApproveFile(context.Background(), file.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, again.Status)
	require.NotNil(t, again.ApprovedAt)
	assert.True(t, again.ApprovedAt.After(firstStamp), "re-approving re-stamps the approval time")
	assert.False(t, again.ApprovedAt.Before(before))
	assert.Equal(t, updates+1, f.fileRepo.updates, "re-approving persists the new stamp")
}

func TestRejectFileKeepsApprovedAt(t *testing.T) {
	f := newFileFixture(t)
	file := f.createFile(t)

	approved, err := f.service.ApproveFile(context.Background(), file.ID)
	require.NoError(t, err)
	stamp := *approved.ApprovedAt

	rejected, err := f.service.RejectFile(context.Background(), file.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.ApprovedAt, "the earlier approval stays as an audit trace")
	assert.Equal(t, stamp, *rejected.ApprovedAt)
}

func TestUpdateFileNeverTouchesStatus(t *testing.T) {
	f := newFileFixture(t)
	file := f.createFile(t)

	_, err := f.service.ApproveFile(context.Background(), file.ID)
	require.NoError(t, err)

	updated, err := f.service.UpdateFile(context.Background(), &UpdateFileRequest{
		ID:           file.ID,
		Title:        "Skeletal System Notes v2",
		FileName:     "skeletal-v2.pdf",
		FileType:     models.FileTypePDF,
		FileSize:     4096,
		DisciplineID: f.discipline.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status)
	assert.NotNil(t, updated.ApprovedAt)
	assert.Equal(t, "Skeletal System Notes v2", updated.Title)
}

func TestUpdateFileReparentRederivesInstitution(t *testing.T) {
	f := newFileFixture(t)
	file := f.createFile(t)

	otherDiscipline := &models.Discipline{
		Name:            "Physiology",
		InstitutionID:   2,
		InstitutionName: "Tech Institute",
		Active:          true,
	}
	require.NoError(t, f.disciplineRepo.Create(context.Background(), otherDiscipline))

	updated, err := f.service.UpdateFile(context.Background(), &UpdateFileRequest{
		ID:           file.ID,
		Title:        file.Title,
		FileName:     file.FileName,
		FileType:     file.FileType,
		FileSize:     file.FileSize,
		DisciplineID: otherDiscipline.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.InstitutionID)
}

func TestIncrementDownloadCount(t *testing.T) {
	f := newFileFixture(t)
	file := f.createFile(t)

	count, err := f.service.IncrementDownloadCount(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = f.service.IncrementDownloadCount(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIncrementDownloadCountUnknownFile(t *testing.T) {
	f := newFileFixture(t)

	_, err := f.service.IncrementDownloadCount(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestGetFileEngagementCountsAreLive(t *testing.T) {
	f := newFileFixture(t)
	file := f.createFile(t)

	f.favoriteRepo.Create(context.Background(), &models.Favorite{UserID: f.uploader.ID, FileID: file.ID})
	f.commentRepo.Create(context.Background(), &models.Comment{Content: "great", UserID: f.uploader.ID, FileID: file.ID, Active: true})
	f.commentRepo.Create(context.Background(), &models.Comment{Content: "hidden", UserID: f.uploader.ID, FileID: file.ID, Active: false})

	got, err := f.service.GetFileByID(context.Background(), file.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.FavoritesCount)
	assert.Equal(t, int64(1), got.CommentsCount, "hidden comments do not count")
}

func TestListPendingByInstitution(t *testing.T) {
	f := newFileFixture(t)

	first := f.createFile(t)
	f.createFile(t)

	_, err := f.service.ApproveFile(context.Background(), first.ID)
	require.NoError(t, err)

	pending, err := f.service.ListPendingByInstitution(context.Background(), f.discipline.InstitutionID)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
