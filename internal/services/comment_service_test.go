// file: internal/services/comment_service_test.go
package services

import (
	"academichub/internal/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type commentFixture struct {
	commentRepo *fakeCommentRepo
	fileRepo    *fakeFileRepo
	userRepo    *fakeUserRepo
	service     CommentService
	user        *models.User
	file        *models.File
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()

	commentRepo := newFakeCommentRepo()
	fileRepo := newFakeFileRepo()
	userRepo := newFakeUserRepo()

	user := &models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleStudent, InstitutionID: 1, Active: true}
	require.NoError(t, userRepo.Create(context.Background(), user))

	file := &models.File{
		Title: "Skeletal System Notes", FileName: "skeletal.pdf",
		FileType: models.FileTypePDF, FileSize: 2048,
		DisciplineID: 1, InstitutionID: 1, UploadedByID: user.ID,
		Status: models.StatusApproved,
	}
	require.NoError(t, fileRepo.Create(context.Background(), file))

	return &commentFixture{
		commentRepo: commentRepo,
		fileRepo:    fileRepo,
		userRepo:    userRepo,
		service:     NewCommentService(commentRepo, fileRepo, userRepo, zap.NewNop()),
		user:        user,
		file:        file,
	}
}

func TestAddComment(t *testing.T) {
	f := newCommentFixture(t)

	comment, err := f.service.AddComment(context.Background(), &CreateCommentRequest{
		Content: "Very helpful, thanks!",
		UserID:  f.user.ID,
		FileID:  f.file.ID,
	})

	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
	assert.True(t, comment.Active, "new comments are always visible")
	assert.Equal(t, "Alice", comment.UserName)
	assert.Equal(t, f.file.Title, comment.FileTitle)
}

func TestAddCommentUnknownFile(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.service.AddComment(context.Background(), &CreateCommentRequest{
		Content: "hello",
		UserID:  f.user.ID,
		FileID:  999,
	})

	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestUpdateComment(t *testing.T) {
	f := newCommentFixture(t)

	comment, err := f.service.AddComment(context.Background(), &CreateCommentRequest{
		Content: "first draft", UserID: f.user.ID, FileID: f.file.ID,
	})
	require.NoError(t, err)

	updated, err := f.service.UpdateComment(context.Background(), &UpdateCommentRequest{
		ID:      comment.ID,
		Content: "second draft",
	})

	require.NoError(t, err)
	assert.Equal(t, "second draft", updated.Content)
	assert.True(t, updated.Active)
}

func TestDeleteCommentIsSoft(t *testing.T) {
	f := newCommentFixture(t)

	comment, err := f.service.AddComment(context.Background(), &CreateCommentRequest{
		Content: "to be removed", UserID: f.user.ID, FileID: f.file.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteComment(context.Background(), comment.ID))

	// The row stays with its content; only the visibility flag flips.
	stored, err := f.commentRepo.GetByID(context.Background(), comment.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.Active)
	assert.Equal(t, "to be removed", stored.Content)

	visible, err := f.service.ListByFile(context.Background(), f.file.ID)
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestDeleteCommentUnknown(t *testing.T) {
	f := newCommentFixture(t)

	err := f.service.DeleteComment(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestListByFileConversationOrder(t *testing.T) {
	f := newCommentFixture(t)

	for _, content := range []string{"first", "second", "third"} {
		_, err := f.service.AddComment(context.Background(), &CreateCommentRequest{
			Content: content, UserID: f.user.ID, FileID: f.file.ID,
		})
		require.NoError(t, err)
	}

	comments, err := f.service.ListByFile(context.Background(), f.file.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Content, "oldest comment comes first")
	assert.Equal(t, "third", comments[2].Content)
}
