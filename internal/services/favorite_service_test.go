// file: internal/services/favorite_service_test.go
package services

import (
	"academichub/internal/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type favoriteFixture struct {
	favoriteRepo *fakeFavoriteRepo
	fileRepo     *fakeFileRepo
	userRepo     *fakeUserRepo
	commentRepo  *fakeCommentRepo
	service      FavoriteService
	user         *models.User
	file         *models.File
}

func newFavoriteFixture(t *testing.T) *favoriteFixture {
	t.Helper()

	favoriteRepo := newFakeFavoriteRepo()
	fileRepo := newFakeFileRepo()
	userRepo := newFakeUserRepo()
	commentRepo := newFakeCommentRepo()

	user := &models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleStudent, InstitutionID: 1, Active: true}
	require.NoError(t, userRepo.Create(context.Background(), user))

	file := &models.File{
		Title: "Skeletal System Notes", FileName: "skeletal.pdf",
		FileType: models.FileTypePDF, FileSize: 2048,
		DisciplineID: 1, InstitutionID: 1, UploadedByID: user.ID,
		Status: models.StatusApproved,
	}
	require.NoError(t, fileRepo.Create(context.Background(), file))

	return &favoriteFixture{
		favoriteRepo: favoriteRepo,
		fileRepo:     fileRepo,
		userRepo:     userRepo,
		commentRepo:  commentRepo,
		service:      NewFavoriteService(favoriteRepo, fileRepo, userRepo, commentRepo, zap.NewNop()),
		user:         user,
		file:         file,
	}
}

func TestAddFavoriteIsIdempotent(t *testing.T) {
	f := newFavoriteFixture(t)

	require.NoError(t, f.service.AddFavorite(context.Background(), f.user.ID, f.file.ID))
	require.NoError(t, f.service.AddFavorite(context.Background(), f.user.ID, f.file.ID),
		"favoriting twice is a silent no-op")

	count, err := f.favoriteRepo.CountByFile(context.Background(), f.file.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAddFavoriteUnknownFile(t *testing.T) {
	f := newFavoriteFixture(t)

	err := f.service.AddFavorite(context.Background(), f.user.ID, 999)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestRemoveFavorite(t *testing.T) {
	f := newFavoriteFixture(t)

	require.NoError(t, f.service.AddFavorite(context.Background(), f.user.ID, f.file.ID))
	require.NoError(t, f.service.RemoveFavorite(context.Background(), f.user.ID, f.file.ID))

	exists, err := f.service.IsFavorite(context.Background(), f.user.ID, f.file.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRemoveFavoriteMissing(t *testing.T) {
	f := newFavoriteFixture(t)

	err := f.service.RemoveFavorite(context.Background(), f.user.ID, f.file.ID)
	require.Error(t, err, "removing an absent favorite is an error, unlike the idempotent add")
	assert.True(t, IsNotFoundError(err))
}

func TestListFavoritesReflectsLiveFileState(t *testing.T) {
	f := newFavoriteFixture(t)

	require.NoError(t, f.service.AddFavorite(context.Background(), f.user.ID, f.file.ID))

	// Moderation changes after the bookmark show up in the listing.
	f.file.Reject()
	require.NoError(t, f.fileRepo.Update(context.Background(), f.file))

	files, err := f.service.ListFavorites(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, models.StatusRejected, files[0].Status)
	assert.Equal(t, int64(1), files[0].FavoritesCount)
}

func TestListFavoritesSkipsDeletedFiles(t *testing.T) {
	f := newFavoriteFixture(t)

	require.NoError(t, f.service.AddFavorite(context.Background(), f.user.ID, f.file.ID))
	require.NoError(t, f.fileRepo.Delete(context.Background(), f.file.ID))

	files, err := f.service.ListFavorites(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestListFavoritesNewestFirst(t *testing.T) {
	f := newFavoriteFixture(t)

	second := &models.File{
		Title: "Muscular System Notes", FileName: "muscular.pdf",
		FileType: models.FileTypePDF, FileSize: 1024,
		DisciplineID: 1, InstitutionID: 1, UploadedByID: f.user.ID,
		Status: models.StatusApproved,
	}
	require.NoError(t, f.fileRepo.Create(context.Background(), second))

	require.NoError(t, f.service.AddFavorite(context.Background(), f.user.ID, f.file.ID))
	require.NoError(t, f.service.AddFavorite(context.Background(), f.user.ID, second.ID))

	files, err := f.service.ListFavorites(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, second.ID, files[0].ID, "most recently favorited comes first")
}
