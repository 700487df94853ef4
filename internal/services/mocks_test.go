// file: internal/services/mocks_test.go
package services

import (
	"academichub/internal/models"
	"context"
	"database/sql"
	"strings"
	"time"
)

// ===============================
// IN-MEMORY REPOSITORY FAKES
// ===============================

// The fakes mirror the repository contracts: GetByX returns (nil, nil) when
// nothing matches, counts use the same predicates as the listings.

type fakeInstitutionRepo struct {
	nextID       int64
	institutions map[int64]*models.Institution
	storageBytes map[int64]int64
}

func newFakeInstitutionRepo() *fakeInstitutionRepo {
	return &fakeInstitutionRepo{
		institutions: make(map[int64]*models.Institution),
		storageBytes: make(map[int64]int64),
	}
}

func (r *fakeInstitutionRepo) Create(ctx context.Context, institution *models.Institution) error {
	r.nextID++
	institution.ID = r.nextID
	institution.CreatedAt = time.Now()
	institution.UpdatedAt = institution.CreatedAt
	r.institutions[institution.ID] = institution
	return nil
}

func (r *fakeInstitutionRepo) GetByID(ctx context.Context, id int64) (*models.Institution, error) {
	return r.institutions[id], nil
}

func (r *fakeInstitutionRepo) GetByName(ctx context.Context, name string) (*models.Institution, error) {
	for _, institution := range r.institutions {
		if institution.Name == name {
			return institution, nil
		}
	}
	return nil, nil
}

func (r *fakeInstitutionRepo) GetByCode(ctx context.Context, code string) (*models.Institution, error) {
	for _, institution := range r.institutions {
		if institution.Code != nil && *institution.Code == code {
			return institution, nil
		}
	}
	return nil, nil
}

func (r *fakeInstitutionRepo) Update(ctx context.Context, institution *models.Institution) error {
	institution.UpdatedAt = time.Now()
	r.institutions[institution.ID] = institution
	return nil
}

func (r *fakeInstitutionRepo) Delete(ctx context.Context, id int64) error {
	delete(r.institutions, id)
	return nil
}

func (r *fakeInstitutionRepo) ListActive(ctx context.Context) ([]*models.Institution, error) {
	var out []*models.Institution
	for _, institution := range r.institutions {
		if institution.Active {
			out = append(out, institution)
		}
	}
	return out, nil
}

func (r *fakeInstitutionRepo) ListExpired(ctx context.Context) ([]*models.Institution, error) {
	var out []*models.Institution
	for _, institution := range r.institutions {
		if institution.IsExpired() {
			out = append(out, institution)
		}
	}
	return out, nil
}

func (r *fakeInstitutionRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	institution, _ := r.GetByName(ctx, name)
	return institution != nil, nil
}

func (r *fakeInstitutionRepo) CountActive(ctx context.Context) (int64, error) {
	active, _ := r.ListActive(ctx)
	return int64(len(active)), nil
}

func (r *fakeInstitutionRepo) TotalStorageUsedBytes(ctx context.Context, institutionID int64) (int64, error) {
	return r.storageBytes[institutionID], nil
}

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	for _, user := range r.users {
		if user.ResetToken != nil && *user.ResetToken == token {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ListByInstitution(ctx context.Context, institutionID int64) ([]*models.User, error) {
	var out []*models.User
	for _, user := range r.users {
		if user.InstitutionID == institutionID {
			out = append(out, user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListActiveByInstitution(ctx context.Context, institutionID int64) ([]*models.User, error) {
	var out []*models.User
	for _, user := range r.users {
		if user.InstitutionID == institutionID && user.Active {
			out = append(out, user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListByRoleAndInstitution(ctx context.Context, role models.UserRole, institutionID int64) ([]*models.User, error) {
	var out []*models.User
	for _, user := range r.users {
		if user.InstitutionID == institutionID && user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	user, _ := r.GetByEmail(ctx, email)
	return user != nil, nil
}

func (r *fakeUserRepo) CountActiveByInstitution(ctx context.Context, institutionID int64) (int64, error) {
	active, _ := r.ListActiveByInstitution(ctx, institutionID)
	return int64(len(active)), nil
}

type fakeDisciplineRepo struct {
	nextID       int64
	disciplines  map[int64]*models.Discipline
	fileCounts   map[int64]int64
	storageBytes map[int64]int64
}

func newFakeDisciplineRepo() *fakeDisciplineRepo {
	return &fakeDisciplineRepo{
		disciplines:  make(map[int64]*models.Discipline),
		fileCounts:   make(map[int64]int64),
		storageBytes: make(map[int64]int64),
	}
}

func (r *fakeDisciplineRepo) Create(ctx context.Context, discipline *models.Discipline) error {
	r.nextID++
	discipline.ID = r.nextID
	discipline.CreatedAt = time.Now()
	discipline.UpdatedAt = discipline.CreatedAt
	r.disciplines[discipline.ID] = discipline
	return nil
}

func (r *fakeDisciplineRepo) GetByID(ctx context.Context, id int64) (*models.Discipline, error) {
	return r.disciplines[id], nil
}

func (r *fakeDisciplineRepo) Update(ctx context.Context, discipline *models.Discipline) error {
	discipline.UpdatedAt = time.Now()
	r.disciplines[discipline.ID] = discipline
	return nil
}

func (r *fakeDisciplineRepo) Delete(ctx context.Context, id int64) error {
	delete(r.disciplines, id)
	return nil
}

func (r *fakeDisciplineRepo) ListByInstitution(ctx context.Context, institutionID int64) ([]*models.Discipline, error) {
	var out []*models.Discipline
	for _, discipline := range r.disciplines {
		if discipline.InstitutionID == institutionID {
			out = append(out, discipline)
		}
	}
	return out, nil
}

func (r *fakeDisciplineRepo) ListActiveByInstitution(ctx context.Context, institutionID int64) ([]*models.Discipline, error) {
	var out []*models.Discipline
	for _, discipline := range r.disciplines {
		if discipline.InstitutionID == institutionID && discipline.Active {
			out = append(out, discipline)
		}
	}
	return out, nil
}

func (r *fakeDisciplineRepo) SearchByName(ctx context.Context, institutionID int64, name string) ([]*models.Discipline, error) {
	needle := strings.ToLower(name)
	var out []*models.Discipline
	for _, discipline := range r.disciplines {
		if discipline.InstitutionID == institutionID &&
			strings.Contains(strings.ToLower(discipline.Name), needle) {
			out = append(out, discipline)
		}
	}
	return out, nil
}

func (r *fakeDisciplineRepo) ExistsByCodeAndInstitution(ctx context.Context, code string, institutionID int64) (bool, error) {
	for _, discipline := range r.disciplines {
		if discipline.InstitutionID == institutionID &&
			discipline.Code != nil && *discipline.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDisciplineRepo) CountFiles(ctx context.Context, disciplineID int64) (int64, error) {
	return r.fileCounts[disciplineID], nil
}

func (r *fakeDisciplineRepo) TotalStorageUsedBytes(ctx context.Context, disciplineID int64) (int64, error) {
	return r.storageBytes[disciplineID], nil
}

type fakeFileRepo struct {
	nextID  int64
	files   map[int64]*models.File
	updates int
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: make(map[int64]*models.File)}
}

func (r *fakeFileRepo) Create(ctx context.Context, file *models.File) error {
	r.nextID++
	file.ID = r.nextID
	file.CreatedAt = time.Now()
	file.UpdatedAt = file.CreatedAt
	r.files[file.ID] = file
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, id int64) (*models.File, error) {
	return r.files[id], nil
}

func (r *fakeFileRepo) Update(ctx context.Context, file *models.File) error {
	r.updates++
	file.UpdatedAt = time.Now()
	r.files[file.ID] = file
	return nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id int64) error {
	delete(r.files, id)
	return nil
}

func (r *fakeFileRepo) ListApprovedByDiscipline(ctx context.Context, disciplineID int64) ([]*models.File, error) {
	var out []*models.File
	for _, file := range r.files {
		if file.DisciplineID == disciplineID && file.IsApproved() {
			out = append(out, file)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) ListPendingByInstitution(ctx context.Context, institutionID int64) ([]*models.File, error) {
	var out []*models.File
	for _, file := range r.files {
		if file.InstitutionID == institutionID && file.IsPending() {
			out = append(out, file)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) ListByUploader(ctx context.Context, userID int64) ([]*models.File, error) {
	var out []*models.File
	for _, file := range r.files {
		if file.UploadedByID == userID {
			out = append(out, file)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) ListMostDownloaded(ctx context.Context, institutionID int64, limit int) ([]*models.File, error) {
	var out []*models.File
	for _, file := range r.files {
		if file.InstitutionID == institutionID && file.IsApproved() {
			out = append(out, file)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeFileRepo) IncrementDownloadCount(ctx context.Context, id int64) (int, error) {
	file, ok := r.files[id]
	if !ok {
		return 0, sql.ErrNoRows
	}
	file.DownloadCount++
	return file.DownloadCount, nil
}

func (r *fakeFileRepo) CountByStatusAndInstitution(ctx context.Context, status models.FileStatus, institutionID int64) (int64, error) {
	var count int64
	for _, file := range r.files {
		if file.InstitutionID == institutionID && file.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeFavoriteRepo struct {
	nextID    int64
	favorites []*models.Favorite
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{}
}

func (r *fakeFavoriteRepo) Create(ctx context.Context, favorite *models.Favorite) error {
	r.nextID++
	favorite.ID = r.nextID
	favorite.CreatedAt = time.Now()
	favorite.UpdatedAt = favorite.CreatedAt
	r.favorites = append(r.favorites, favorite)
	return nil
}

func (r *fakeFavoriteRepo) GetByUserAndFile(ctx context.Context, userID, fileID int64) (*models.Favorite, error) {
	for _, favorite := range r.favorites {
		if favorite.UserID == userID && favorite.FileID == fileID {
			return favorite, nil
		}
	}
	return nil, nil
}

func (r *fakeFavoriteRepo) DeleteByUserAndFile(ctx context.Context, userID, fileID int64) (bool, error) {
	for i, favorite := range r.favorites {
		if favorite.UserID == userID && favorite.FileID == fileID {
			r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFavoriteRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Favorite, error) {
	// Newest first, matching the repository ordering contract.
	var out []*models.Favorite
	for i := len(r.favorites) - 1; i >= 0; i-- {
		if r.favorites[i].UserID == userID {
			out = append(out, r.favorites[i])
		}
	}
	return out, nil
}

func (r *fakeFavoriteRepo) ExistsByUserAndFile(ctx context.Context, userID, fileID int64) (bool, error) {
	favorite, _ := r.GetByUserAndFile(ctx, userID, fileID)
	return favorite != nil, nil
}

func (r *fakeFavoriteRepo) CountByFile(ctx context.Context, fileID int64) (int64, error) {
	var count int64
	for _, favorite := range r.favorites {
		if favorite.FileID == fileID {
			count++
		}
	}
	return count, nil
}

func (r *fakeFavoriteRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for _, favorite := range r.favorites {
		if favorite.UserID == userID {
			count++
		}
	}
	return count, nil
}

type fakeCommentRepo struct {
	nextID   int64
	comments []*models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	r.nextID++
	comment.ID = r.nextID
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	r.comments = append(r.comments, comment)
	return nil
}

func (r *fakeCommentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	for _, comment := range r.comments {
		if comment.ID == id {
			return comment, nil
		}
	}
	return nil, nil
}

func (r *fakeCommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	comment.UpdatedAt = time.Now()
	for i, existing := range r.comments {
		if existing.ID == comment.ID {
			r.comments[i] = comment
			return nil
		}
	}
	return nil
}

func (r *fakeCommentRepo) ListActiveByFile(ctx context.Context, fileID int64) ([]*models.Comment, error) {
	// Oldest first, the conversation order the repository promises.
	var out []*models.Comment
	for _, comment := range r.comments {
		if comment.FileID == fileID && comment.Active {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, comment := range r.comments {
		if comment.UserID == userID {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) CountActiveByFile(ctx context.Context, fileID int64) (int64, error) {
	active, _ := r.ListActiveByFile(ctx, fileID)
	return int64(len(active)), nil
}
