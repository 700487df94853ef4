// file: internal/services/discipline_service_test.go
package services

import (
	"academichub/internal/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type disciplineFixture struct {
	disciplineRepo  *fakeDisciplineRepo
	institutionRepo *fakeInstitutionRepo
	service         DisciplineService
	institution     *models.Institution
	other           *models.Institution
}

func newDisciplineFixture(t *testing.T) *disciplineFixture {
	t.Helper()

	institutionRepo := newFakeInstitutionRepo()
	disciplineRepo := newFakeDisciplineRepo()

	institution := &models.Institution{Name: "State University", Plan: models.PlanFree, MaxUsers: 10, MaxStorageGB: 5, Active: true}
	other := &models.Institution{Name: "Tech Institute", Plan: models.PlanFree, MaxUsers: 10, MaxStorageGB: 5, Active: true}
	require.NoError(t, institutionRepo.Create(context.Background(), institution))
	require.NoError(t, institutionRepo.Create(context.Background(), other))

	return &disciplineFixture{
		disciplineRepo:  disciplineRepo,
		institutionRepo: institutionRepo,
		service:         NewDisciplineService(disciplineRepo, institutionRepo, zap.NewNop()),
		institution:     institution,
		other:           other,
	}
}

func strPtr(s string) *string { return &s }

func TestCreateDiscipline(t *testing.T) {
	f := newDisciplineFixture(t)

	discipline, err := f.service.CreateDiscipline(context.Background(), &CreateDisciplineRequest{
		Name:          "Anatomy",
		Code:          strPtr("ANAT01"),
		InstitutionID: f.institution.ID,
	})

	require.NoError(t, err)
	assert.NotZero(t, discipline.ID)
	assert.True(t, discipline.Active)
	assert.Equal(t, "State University", discipline.InstitutionName)
}

func TestCreateDisciplineCodeUniquePerInstitution(t *testing.T) {
	f := newDisciplineFixture(t)

	_, err := f.service.CreateDiscipline(context.Background(), &CreateDisciplineRequest{
		Name: "Anatomy", Code: strPtr("ANAT01"), InstitutionID: f.institution.ID,
	})
	require.NoError(t, err)

	// Same code inside the same institution conflicts.
	_, err = f.service.CreateDiscipline(context.Background(), &CreateDisciplineRequest{
		Name: "Advanced Anatomy", Code: strPtr("ANAT01"), InstitutionID: f.institution.ID,
	})
	require.Error(t, err)
	assert.True(t, IsConflictError(err))

	// The same code in a different institution is fine.
	_, err = f.service.CreateDiscipline(context.Background(), &CreateDisciplineRequest{
		Name: "Anatomy", Code: strPtr("ANAT01"), InstitutionID: f.other.ID,
	})
	assert.NoError(t, err)
}

func TestUpdateDisciplineKeepsOwnCode(t *testing.T) {
	f := newDisciplineFixture(t)

	discipline, err := f.service.CreateDiscipline(context.Background(), &CreateDisciplineRequest{
		Name: "Anatomy", Code: strPtr("ANAT01"), InstitutionID: f.institution.ID,
	})
	require.NoError(t, err)

	updated, err := f.service.UpdateDiscipline(context.Background(), &UpdateDisciplineRequest{
		ID:            discipline.ID,
		Name:          "Human Anatomy",
		Code:          strPtr("ANAT01"),
		InstitutionID: f.institution.ID,
		Active:        true,
	})

	require.NoError(t, err)
	assert.Equal(t, "Human Anatomy", updated.Name)
}

func TestUpdateDisciplineReparentWithFiles(t *testing.T) {
	f := newDisciplineFixture(t)

	discipline, err := f.service.CreateDiscipline(context.Background(), &CreateDisciplineRequest{
		Name: "Anatomy", InstitutionID: f.institution.ID,
	})
	require.NoError(t, err)

	f.disciplineRepo.fileCounts[discipline.ID] = 3

	_, err = f.service.UpdateDiscipline(context.Background(), &UpdateDisciplineRequest{
		ID:            discipline.ID,
		Name:          "Anatomy",
		InstitutionID: f.other.ID,
		Active:        true,
	})

	require.Error(t, err)
	assert.True(t, IsBusinessError(err))
	assert.Equal(t, "DISCIPLINE_HAS_FILES", GetServiceError(err).Code)
}

func TestUpdateDisciplineReparentWithoutFiles(t *testing.T) {
	f := newDisciplineFixture(t)

	discipline, err := f.service.CreateDiscipline(context.Background(), &CreateDisciplineRequest{
		Name: "Anatomy", InstitutionID: f.institution.ID,
	})
	require.NoError(t, err)

	updated, err := f.service.UpdateDiscipline(context.Background(), &UpdateDisciplineRequest{
		ID:            discipline.ID,
		Name:          "Anatomy",
		InstitutionID: f.other.ID,
		Active:        true,
	})

	require.NoError(t, err)
	assert.Equal(t, f.other.ID, updated.InstitutionID)
	assert.Equal(t, "Tech Institute", updated.InstitutionName)
}

func TestGetDisciplineAggregates(t *testing.T) {
	f := newDisciplineFixture(t)

	discipline, err := f.service.CreateDiscipline(context.Background(), &CreateDisciplineRequest{
		Name: "Anatomy", InstitutionID: f.institution.ID,
	})
	require.NoError(t, err)

	f.disciplineRepo.fileCounts[discipline.ID] = 7
	f.disciplineRepo.storageBytes[discipline.ID] = 4096

	got, err := f.service.GetDisciplineByID(context.Background(), discipline.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.TotalFiles)
	assert.Equal(t, int64(4096), got.TotalStorageUsedBytes)
}

func TestSearchDisciplinesRequiresTerm(t *testing.T) {
	f := newDisciplineFixture(t)

	_, err := f.service.SearchByName(context.Background(), f.institution.ID, "   ")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}
