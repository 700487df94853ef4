// file: internal/services/discipline_service.go
package services

import (
	"academichub/internal/models"
	"academichub/internal/repositories"
	"context"
	"strings"

	"go.uber.org/zap"
)

// disciplineService implements DisciplineService
type disciplineService struct {
	disciplineRepo  repositories.DisciplineRepository
	institutionRepo repositories.InstitutionRepository
	logger          *zap.Logger
}

// NewDisciplineService creates a new discipline service
func NewDisciplineService(
	disciplineRepo repositories.DisciplineRepository,
	institutionRepo repositories.InstitutionRepository,
	logger *zap.Logger,
) DisciplineService {
	return &disciplineService{
		disciplineRepo:  disciplineRepo,
		institutionRepo: institutionRepo,
		logger:          logger,
	}
}

// CreateDiscipline registers a discipline. The short code, when present,
// must be unique within the owning institution only.
func (s *disciplineService) CreateDiscipline(ctx context.Context, req *CreateDisciplineRequest) (*models.Discipline, error) {
	if err := validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid create discipline request", err)
	}

	institution, err := s.institutionRepo.GetByID(ctx, req.InstitutionID)
	if err != nil {
		return nil, NewInternalError("failed to load institution")
	}
	if institution == nil {
		return nil, EntityNotFoundError("institution", req.InstitutionID)
	}

	if req.Code != nil && *req.Code != "" {
		taken, err := s.disciplineRepo.ExistsByCodeAndInstitution(ctx, *req.Code, institution.ID)
		if err != nil {
			return nil, NewInternalError("failed to check discipline code")
		}
		if taken {
			return nil, EntityAlreadyExistsError("discipline", "code", *req.Code)
		}
	}

	discipline := &models.Discipline{
		Name:          req.Name,
		Code:          req.Code,
		Description:   req.Description,
		InstitutionID: institution.ID,
		Active:        true,
	}

	if err := s.disciplineRepo.Create(ctx, discipline); err != nil {
		s.logger.Error("Failed to create discipline", zap.Error(err), zap.String("name", req.Name))
		return nil, NewInternalError("failed to create discipline")
	}

	discipline.InstitutionName = institution.Name

	s.logger.Info("Discipline created",
		zap.Int64("discipline_id", discipline.ID),
		zap.Int64("institution_id", discipline.InstitutionID),
		zap.String("name", discipline.Name),
	)

	return s.decorate(ctx, discipline)
}

// UpdateDiscipline overwrites a discipline. Keeping the current code is
// allowed. Re-parenting a discipline that already holds files is rejected:
// its files carry the denormalized institution and would go stale.
func (s *disciplineService) UpdateDiscipline(ctx context.Context, req *UpdateDisciplineRequest) (*models.Discipline, error) {
	if err := validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid update discipline request", err)
	}

	discipline, err := s.disciplineRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, NewInternalError("failed to load discipline")
	}
	if discipline == nil {
		return nil, EntityNotFoundError("discipline", req.ID)
	}

	institution, err := s.institutionRepo.GetByID(ctx, req.InstitutionID)
	if err != nil {
		return nil, NewInternalError("failed to load institution")
	}
	if institution == nil {
		return nil, EntityNotFoundError("institution", req.InstitutionID)
	}

	if institution.ID != discipline.InstitutionID {
		files, err := s.disciplineRepo.CountFiles(ctx, discipline.ID)
		if err != nil {
			return nil, NewInternalError("failed to check discipline files")
		}
		if files > 0 {
			return nil, NewBusinessError("discipline with files cannot change institution", "DISCIPLINE_HAS_FILES")
		}
	}

	if req.Code != nil && *req.Code != "" {
		sameCode := discipline.Code != nil && *discipline.Code == *req.Code &&
			discipline.InstitutionID == institution.ID
		if !sameCode {
			taken, err := s.disciplineRepo.ExistsByCodeAndInstitution(ctx, *req.Code, institution.ID)
			if err != nil {
				return nil, NewInternalError("failed to check discipline code")
			}
			if taken {
				return nil, EntityAlreadyExistsError("discipline", "code", *req.Code)
			}
		}
	}

	discipline.Name = req.Name
	discipline.Code = req.Code
	discipline.Description = req.Description
	discipline.InstitutionID = institution.ID
	discipline.Active = req.Active

	if err := s.disciplineRepo.Update(ctx, discipline); err != nil {
		s.logger.Error("Failed to update discipline", zap.Error(err), zap.Int64("discipline_id", req.ID))
		return nil, NewInternalError("failed to update discipline")
	}

	discipline.InstitutionName = institution.Name

	s.logger.Info("Discipline updated", zap.Int64("discipline_id", discipline.ID))

	return s.decorate(ctx, discipline)
}

// GetDisciplineByID retrieves a discipline with freshly computed aggregates
func (s *disciplineService) GetDisciplineByID(ctx context.Context, id int64) (*models.Discipline, error) {
	if id <= 0 {
		return nil, NewValidationError("invalid discipline ID", nil)
	}

	discipline, err := s.disciplineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load discipline")
	}
	if discipline == nil {
		return nil, EntityNotFoundError("discipline", id)
	}

	return s.decorate(ctx, discipline)
}

// ListActiveByInstitution returns an institution's active disciplines
func (s *disciplineService) ListActiveByInstitution(ctx context.Context, institutionID int64) ([]*models.Discipline, error) {
	if institutionID <= 0 {
		return nil, NewValidationError("invalid institution ID", nil)
	}

	disciplines, err := s.disciplineRepo.ListActiveByInstitution(ctx, institutionID)
	if err != nil {
		return nil, NewInternalError("failed to list disciplines")
	}

	for _, discipline := range disciplines {
		if _, err := s.decorate(ctx, discipline); err != nil {
			return nil, err
		}
	}
	return disciplines, nil
}

// SearchByName finds an institution's disciplines by case-insensitive
// substring match.
func (s *disciplineService) SearchByName(ctx context.Context, institutionID int64, name string) ([]*models.Discipline, error) {
	if institutionID <= 0 {
		return nil, NewValidationError("invalid institution ID", nil)
	}
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("search term is required", nil)
	}

	disciplines, err := s.disciplineRepo.SearchByName(ctx, institutionID, name)
	if err != nil {
		return nil, NewInternalError("failed to search disciplines")
	}

	for _, discipline := range disciplines {
		if _, err := s.decorate(ctx, discipline); err != nil {
			return nil, err
		}
	}
	return disciplines, nil
}

// decorate recomputes file count and storage usage for one discipline
func (s *disciplineService) decorate(ctx context.Context, discipline *models.Discipline) (*models.Discipline, error) {
	files, err := s.disciplineRepo.CountFiles(ctx, discipline.ID)
	if err != nil {
		s.logger.Error("Failed to count discipline files", zap.Error(err), zap.Int64("discipline_id", discipline.ID))
		return nil, NewInternalError("failed to compute discipline usage")
	}

	bytes, err := s.disciplineRepo.TotalStorageUsedBytes(ctx, discipline.ID)
	if err != nil {
		s.logger.Error("Failed to sum discipline storage", zap.Error(err), zap.Int64("discipline_id", discipline.ID))
		return nil, NewInternalError("failed to compute discipline usage")
	}

	discipline.TotalFiles = files
	discipline.TotalStorageUsedBytes = bytes
	return discipline, nil
}
