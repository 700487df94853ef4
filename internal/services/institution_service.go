// file: internal/services/institution_service.go
package services

import (
	"academichub/internal/models"
	"academichub/internal/repositories"
	"context"

	"go.uber.org/zap"
)

// institutionService implements InstitutionService
type institutionService struct {
	institutionRepo repositories.InstitutionRepository
	userRepo        repositories.UserRepository
	logger          *zap.Logger
}

// NewInstitutionService creates a new institution service
func NewInstitutionService(
	institutionRepo repositories.InstitutionRepository,
	userRepo repositories.UserRepository,
	logger *zap.Logger,
) InstitutionService {
	return &institutionService{
		institutionRepo: institutionRepo,
		userRepo:        userRepo,
		logger:          logger,
	}
}

// CreateInstitution registers a new tenant. Plan and limits fall back to
// defaults when omitted.
func (s *institutionService) CreateInstitution(ctx context.Context, req *CreateInstitutionRequest) (*models.Institution, error) {
	if err := validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid create institution request", err)
	}

	plan := req.Plan
	if plan == "" {
		plan = models.PlanFree
	}
	if !plan.Valid() {
		return nil, NewValidationError("invalid plan type", nil)
	}

	if existing, err := s.institutionRepo.GetByName(ctx, req.Name); err != nil {
		s.logger.Error("Failed to check institution name", zap.Error(err))
		return nil, NewInternalError("failed to create institution")
	} else if existing != nil {
		return nil, EntityAlreadyExistsError("institution", "name", req.Name)
	}

	if req.Code != nil && *req.Code != "" {
		if existing, err := s.institutionRepo.GetByCode(ctx, *req.Code); err != nil {
			s.logger.Error("Failed to check institution code", zap.Error(err))
			return nil, NewInternalError("failed to create institution")
		} else if existing != nil {
			return nil, EntityAlreadyExistsError("institution", "code", *req.Code)
		}
	}

	institution := &models.Institution{
		Name:         req.Name,
		Code:         req.Code,
		Description:  req.Description,
		Plan:         plan,
		MaxUsers:     models.DefaultMaxUsers,
		MaxStorageGB: models.DefaultMaxStorageGB,
		ExpiresAt:    req.ExpiresAt,
		Active:       true,
	}
	if req.MaxUsers != nil {
		institution.MaxUsers = *req.MaxUsers
	}
	if req.MaxStorageGB != nil {
		institution.MaxStorageGB = *req.MaxStorageGB
	}

	if err := s.institutionRepo.Create(ctx, institution); err != nil {
		s.logger.Error("Failed to create institution", zap.Error(err), zap.String("name", req.Name))
		return nil, NewInternalError("failed to create institution")
	}

	s.logger.Info("Institution created",
		zap.Int64("institution_id", institution.ID),
		zap.String("name", institution.Name),
		zap.String("plan", string(institution.Plan)),
	)

	return s.decorate(ctx, institution)
}

// UpdateInstitution overwrites a tenant. Keeping the current name or code is
// allowed; taking another tenant's is not.
func (s *institutionService) UpdateInstitution(ctx context.Context, req *UpdateInstitutionRequest) (*models.Institution, error) {
	if err := validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid update institution request", err)
	}
	if !req.Plan.Valid() {
		return nil, NewValidationError("invalid plan type", nil)
	}

	institution, err := s.institutionRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, NewInternalError("failed to load institution")
	}
	if institution == nil {
		return nil, EntityNotFoundError("institution", req.ID)
	}

	if req.Name != institution.Name {
		if existing, err := s.institutionRepo.GetByName(ctx, req.Name); err != nil {
			return nil, NewInternalError("failed to check institution name")
		} else if existing != nil && existing.ID != req.ID {
			return nil, EntityAlreadyExistsError("institution", "name", req.Name)
		}
	}

	if req.Code != nil && *req.Code != "" {
		sameCode := institution.Code != nil && *institution.Code == *req.Code
		if !sameCode {
			if existing, err := s.institutionRepo.GetByCode(ctx, *req.Code); err != nil {
				return nil, NewInternalError("failed to check institution code")
			} else if existing != nil && existing.ID != req.ID {
				return nil, EntityAlreadyExistsError("institution", "code", *req.Code)
			}
		}
	}

	institution.Name = req.Name
	institution.Code = req.Code
	institution.Description = req.Description
	institution.Plan = req.Plan
	institution.MaxUsers = req.MaxUsers
	institution.MaxStorageGB = req.MaxStorageGB
	institution.ExpiresAt = req.ExpiresAt
	institution.Active = req.Active

	if err := s.institutionRepo.Update(ctx, institution); err != nil {
		s.logger.Error("Failed to update institution", zap.Error(err), zap.Int64("institution_id", req.ID))
		return nil, NewInternalError("failed to update institution")
	}

	s.logger.Info("Institution updated", zap.Int64("institution_id", institution.ID))

	return s.decorate(ctx, institution)
}

// GetInstitutionByID retrieves a tenant with freshly computed aggregates
func (s *institutionService) GetInstitutionByID(ctx context.Context, id int64) (*models.Institution, error) {
	if id <= 0 {
		return nil, NewValidationError("invalid institution ID", nil)
	}

	institution, err := s.institutionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load institution")
	}
	if institution == nil {
		return nil, EntityNotFoundError("institution", id)
	}

	return s.decorate(ctx, institution)
}

// GetInstitutionByCode retrieves a tenant by its short code
func (s *institutionService) GetInstitutionByCode(ctx context.Context, code string) (*models.Institution, error) {
	if code == "" {
		return nil, NewValidationError("institution code is required", nil)
	}

	institution, err := s.institutionRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, NewInternalError("failed to load institution")
	}
	if institution == nil {
		return nil, EntityNotFoundError("institution", code)
	}

	return s.decorate(ctx, institution)
}

// ListActiveInstitutions returns all active tenants with aggregates
func (s *institutionService) ListActiveInstitutions(ctx context.Context) ([]*models.Institution, error) {
	institutions, err := s.institutionRepo.ListActive(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list institutions")
	}

	for _, institution := range institutions {
		if _, err := s.decorate(ctx, institution); err != nil {
			return nil, err
		}
	}
	return institutions, nil
}

// ListExpiredInstitutions returns tenants whose plan expiration has passed
func (s *institutionService) ListExpiredInstitutions(ctx context.Context) ([]*models.Institution, error) {
	institutions, err := s.institutionRepo.ListExpired(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list expired institutions")
	}

	for _, institution := range institutions {
		if _, err := s.decorate(ctx, institution); err != nil {
			return nil, err
		}
	}
	return institutions, nil
}

// decorate recomputes the derived aggregates. They are never cached or
// stored, every read reflects current usage.
func (s *institutionService) decorate(ctx context.Context, institution *models.Institution) (*models.Institution, error) {
	users, err := s.userRepo.CountActiveByInstitution(ctx, institution.ID)
	if err != nil {
		s.logger.Error("Failed to count institution users", zap.Error(err), zap.Int64("institution_id", institution.ID))
		return nil, NewInternalError("failed to compute institution usage")
	}

	bytes, err := s.institutionRepo.TotalStorageUsedBytes(ctx, institution.ID)
	if err != nil {
		s.logger.Error("Failed to sum institution storage", zap.Error(err), zap.Int64("institution_id", institution.ID))
		return nil, NewInternalError("failed to compute institution usage")
	}

	institution.TotalUsers = users
	institution.TotalStorageUsedGB = models.BytesToGB(bytes)
	return institution, nil
}
