// file: internal/services/user_service.go
package services

import (
	"academichub/internal/models"
	"academichub/internal/repositories"
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// userService implements UserService
type userService struct {
	userRepo        repositories.UserRepository
	institutionRepo repositories.InstitutionRepository
	bcryptCost      int
	logger          *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	institutionRepo repositories.InstitutionRepository,
	bcryptCost int,
	logger *zap.Logger,
) UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		userRepo:        userRepo,
		institutionRepo: institutionRepo,
		bcryptCost:      bcryptCost,
		logger:          logger,
	}
}

// CreateUser registers a user inside an institution. The institution's
// active-user quota is enforced here.
func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid create user request", err)
	}
	if !req.Role.Valid() {
		return nil, NewValidationError("invalid user role", nil)
	}

	if existing, err := s.userRepo.GetByEmail(ctx, req.Email); err != nil {
		s.logger.Error("Failed to check user email", zap.Error(err))
		return nil, NewInternalError("failed to create user")
	} else if existing != nil {
		return nil, EntityAlreadyExistsError("user", "email", req.Email)
	}

	institution, err := s.institutionRepo.GetByID(ctx, req.InstitutionID)
	if err != nil {
		return nil, NewInternalError("failed to load institution")
	}
	if institution == nil {
		return nil, EntityNotFoundError("institution", req.InstitutionID)
	}

	// Only active users count against the quota. Deactivated accounts free
	// their seat.
	activeUsers, err := s.userRepo.CountActiveByInstitution(ctx, institution.ID)
	if err != nil {
		return nil, NewInternalError("failed to check user quota")
	}
	if activeUsers >= int64(institution.MaxUsers) {
		return nil, NewBusinessError("institution user limit reached", "USER_LIMIT_REACHED")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, NewInternalError("failed to process password")
	}

	user := &models.User{
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  string(hash),
		Role:          req.Role,
		InstitutionID: institution.ID,
		Active:        true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, NewInternalError("failed to create user")
	}

	user.InstitutionName = institution.Name

	s.logger.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
		zap.Int64("institution_id", user.InstitutionID),
	)

	return user, nil
}

// UpdateUser overwrites a user. Keeping the current email is allowed; an
// empty password keeps the stored hash.
func (s *userService) UpdateUser(ctx context.Context, req *UpdateUserRequest) (*models.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid update user request", err)
	}
	if !req.Role.Valid() {
		return nil, NewValidationError("invalid user role", nil)
	}

	user, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, NewInternalError("failed to load user")
	}
	if user == nil {
		return nil, EntityNotFoundError("user", req.ID)
	}

	if req.Email != user.Email {
		if existing, err := s.userRepo.GetByEmail(ctx, req.Email); err != nil {
			return nil, NewInternalError("failed to check user email")
		} else if existing != nil && existing.ID != req.ID {
			return nil, EntityAlreadyExistsError("user", "email", req.Email)
		}
	}

	institution, err := s.institutionRepo.GetByID(ctx, req.InstitutionID)
	if err != nil {
		return nil, NewInternalError("failed to load institution")
	}
	if institution == nil {
		return nil, EntityNotFoundError("institution", req.InstitutionID)
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Role = req.Role
	user.InstitutionID = institution.ID
	user.Active = req.Active

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
		if err != nil {
			s.logger.Error("Failed to hash password", zap.Error(err))
			return nil, NewInternalError("failed to process password")
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err), zap.Int64("user_id", req.ID))
		return nil, NewInternalError("failed to update user")
	}

	user.InstitutionName = institution.Name

	s.logger.Info("User updated", zap.Int64("user_id", user.ID))
	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, NewValidationError("invalid user ID", nil)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load user")
	}
	if user == nil {
		return nil, EntityNotFoundError("user", id)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, NewValidationError("email is required", nil)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, NewInternalError("failed to load user")
	}
	if user == nil {
		return nil, EntityNotFoundError("user", email)
	}
	return user, nil
}

// ListUsersByInstitution returns every user of an institution
func (s *userService) ListUsersByInstitution(ctx context.Context, institutionID int64) ([]*models.User, error) {
	if institutionID <= 0 {
		return nil, NewValidationError("invalid institution ID", nil)
	}

	users, err := s.userRepo.ListByInstitution(ctx, institutionID)
	if err != nil {
		return nil, NewInternalError("failed to list users")
	}
	return users, nil
}

// ListUsersByRole returns an institution's users holding one role
func (s *userService) ListUsersByRole(ctx context.Context, institutionID int64, role models.UserRole) ([]*models.User, error) {
	if institutionID <= 0 {
		return nil, NewValidationError("invalid institution ID", nil)
	}
	if !role.Valid() {
		return nil, NewValidationError("invalid user role", nil)
	}

	users, err := s.userRepo.ListByRoleAndInstitution(ctx, role, institutionID)
	if err != nil {
		return nil, NewInternalError("failed to list users")
	}
	return users, nil
}
