// file: internal/repositories/user_repository.go
package repositories

import (
	"academichub/internal/database"
	"academichub/internal/models"
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// userRepository implements UserRepository
type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const userColumns = `
	u.id, u.name, u.email, u.password_hash, u.role, u.institution_id,
	u.active, u.last_login, u.reset_token, u.reset_token_expires,
	u.created_at, u.updated_at, i.name`

const userSelect = `
	SELECT` + userColumns + `
	FROM users u
	JOIN institutions i ON u.institution_id = i.id`

// Create inserts a new user. The password must already be hashed.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (
			name, email, password_hash, role, institution_id, active
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(
		ctx, query,
		user.Name, user.Email, user.PasswordHash,
		user.Role, user.InstitutionID, user.Active,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.GetLogger().Info("User created",
		zap.Int64("user_id", user.ID),
		zap.Int64("institution_id", user.InstitutionID),
	)

	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.scanOne(r.QueryRowContext(ctx, userSelect+` WHERE u.id = $1`, id))
}

// GetByEmail retrieves a user by email (case-sensitive exact match)
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanOne(r.QueryRowContext(ctx, userSelect+` WHERE u.email = $1`, email))
}

// GetByResetToken retrieves a user by its stored password-reset token
func (r *userRepository) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	return r.scanOne(r.QueryRowContext(ctx, userSelect+` WHERE u.reset_token = $1`, token))
}

// Update persists changes to an existing user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			name = $2, email = $3, password_hash = $4, role = $5,
			institution_id = $6, active = $7, last_login = $8,
			reset_token = $9, reset_token_expires = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.QueryRowContext(
		ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
		user.InstitutionID, user.Active, user.LastLogin,
		user.ResetToken, user.ResetTokenExpires,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if r.IsNotFound(err) {
			return fmt.Errorf("user %d not found", user.ID)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// Delete removes a user. Favorites and comments cascade at the schema level.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// ListByInstitution returns all users of one institution
func (r *userRepository) ListByInstitution(ctx context.Context, institutionID int64) ([]*models.User, error) {
	query := userSelect + ` WHERE u.institution_id = $1 ORDER BY u.created_at DESC`
	return r.list(ctx, query, institutionID)
}

// ListActiveByInstitution returns only active users of one institution
func (r *userRepository) ListActiveByInstitution(ctx context.Context, institutionID int64) ([]*models.User, error) {
	query := userSelect + `
		WHERE u.institution_id = $1 AND u.active = true
		ORDER BY u.created_at DESC`
	return r.list(ctx, query, institutionID)
}

// ListByRoleAndInstitution returns active users of one role within an institution
func (r *userRepository) ListByRoleAndInstitution(ctx context.Context, role models.UserRole, institutionID int64) ([]*models.User, error) {
	query := userSelect + `
		WHERE u.institution_id = $1 AND u.role = $2 AND u.active = true
		ORDER BY u.created_at DESC`
	return r.list(ctx, query, institutionID, role)
}

// ExistsByEmail checks the global email uniqueness constraint
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return exists, nil
}

// CountActiveByInstitution counts active users of one institution. The
// predicate matches ListActiveByInstitution exactly: this count feeds the
// user-quota check.
func (r *userRepository) CountActiveByInstitution(ctx context.Context, institutionID int64) (int64, error) {
	return r.CountRow(ctx,
		`SELECT COUNT(*) FROM users WHERE institution_id = $1 AND active = true`,
		institutionID,
	)
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.InstitutionID, &user.Active, &user.LastLogin,
		&user.ResetToken, &user.ResetTokenExpires,
		&user.CreatedAt, &user.UpdatedAt, &user.InstitutionName,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.User, error) {
	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
			&user.InstitutionID, &user.Active, &user.LastLogin,
			&user.ResetToken, &user.ResetTokenExpires,
			&user.CreatedAt, &user.UpdatedAt, &user.InstitutionName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}
