// file: internal/repositories/institution_repository.go
package repositories

import (
	"academichub/internal/database"
	"academichub/internal/models"
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// institutionRepository implements InstitutionRepository
type institutionRepository struct {
	*BaseRepository
}

// NewInstitutionRepository creates a new institution repository
func NewInstitutionRepository(db *database.Manager, logger *zap.Logger) InstitutionRepository {
	return &institutionRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const institutionColumns = `
	id, name, code, description, plan, max_users, max_storage_gb,
	expires_at, active, created_at, updated_at`

// Create inserts a new institution
func (r *institutionRepository) Create(ctx context.Context, institution *models.Institution) error {
	query := `
		INSERT INTO institutions (
			name, code, description, plan, max_users, max_storage_gb,
			expires_at, active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(
		ctx, query,
		institution.Name, institution.Code, institution.Description,
		institution.Plan, institution.MaxUsers, institution.MaxStorageGB,
		institution.ExpiresAt, institution.Active,
	).Scan(&institution.ID, &institution.CreatedAt, &institution.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create institution: %w", err)
	}

	r.GetLogger().Info("Institution created",
		zap.Int64("institution_id", institution.ID),
		zap.String("name", institution.Name),
	)

	return nil
}

// GetByID retrieves an institution by ID
func (r *institutionRepository) GetByID(ctx context.Context, id int64) (*models.Institution, error) {
	query := `SELECT` + institutionColumns + ` FROM institutions WHERE id = $1`
	return r.scanOne(r.QueryRowContext(ctx, query, id))
}

// GetByName retrieves an institution by its unique name (exact match)
func (r *institutionRepository) GetByName(ctx context.Context, name string) (*models.Institution, error) {
	query := `SELECT` + institutionColumns + ` FROM institutions WHERE name = $1`
	return r.scanOne(r.QueryRowContext(ctx, query, name))
}

// GetByCode retrieves an institution by its code
func (r *institutionRepository) GetByCode(ctx context.Context, code string) (*models.Institution, error) {
	query := `SELECT` + institutionColumns + ` FROM institutions WHERE code = $1`
	return r.scanOne(r.QueryRowContext(ctx, query, code))
}

// Update persists changes to an existing institution
func (r *institutionRepository) Update(ctx context.Context, institution *models.Institution) error {
	query := `
		UPDATE institutions SET
			name = $2, code = $3, description = $4, plan = $5,
			max_users = $6, max_storage_gb = $7, expires_at = $8,
			active = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.QueryRowContext(
		ctx, query,
		institution.ID, institution.Name, institution.Code,
		institution.Description, institution.Plan, institution.MaxUsers,
		institution.MaxStorageGB, institution.ExpiresAt, institution.Active,
	).Scan(&institution.UpdatedAt)

	if err != nil {
		if r.IsNotFound(err) {
			return fmt.Errorf("institution %d not found", institution.ID)
		}
		return fmt.Errorf("failed to update institution: %w", err)
	}

	return nil
}

// Delete removes an institution
func (r *institutionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.ExecContext(ctx, `DELETE FROM institutions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete institution: %w", err)
	}
	return nil
}

// ListActive returns institutions with active = true
func (r *institutionRepository) ListActive(ctx context.Context) ([]*models.Institution, error) {
	query := `SELECT` + institutionColumns + `
		FROM institutions WHERE active = true ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// ListExpired returns institutions whose plan expiration has passed
func (r *institutionRepository) ListExpired(ctx context.Context) ([]*models.Institution, error) {
	query := `SELECT` + institutionColumns + `
		FROM institutions
		WHERE expires_at IS NOT NULL AND expires_at < NOW()
		ORDER BY expires_at ASC`
	return r.list(ctx, query)
}

// ExistsByName checks the global name uniqueness constraint
func (r *institutionRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM institutions WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check institution name: %w", err)
	}
	return exists, nil
}

// CountActive counts institutions with active = true
func (r *institutionRepository) CountActive(ctx context.Context) (int64, error) {
	return r.CountRow(ctx, `SELECT COUNT(*) FROM institutions WHERE active = true`)
}

// TotalStorageUsedBytes sums file sizes across all of the institution's
// disciplines in one pass.
func (r *institutionRepository) TotalStorageUsedBytes(ctx context.Context, institutionID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(f.file_size), 0)
		FROM files f
		JOIN disciplines d ON f.discipline_id = d.id
		WHERE d.institution_id = $1`
	return r.CountRow(ctx, query, institutionID)
}

// scanOne scans a single institution row, mapping no-rows to (nil, nil)
func (r *institutionRepository) scanOne(row *sql.Row) (*models.Institution, error) {
	var institution models.Institution
	err := row.Scan(
		&institution.ID, &institution.Name, &institution.Code,
		&institution.Description, &institution.Plan, &institution.MaxUsers,
		&institution.MaxStorageGB, &institution.ExpiresAt, &institution.Active,
		&institution.CreatedAt, &institution.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get institution: %w", err)
	}
	return &institution, nil
}

func (r *institutionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Institution, error) {
	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list institutions: %w", err)
	}
	defer rows.Close()

	var institutions []*models.Institution
	for rows.Next() {
		var institution models.Institution
		if err := rows.Scan(
			&institution.ID, &institution.Name, &institution.Code,
			&institution.Description, &institution.Plan, &institution.MaxUsers,
			&institution.MaxStorageGB, &institution.ExpiresAt, &institution.Active,
			&institution.CreatedAt, &institution.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan institution: %w", err)
		}
		institutions = append(institutions, &institution)
	}

	return institutions, rows.Err()
}
