// file: internal/repositories/discipline_repository.go
package repositories

import (
	"academichub/internal/database"
	"academichub/internal/models"
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// disciplineRepository implements DisciplineRepository
type disciplineRepository struct {
	*BaseRepository
}

// NewDisciplineRepository creates a new discipline repository
func NewDisciplineRepository(db *database.Manager, logger *zap.Logger) DisciplineRepository {
	return &disciplineRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const disciplineSelect = `
	SELECT
		d.id, d.name, d.code, d.description, d.institution_id, d.active,
		d.created_at, d.updated_at, i.name
	FROM disciplines d
	JOIN institutions i ON d.institution_id = i.id`

// Create inserts a new discipline
func (r *disciplineRepository) Create(ctx context.Context, discipline *models.Discipline) error {
	query := `
		INSERT INTO disciplines (name, code, description, institution_id, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(
		ctx, query,
		discipline.Name, discipline.Code, discipline.Description,
		discipline.InstitutionID, discipline.Active,
	).Scan(&discipline.ID, &discipline.CreatedAt, &discipline.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create discipline: %w", err)
	}

	r.GetLogger().Info("Discipline created",
		zap.Int64("discipline_id", discipline.ID),
		zap.Int64("institution_id", discipline.InstitutionID),
	)

	return nil
}

// GetByID retrieves a discipline by ID
func (r *disciplineRepository) GetByID(ctx context.Context, id int64) (*models.Discipline, error) {
	return r.scanOne(r.QueryRowContext(ctx, disciplineSelect+` WHERE d.id = $1`, id))
}

// Update persists changes to an existing discipline
func (r *disciplineRepository) Update(ctx context.Context, discipline *models.Discipline) error {
	query := `
		UPDATE disciplines SET
			name = $2, code = $3, description = $4, institution_id = $5,
			active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.QueryRowContext(
		ctx, query,
		discipline.ID, discipline.Name, discipline.Code,
		discipline.Description, discipline.InstitutionID, discipline.Active,
	).Scan(&discipline.UpdatedAt)

	if err != nil {
		if r.IsNotFound(err) {
			return fmt.Errorf("discipline %d not found", discipline.ID)
		}
		return fmt.Errorf("failed to update discipline: %w", err)
	}

	return nil
}

// Delete removes a discipline
func (r *disciplineRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.ExecContext(ctx, `DELETE FROM disciplines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete discipline: %w", err)
	}
	return nil
}

// ListByInstitution returns all disciplines of one institution
func (r *disciplineRepository) ListByInstitution(ctx context.Context, institutionID int64) ([]*models.Discipline, error) {
	query := disciplineSelect + ` WHERE d.institution_id = $1 ORDER BY d.created_at DESC`
	return r.list(ctx, query, institutionID)
}

// ListActiveByInstitution returns active disciplines of one institution
func (r *disciplineRepository) ListActiveByInstitution(ctx context.Context, institutionID int64) ([]*models.Discipline, error) {
	query := disciplineSelect + `
		WHERE d.institution_id = $1 AND d.active = true
		ORDER BY d.created_at DESC`
	return r.list(ctx, query, institutionID)
}

// SearchByName finds disciplines whose name contains the term, case-insensitive
func (r *disciplineRepository) SearchByName(ctx context.Context, institutionID int64, name string) ([]*models.Discipline, error) {
	query := disciplineSelect + `
		WHERE d.institution_id = $1 AND d.name ILIKE '%' || $2 || '%'
		ORDER BY d.name ASC`
	return r.list(ctx, query, institutionID, name)
}

// ExistsByCodeAndInstitution checks the per-tenant code constraint
func (r *disciplineRepository) ExistsByCodeAndInstitution(ctx context.Context, code string, institutionID int64) (bool, error) {
	var exists bool
	err := r.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM disciplines WHERE code = $1 AND institution_id = $2)`,
		code, institutionID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check discipline code: %w", err)
	}
	return exists, nil
}

// CountFiles counts the files owned by one discipline
func (r *disciplineRepository) CountFiles(ctx context.Context, disciplineID int64) (int64, error) {
	return r.CountRow(ctx,
		`SELECT COUNT(*) FROM files WHERE discipline_id = $1`, disciplineID)
}

// TotalStorageUsedBytes sums the sizes of the discipline's files
func (r *disciplineRepository) TotalStorageUsedBytes(ctx context.Context, disciplineID int64) (int64, error) {
	return r.CountRow(ctx,
		`SELECT COALESCE(SUM(file_size), 0) FROM files WHERE discipline_id = $1`,
		disciplineID,
	)
}

func (r *disciplineRepository) scanOne(row *sql.Row) (*models.Discipline, error) {
	var discipline models.Discipline
	err := row.Scan(
		&discipline.ID, &discipline.Name, &discipline.Code,
		&discipline.Description, &discipline.InstitutionID, &discipline.Active,
		&discipline.CreatedAt, &discipline.UpdatedAt, &discipline.InstitutionName,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get discipline: %w", err)
	}
	return &discipline, nil
}

func (r *disciplineRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Discipline, error) {
	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list disciplines: %w", err)
	}
	defer rows.Close()

	var disciplines []*models.Discipline
	for rows.Next() {
		var discipline models.Discipline
		if err := rows.Scan(
			&discipline.ID, &discipline.Name, &discipline.Code,
			&discipline.Description, &discipline.InstitutionID, &discipline.Active,
			&discipline.CreatedAt, &discipline.UpdatedAt, &discipline.InstitutionName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan discipline: %w", err)
		}
		disciplines = append(disciplines, &discipline)
	}

	return disciplines, rows.Err()
}
