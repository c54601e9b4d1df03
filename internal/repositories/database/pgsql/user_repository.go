package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/apperrors"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
	portsrepo "github.com/PulseDeskHQ/pulse_desk_app/internal/core/ports/repositories"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/models"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, company_id, name, role, department_id, previous_department_id,
	is_department_head, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// FindUserByID retrieves a user by their ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user by ID %s: %w", userID, err)
	}

	modelUser, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user %s: %w", userID, err)
	}

	domainUser := mapping.ToDomainUser(modelUser)
	return &domainUser, nil
}

// ListActiveUsersByDepartment retrieves active users referencing a department.
func (r *PgxUserRepository) ListActiveUsersByDepartment(ctx context.Context, departmentID string) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE department_id = $1 AND is_active = TRUE
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query users for department %s: %w", departmentID, err)
	}

	modelUsers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}

	users := make([]domain.User, 0, len(modelUsers))
	for _, m := range modelUsers {
		users = append(users, mapping.ToDomainUser(m))
	}
	return users, nil
}

// CountActiveUsersByDepartment counts active users referencing a department.
func (r *PgxUserRepository) CountActiveUsersByDepartment(ctx context.Context, departmentID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE department_id = $1 AND is_active = TRUE;`,
		departmentID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users for department %s: %w", departmentID, err)
	}
	return count, nil
}

// UpdateUserDepartment moves a user to a department (nil clears membership).
func (r *PgxUserRepository) UpdateUserDepartment(ctx context.Context, userID string, departmentID *string, previousDepartmentID *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE users SET
			department_id = $2,
			previous_department_id = $3,
			last_updated_at = $4,
			last_updated_by = $5
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, departmentID, previousDepartmentID, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update department for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetDepartmentHead stamps or clears the department-head flag on a user.
func (r *PgxUserRepository) SetDepartmentHead(ctx context.Context, userID string, isHead bool, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE users SET
			is_department_head = $2,
			last_updated_at = $3,
			last_updated_by = $4
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, isHead, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set department head flag for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
