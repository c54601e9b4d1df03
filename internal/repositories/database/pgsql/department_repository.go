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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const departmentColumns = `department_id, company_id, name, description, icon, color, parent_department_id,
	head_user_id, head_user_name, is_active, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxDepartmentRepository struct {
	BaseRepository
}

// newPgxDepartmentRepository creates a new repository for department data.
func newPgxDepartmentRepository(pool *pgxpool.Pool) portsrepo.DepartmentRepositoryWithTx {
	return &PgxDepartmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.DepartmentRepositoryWithTx = (*PgxDepartmentRepository)(nil)

// SaveDepartment inserts a new department row.
func (r *PgxDepartmentRepository) SaveDepartment(ctx context.Context, department domain.Department) error {
	modelDept := mapping.ToModelDepartment(department)

	query := `
		INSERT INTO departments (` + departmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelDept.DepartmentID,
		modelDept.CompanyID,
		modelDept.Name,
		modelDept.Description,
		modelDept.Icon,
		modelDept.Color,
		modelDept.ParentDepartmentID,
		modelDept.HeadUserID,
		modelDept.HeadUserName,
		modelDept.IsActive,
		modelDept.DeletedAt,
		modelDept.CreatedAt,
		modelDept.CreatedBy,
		modelDept.LastUpdatedAt,
		modelDept.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: department named %s already exists", apperrors.ErrDuplicate, modelDept.Name)
		}
		return fmt.Errorf("failed to save department %s: %w", modelDept.DepartmentID, err)
	}
	return nil
}

// UpdateDepartment updates an existing department's details.
func (r *PgxDepartmentRepository) UpdateDepartment(ctx context.Context, department domain.Department) error {
	modelDept := mapping.ToModelDepartment(department)

	query := `
		UPDATE departments SET
			name = $2,
			description = $3,
			icon = $4,
			color = $5,
			parent_department_id = $6,
			head_user_id = $7,
			head_user_name = $8,
			last_updated_at = $9,
			last_updated_by = $10
		WHERE department_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelDept.DepartmentID,
		modelDept.Name,
		modelDept.Description,
		modelDept.Icon,
		modelDept.Color,
		modelDept.ParentDepartmentID,
		modelDept.HeadUserID,
		modelDept.HeadUserName,
		modelDept.LastUpdatedAt,
		modelDept.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: department named %s already exists", apperrors.ErrDuplicate, modelDept.Name)
		}
		return fmt.Errorf("failed to update department %s: %w", modelDept.DepartmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindDepartmentByID retrieves a department by its ID.
func (r *PgxDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE department_id = $1;`

	rows, err := r.Pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query department by ID %s: %w", departmentID, err)
	}

	modelDept, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Department])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan department %s: %w", departmentID, err)
	}

	domainDept := mapping.ToDomainDepartment(modelDept)
	return &domainDept, nil
}

// ListDepartments retrieves a company's departments ordered by name.
func (r *PgxDepartmentRepository) ListDepartments(ctx context.Context, companyID string, includeInactive bool) ([]domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE company_id = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}

	modelDepts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Department])
	if err != nil {
		return nil, fmt.Errorf("failed to scan departments: %w", err)
	}

	departments := make([]domain.Department, 0, len(modelDepts))
	for _, m := range modelDepts {
		departments = append(departments, mapping.ToDomainDepartment(m))
	}
	return departments, nil
}

// FindActiveDepartmentByName retrieves the active department with the given
// name in a company. The match is case-insensitive.
func (r *PgxDepartmentRepository) FindActiveDepartmentByName(ctx context.Context, companyID string, name string) (*domain.Department, error) {
	query := `
		SELECT ` + departmentColumns + `
		FROM departments
		WHERE company_id = $1 AND lower(name) = lower($2) AND is_active = TRUE;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query department by name %s: %w", name, err)
	}

	modelDept, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Department])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan department %s: %w", name, err)
	}

	domainDept := mapping.ToDomainDepartment(modelDept)
	return &domainDept, nil
}

// SoftDeleteDepartment deactivates a department and, when reassignToID is set,
// moves every active member to the target inside one transaction. Either both
// writes commit or neither does.
func (r *PgxDepartmentRepository) SoftDeleteDepartment(ctx context.Context, departmentID string, reassignToID *string, deletedBy string, deletedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	if reassignToID != nil {
		reassignQuery := `
			UPDATE users SET
				previous_department_id = department_id,
				department_id = $1,
				last_updated_at = $2,
				last_updated_by = $3
			WHERE department_id = $4 AND is_active = TRUE;
		`
		if _, err := tx.Exec(ctx, reassignQuery, *reassignToID, deletedAt, deletedBy, departmentID); err != nil {
			return fmt.Errorf("failed to reassign members of department %s: %w", departmentID, err)
		}
	}

	deleteQuery := `
		UPDATE departments SET
			is_active = FALSE,
			deleted_at = $2,
			last_updated_at = $2,
			last_updated_by = $3
		WHERE department_id = $1 AND is_active = TRUE;
	`
	tag, err := tx.Exec(ctx, deleteQuery, departmentID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to soft delete department %s: %w", departmentID, err)
	}
	if tag.RowsAffected() == 0 {
		// Already deleted or missing; the rollback undoes any reassignment.
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// SaveAssignmentLog appends one immutable assignment audit row.
func (r *PgxDepartmentRepository) SaveAssignmentLog(ctx context.Context, entry domain.DepartmentAssignmentLog) error {
	modelEntry := mapping.ToModelAssignmentLog(entry)

	query := `
		INSERT INTO department_assignment_logs (log_id, user_id, user_name, old_department_id, new_department_id, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelEntry.LogID,
		modelEntry.UserID,
		modelEntry.UserName,
		modelEntry.OldDepartmentID,
		modelEntry.NewDepartmentID,
		modelEntry.ChangedBy,
		modelEntry.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save assignment log for user %s: %w", modelEntry.UserID, err)
	}
	return nil
}

// ListAssignmentLogsByUser retrieves a user's assignment records, newest first.
func (r *PgxDepartmentRepository) ListAssignmentLogsByUser(ctx context.Context, userID string) ([]domain.DepartmentAssignmentLog, error) {
	query := `
		SELECT log_id, user_id, user_name, old_department_id, new_department_id, changed_by, changed_at
		FROM department_assignment_logs
		WHERE user_id = $1
		ORDER BY changed_at DESC, log_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment logs for user %s: %w", userID, err)
	}

	modelLogs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.DepartmentAssignmentLog])
	if err != nil {
		return nil, fmt.Errorf("failed to scan assignment logs: %w", err)
	}

	logs := make([]domain.DepartmentAssignmentLog, 0, len(modelLogs))
	for _, m := range modelLogs {
		logs = append(logs, mapping.ToDomainAssignmentLog(m))
	}
	return logs, nil
}
