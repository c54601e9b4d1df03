package repositories

import (
	"context"
	"time"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
)

// DepartmentReader defines read operations for department data
type DepartmentReader interface {
	// FindDepartmentByID retrieves a specific department by its ID.
	FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)

	// ListDepartments retrieves a company's departments. Inactive departments
	// are excluded unless includeInactive is set.
	ListDepartments(ctx context.Context, companyID string, includeInactive bool) ([]domain.Department, error)

	// FindActiveDepartmentByName retrieves the active department with the given
	// name (case-insensitive) in a company, or ErrNotFound.
	FindActiveDepartmentByName(ctx context.Context, companyID string, name string) (*domain.Department, error)
}

// DepartmentWriter defines write operations for department data
type DepartmentWriter interface {
	// SaveDepartment persists a new department.
	SaveDepartment(ctx context.Context, department domain.Department) error

	// UpdateDepartment updates an existing department's details.
	UpdateDepartment(ctx context.Context, department domain.Department) error
}

// DepartmentDeleter owns the one truly atomic operation of the core: the soft
// delete commits together with every member reassignment or not at all.
type DepartmentDeleter interface {
	// SoftDeleteDepartment deactivates the department and, when reassignToID is
	// non-nil, moves every active member to the target department in the same
	// transaction. On any failure nothing is changed.
	SoftDeleteDepartment(ctx context.Context, departmentID string, reassignToID *string, deletedBy string, deletedAt time.Time) error
}

// AssignmentLogManager defines operations on the append-only assignment audit trail.
type AssignmentLogManager interface {
	// SaveAssignmentLog appends one immutable assignment record.
	SaveAssignmentLog(ctx context.Context, entry domain.DepartmentAssignmentLog) error

	// ListAssignmentLogsByUser retrieves a user's assignment records, newest first.
	ListAssignmentLogsByUser(ctx context.Context, userID string) ([]domain.DepartmentAssignmentLog, error)
}

// DepartmentRepositoryFacade combines all department-related repository interfaces
type DepartmentRepositoryFacade interface {
	DepartmentReader
	DepartmentWriter
	DepartmentDeleter
	AssignmentLogManager
}

// DepartmentRepositoryWithTx extends DepartmentRepositoryFacade with transaction capabilities
type DepartmentRepositoryWithTx interface {
	DepartmentRepositoryFacade
	TransactionManager
}
