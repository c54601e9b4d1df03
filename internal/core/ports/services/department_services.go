package services

import (
	"context"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/dto"
)

// DepartmentRegistrySvc covers department CRUD and derived aggregates.
type DepartmentRegistrySvc interface {
	// CreateDepartment creates a department, enforcing case-insensitive name
	// uniqueness among the company's active departments.
	CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, actor domain.Actor) (*domain.Department, error)

	// UpdateDepartment updates a department, re-validating the name when it changes.
	UpdateDepartment(ctx context.Context, departmentID string, req dto.UpdateDepartmentRequest, actor domain.Actor) (*domain.Department, error)

	// GetDepartmentByID retrieves a department with a freshly derived member count.
	GetDepartmentByID(ctx context.Context, departmentID string, actor domain.Actor) (*domain.Department, error)

	// ListDepartments retrieves the company's departments, each annotated with
	// a freshly derived member count.
	ListDepartments(ctx context.Context, includeInactive bool, actor domain.Actor) ([]domain.Department, error)

	// AssignDepartmentHead makes a user the head of a department, assigning
	// them into the department first if needed.
	AssignDepartmentHead(ctx context.Context, departmentID string, userID string, actor domain.Actor) (*domain.Department, error)

	// GetDepartmentStatistics aggregates live member and post counts.
	GetDepartmentStatistics(ctx context.Context, departmentID string, actor domain.Actor) (*domain.DepartmentStatistics, error)

	// ListDepartmentMembers retrieves the active users of a department.
	ListDepartmentMembers(ctx context.Context, departmentID string, actor domain.Actor) ([]domain.User, error)
}

// DepartmentAssignmentSvc moves users between departments.
type DepartmentAssignmentSvc interface {
	// AssignUserToDepartment reassigns a single user, appending one audit log entry.
	AssignUserToDepartment(ctx context.Context, userID string, departmentID string, actor domain.Actor) error

	// BulkAssignUsers reassigns many users best-effort, one result per user.
	// Unlike single assignment it emits no per-user audit log entries.
	BulkAssignUsers(ctx context.Context, userIDs []string, departmentID string, actor domain.Actor) (*domain.BulkResult, error)

	// RemoveUserFromDepartment clears a user's department membership.
	RemoveUserFromDepartment(ctx context.Context, userID string, actor domain.Actor) error

	// ListAssignmentLogs retrieves a user's assignment audit trail.
	ListAssignmentLogs(ctx context.Context, userID string, actor domain.Actor) ([]domain.DepartmentAssignmentLog, error)
}

// DepartmentDeletionSvc soft-deletes departments. With a reassignment target
// the member moves and the deactivation commit atomically or not at all.
type DepartmentDeletionSvc interface {
	DeleteDepartment(ctx context.Context, departmentID string, reassignToID *string, actor domain.Actor) error
}

// DepartmentSvcFacade combines all department-related service interfaces.
type DepartmentSvcFacade interface {
	DepartmentRegistrySvc
	DepartmentAssignmentSvc
	DepartmentDeletionSvc
}
