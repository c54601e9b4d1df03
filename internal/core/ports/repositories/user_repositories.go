package repositories

import (
	"context"
	"time"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListActiveUsersByDepartment retrieves active users referencing a department.
	ListActiveUsersByDepartment(ctx context.Context, departmentID string) ([]domain.User, error)

	// CountActiveUsersByDepartment counts active users referencing a department.
	// Member counts are always derived this way, never read from storage.
	CountActiveUsersByDepartment(ctx context.Context, departmentID string) (int, error)
}

// UserDepartmentWriter defines the department-membership mutations this core
// performs on users. No other user field is touched here.
type UserDepartmentWriter interface {
	// UpdateUserDepartment moves a user to departmentID (nil clears membership),
	// recording the previous department on the user.
	UpdateUserDepartment(ctx context.Context, userID string, departmentID *string, previousDepartmentID *string, updatedBy string, updatedAt time.Time) error

	// SetDepartmentHead stamps or clears the department-head flag on a user.
	SetDepartmentHead(ctx context.Context, userID string, isHead bool, updatedBy string, updatedAt time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserDepartmentWriter
}
