package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/apperrors"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
	portsrepo "github.com/PulseDeskHQ/pulse_desk_app/internal/core/ports/repositories"
	portssvc "github.com/PulseDeskHQ/pulse_desk_app/internal/core/ports/services"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/dto"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/middleware"
)

var ErrDepartmentInactive = errors.New("department is inactive")

// departmentService owns the department registry, user assignment and the
// atomic soft-delete-with-reassignment path.
type departmentService struct {
	departmentRepo portsrepo.DepartmentRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
	postRepo       portsrepo.PostRepositoryFacade
	activityRepo   portsrepo.ActivityLogRepository
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(dr portsrepo.DepartmentRepositoryFacade, ur portsrepo.UserRepositoryFacade, pr portsrepo.PostRepositoryFacade, ar portsrepo.ActivityLogRepository) portssvc.DepartmentSvcFacade {
	return &departmentService{
		departmentRepo: dr,
		userRepo:       ur,
		postRepo:       pr,
		activityRepo:   ar,
	}
}

// Ensure departmentService implements the portssvc.DepartmentSvcFacade interface
var _ portssvc.DepartmentSvcFacade = (*departmentService)(nil)

func (s *departmentService) logActivity(ctx context.Context, entityID, eventName, actorID string, metadata map[string]any) {
	logger := middleware.GetLoggerFromCtx(ctx)
	entry := domain.ActivityLog{
		ActivityID: uuid.NewString(),
		EntityID:   entityID,
		EntityType: "department",
		EventName:  eventName,
		ActorID:    actorID,
		Metadata:   metadata,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.activityRepo.SaveActivity(ctx, entry); err != nil {
		logger.Error("Failed to write activity log entry", slog.String("event", eventName), slog.String("entity_id", entityID), slog.String("error", err.Error()))
	}
}

// checkElevated gates every department mutation behind an elevated role.
func checkElevated(actor domain.Actor) error {
	if !actor.IsComplete() {
		return apperrors.ErrUnauthorized
	}
	if !actor.IsElevated() {
		return apperrors.ErrForbidden
	}
	return nil
}

// loadCompanyDepartment fetches a department and hides it across company boundaries.
func (s *departmentService) loadCompanyDepartment(ctx context.Context, departmentID string, actor domain.Actor) (*domain.Department, error) {
	dept, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if dept.CompanyID != actor.CompanyID {
		return nil, apperrors.ErrNotFound
	}
	return dept, nil
}

// checkNameAvailable enforces case-insensitive name uniqueness among the
// company's active departments. Soft-deleted departments release their name.
func (s *departmentService) checkNameAvailable(ctx context.Context, companyID, name, excludeDepartmentID string) error {
	existing, err := s.departmentRepo.FindActiveDepartmentByName(ctx, companyID, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.DepartmentID == excludeDepartmentID {
		return nil
	}
	return fmt.Errorf("%w: a department named %q already exists", apperrors.ErrDuplicate, name)
}

// attachMemberCount derives the live member count onto a department. The count
// is never stored; it is recomputed on every read.
func (s *departmentService) attachMemberCount(ctx context.Context, dept *domain.Department) error {
	count, err := s.userRepo.CountActiveUsersByDepartment(ctx, dept.DepartmentID)
	if err != nil {
		return fmt.Errorf("failed to derive member count: %w", err)
	}
	dept.MemberCount = count
	return nil
}

// CreateDepartment creates a department under the actor's company.
func (s *departmentService) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, actor domain.Actor) (*domain.Department, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := checkElevated(actor); err != nil {
		return nil, err
	}
	if err := s.checkNameAvailable(ctx, actor.CompanyID, req.Name, ""); err != nil {
		return nil, err
	}
	if req.ParentDepartmentID != nil {
		parent, err := s.loadCompanyDepartment(ctx, *req.ParentDepartmentID, actor)
		if err != nil {
			return nil, fmt.Errorf("parent department: %w", err)
		}
		if !parent.IsActive {
			return nil, fmt.Errorf("%w: parent %v", apperrors.ErrValidation, ErrDepartmentInactive)
		}
	}

	now := time.Now().UTC()
	dept := domain.Department{
		DepartmentID:       uuid.NewString(),
		CompanyID:          actor.CompanyID,
		Name:               req.Name,
		Description:        req.Description,
		Icon:               req.Icon,
		Color:              req.Color,
		ParentDepartmentID: req.ParentDepartmentID,
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.departmentRepo.SaveDepartment(ctx, dept); err != nil {
		logger.Error("Failed to save department in repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	s.logActivity(ctx, dept.DepartmentID, domain.EventDeptCreated, actor.UserID, map[string]any{"name": dept.Name})

	logger.Info("Department created", slog.String("department_id", dept.DepartmentID), slog.String("name", dept.Name))
	return &dept, nil
}

// UpdateDepartment updates the mutable fields of a department.
func (s *departmentService) UpdateDepartment(ctx context.Context, departmentID string, req dto.UpdateDepartmentRequest, actor domain.Actor) (*domain.Department, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := checkElevated(actor); err != nil {
		return nil, err
	}
	dept, err := s.loadCompanyDepartment(ctx, departmentID, actor)
	if err != nil {
		return nil, err
	}
	if !dept.IsActive {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, ErrDepartmentInactive)
	}

	if req.Name != nil && *req.Name != dept.Name {
		if err := s.checkNameAvailable(ctx, actor.CompanyID, *req.Name, departmentID); err != nil {
			return nil, err
		}
		dept.Name = *req.Name
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}
	if req.Icon != nil {
		dept.Icon = *req.Icon
	}
	if req.Color != nil {
		dept.Color = *req.Color
	}
	if req.ParentDepartmentID != nil {
		if *req.ParentDepartmentID == departmentID {
			return nil, fmt.Errorf("%w: a department cannot be its own parent", apperrors.ErrValidation)
		}
		parent, err := s.loadCompanyDepartment(ctx, *req.ParentDepartmentID, actor)
		if err != nil {
			return nil, fmt.Errorf("parent department: %w", err)
		}
		if !parent.IsActive {
			return nil, fmt.Errorf("%w: parent %v", apperrors.ErrValidation, ErrDepartmentInactive)
		}
		dept.ParentDepartmentID = req.ParentDepartmentID
	}

	dept.LastUpdatedAt = time.Now().UTC()
	dept.LastUpdatedBy = actor.UserID

	if err := s.departmentRepo.UpdateDepartment(ctx, *dept); err != nil {
		logger.Error("Failed to update department in repository", slog.String("error", err.Error()), slog.String("department_id", departmentID))
		return nil, fmt.Errorf("failed to update department: %w", err)
	}

	if err := s.attachMemberCount(ctx, dept); err != nil {
		return nil, err
	}

	logger.Info("Department updated", slog.String("department_id", departmentID))
	return dept, nil
}

// GetDepartmentByID retrieves a department with a freshly derived member count.
func (s *departmentService) GetDepartmentByID(ctx context.Context, departmentID string, actor domain.Actor) (*domain.Department, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsComplete() {
		return nil, apperrors.ErrUnauthorized
	}
	dept, err := s.loadCompanyDepartment(ctx, departmentID, actor)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find department by ID", slog.String("error", err.Error()), slog.String("department_id", departmentID))
		}
		return nil, err
	}
	if err := s.attachMemberCount(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

// ListDepartments retrieves the company's departments with derived member counts.
func (s *departmentService) ListDepartments(ctx context.Context, includeInactive bool, actor domain.Actor) ([]domain.Department, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsComplete() {
		return nil, apperrors.ErrUnauthorized
	}

	depts, err := s.departmentRepo.ListDepartments(ctx, actor.CompanyID, includeInactive)
	if err != nil {
		logger.Error("Failed to list departments from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve departments: %w", err)
	}
	for i := range depts {
		if err := s.attachMemberCount(ctx, &depts[i]); err != nil {
			return nil, err
		}
	}

	logger.Debug("Departments listed", slog.Int("count", len(depts)))
	return depts, nil
}

// AssignDepartmentHead promotes a user to head of the department, moving them
// into the department first when they are not already a member. Any previous
// head is demoted.
func (s *departmentService) AssignDepartmentHead(ctx context.Context, departmentID string, userID string, actor domain.Actor) (*domain.Department, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := checkElevated(actor); err != nil {
		return nil, err
	}
	dept, err := s.loadCompanyDepartment(ctx, departmentID, actor)
	if err != nil {
		return nil, err
	}
	if !dept.IsActive {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, ErrDepartmentInactive)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CompanyID != actor.CompanyID {
		return nil, apperrors.ErrNotFound
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user %s is inactive", apperrors.ErrValidation, userID)
	}

	now := time.Now().UTC()

	if user.DepartmentID == nil || *user.DepartmentID != departmentID {
		if err := s.assignUser(ctx, user, &departmentID, actor, now); err != nil {
			return nil, err
		}
	}

	if dept.HeadUserID != nil && *dept.HeadUserID != userID {
		if err := s.userRepo.SetDepartmentHead(ctx, *dept.HeadUserID, false, actor.UserID, now); err != nil {
			logger.Error("Failed to demote previous department head", slog.String("error", err.Error()), slog.String("user_id", *dept.HeadUserID))
			return nil, fmt.Errorf("failed to demote previous head: %w", err)
		}
	}
	if err := s.userRepo.SetDepartmentHead(ctx, userID, true, actor.UserID, now); err != nil {
		logger.Error("Failed to promote department head", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to promote head: %w", err)
	}

	dept.HeadUserID = &user.UserID
	dept.HeadUserName = &user.Name
	dept.LastUpdatedAt = now
	dept.LastUpdatedBy = actor.UserID

	if err := s.departmentRepo.UpdateDepartment(ctx, *dept); err != nil {
		logger.Error("Failed to update department head in repository", slog.String("error", err.Error()), slog.String("department_id", departmentID))
		return nil, fmt.Errorf("failed to update department head: %w", err)
	}

	if err := s.attachMemberCount(ctx, dept); err != nil {
		return nil, err
	}

	logger.Info("Department head assigned", slog.String("department_id", departmentID), slog.String("user_id", userID))
	return dept, nil
}

// GetDepartmentStatistics aggregates live member and post counts for a department.
func (s *departmentService) GetDepartmentStatistics(ctx context.Context, departmentID string, actor domain.Actor) (*domain.DepartmentStatistics, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsComplete() {
		return nil, apperrors.ErrUnauthorized
	}
	if _, err := s.loadCompanyDepartment(ctx, departmentID, actor); err != nil {
		return nil, err
	}

	memberCount, err := s.userRepo.CountActiveUsersByDepartment(ctx, departmentID)
	if err != nil {
		logger.Error("Failed to count department members", slog.String("error", err.Error()), slog.String("department_id", departmentID))
		return nil, fmt.Errorf("failed to derive member count: %w", err)
	}
	postCounts, err := s.postRepo.CountPostsByDepartment(ctx, departmentID)
	if err != nil {
		logger.Error("Failed to count department posts", slog.String("error", err.Error()), slog.String("department_id", departmentID))
		return nil, fmt.Errorf("failed to derive post counts: %w", err)
	}

	return &domain.DepartmentStatistics{
		DepartmentID:  departmentID,
		MemberCount:   memberCount,
		PostCount:     postCounts.Total,
		ResolvedPosts: postCounts.Resolved,
		PendingPosts:  postCounts.Pending,
	}, nil
}

// ListDepartmentMembers retrieves the active users of a department.
func (s *departmentService) ListDepartmentMembers(ctx context.Context, departmentID string, actor domain.Actor) ([]domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsComplete() {
		return nil, apperrors.ErrUnauthorized
	}
	if _, err := s.loadCompanyDepartment(ctx, departmentID, actor); err != nil {
		return nil, err
	}

	members, err := s.userRepo.ListActiveUsersByDepartment(ctx, departmentID)
	if err != nil {
		logger.Error("Failed to list department members", slog.String("error", err.Error()), slog.String("department_id", departmentID))
		return nil, fmt.Errorf("failed to list department members: %w", err)
	}
	if members == nil {
		members = []domain.User{}
	}
	return members, nil
}

// DeleteDepartment soft-deletes a department. When reassignToID is set, every
// active member moves to the target in the same transaction as the
// deactivation; any failure leaves both the department and its members
// untouched. Without a target, members keep a dangling reference that readers
// treat as unassigned.
func (s *departmentService) DeleteDepartment(ctx context.Context, departmentID string, reassignToID *string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := checkElevated(actor); err != nil {
		return err
	}
	dept, err := s.loadCompanyDepartment(ctx, departmentID, actor)
	if err != nil {
		return err
	}
	if !dept.IsActive {
		return fmt.Errorf("%w: department %s is already deleted", apperrors.ErrConflict, departmentID)
	}

	if reassignToID != nil {
		if *reassignToID == departmentID {
			return fmt.Errorf("%w: cannot reassign members to the department being deleted", apperrors.ErrValidation)
		}
		target, err := s.loadCompanyDepartment(ctx, *reassignToID, actor)
		if err != nil {
			return fmt.Errorf("reassignment target: %w", err)
		}
		if !target.IsActive {
			return fmt.Errorf("%w: reassignment target %v", apperrors.ErrValidation, ErrDepartmentInactive)
		}
	}

	now := time.Now().UTC()
	if err := s.departmentRepo.SoftDeleteDepartment(ctx, departmentID, reassignToID, actor.UserID, now); err != nil {
		logger.Error("Failed to soft delete department", slog.String("error", err.Error()), slog.String("department_id", departmentID))
		return fmt.Errorf("failed to delete department: %w", err)
	}

	metadata := map[string]any{"name": dept.Name}
	if reassignToID != nil {
		metadata["reassignedTo"] = *reassignToID
	}
	s.logActivity(ctx, departmentID, domain.EventDeptDeleted, actor.UserID, metadata)

	logger.Info("Department deleted", slog.String("department_id", departmentID))
	return nil
}
