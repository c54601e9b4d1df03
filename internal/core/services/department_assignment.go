package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/apperrors"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/middleware"
)

// assignUser moves a user to departmentID (nil clears membership) and appends
// one assignment audit record. Callers have already validated the user and
// the target department.
func (s *departmentService) assignUser(ctx context.Context, user *domain.User, departmentID *string, actor domain.Actor, now time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	previous := user.DepartmentID
	if err := s.userRepo.UpdateUserDepartment(ctx, user.UserID, departmentID, previous, actor.UserID, now); err != nil {
		logger.Error("Failed to update user department", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return fmt.Errorf("failed to assign user: %w", err)
	}

	entry := domain.DepartmentAssignmentLog{
		LogID:           uuid.NewString(),
		UserID:          user.UserID,
		UserName:        user.Name,
		OldDepartmentID: previous,
		NewDepartmentID: departmentID,
		ChangedBy:       actor.UserID,
		ChangedAt:       now,
	}
	if err := s.departmentRepo.SaveAssignmentLog(ctx, entry); err != nil {
		// The move has committed; the missing audit record is logged, not fatal.
		logger.Error("Failed to append assignment log entry", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
	}

	user.PreviousDepartmentID = previous
	user.DepartmentID = departmentID
	return nil
}

// loadCompanyUser fetches a user and hides them across company boundaries.
func (s *departmentService) loadCompanyUser(ctx context.Context, userID string, actor domain.Actor) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CompanyID != actor.CompanyID {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

// AssignUserToDepartment reassigns one user and appends one audit log entry.
func (s *departmentService) AssignUserToDepartment(ctx context.Context, userID string, departmentID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := checkElevated(actor); err != nil {
		return err
	}
	dept, err := s.loadCompanyDepartment(ctx, departmentID, actor)
	if err != nil {
		return err
	}
	if !dept.IsActive {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, ErrDepartmentInactive)
	}
	user, err := s.loadCompanyUser(ctx, userID, actor)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return fmt.Errorf("%w: user %s is inactive", apperrors.ErrValidation, userID)
	}

	if err := s.assignUser(ctx, user, &departmentID, actor, time.Now().UTC()); err != nil {
		return err
	}

	s.logActivity(ctx, departmentID, domain.EventDeptAssigned, actor.UserID, map[string]any{"userID": userID})

	logger.Info("User assigned to department", slog.String("user_id", userID), slog.String("department_id", departmentID))
	return nil
}

// BulkAssignUsers reassigns many users best-effort with one result per user.
// Per-user assignment audit records are intentionally not written on this
// path; only the membership itself moves.
func (s *departmentService) BulkAssignUsers(ctx context.Context, userIDs []string, departmentID string, actor domain.Actor) (*domain.BulkResult, error) {
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

	now := time.Now().UTC()
	result := bulkApply(userIDs, func(id string) error {
		user, err := s.loadCompanyUser(ctx, id, actor)
		if err != nil {
			return err
		}
		if !user.IsActive {
			return fmt.Errorf("%w: user %s is inactive", apperrors.ErrValidation, id)
		}
		return s.userRepo.UpdateUserDepartment(ctx, id, &departmentID, user.DepartmentID, actor.UserID, now)
	})

	logger.Info("Bulk user assignment finished", slog.Int("requested", len(userIDs)), slog.Int("succeeded", result.Count), slog.String("department_id", departmentID))
	return result, nil
}

// RemoveUserFromDepartment clears a user's membership, appending one audit log entry.
func (s *departmentService) RemoveUserFromDepartment(ctx context.Context, userID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := checkElevated(actor); err != nil {
		return err
	}
	user, err := s.loadCompanyUser(ctx, userID, actor)
	if err != nil {
		return err
	}
	if user.DepartmentID == nil {
		return fmt.Errorf("%w: user %s has no department", apperrors.ErrValidation, userID)
	}

	if err := s.assignUser(ctx, user, nil, actor, time.Now().UTC()); err != nil {
		return err
	}

	logger.Info("User removed from department", slog.String("user_id", userID))
	return nil
}

// ListAssignmentLogs retrieves a user's assignment audit trail, newest first.
func (s *departmentService) ListAssignmentLogs(ctx context.Context, userID string, actor domain.Actor) ([]domain.DepartmentAssignmentLog, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := checkElevated(actor); err != nil {
		return nil, err
	}
	if _, err := s.loadCompanyUser(ctx, userID, actor); err != nil {
		return nil, err
	}

	logs, err := s.departmentRepo.ListAssignmentLogsByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list assignment logs", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to retrieve assignment logs: %w", err)
	}
	if logs == nil {
		return []domain.DepartmentAssignmentLog{}, nil
	}
	return logs, nil
}
