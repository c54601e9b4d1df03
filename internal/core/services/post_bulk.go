package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/apperrors"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/middleware"
)

// Bulk post operations are best-effort: each post is processed independently
// and a failure on one never rolls back or stops the others. The result
// reports the success count plus a per-item outcome in input order.

// bulkApply runs fn over every post ID and collects per-item results.
func bulkApply(ids []string, fn func(id string) error) *domain.BulkResult {
	result := &domain.BulkResult{Results: make([]domain.BulkItemResult, 0, len(ids))}
	for _, id := range ids {
		item := domain.BulkItemResult{ID: id}
		if err := fn(id); err != nil {
			item.Error = err.Error()
		} else {
			item.Success = true
			result.Count++
		}
		result.Results = append(result.Results, item)
	}
	return result
}

// checkBulkActor performs the shared authorization of all bulk post actions.
func checkBulkActor(actor domain.Actor) error {
	if !actor.IsComplete() {
		return apperrors.ErrUnauthorized
	}
	if !actor.IsElevated() {
		return apperrors.ErrForbidden
	}
	return nil
}

// BulkUpdateStatus sets the domain status on a set of published posts.
func (s *postService) BulkUpdateStatus(ctx context.Context, postIDs []string, status domain.PostStatus, actor domain.Actor) (*domain.BulkResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := checkBulkActor(actor); err != nil {
		return nil, err
	}
	switch status {
	case domain.StatusOpen, domain.StatusResolved, domain.StatusClosed:
	default:
		return nil, fmt.Errorf("%w: status %q is not assignable in bulk", apperrors.ErrValidation, status)
	}

	result := bulkApply(postIDs, func(id string) error {
		post, err := s.loadCompanyPost(ctx, id, actor)
		if err != nil {
			return err
		}
		if !post.IsPublished() {
			return fmt.Errorf("%w: post %s", ErrNotPublished, id)
		}
		post.Status = status
		post.LastUpdatedAt = time.Now().UTC()
		post.LastUpdatedBy = actor.UserID
		return s.postRepo.UpdatePost(ctx, *post)
	})

	logger.Info("Bulk status update finished", slog.Int("requested", len(postIDs)), slog.Int("succeeded", result.Count), slog.String("status", string(status)))
	return result, nil
}

// BulkArchive sets or clears the archived flag on a set of published posts.
func (s *postService) BulkArchive(ctx context.Context, postIDs []string, archived bool, actor domain.Actor) (*domain.BulkResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := checkBulkActor(actor); err != nil {
		return nil, err
	}

	result := bulkApply(postIDs, func(id string) error {
		post, err := s.loadCompanyPost(ctx, id, actor)
		if err != nil {
			return err
		}
		if !post.IsPublished() {
			return fmt.Errorf("%w: post %s", ErrNotPublished, id)
		}
		now := time.Now().UTC()
		post.Flags.Archived = archived
		if archived {
			post.ArchivedBy = &actor.UserID
			post.ArchivedAt = &now
		} else {
			post.ArchivedBy = nil
			post.ArchivedAt = nil
		}
		post.LastUpdatedAt = now
		post.LastUpdatedBy = actor.UserID
		if err := s.postRepo.UpdatePost(ctx, *post); err != nil {
			return err
		}
		event := domain.EventPostArchived
		if !archived {
			event = domain.EventPostUnarchived
		}
		s.logActivity(ctx, id, event, actor.UserID, map[string]any{"bulk": true})
		return nil
	})

	logger.Info("Bulk archive finished", slog.Int("requested", len(postIDs)), slog.Int("succeeded", result.Count), slog.Bool("archived", archived))
	return result, nil
}

// BulkAssignDepartment moves a set of posts to a department. The target
// department is validated once up front; a missing or inactive target fails
// the whole call rather than every item.
func (s *postService) BulkAssignDepartment(ctx context.Context, postIDs []string, departmentID string, actor domain.Actor) (*domain.BulkResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := checkBulkActor(actor); err != nil {
		return nil, err
	}

	dept, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if dept.CompanyID != actor.CompanyID {
		return nil, apperrors.ErrNotFound
	}
	if !dept.IsActive {
		return nil, fmt.Errorf("%w: department %s is inactive", apperrors.ErrValidation, departmentID)
	}

	result := bulkApply(postIDs, func(id string) error {
		post, err := s.loadCompanyPost(ctx, id, actor)
		if err != nil {
			return err
		}
		post.DepartmentID = &departmentID
		post.LastUpdatedAt = time.Now().UTC()
		post.LastUpdatedBy = actor.UserID
		if err := s.postRepo.UpdatePost(ctx, *post); err != nil {
			return err
		}
		s.logActivity(ctx, id, domain.EventDeptAssigned, actor.UserID, map[string]any{"departmentID": departmentID, "bulk": true})
		return nil
	})

	logger.Info("Bulk department assignment finished", slog.Int("requested", len(postIDs)), slog.Int("succeeded", result.Count), slog.String("department_id", departmentID))
	return result, nil
}

// BulkDeleteDrafts hard-deletes a set of the actor's own drafts. Unlike the
// other bulk actions this one is available to every actor, but only for
// drafts they authored.
func (s *postService) BulkDeleteDrafts(ctx context.Context, postIDs []string, actor domain.Actor) (*domain.BulkResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsComplete() {
		return nil, apperrors.ErrUnauthorized
	}

	result := bulkApply(postIDs, func(id string) error {
		post, err := s.loadCompanyPost(ctx, id, actor)
		if err != nil {
			return err
		}
		if post.AuthorID != actor.UserID {
			return apperrors.ErrForbidden
		}
		if post.Lifecycle != domain.LifecycleDraft {
			return fmt.Errorf("%w: post %s", ErrNotADraft, id)
		}
		return s.postRepo.DeletePost(ctx, id)
	})

	logger.Info("Bulk draft deletion finished", slog.Int("requested", len(postIDs)), slog.Int("succeeded", result.Count))
	return result, nil
}
