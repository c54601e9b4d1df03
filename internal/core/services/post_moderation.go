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

// loadPinnablePost performs the shared checks of the pin calls: complete
// actor, elevated role, company visibility and published lifecycle. Draft and
// scheduled posts carry no moderation flags.
func (s *postService) loadPinnablePost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	if !actor.IsComplete() {
		return nil, apperrors.ErrUnauthorized
	}
	if !actor.IsElevated() {
		return nil, apperrors.ErrForbidden
	}
	post, err := s.loadCompanyPost(ctx, postID, actor)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() {
		return nil, fmt.Errorf("%w: %v: post %s", apperrors.ErrValidation, ErrNotPublished, postID)
	}
	return post, nil
}

// loadArchivablePost is the archive-side counterpart: authors may archive
// their own published posts, elevated roles anyone's.
func (s *postService) loadArchivablePost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	if !actor.IsComplete() {
		return nil, apperrors.ErrUnauthorized
	}
	post, err := s.loadCompanyPost(ctx, postID, actor)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.UserID && !actor.IsElevated() {
		return nil, apperrors.ErrForbidden
	}
	if !post.IsPublished() {
		return nil, fmt.Errorf("%w: %v: post %s", apperrors.ErrValidation, ErrNotPublished, postID)
	}
	return post, nil
}

// PinPost sets the pinned flag on a published post. Pinning an already
// pinned post refreshes the pin stamps.
func (s *postService) PinPost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	post, err := s.loadPinnablePost(ctx, postID, actor)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post.Flags.Pinned = true
	post.PinnedBy = &actor.UserID
	post.PinnedAt = &now
	post.LastUpdatedAt = now
	post.LastUpdatedBy = actor.UserID

	if err := s.postRepo.UpdatePost(ctx, *post); err != nil {
		logger.Error("Failed to pin post in repository", slog.String("error", err.Error()), slog.String("post_id", postID))
		return nil, fmt.Errorf("failed to pin post: %w", err)
	}

	s.logActivity(ctx, post.PostID, domain.EventPostPinned, actor.UserID, nil)

	logger.Info("Post pinned", slog.String("post_id", postID))
	return post, nil
}

// UnpinPost clears the pinned flag and its stamps. Unpinning an unpinned
// post is a no-op write.
func (s *postService) UnpinPost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	post, err := s.loadPinnablePost(ctx, postID, actor)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post.Flags.Pinned = false
	post.PinnedBy = nil
	post.PinnedAt = nil
	post.LastUpdatedAt = now
	post.LastUpdatedBy = actor.UserID

	if err := s.postRepo.UpdatePost(ctx, *post); err != nil {
		logger.Error("Failed to unpin post in repository", slog.String("error", err.Error()), slog.String("post_id", postID))
		return nil, fmt.Errorf("failed to unpin post: %w", err)
	}

	s.logActivity(ctx, post.PostID, domain.EventPostUnpinned, actor.UserID, nil)

	logger.Info("Post unpinned", slog.String("post_id", postID))
	return post, nil
}

// ArchivePost sets the archived flag. The post keeps its lifecycle state and
// status; archived posts are merely excluded from default listings.
func (s *postService) ArchivePost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	post, err := s.loadArchivablePost(ctx, postID, actor)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post.Flags.Archived = true
	post.ArchivedBy = &actor.UserID
	post.ArchivedAt = &now
	post.LastUpdatedAt = now
	post.LastUpdatedBy = actor.UserID

	if err := s.postRepo.UpdatePost(ctx, *post); err != nil {
		logger.Error("Failed to archive post in repository", slog.String("error", err.Error()), slog.String("post_id", postID))
		return nil, fmt.Errorf("failed to archive post: %w", err)
	}

	s.logActivity(ctx, post.PostID, domain.EventPostArchived, actor.UserID, nil)

	logger.Info("Post archived", slog.String("post_id", postID))
	return post, nil
}

// UnarchivePost clears the archived flag and its stamps.
func (s *postService) UnarchivePost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	post, err := s.loadArchivablePost(ctx, postID, actor)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post.Flags.Archived = false
	post.ArchivedBy = nil
	post.ArchivedAt = nil
	post.LastUpdatedAt = now
	post.LastUpdatedBy = actor.UserID

	if err := s.postRepo.UpdatePost(ctx, *post); err != nil {
		logger.Error("Failed to unarchive post in repository", slog.String("error", err.Error()), slog.String("post_id", postID))
		return nil, fmt.Errorf("failed to unarchive post: %w", err)
	}

	s.logActivity(ctx, post.PostID, domain.EventPostUnarchived, actor.UserID, nil)

	logger.Info("Post unarchived", slog.String("post_id", postID))
	return post, nil
}
