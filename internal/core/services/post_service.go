package services

import (
	"context"
	"encoding/json"
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

var (
	ErrNotADraft         = errors.New("post is not a draft")
	ErrNotScheduled      = errors.New("post is not scheduled")
	ErrNotPublished      = errors.New("post is not published")
	ErrScheduleNotFuture = errors.New("scheduled publish time must be in the future")
)

// Names of the fields the edit audit trail diffs over. Fields outside this
// set are applied without history entries.
const (
	fieldTitle    = "title"
	fieldContent  = "content"
	fieldCategory = "category"
	fieldTags     = "tags"
)

// postService drives the post lifecycle state machine, the edit audit trail,
// moderation flags and best-effort bulk actions.
type postService struct {
	postRepo       portsrepo.PostRepositoryFacade
	departmentRepo portsrepo.DepartmentRepositoryFacade
	activityRepo   portsrepo.ActivityLogRepository
}

// NewPostService creates a new PostService.
func NewPostService(pr portsrepo.PostRepositoryFacade, dr portsrepo.DepartmentRepositoryFacade, ar portsrepo.ActivityLogRepository) portssvc.PostSvcFacade {
	return &postService{
		postRepo:       pr,
		departmentRepo: dr,
		activityRepo:   ar,
	}
}

// Ensure postService implements the portssvc.PostSvcFacade interface
var _ portssvc.PostSvcFacade = (*postService)(nil)

// logActivity appends an activity log entry after the primary write has
// committed. Failures are logged and never propagated to the caller.
func (s *postService) logActivity(ctx context.Context, entityID, eventName, actorID string, metadata map[string]any) {
	logger := middleware.GetLoggerFromCtx(ctx)
	entry := domain.ActivityLog{
		ActivityID: uuid.NewString(),
		EntityID:   entityID,
		EntityType: "post",
		EventName:  eventName,
		ActorID:    actorID,
		Metadata:   metadata,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.activityRepo.SaveActivity(ctx, entry); err != nil {
		logger.Error("Failed to write activity log entry", slog.String("event", eventName), slog.String("entity_id", entityID), slog.String("error", err.Error()))
	}
}

// loadCompanyPost fetches a post and hides it from actors of other companies.
func (s *postService) loadCompanyPost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	post, err := s.postRepo.FindPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.CompanyID != actor.CompanyID {
		// Obscure existence across company boundaries
		return nil, apperrors.ErrNotFound
	}
	return post, nil
}

// validatePrivacy enforces the privacy/department pairing on creation paths.
func validatePrivacy(privacyLevel domain.PrivacyLevel, departmentID *string) error {
	if privacyLevel == domain.PrivacyDepartmentOnly && (departmentID == nil || *departmentID == "") {
		return fmt.Errorf("%w: departmentID is required when privacyLevel is department_only", apperrors.ErrValidation)
	}
	return nil
}

// newPostFromRequest builds the common part of a post from a create request.
func newPostFromRequest(req dto.CreatePostRequest, actor domain.Actor, now time.Time) domain.Post {
	return domain.Post{
		PostID:       uuid.NewString(),
		CompanyID:    actor.CompanyID,
		AuthorID:     actor.UserID,
		AuthorName:   actor.DisplayName,
		Title:        req.Title,
		Content:      req.Content,
		Category:     req.Category,
		Tags:         req.Tags,
		Attachments:  dto.ToDomainAttachments(req.Attachments),
		PrivacyLevel: req.PrivacyLevel,
		DepartmentID: req.DepartmentID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
}

// CreatePost creates and immediately publishes a post.
func (s *postService) CreatePost(ctx context.Context, req dto.CreatePostRequest, actor domain.Actor) (*domain.Post, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsComplete() {
		return nil, apperrors.ErrUnauthorized
	}
	if err := validatePrivacy(req.PrivacyLevel, req.DepartmentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := newPostFromRequest(req, actor, now)
	post.Lifecycle = domain.LifecyclePublished
	post.Status = domain.StatusOpen
	post.PublishedBy = &actor.UserID
	post.PublishedAt = &now

	if err := s.postRepo.SavePost(ctx, post); err != nil {
		logger.Error("Failed to save post in repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logActivity(ctx, post.PostID, domain.EventPostCreated, actor.UserID, nil)

	logger.Info("Post created successfully", slog.String("post_id", post.PostID))
	return &post, nil
}

// SaveDraft creates a post in the draft state.
func (s *postService) SaveDraft(ctx context.Context, req dto.CreatePostRequest, actor domain.Actor) (*domain.Post, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsComplete() {
		return nil, apperrors.ErrUnauthorized
	}
	if err := validatePrivacy(req.PrivacyLevel, req.DepartmentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := newPostFromRequest(req, actor, now)
	post.Lifecycle = domain.LifecycleDraft
	post.Status = domain.StatusDraft

	if err := s.postRepo.SavePost(ctx, post); err != nil {
		logger.Error("Failed to save draft in repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	logger.Info("Draft saved successfully", slog.String("post_id", post.PostID))
	return &post, nil
}

// UpdateDraft updates content fields of a draft. Author only; no history entry
// is produced for draft edits.
func (s *postService) UpdateDraft(ctx context.Context, postID string, req dto.EditPostRequest, actor domain.Actor) (*domain.Post, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsComplete() {
		return nil, apperrors.ErrUnauthorized
	}
	post, err := s.loadCompanyPost(ctx, postID, actor)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.UserID {
		logger.Warn("Non-author attempted to update draft", slog.String("post_id", postID))
		return nil, apperrors.ErrForbidden
	}
	if post.Lifecycle != domain.LifecycleDraft {
		return nil, fmt.Errorf("%w: post %s", ErrNotADraft, postID)
	}
	// Status mirrors the lifecycle state until publication; a draft update
	// may only touch content fields.
	if req.Status != nil {
		return nil, fmt.Errorf("%w: a draft's status cannot be set directly", apperrors.ErrValidation)
	}

	applyPostUpdate(post, req.ToPostUpdate())
	post.LastUpdatedAt = time.Now().UTC()
	post.LastUpdatedBy = actor.UserID

	if err := s.postRepo.UpdatePost(ctx, *post); err != nil {
		logger.Error("Failed to update draft in repository", slog.String("error", err.Error()), slog.String("post_id", postID))
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}

	logger.Info("Draft updated successfully", slog.String("post_id", postID))
	return post, nil
}

// DeleteDraft hard-deletes a draft. Drafts are the only posts ever physically removed.
func (s *postService) DeleteDraft(ctx context.Context, postID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsComplete() {
		return apperrors.ErrUnauthorized
	}
	post, err := s.loadCompanyPost(ctx, postID, actor)
	if err != nil {
		return err
	}
	if post.AuthorID != actor.UserID {
		logger.Warn("Non-author attempted to delete draft", slog.String("post_id", postID))
		return apperrors.ErrForbidden
	}
	if post.Lifecycle != domain.LifecycleDraft {
		return fmt.Errorf("%w: post %s", ErrNotADraft, postID)
	}

	if err := s.postRepo.DeletePost(ctx, postID); err != nil {
		logger.Error("Failed to delete draft in repository", slog.String("error", err.Error()), slog.String("post_id", postID))
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	logger.Info("Draft deleted", slog.String("post_id", postID))
	return nil
}

// PublishDraft transitions a draft to published.
func (s *postService) PublishDraft(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsComplete() {
		return nil, apperrors.ErrUnauthorized
	}
	post, err := s.loadCompanyPost(ctx, postID, actor)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.UserID {
		logger.Warn("Non-author attempted to publish draft", slog.String("post_id", postID))
		return nil, apperrors.ErrForbidden
	}
	if post.Lifecycle != domain.LifecycleDraft {
		return nil, fmt.Errorf("%w: post %s", ErrNotADraft, postID)
	}

	now := time.Now().UTC()
	post.Lifecycle = domain.LifecyclePublished
	post.Status = domain.StatusOpen
	post.PublishedBy = &actor.UserID
	post.PublishedAt = &now
	post.LastUpdatedAt = now
	post.LastUpdatedBy = actor.UserID

	if err := s.postRepo.UpdatePost(ctx, *post); err != nil {
		logger.Error("Failed to publish draft in repository", slog.String("error", err.Error()), slog.String("post_id", postID))
		return nil, fmt.Errorf("failed to publish draft: %w", err)
	}

	s.logActivity(ctx, post.PostID, domain.EventPostCreated, actor.UserID, nil)

	logger.Info("Draft published", slog.String("post_id", postID))
	return post, nil
}

// SchedulePost creates a post scheduled for a strictly future publish instant.
func (s *postService) SchedulePost(ctx context.Context, req dto.SchedulePostRequest, actor domain.Actor) (*domain.Post, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsComplete() {
		return nil, apperrors.ErrUnauthorized
	}
	if err := validatePrivacy(req.PrivacyLevel, req.DepartmentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if !req.ScheduledPublishAt.After(now) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrScheduleNotFuture)
	}

	post := newPostFromRequest(req.CreatePostRequest, actor, now)
	post.Lifecycle = domain.LifecycleScheduled
	post.Status = domain.StatusScheduled
	scheduledAt := req.ScheduledPublishAt.UTC()
	post.ScheduledPublishAt = &scheduledAt

	if err := s.postRepo.SavePost(ctx, post); err != nil {
		logger.Error("Failed to save scheduled post in repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to schedule post: %w", err)
	}

	logger.Info("Post scheduled", slog.String("post_id", post.PostID), slog.Time("publish_at", scheduledAt))
	return &post, nil
}

// CancelScheduledPost reverts a scheduled post to draft and clears the scheduling fields.
func (s *postService) CancelScheduledPost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsComplete() {
		return nil, apperrors.ErrUnauthorized
	}
	post, err := s.loadCompanyPost(ctx, postID, actor)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.UserID {
		logger.Warn("Non-author attempted to cancel scheduled post", slog.String("post_id", postID))
		return nil, apperrors.ErrForbidden
	}
	if post.Lifecycle != domain.LifecycleScheduled {
		return nil, fmt.Errorf("%w: post %s", ErrNotScheduled, postID)
	}

	post.Lifecycle = domain.LifecycleDraft
	post.Status = domain.StatusDraft
	post.ScheduledPublishAt = nil
	post.LastUpdatedAt = time.Now().UTC()
	post.LastUpdatedBy = actor.UserID

	if err := s.postRepo.UpdatePost(ctx, *post); err != nil {
		logger.Error("Failed to cancel scheduled post in repository", slog.String("error", err.Error()), slog.String("post_id", postID))
		return nil, fmt.Errorf("failed to cancel scheduled post: %w", err)
	}

	logger.Info("Scheduled post cancelled", slog.String("post_id", postID))
	return post, nil
}

// PublishScheduledPost is the entry point invoked by the external time-based
// trigger once the scheduled instant has elapsed. It is idempotent: a post
// that is already published is returned unchanged and no activity is emitted,
// so a re-triggered scheduler cannot produce duplicates.
func (s *postService) PublishScheduledPost(ctx context.Context, postID string) (*domain.Post, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	post, err := s.postRepo.FindPostByID(ctx, postID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find scheduled post", slog.String("error", err.Error()), slog.String("post_id", postID))
		}
		return nil, err
	}

	if post.Lifecycle == domain.LifecyclePublished {
		logger.Info("Scheduled publish re-triggered on already published post; no-op", slog.String("post_id", postID))
		return post, nil
	}
	if post.Lifecycle != domain.LifecycleScheduled {
		return nil, fmt.Errorf("%w: post %s", ErrNotScheduled, postID)
	}

	// A department-only post without a department is a configuration error the
	// scheduler cannot resolve by retrying.
	if post.PrivacyLevel == domain.PrivacyDepartmentOnly && (post.DepartmentID == nil || *post.DepartmentID == "") {
		logger.Error("Scheduled post has department_only privacy but no department", slog.String("post_id", postID))
		return nil, fmt.Errorf("%w: scheduled post %s has department_only privacy without a department", apperrors.ErrConfiguration, postID)
	}

	// All other fields are preserved verbatim; only the lifecycle transition
	// and publish stamps change.
	now := time.Now().UTC()
	post.Lifecycle = domain.LifecyclePublished
	post.Status = domain.StatusOpen
	post.PublishedBy = &post.AuthorID
	post.PublishedAt = &now
	post.LastUpdatedAt = now
	post.LastUpdatedBy = post.AuthorID

	if err := s.postRepo.UpdatePost(ctx, *post); err != nil {
		logger.Error("Failed to publish scheduled post in repository", slog.String("error", err.Error()), slog.String("post_id", postID))
		return nil, fmt.Errorf("failed to publish scheduled post: %w", err)
	}

	s.logActivity(ctx, post.PostID, domain.EventPostCreated, post.AuthorID, map[string]any{"scheduled": true})

	logger.Info("Scheduled post published", slog.String("post_id", postID))
	return post, nil
}

// GetPostByID retrieves a single post visible to the actor's company.
func (s *postService) GetPostByID(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	post, err := s.loadCompanyPost(ctx, postID, actor)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find post by ID", slog.String("error", err.Error()), slog.String("post_id", postID))
		}
		return nil, err
	}
	logger.Debug("Post found by ID", slog.String("post_id", postID))
	return post, nil
}

// ListPosts retrieves a filtered, token-paginated post listing for the actor's company.
func (s *postService) ListPosts(ctx context.Context, params dto.ListPostsParams, actor domain.Actor) (*dto.ListPostsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	filter := portsrepo.PostListFilter{
		Lifecycle:       params.Lifecycle,
		Category:        params.Category,
		DepartmentID:    params.DepartmentID,
		AuthorID:        params.AuthorID,
		IncludeArchived: params.IncludeArchived,
	}

	posts, nextToken, err := s.postRepo.ListPosts(ctx, actor.CompanyID, filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list posts from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve posts: %w", err)
	}

	postResponses := make([]dto.PostResponse, len(posts))
	for i := range posts {
		postResponses[i] = dto.ToPostResponse(&posts[i])
	}

	logger.Debug("Posts listed successfully", slog.Int("count", len(posts)))
	return &dto.ListPostsResponse{Posts: postResponses, NextToken: nextToken}, nil
}

// EditPost applies an update to a post, appending exactly one history entry
// when any tracked field changed. EditCount and the edit stamps advance on
// every accepted call, even when the tracked diff is empty, because fields
// outside the tracked set still count as an edit.
func (s *postService) EditPost(ctx context.Context, postID string, req dto.EditPostRequest, actor domain.Actor) (*domain.Post, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsComplete() {
		return nil, apperrors.ErrUnauthorized
	}
	post, err := s.loadCompanyPost(ctx, postID, actor)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.UserID && !actor.IsElevated() {
		logger.Warn("Edit rejected: actor is neither author nor elevated", slog.String("post_id", postID))
		return nil, apperrors.ErrForbidden
	}

	update := req.ToPostUpdate()
	changes := trackedDiff(post, update)

	now := time.Now().UTC()
	applyPostUpdate(post, update)
	post.EditCount++
	post.LastEditedBy = &actor.UserID
	post.LastEditedAt = &now
	post.LastUpdatedAt = now
	post.LastUpdatedBy = actor.UserID

	// The post update lands first so a history entry can never describe a
	// change that was not applied.
	if err := s.postRepo.UpdatePost(ctx, *post); err != nil {
		logger.Error("Failed to update post in repository", slog.String("error", err.Error()), slog.String("post_id", postID))
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	if len(changes) > 0 {
		entry := domain.EditHistoryEntry{
			EntryID:    uuid.NewString(),
			PostID:     post.PostID,
			EditorID:   actor.UserID,
			EditorName: actor.DisplayName,
			Changes:    changes,
			EditedAt:   now,
		}
		if err := s.postRepo.SaveEditHistoryEntry(ctx, entry); err != nil {
			logger.Error("Failed to append edit history entry", slog.String("error", err.Error()), slog.String("post_id", postID))
			return nil, fmt.Errorf("failed to record edit history: %w", err)
		}
	}

	logger.Info("Post edited", slog.String("post_id", postID), slog.Int("changed_fields", len(changes)))
	return post, nil
}

// ListEditHistory retrieves the append-only edit audit trail of a post.
func (s *postService) ListEditHistory(ctx context.Context, postID string, actor domain.Actor) ([]domain.EditHistoryEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.loadCompanyPost(ctx, postID, actor); err != nil {
		return nil, err
	}

	entries, err := s.postRepo.ListEditHistory(ctx, postID)
	if err != nil {
		logger.Error("Failed to list edit history", slog.String("error", err.Error()), slog.String("post_id", postID))
		return nil, fmt.Errorf("failed to retrieve edit history: %w", err)
	}
	if entries == nil {
		return []domain.EditHistoryEntry{}, nil
	}
	return entries, nil
}

// trackedDiff computes the field-level diff over the tracked set only.
// Tags are compared by serialized, order-sensitive equality.
func trackedDiff(post *domain.Post, update domain.PostUpdate) map[string]domain.FieldChange {
	changes := make(map[string]domain.FieldChange)
	if update.Title != nil && *update.Title != post.Title {
		changes[fieldTitle] = domain.FieldChange{Old: post.Title, New: *update.Title}
	}
	if update.Content != nil && *update.Content != post.Content {
		changes[fieldContent] = domain.FieldChange{Old: post.Content, New: *update.Content}
	}
	if update.Category != nil && *update.Category != post.Category {
		changes[fieldCategory] = domain.FieldChange{Old: post.Category, New: *update.Category}
	}
	if update.Tags != nil && !equalTags(post.Tags, *update.Tags) {
		changes[fieldTags] = domain.FieldChange{Old: post.Tags, New: *update.Tags}
	}
	return changes
}

// equalTags compares tag slices by their serialized form.
func equalTags(a, b []string) bool {
	aJSON, _ := json.Marshal(a)
	bJSON, _ := json.Marshal(b)
	return string(aJSON) == string(bJSON)
}

// applyPostUpdate applies every provided field of the update to the post,
// whether tracked or not.
func applyPostUpdate(post *domain.Post, update domain.PostUpdate) {
	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Content != nil {
		post.Content = *update.Content
	}
	if update.Category != nil {
		post.Category = *update.Category
	}
	if update.Tags != nil {
		post.Tags = *update.Tags
	}
	if update.Attachments != nil {
		post.Attachments = *update.Attachments
	}
	if update.Status != nil {
		post.Status = *update.Status
	}
}
