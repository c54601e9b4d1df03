package services

import (
	"context"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/dto"
)

// PostReaderSvc defines read operations over posts.
type PostReaderSvc interface {
	// GetPostByID retrieves a single post visible to the actor's company.
	GetPostByID(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error)

	// ListPosts retrieves a filtered, paginated post listing for the actor's company.
	ListPosts(ctx context.Context, params dto.ListPostsParams, actor domain.Actor) (*dto.ListPostsResponse, error)

	// ListEditHistory retrieves the append-only edit audit trail of a post.
	ListEditHistory(ctx context.Context, postID string, actor domain.Actor) ([]domain.EditHistoryEntry, error)
}

// PostLifecycleSvc owns the draft -> scheduled -> published state machine.
type PostLifecycleSvc interface {
	// CreatePost creates and immediately publishes a post.
	CreatePost(ctx context.Context, req dto.CreatePostRequest, actor domain.Actor) (*domain.Post, error)

	// SaveDraft creates a post in the draft state.
	SaveDraft(ctx context.Context, req dto.CreatePostRequest, actor domain.Actor) (*domain.Post, error)

	// UpdateDraft updates content fields of a draft. Author only.
	UpdateDraft(ctx context.Context, postID string, req dto.EditPostRequest, actor domain.Actor) (*domain.Post, error)

	// DeleteDraft hard-deletes a draft. Author only.
	DeleteDraft(ctx context.Context, postID string, actor domain.Actor) error

	// PublishDraft transitions a draft to published.
	PublishDraft(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error)

	// SchedulePost creates a post scheduled for a strictly future publish instant.
	SchedulePost(ctx context.Context, req dto.SchedulePostRequest, actor domain.Actor) (*domain.Post, error)

	// CancelScheduledPost reverts a scheduled post to draft. Author only.
	CancelScheduledPost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error)

	// PublishScheduledPost is the external-scheduler entry point. It is
	// idempotent: an already published post is returned unchanged.
	PublishScheduledPost(ctx context.Context, postID string) (*domain.Post, error)
}

// PostEditorSvc tracks field-level diffs of accepted edits.
type PostEditorSvc interface {
	// EditPost applies an update to a post, appending one history entry when
	// any tracked field actually changed.
	EditPost(ctx context.Context, postID string, req dto.EditPostRequest, actor domain.Actor) (*domain.Post, error)
}

// PostModerationSvc toggles the orthogonal pinned/archived flags.
type PostModerationSvc interface {
	PinPost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error)
	UnpinPost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error)
	ArchivePost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error)
	UnarchivePost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error)
}

// PostBulkSvc applies best-effort, per-item bulk changes. None of these are
// atomic; one item's failure never rolls back the others.
type PostBulkSvc interface {
	BulkUpdateStatus(ctx context.Context, postIDs []string, status domain.PostStatus, actor domain.Actor) (*domain.BulkResult, error)
	BulkArchive(ctx context.Context, postIDs []string, archived bool, actor domain.Actor) (*domain.BulkResult, error)
	BulkAssignDepartment(ctx context.Context, postIDs []string, departmentID string, actor domain.Actor) (*domain.BulkResult, error)
	BulkDeleteDrafts(ctx context.Context, postIDs []string, actor domain.Actor) (*domain.BulkResult, error)
}

// PostSvcFacade combines all post-related service interfaces.
type PostSvcFacade interface {
	PostReaderSvc
	PostLifecycleSvc
	PostEditorSvc
	PostModerationSvc
	PostBulkSvc
}
