package repositories

import (
	"context"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
)

// PostListFilter narrows a company-scoped post listing.
type PostListFilter struct {
	Lifecycle       *domain.LifecycleState
	Category        *string
	DepartmentID    *string
	AuthorID        *string
	IncludeArchived bool
}

// PostDepartmentCounts holds live post counts attributed to a department.
type PostDepartmentCounts struct {
	Total    int
	Resolved int
	Pending  int
}

// PostReader defines read operations for post data
type PostReader interface {
	// FindPostByID retrieves a specific post by its ID.
	FindPostByID(ctx context.Context, postID string) (*domain.Post, error)

	// ListPosts retrieves a filtered, token-paginated list of posts for a company.
	ListPosts(ctx context.Context, companyID string, filter PostListFilter, limit int, nextToken *string) ([]domain.Post, *string, error)

	// CountPostsByDepartment computes live post counts for a department.
	CountPostsByDepartment(ctx context.Context, departmentID string) (PostDepartmentCounts, error)
}

// PostWriter defines write operations for post data
type PostWriter interface {
	// SavePost persists a new post.
	SavePost(ctx context.Context, post domain.Post) error

	// UpdatePost overwrites an existing post's mutable fields.
	UpdatePost(ctx context.Context, post domain.Post) error

	// DeletePost removes a post permanently. Only drafts are ever hard-deleted.
	DeletePost(ctx context.Context, postID string) error
}

// EditHistoryManager defines operations on the append-only edit audit trail.
type EditHistoryManager interface {
	// SaveEditHistoryEntry appends one immutable history entry.
	SaveEditHistoryEntry(ctx context.Context, entry domain.EditHistoryEntry) error

	// ListEditHistory retrieves all history entries for a post, newest first.
	ListEditHistory(ctx context.Context, postID string) ([]domain.EditHistoryEntry, error)
}

// PostRepositoryFacade combines all post-related repository interfaces
type PostRepositoryFacade interface {
	PostReader
	PostWriter
	EditHistoryManager
}

// PostRepositoryWithTx extends PostRepositoryFacade with transaction capabilities
type PostRepositoryWithTx interface {
	PostRepositoryFacade
	TransactionManager
}
