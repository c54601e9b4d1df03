package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/apperrors"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
	portsrepo "github.com/PulseDeskHQ/pulse_desk_app/internal/core/ports/repositories"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/models"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/utils/mapping"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postColumns = `post_id, company_id, author_id, author_name, title, content, category, tags, attachments,
	lifecycle, status, is_pinned, is_archived, privacy_level, department_id, scheduled_publish_at,
	edit_count, last_edited_by, last_edited_at, pinned_by, pinned_at, archived_by, archived_at,
	published_by, published_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxPostRepository struct {
	BaseRepository
}

// newPgxPostRepository creates a new repository for post data.
func newPgxPostRepository(pool *pgxpool.Pool) portsrepo.PostRepositoryWithTx {
	return &PgxPostRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PostRepositoryWithTx = (*PgxPostRepository)(nil)

// SavePost inserts a new post row.
func (r *PgxPostRepository) SavePost(ctx context.Context, post domain.Post) error {
	modelPost, err := mapping.ToModelPost(post)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO posts (` + postColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29);
	`

	_, err = r.Pool.Exec(ctx, query,
		modelPost.PostID,
		modelPost.CompanyID,
		modelPost.AuthorID,
		modelPost.AuthorName,
		modelPost.Title,
		modelPost.Content,
		modelPost.Category,
		modelPost.Tags,
		modelPost.Attachments,
		modelPost.Lifecycle,
		modelPost.Status,
		modelPost.IsPinned,
		modelPost.IsArchived,
		modelPost.PrivacyLevel,
		modelPost.DepartmentID,
		modelPost.ScheduledPublishAt,
		modelPost.EditCount,
		modelPost.LastEditedBy,
		modelPost.LastEditedAt,
		modelPost.PinnedBy,
		modelPost.PinnedAt,
		modelPost.ArchivedBy,
		modelPost.ArchivedAt,
		modelPost.PublishedBy,
		modelPost.PublishedAt,
		modelPost.CreatedAt,
		modelPost.CreatedBy,
		modelPost.LastUpdatedAt,
		modelPost.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: post with ID %s already exists", apperrors.ErrDuplicate, modelPost.PostID)
		}
		return fmt.Errorf("failed to save post %s: %w", modelPost.PostID, err)
	}
	return nil
}

// UpdatePost rewrites every mutable column of an existing post row.
func (r *PgxPostRepository) UpdatePost(ctx context.Context, post domain.Post) error {
	modelPost, err := mapping.ToModelPost(post)
	if err != nil {
		return err
	}

	query := `
		UPDATE posts SET
			title = $2,
			content = $3,
			category = $4,
			tags = $5,
			attachments = $6,
			lifecycle = $7,
			status = $8,
			is_pinned = $9,
			is_archived = $10,
			privacy_level = $11,
			department_id = $12,
			scheduled_publish_at = $13,
			edit_count = $14,
			last_edited_by = $15,
			last_edited_at = $16,
			pinned_by = $17,
			pinned_at = $18,
			archived_by = $19,
			archived_at = $20,
			published_by = $21,
			published_at = $22,
			last_updated_at = $23,
			last_updated_by = $24
		WHERE post_id = $1;
	`

	tag, err := r.Pool.Exec(ctx, query,
		modelPost.PostID,
		modelPost.Title,
		modelPost.Content,
		modelPost.Category,
		modelPost.Tags,
		modelPost.Attachments,
		modelPost.Lifecycle,
		modelPost.Status,
		modelPost.IsPinned,
		modelPost.IsArchived,
		modelPost.PrivacyLevel,
		modelPost.DepartmentID,
		modelPost.ScheduledPublishAt,
		modelPost.EditCount,
		modelPost.LastEditedBy,
		modelPost.LastEditedAt,
		modelPost.PinnedBy,
		modelPost.PinnedAt,
		modelPost.ArchivedBy,
		modelPost.ArchivedAt,
		modelPost.PublishedBy,
		modelPost.PublishedAt,
		modelPost.LastUpdatedAt,
		modelPost.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update post %s: %w", modelPost.PostID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeletePost removes a post row. Only drafts ever reach this path; their
// history and activity rows cascade at the schema level.
func (r *PgxPostRepository) DeletePost(ctx context.Context, postID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM posts WHERE post_id = $1;`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post %s: %w", postID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPostByID retrieves a post by its ID.
func (r *PgxPostRepository) FindPostByID(ctx context.Context, postID string) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE post_id = $1;`

	rows, err := r.Pool.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query post by ID %s: %w", postID, err)
	}

	modelPost, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Post])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan post %s: %w", postID, err)
	}

	domainPost, err := mapping.ToDomainPost(modelPost)
	if err != nil {
		return nil, err
	}
	return &domainPost, nil
}

// ListPosts retrieves a filtered page of a company's posts using token-based
// pagination over (created_at, post_id) descending.
func (r *PgxPostRepository) ListPosts(ctx context.Context, companyID string, filter portsrepo.PostListFilter, limit int, nextToken *string) ([]domain.Post, *string, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + postColumns + ` FROM posts WHERE company_id = $1`)
	args := []interface{}{companyID}

	if filter.Lifecycle != nil {
		args = append(args, string(*filter.Lifecycle))
		fmt.Fprintf(&sb, " AND lifecycle = $%d", len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		fmt.Fprintf(&sb, " AND category = $%d", len(args))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		fmt.Fprintf(&sb, " AND department_id = $%d", len(args))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		fmt.Fprintf(&sb, " AND author_id = $%d", len(args))
	}
	if !filter.IncludeArchived {
		sb.WriteString(" AND is_archived = FALSE")
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastPostID, decodeErr := pagination.DecodeCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token: %v", apperrors.ErrValidation, decodeErr)
		}
		args = append(args, lastCreatedAt, lastPostID)
		fmt.Fprintf(&sb, " AND (created_at, post_id) < ($%d, $%d)", len(args)-1, len(args))
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	fmt.Fprintf(&sb, " ORDER BY created_at DESC, post_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query posts: %w", err)
	}

	modelPosts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Post])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan posts: %w", err)
	}

	var token *string
	if len(modelPosts) > limit {
		modelPosts = modelPosts[:limit]
		last := modelPosts[len(modelPosts)-1]
		encoded := pagination.EncodeCursor(last.CreatedAt, last.PostID)
		token = &encoded
	}

	domainPosts := make([]domain.Post, 0, len(modelPosts))
	for _, m := range modelPosts {
		d, mapErr := mapping.ToDomainPost(m)
		if mapErr != nil {
			return nil, nil, mapErr
		}
		domainPosts = append(domainPosts, d)
	}
	return domainPosts, token, nil
}

// CountPostsByDepartment aggregates live post counts for one department.
// Resolved counts posts whose status is resolved or closed; pending counts
// the published remainder. Drafts, scheduled and archived posts are excluded.
func (r *PgxPostRepository) CountPostsByDepartment(ctx context.Context, departmentID string) (portsrepo.PostDepartmentCounts, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status IN ('resolved', 'closed')),
			COUNT(*) FILTER (WHERE status NOT IN ('resolved', 'closed'))
		FROM posts
		WHERE department_id = $1
		  AND lifecycle = 'published'
		  AND is_archived = FALSE;
	`
	var counts portsrepo.PostDepartmentCounts
	err := r.Pool.QueryRow(ctx, query, departmentID).Scan(&counts.Total, &counts.Resolved, &counts.Pending)
	if err != nil {
		return portsrepo.PostDepartmentCounts{}, fmt.Errorf("failed to count posts for department %s: %w", departmentID, err)
	}
	return counts, nil
}

// SaveEditHistoryEntry appends one immutable edit audit row.
func (r *PgxPostRepository) SaveEditHistoryEntry(ctx context.Context, entry domain.EditHistoryEntry) error {
	modelEntry, err := mapping.ToModelEditHistoryEntry(entry)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO post_edit_history (entry_id, post_id, editor_id, editor_name, changes, edited_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = r.Pool.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.PostID,
		modelEntry.EditorID,
		modelEntry.EditorName,
		modelEntry.Changes,
		modelEntry.EditedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save edit history entry for post %s: %w", modelEntry.PostID, err)
	}
	return nil
}

// ListEditHistory retrieves a post's edit audit trail, newest first.
func (r *PgxPostRepository) ListEditHistory(ctx context.Context, postID string) ([]domain.EditHistoryEntry, error) {
	query := `
		SELECT entry_id, post_id, editor_id, editor_name, changes, edited_at
		FROM post_edit_history
		WHERE post_id = $1
		ORDER BY edited_at DESC, entry_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query edit history for post %s: %w", postID, err)
	}

	modelEntries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.EditHistoryEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan edit history: %w", err)
	}

	entries := make([]domain.EditHistoryEntry, 0, len(modelEntries))
	for _, m := range modelEntries {
		d, mapErr := mapping.ToDomainEditHistoryEntry(m)
		if mapErr != nil {
			return nil, mapErr
		}
		entries = append(entries, d)
	}
	return entries, nil
}
