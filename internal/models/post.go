package models

import "time"

// Post is the storage representation of a post row. Attachments are stored as
// a JSONB document; tags as a text array.
type Post struct {
	PostID     string `db:"post_id"`
	CompanyID  string `db:"company_id"`
	AuthorID   string `db:"author_id"`
	AuthorName string `db:"author_name"`

	Title       string   `db:"title"`
	Content     string   `db:"content"`
	Category    string   `db:"category"`
	Tags        []string `db:"tags"`
	Attachments []byte   `db:"attachments"` // JSONB

	Lifecycle  string `db:"lifecycle"`
	Status     string `db:"status"`
	IsPinned   bool   `db:"is_pinned"`
	IsArchived bool   `db:"is_archived"`

	PrivacyLevel string  `db:"privacy_level"`
	DepartmentID *string `db:"department_id"`

	ScheduledPublishAt *time.Time `db:"scheduled_publish_at"`

	EditCount    int        `db:"edit_count"`
	LastEditedBy *string    `db:"last_edited_by"`
	LastEditedAt *time.Time `db:"last_edited_at"`
	PinnedBy     *string    `db:"pinned_by"`
	PinnedAt     *time.Time `db:"pinned_at"`
	ArchivedBy   *string    `db:"archived_by"`
	ArchivedAt   *time.Time `db:"archived_at"`
	PublishedBy  *string    `db:"published_by"`
	PublishedAt  *time.Time `db:"published_at"`

	AuditFields
}

// EditHistoryEntry is the storage representation of one edit audit row.
// Changes is a JSONB map of field name to {old,new}.
type EditHistoryEntry struct {
	EntryID    string    `db:"entry_id"`
	PostID     string    `db:"post_id"`
	EditorID   string    `db:"editor_id"`
	EditorName string    `db:"editor_name"`
	Changes    []byte    `db:"changes"` // JSONB
	EditedAt   time.Time `db:"edited_at"`
}
