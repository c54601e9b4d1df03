package domain

import "time"

// LifecycleState is the mutually exclusive primary state of a post.
type LifecycleState string

const (
	LifecycleDraft     LifecycleState = "draft"
	LifecycleScheduled LifecycleState = "scheduled"
	LifecyclePublished LifecycleState = "published"
)

// PostStatus carries the domain meaning of a post once it is published.
// While a post is a draft or scheduled, Status mirrors the lifecycle state.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusScheduled PostStatus = "scheduled"
	StatusOpen      PostStatus = "open"
	StatusResolved  PostStatus = "resolved"
	StatusClosed    PostStatus = "closed"
)

// PrivacyLevel controls who can see a post.
type PrivacyLevel string

const (
	PrivacyCompanyPublic  PrivacyLevel = "company_public"
	PrivacyDepartmentOnly PrivacyLevel = "department_only"
	PrivacyHROnly         PrivacyLevel = "hr_only"
)

// ModerationFlags are orthogonal boolean attributes layered on top of the
// lifecycle state. They never participate in lifecycle transitions.
type ModerationFlags struct {
	Pinned   bool `json:"pinned"`
	Archived bool `json:"archived"`
}

// Attachment describes a file attached to a post. Storage of the binary
// content is handled by an external collaborator; only the reference lives here.
type Attachment struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// Post is a piece of content moving through draft -> scheduled -> published.
type Post struct {
	PostID     string `json:"postID"` // Primary Key (e.g., UUID)
	CompanyID  string `json:"companyID"`
	AuthorID   string `json:"authorID"`
	AuthorName string `json:"authorName"`

	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Category    string       `json:"category"`
	Tags        []string     `json:"tags"`
	Attachments []Attachment `json:"attachments"`

	Lifecycle LifecycleState  `json:"lifecycle"`
	Status    PostStatus      `json:"status"`
	Flags     ModerationFlags `json:"flags"`

	PrivacyLevel PrivacyLevel `json:"privacyLevel"`
	DepartmentID *string      `json:"departmentID,omitempty"` // Required when PrivacyLevel is department_only

	ScheduledPublishAt *time.Time `json:"scheduledPublishAt,omitempty"` // Only meaningful while scheduled

	EditCount    int        `json:"editCount"`
	LastEditedBy *string    `json:"lastEditedBy,omitempty"`
	LastEditedAt *time.Time `json:"lastEditedAt,omitempty"`
	PinnedBy     *string    `json:"pinnedBy,omitempty"`
	PinnedAt     *time.Time `json:"pinnedAt,omitempty"`
	ArchivedBy   *string    `json:"archivedBy,omitempty"`
	ArchivedAt   *time.Time `json:"archivedAt,omitempty"`
	PublishedBy  *string    `json:"publishedBy,omitempty"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`

	AuditFields
}

// IsPublished reports whether the post has reached the published lifecycle state.
func (p *Post) IsPublished() bool {
	return p.Lifecycle == LifecyclePublished
}

// FieldChange records the old and new value of a single changed field.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// EditHistoryEntry is an immutable audit record of one accepted edit.
// Entries are append-only; they are never mutated or deleted.
type EditHistoryEntry struct {
	EntryID    string                 `json:"entryID"`
	PostID     string                 `json:"postID"`
	EditorID   string                 `json:"editorID"`
	EditorName string                 `json:"editorName"`
	Changes    map[string]FieldChange `json:"changes"`
	EditedAt   time.Time              `json:"editedAt"`
}

// PostUpdate carries the fields an edit call may change. Nil pointers mean
// "leave unchanged". Title, Content, Category and Tags are history-tracked;
// the remaining fields are applied without diffing.
type PostUpdate struct {
	Title       *string       `json:"title,omitempty"`
	Content     *string       `json:"content,omitempty"`
	Category    *string       `json:"category,omitempty"`
	Tags        *[]string     `json:"tags,omitempty"`
	Attachments *[]Attachment `json:"attachments,omitempty"`
	Status      *PostStatus   `json:"status,omitempty"`
}
