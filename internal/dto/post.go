package dto

import (
	"time"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
)

// --- Post DTOs ---

// AttachmentRequest describes one attachment reference on a post.
type AttachmentRequest struct {
	URL  string `json:"url" binding:"required,url"`
	Name string `json:"name" binding:"required"`
	Type string `json:"type"`
	Size int64  `json:"size" binding:"gte=0"`
}

// CreatePostRequest defines data for creating a post (draft or published).
type CreatePostRequest struct {
	Title        string              `json:"title" binding:"required,max=200"`
	Content      string              `json:"content" binding:"required"`
	Category     string              `json:"category"`
	Tags         []string            `json:"tags"`
	Attachments  []AttachmentRequest `json:"attachments"`
	PrivacyLevel domain.PrivacyLevel `json:"privacyLevel" binding:"required,oneof=company_public department_only hr_only"`
	DepartmentID *string             `json:"departmentID,omitempty"` // Required when privacyLevel is department_only
}

// SchedulePostRequest defines data for creating a scheduled post.
type SchedulePostRequest struct {
	CreatePostRequest
	ScheduledPublishAt time.Time `json:"scheduledPublishAt" binding:"required,future"`
}

// EditPostRequest defines a partial update to a post. Nil fields are untouched.
type EditPostRequest struct {
	Title       *string              `json:"title,omitempty" binding:"omitempty,max=200"`
	Content     *string              `json:"content,omitempty"`
	Category    *string              `json:"category,omitempty"`
	Tags        *[]string            `json:"tags,omitempty"`
	Attachments *[]AttachmentRequest `json:"attachments,omitempty"`
	Status      *domain.PostStatus   `json:"status,omitempty" binding:"omitempty,oneof=open resolved closed"`
}

// ToPostUpdate converts the request into the domain update representation.
func (r EditPostRequest) ToPostUpdate() domain.PostUpdate {
	update := domain.PostUpdate{
		Title:    r.Title,
		Content:  r.Content,
		Category: r.Category,
		Tags:     r.Tags,
		Status:   r.Status,
	}
	if r.Attachments != nil {
		attachments := ToDomainAttachments(*r.Attachments)
		update.Attachments = &attachments
	}
	return update
}

// ListPostsParams holds filters and pagination for a post listing.
type ListPostsParams struct {
	Lifecycle       *domain.LifecycleState `form:"lifecycle" binding:"omitempty,oneof=draft scheduled published"`
	Category        *string                `form:"category"`
	DepartmentID    *string                `form:"departmentID"`
	AuthorID        *string                `form:"authorID"`
	IncludeArchived bool                   `form:"includeArchived"`
	Limit           int                    `form:"limit" binding:"omitempty,gte=1,lte=100"`
	NextToken       *string                `form:"nextToken"`
}

// PostResponse defines data returned for a post.
type PostResponse struct {
	PostID       string                 `json:"postID"`
	CompanyID    string                 `json:"companyID"`
	AuthorID     string                 `json:"authorID"`
	AuthorName   string                 `json:"authorName"`
	Title        string                 `json:"title"`
	Content      string                 `json:"content"`
	Category     string                 `json:"category"`
	Tags         []string               `json:"tags"`
	Attachments  []domain.Attachment    `json:"attachments"`
	Lifecycle    domain.LifecycleState  `json:"lifecycle"`
	Status       domain.PostStatus      `json:"status"`
	Flags        domain.ModerationFlags `json:"flags"`
	PrivacyLevel domain.PrivacyLevel    `json:"privacyLevel"`
	DepartmentID *string                `json:"departmentID,omitempty"`

	ScheduledPublishAt *time.Time `json:"scheduledPublishAt,omitempty"`
	EditCount          int        `json:"editCount"`
	LastEditedBy       *string    `json:"lastEditedBy,omitempty"`
	LastEditedAt       *time.Time `json:"lastEditedAt,omitempty"`
	PinnedBy           *string    `json:"pinnedBy,omitempty"`
	PinnedAt           *time.Time `json:"pinnedAt,omitempty"`
	ArchivedBy         *string    `json:"archivedBy,omitempty"`
	ArchivedAt         *time.Time `json:"archivedAt,omitempty"`
	PublishedBy        *string    `json:"publishedBy,omitempty"`
	PublishedAt        *time.Time `json:"publishedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	LastUpdatedAt      time.Time  `json:"lastUpdatedAt"`
}

// ToPostResponse converts domain.Post to DTO.
func ToPostResponse(p *domain.Post) PostResponse {
	return PostResponse{
		PostID:             p.PostID,
		CompanyID:          p.CompanyID,
		AuthorID:           p.AuthorID,
		AuthorName:         p.AuthorName,
		Title:              p.Title,
		Content:            p.Content,
		Category:           p.Category,
		Tags:               p.Tags,
		Attachments:        p.Attachments,
		Lifecycle:          p.Lifecycle,
		Status:             p.Status,
		Flags:              p.Flags,
		PrivacyLevel:       p.PrivacyLevel,
		DepartmentID:       p.DepartmentID,
		ScheduledPublishAt: p.ScheduledPublishAt,
		EditCount:          p.EditCount,
		LastEditedBy:       p.LastEditedBy,
		LastEditedAt:       p.LastEditedAt,
		PinnedBy:           p.PinnedBy,
		PinnedAt:           p.PinnedAt,
		ArchivedBy:         p.ArchivedBy,
		ArchivedAt:         p.ArchivedAt,
		PublishedBy:        p.PublishedBy,
		PublishedAt:        p.PublishedAt,
		CreatedAt:          p.CreatedAt,
		LastUpdatedAt:      p.LastUpdatedAt,
	}
}

// ListPostsResponse wraps a paginated post listing.
type ListPostsResponse struct {
	Posts     []PostResponse `json:"posts"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// EditHistoryEntryResponse defines data returned for one edit audit entry.
type EditHistoryEntryResponse struct {
	EntryID    string                        `json:"entryID"`
	PostID     string                        `json:"postID"`
	EditorID   string                        `json:"editorID"`
	EditorName string                        `json:"editorName"`
	Changes    map[string]domain.FieldChange `json:"changes"`
	EditedAt   time.Time                     `json:"editedAt"`
}

// ToEditHistoryResponses converts a slice of domain entries to DTOs.
func ToEditHistoryResponses(entries []domain.EditHistoryEntry) []EditHistoryEntryResponse {
	out := make([]EditHistoryEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = EditHistoryEntryResponse{
			EntryID:    e.EntryID,
			PostID:     e.PostID,
			EditorID:   e.EditorID,
			EditorName: e.EditorName,
			Changes:    e.Changes,
			EditedAt:   e.EditedAt,
		}
	}
	return out
}

// ToDomainAttachments converts attachment requests to domain attachments.
func ToDomainAttachments(reqs []AttachmentRequest) []domain.Attachment {
	if len(reqs) == 0 {
		return nil
	}
	out := make([]domain.Attachment, len(reqs))
	for i, a := range reqs {
		out[i] = domain.Attachment{URL: a.URL, Name: a.Name, Type: a.Type, Size: a.Size}
	}
	return out
}
