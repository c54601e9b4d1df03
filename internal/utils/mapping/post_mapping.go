package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/models"
)

// ToModelPost converts a domain Post to a model Post.
func ToModelPost(d domain.Post) (models.Post, error) {
	var attachments []byte
	if len(d.Attachments) > 0 {
		var err error
		attachments, err = json.Marshal(d.Attachments)
		if err != nil {
			return models.Post{}, fmt.Errorf("failed to marshal attachments: %w", err)
		}
	}
	return models.Post{
		PostID:             d.PostID,
		CompanyID:          d.CompanyID,
		AuthorID:           d.AuthorID,
		AuthorName:         d.AuthorName,
		Title:              d.Title,
		Content:            d.Content,
		Category:           d.Category,
		Tags:               d.Tags,
		Attachments:        attachments,
		Lifecycle:          string(d.Lifecycle),
		Status:             string(d.Status),
		IsPinned:           d.Flags.Pinned,
		IsArchived:         d.Flags.Archived,
		PrivacyLevel:       string(d.PrivacyLevel),
		DepartmentID:       d.DepartmentID,
		ScheduledPublishAt: d.ScheduledPublishAt,
		EditCount:          d.EditCount,
		LastEditedBy:       d.LastEditedBy,
		LastEditedAt:       d.LastEditedAt,
		PinnedBy:           d.PinnedBy,
		PinnedAt:           d.PinnedAt,
		ArchivedBy:         d.ArchivedBy,
		ArchivedAt:         d.ArchivedAt,
		PublishedBy:        d.PublishedBy,
		PublishedAt:        d.PublishedAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainPost converts a model Post to a domain Post.
func ToDomainPost(m models.Post) (domain.Post, error) {
	var attachments []domain.Attachment
	if len(m.Attachments) > 0 {
		if err := json.Unmarshal(m.Attachments, &attachments); err != nil {
			return domain.Post{}, fmt.Errorf("failed to unmarshal attachments: %w", err)
		}
	}
	return domain.Post{
		PostID:             m.PostID,
		CompanyID:          m.CompanyID,
		AuthorID:           m.AuthorID,
		AuthorName:         m.AuthorName,
		Title:              m.Title,
		Content:            m.Content,
		Category:           m.Category,
		Tags:               m.Tags,
		Attachments:        attachments,
		Lifecycle:          domain.LifecycleState(m.Lifecycle),
		Status:             domain.PostStatus(m.Status),
		Flags:              domain.ModerationFlags{Pinned: m.IsPinned, Archived: m.IsArchived},
		PrivacyLevel:       domain.PrivacyLevel(m.PrivacyLevel),
		DepartmentID:       m.DepartmentID,
		ScheduledPublishAt: m.ScheduledPublishAt,
		EditCount:          m.EditCount,
		LastEditedBy:       m.LastEditedBy,
		LastEditedAt:       m.LastEditedAt,
		PinnedBy:           m.PinnedBy,
		PinnedAt:           m.PinnedAt,
		ArchivedBy:         m.ArchivedBy,
		ArchivedAt:         m.ArchivedAt,
		PublishedBy:        m.PublishedBy,
		PublishedAt:        m.PublishedAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelEditHistoryEntry converts a domain history entry to a model entry.
func ToModelEditHistoryEntry(d domain.EditHistoryEntry) (models.EditHistoryEntry, error) {
	changes, err := json.Marshal(d.Changes)
	if err != nil {
		return models.EditHistoryEntry{}, fmt.Errorf("failed to marshal changes: %w", err)
	}
	return models.EditHistoryEntry{
		EntryID:    d.EntryID,
		PostID:     d.PostID,
		EditorID:   d.EditorID,
		EditorName: d.EditorName,
		Changes:    changes,
		EditedAt:   d.EditedAt,
	}, nil
}

// ToDomainEditHistoryEntry converts a model history entry to a domain entry.
func ToDomainEditHistoryEntry(m models.EditHistoryEntry) (domain.EditHistoryEntry, error) {
	var changes map[string]domain.FieldChange
	if len(m.Changes) > 0 {
		if err := json.Unmarshal(m.Changes, &changes); err != nil {
			return domain.EditHistoryEntry{}, fmt.Errorf("failed to unmarshal changes: %w", err)
		}
	}
	return domain.EditHistoryEntry{
		EntryID:    m.EntryID,
		PostID:     m.PostID,
		EditorID:   m.EditorID,
		EditorName: m.EditorName,
		Changes:    changes,
		EditedAt:   m.EditedAt,
	}, nil
}
