package domain

import "time"

// Activity event names emitted by this core.
const (
	EventPostCreated    = "post_created"
	EventPostPinned     = "post_pinned"
	EventPostUnpinned   = "post_unpinned"
	EventPostArchived   = "post_archived"
	EventPostUnarchived = "post_unarchived"
	EventDeptAssigned   = "department_assigned"
	EventDeptCreated    = "department_created"
	EventDeptDeleted    = "department_deleted"
)

// ActivityLog is one append-only entry in the activity feed. Writing it is
// fire-and-forget; a failed write never aborts the mutation it describes.
type ActivityLog struct {
	ActivityID string         `json:"activityID"`
	EntityID   string         `json:"entityID"`
	EntityType string         `json:"entityType"` // "post" | "department"
	EventName  string         `json:"eventName"`
	ActorID    string         `json:"actorID"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}
