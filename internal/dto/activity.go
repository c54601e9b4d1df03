package dto

import (
	"time"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
)

// ListActivitiesParams defines query parameters for the activity feed.
type ListActivitiesParams struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

// ActivityLogResponse is one activity feed entry as returned to clients.
type ActivityLogResponse struct {
	ActivityID string         `json:"activityID"`
	EntityID   string         `json:"entityID"`
	EntityType string         `json:"entityType"`
	EventName  string         `json:"eventName"`
	ActorID    string         `json:"actorID"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// ToActivityLogResponses converts domain activity logs to DTOs.
func ToActivityLogResponses(logs []domain.ActivityLog) []ActivityLogResponse {
	out := make([]ActivityLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, ActivityLogResponse{
			ActivityID: l.ActivityID,
			EntityID:   l.EntityID,
			EntityType: l.EntityType,
			EventName:  l.EventName,
			ActorID:    l.ActorID,
			Metadata:   l.Metadata,
			CreatedAt:  l.CreatedAt,
		})
	}
	return out
}
