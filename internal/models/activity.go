package models

import "time"

// ActivityLog is the storage representation of one activity feed row.
type ActivityLog struct {
	ActivityID string    `db:"activity_id"`
	EntityID   string    `db:"entity_id"`
	EntityType string    `db:"entity_type"`
	EventName  string    `db:"event_name"`
	ActorID    string    `db:"actor_id"`
	Metadata   []byte    `db:"metadata"` // JSONB
	CreatedAt  time.Time `db:"created_at"`
}
