package repositories

import (
	"context"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
)

// ActivityLogRepository is the append-only activity log. Callers treat writes
// as fire-and-forget: a failure is logged and never aborts the primary mutation.
type ActivityLogRepository interface {
	// SaveActivity appends one activity entry.
	SaveActivity(ctx context.Context, entry domain.ActivityLog) error

	// ListActivitiesByEntity retrieves activity entries for an entity, newest first.
	ListActivitiesByEntity(ctx context.Context, entityID string, limit int) ([]domain.ActivityLog, error)
}
