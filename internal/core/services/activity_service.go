package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/apperrors"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
	portsrepo "github.com/PulseDeskHQ/pulse_desk_app/internal/core/ports/repositories"
	portssvc "github.com/PulseDeskHQ/pulse_desk_app/internal/core/ports/services"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/middleware"
)

// activityService reads the activity feed. Writes happen inside the mutating
// services via their fire-and-forget logActivity helpers.
type activityService struct {
	activityRepo portsrepo.ActivityLogRepository
}

// NewActivityService creates a new ActivityService.
func NewActivityService(ar portsrepo.ActivityLogRepository) portssvc.ActivitySvc {
	return &activityService{activityRepo: ar}
}

var _ portssvc.ActivitySvc = (*activityService)(nil)

// ListActivitiesByEntity retrieves the newest activity entries for an entity.
func (s *activityService) ListActivitiesByEntity(ctx context.Context, entityID string, limit int, actor domain.Actor) ([]domain.ActivityLog, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsComplete() {
		return nil, apperrors.ErrUnauthorized
	}
	if limit <= 0 {
		limit = 50 // Default limit
	}

	entries, err := s.activityRepo.ListActivitiesByEntity(ctx, entityID, limit)
	if err != nil {
		logger.Error("Failed to list activity entries", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to retrieve activity: %w", err)
	}
	if entries == nil {
		return []domain.ActivityLog{}, nil
	}
	return entries, nil
}
