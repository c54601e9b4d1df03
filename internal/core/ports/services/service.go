package services

import (
	"context"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
)

// ActivitySvc exposes the activity feed reads; writes happen inside the
// mutating services and are fire-and-forget.
type ActivitySvc interface {
	ListActivitiesByEntity(ctx context.Context, entityID string, limit int, actor domain.Actor) ([]domain.ActivityLog, error)
}

// ServiceContainer holds all service facades for dependency injection.
type ServiceContainer struct {
	Post       PostSvcFacade
	Department DepartmentSvcFacade
	Activity   ActivitySvc
}
