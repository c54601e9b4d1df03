package pgsql

import (
	"context"
	"fmt"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
	portsrepo "github.com/PulseDeskHQ/pulse_desk_app/internal/core/ports/repositories"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/models"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxActivityRepository struct {
	BaseRepository
}

// newPgxActivityRepository creates a new repository for the activity feed.
func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityLogRepository {
	return &PgxActivityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ActivityLogRepository = (*PgxActivityRepository)(nil)

// SaveActivity appends one activity feed row.
func (r *PgxActivityRepository) SaveActivity(ctx context.Context, entry domain.ActivityLog) error {
	modelEntry, err := mapping.ToModelActivityLog(entry)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO activity_logs (activity_id, entity_id, entity_type, event_name, actor_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = r.Pool.Exec(ctx, query,
		modelEntry.ActivityID,
		modelEntry.EntityID,
		modelEntry.EntityType,
		modelEntry.EventName,
		modelEntry.ActorID,
		modelEntry.Metadata,
		modelEntry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save activity %s: %w", modelEntry.ActivityID, err)
	}
	return nil
}

// ListActivitiesByEntity retrieves the newest activity rows for an entity.
func (r *PgxActivityRepository) ListActivitiesByEntity(ctx context.Context, entityID string, limit int) ([]domain.ActivityLog, error) {
	query := `
		SELECT activity_id, entity_id, entity_type, event_name, actor_id, metadata, created_at
		FROM activity_logs
		WHERE entity_id = $1
		ORDER BY created_at DESC, activity_id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity for entity %s: %w", entityID, err)
	}

	modelEntries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ActivityLog])
	if err != nil {
		return nil, fmt.Errorf("failed to scan activity rows: %w", err)
	}

	entries := make([]domain.ActivityLog, 0, len(modelEntries))
	for _, m := range modelEntries {
		d, mapErr := mapping.ToDomainActivityLog(m)
		if mapErr != nil {
			return nil, mapErr
		}
		entries = append(entries, d)
	}
	return entries, nil
}
