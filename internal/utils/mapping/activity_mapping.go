package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/models"
)

// ToModelActivityLog converts a domain activity entry to a model entry.
func ToModelActivityLog(d domain.ActivityLog) (models.ActivityLog, error) {
	var metadata []byte
	if len(d.Metadata) > 0 {
		var err error
		metadata, err = json.Marshal(d.Metadata)
		if err != nil {
			return models.ActivityLog{}, fmt.Errorf("failed to marshal activity metadata: %w", err)
		}
	}
	return models.ActivityLog{
		ActivityID: d.ActivityID,
		EntityID:   d.EntityID,
		EntityType: d.EntityType,
		EventName:  d.EventName,
		ActorID:    d.ActorID,
		Metadata:   metadata,
		CreatedAt:  d.CreatedAt,
	}, nil
}

// ToDomainActivityLog converts a model activity entry to a domain entry.
func ToDomainActivityLog(m models.ActivityLog) (domain.ActivityLog, error) {
	var metadata map[string]any
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &metadata); err != nil {
			return domain.ActivityLog{}, fmt.Errorf("failed to unmarshal activity metadata: %w", err)
		}
	}
	return domain.ActivityLog{
		ActivityID: m.ActivityID,
		EntityID:   m.EntityID,
		EntityType: m.EntityType,
		EventName:  m.EventName,
		ActorID:    m.ActorID,
		Metadata:   metadata,
		CreatedAt:  m.CreatedAt,
	}, nil
}
