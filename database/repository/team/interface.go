package teamRepo

import (
	"context"
	"errors"

	"guildroster/models"
)

// ErrNotFound is returned when no team document matches the given ID.
var ErrNotFound = errors.New("team not found")

// Repository is the document-store contract the scheduling engine consumes.
// Reads hand back the stored tree as plain maps and slices: historical
// documents predate the current schema and must pass through the migrator
// before they can be trusted. Writes always carry the canonical shape.
type Repository interface {
	Create(ctx context.Context, team models.Team) (string, error)
	GetRawByID(ctx context.Context, id string) (map[string]any, error)
	GetAllRaw(ctx context.Context) (map[string]map[string]any, error)
	ReplaceSchedules(ctx context.Context, id string, schedules models.ScheduleSet) error
	UpdateMeta(ctx context.Context, id string, name, remark string, members []models.TeamMember) error
	Delete(ctx context.Context, id string) error
}
