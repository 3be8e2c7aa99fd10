package rosterRepo

import (
	"context"
	"errors"

	"guildroster/models"
)

// ErrNotFound is returned when no roster entry matches the given name.
var ErrNotFound = errors.New("member not found")

// Repository stores the guild roster, one document per in-game name. Reads
// are raw trees for the same reason as the team store: older documents keep
// their weekly poll in flat per-week fields that need migration on read.
type Repository interface {
	Upsert(ctx context.Context, profile models.MemberProfile) error
	GetRawByName(ctx context.Context, name string) (map[string]any, error)
	GetAllRaw(ctx context.Context) (map[string]map[string]any, error)
	Delete(ctx context.Context, name string) error
}
