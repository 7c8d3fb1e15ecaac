package repository

import (
	"context"
	"time"

	"crm/internal/domain/entity"

	"github.com/google/uuid"
)

// SecurityEventRepository is the append-only audit store. Application code only
// inserts and reads; DeleteByIDs exists for the retention archiver alone.
type SecurityEventRepository interface {
	// Create inserts event. Re-inserting an id that already exists is a no-op, so writers may retry.
	Create(ctx context.Context, event *entity.SecurityEvent) error

	// List returns events matching filter, newest first, honoring Limit and Offset.
	List(ctx context.Context, filter entity.SecurityEventFilter) ([]*entity.SecurityEvent, error)

	// Count returns the number of events matching filter, ignoring Limit and Offset.
	Count(ctx context.Context, filter entity.SecurityEventFilter) (int64, error)

	// StatsByCategory aggregates events created at or after since, optionally for one user.
	StatsByCategory(ctx context.Context, userID *uuid.UUID, since time.Time) ([]*entity.CategoryStats, error)

	CountSince(ctx context.Context, since time.Time) (int64, error)

	TopEventTypes(ctx context.Context, since time.Time, limit int) ([]*entity.EventTypeCount, error)

	// ListBefore returns up to limit events created before cutoff, oldest first.
	ListBefore(ctx context.Context, cutoff time.Time, limit int) ([]*entity.SecurityEvent, error)

	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)

	Ping(ctx context.Context) error
}
