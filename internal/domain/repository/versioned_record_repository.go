package repository

import (
	"context"

	"crm/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrRecordNotFound is returned when no row has the id.
var ErrRecordNotFound = errors.New("record not found")

// VersionConflict is returned by ConditionalUpdate when the row exists at another version.
type VersionConflict struct {
	CurrentVersion   int64
	AttemptedVersion int64
}

func (e *VersionConflict) Error() string {
	return "version conflict"
}

// VersionedRecordRepository is the one compare-and-swap primitive shared by every
// versioned business table.
type VersionedRecordRepository interface {
	// ConditionalUpdate sets fields (column -> value), increments version by one and
	// stamps updated_at in a single statement. With expectedVersion nil the update is
	// unconditional. Zero matched rows yield ErrRecordNotFound or *VersionConflict.
	// On success the full updated row is returned.
	ConditionalUpdate(ctx context.Context, table string, id uuid.UUID, expectedVersion *int64, fields map[string]any) (*entity.VersionedRow, error)

	FindByID(ctx context.Context, table string, id uuid.UUID) (*entity.VersionedRow, error)

	// Insert creates a row at version 1.
	Insert(ctx context.Context, table string, fields map[string]any) (*entity.VersionedRow, error)
}
