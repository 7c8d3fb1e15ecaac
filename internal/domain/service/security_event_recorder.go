package service

import (
	"context"

	"crm/internal/domain/entity"
)

// SecurityEventRecorder is the fire-and-forget write side of the audit trail.
// Record returns immediately and never reports failure to the caller; persistence
// errors are handled out of band.
type SecurityEventRecorder interface {
	Record(ctx context.Context, event *entity.SecurityEvent)
}
