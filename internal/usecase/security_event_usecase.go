package usecase

import (
	"context"
	"time"

	"crm/internal/domain/entity"
)

// Audit health states.
const (
	HealthHealthy   = "healthy"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"
)

// SecurityEventQuery is the filter a caller may set. Scope is decided by the service.
type SecurityEventQuery struct {
	EventType *entity.EventType
	Category  *entity.EventCategory
	Severity  *entity.Severity
	Success   *bool
	Limit     int
	Offset    int
}

// SecurityEventPage is one page of events, newest first.
type SecurityEventPage struct {
	Events []*entity.SecurityEvent
	Total  int64
	Limit  int
	Offset int
}

// SecurityEventStats aggregates a trailing window per category.
type SecurityEventStats struct {
	DaysBack   int
	Since      time.Time
	Categories []*entity.CategoryStats
}

// AuditHealth is the liveness report of the audit pipeline.
type AuditHealth struct {
	Status        string
	DatabaseOK    bool
	DatabaseError string
	EventsLast24h int64
	TopEventTypes []*entity.EventTypeCount
	CheckedAt     time.Time
}

// SecurityEventUsecase is the read side of the security event log.
type SecurityEventUsecase interface {
	List(ctx context.Context, caller *Caller, query *SecurityEventQuery) (*SecurityEventPage, error)
	Stats(ctx context.Context, caller *Caller, daysBack int) (*SecurityEventStats, error)
	Recent(ctx context.Context, caller *Caller) ([]*entity.SecurityEvent, error)
	Critical(ctx context.Context, caller *Caller, daysBack int) ([]*entity.SecurityEvent, error)
	Health(ctx context.Context) *AuditHealth
}
