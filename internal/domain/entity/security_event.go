package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a security-relevant action.
type EventType string

const (
	EventLoginSuccess              EventType = "login_success"
	EventLoginFailed               EventType = "login_failed"
	EventAccountLocked             EventType = "account_locked"
	EventLockoutAttemptWhileLocked EventType = "lockout_attempt_while_locked"
	EventTokenIssued               EventType = "token_issued"
	EventTokenRefresh              EventType = "token_refresh"
	EventTokenRefreshFailed        EventType = "token_refresh_failed"
	EventTokenRevoked              EventType = "token_revoked"
	EventSessionsRevoked           EventType = "sessions_revoked"
	EventSessionsPruned            EventType = "sessions_pruned"
	EventAccessDenied              EventType = "access_denied"
	EventVersionConflict           EventType = "version_conflict"
	EventBusinessRuleViolation     EventType = "business_rule_violation"
	EventAPIKeyCreated             EventType = "api_key_created"
)

// EventCategory groups event types for reporting.
type EventCategory string

const (
	CategoryAuthentication EventCategory = "authentication"
	CategoryAuthorization  EventCategory = "authorization"
	CategorySession        EventCategory = "session"
	CategoryAPIKey         EventCategory = "api_key"
	CategoryDataIntegrity  EventCategory = "data_integrity"
)

// DefaultCategory returns the category an event type is filed under when the caller gives none.
func DefaultCategory(t EventType) EventCategory {
	switch t {
	case EventAccessDenied:
		return CategoryAuthorization
	case EventTokenIssued, EventTokenRefresh, EventTokenRefreshFailed, EventTokenRevoked,
		EventSessionsRevoked, EventSessionsPruned:
		return CategorySession
	case EventVersionConflict, EventBusinessRuleViolation:
		return CategoryDataIntegrity
	case EventAPIKeyCreated:
		return CategoryAPIKey
	default:
		return CategoryAuthentication
	}
}

// Severity of a security event.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// IsValid reports whether s is one of the four severities.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError, SeverityCritical:
		return true
	default:
		return false
	}
}

// SecurityEvent is an append-only audit row. UserID is nil when the
// subject could not be resolved, e.g. a failed login for an unknown email.
type SecurityEvent struct {
	ID        uuid.UUID      `json:"id"`
	EventType EventType      `json:"eventType"`
	Category  EventCategory  `json:"eventCategory"`
	Severity  Severity       `json:"severity"`
	UserID    *uuid.UUID     `json:"userId,omitempty"`
	Email     string         `json:"email,omitempty"`
	IPAddress string         `json:"ipAddress,omitempty"`
	UserAgent string         `json:"userAgent,omitempty"`
	RequestID string         `json:"requestId,omitempty"`
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// SecurityEventFilter narrows List and Count. Nil fields are not applied.
type SecurityEventFilter struct {
	UserID    *uuid.UUID
	EventType *EventType
	Category  *EventCategory
	Severity  *Severity
	Success   *bool
	Since     *time.Time
	Limit     int
	Offset    int
}

// CategoryStats aggregates one category over a trailing window.
type CategoryStats struct {
	Category   EventCategory `json:"eventCategory"`
	Total      int64         `json:"total"`
	Successful int64         `json:"successful"`
	Failed     int64         `json:"failed"`
}

// EventTypeCount is one bucket of the top-event-types health check.
type EventTypeCount struct {
	EventType EventType `json:"eventType"`
	Count     int64     `json:"count"`
}
