package service

import (
	"context"

	"crm/internal/domain/entity"
)

// SecurityEventPublisher exports audit events to an external bus (SIEM feed).
// It is a secondary sink; the database remains the system of record.
type SecurityEventPublisher interface {
	PublishSecurityEvent(ctx context.Context, event *entity.SecurityEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
