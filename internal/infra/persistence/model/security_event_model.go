package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SecurityEventModel mirrors the append-only 'security_events' table.
type SecurityEventModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	EventType     string         `gorm:"type:varchar(64);not null;index"`
	EventCategory string         `gorm:"type:varchar(32);not null;index"`
	Severity      string         `gorm:"type:varchar(16);not null;index"`
	UserID        *uuid.UUID     `gorm:"type:uuid;index"`
	Email         string         `gorm:"type:varchar(255)"`
	IPAddress     string         `gorm:"type:varchar(64)"`
	UserAgent     string         `gorm:"type:text"`
	RequestID     string         `gorm:"type:varchar(64)"`
	Success       bool           `gorm:"not null"`
	Message       string         `gorm:"type:text"`
	Metadata      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (SecurityEventModel) TableName() string {
	return "security_events"
}
