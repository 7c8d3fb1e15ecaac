package model

import (
	"time"

	"github.com/google/uuid"
)

// CredentialModel mirrors the 'users' table: identity plus lockout counters.
type CredentialModel struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email               string     `gorm:"type:varchar(255);not null"`
	Name                string     `gorm:"type:varchar(100)"`
	PasswordHash        string     `gorm:"type:varchar(255);not null"`
	Role                string     `gorm:"type:varchar(32);not null"`
	FailedLoginAttempts int        `gorm:"not null;default:0"`
	LockedUntil         *time.Time `gorm:""`
	IsActive            bool       `gorm:"not null"`
	LastLoginAt         *time.Time `gorm:""`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName explicitly sets the table name for GORM.
func (CredentialModel) TableName() string {
	return "users"
}
