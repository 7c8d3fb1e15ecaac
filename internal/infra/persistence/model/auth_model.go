package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenModel mirrors the 'refresh_tokens' table.
type RefreshTokenModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	TokenHash  string     `gorm:"type:varchar(64);unique;not null"`
	UserAgent  string     `gorm:"type:varchar(512)"`
	IPAddress  string     `gorm:"type:varchar(64)"`
	ExpiresAt  time.Time  `gorm:"not null"`
	Revoked    bool       `gorm:"not null;default:false"`
	RevokedAt  *time.Time `gorm:""`
	LastUsedAt *time.Time `gorm:""`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
