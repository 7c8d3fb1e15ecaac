// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is one issued session. Only the SHA-256 of the token is stored.
// Revoked is monotonic: once true it never returns to false.
type RefreshToken struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TokenHash  string
	UserAgent  string
	IPAddress  string
	ExpiresAt  time.Time // created_at + refresh TTL, never extended
	Revoked    bool
	RevokedAt  *time.Time
	LastUsedAt *time.Time
	CreatedAt  time.Time
}

// IsValid reports whether the session may still be exchanged for access tokens.
func (t *RefreshToken) IsValid(now time.Time) bool {
	return !t.Revoked && t.ExpiresAt.After(now)
}

// DeviceInfo describes the client presenting a credential.
type DeviceInfo struct {
	IPAddress string
	UserAgent string
}

// TokenPair is returned exactly once, at login.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresIn  time.Duration
	RefreshExpiresAt time.Time
	SessionID        uuid.UUID
}

// Session is the client-facing view of a live refresh token. It never carries the hash.
type Session struct {
	ID         uuid.UUID
	UserAgent  string
	IPAddress  string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	LastUsedAt *time.Time
}

// Session returns the public view of t.
func (t *RefreshToken) Session() *Session {
	return &Session{
		ID:         t.ID,
		UserAgent:  t.UserAgent,
		IPAddress:  t.IPAddress,
		CreatedAt:  t.CreatedAt,
		ExpiresAt:  t.ExpiresAt,
		LastUsedAt: t.LastUsedAt,
	}
}
