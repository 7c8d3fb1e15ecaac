package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LockState is the lockout state of an account at a point in time.
type LockState string

const (
	// LockStateOpen means login attempts are evaluated.
	LockStateOpen LockState = "OPEN"
	// LockStateLocked means login attempts are rejected regardless of the password.
	LockStateLocked LockState = "LOCKED"
)

// Credential is the identity row of a CRM user: login email, password hash and
// brute-force counters. It is deactivated, never deleted.
type Credential struct {
	ID                  uuid.UUID
	Email               string
	Name                string
	PasswordHash        string
	Role                Role
	FailedLoginAttempts int
	LockedUntil         *time.Time
	IsActive            bool
	LastLoginAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsLocked reports whether a lock is present and still in the future.
func (c *Credential) IsLocked(now time.Time) bool {
	return c.LockedUntil != nil && c.LockedUntil.After(now)
}

// LockState returns OPEN or LOCKED as seen at now.
func (c *Credential) LockState(now time.Time) LockState {
	if c.IsLocked(now) {
		return LockStateLocked
	}

	return LockStateOpen
}

// Roles returns the role set embedded in access tokens.
func (c *Credential) Roles() Roles {
	return Roles{c.Role}
}

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FailedAttemptResult is the row state returned by the atomic failure increment.
type FailedAttemptResult struct {
	FailedLoginAttempts int
	LockedUntil         *time.Time
	// LockedNow is true only for the increment that transitioned the account to LOCKED.
	LockedNow bool
}
