// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"crm/internal/domain/entity"
	"crm/internal/domain/service"

	"github.com/google/uuid"
)

// Caller is the authenticated principal behind a request.
type Caller struct {
	UserID uuid.UUID
	Email  string
	Roles  entity.Roles
	Device entity.DeviceInfo
}

// IsElevated reports whether the caller may act across identities.
func (c *Caller) IsElevated() bool {
	return c.Roles.Elevated()
}

// LoginInput is the credential pair plus the client fingerprint.
type LoginInput struct {
	Email    string
	Password string
	Device   entity.DeviceInfo
}

// LoginOutput carries the token pair, returned in plaintext exactly once.
type LoginOutput struct {
	Tokens *entity.TokenPair
	User   *entity.Credential
}

// RefreshInput is a presented refresh token.
type RefreshInput struct {
	RefreshToken string
	Device       entity.DeviceInfo
}

// RefreshOutput holds only a new access token; the refresh token is not rotated.
type RefreshOutput struct {
	AccessToken string
	ExpiresIn   time.Duration
}

// LogoutInput is the refresh token to revoke.
type LogoutInput struct {
	RefreshToken string
	Device       entity.DeviceInfo
}

// AuthUsecase is the auth gateway: it composes lockout and token lifecycle.
type AuthUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
	ListSessions(ctx context.Context, caller *Caller) ([]*entity.Session, error)
	RevokeSession(ctx context.Context, caller *Caller, sessionID uuid.UUID) error
	RevokeAllSessions(ctx context.Context, caller *Caller) (int64, error)

	// VerifyAccessToken checks signature and expiry without touching the store.
	VerifyAccessToken(token string) (*service.Claims, error)
}
