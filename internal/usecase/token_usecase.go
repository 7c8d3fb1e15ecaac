package usecase

import (
	"context"

	"crm/internal/domain/entity"
	"crm/internal/domain/service"

	"github.com/google/uuid"
)

// TokenUsecase owns the refresh-token lifecycle: issue, refresh, revoke.
type TokenUsecase interface {
	// Issue mints a token pair for cred, persists the refresh hash and prunes sessions beyond the cap.
	Issue(ctx context.Context, cred *entity.Credential, device entity.DeviceInfo) (*entity.TokenPair, error)

	// Refresh exchanges a live refresh token for a new access token. The refresh token stays usable.
	Refresh(ctx context.Context, presented string, device entity.DeviceInfo) (*RefreshOutput, error)

	// Revoke marks the presented token revoked. Unknown or already revoked tokens are not an error.
	Revoke(ctx context.Context, presented string, device entity.DeviceInfo) error

	RevokeSession(ctx context.Context, userID, sessionID uuid.UUID, device entity.DeviceInfo) error
	RevokeAll(ctx context.Context, userID uuid.UUID, device entity.DeviceInfo) (int64, error)
	ListSessions(ctx context.Context, userID uuid.UUID) ([]*entity.Session, error)

	// Verify classifies an access token as valid, NO_TOKEN, INVALID_TOKEN or TOKEN_EXPIRED.
	Verify(accessToken string) (*service.Claims, error)

	// CleanupExpired deletes sessions past their expiry.
	CleanupExpired(ctx context.Context) (int64, error)
}
