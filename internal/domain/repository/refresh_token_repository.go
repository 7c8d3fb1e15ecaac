package repository

import (
	"context"
	"time"

	"crm/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrRefreshTokenNotFound is returned when no live session matches.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository stores sessions. Revocation only ever sets revoked = true.
type RefreshTokenRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// TouchActive finds the non-revoked, non-expired session with tokenHash and sets
	// last_used_at = now in the same statement. ErrRefreshTokenNotFound otherwise.
	TouchActive(ctx context.Context, tokenHash string, now time.Time) (*entity.RefreshToken, error)

	// RevokeByHash revokes the session with tokenHash and returns it. An already
	// revoked session matches again; an unknown hash yields ErrRefreshTokenNotFound.
	RevokeByHash(ctx context.Context, tokenHash string, now time.Time) (*entity.RefreshToken, error)

	// RevokeByID revokes session id only if it belongs to userID; otherwise
	// ErrRefreshTokenNotFound, so another user's session is never touched.
	RevokeByID(ctx context.Context, id, userID uuid.UUID, now time.Time) error

	// RevokeAllByUserID revokes every live session of userID and returns how many.
	RevokeAllByUserID(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error)

	// RevokeOldestActiveBeyond keeps the newest keep live sessions of userID and revokes the rest.
	RevokeOldestActiveBeyond(ctx context.Context, userID uuid.UUID, keep int, now time.Time) (int64, error)

	// ListActiveByUserID returns live sessions, newest first.
	ListActiveByUserID(ctx context.Context, userID uuid.UUID, now time.Time) ([]*entity.RefreshToken, error)

	// DeleteExpired removes sessions whose expiry passed before cutoff.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
