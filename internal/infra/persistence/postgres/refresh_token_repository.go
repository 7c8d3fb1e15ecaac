package postgres

import (
	"context"
	"time"

	"crm/internal/domain/entity"
	"crm/internal/domain/repository"
	"crm/internal/errors"
	"crm/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

const (
	touchActiveSQL = `
UPDATE refresh_tokens SET last_used_at = @now
WHERE token_hash = @hash AND revoked = false AND expires_at > @now
RETURNING *`

	revokeByHashSQL = `
UPDATE refresh_tokens SET revoked = true, revoked_at = COALESCE(revoked_at, @now)
WHERE token_hash = @hash
RETURNING *`

	revokeOldestBeyondSQL = `
UPDATE refresh_tokens SET revoked = true, revoked_at = @now
WHERE id IN (
	SELECT id FROM refresh_tokens
	WHERE user_id = @user_id AND revoked = false AND expires_at > @now
	ORDER BY created_at DESC, id DESC
	OFFSET @keep
)`
)

// refreshTokenRepository implements the domain.RefreshTokenRepository interface.
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository is the constructor for refreshTokenRepository.
func NewRefreshTokenRepository(db *gorm.DB) repository.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Create persists a new refresh token, representing a user session.
func (repo *refreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	tokenM := fromRefreshTokenDomain(token)

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCredentialNotFound
		}

		return wrapDBError(err, "create refresh token")
	}

	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// TouchActive looks up a live session and stamps last_used_at atomically.
func (repo *refreshTokenRepository) TouchActive(ctx context.Context, tokenHash string, now time.Time) (*entity.RefreshToken, error) {
	var tokenM model.RefreshTokenModel
	result := repo.db.WithContext(ctx).
		Raw(touchActiveSQL, map[string]any{"hash": tokenHash, "now": now}).
		Scan(&tokenM)
	if result.Error != nil {
		return nil, wrapDBError(result.Error, "touch refresh token")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrRefreshTokenNotFound
	}

	return toRefreshTokenDomain(&tokenM), nil
}

func (repo *refreshTokenRepository) RevokeByHash(ctx context.Context, tokenHash string, now time.Time) (*entity.RefreshToken, error) {
	var tokenM model.RefreshTokenModel
	result := repo.db.WithContext(ctx).
		Raw(revokeByHashSQL, map[string]any{"hash": tokenHash, "now": now}).
		Scan(&tokenM)
	if result.Error != nil {
		return nil, wrapDBError(result.Error, "revoke refresh token by hash")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrRefreshTokenNotFound
	}

	return toRefreshTokenDomain(&tokenM), nil
}

func (repo *refreshTokenRepository) RevokeByID(ctx context.Context, id, userID uuid.UUID, now time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"revoked":    true,
			"revoked_at": gorm.Expr("COALESCE(revoked_at, ?)", now),
		})
	if result.Error != nil {
		return wrapDBError(result.Error, "revoke refresh token by id")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRefreshTokenNotFound
	}

	return nil
}

func (repo *refreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND revoked = false AND expires_at > ?", userID, now).
		Updates(map[string]any{"revoked": true, "revoked_at": now})
	if result.Error != nil {
		return 0, wrapDBError(result.Error, "revoke all refresh tokens")
	}

	return result.RowsAffected, nil
}

func (repo *refreshTokenRepository) RevokeOldestActiveBeyond(ctx context.Context, userID uuid.UUID, keep int, now time.Time) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	result := repo.db.WithContext(ctx).Exec(revokeOldestBeyondSQL, map[string]any{
		"user_id": userID,
		"now":     now,
		"keep":    keep,
	})
	if result.Error != nil {
		return 0, wrapDBError(result.Error, "prune refresh tokens")
	}

	return result.RowsAffected, nil
}

func (repo *refreshTokenRepository) ListActiveByUserID(ctx context.Context, userID uuid.UUID, now time.Time) ([]*entity.RefreshToken, error) {
	var tokenModels []*model.RefreshTokenModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("user_id = ? AND revoked = false AND expires_at > ?", userID, now).
		Order("created_at DESC").
		Find(&tokenModels).Error
	if err != nil {
		return nil, wrapDBError(err, "list refresh tokens")
	}

	tokens := make([]*entity.RefreshToken, 0, len(tokenModels))
	for _, m := range tokenModels {
		tokens = append(tokens, toRefreshTokenDomain(m))
	}

	return tokens, nil
}

// DeleteExpired removes sessions past expiry. Revocation history of live sessions is kept.
func (repo *refreshTokenRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&model.RefreshTokenModel{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "delete expired refresh tokens")
	}

	return result.RowsAffected, nil
}

func toRefreshTokenDomain(m *model.RefreshTokenModel) *entity.RefreshToken {
	return &entity.RefreshToken{
		ID:         m.ID,
		UserID:     m.UserID,
		TokenHash:  m.TokenHash,
		UserAgent:  m.UserAgent,
		IPAddress:  m.IPAddress,
		ExpiresAt:  m.ExpiresAt,
		Revoked:    m.Revoked,
		RevokedAt:  m.RevokedAt,
		LastUsedAt: m.LastUsedAt,
		CreatedAt:  m.CreatedAt,
	}
}

func fromRefreshTokenDomain(t *entity.RefreshToken) *model.RefreshTokenModel {
	return &model.RefreshTokenModel{
		ID:         t.ID,
		UserID:     t.UserID,
		TokenHash:  t.TokenHash,
		UserAgent:  t.UserAgent,
		IPAddress:  t.IPAddress,
		ExpiresAt:  t.ExpiresAt,
		Revoked:    t.Revoked,
		RevokedAt:  t.RevokedAt,
		LastUsedAt: t.LastUsedAt,
		CreatedAt:  t.CreatedAt,
	}
}
