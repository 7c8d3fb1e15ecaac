package impl

import (
	"context"
	"log/slog"
	"time"

	"crm/config"
	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/domain/service"
	"crm/internal/errors"
	"crm/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const fallbackMaxActiveSessions = 5

// sessionService implements the TokenUsecase interface.
type sessionService struct {
	txManager         repository.TransactionManager
	refreshTokenRepo  repository.RefreshTokenRepository
	credentialRepo    repository.CredentialRepository
	tokenService      service.TokenService
	recorder          service.SecurityEventRecorder
	maxActiveSessions int
	storeTimeout      time.Duration
	now               func() time.Time
	logger            *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	RefreshTokenRepo repository.RefreshTokenRepository
	CredentialRepo   repository.CredentialRepository
	TokenService     service.TokenService
	Recorder         service.SecurityEventRecorder
	Config           *config.Config
	Logger           *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.TokenUsecase {
	srv := &sessionService{
		txManager:         params.TxManager,
		refreshTokenRepo:  params.RefreshTokenRepo,
		credentialRepo:    params.CredentialRepo,
		tokenService:      params.TokenService,
		recorder:          params.Recorder,
		maxActiveSessions: fallbackMaxActiveSessions,
		now:               time.Now,
		logger:            params.Logger,
	}
	if params.Config != nil {
		if params.Config.Auth != nil && params.Config.Auth.MaxActiveSessions > 0 {
			srv.maxActiveSessions = params.Config.Auth.MaxActiveSessions
		}
		if params.Config.Store != nil {
			srv.storeTimeout = params.Config.Store.OperationTimeout
		}
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Issue mints the pair and stores the refresh hash. The user row lock serializes
// concurrent logins of one user so the session cap holds after every commit.
func (srv *sessionService) Issue(ctx context.Context, cred *entity.Credential, device entity.DeviceInfo) (*entity.TokenPair, error) {
	// Signing is CPU-bound and needs no transaction.
	accessToken, err := srv.tokenService.GenerateAccessToken(cred.ID, cred.Email, cred.Roles().ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}
	refreshToken, err := srv.tokenService.GenerateRefreshToken(cred.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate refresh token")
	}

	now := srv.now()
	record := &entity.RefreshToken{
		UserID:    cred.ID,
		TokenHash: srv.tokenService.HashToken(refreshToken),
		UserAgent: device.UserAgent,
		IPAddress: device.IPAddress,
		ExpiresAt: now.Add(srv.tokenService.RefreshTokenDuration()),
	}

	var pruned int64

	storeCtx, cancel := withStoreTimeout(ctx, srv.storeTimeout)
	defer cancel()

	err = srv.txManager.Execute(storeCtx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.CredentialRepo().LockForUpdate(storeCtx, cred.ID); err != nil {
			return errors.Wrap(err, "failed to lock user for session update")
		}

		refreshRepo := repoFactory.RefreshTokenRepo()
		if err := refreshRepo.Create(storeCtx, record); err != nil {
			return errors.Wrap(err, "failed to store refresh token")
		}

		var err error
		pruned, err = refreshRepo.RevokeOldestActiveBeyond(storeCtx, cred.ID, srv.maxActiveSessions, now)
		if err != nil {
			return errors.Wrap(err, "failed to prune sessions")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to issue tokens", slog.Any("error", err), slog.Any("user_id", cred.ID))

		return nil, translateStoreError(errors.Wrap(err, "failed to issue tokens"))
	}

	event := newEvent(entity.EventTokenIssued, entity.SeverityInfo, device)
	event.UserID = uuidPtr(cred.ID)
	event.Email = cred.Email
	event.Success = true
	event.Message = "token pair issued"
	event.Metadata = map[string]any{"session_id": record.ID.String()}
	srv.recorder.Record(ctx, event)

	if pruned > 0 {
		event := newEvent(entity.EventSessionsPruned, entity.SeverityInfo, device)
		event.UserID = uuidPtr(cred.ID)
		event.Email = cred.Email
		event.Success = true
		event.Message = "oldest sessions revoked to stay within the session cap"
		event.Metadata = map[string]any{"pruned": pruned, "max_active_sessions": srv.maxActiveSessions}
		srv.recorder.Record(ctx, event)
	}

	return &entity.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresIn:  srv.tokenService.AccessTokenDuration(),
		RefreshExpiresAt: record.ExpiresAt,
		SessionID:        record.ID,
	}, nil
}

// Refresh does not rotate: the same refresh token stays usable until it expires or is revoked.
func (srv *sessionService) Refresh(ctx context.Context, presented string, device entity.DeviceInfo) (*usecase.RefreshOutput, error) {
	if presented == "" {
		return nil, errors.Wrap(domainerrors.ErrNoRefreshToken, "refresh rejected")
	}

	cred, err := srv.resolveRefresh(ctx, presented)
	if err != nil {
		if translated := translateStoreError(err); errors.Is(translated, domainerrors.ErrTransient) {
			return nil, translated
		}

		event := newEvent(entity.EventTokenRefreshFailed, entity.SeverityWarning, device)
		event.Message = "refresh token rejected"
		event.Metadata = map[string]any{"reason": errors.Cause(err).Error()}
		srv.recorder.Record(ctx, event)
		srv.log(ctx).Warn("Refresh rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInvalidRefreshToken, "refresh rejected")
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(cred.ID, cred.Email, cred.Roles().ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	event := newEvent(entity.EventTokenRefresh, entity.SeverityInfo, device)
	event.UserID = uuidPtr(cred.ID)
	event.Email = cred.Email
	event.Success = true
	event.Message = "access token refreshed"
	srv.recorder.Record(ctx, event)

	return &usecase.RefreshOutput{
		AccessToken: accessToken,
		ExpiresIn:   srv.tokenService.AccessTokenDuration(),
	}, nil
}

// resolveRefresh validates the presented token against its signature and the
// stored session, stamping last_used_at on the way.
func (srv *sessionService) resolveRefresh(ctx context.Context, presented string) (*entity.Credential, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(presented)
	if err != nil {
		return nil, errors.Wrap(err, "invalid refresh token")
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	storeCtx, cancel := withStoreTimeout(ctx, srv.storeTimeout)
	defer cancel()

	token, err := srv.refreshTokenRepo.TouchActive(storeCtx, srv.tokenService.HashToken(presented), srv.now())
	if err != nil {
		return nil, errors.Wrap(err, "refresh token not found or expired")
	}
	if token.UserID != userID {
		return nil, errors.Wrap(service.ErrTokenInvalid, "refresh token subject mismatch")
	}

	cred, err := srv.credentialRepo.FindByID(storeCtx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}
	if !cred.IsActive {
		return nil, errors.Wrap(service.ErrTokenInvalid, "user is inactive")
	}

	return cred, nil
}

// Revoke is idempotent. It only revokes the row matching the presented token's hash.
func (srv *sessionService) Revoke(ctx context.Context, presented string, device entity.DeviceInfo) error {
	if presented == "" {
		return errors.Wrap(domainerrors.ErrNoRefreshToken, "logout rejected")
	}

	storeCtx, cancel := withStoreTimeout(ctx, srv.storeTimeout)
	defer cancel()

	token, err := srv.refreshTokenRepo.RevokeByHash(storeCtx, srv.tokenService.HashToken(presented), srv.now())
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			srv.log(ctx).Debug("Logout with unknown refresh token")

			return nil
		}

		return translateStoreError(errors.Wrap(err, "failed to revoke refresh token"))
	}

	event := newEvent(entity.EventTokenRevoked, entity.SeverityInfo, device)
	event.UserID = uuidPtr(token.UserID)
	event.Success = true
	event.Message = "refresh token revoked"
	event.Metadata = map[string]any{"session_id": token.ID.String()}
	srv.recorder.Record(ctx, event)

	return nil
}

// RevokeSession revokes a specific session owned by userID.
func (srv *sessionService) RevokeSession(ctx context.Context, userID, sessionID uuid.UUID, device entity.DeviceInfo) error {
	srv.log(ctx).Info("Revoking session", slog.Any("user_id", userID), slog.Any("session_id", sessionID))

	storeCtx, cancel := withStoreTimeout(ctx, srv.storeTimeout)
	defer cancel()

	if err := srv.refreshTokenRepo.RevokeByID(storeCtx, sessionID, userID, srv.now()); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return errors.Wrap(domainerrors.ErrNotFound, "session not found")
		}

		return translateStoreError(errors.Wrap(err, "failed to revoke session"))
	}

	event := newEvent(entity.EventTokenRevoked, entity.SeverityInfo, device)
	event.UserID = uuidPtr(userID)
	event.Success = true
	event.Message = "session revoked"
	event.Metadata = map[string]any{"session_id": sessionID.String()}
	srv.recorder.Record(ctx, event)

	return nil
}

// RevokeAll revokes every live session of userID.
func (srv *sessionService) RevokeAll(ctx context.Context, userID uuid.UUID, device entity.DeviceInfo) (int64, error) {
	storeCtx, cancel := withStoreTimeout(ctx, srv.storeTimeout)
	defer cancel()

	revoked, err := srv.refreshTokenRepo.RevokeAllByUserID(storeCtx, userID, srv.now())
	if err != nil {
		srv.log(ctx).Error("Failed to revoke all sessions", slog.Any("error", err), slog.Any("user_id", userID))

		return 0, translateStoreError(errors.Wrap(err, "failed to revoke all sessions"))
	}

	event := newEvent(entity.EventSessionsRevoked, entity.SeverityInfo, device)
	event.UserID = uuidPtr(userID)
	event.Success = true
	event.Message = "all sessions revoked"
	event.Metadata = map[string]any{"revoked": revoked}
	srv.recorder.Record(ctx, event)

	srv.log(ctx).Info("Successfully revoked all sessions", slog.Any("user_id", userID), slog.Int64("revoked", revoked))

	return revoked, nil
}

// ListSessions returns the live sessions of userID, newest first.
func (srv *sessionService) ListSessions(ctx context.Context, userID uuid.UUID) ([]*entity.Session, error) {
	storeCtx, cancel := withStoreTimeout(ctx, srv.storeTimeout)
	defer cancel()

	tokens, err := srv.refreshTokenRepo.ListActiveByUserID(storeCtx, userID, srv.now())
	if err != nil {
		return nil, translateStoreError(errors.Wrap(err, "failed to list sessions"))
	}

	sessions := make([]*entity.Session, 0, len(tokens))
	for _, token := range tokens {
		sessions = append(sessions, token.Session())
	}

	return sessions, nil
}

// Verify is a pure signature and expiry check.
func (srv *sessionService) Verify(accessToken string) (*service.Claims, error) {
	if accessToken == "" {
		return nil, errors.WithStack(domainerrors.ErrNoToken)
	}

	claims, err := srv.tokenService.ValidateAccessToken(accessToken)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			return nil, errors.Wrap(domainerrors.ErrTokenExpired, err.Error())
		}

		return nil, errors.Wrap(domainerrors.ErrInvalidToken, err.Error())
	}
	if _, err := claims.UserID(); err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, err.Error())
	}

	return claims, nil
}

// CleanupExpired removes sessions whose expiry has passed.
func (srv *sessionService) CleanupExpired(ctx context.Context) (int64, error) {
	deleted, err := srv.refreshTokenRepo.DeleteExpired(ctx, srv.now())
	if err != nil {
		srv.log(ctx).Error("Failed to cleanup expired sessions", slog.Any("error", err))

		return 0, errors.Wrap(err, "failed to cleanup expired sessions")
	}
	srv.log(ctx).Info("Successfully cleaned up expired sessions", slog.Int64("deleted_count", deleted))

	return deleted, nil
}
