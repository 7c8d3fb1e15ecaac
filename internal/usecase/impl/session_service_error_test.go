package impl

import (
	"context"
	"testing"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/errors"
	"crm/internal/infra/auth"
	mockRepo "crm/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionMockFixtures struct {
	service   *sessionService
	txManager *mockRepo.MockTransactionManager
	tokens    *mockRepo.MockRefreshTokenRepository
	recorder  *captureRecorder
	user      *entity.Credential
}

func createTestSessionService(t *testing.T) sessionMockFixtures {
	t.Helper()

	cfg := newTestConfig()
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	txManager := mockRepo.NewMockTransactionManager(t)
	tokens := mockRepo.NewMockRefreshTokenRepository(t)
	recorder := &captureRecorder{}

	svc := NewSessionService(SessionServiceParams{
		TxManager:        txManager,
		RefreshTokenRepo: tokens,
		CredentialRepo:   mockRepo.NewMockCredentialRepository(t),
		TokenService:     tokenSvc,
		Recorder:         recorder,
		Config:           cfg,
		Logger:           newDiscardLogger(),
	}).(*sessionService)

	return sessionMockFixtures{
		service:   svc,
		txManager: txManager,
		tokens:    tokens,
		recorder:  recorder,
		user: &entity.Credential{
			ID:       uuid.New(),
			Email:    "agent@example.com",
			Role:     entity.RoleAgent,
			IsActive: true,
		},
	}
}

// onExecute runs the transaction body against a fresh factory and returns
// whatever the body returned, as the real manager would after rollback.
func (fx sessionMockFixtures) onExecute(t *testing.T, setup func(factory *mockRepo.MockRepositoryFactory)) {
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			setup(factory)

			return fn(factory)
		})
}

var testDevice = entity.DeviceInfo{IPAddress: "203.0.113.7", UserAgent: "test-agent"}

func TestSessionService_Issue_LockError(t *testing.T) {
	fx := createTestSessionService(t)

	fx.onExecute(t, func(factory *mockRepo.MockRepositoryFactory) {
		credentials := mockRepo.NewMockCredentialRepository(t)
		factory.EXPECT().CredentialRepo().Return(credentials)
		credentials.EXPECT().LockForUpdate(mock.Anything, fx.user.ID).
			Return(errors.Join(repository.ErrStoreUnavailable, context.DeadlineExceeded))
	})

	pair, err := fx.service.Issue(context.Background(), fx.user, testDevice)

	assert.Nil(t, pair)
	assert.True(t, errors.Is(err, domainerrors.ErrTransient))
	assert.Zero(t, fx.recorder.count(entity.EventTokenIssued))
}

func TestSessionService_Issue_CreateError(t *testing.T) {
	fx := createTestSessionService(t)

	fx.onExecute(t, func(factory *mockRepo.MockRepositoryFactory) {
		credentials := mockRepo.NewMockCredentialRepository(t)
		tokens := mockRepo.NewMockRefreshTokenRepository(t)
		factory.EXPECT().CredentialRepo().Return(credentials)
		factory.EXPECT().RefreshTokenRepo().Return(tokens)
		credentials.EXPECT().LockForUpdate(mock.Anything, fx.user.ID).Return(nil)
		tokens.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.RefreshToken")).Return(errors.New("db error"))
	})

	pair, err := fx.service.Issue(context.Background(), fx.user, testDevice)

	assert.Error(t, err)
	assert.Nil(t, pair)
	assert.Contains(t, err.Error(), "failed to store refresh token")
	assert.False(t, errors.Is(err, domainerrors.ErrTransient))
	assert.Zero(t, fx.recorder.count(entity.EventTokenIssued))
}

func TestSessionService_Issue_PruneError(t *testing.T) {
	fx := createTestSessionService(t)

	fx.onExecute(t, func(factory *mockRepo.MockRepositoryFactory) {
		credentials := mockRepo.NewMockCredentialRepository(t)
		tokens := mockRepo.NewMockRefreshTokenRepository(t)
		factory.EXPECT().CredentialRepo().Return(credentials)
		factory.EXPECT().RefreshTokenRepo().Return(tokens)
		credentials.EXPECT().LockForUpdate(mock.Anything, fx.user.ID).Return(nil)
		tokens.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.RefreshToken")).Return(nil)
		tokens.EXPECT().RevokeOldestActiveBeyond(mock.Anything, fx.user.ID, fallbackMaxActiveSessions, mock.Anything).
			Return(int64(0), errors.Join(repository.ErrStoreUnavailable, errors.New("connection reset by peer")))
	})

	_, err := fx.service.Issue(context.Background(), fx.user, testDevice)

	assert.True(t, errors.Is(err, domainerrors.ErrTransient))
	assert.Zero(t, fx.recorder.count(entity.EventSessionsPruned))
}

func TestSessionService_Issue_Pruned(t *testing.T) {
	fx := createTestSessionService(t)

	fx.onExecute(t, func(factory *mockRepo.MockRepositoryFactory) {
		credentials := mockRepo.NewMockCredentialRepository(t)
		tokens := mockRepo.NewMockRefreshTokenRepository(t)
		factory.EXPECT().CredentialRepo().Return(credentials)
		factory.EXPECT().RefreshTokenRepo().Return(tokens)
		credentials.EXPECT().LockForUpdate(mock.Anything, fx.user.ID).Return(nil)
		tokens.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.RefreshToken")).
			RunAndReturn(func(_ context.Context, token *entity.RefreshToken) error {
				token.ID = uuid.New()

				return nil
			})
		tokens.EXPECT().RevokeOldestActiveBeyond(mock.Anything, fx.user.ID, fallbackMaxActiveSessions, mock.Anything).
			Return(int64(2), nil)
	})

	pair, err := fx.service.Issue(context.Background(), fx.user, testDevice)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, pair.SessionID)
	pruned := fx.recorder.ofType(entity.EventSessionsPruned)
	require.Len(t, pruned, 1)
	assert.Equal(t, int64(2), pruned[0].Metadata["pruned"])
}

func TestSessionService_RevokeSession_NotFound(t *testing.T) {
	fx := createTestSessionService(t)
	sessionID := uuid.New()

	fx.tokens.EXPECT().RevokeByID(mock.Anything, sessionID, fx.user.ID, mock.Anything).
		Return(errors.Wrap(repository.ErrRefreshTokenNotFound, "revoke by id"))

	err := fx.service.RevokeSession(context.Background(), fx.user.ID, sessionID, testDevice)

	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
	assert.Zero(t, fx.recorder.count(entity.EventTokenRevoked))
}

func TestSessionService_RevokeAll_Error(t *testing.T) {
	fx := createTestSessionService(t)

	fx.tokens.EXPECT().RevokeAllByUserID(mock.Anything, fx.user.ID, mock.Anything).
		Return(int64(0), errors.Join(repository.ErrStoreUnavailable, context.DeadlineExceeded))

	revoked, err := fx.service.RevokeAll(context.Background(), fx.user.ID, testDevice)

	assert.Zero(t, revoked)
	assert.True(t, errors.Is(err, domainerrors.ErrTransient))
	assert.Zero(t, fx.recorder.count(entity.EventSessionsRevoked))
}

func TestSessionService_ListSessions_Error(t *testing.T) {
	fx := createTestSessionService(t)

	fx.tokens.EXPECT().ListActiveByUserID(mock.Anything, fx.user.ID, mock.Anything).
		Return(nil, errors.New("db error"))

	sessions, err := fx.service.ListSessions(context.Background(), fx.user.ID)

	assert.Error(t, err)
	assert.Nil(t, sessions)
	assert.Contains(t, err.Error(), "failed to list sessions")
}

func TestSessionService_Revoke_StoreError(t *testing.T) {
	fx := createTestSessionService(t)

	fx.tokens.EXPECT().RevokeByHash(mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(nil, errors.Join(repository.ErrStoreUnavailable, context.DeadlineExceeded))

	err := fx.service.Revoke(context.Background(), "opaque-refresh-token", testDevice)

	assert.True(t, errors.Is(err, domainerrors.ErrTransient))
	assert.Zero(t, fx.recorder.count(entity.EventTokenRevoked))
}

func TestSessionService_CleanupExpired_Error(t *testing.T) {
	fx := createTestSessionService(t)

	fx.tokens.EXPECT().DeleteExpired(mock.Anything, mock.Anything).Return(int64(0), errors.New("db error"))

	deleted, err := fx.service.CleanupExpired(context.Background())

	assert.Zero(t, deleted)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to cleanup expired sessions")
}
