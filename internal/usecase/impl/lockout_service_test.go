package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/errors"
	"crm/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockout_FiveFailuresLockAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := f.login(ctx, "wrong-password")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials), "attempt %d", i)
	}

	stored := f.credentials.get(f.user.ID)
	require.NotNil(t, stored.LockedUntil)
	assert.Equal(t, 5, stored.FailedLoginAttempts)
	assert.WithinDuration(t, f.clock.Now().Add(15*time.Minute), *stored.LockedUntil, time.Second)

	locked := f.recorder.ofType(entity.EventAccountLocked)
	require.Len(t, locked, 1)
	assert.Equal(t, 5, locked[0].Metadata["failed_attempts"])
	assert.Equal(t, entity.SeverityError, locked[0].Severity)
	assert.NotEmpty(t, locked[0].Metadata["locked_until"])

	// The correct password no longer helps.
	_, err := f.login(ctx, testPassword)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountLocked))
	assert.Equal(t, 1, f.recorder.count(entity.EventLockoutAttemptWhileLocked))
	assert.Equal(t, 0, f.recorder.count(entity.EventLoginSuccess))

	// A rejected attempt while locked does not touch the counter.
	assert.Equal(t, 5, f.credentials.get(f.user.ID).FailedLoginAttempts)
}

func TestLockout_SuccessResetsCounter(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	for range 2 {
		_, err := f.login(ctx, "wrong-password")
		require.Error(t, err)
	}
	_, err := f.login(ctx, testPassword)
	require.NoError(t, err)
	assert.Equal(t, 0, f.credentials.get(f.user.ID).FailedLoginAttempts)

	for range 4 {
		_, err := f.login(ctx, "wrong-password")
		require.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	}

	stored := f.credentials.get(f.user.ID)
	assert.Equal(t, entity.LockStateOpen, stored.LockState(f.clock.Now()))
	assert.Equal(t, 4, stored.FailedLoginAttempts)
	assert.Equal(t, 0, f.recorder.count(entity.EventAccountLocked))
}

func TestLockout_LockExpires(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	for range 5 {
		_, _ = f.login(ctx, "wrong-password")
	}
	f.clock.Advance(15*time.Minute + time.Second)

	out, err := f.login(ctx, testPassword)
	require.NoError(t, err)
	require.NotNil(t, out.Tokens)

	stored := f.credentials.get(f.user.ID)
	assert.Nil(t, stored.LockedUntil)
	assert.Zero(t, stored.FailedLoginAttempts)
}

func TestLockout_FailureAfterExpiredLockRestartsCount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	for range 5 {
		_, _ = f.login(ctx, "wrong-password")
	}
	f.clock.Advance(16 * time.Minute)

	_, err := f.login(ctx, "wrong-password")
	require.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	stored := f.credentials.get(f.user.ID)
	assert.Equal(t, 1, stored.FailedLoginAttempts)
	assert.Equal(t, entity.LockStateOpen, stored.LockState(f.clock.Now()))
}

func TestLockout_ConcurrentFailuresLockExactlyOnce(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	const attempts = 12

	var wg sync.WaitGroup
	for range attempts {
		wg.Go(func() {
			_, _ = f.login(ctx, "wrong-password")
		})
	}
	wg.Wait()

	stored := f.credentials.get(f.user.ID)
	require.NotNil(t, stored.LockedUntil)
	assert.Equal(t, 1, f.recorder.count(entity.EventAccountLocked))
	assert.GreaterOrEqual(t, stored.FailedLoginAttempts, 5)
}

func TestLockout_EventsPerOutcome(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.login(ctx, testPassword)
	require.NoError(t, err)
	_, err = f.login(ctx, "wrong-password")
	require.Error(t, err)

	success := f.recorder.ofType(entity.EventLoginSuccess)
	require.Len(t, success, 1)
	assert.True(t, success[0].Success)
	assert.Equal(t, "203.0.113.7", success[0].IPAddress)
	assert.Equal(t, "test-agent", success[0].UserAgent)
	assert.Equal(t, entity.SeverityInfo, success[0].Severity)

	failed := f.recorder.ofType(entity.EventLoginFailed)
	require.Len(t, failed, 1)
	assert.False(t, failed[0].Success)
	assert.Equal(t, entity.SeverityWarning, failed[0].Severity)
	require.NotNil(t, failed[0].UserID)
	assert.Equal(t, f.user.ID, *failed[0].UserID)
}

func TestLockout_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Login(context.Background(), &usecase.LoginInput{
		Email:    "Nobody@Example.com ",
		Password: testPassword,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	failed := f.recorder.ofType(entity.EventLoginFailed)
	require.Len(t, failed, 1)
	assert.Nil(t, failed[0].UserID)
	assert.Equal(t, "nobody@example.com", failed[0].Email)
}

func TestLockout_EmailIsCaseInsensitive(t *testing.T) {
	f := newAuthFixture(t)

	out, err := f.auth.Login(context.Background(), &usecase.LoginInput{
		Email:    "AGENT@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, out.User.ID)
}

func TestLockout_InactiveAccount(t *testing.T) {
	f := newAuthFixture(t)
	f.credentials.mu.Lock()
	f.credentials.byID[f.user.ID].IsActive = false
	f.credentials.mu.Unlock()

	_, err := f.login(context.Background(), testPassword)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	assert.Equal(t, 1, f.recorder.count(entity.EventLoginFailed))
	assert.Zero(t, f.credentials.get(f.user.ID).FailedLoginAttempts)
}

func TestLockout_StoreUnavailableIsTransient(t *testing.T) {
	f := newAuthFixture(t)
	f.credentials.findErr = errors.Join(repository.ErrStoreUnavailable, errors.New("dial tcp: connection refused"))

	_, err := f.login(context.Background(), testPassword)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTransient))
	assert.Empty(t, f.recorder.ofType(entity.EventLoginFailed))
}

func TestLockout_CounterAlreadyPastLoweredThreshold(t *testing.T) {
	f := newAuthFixture(t)
	// Seven failures piled up under a higher threshold that has since been lowered to five.
	f.credentials.mu.Lock()
	f.credentials.byID[f.user.ID].FailedLoginAttempts = 7
	f.credentials.mu.Unlock()

	_, err := f.login(context.Background(), "wrong-password")
	require.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	stored := f.credentials.get(f.user.ID)
	require.NotNil(t, stored.LockedUntil)
	assert.Equal(t, 8, stored.FailedLoginAttempts)

	locked := f.recorder.ofType(entity.EventAccountLocked)
	require.Len(t, locked, 1)
	assert.Equal(t, 8, locked[0].Metadata["failed_attempts"])
}
