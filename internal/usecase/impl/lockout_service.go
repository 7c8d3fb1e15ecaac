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

	"go.uber.org/fx"
)

const (
	fallbackMaxFailedAttempts = 5
	fallbackLockoutDuration   = 15 * time.Minute
)

type lockoutService struct {
	credentialRepo repository.CredentialRepository
	hasher         service.PasswordHasher
	recorder       service.SecurityEventRecorder
	threshold      int
	lockFor        time.Duration
	storeTimeout   time.Duration
	now            func() time.Time
	logger         *slog.Logger
}

// LockoutServiceParams holds dependencies for LockoutService, injected by Fx.
type LockoutServiceParams struct {
	fx.In

	CredentialRepo repository.CredentialRepository
	Hasher         service.PasswordHasher
	Recorder       service.SecurityEventRecorder
	Config         *config.Config
	Logger         *slog.Logger
}

// NewLockoutService builds the brute-force guard in front of password checks.
func NewLockoutService(params LockoutServiceParams) usecase.LockoutUsecase {
	srv := &lockoutService{
		credentialRepo: params.CredentialRepo,
		hasher:         params.Hasher,
		recorder:       params.Recorder,
		threshold:      fallbackMaxFailedAttempts,
		lockFor:        fallbackLockoutDuration,
		now:            time.Now,
		logger:         params.Logger,
	}
	if params.Config != nil {
		if lc := params.Config.Lockout; lc != nil {
			if lc.MaxFailedAttempts > 0 {
				srv.threshold = lc.MaxFailedAttempts
			}
			if lc.Duration > 0 {
				srv.lockFor = lc.Duration
			}
		}
		if params.Config.Store != nil {
			srv.storeTimeout = params.Config.Store.OperationTimeout
		}
	}

	return srv
}

func (srv *lockoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Attempt runs the lockout state machine for one login. The lock is consulted
// before the password is compared, so a LOCKED account never reveals whether
// the password was right.
func (srv *lockoutService) Attempt(ctx context.Context, input *usecase.LoginInput) (*entity.Credential, error) {
	email := entity.NormalizeEmail(input.Email)

	storeCtx, cancel := withStoreTimeout(ctx, srv.storeTimeout)
	defer cancel()

	cred, err := srv.credentialRepo.FindByEmail(storeCtx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrCredentialNotFound) {
			return nil, translateStoreError(errors.Wrap(err, "failed to load credential"))
		}

		srv.hasher.DummyCheck(input.Password)
		srv.recordFailure(ctx, nil, email, input.Device, "unknown email", nil)
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "unknown email"))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	now := srv.now()
	if cred.IsLocked(now) {
		srv.recordLockedAttempt(ctx, cred, input.Device)

		return nil, errors.Wrap(domainerrors.ErrAccountLocked, "login rejected")
	}

	if !cred.IsActive {
		srv.hasher.DummyCheck(input.Password)
		srv.recordFailure(ctx, cred, email, input.Device, "account inactive", nil)

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	if !srv.hasher.Check(input.Password, cred.PasswordHash) {
		return nil, srv.handleWrongPassword(ctx, cred, input.Device)
	}

	now = srv.now()
	applied, err := srv.credentialRepo.ResetFailedAttempts(storeCtx, cred.ID, now)
	if err != nil {
		return nil, translateStoreError(errors.Wrap(err, "failed to reset failed attempts"))
	}
	if !applied {
		// A concurrent attempt locked the account between the read and the reset.
		srv.recordLockedAttempt(ctx, cred, input.Device)

		return nil, errors.Wrap(domainerrors.ErrAccountLocked, "login rejected")
	}

	cred.FailedLoginAttempts = 0
	cred.LockedUntil = nil
	cred.LastLoginAt = &now

	event := newEvent(entity.EventLoginSuccess, entity.SeverityInfo, input.Device)
	event.UserID = uuidPtr(cred.ID)
	event.Email = cred.Email
	event.Success = true
	event.Message = "login succeeded"
	srv.recorder.Record(ctx, event)

	return cred, nil
}

func (srv *lockoutService) handleWrongPassword(ctx context.Context, cred *entity.Credential, device entity.DeviceInfo) error {
	storeCtx, cancel := withStoreTimeout(ctx, srv.storeTimeout)
	defer cancel()

	now := srv.now()
	result, err := srv.credentialRepo.RegisterFailedAttempt(storeCtx, cred.ID, srv.threshold, now.Add(srv.lockFor), now)
	if err != nil {
		return translateStoreError(errors.Wrap(err, "failed to register failed attempt"))
	}

	srv.recordFailure(ctx, cred, cred.Email, device, "invalid password", map[string]any{
		"failed_attempts": result.FailedLoginAttempts,
	})

	if result.LockedNow && result.LockedUntil != nil {
		event := newEvent(entity.EventAccountLocked, entity.SeverityError, device)
		event.UserID = uuidPtr(cred.ID)
		event.Email = cred.Email
		event.Message = "account locked after repeated failed logins"
		event.Metadata = map[string]any{
			"failed_attempts": result.FailedLoginAttempts,
			"locked_until":    result.LockedUntil.UTC().Format(time.RFC3339),
		}
		srv.recorder.Record(ctx, event)

		srv.log(ctx).Warn("Account locked",
			slog.String("userID", cred.ID.String()),
			slog.Int("failedAttempts", result.FailedLoginAttempts),
			slog.Time("lockedUntil", *result.LockedUntil),
		)
	}

	return errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
}

func (srv *lockoutService) recordFailure(
	ctx context.Context,
	cred *entity.Credential,
	email string,
	device entity.DeviceInfo,
	reason string,
	metadata map[string]any,
) {
	event := newEvent(entity.EventLoginFailed, entity.SeverityWarning, device)
	if cred != nil {
		event.UserID = uuidPtr(cred.ID)
	}
	event.Email = email
	event.Message = "login failed: " + reason
	event.Metadata = metadata
	srv.recorder.Record(ctx, event)
}

func (srv *lockoutService) recordLockedAttempt(ctx context.Context, cred *entity.Credential, device entity.DeviceInfo) {
	event := newEvent(entity.EventLockoutAttemptWhileLocked, entity.SeverityWarning, device)
	event.UserID = uuidPtr(cred.ID)
	event.Email = cred.Email
	event.Message = "login attempted while account locked"
	if cred.LockedUntil != nil {
		event.Metadata = map[string]any{"locked_until": cred.LockedUntil.UTC().Format(time.RFC3339)}
	}
	srv.recorder.Record(ctx, event)
}
