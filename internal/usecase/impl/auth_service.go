package impl

import (
	"context"
	"log/slog"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	"crm/internal/domain/service"
	"crm/internal/errors"
	"crm/internal/usecase"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface by composing lockout and the token lifecycle.
type authService struct {
	lockout usecase.LockoutUsecase
	tokens  usecase.TokenUsecase
	tracer  trace.Tracer
	logger  *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Lockout usecase.LockoutUsecase
	Tokens  usecase.TokenUsecase
	Tracer  trace.Tracer
	Logger  *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		lockout: params.Lockout,
		tokens:  params.Tokens,
		tracer:  params.Tracer,
		logger:  params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login checks the lock, then the password, then issues a token pair.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	ctx, span := srv.tracer.Start(ctx, "auth.Login")
	defer span.End()

	srv.log(ctx).Debug("Starting user login", slog.String("email", entity.NormalizeEmail(input.Email)))

	cred, err := srv.lockout.Attempt(ctx, input)
	if err != nil {
		markSpanError(span, err)

		return nil, errors.Wrap(err, "login failed")
	}
	span.SetAttributes(attribute.String("user.id", cred.ID.String()))

	tokens, err := srv.tokens.Issue(ctx, cred, input.Device)
	if err != nil {
		markSpanError(span, err)
		srv.log(ctx).Error("Login failed", slog.Any("error", err), slog.Any("user_id", cred.ID))

		return nil, errors.Wrap(err, "failed to issue tokens during login")
	}
	srv.log(ctx).Debug("User logged in successfully", slog.Any("user_id", cred.ID))

	return &usecase.LoginOutput{Tokens: tokens, User: cred}, nil
}

// Refresh exchanges a refresh token for a new access token.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	ctx, span := srv.tracer.Start(ctx, "auth.Refresh")
	defer span.End()

	out, err := srv.tokens.Refresh(ctx, input.RefreshToken, input.Device)
	if err != nil {
		markSpanError(span, err)

		return nil, errors.Wrap(err, "refresh failed")
	}

	return out, nil
}

// Logout revokes the presented refresh token. Repeating it is harmless.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	ctx, span := srv.tracer.Start(ctx, "auth.Logout")
	defer span.End()

	if err := srv.tokens.Revoke(ctx, input.RefreshToken, input.Device); err != nil {
		markSpanError(span, err)

		return errors.Wrap(err, "logout failed")
	}

	return nil
}

// ListSessions returns the caller's own live sessions.
func (srv *authService) ListSessions(ctx context.Context, caller *usecase.Caller) ([]*entity.Session, error) {
	sessions, err := srv.tokens.ListSessions(ctx, caller.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sessions")
	}

	return sessions, nil
}

// RevokeSession revokes one of the caller's sessions. Another user's session id reads as not found.
func (srv *authService) RevokeSession(ctx context.Context, caller *usecase.Caller, sessionID uuid.UUID) error {
	if err := srv.tokens.RevokeSession(ctx, caller.UserID, sessionID, caller.Device); err != nil {
		return errors.Wrap(err, "failed to revoke session")
	}

	return nil
}

// RevokeAllSessions logs the caller out everywhere.
func (srv *authService) RevokeAllSessions(ctx context.Context, caller *usecase.Caller) (int64, error) {
	revoked, err := srv.tokens.RevokeAll(ctx, caller.UserID, caller.Device)
	if err != nil {
		return 0, errors.Wrap(err, "failed to revoke all sessions")
	}

	return revoked, nil
}

// VerifyAccessToken never touches the store.
func (srv *authService) VerifyAccessToken(token string) (*service.Claims, error) {
	return srv.tokens.Verify(token) //nolint:wrapcheck // already classified
}

func markSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
