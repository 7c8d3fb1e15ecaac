// Package middleware holds the echo middleware specific to the REST API.
package middleware

import (
	"log/slog"
	"strings"

	"crm/internal/delivery/api/response"
	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	keyUserID = "userID"
	keyRoles  = "roles"
	keyEmail  = "email"

	unknownDevice = "unknown"
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthMiddleware verifies bearer access tokens. It never touches the store.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// Authenticate rejects requests without a valid access token. A missing token is NO_TOKEN.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return m.authenticate(domainerrors.ErrNoToken, next)
}

// AuthenticateAuditTrail is Authenticate for the security event routes, where a missing token is NO_AUTH_TOKEN.
func (m *AuthMiddleware) AuthenticateAuditTrail(next echo.HandlerFunc) echo.HandlerFunc {
	return m.authenticate(domainerrors.ErrNoAuthToken, next)
}

func (m *AuthMiddleware) authenticate(missing *domainerrors.BaseError, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if strings.TrimSpace(header) == "" {
			return response.HandleAppError(c, missing)
		}

		token, ok := bearerToken(header)
		if !ok {
			return response.HandleAppError(c, domainerrors.ErrInvalidToken)
		}

		claims, err := m.authUC.VerifyAccessToken(token)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		userID, err := claims.UserID()
		if err != nil {
			return response.HandleAppError(c, domainerrors.ErrInvalidToken)
		}

		c.Set(keyUserID, userID)
		c.Set(keyRoles, entity.RolesFromStrings(claims.Roles))
		c.Set(keyEmail, claims.Email)

		ctx := c.Request().Context()
		logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger).With(slog.String("user_id", userID.String()))
		ctx = deliverycontext.WithUserID(ctx, userID)
		ctx = deliverycontext.WithLogger(ctx, logger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// bearerToken accepts "Bearer <token>" with a case-insensitive scheme.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)

	return token, token != ""
}

// GetUserID returns the authenticated user set by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(keyUserID).(uuid.UUID)

	return id, ok
}

// GetRoles returns the verified roles set by Authenticate.
func GetRoles(c echo.Context) (entity.Roles, bool) {
	roles, ok := c.Get(keyRoles).(entity.Roles)

	return roles, ok
}

// GetCaller assembles the principal of an authenticated request.
func GetCaller(c echo.Context) (*usecase.Caller, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return nil, false
	}
	roles, _ := GetRoles(c)
	email, _ := c.Get(keyEmail).(string)

	return &usecase.Caller{
		UserID: userID,
		Email:  email,
		Roles:  roles,
		Device: ClientDevice(c),
	}, true
}

// ClientDevice fingerprints the client for security events and session listings.
func ClientDevice(c echo.Context) entity.DeviceInfo {
	device := entity.DeviceInfo{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
	if device.IPAddress == "" {
		device.IPAddress = unknownDevice
	}
	if device.UserAgent == "" {
		device.UserAgent = unknownDevice
	}

	return device
}
