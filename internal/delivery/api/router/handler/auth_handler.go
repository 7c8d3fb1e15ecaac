package handler

import (
	"log/slog"
	"net/http"
	"time"

	"crm/config"
	"crm/internal/delivery/api/middleware"
	"crm/internal/delivery/api/response"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const refreshCookiePath = "/auth"

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Config *config.Config
	Logger *slog.Logger
}

// AuthHandler serves login, refresh, logout and session management.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	cookie config.CookieConfig
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		cookie: params.Config.HTTP.Cookie,
		logger: params.Logger,
	}
}

// LoginRequest represents the request body for password login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries a refresh token for clients that do not use the cookie.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UserResponse is the public view of the authenticated credential.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// LoginResponse is returned once per login. expiresIn is in seconds.
type LoginResponse struct {
	Token        string        `json:"token"`
	RefreshToken string        `json:"refreshToken"`
	ExpiresIn    int64         `json:"expiresIn"`
	User         *UserResponse `json:"user"`
}

// RefreshResponse holds a new access token only; the refresh token is unchanged.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// SessionResponse is one live session of the caller.
type SessionResponse struct {
	ID         uuid.UUID  `json:"id"`
	UserAgent  string     `json:"userAgent"`
	IPAddress  string     `json:"ipAddress"`
	CreatedAt  time.Time  `json:"createdAt"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.HandleAppError(c, domainerrors.NewValidationError("invalid login input"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Device:   middleware.ClientDevice(c),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.setRefreshCookie(c, out.Tokens)

	return response.Success(c, http.StatusOK, &LoginResponse{
		Token:        out.Tokens.AccessToken,
		RefreshToken: out.Tokens.RefreshToken,
		ExpiresIn:    int64(out.Tokens.AccessExpiresIn / time.Second),
		User:         toUserResponse(out.User),
	})
}

// Refresh handles POST /auth/refresh. The token comes from the body or the cookie.
func (h *AuthHandler) Refresh(c echo.Context) error {
	token, err := h.presentedRefreshToken(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.authUC.Refresh(c.Request().Context(), &usecase.RefreshInput{
		RefreshToken: token,
		Device:       middleware.ClientDevice(c),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &RefreshResponse{
		AccessToken: out.AccessToken,
		ExpiresIn:   int64(out.ExpiresIn / time.Second),
	})
}

// Logout handles POST /auth/logout. Revoking an unknown token still succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	token, err := h.presentedRefreshToken(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.authUC.Logout(c.Request().Context(), &usecase.LogoutInput{
		RefreshToken: token,
		Device:       middleware.ClientDevice(c),
	}); err != nil {
		return response.HandleAppError(c, err)
	}

	h.clearRefreshCookie(c)

	return response.Success(c, http.StatusOK, map[string]string{"message": "Logged out"})
}

// ListSessions handles GET /auth/sessions
func (h *AuthHandler) ListSessions(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrInvalidToken)
	}

	sessions, err := h.authUC.ListSessions(c.Request().Context(), caller)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out := make([]*SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResponse(s))
	}

	return response.Success(c, http.StatusOK, out)
}

// RevokeSession handles DELETE /auth/sessions/:id
func (h *AuthHandler) RevokeSession(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrInvalidToken)
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, domainerrors.NewValidationError("session id must be a uuid"))
	}

	if err := h.authUC.RevokeSession(c.Request().Context(), caller, sessionID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Session revoked"})
}

// RevokeAllSessions handles DELETE /auth/sessions
func (h *AuthHandler) RevokeAllSessions(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrInvalidToken)
	}

	revoked, err := h.authUC.RevokeAllSessions(c.Request().Context(), caller)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.clearRefreshCookie(c)

	return response.Success(c, http.StatusOK, map[string]int64{"revoked": revoked})
}

// presentedRefreshToken prefers the body over the cookie. An empty result is
// left to the use case, which answers NO_REFRESH_TOKEN.
func (h *AuthHandler) presentedRefreshToken(c echo.Context) (string, error) {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return "", domainerrors.NewValidationError("invalid refresh input")
	}
	if req.RefreshToken != "" {
		return req.RefreshToken, nil
	}

	if cookie, err := c.Cookie(h.cookie.Name); err == nil {
		return cookie.Value, nil
	}

	return "", nil
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, tokens *entity.TokenPair) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    tokens.RefreshToken,
		Path:     refreshCookiePath,
		Domain:   h.cookie.Domain,
		Expires:  tokens.RefreshExpiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     refreshCookiePath,
		Domain:   h.cookie.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func toUserResponse(cred *entity.Credential) *UserResponse {
	if cred == nil {
		return nil
	}

	return &UserResponse{
		ID:          cred.ID,
		Email:       cred.Email,
		Name:        cred.Name,
		Role:        cred.Role.String(),
		LastLoginAt: cred.LastLoginAt,
	}
}

func toSessionResponse(s *entity.Session) *SessionResponse {
	return &SessionResponse{
		ID:         s.ID,
		UserAgent:  s.UserAgent,
		IPAddress:  s.IPAddress,
		CreatedAt:  s.CreatedAt,
		ExpiresAt:  s.ExpiresAt,
		LastUsedAt: s.LastUsedAt,
	}
}
