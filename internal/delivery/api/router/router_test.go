package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"crm/config"
	"crm/internal/delivery/api/middleware"
	"crm/internal/delivery/api/router/handler"
	"crm/internal/delivery/api/validator"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/service"
	"crm/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	agentToken = "agent-access-token"
	adminToken = "admin-access-token"
)

type fakeAuthUsecase struct {
	loginErr     error
	lastRefresh  string
	lastLogout   string
	revokedAll   bool
	claims       map[string]*service.Claims
	agentID      uuid.UUID
	lastDevice   entity.DeviceInfo
	sessionOwner uuid.UUID
}

func (f *fakeAuthUsecase) Login(_ context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	f.lastDevice = input.Device
	if f.loginErr != nil {
		return nil, f.loginErr
	}

	return &usecase.LoginOutput{
		Tokens: &entity.TokenPair{
			AccessToken:      "new-access",
			RefreshToken:     "new-refresh",
			AccessExpiresIn:  15 * time.Minute,
			RefreshExpiresAt: time.Now().Add(7 * 24 * time.Hour),
			SessionID:        uuid.New(),
		},
		User: &entity.Credential{ID: f.agentID, Email: entity.NormalizeEmail(input.Email), Role: entity.RoleAgent},
	}, nil
}

func (f *fakeAuthUsecase) Refresh(_ context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	f.lastRefresh = input.RefreshToken
	if input.RefreshToken == "" {
		return nil, domainerrors.ErrNoRefreshToken
	}

	return &usecase.RefreshOutput{AccessToken: "refreshed-access", ExpiresIn: 15 * time.Minute}, nil
}

func (f *fakeAuthUsecase) Logout(_ context.Context, input *usecase.LogoutInput) error {
	f.lastLogout = input.RefreshToken
	if input.RefreshToken == "" {
		return domainerrors.ErrNoRefreshToken
	}

	return nil
}

func (f *fakeAuthUsecase) ListSessions(_ context.Context, caller *usecase.Caller) ([]*entity.Session, error) {
	f.sessionOwner = caller.UserID

	return []*entity.Session{{ID: uuid.New(), UserAgent: "test-agent", IPAddress: "203.0.113.7"}}, nil
}

func (f *fakeAuthUsecase) RevokeSession(_ context.Context, caller *usecase.Caller, _ uuid.UUID) error {
	f.sessionOwner = caller.UserID

	return domainerrors.ErrNotFound
}

func (f *fakeAuthUsecase) RevokeAllSessions(_ context.Context, caller *usecase.Caller) (int64, error) {
	f.sessionOwner = caller.UserID
	f.revokedAll = true

	return 3, nil
}

func (f *fakeAuthUsecase) VerifyAccessToken(token string) (*service.Claims, error) {
	if token == "expired" {
		return nil, domainerrors.ErrTokenExpired
	}
	if c, ok := f.claims[token]; ok {
		return c, nil
	}

	return nil, domainerrors.ErrInvalidToken
}

type fakeEventUsecase struct {
	health    *usecase.AuditHealth
	lastQuery *usecase.SecurityEventQuery
}

func (f *fakeEventUsecase) List(_ context.Context, _ *usecase.Caller, query *usecase.SecurityEventQuery) (*usecase.SecurityEventPage, error) {
	f.lastQuery = query

	return &usecase.SecurityEventPage{
		Events: []*entity.SecurityEvent{{ID: uuid.New(), EventType: entity.EventLoginFailed}},
		Total:  11,
		Limit:  max(query.Limit, 50),
		Offset: query.Offset,
	}, nil
}

func (f *fakeEventUsecase) Stats(_ context.Context, _ *usecase.Caller, daysBack int) (*usecase.SecurityEventStats, error) {
	return &usecase.SecurityEventStats{DaysBack: daysBack}, nil
}

func (f *fakeEventUsecase) Recent(context.Context, *usecase.Caller) ([]*entity.SecurityEvent, error) {
	return []*entity.SecurityEvent{}, nil
}

func (f *fakeEventUsecase) Critical(_ context.Context, caller *usecase.Caller, _ int) ([]*entity.SecurityEvent, error) {
	if !caller.IsElevated() {
		return nil, domainerrors.ErrForbidden
	}

	return []*entity.SecurityEvent{}, nil
}

func (f *fakeEventUsecase) Health(context.Context) *usecase.AuditHealth {
	return f.health
}

type fakeRecordUsecase struct {
	lastUpdate *usecase.UpdateRecordInput
}

func (f *fakeRecordUsecase) Get(_ context.Context, resource string, id uuid.UUID) (*entity.VersionedRecord, error) {
	return &entity.VersionedRecord{Resource: resource, ID: id, Version: 4}, nil
}

func (f *fakeRecordUsecase) Create(_ context.Context, input *usecase.CreateRecordInput) (*entity.VersionedRecord, error) {
	return &entity.VersionedRecord{Resource: input.Resource, ID: uuid.New(), Version: 1, Attributes: input.Attributes}, nil
}

func (f *fakeRecordUsecase) Update(_ context.Context, input *usecase.UpdateRecordInput) (*entity.VersionedRecord, error) {
	f.lastUpdate = input
	if input.ExpectedVersion != nil && *input.ExpectedVersion != 4 {
		return nil, domainerrors.NewVersionConflictError(4, *input.ExpectedVersion)
	}

	return &entity.VersionedRecord{Resource: input.Resource, ID: input.ID, Version: 5, Attributes: input.Attributes}, nil
}

type testServer struct {
	echo    *echo.Echo
	auth    *fakeAuthUsecase
	events  *fakeEventUsecase
	records *fakeRecordUsecase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	agentID := uuid.New()
	authUC := &fakeAuthUsecase{
		agentID: agentID,
		claims: map[string]*service.Claims{
			agentToken: {Roles: []string{"agent"}, RegisteredClaims: jwt.RegisteredClaims{Subject: agentID.String()}},
			adminToken: {Roles: []string{"admin"}, RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()}},
		},
	}
	eventUC := &fakeEventUsecase{health: &usecase.AuditHealth{Status: usecase.HealthHealthy, DatabaseOK: true, EventsLast24h: 2}}
	recordUC := &fakeRecordUsecase{}

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	e.Validator = validator.New()

	NewRouter(RouterParams{
		AuthHandler:          handler.NewAuthHandler(handler.AuthHandlerParams{AuthUC: authUC, Config: cfg, Logger: logger}),
		SecurityEventHandler: handler.NewSecurityEventHandler(handler.SecurityEventHandlerParams{EventUC: eventUC, Logger: logger}),
		RecordHandler:        handler.NewRecordHandler(handler.RecordHandlerParams{RecordUC: recordUC, Logger: logger}),
		AuthMiddleware:       middleware.NewAuthMiddleware(middleware.AuthMiddlewareParams{AuthUC: authUC, Logger: logger}),
	}).RegisterRoutes(e)

	return &testServer{echo: e, auth: authUC, events: eventUC, records: recordUC}
}

func (s *testServer) do(method, target, body, token string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

type envelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Limit  int   `json:"limit"`
		Offset int   `json:"offset"`
		Total  int64 `json:"total"`
	} `json:"pagination"`
	Error *struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return env
}

func TestLogin_SetsRefreshCookie(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/auth/login", `{"email":"Agent@Example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body handler.LoginResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &body))
	assert.Equal(t, "new-access", body.Token)
	assert.Equal(t, "new-refresh", body.RefreshToken)
	assert.Equal(t, int64(900), body.ExpiresIn)
	assert.Equal(t, "agent", body.User.Role)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "refresh_token", cookies[0].Name)
	assert.Equal(t, "new-refresh", cookies[0].Value)
	assert.Equal(t, "/auth", cookies[0].Path)
	assert.True(t, cookies[0].HttpOnly)

	assert.Equal(t, "unknown", s.auth.lastDevice.UserAgent)
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		loginErr error
		status   int
		code     string
	}{
		{name: "locked", body: `{"email":"a@b.co","password":"pw"}`, loginErr: domainerrors.ErrAccountLocked, status: http.StatusLocked, code: "ACCOUNT_LOCKED"},
		{name: "bad credentials", body: `{"email":"a@b.co","password":"pw"}`, loginErr: domainerrors.ErrInvalidCredentials, status: http.StatusUnauthorized, code: "INVALID_CREDENTIALS"},
		{name: "store down", body: `{"email":"a@b.co","password":"pw"}`, loginErr: domainerrors.ErrTransient, status: http.StatusServiceUnavailable, code: "SERVICE_UNAVAILABLE"},
		{name: "missing password", body: `{"email":"a@b.co"}`, status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "malformed json", body: `{"email":`, status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.auth.loginErr = tt.loginErr

			rec := s.do(http.MethodPost, "/auth/login", tt.body, "")
			assert.Equal(t, tt.status, rec.Code)
			env := decode(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestRefresh_BodyThenCookie(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/auth/refresh", `{"refreshToken":"from-body"}`, "",
		&http.Cookie{Name: "refresh_token", Value: "from-cookie"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "from-body", s.auth.lastRefresh)

	var body handler.RefreshResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &body))
	assert.Equal(t, "refreshed-access", body.AccessToken)
	assert.Equal(t, int64(900), body.ExpiresIn)

	rec = s.do(http.MethodPost, "/auth/refresh", "", "", &http.Cookie{Name: "refresh_token", Value: "from-cookie"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "from-cookie", s.auth.lastRefresh)

	rec = s.do(http.MethodPost, "/auth/refresh", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "NO_REFRESH_TOKEN", decode(t, rec).Error.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/auth/logout", "", "", &http.Cookie{Name: "refresh_token", Value: "abc"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", s.auth.lastLogout)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestAuthentication_MissingTokenCodes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/security-events", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "NO_AUTH_TOKEN", decode(t, rec).Error.Code)

	rec = s.do(http.MethodGet, "/auth/sessions", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "NO_TOKEN", decode(t, rec).Error.Code)

	rec = s.do(http.MethodGet, "/escrows/"+uuid.NewString(), "", "")
	assert.Equal(t, "NO_TOKEN", decode(t, rec).Error.Code)

	rec = s.do(http.MethodGet, "/auth/sessions", "", "garbage")
	assert.Equal(t, "INVALID_TOKEN", decode(t, rec).Error.Code)

	rec = s.do(http.MethodGet, "/auth/sessions", "", "expired")
	assert.Equal(t, "TOKEN_EXPIRED", decode(t, rec).Error.Code)
}

func TestSessions_UseVerifiedIdentity(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/auth/sessions", "", agentToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, s.auth.agentID, s.auth.sessionOwner)

	rec = s.do(http.MethodDelete, "/auth/sessions/"+uuid.NewString(), "", agentToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/auth/sessions/not-a-uuid", "", agentToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/auth/sessions", "", agentToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, s.auth.revokedAll)
}

func TestSecurityEvents_ListPagination(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/security-events?limit=20&offset=40&severity=warning&success=false", "", agentToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decode(t, rec)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(11), env.Pagination.Total)
	assert.Equal(t, 40, env.Pagination.Offset)

	q := s.events.lastQuery
	assert.Equal(t, 20, q.Limit)
	require.NotNil(t, q.Severity)
	assert.Equal(t, entity.Severity("warning"), *q.Severity)
	require.NotNil(t, q.Success)
	assert.False(t, *q.Success)

	rec = s.do(http.MethodGet, "/security-events?limit=lots", "", agentToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSecurityEvents_ListCategoryFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  entity.EventCategory
	}{
		{name: "eventCategory", query: "?eventCategory=authentication", want: entity.CategoryAuthentication},
		{name: "category alias", query: "?category=session", want: entity.CategorySession},
		{name: "eventCategory wins", query: "?eventCategory=data_integrity&category=session", want: entity.CategoryDataIntegrity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			rec := s.do(http.MethodGet, "/security-events"+tt.query, "", agentToken)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			q := s.events.lastQuery
			require.NotNil(t, q.Category)
			assert.Equal(t, tt.want, *q.Category)
		})
	}
}

func TestSecurityEvents_CriticalForbiddenForAgents(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/security-events/critical", "", agentToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decode(t, rec).Error.Code)

	rec = s.do(http.MethodGet, "/security-events/critical?daysBack=30", "", adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecurityEvents_HealthIsPublic(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/security-events/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body handler.HealthResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &body))
	assert.Equal(t, usecase.HealthHealthy, body.Status)
	assert.Equal(t, int64(2), body.Checks.RecentActivity.EventsLast24h)

	s.events.health = &usecase.AuditHealth{Status: usecase.HealthUnhealthy, DatabaseError: "database unavailable"}
	rec = s.do(http.MethodGet, "/security-events/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &body))
	assert.Equal(t, "database unavailable", body.Checks.Database.Error)
}

func TestRecords_VersionConflict(t *testing.T) {
	s := newTestServer(t)
	id := uuid.NewString()

	rec := s.do(http.MethodPut, "/escrows/"+id, `{"escrowStatus":"closed","version":3}`, agentToken)
	require.Equal(t, http.StatusConflict, rec.Code)

	env := decode(t, rec)
	assert.Equal(t, "VERSION_CONFLICT", env.Error.Code)
	assert.InDelta(t, 4, env.Error.Details["currentVersion"], 0)
	assert.InDelta(t, 3, env.Error.Details["attemptedVersion"], 0)

	_, hasVersion := s.records.lastUpdate.Attributes["version"]
	assert.False(t, hasVersion, "version is not a patchable attribute")
	assert.Equal(t, "escrows", s.records.lastUpdate.Resource)

	rec = s.do(http.MethodPut, "/escrows/"+id, `{"escrowStatus":"closed","version":4}`, agentToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var record entity.VersionedRecord
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &record))
	assert.Equal(t, int64(5), record.Version)
}

func TestRecords_BadInput(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPut, "/escrows/"+uuid.NewString(), `{"version":"three"}`, agentToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/escrows/not-a-uuid", `{"version":3}`, agentToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/escrows/"+uuid.NewString(), `[1,2]`, agentToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/widgets/"+uuid.NewString(), "", agentToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
