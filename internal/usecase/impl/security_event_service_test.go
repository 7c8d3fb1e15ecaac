package impl

import (
	"context"
	"testing"
	"time"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/errors"
	"crm/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportingFixture struct {
	svc      *securityEventService
	repo     *fakeEventRepo
	recorder *captureRecorder
	clock    *testClock
	agent    *usecase.Caller
	admin    *usecase.Caller
}

func newReportingFixture(t *testing.T) *reportingFixture {
	t.Helper()

	repo := &fakeEventRepo{}
	recorder := &captureRecorder{}
	clock := newTestClock()

	svc := NewSecurityEventService(SecurityEventServiceParams{
		EventRepo: repo,
		Recorder:  recorder,
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	}).(*securityEventService)
	svc.now = clock.Now

	return &reportingFixture{
		svc:      svc,
		repo:     repo,
		recorder: recorder,
		clock:    clock,
		agent:    &usecase.Caller{UserID: uuid.New(), Roles: entity.Roles{entity.RoleAgent}},
		admin:    &usecase.Caller{UserID: uuid.New(), Roles: entity.Roles{entity.RoleAdmin}},
	}
}

func (f *reportingFixture) add(userID uuid.UUID, eventType entity.EventType, severity entity.Severity, success bool, age time.Duration) {
	_ = f.repo.Create(context.Background(), &entity.SecurityEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Category:  entity.DefaultCategory(eventType),
		Severity:  severity,
		UserID:    uuidPtr(userID),
		Success:   success,
		CreatedAt: f.clock.Now().Add(-age),
	})
}

func TestSecurityEventService_ListScopesNonElevatedCallers(t *testing.T) {
	f := newReportingFixture(t)
	f.add(f.agent.UserID, entity.EventLoginSuccess, entity.SeverityInfo, true, time.Minute)
	f.add(f.agent.UserID, entity.EventLoginFailed, entity.SeverityWarning, false, 2*time.Minute)
	f.add(f.admin.UserID, entity.EventLoginSuccess, entity.SeverityInfo, true, time.Minute)

	page, err := f.svc.List(context.Background(), f.agent, &usecase.SecurityEventQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	for _, e := range page.Events {
		assert.Equal(t, f.agent.UserID, *e.UserID)
	}
	assert.Equal(t, 50, page.Limit)

	page, err = f.svc.List(context.Background(), f.admin, &usecase.SecurityEventQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
}

func TestSecurityEventService_ListFiltersAndPaging(t *testing.T) {
	f := newReportingFixture(t)
	for i := range 5 {
		f.add(f.agent.UserID, entity.EventLoginFailed, entity.SeverityWarning, false, time.Duration(i+1)*time.Minute)
	}
	f.add(f.agent.UserID, entity.EventLoginSuccess, entity.SeverityInfo, true, time.Second)

	failed := false
	eventType := entity.EventLoginFailed
	page, err := f.svc.List(context.Background(), f.agent, &usecase.SecurityEventQuery{
		EventType: &eventType,
		Success:   &failed,
		Limit:     2,
		Offset:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	require.Len(t, page.Events, 2)
	assert.True(t, page.Events[0].CreatedAt.After(page.Events[1].CreatedAt), "newest first")
}

func TestSecurityEventService_ListLimits(t *testing.T) {
	f := newReportingFixture(t)

	page, err := f.svc.List(context.Background(), f.admin, &usecase.SecurityEventQuery{Limit: 10_000})
	require.NoError(t, err)
	assert.Equal(t, 500, page.Limit)
	assert.Equal(t, 500, f.repo.lastList.Limit)

	_, err = f.svc.List(context.Background(), f.admin, &usecase.SecurityEventQuery{Offset: -1})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	bogus := entity.Severity("catastrophic")
	_, err = f.svc.List(context.Background(), f.admin, &usecase.SecurityEventQuery{Severity: &bogus})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestSecurityEventService_Stats(t *testing.T) {
	f := newReportingFixture(t)
	f.add(f.agent.UserID, entity.EventLoginSuccess, entity.SeverityInfo, true, time.Hour)
	f.add(f.agent.UserID, entity.EventLoginFailed, entity.SeverityWarning, false, time.Hour)
	f.add(f.agent.UserID, entity.EventTokenRefresh, entity.SeverityInfo, true, time.Hour)
	f.add(f.agent.UserID, entity.EventLoginFailed, entity.SeverityWarning, false, 40*24*time.Hour)
	f.add(f.admin.UserID, entity.EventLoginFailed, entity.SeverityWarning, false, time.Hour)

	stats, err := f.svc.Stats(context.Background(), f.agent, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, stats.DaysBack)

	byCategory := make(map[entity.EventCategory]*entity.CategoryStats)
	for _, c := range stats.Categories {
		byCategory[c.Category] = c
	}
	require.Contains(t, byCategory, entity.CategoryAuthentication)
	assert.Equal(t, int64(2), byCategory[entity.CategoryAuthentication].Total)
	assert.Equal(t, int64(1), byCategory[entity.CategoryAuthentication].Successful)
	assert.Equal(t, int64(1), byCategory[entity.CategoryAuthentication].Failed)
	assert.Equal(t, int64(1), byCategory[entity.CategorySession].Total)

	stats, err = f.svc.Stats(context.Background(), f.admin, 1000)
	require.NoError(t, err)
	assert.Equal(t, 365, stats.DaysBack)
}

func TestSecurityEventService_RecentIsAlwaysOwnEvents(t *testing.T) {
	f := newReportingFixture(t)
	for i := range 60 {
		f.add(f.admin.UserID, entity.EventTokenRefresh, entity.SeverityInfo, true, time.Duration(i)*time.Minute)
	}
	f.add(f.agent.UserID, entity.EventTokenRefresh, entity.SeverityInfo, true, time.Minute)

	events, err := f.svc.Recent(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Len(t, events, 50)
	for _, e := range events {
		assert.Equal(t, f.admin.UserID, *e.UserID)
	}
}

func TestSecurityEventService_CriticalRequiresElevatedRole(t *testing.T) {
	f := newReportingFixture(t)

	_, err := f.svc.Critical(context.Background(), f.agent, 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	denied := f.recorder.ofType(entity.EventAccessDenied)
	require.Len(t, denied, 1)
	assert.Equal(t, entity.CategoryAuthorization, denied[0].Category)
	assert.Equal(t, f.agent.UserID, *denied[0].UserID)
}

func TestSecurityEventService_CriticalWindow(t *testing.T) {
	f := newReportingFixture(t)
	f.add(f.agent.UserID, entity.EventAccountLocked, entity.SeverityCritical, false, 2*24*time.Hour)
	f.add(f.agent.UserID, entity.EventAccountLocked, entity.SeverityCritical, false, 10*24*time.Hour)
	f.add(f.agent.UserID, entity.EventLoginFailed, entity.SeverityWarning, false, time.Hour)

	events, err := f.svc.Critical(context.Background(), f.admin, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entity.SeverityCritical, events[0].Severity)

	events, err = f.svc.Critical(context.Background(), f.admin, 500)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	require.NotNil(t, f.repo.lastList.Since)
	assert.Equal(t, f.clock.Now().Add(-90*24*time.Hour), *f.repo.lastList.Since)
}

func TestSecurityEventService_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		f := newReportingFixture(t)
		f.add(f.agent.UserID, entity.EventLoginSuccess, entity.SeverityInfo, true, time.Hour)
		f.add(f.agent.UserID, entity.EventLoginSuccess, entity.SeverityInfo, true, 2*time.Hour)
		f.add(f.agent.UserID, entity.EventLoginFailed, entity.SeverityWarning, false, 3*24*time.Hour)

		health := f.svc.Health(context.Background())
		assert.Equal(t, usecase.HealthHealthy, health.Status)
		assert.True(t, health.DatabaseOK)
		assert.Equal(t, int64(2), health.EventsLast24h)
		require.NotEmpty(t, health.TopEventTypes)
		assert.Equal(t, entity.EventLoginSuccess, health.TopEventTypes[0].EventType)
	})

	t.Run("degraded without recent activity", func(t *testing.T) {
		f := newReportingFixture(t)
		f.add(f.agent.UserID, entity.EventLoginSuccess, entity.SeverityInfo, true, 48*time.Hour)

		health := f.svc.Health(context.Background())
		assert.Equal(t, usecase.HealthDegraded, health.Status)
		assert.True(t, health.DatabaseOK)
	})

	t.Run("unhealthy when store unreachable", func(t *testing.T) {
		f := newReportingFixture(t)
		f.repo.pingErr = errors.New("dial tcp 10.0.0.5:5432: connection refused")

		health := f.svc.Health(context.Background())
		assert.Equal(t, usecase.HealthUnhealthy, health.Status)
		assert.False(t, health.DatabaseOK)
		assert.Equal(t, "database unavailable", health.DatabaseError)
		assert.NotContains(t, health.DatabaseError, "10.0.0.5")
	})
}
