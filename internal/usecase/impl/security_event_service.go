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
	defaultEventPageSize = 50
	maxEventPageSize     = 500
	recentEventCount     = 50

	defaultStatsDays    = 30
	maxStatsDays        = 365
	defaultCriticalDays = 7
	maxCriticalDays     = 90

	healthWindow        = 24 * time.Hour
	topEventTypesWindow = 7 * 24 * time.Hour
	topEventTypesLimit  = 10

	day = 24 * time.Hour

	// databaseUnavailable is all the public health report says about a store failure.
	databaseUnavailable = "database unavailable"
)

// securityEventService implements the SecurityEventUsecase interface.
type securityEventService struct {
	eventRepo    repository.SecurityEventRepository
	recorder     service.SecurityEventRecorder
	storeTimeout time.Duration
	now          func() time.Time
	logger       *slog.Logger
}

// SecurityEventServiceParams holds dependencies for SecurityEventService, injected by Fx.
type SecurityEventServiceParams struct {
	fx.In

	EventRepo repository.SecurityEventRepository
	Recorder  service.SecurityEventRecorder
	Config    *config.Config
	Logger    *slog.Logger
}

// NewSecurityEventService is the constructor for securityEventService.
func NewSecurityEventService(params SecurityEventServiceParams) usecase.SecurityEventUsecase {
	srv := &securityEventService{
		eventRepo: params.EventRepo,
		recorder:  params.Recorder,
		now:       time.Now,
		logger:    params.Logger,
	}
	if params.Config != nil && params.Config.Store != nil {
		srv.storeTimeout = params.Config.Store.OperationTimeout
	}

	return srv
}

func (srv *securityEventService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List pages through events. Non-elevated callers only ever see their own.
func (srv *securityEventService) List(ctx context.Context, caller *usecase.Caller, query *usecase.SecurityEventQuery) (*usecase.SecurityEventPage, error) {
	if query == nil {
		query = &usecase.SecurityEventQuery{}
	}
	if query.Offset < 0 {
		return nil, errors.WithStack(domainerrors.NewValidationError("offset must not be negative"))
	}
	if query.Severity != nil && !query.Severity.IsValid() {
		return nil, errors.WithStack(domainerrors.NewValidationError("unknown severity"))
	}

	filter := entity.SecurityEventFilter{
		EventType: query.EventType,
		Category:  query.Category,
		Severity:  query.Severity,
		Success:   query.Success,
		Limit:     clamp(query.Limit, defaultEventPageSize, maxEventPageSize),
		Offset:    query.Offset,
	}
	if !caller.IsElevated() {
		filter.UserID = uuidPtr(caller.UserID)
	}

	storeCtx, cancel := withStoreTimeout(ctx, srv.storeTimeout)
	defer cancel()

	events, err := srv.eventRepo.List(storeCtx, filter)
	if err != nil {
		return nil, translateStoreError(errors.Wrap(err, "failed to list security events"))
	}
	total, err := srv.eventRepo.Count(storeCtx, filter)
	if err != nil {
		return nil, translateStoreError(errors.Wrap(err, "failed to count security events"))
	}

	return &usecase.SecurityEventPage{
		Events: events,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// Stats aggregates per category over the trailing daysBack days.
func (srv *securityEventService) Stats(ctx context.Context, caller *usecase.Caller, daysBack int) (*usecase.SecurityEventStats, error) {
	daysBack = clamp(daysBack, defaultStatsDays, maxStatsDays)
	since := srv.now().Add(-time.Duration(daysBack) * day)

	var userID = uuidPtr(caller.UserID)
	if caller.IsElevated() {
		userID = nil
	}

	storeCtx, cancel := withStoreTimeout(ctx, srv.storeTimeout)
	defer cancel()

	categories, err := srv.eventRepo.StatsByCategory(storeCtx, userID, since)
	if err != nil {
		return nil, translateStoreError(errors.Wrap(err, "failed to aggregate security events"))
	}

	return &usecase.SecurityEventStats{
		DaysBack:   daysBack,
		Since:      since,
		Categories: categories,
	}, nil
}

// Recent returns the caller's own latest events regardless of role.
func (srv *securityEventService) Recent(ctx context.Context, caller *usecase.Caller) ([]*entity.SecurityEvent, error) {
	storeCtx, cancel := withStoreTimeout(ctx, srv.storeTimeout)
	defer cancel()

	events, err := srv.eventRepo.List(storeCtx, entity.SecurityEventFilter{
		UserID: uuidPtr(caller.UserID),
		Limit:  recentEventCount,
	})
	if err != nil {
		return nil, translateStoreError(errors.Wrap(err, "failed to list recent security events"))
	}

	return events, nil
}

// Critical is restricted to elevated callers. A denied call is itself audited.
func (srv *securityEventService) Critical(ctx context.Context, caller *usecase.Caller, daysBack int) ([]*entity.SecurityEvent, error) {
	if !caller.IsElevated() {
		event := newEvent(entity.EventAccessDenied, entity.SeverityWarning, caller.Device)
		event.UserID = uuidPtr(caller.UserID)
		event.Email = caller.Email
		event.Message = "critical security events requested without elevated role"
		event.Metadata = map[string]any{"resource": "security_events.critical"}
		srv.recorder.Record(ctx, event)

		srv.log(ctx).Warn("Access denied", slog.Any("user_id", caller.UserID), slog.String("resource", "security_events.critical"))

		return nil, errors.Wrap(domainerrors.ErrForbidden, "critical events require an elevated role")
	}

	daysBack = clamp(daysBack, defaultCriticalDays, maxCriticalDays)
	since := srv.now().Add(-time.Duration(daysBack) * day)
	severity := entity.SeverityCritical

	storeCtx, cancel := withStoreTimeout(ctx, srv.storeTimeout)
	defer cancel()

	events, err := srv.eventRepo.List(storeCtx, entity.SecurityEventFilter{
		Severity: &severity,
		Since:    &since,
		Limit:    maxEventPageSize,
	})
	if err != nil {
		return nil, translateStoreError(errors.Wrap(err, "failed to list critical security events"))
	}

	return events, nil
}

// Health never fails; problems are reported in the returned status.
func (srv *securityEventService) Health(ctx context.Context) *usecase.AuditHealth {
	now := srv.now()
	health := &usecase.AuditHealth{
		Status:     usecase.HealthHealthy,
		DatabaseOK: true,
		CheckedAt:  now,
	}

	storeCtx, cancel := withStoreTimeout(ctx, srv.storeTimeout)
	defer cancel()

	if err := srv.eventRepo.Ping(storeCtx); err != nil {
		srv.log(ctx).Error("Audit store unreachable", slog.Any("error", err))
		health.Status = usecase.HealthUnhealthy
		health.DatabaseOK = false
		health.DatabaseError = databaseUnavailable

		return health
	}

	count, err := srv.eventRepo.CountSince(storeCtx, now.Add(-healthWindow))
	if err != nil {
		srv.log(ctx).Error("Failed to count recent security events", slog.Any("error", err))
		health.Status = usecase.HealthUnhealthy
		health.DatabaseOK = false
		health.DatabaseError = databaseUnavailable

		return health
	}
	health.EventsLast24h = count
	if count == 0 {
		health.Status = usecase.HealthDegraded
	}

	top, err := srv.eventRepo.TopEventTypes(storeCtx, now.Add(-topEventTypesWindow), topEventTypesLimit)
	if err != nil {
		srv.log(ctx).Warn("Failed to load top event types", slog.Any("error", err))
	} else {
		health.TopEventTypes = top
	}

	return health
}

// clamp applies def to non-positive values and caps at limit.
func clamp(v, def, limit int) int {
	if v <= 0 {
		return def
	}

	return min(v, limit)
}
