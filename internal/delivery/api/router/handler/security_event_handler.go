package handler

import (
	"log/slog"
	"net/http"
	"time"

	"crm/internal/delivery/api/middleware"
	"crm/internal/delivery/api/response"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SecurityEventHandlerParams holds dependencies for SecurityEventHandler, injected by Fx.
type SecurityEventHandlerParams struct {
	fx.In

	EventUC usecase.SecurityEventUsecase
	Logger  *slog.Logger
}

// SecurityEventHandler serves the read side of the security event log.
type SecurityEventHandler struct {
	eventUC usecase.SecurityEventUsecase
	logger  *slog.Logger
}

// NewSecurityEventHandler is the constructor for SecurityEventHandler
func NewSecurityEventHandler(params SecurityEventHandlerParams) *SecurityEventHandler {
	return &SecurityEventHandler{
		eventUC: params.EventUC,
		logger:  params.Logger,
	}
}

// StatsResponse is the per-category breakdown of a trailing window.
type StatsResponse struct {
	DaysBack   int                     `json:"daysBack"`
	Since      time.Time               `json:"since"`
	Categories []*entity.CategoryStats `json:"categories"`
}

// HealthResponse reports whether the audit pipeline is writing.
type HealthResponse struct {
	Status    string       `json:"status"`
	Checks    HealthChecks `json:"checks"`
	CheckedAt time.Time    `json:"checkedAt"`
}

// HealthChecks are the individual probes behind the overall status.
type HealthChecks struct {
	Database       DatabaseCheck            `json:"database"`
	RecentActivity RecentActivityCheck      `json:"recentActivity"`
	EventTypes     []*entity.EventTypeCount `json:"eventTypes,omitempty"`
}

// DatabaseCheck is the store reachability probe.
type DatabaseCheck struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RecentActivityCheck counts events written in the last 24 hours.
type RecentActivityCheck struct {
	Status        string `json:"status"`
	EventsLast24h int64  `json:"eventsLast24h"`
}

// List handles GET /security-events
func (h *SecurityEventHandler) List(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrInvalidToken)
	}

	query, err := bindEventQuery(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.eventUC.List(c.Request().Context(), caller, query)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, page.Events, response.Pagination{
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  page.Total,
	})
}

// Stats handles GET /security-events/stats?daysBack=N
func (h *SecurityEventHandler) Stats(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrInvalidToken)
	}

	daysBack, err := bindDaysBack(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	stats, err := h.eventUC.Stats(c.Request().Context(), caller, daysBack)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &StatsResponse{
		DaysBack:   stats.DaysBack,
		Since:      stats.Since,
		Categories: stats.Categories,
	})
}

// Recent handles GET /security-events/recent. Always the caller's own events.
func (h *SecurityEventHandler) Recent(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrInvalidToken)
	}

	events, err := h.eventUC.Recent(c.Request().Context(), caller)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, events)
}

// Critical handles GET /security-events/critical?daysBack=N. Elevated callers only.
func (h *SecurityEventHandler) Critical(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrInvalidToken)
	}

	daysBack, err := bindDaysBack(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	events, err := h.eventUC.Critical(c.Request().Context(), caller, daysBack)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, events)
}

// Health handles GET /security-events/health. Public; 503 when the store is unreachable.
func (h *SecurityEventHandler) Health(c echo.Context) error {
	health := h.eventUC.Health(c.Request().Context())

	body := &HealthResponse{
		Status:    health.Status,
		CheckedAt: health.CheckedAt,
		Checks: HealthChecks{
			Database:       DatabaseCheck{Status: usecase.HealthHealthy},
			RecentActivity: RecentActivityCheck{Status: usecase.HealthHealthy, EventsLast24h: health.EventsLast24h},
			EventTypes:     health.TopEventTypes,
		},
	}
	if !health.DatabaseOK {
		body.Checks.Database = DatabaseCheck{Status: usecase.HealthUnhealthy, Error: health.DatabaseError}
		body.Checks.RecentActivity.Status = usecase.HealthUnhealthy
	} else if health.EventsLast24h == 0 {
		body.Checks.RecentActivity.Status = usecase.HealthDegraded
	}

	status := http.StatusOK
	if health.Status == usecase.HealthUnhealthy {
		status = http.StatusServiceUnavailable
	}

	return response.Success(c, status, body)
}

func bindEventQuery(c echo.Context) (*usecase.SecurityEventQuery, error) {
	query := &usecase.SecurityEventQuery{}
	var (
		eventType, category, severity string
		success                       bool
	)

	binder := echo.QueryParamsBinder(c).
		Int("limit", &query.Limit).
		Int("offset", &query.Offset).
		String("eventType", &eventType).
		String("eventCategory", &category).
		String("severity", &severity)
	if category == "" {
		// Older clients send the short form.
		binder = binder.String("category", &category)
	}
	if c.QueryParam("success") != "" {
		binder = binder.Bool("success", &success)
		query.Success = &success
	}
	if err := binder.BindError(); err != nil {
		return nil, domainerrors.NewValidationError(err.Error())
	}

	if eventType != "" {
		t := entity.EventType(eventType)
		query.EventType = &t
	}
	if category != "" {
		cat := entity.EventCategory(category)
		query.Category = &cat
	}
	if severity != "" {
		s := entity.Severity(severity)
		query.Severity = &s
	}

	return query, nil
}

// bindDaysBack returns 0 when absent so the use case applies its default.
func bindDaysBack(c echo.Context) (int, error) {
	var daysBack int
	if err := echo.QueryParamsBinder(c).Int("daysBack", &daysBack).BindError(); err != nil {
		return 0, domainerrors.NewValidationError(err.Error())
	}

	return daysBack, nil
}
