// Package audit holds the write side of the security event log: a bounded
// asynchronous recorder and the retention archiver.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"crm/config"
	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	"crm/internal/domain/lifecycle"
	"crm/internal/domain/repository"
	"crm/internal/domain/service"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// AsyncRecorder persists security events from a bounded queue drained by a
// fixed worker pool. Record never blocks: a full queue or a stopped recorder
// drops the event to the error log.
type AsyncRecorder struct {
	repo      repository.SecurityEventRepository
	publisher service.SecurityEventPublisher
	logger    *slog.Logger

	workers      int
	maxRetries   int
	retryBackoff time.Duration
	writeTimeout time.Duration
	now          func() time.Time

	mu     sync.RWMutex
	closed bool
	queue  chan *entity.SecurityEvent
	wg     sync.WaitGroup
}

// NewAsyncRecorder builds a recorder. Call Start before Record has any effect beyond queueing.
func NewAsyncRecorder(
	repo repository.SecurityEventRepository,
	publisher service.SecurityEventPublisher,
	cfg *config.AuditConfig,
	logger *slog.Logger,
) *AsyncRecorder {
	return &AsyncRecorder{
		repo:         repo,
		publisher:    publisher,
		logger:       logger,
		workers:      max(cfg.Workers, 1),
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: cfg.RetryBackoff,
		writeTimeout: cfg.WriteTimeout,
		now:          time.Now,
		queue:        make(chan *entity.SecurityEvent, max(cfg.QueueSize, 1)),
	}
}

// RecorderParams holds dependencies for the fx-managed recorder
type RecorderParams struct {
	fx.In

	Lc        fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Repo      repository.SecurityEventRepository
	Publisher service.SecurityEventPublisher `optional:"true"`
}

// NewSecurityEventRecorder wires an AsyncRecorder into the fx lifecycle.
func NewSecurityEventRecorder(params RecorderParams) service.SecurityEventRecorder {
	recorder := NewAsyncRecorder(params.Repo, params.Publisher, params.Config.Audit, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			recorder.Start()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			return recorder.Stop(stopCtx)
		},
	})

	return recorder
}

// Start launches the worker pool.
func (r *AsyncRecorder) Start() {
	for range r.workers {
		r.wg.Add(1)
		go r.work()
	}
}

// Stop refuses new events and waits for queued ones to be written or ctx to end.
func (r *AsyncRecorder) Stop(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()

		return nil
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		r.logger.Error("Security event recorder stopped before the queue drained",
			slog.Int("pending", len(r.queue)),
		)

		return ctx.Err()
	}
}

// Record stamps defaults on event and enqueues it without waiting.
func (r *AsyncRecorder) Record(ctx context.Context, event *entity.SecurityEvent) {
	if event == nil {
		return
	}
	r.stamp(ctx, event)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.deadLetter(event, "recorder stopped", nil)

		return
	}

	select {
	case r.queue <- event:
	default:
		r.deadLetter(event, "queue full", nil)
	}
}

func (r *AsyncRecorder) stamp(ctx context.Context, event *entity.SecurityEvent) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = r.now().UTC()
	}
	if event.Category == "" {
		event.Category = entity.DefaultCategory(event.EventType)
	}
	if !event.Severity.IsValid() {
		event.Severity = entity.SeverityInfo
	}
	if event.RequestID == "" {
		event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	}
}

func (r *AsyncRecorder) work() {
	defer r.wg.Done()

	for event := range r.queue {
		r.write(event)
	}
}

// write persists event with bounded retries, then fans it out to the publisher.
func (r *AsyncRecorder) write(event *entity.SecurityEvent) {
	var err error
	backoff := r.retryBackoff
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
		err = r.repo.Create(ctx, event)
		cancel()
		if err == nil {
			break
		}

		r.logger.Warn("Security event write failed",
			slog.String("event_id", event.ID.String()),
			slog.Int("attempt", attempt+1),
			slog.Any("error", err),
		)
	}
	if err != nil {
		r.deadLetter(event, "retries exhausted", err)

		return
	}

	if r.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
	defer cancel()
	if err := r.publisher.PublishSecurityEvent(ctx, event); err != nil {
		r.logger.Warn("Security event export failed",
			slog.String("event_id", event.ID.String()),
			slog.Any("error", err),
		)
	}
}

// deadLetter is the fallback channel: the full event goes to the error log.
func (r *AsyncRecorder) deadLetter(event *entity.SecurityEvent, reason string, err error) {
	attrs := []slog.Attr{
		slog.String("reason", reason),
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", string(event.EventType)),
		slog.String("severity", string(event.Severity)),
		slog.String("email", event.Email),
		slog.String("ip_address", event.IPAddress),
		slog.Bool("success", event.Success),
		slog.String("message", event.Message),
		slog.Any("metadata", event.Metadata),
		slog.Time("created_at", event.CreatedAt),
	}
	if event.UserID != nil {
		attrs = append(attrs, slog.String("user_id", event.UserID.String()))
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}

	r.logger.LogAttrs(context.Background(), slog.LevelError, "Security event dropped", attrs...)
}
