// Package scheduler runs periodic maintenance: expired session cleanup and
// security event retention.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"crm/config"
	"crm/internal/delivery"
	"crm/internal/domain/lifecycle"
	"crm/internal/errors"
	"crm/internal/infra/audit"
	"crm/internal/usecase"

	"go.uber.org/fx"
)

// job is one periodic task. run reports how many rows it affected.
type job struct {
	name  string
	every time.Duration
	run   func(ctx context.Context) (int64, error)
}

type scheduler struct {
	jobs   []job
	logger *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// ServerParams holds dependencies for the scheduler
type ServerParams struct {
	fx.In

	Lc       fx.Lifecycle
	Cfg      *config.Config
	Logger   *slog.Logger
	Tokens   usecase.TokenUsecase
	Archiver *audit.Archiver `optional:"true"`
}

// NewServer builds the scheduler delivery. Jobs start in Serve.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	jobs := []job{{
		name:  "refresh_token_cleanup",
		every: params.Cfg.Auth.TokenCleanupInterval,
		run:   params.Tokens.CleanupExpired,
	}}

	if params.Archiver != nil && params.Archiver.Enabled() {
		archiver := params.Archiver
		jobs = append(jobs, job{
			name:  "security_event_retention",
			every: params.Cfg.Audit.Retention.Interval,
			run: func(ctx context.Context) (int64, error) {
				return archiver.Run(ctx, time.Now().UTC())
			},
		})
	}

	s := newScheduler(jobs, params.Logger)
	params.Lc.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s, nil
}

func newScheduler(jobs []job, logger *slog.Logger) *scheduler {
	return &scheduler{
		jobs:   jobs,
		logger: logger,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Serve runs every job once immediately, then on its interval, until stopped.
func (s *scheduler) Serve(ctx context.Context) error {
	defer close(s.done)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()

	s.logger.Info("Starting scheduler", slog.Int("jobs", len(s.jobs)))

	var wg sync.WaitGroup
	for _, j := range s.jobs {
		wg.Go(func() {
			s.loop(runCtx, j)
		})
	}

	select {
	case <-s.stopCh:
	case <-ctx.Done():
	}
	cancel()
	wg.Wait()

	return nil
}

func (s *scheduler) loop(ctx context.Context, j job) {
	ticker := time.NewTicker(j.every)
	defer ticker.Stop()

	for {
		s.runOnce(ctx, j)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *scheduler) runOnce(ctx context.Context, j job) {
	jobCtx, cancel := context.WithTimeout(ctx, j.every)
	defer cancel()

	start := time.Now()
	affected, err := j.run(jobCtx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("Scheduled job failed",
			slog.String("job", j.name),
			slog.Any("error", err),
		)

		return
	}

	s.logger.Info("Scheduled job finished",
		slog.String("job", j.name),
		slog.Int64("affected", affected),
		slog.Duration("elapsed", time.Since(start)),
	)
}

func (s *scheduler) stop(ctx context.Context) error {
	s.logger.Info("Stopping scheduler")
	s.stopOnce.Do(func() { close(s.stopCh) })

	stopCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	select {
	case <-s.done:
		return nil
	case <-stopCtx.Done():
		return errors.Wrap(stopCtx.Err(), "scheduler did not stop in time")
	}
}
