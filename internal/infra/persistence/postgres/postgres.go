package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"crm/config"
	"crm/internal/domain/lifecycle"
	"crm/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the primary and any replicas, then hands the pool to the fx lifecycle:
// the primary must answer a ping before the service starts taking logins.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres config is required")
	}

	conn, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open credential store")
	}
	db := newSession(conn, params.Logger, params.Config)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get credential store sql.DB")
	}

	monitor := newPoolMonitor(params.Logger, sqlDB, params.Config.Store)
	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "credential store unreachable")
			}
			params.Logger.Info("Credential store connected",
				slog.Int("replicas", len(params.Config.Postgres.Replicas)),
				slog.Int("maxOpenConns", sqlDB.Stats().MaxOpenConnections),
			)

			go monitor.run(monitorCtx)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// newSession applies the session settings every repository relies on.
// Implicit per-statement transactions are off: the lockout and refresh
// statements are single atomic UPDATEs, and multi-step work goes through
// the transaction manager.
func newSession(db *gorm.DB, logger *slog.Logger, cfg *config.Config) *gorm.DB {
	return db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(logger, cfg),
	})
}

// poolMonitor reports connection waits. Waiting for a connection shows up as
// login latency long before the store itself is slow.
type poolMonitor struct {
	logger    *slog.Logger
	stats     func() sql.DBStats
	interval  time.Duration
	warnAfter time.Duration
}

func newPoolMonitor(logger *slog.Logger, sqlDB *sql.DB, cfg *config.StoreConfig) *poolMonitor {
	m := &poolMonitor{logger: logger, stats: sqlDB.Stats}
	if cfg != nil {
		m.interval = cfg.PoolMonitorInterval
		m.warnAfter = cfg.PoolWaitWarnAfter
	}

	return m
}

func (m *poolMonitor) run(ctx context.Context) {
	if m.logger == nil || m.interval <= 0 {
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	prev := m.stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := m.stats()
			m.report(ctx, prev, cur)
			prev = cur
		}
	}
}

// report logs the waits between two samples; quiet when nobody waited.
func (m *poolMonitor) report(ctx context.Context, prev, cur sql.DBStats) {
	waits := cur.WaitCount - prev.WaitCount
	if waits <= 0 {
		return
	}
	waited := cur.WaitDuration - prev.WaitDuration

	attrs := []slog.Attr{
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avgWait", waited/time.Duration(waits)),
		slog.Int("maxOpenConns", cur.MaxOpenConnections),
		slog.Int("inUse", cur.InUse),
		slog.Int("idle", cur.Idle),
	}

	level := slog.LevelDebug
	if m.warnAfter > 0 && waited >= m.warnAfter {
		level = slog.LevelWarn
	}
	m.logger.LogAttrs(ctx, level, "Credential store pool saturated", attrs...)
}
