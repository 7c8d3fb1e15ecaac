// Package migration applies the embedded goose migrations.
package migration

import (
	"context"
	"database/sql"
	"io/fs"
	"log/slog"

	"crm/config"
	"crm/internal/errors"
	"crm/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const dialect = "postgres"

// Migrator runs goose commands against one database handle.
type Migrator struct {
	db         *sql.DB
	migrations fs.FS
}

// NewMigrator prepares goose to read migrations from the embedded FS.
func NewMigrator(db *sql.DB) (*Migrator, error) {
	return newMigrator(db, migrations.FS)
}

func newMigrator(db *sql.DB, fsys fs.FS) (*Migrator, error) {
	goose.SetBaseFS(fsys)
	if err := goose.SetDialect(dialect); err != nil {
		return nil, errors.Wrap(err, "failed to set dialect")
	}

	return &Migrator{db: db, migrations: fsys}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	return errors.Wrap(goose.UpContext(ctx, m.db, "."), "failed to run migrations")
}

func (m *Migrator) Down(ctx context.Context) error {
	return errors.Wrap(goose.DownContext(ctx, m.db, "."), "failed to rollback migrations")
}

// DownTo rolls back until the database is at version.
func (m *Migrator) DownTo(ctx context.Context, version int64) error {
	return errors.Wrapf(goose.DownToContext(ctx, m.db, ".", version), "failed to migrate down to version %d", version)
}

func (m *Migrator) Status(ctx context.Context) error {
	return errors.Wrap(goose.StatusContext(ctx, m.db, "."), "failed to get migration status")
}

func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)

	return version, errors.Wrap(err, "failed to get migration version")
}

// LatestVersion returns the newest migration available in the embedded FS.
func (m *Migrator) LatestVersion() (int64, error) {
	collected, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	if err != nil {
		return 0, errors.Wrap(err, "failed to collect migrations")
	}
	if len(collected) == 0 {
		return 0, nil
	}

	return collected[len(collected)-1].Version, nil
}

// Reset rolls every migration back and applies them again.
func (m *Migrator) Reset(ctx context.Context) error {
	if err := goose.ResetContext(ctx, m.db, "."); err != nil {
		return errors.Wrap(err, "failed to reset migrations")
	}

	return m.Up(ctx)
}

// AutoMigrateParams defines the dependencies of RegisterAutoMigrate
type AutoMigrateParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
	DB     *gorm.DB
}

// RegisterAutoMigrate applies pending migrations on start when migration.autoMigrate is set.
func RegisterAutoMigrate(params AutoMigrateParams) error {
	if params.Config.Migration == nil || !params.Config.Migration.AutoMigrate {
		return nil
	}

	sqlDB, err := params.DB.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB for migrations")
	}
	migrator, err := NewMigrator(sqlDB)
	if err != nil {
		return err
	}

	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := migrator.Up(ctx); err != nil {
				return err
			}

			version, err := migrator.Version(ctx)
			if err != nil {
				return err
			}
			params.Logger.Info("Database schema up to date", slog.Int64("version", version))

			return nil
		},
	})

	return nil
}
