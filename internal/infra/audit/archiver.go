package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"crm/config"
	"crm/internal/domain/entity"
	"crm/internal/domain/repository"
	"crm/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
)

const archiveKeyPrefix = "security-events"

// Archiver moves security events past the retention window into a blob bucket
// as NDJSON, then purges exactly the rows it wrote.
type Archiver struct {
	repo      repository.SecurityEventRepository
	bucket    *blob.Bucket
	retention time.Duration
	batchSize int
	logger    *slog.Logger
}

// NewArchiver builds an Archiver over an opened bucket. A nil bucket disables archival and purging.
func NewArchiver(repo repository.SecurityEventRepository, bucket *blob.Bucket, cfg config.RetentionConfig, logger *slog.Logger) *Archiver {
	return &Archiver{
		repo:      repo,
		bucket:    bucket,
		retention: time.Duration(cfg.Days) * 24 * time.Hour,
		batchSize: max(cfg.BatchSize, 1),
		logger:    logger,
	}
}

// ArchiverParams holds dependencies for the fx-managed archiver
type ArchiverParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
	Repo   repository.SecurityEventRepository
}

// NewArchiverFromConfig opens the configured bucket and closes it on shutdown.
func NewArchiverFromConfig(params ArchiverParams) (*Archiver, error) {
	retention := params.Config.Audit.Retention
	if !retention.Enabled || retention.BucketURL == "" {
		params.Logger.Info("Security event archival disabled")

		return NewArchiver(params.Repo, nil, retention, params.Logger), nil
	}

	bucket, err := blob.OpenBucket(params.Ctx, retention.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open archive bucket %s", retention.BucketURL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return NewArchiver(params.Repo, bucket, retention, params.Logger), nil
}

// Enabled reports whether Run will do anything.
func (a *Archiver) Enabled() bool {
	return a.bucket != nil && a.retention > 0
}

// Run archives and purges every event created before now minus the retention window.
// It returns the number of purged rows. A failed write stops the run without purging that batch.
func (a *Archiver) Run(ctx context.Context, now time.Time) (int64, error) {
	if !a.Enabled() {
		return 0, nil
	}

	cutoff := now.Add(-a.retention)
	var purged int64
	for {
		if err := ctx.Err(); err != nil {
			return purged, errors.WithStack(err)
		}

		events, err := a.repo.ListBefore(ctx, cutoff, a.batchSize)
		if err != nil {
			return purged, err
		}
		if len(events) == 0 {
			return purged, nil
		}

		key, err := a.writeBatch(ctx, events)
		if err != nil {
			return purged, err
		}

		ids := make([]uuid.UUID, 0, len(events))
		for _, e := range events {
			ids = append(ids, e.ID)
		}
		deleted, err := a.repo.DeleteByIDs(ctx, ids)
		if err != nil {
			return purged, err
		}
		purged += deleted

		a.logger.Info("Archived security events",
			slog.String("key", key),
			slog.Int("archived", len(events)),
			slog.Int64("purged", deleted),
		)

		if len(events) < a.batchSize || deleted == 0 {
			return purged, nil
		}
	}
}

func (a *Archiver) writeBatch(ctx context.Context, events []*entity.SecurityEvent) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, e := range events {
		if err := enc.Encode(e); err != nil {
			return "", errors.Wrapf(err, "encode security event %s", e.ID)
		}
	}

	key := ArchiveKey(events[0])
	err := a.bucket.WriteAll(ctx, key, buf.Bytes(), &blob.WriterOptions{
		ContentType: "application/x-ndjson",
	})
	if err != nil {
		return "", errors.Wrapf(err, "write archive object %s", key)
	}

	return key, nil
}

// ArchiveKey names the object holding a batch that starts with first.
func ArchiveKey(first *entity.SecurityEvent) string {
	return fmt.Sprintf("%s/%s/%s.ndjson", archiveKeyPrefix, first.CreatedAt.UTC().Format("2006/01/02"), first.ID)
}
