package audit

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"crm/internal/domain/entity"
	"crm/internal/errors"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventRepository keeps events in memory. failures makes the next N Create calls fail;
// block, when non-nil, holds every Create until it is closed.
type fakeEventRepository struct {
	mu       sync.Mutex
	events   []*entity.SecurityEvent
	failures int
	creates  int
	block    chan struct{}
}

func (r *fakeEventRepository) Create(ctx context.Context, event *entity.SecurityEvent) error {
	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.creates++
	if r.failures > 0 {
		r.failures--

		return errors.New("store unavailable")
	}
	for _, e := range r.events {
		if e.ID == event.ID {
			return nil
		}
	}
	cp := *event
	r.events = append(r.events, &cp)

	return nil
}

func (r *fakeEventRepository) snapshot() []*entity.SecurityEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.events)
}

func (r *fakeEventRepository) List(context.Context, entity.SecurityEventFilter) ([]*entity.SecurityEvent, error) {
	return r.snapshot(), nil
}

func (r *fakeEventRepository) Count(context.Context, entity.SecurityEventFilter) (int64, error) {
	return int64(len(r.snapshot())), nil
}

func (r *fakeEventRepository) StatsByCategory(context.Context, *uuid.UUID, time.Time) ([]*entity.CategoryStats, error) {
	return nil, nil
}

func (r *fakeEventRepository) CountSince(context.Context, time.Time) (int64, error) {
	return int64(len(r.snapshot())), nil
}

func (r *fakeEventRepository) TopEventTypes(context.Context, time.Time, int) ([]*entity.EventTypeCount, error) {
	return nil, nil
}

func (r *fakeEventRepository) ListBefore(_ context.Context, cutoff time.Time, limit int) ([]*entity.SecurityEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.SecurityEvent
	for _, e := range r.events {
		if e.CreatedAt.Before(cutoff) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b *entity.SecurityEvent) int { return a.CreatedAt.Compare(b.CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *fakeEventRepository) DeleteByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.events)
	r.events = slices.DeleteFunc(r.events, func(e *entity.SecurityEvent) bool {
		return slices.Contains(ids, e.ID)
	})

	return int64(before - len(r.events)), nil
}

func (r *fakeEventRepository) Ping(context.Context) error {
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []uuid.UUID
	err       error
}

func (p *fakePublisher) PublishSecurityEvent(_ context.Context, event *entity.SecurityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.published = append(p.published, event.ID)

	return p.err
}

func (p *fakePublisher) Close() error {
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.published)
}
