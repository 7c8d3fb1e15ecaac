package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"crm/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_RunsJobsUntilStopped(t *testing.T) {
	var cleanups, failures atomic.Int32

	s := newScheduler([]job{
		{
			name:  "cleanup",
			every: 10 * time.Millisecond,
			run: func(context.Context) (int64, error) {
				cleanups.Add(1)

				return 1, nil
			},
		},
		{
			name:  "flaky",
			every: 10 * time.Millisecond,
			run: func(context.Context) (int64, error) {
				failures.Add(1)

				return 0, errors.New("bucket unreachable")
			},
		},
	}, newDiscardLogger())

	served := make(chan error, 1)
	go func() { served <- s.Serve(context.Background()) }()

	require.Eventually(t, func() bool {
		return cleanups.Load() >= 3 && failures.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond, "a failing job must not stop the others")

	require.NoError(t, s.stop(context.Background()))
	assert.NoError(t, <-served)

	// Stopping twice is harmless.
	require.NoError(t, s.stop(context.Background()))
}

func TestScheduler_RunsImmediately(t *testing.T) {
	ran := make(chan struct{}, 1)
	s := newScheduler([]job{{
		name:  "hourly",
		every: time.Hour,
		run: func(context.Context) (int64, error) {
			ran <- struct{}{}

			return 0, nil
		},
	}}, newDiscardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- s.Serve(ctx) }()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}

	cancel()
	assert.NoError(t, <-served)
}
