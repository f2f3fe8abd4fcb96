package bridge

import (
	"context"
	stderrors "errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wirebind/mcp-bridge-go/internal/errors"
)

func TestWorker_SubmitDeliversResult(t *testing.T) {
	w := newWorker(slog.Default())
	w.start()

	defer w.stop(0)

	value, err := w.submit(context.Background(), "echo", false, func(ctx context.Context) (any, error) {
		return 42, nil
	})

	require.NoError(t, err)
	require.Equal(t, 42, value)
}

func TestWorker_SubmitAfterStop(t *testing.T) {
	w := newWorker(slog.Default())
	w.start()
	w.stop(0)

	_, err := w.submit(context.Background(), "echo", false, func(ctx context.Context) (any, error) {
		return nil, nil
	})

	require.ErrorIs(t, err, errors.ErrWorkerStopped)
}

func TestWorker_StopMultipleCalls(t *testing.T) {
	w := newWorker(slog.Default())
	w.start()

	w.stop(0)
	w.stop(0)
	w.stop(0)
}

func TestWorker_AbandonedJobGetsCancelled(t *testing.T) {
	w := newWorker(slog.Default())
	w.start()

	defer w.stop(0)

	sawCancel := make(chan struct{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := w.submit(ctx, "hang", false, func(ctx context.Context) (any, error) {
		<-ctx.Done()
		close(sawCancel)

		return nil, ctx.Err()
	})

	require.ErrorIs(t, err, context.DeadlineExceeded)

	select {
	case <-sawCancel:
	case <-time.After(time.Second):
		t.Fatal("abandoned job never saw cancellation")
	}
}

func TestWorker_StopCancelsInFlightAfterGrace(t *testing.T) {
	w := newWorker(slog.Default())
	w.start()

	started := make(chan struct{})
	result := make(chan error, 1)

	go func() {
		_, err := w.submit(context.Background(), "hang", false, func(ctx context.Context) (any, error) {
			close(started)
			<-ctx.Done()

			return nil, ctx.Err()
		})
		result <- err
	}()

	<-started
	w.stop(10 * time.Millisecond)

	select {
	case err := <-result:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("blocked caller never unblocked after stop")
	}
}

func TestWorker_InFlightResultDeliveredWithinGrace(t *testing.T) {
	w := newWorker(slog.Default())
	w.start()

	started := make(chan struct{})
	result := make(chan error, 1)

	go func() {
		_, err := w.submit(context.Background(), "brief", false, func(ctx context.Context) (any, error) {
			close(started)
			time.Sleep(20 * time.Millisecond)

			return "done", nil
		})
		result <- err
	}()

	<-started
	w.stop(time.Second)

	// The job finished inside the grace period, so its caller gets the
	// real outcome rather than a cancellation.
	require.NoError(t, <-result)
}

func TestWorker_ConcurrentSubmitAndStop(t *testing.T) {
	// Exercises the submission/shutdown race: every accepted job must
	// deliver an outcome. Run with -race.
	for range 50 {
		w := newWorker(slog.Default())
		w.start()

		var wg sync.WaitGroup

		for range 4 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_, err := w.submit(context.Background(), "op", false, func(ctx context.Context) (any, error) {
					return nil, nil
				})
				if err != nil && !stderrors.Is(err, errors.ErrWorkerStopped) {
					t.Errorf("unexpected submit error: %v", err)
				}
			}()
		}

		w.stop(0)
		wg.Wait()
	}
}

func TestWorker_ConcurrentSubmitAndStopWithGrace(t *testing.T) {
	// Graceful shutdown must not register a WaitGroup waiter while the run
	// loop is still dispatching queued jobs: the waiter goroutine only
	// starts after the loop has been joined. Run with -race.
	for range 50 {
		w := newWorker(slog.Default())
		w.start()

		var wg sync.WaitGroup

		for range 4 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_, err := w.submit(context.Background(), "op", false, func(ctx context.Context) (any, error) {
					time.Sleep(time.Millisecond)

					return nil, ctx.Err()
				})
				if err != nil &&
					!stderrors.Is(err, errors.ErrWorkerStopped) &&
					!stderrors.Is(err, context.Canceled) {
					t.Errorf("unexpected submit error: %v", err)
				}
			}()
		}

		w.stop(5 * time.Millisecond)
		wg.Wait()
	}
}

func TestWorker_InlineJobRunsOnWorker(t *testing.T) {
	w := newWorker(slog.Default())
	w.start()

	defer w.stop(0)

	value, err := w.submit(context.Background(), "lifecycle", true, func(ctx context.Context) (any, error) {
		return "connected", nil
	})

	require.NoError(t, err)
	require.Equal(t, "connected", value)
}

func TestWorker_SubmitErrorPassthrough(t *testing.T) {
	w := newWorker(slog.Default())
	w.start()

	defer w.stop(0)

	boom := stderrors.New("boom")

	_, err := w.submit(context.Background(), "fail", false, func(ctx context.Context) (any, error) {
		return nil, boom
	})

	require.ErrorIs(t, err, boom)
}
