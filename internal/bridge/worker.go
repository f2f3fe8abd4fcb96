package bridge

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/wirebind/mcp-bridge-go/internal/errors"
)

// jobQueueSize bounds the submission queue. Submissions block once the
// worker falls this far behind.
const jobQueueSize = 16

// job is one unit of work handed to the worker.
type job struct {
	id    string
	op    string
	ctx   context.Context
	fn    func(ctx context.Context) (any, error)
	reply chan outcome

	// inline jobs run on the worker goroutine itself and are used for
	// lifecycle operations that must not overlap with anything else.
	inline bool
}

// outcome carries a job's result back to the blocked submitter.
type outcome struct {
	value any
	err   error
}

// worker owns the only goroutine that drives the tool client.
//
// Callers submit closures and block on a buffered reply channel. An accepted
// job always delivers an outcome: it either runs to completion, is cancelled
// during forced shutdown, or is failed by the shutdown drain before it was
// dispatched. A caller that gives up early (deadline, cancellation) cancels
// the job's context best-effort and the late result is discarded.
type worker struct {
	log  *slog.Logger
	jobs chan job

	// baseCtx is the parent of every job context; cancelling it aborts all
	// in-flight work during forced shutdown.
	baseCtx context.Context
	cancel  context.CancelFunc

	// inFlight tracks dispatched invocation goroutines.
	inFlight sync.WaitGroup

	eg *errgroup.Group

	// sendMu fences submissions against the shutdown drain: stop takes the
	// write lock before failing queued jobs, so no job can slip into the
	// queue afterwards.
	sendMu  sync.RWMutex
	stopped bool

	closeOnce sync.Once
	done      chan struct{}
}

// newWorker creates a worker without starting it.
func newWorker(log *slog.Logger) *worker {
	baseCtx, cancel := context.WithCancel(context.Background())

	return &worker{
		log:     log.With("component", "worker"),
		jobs:    make(chan job, jobQueueSize),
		baseCtx: baseCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// start launches the run loop.
func (w *worker) start() {
	w.eg = &errgroup.Group{}
	w.eg.Go(w.run)

	w.log.Debug("Worker started")
}

// run dispatches submitted jobs until the worker is stopped.
//
// Lifecycle jobs run inline on this goroutine; invocation jobs are
// dispatched into tracked goroutines so concurrent callers are not
// serialized against each other.
func (w *worker) run() error {
	defer w.log.Debug("Worker run loop stopped")

	for {
		select {
		case j := <-w.jobs:
			if j.inline {
				w.execute(j)

				continue
			}

			w.inFlight.Add(1)

			go func() {
				defer w.inFlight.Done()
				w.execute(j)
			}()

		case <-w.done:
			return nil
		}
	}
}

// execute runs a job and delivers its outcome.
// The reply channel is buffered, so delivery never blocks even when the
// submitter has already given up.
func (w *worker) execute(j job) {
	value, err := j.fn(j.ctx)

	if j.ctx.Err() != nil {
		w.log.Debug("Job cancelled, discarding result", "job_id", j.id, "op", j.op)
	}

	j.reply <- outcome{value: value, err: err}
}

// submit hands a closure to the worker and blocks until it delivers an
// outcome or the caller's context expires.
func (w *worker) submit(
	ctx context.Context,
	op string,
	inline bool,
	fn func(ctx context.Context) (any, error),
) (any, error) {
	opCtx, cancel := context.WithCancel(w.baseCtx)
	defer cancel()

	j := job{
		id:     ulid.Make().String(),
		op:     op,
		ctx:    opCtx,
		fn:     fn,
		reply:  make(chan outcome, 1),
		inline: inline,
	}

	if err := w.enqueue(ctx, j); err != nil {
		return nil, err
	}

	w.log.Debug("Job submitted", "job_id", j.id, "op", op)

	select {
	case out := <-j.reply:
		return out.value, out.err

	case <-ctx.Done():
		w.log.Debug("Caller gave up on job", "job_id", j.id, "op", op)

		return nil, ctx.Err()
	}
}

// enqueue places a job in the queue unless the worker has stopped.
func (w *worker) enqueue(ctx context.Context, j job) error {
	w.sendMu.RLock()
	defer w.sendMu.RUnlock()

	if w.stopped {
		return errors.ErrWorkerStopped
	}

	select {
	case w.jobs <- j:
		return nil

	case <-w.done:
		return errors.ErrWorkerStopped

	case <-ctx.Done():
		return ctx.Err()
	}
}

// closeDone safely closes the done channel exactly once.
func (w *worker) closeDone() {
	w.closeOnce.Do(func() {
		close(w.done)
	})
}

// stop shuts the worker down.
//
// New submissions are rejected immediately. In-flight invocations get up to
// grace to finish and deliver their results to blocked callers; any
// remainder is cancelled via the base context. Jobs still queued when the
// run loop exits are failed so their callers unblock. Stop returns once the
// run loop and all dispatched goroutines have exited. Safe to call multiple
// times.
func (w *worker) stop(grace time.Duration) {
	w.log.Debug("Stopping worker", "grace", grace)

	w.closeDone()

	// Join the run loop before touching the WaitGroup: once it exits,
	// nothing calls Add again, so the counter only falls from here on.
	// Dispatched goroutines keep running while we join.
	if w.eg != nil {
		_ = w.eg.Wait()
	}

	if grace > 0 && !w.waitInFlight(grace) {
		w.log.Warn("Grace period elapsed, cancelling in-flight invocations")
	}

	w.cancel()
	w.inFlight.Wait()

	w.drainQueue()

	w.log.Debug("Worker stopped")
}

// drainQueue fails every job that was accepted but never dispatched.
// The write lock fences out concurrent enqueues so none slip in afterwards.
func (w *worker) drainQueue() {
	w.sendMu.Lock()
	defer w.sendMu.Unlock()

	w.stopped = true

	for {
		select {
		case j := <-w.jobs:
			w.log.Debug("Failing undispatched job", "job_id", j.id, "op", j.op)
			j.reply <- outcome{err: errors.ErrWorkerStopped}

		default:
			return
		}
	}
}

// waitInFlight waits up to d for dispatched jobs to finish.
func (w *worker) waitInFlight(d time.Duration) bool {
	finished := make(chan struct{})

	go func() {
		w.inFlight.Wait()
		close(finished)
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-finished:
		return true
	case <-timer.C:
		return false
	}
}
