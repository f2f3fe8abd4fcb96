package bridge

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wirebind/mcp-bridge-go/internal/catalog"
	"github.com/wirebind/mcp-bridge-go/internal/errors"
)

const (
	// DefaultTimeout applies to connect and invoke when no timeout is
	// configured and the caller's context carries no deadline.
	DefaultTimeout = 30 * time.Second

	// DefaultGracePeriod is how long Close waits for in-flight invocations
	// before cancelling them.
	DefaultGracePeriod = 5 * time.Second
)

// State is the session lifecycle state.
type State int

// Session lifecycle: Created -> Connecting -> Ready <-> Invoking -> Closing -> Closed.
const (
	StateCreated State = iota
	StateConnecting
	StateReady
	StateInvoking
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateInvoking:
		return "invoking"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Options configures a session.
type Options struct {
	// Timeout is the default deadline for connect and per-call invocations.
	// Zero means DefaultTimeout.
	Timeout time.Duration

	// GracePeriod is how long Close waits for in-flight invocations.
	// Zero means DefaultGracePeriod.
	GracePeriod time.Duration

	// Filter prunes the advertised tool catalog at session start.
	Filter catalog.Filter

	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger
}

// Session is the live, stateful bridge resource.
//
// A session is owned by the caller that created it. Multiple goroutines may
// share one session, accepting that concurrently issued invocations have no
// guaranteed relative completion order. Sessions are single-use: once closed
// they cannot be restarted.
type Session struct {
	log    *slog.Logger
	client ToolClient
	worker *worker

	timeout time.Duration
	grace   time.Duration
	filter  catalog.Filter

	mu      sync.Mutex
	state   State
	catalog *catalog.Catalog

	// invoking counts in-flight CallTool operations.
	invoking atomic.Int64

	closeOnce sync.Once
}

// NewSession creates an unconnected session over client.
// No goroutine is started until Start is called.
func NewSession(client ToolClient, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	grace := opts.GracePeriod
	if grace <= 0 {
		grace = DefaultGracePeriod
	}

	return &Session{
		log:     log.With("component", "session"),
		client:  client,
		timeout: timeout,
		grace:   grace,
		filter:  opts.Filter,
		state:   StateCreated,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateReady && s.invoking.Load() > 0 {
		return StateInvoking
	}

	return s.state
}

// Start connects the session: it launches the worker and, on the worker,
// opens the transport, performs the handshake, fetches the tool catalog, and
// applies the filter. The caller blocks until Ready or failure.
//
// On any failure the worker is joined and the client closed before Start
// returns, leaving no live resources behind.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()

	if s.state != StateCreated {
		state := s.state
		s.mu.Unlock()

		if state == StateClosed {
			return errors.ErrSessionClosed
		}

		return errors.ErrAdapterEntered
	}

	s.state = StateConnecting
	s.mu.Unlock()

	s.log.Debug("Connecting session")

	s.worker = newWorker(s.log)
	s.worker.start()

	ctx, cancel, timeout := s.withTimeout(ctx)
	defer cancel()

	value, err := s.worker.submit(ctx, "connect", true, func(ctx context.Context) (any, error) {
		if err := s.client.Connect(ctx); err != nil {
			return nil, err
		}

		descriptors, err := s.client.ListTools(ctx)
		if err != nil {
			return nil, err
		}

		if err := s.filter.Validate(descriptors); err != nil {
			return nil, err
		}

		return catalog.New(s.filter.Apply(descriptors)), nil
	})
	if err != nil {
		s.teardownAfterFailedStart()

		if stderrors.Is(err, context.DeadlineExceeded) {
			return &errors.TimeoutError{Op: "connect", Timeout: timeout}
		}

		return err
	}

	s.mu.Lock()
	s.catalog = value.(*catalog.Catalog)
	s.state = StateReady
	s.mu.Unlock()

	s.log.Info("Session ready", "tools", len(s.catalog.Descriptors()))

	return nil
}

// teardownAfterFailedStart releases everything a failed Start may have
// acquired: the worker and a partially opened client.
func (s *Session) teardownAfterFailedStart() {
	s.worker.stop(0)

	if err := s.client.Close(); err != nil {
		s.log.Debug("Closing client after failed connect", "error", err)
	}

	s.mu.Lock()
	s.state = StateClosed
	s.mu.Unlock()

	// Mark closed so a later Close() is a no-op.
	s.closeOnce.Do(func() {})
}

// ListTools returns the filtered catalog cached at session start.
// It is a local read; the server is not re-queried.
func (s *Session) ListTools() ([]catalog.Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return nil, &errors.NotReadyError{Op: "list tools", State: s.state.String()}
	}

	return s.catalog.Descriptors(), nil
}

// CallTool invokes a tool and blocks until its result arrives or the
// effective deadline elapses.
//
// The effective deadline is the caller's context deadline if set, otherwise
// the session default. On expiry the in-flight call is cancelled best-effort;
// the server may still complete it out-of-band and the late result is
// discarded.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (*Result, error) {
	s.mu.Lock()

	if s.state != StateReady {
		state := s.state
		s.mu.Unlock()

		return nil, &errors.NotReadyError{Op: "call tool", State: state.String()}
	}

	cat := s.catalog
	s.mu.Unlock()

	// Catalog miss is resolved locally: no round trip to the server.
	if _, ok := cat.Lookup(name); !ok {
		return nil, &errors.UnknownToolError{Tool: name, Available: cat.Names()}
	}

	s.invoking.Add(1)
	defer s.invoking.Add(-1)

	ctx, cancel, timeout := s.withTimeout(ctx)
	defer cancel()

	s.log.Debug("Calling tool", "tool", name)

	value, err := s.worker.submit(ctx, "call "+name, false, func(ctx context.Context) (any, error) {
		return s.client.CallTool(ctx, name, args)
	})
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, &errors.TimeoutError{Op: "call tool", Tool: name, Timeout: timeout}
		}

		return nil, fmt.Errorf("call tool %q: %w", name, err)
	}

	result := value.(*Result)
	if result.IsError {
		return nil, &errors.InvocationError{Tool: name, Message: result.Text()}
	}

	return result, nil
}

// Close releases the session: it stops accepting work, waits up to the grace
// period for in-flight invocations, cancels any remainder, closes the client,
// and joins the worker.
//
// Close is idempotent; closing an already-closed session returns nil. A
// session that never connected has no worker and nothing to release.
func (s *Session) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		s.mu.Lock()
		prior := s.state
		s.state = StateClosing
		s.mu.Unlock()

		if prior == StateCreated {
			s.mu.Lock()
			s.state = StateClosed
			s.mu.Unlock()

			return
		}

		s.log.Debug("Closing session", "prior_state", prior.String())

		s.worker.stop(s.grace)

		closeErr = s.client.Close()

		s.mu.Lock()
		s.state = StateClosed
		s.mu.Unlock()

		s.log.Info("Session closed")
	})

	return closeErr
}

// withTimeout applies the session default timeout unless the caller's
// context already carries a deadline. The returned duration is the effective
// timeout, used for error reporting.
func (s *Session) withTimeout(ctx context.Context) (context.Context, context.CancelFunc, time.Duration) {
	if d, ok := ctx.Deadline(); ok {
		ctx, cancel := context.WithCancel(ctx)

		return ctx, cancel, time.Until(d).Round(time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)

	return ctx, cancel, s.timeout
}
