package mcpbridge

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/wirebind/mcp-bridge-go/internal/bridge"
	"github.com/wirebind/mcp-bridge-go/internal/catalog"
	"github.com/wirebind/mcp-bridge-go/internal/errors"
	"github.com/wirebind/mcp-bridge-go/internal/mcpclient"
)

// Adapter bridges synchronous callers to an asynchronous tool client.
//
// Construction only validates configuration; no connection is opened and no
// goroutine is started until Connect. Each Connect returns an independent
// Session owning its own worker and client.
type Adapter struct {
	config  ServerConfig
	options *Options
	log     *slog.Logger

	// entered guards single-use of an injected client.
	mu      sync.Mutex
	entered bool
}

// New creates an adapter for the given server config.
//
// Returns a *ConfigurationError if the transport kind is unrecognized or
// required fields are missing. When a custom client is injected via
// WithToolClient, the config is unused and may be nil.
func New(cfg ServerConfig, opts ...Option) (*Adapter, error) {
	options := applyOptions(opts)

	if options.Client == nil {
		if err := mcpclient.ValidateConfig(cfg); err != nil {
			return nil, err
		}
	}

	log := options.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Adapter{
		config:  cfg,
		options: options,
		log:     log,
	}, nil
}

// Connect enters a session: it starts the background worker and, on it,
// opens the transport, performs the handshake, fetches the tool catalog, and
// applies the tool filter. The call blocks until the session is Ready, the
// configured timeout elapses, or a failure occurs.
//
// Failure modes: *ConnectionError (transport), *ProtocolError (handshake or
// catalog), *TimeoutError (deadline), *ConfigurationError (filter names not
// advertised). On failure the worker and any partially opened transport are
// torn down before Connect returns.
func (a *Adapter) Connect(ctx context.Context) (*Session, error) {
	client, err := a.buildClient()
	if err != nil {
		return nil, err
	}

	session := bridge.NewSession(client, bridge.Options{
		Timeout:     a.options.Timeout,
		GracePeriod: a.options.GracePeriod,
		Filter: catalog.Filter{
			Include: a.options.IncludeTools,
			Exclude: a.options.ExcludeTools,
		},
		Logger: a.log,
	})

	if err := session.Start(ctx); err != nil {
		return nil, err
	}

	return &Session{impl: session}, nil
}

// buildClient returns the injected client or constructs the default one.
// An injected client is single-use: its connection state belongs to one
// session, so a second Connect is rejected.
func (a *Adapter) buildClient() (bridge.ToolClient, error) {
	if a.options.Client == nil {
		return mcpclient.New(a.log, a.config), nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.entered {
		return nil, errors.ErrAdapterEntered
	}

	a.entered = true

	return a.options.Client, nil
}
