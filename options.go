package mcpbridge

import (
	"log/slog"
	"time"

	"github.com/wirebind/mcp-bridge-go/internal/bridge"
)

// Options holds adapter configuration. Use the With* functions to set fields.
type Options struct {
	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger

	// Timeout is the default deadline for connect and per-call invocations.
	// A per-call context deadline overrides it. Zero means the bridge default.
	Timeout time.Duration

	// GracePeriod is how long Close waits for in-flight invocations before
	// cancelling them. Zero means the bridge default.
	GracePeriod time.Duration

	// IncludeTools restricts the catalog to the named tools.
	IncludeTools []string

	// ExcludeTools removes the named tools from the catalog.
	// A name in both sets is excluded.
	ExcludeTools []string

	// Client injects a custom tool client, replacing the default MCP SDK
	// client. Mainly for testing.
	Client bridge.ToolClient
}

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithTimeout sets the default deadline for connect and tool invocations.
// A deadline on the caller's context takes precedence for that call.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

// WithGracePeriod sets how long Close waits for in-flight invocations
// before cancelling them.
func WithGracePeriod(grace time.Duration) Option {
	return func(o *Options) {
		o.GracePeriod = grace
	}
}

// WithIncludeTools restricts the session's catalog to the named tools.
// Names not advertised by the server fail the session at Connect.
func WithIncludeTools(names ...string) Option {
	return func(o *Options) {
		o.IncludeTools = names
	}
}

// WithExcludeTools removes the named tools from the session's catalog.
// Exclude wins over include for any overlapping name.
func WithExcludeTools(names ...string) Option {
	return func(o *Options) {
		o.ExcludeTools = names
	}
}

// WithToolClient injects a custom tool client implementation.
// When set, the server config is not used to build a client and may be nil.
func WithToolClient(client ToolClient) Option {
	return func(o *Options) {
		o.Client = client
	}
}
