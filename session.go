package mcpbridge

import (
	"context"

	"github.com/wirebind/mcp-bridge-go/internal/bridge"
)

// SessionState is the lifecycle state of a session.
type SessionState = bridge.State

// Session lifecycle states.
const (
	StateCreated    = bridge.StateCreated
	StateConnecting = bridge.StateConnecting
	StateReady      = bridge.StateReady
	StateInvoking   = bridge.StateInvoking
	StateClosing    = bridge.StateClosing
	StateClosed     = bridge.StateClosed
)

// Session is a live, connected bridge session.
//
// Every method blocks the calling goroutine for the full duration of the
// corresponding background operation; nothing returns early and completes
// later. Sessions are single-use: after Close they cannot be restarted.
//
// Multiple goroutines may share one session. Concurrently issued invocations
// are each individually atomic but complete in no guaranteed relative order.
type Session struct {
	impl *bridge.Session
}

// ListTools returns the filtered tool catalog cached at Connect.
// It is a local read; the server is not re-queried. Returns *NotReadyError
// before Ready or after Close.
func (s *Session) ListTools() ([]ToolDescriptor, error) {
	return s.impl.ListTools()
}

// CallTool invokes a tool by name and blocks until its result arrives or the
// effective deadline elapses.
//
// The effective deadline is the context deadline if set, otherwise the
// session default. An unknown tool name returns *UnknownToolError without a
// server round trip. A tool-reported failure returns *InvocationError; a
// deadline expiry returns *TimeoutError with the underlying call cancelled
// best-effort.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (*ToolResult, error) {
	return s.impl.CallTool(ctx, name, args)
}

// State returns the session's current lifecycle state.
func (s *Session) State() SessionState {
	return s.impl.State()
}

// Close releases the session: in-flight invocations get the grace period to
// finish, the remainder is cancelled, the transport is closed, and the
// worker is joined. Safe to call multiple times; closing an already-closed
// session is a no-op.
func (s *Session) Close() error {
	return s.impl.Close()
}
