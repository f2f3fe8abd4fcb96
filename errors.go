package mcpbridge

import "github.com/wirebind/mcp-bridge-go/internal/errors"

// Re-export error types from internal package

// ConfigurationError indicates invalid construction input, detected locally.
type ConfigurationError = errors.ConfigurationError

// ConnectionError indicates failure to open the transport to the tool server.
type ConnectionError = errors.ConnectionError

// ProtocolError indicates a malformed or rejected server response.
type ProtocolError = errors.ProtocolError

// UnknownToolError indicates a tool name missing from the filtered catalog.
type UnknownToolError = errors.UnknownToolError

// InvocationError indicates the tool server reported a failure for a call.
type InvocationError = errors.InvocationError

// TimeoutError indicates a blocking operation exceeded its deadline.
type TimeoutError = errors.TimeoutError

// NotReadyError indicates an operation attempted outside the Ready state.
type NotReadyError = errors.NotReadyError

// BridgeError is the base interface for all bridge errors.
type BridgeError = errors.BridgeError

// Re-export sentinel errors from internal package.
var (
	// ErrSessionClosed indicates the session has been closed and cannot be reused.
	ErrSessionClosed = errors.ErrSessionClosed

	// ErrSessionNotReady indicates the session has not reached the Ready state.
	ErrSessionNotReady = errors.ErrSessionNotReady

	// ErrAdapterEntered indicates Connect() was already called on the adapter.
	ErrAdapterEntered = errors.ErrAdapterEntered

	// ErrInvokeTimeout indicates a tool invocation exceeded its deadline.
	ErrInvokeTimeout = errors.ErrInvokeTimeout

	// ErrWorkerStopped indicates the background worker has stopped.
	ErrWorkerStopped = errors.ErrWorkerStopped
)
