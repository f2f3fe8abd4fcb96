package errors

import (
	"errors"
	"fmt"
	"time"
)

// BridgeError is the base interface for all bridge errors.
type BridgeError interface {
	error
	IsBridgeError() bool
}

// Compile-time verification that all error types implement BridgeError.
var (
	_ BridgeError = (*ConfigurationError)(nil)
	_ BridgeError = (*ConnectionError)(nil)
	_ BridgeError = (*ProtocolError)(nil)
	_ BridgeError = (*UnknownToolError)(nil)
	_ BridgeError = (*InvocationError)(nil)
	_ BridgeError = (*TimeoutError)(nil)
	_ BridgeError = (*NotReadyError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrSessionClosed indicates the session has been closed and cannot be reused.
	ErrSessionClosed = errors.New("session closed: sessions are single-use, create a new one with Connect()")

	// ErrSessionNotReady indicates the session has not reached the Ready state.
	ErrSessionNotReady = errors.New("session not ready")

	// ErrAdapterEntered indicates Connect() was already called on the adapter.
	ErrAdapterEntered = errors.New("adapter already entered")

	// ErrInvokeTimeout indicates a tool invocation exceeded its deadline.
	ErrInvokeTimeout = errors.New("invoke timeout")

	// ErrWorkerStopped indicates the background worker has stopped.
	ErrWorkerStopped = errors.New("bridge worker stopped")
)

// ConfigurationError indicates invalid construction input.
// It is detected locally and never reaches the tool server.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
	}

	return fmt.Sprintf("invalid configuration: %s", e.Message)
}

// IsBridgeError implements BridgeError.
func (e *ConfigurationError) IsBridgeError() bool { return true }

// ConnectionError indicates failure to open the transport to the tool server.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to tool server: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *ConnectionError) IsBridgeError() bool { return true }

// ProtocolError indicates a malformed or rejected server response.
type ProtocolError struct {
	Phase string
	Err   error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error during %s: %v", e.Phase, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *ProtocolError) IsBridgeError() bool { return true }

// UnknownToolError indicates the tool name is not in the filtered catalog.
// The check is local; no request reaches the tool server.
type UnknownToolError struct {
	Tool      string
	Available []string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q, available: %v", e.Tool, e.Available)
}

// IsBridgeError implements BridgeError.
func (e *UnknownToolError) IsBridgeError() bool { return true }

// InvocationError indicates the tool server reported a failure for a call.
type InvocationError struct {
	Tool    string
	Message string
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("tool %q failed: %s", e.Tool, e.Message)
}

// IsBridgeError implements BridgeError.
func (e *InvocationError) IsBridgeError() bool { return true }

// TimeoutError indicates a blocking operation exceeded its deadline.
// The underlying call is cancelled best-effort; the tool server may still
// complete it out-of-band, in which case the late result is discarded.
type TimeoutError struct {
	Op      string
	Tool    string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	if e.Tool != "" {
		return fmt.Sprintf("%s %q timed out after %s", e.Op, e.Tool, e.Timeout)
	}

	return fmt.Sprintf("%s timed out after %s", e.Op, e.Timeout)
}

func (e *TimeoutError) Unwrap() error {
	return ErrInvokeTimeout
}

// IsBridgeError implements BridgeError.
func (e *TimeoutError) IsBridgeError() bool { return true }

// NotReadyError indicates an operation was attempted outside the Ready state.
type NotReadyError struct {
	Op    string
	State string
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("%s requires a ready session, current state: %s", e.Op, e.State)
}

func (e *NotReadyError) Unwrap() error {
	return ErrSessionNotReady
}

// IsBridgeError implements BridgeError.
func (e *NotReadyError) IsBridgeError() bool { return true }
