// Package bridge implements the synchronous session over an asynchronous
// tool client.
//
// Each session owns exactly one background worker goroutine. The worker is
// the only code that drives the client's lifecycle; blocking callers hand
// work across the boundary as a job plus a buffered reply channel and never
// touch the client directly. Invocation jobs are dispatched by the worker
// into goroutines it tracks, so concurrent callers are not serialized
// against each other.
package bridge
