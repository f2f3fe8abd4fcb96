package bridge

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wirebind/mcp-bridge-go/internal/catalog"
)

// ToolClient is the asynchronous protocol client the bridge drives.
//
// Implementations speak the tool-calling protocol to a server reached via a
// subprocess, an SSE endpoint, or a streamable HTTP endpoint. Connect and
// Close are invoked only on the session's worker goroutine; CallTool must be
// safe for concurrent use because the worker dispatches invocations in
// parallel. The default implementation wraps the official MCP SDK client.
type ToolClient interface {
	// Connect opens the transport and performs the protocol handshake.
	Connect(ctx context.Context) error

	// ListTools fetches the server's advertised tool catalog.
	ListTools(ctx context.Context) ([]catalog.Descriptor, error)

	// CallTool invokes a tool by name. A tool-reported failure is returned
	// as a Result with IsError set, not as an error.
	CallTool(ctx context.Context, name string, args map[string]any) (*Result, error)

	// Close terminates the transport. Safe to call on a client that never
	// connected.
	Close() error
}

// Result is the raw outcome of a tool invocation as reported by the server.
type Result struct {
	// Content holds the MCP content blocks of the response.
	Content []mcp.Content

	// StructuredContent is the optional structured payload, if the tool
	// declares an output schema.
	StructuredContent any

	// IsError reports a tool-level failure. The session surfaces it as an
	// InvocationError.
	IsError bool
}

// Text flattens the text content blocks into a single string, one block per
// line. Non-text blocks are skipped.
func (r *Result) Text() string {
	var sb strings.Builder

	for _, c := range r.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}

			sb.WriteString(tc.Text)
		}
	}

	return sb.String()
}
