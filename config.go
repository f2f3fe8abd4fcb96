package mcpbridge

import "github.com/wirebind/mcp-bridge-go/internal/mcpclient"

// Re-export server configuration types from the internal package.

// ServerType identifies the transport kind used to reach a tool server.
type ServerType = mcpclient.ServerType

// Transport kinds recognized by the bridge.
const (
	// ServerTypeStdio spawns the server as a subprocess.
	ServerTypeStdio = mcpclient.ServerTypeStdio
	// ServerTypeSSE connects to a Server-Sent Events endpoint.
	ServerTypeSSE = mcpclient.ServerTypeSSE
	// ServerTypeHTTP connects to a streamable HTTP endpoint.
	ServerTypeHTTP = mcpclient.ServerTypeHTTP
)

// ServerConfig describes how to reach a tool server.
// Exactly one transport kind per config; immutable after construction.
type ServerConfig = mcpclient.ServerConfig

// StdioServerConfig configures a subprocess-based tool server.
type StdioServerConfig = mcpclient.StdioServerConfig

// SSEServerConfig configures a Server-Sent Events tool server.
type SSEServerConfig = mcpclient.SSEServerConfig

// HTTPServerConfig configures a streamable HTTP tool server.
type HTTPServerConfig = mcpclient.HTTPServerConfig

// ParseCommand splits a command line on whitespace into a StdioServerConfig.
// Returns a ConfigurationError for an empty command string.
func ParseCommand(command string) (*StdioServerConfig, error) {
	return mcpclient.ParseCommand(command)
}
