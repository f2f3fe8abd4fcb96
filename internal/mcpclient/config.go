package mcpclient

import (
	"strings"

	"github.com/wirebind/mcp-bridge-go/internal/errors"
)

// ServerType identifies the transport kind used to reach a tool server.
type ServerType string

const (
	// ServerTypeStdio spawns the server as a subprocess and talks over
	// stdin/stdout.
	ServerTypeStdio ServerType = "stdio"
	// ServerTypeSSE connects to a Server-Sent Events endpoint.
	ServerTypeSSE ServerType = "sse"
	// ServerTypeHTTP connects to a streamable HTTP endpoint.
	ServerTypeHTTP ServerType = "http"
)

// ServerConfig is the interface for tool server configurations.
// A config describes exactly one transport kind and is immutable once built.
type ServerConfig interface {
	GetType() ServerType
}

// Compile-time verification that all server config types implement ServerConfig.
var (
	_ ServerConfig = (*StdioServerConfig)(nil)
	_ ServerConfig = (*SSEServerConfig)(nil)
	_ ServerConfig = (*HTTPServerConfig)(nil)
)

// StdioServerConfig configures a subprocess-based tool server.
type StdioServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// GetType implements ServerConfig.
func (c *StdioServerConfig) GetType() ServerType { return ServerTypeStdio }

// SSEServerConfig configures a Server-Sent Events tool server.
type SSEServerConfig struct {
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
}

// GetType implements ServerConfig.
func (c *SSEServerConfig) GetType() ServerType { return ServerTypeSSE }

// HTTPServerConfig configures a streamable HTTP tool server.
type HTTPServerConfig struct {
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
}

// GetType implements ServerConfig.
func (c *HTTPServerConfig) GetType() ServerType { return ServerTypeHTTP }

// ParseCommand splits a command line into a StdioServerConfig.
//
// Splitting is on whitespace only; arguments that need shell quoting should
// use StdioServerConfig directly.
func ParseCommand(command string) (*StdioServerConfig, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, &errors.ConfigurationError{Field: "command", Message: "empty command string"}
	}

	return &StdioServerConfig{
		Command: fields[0],
		Args:    fields[1:],
	}, nil
}

// ValidateConfig checks the configuration shape without connecting.
func ValidateConfig(cfg ServerConfig) error {
	if cfg == nil {
		return &errors.ConfigurationError{Message: "server config is required"}
	}

	switch c := cfg.(type) {
	case *StdioServerConfig:
		if c.Command == "" {
			return &errors.ConfigurationError{Field: "command", Message: "subprocess command is required"}
		}

	case *SSEServerConfig:
		if c.URL == "" {
			return &errors.ConfigurationError{Field: "url", Message: "SSE endpoint URL is required"}
		}

	case *HTTPServerConfig:
		if c.URL == "" {
			return &errors.ConfigurationError{Field: "url", Message: "HTTP endpoint URL is required"}
		}

	default:
		return &errors.ConfigurationError{
			Field:   "type",
			Message: "unrecognized transport kind " + string(cfg.GetType()),
		}
	}

	return nil
}
