package mcpbridge

import (
	"context"
	"fmt"
)

// WithSession manages session lifecycle with automatic cleanup.
//
// This helper creates an adapter, connects it, executes the callback, and
// ensures the session is released via Close() on every exit path, including
// when the callback returns an error. If Close() fails after a successful
// callback, a warning is logged but does not override the callback's error.
//
// Example usage:
//
//	err := mcpbridge.WithSession(ctx,
//	    &mcpbridge.StdioServerConfig{
//	        Command: "npx",
//	        Args:    []string{"-y", "@modelcontextprotocol/server-filesystem", "."},
//	    },
//	    func(s *mcpbridge.Session) error {
//	        result, err := s.CallTool(ctx, "read_file", map[string]any{"path": "README.md"})
//	        if err != nil {
//	            return err
//	        }
//	        fmt.Println(result.Text())
//	        return nil
//	    },
//	    mcpbridge.WithIncludeTools("read_file"),
//	)
func WithSession(
	ctx context.Context,
	cfg ServerConfig,
	fn func(*Session) error,
	opts ...Option,
) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	adapter, err := New(cfg, opts...)
	if err != nil {
		return err
	}

	session, err := adapter.Connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect session: %w", err)
	}

	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			adapter.log.Warn("failed to close session", "error", closeErr)
		}
	}()

	return fn(session)
}
