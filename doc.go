// Package mcpbridge lets synchronous Go code drive MCP tool servers.
//
// The MCP client ecosystem is built around asynchronous, connection-owning
// sessions. This package bridges that model to plain blocking calls: each
// session runs one background worker goroutine that owns the protocol client,
// and every public operation hands work to that worker and blocks until the
// result comes back. Callers never manage goroutines, channels, or the
// client's lifecycle themselves.
//
// # Basic Usage
//
// For scoped use with automatic cleanup, use WithSession:
//
//	cfg := &mcpbridge.StdioServerConfig{
//	    Command: "npx",
//	    Args:    []string{"-y", "@modelcontextprotocol/server-filesystem", "."},
//	}
//
//	err := mcpbridge.WithSession(ctx, cfg, func(s *mcpbridge.Session) error {
//	    tools, err := s.ListTools()
//	    if err != nil {
//	        return err
//	    }
//	    for _, t := range tools {
//	        fmt.Println(t.Name, "-", t.Description)
//	    }
//
//	    result, err := s.CallTool(ctx, "read_file", map[string]any{"path": "go.mod"})
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(result.Text())
//	    return nil
//	})
//
// # Explicit Lifecycle
//
// For more control, construct an adapter and manage the session yourself:
//
//	adapter, err := mcpbridge.New(cfg,
//	    mcpbridge.WithTimeout(10*time.Second),
//	    mcpbridge.WithExcludeTools("delete_file"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session, err := adapter.Connect(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
// # Tool Filtering
//
// WithIncludeTools and WithExcludeTools prune the advertised catalog once at
// Connect. A name present in both sets is excluded: exclude wins, so
// overlapping filters fail safe. Filter names the server does not advertise
// fail the session at Connect with a ConfigurationError.
//
// # Concurrency
//
// A session may be shared across goroutines. Invocations issued concurrently
// run concurrently on the worker side and complete in no guaranteed relative
// order; operations issued sequentially from one goroutine observe their
// effects in submission order.
//
// # Error Handling
//
// Failures are typed errors: ConfigurationError, ConnectionError,
// ProtocolError, UnknownToolError, InvocationError, TimeoutError, and
// NotReadyError, plus sentinels such as ErrSessionClosed for errors.Is
// checks:
//
//	result, err := s.CallTool(ctx, "slow_tool", args)
//	if err != nil {
//	    var timeout *mcpbridge.TimeoutError
//	    if errors.As(err, &timeout) {
//	        log.Printf("gave up on %s after %s", timeout.Tool, timeout.Timeout)
//	    }
//	}
package mcpbridge
