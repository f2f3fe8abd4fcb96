package mcpclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wirebind/mcp-bridge-go/internal/bridge"
	"github.com/wirebind/mcp-bridge-go/internal/catalog"
	"github.com/wirebind/mcp-bridge-go/internal/errors"
)

// clientName and clientVersion identify the bridge in the MCP handshake.
const (
	clientName    = "mcp-bridge-go"
	clientVersion = "1.0.0"
)

// Compile-time verification that Client implements the bridge contract.
var _ bridge.ToolClient = (*Client)(nil)

// Client is the default ToolClient, built on the official MCP SDK.
//
// Connect and Close run on the session's worker goroutine. CallTool may be
// invoked concurrently; the SDK's ClientSession multiplexes requests over
// one connection, so that concurrency is inherited unchanged.
type Client struct {
	log     *slog.Logger
	config  ServerConfig
	session *mcp.ClientSession
}

// New creates an unconnected client for the given server config.
// The config must already be validated via ValidateConfig.
func New(log *slog.Logger, cfg ServerConfig) *Client {
	return &Client{
		log:    log.With("component", "mcpclient"),
		config: cfg,
	}
}

// Connect opens the transport and performs the MCP handshake.
//
// The SDK runs both phases inside a single Connect call, so a rejected
// handshake is indistinguishable from a failed transport open; both surface
// as a *ConnectionError wrapping the SDK error.
func (c *Client) Connect(ctx context.Context) error {
	transport, err := c.buildTransport()
	if err != nil {
		return err
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    clientName,
		Version: clientVersion,
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return &errors.ConnectionError{Err: err}
	}

	c.session = session
	c.log.Debug("Connected to tool server", "transport", c.config.GetType())

	return nil
}

// buildTransport maps the server config onto an SDK transport.
func (c *Client) buildTransport() (mcp.Transport, error) {
	switch cfg := c.config.(type) {
	case *StdioServerConfig:
		cmd := exec.Command(cfg.Command, cfg.Args...)

		if len(cfg.Env) > 0 {
			cmd.Env = os.Environ()
			for k, v := range cfg.Env {
				cmd.Env = append(cmd.Env, k+"="+v)
			}
		}

		return &mcp.CommandTransport{Command: cmd}, nil

	case *SSEServerConfig:
		return &mcp.SSEClientTransport{
			Endpoint:   cfg.URL,
			HTTPClient: httpClientFor(cfg.Headers),
		}, nil

	case *HTTPServerConfig:
		return &mcp.StreamableClientTransport{
			Endpoint:   cfg.URL,
			HTTPClient: httpClientFor(cfg.Headers),
		}, nil

	default:
		return nil, &errors.ConfigurationError{
			Field:   "type",
			Message: "unrecognized transport kind " + string(c.config.GetType()),
		}
	}
}

// ListTools fetches the server's advertised tool catalog.
func (c *Client) ListTools(ctx context.Context) ([]catalog.Descriptor, error) {
	res, err := c.session.ListTools(ctx, nil)
	if err != nil {
		return nil, &errors.ProtocolError{Phase: "list tools", Err: err}
	}

	descriptors := make([]catalog.Descriptor, 0, len(res.Tools))
	for _, t := range res.Tools {
		descriptors = append(descriptors, catalog.Descriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}

	return descriptors, nil
}

// CallTool invokes a tool by name.
//
// A tool-reported failure comes back as a Result with IsError set; only
// transport or protocol failures are returned as errors.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (*bridge.Result, error) {
	res, err := c.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		return nil, &errors.ProtocolError{Phase: fmt.Sprintf("call tool %q", name), Err: err}
	}

	return &bridge.Result{
		Content:           res.Content,
		StructuredContent: res.StructuredContent,
		IsError:           res.IsError,
	}, nil
}

// Close terminates the session. Safe on a client that never connected.
func (c *Client) Close() error {
	if c.session == nil {
		return nil
	}

	return c.session.Close()
}

// httpClientFor returns an http.Client that injects the configured headers,
// or the default client when no headers are set.
func httpClientFor(headers map[string]string) *http.Client {
	if len(headers) == 0 {
		return nil
	}

	return &http.Client{
		Transport: &headerRoundTripper{
			headers: headers,
			next:    http.DefaultTransport,
		},
	}
}

// headerRoundTripper adds static headers to every outgoing request.
type headerRoundTripper struct {
	headers map[string]string
	next    http.RoundTripper
}

func (t *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for k, v := range t.headers {
		clone.Header.Set(k, v)
	}

	return t.next.RoundTrip(clone)
}
