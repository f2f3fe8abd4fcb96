package bridge

import (
	"context"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wirebind/mcp-bridge-go/internal/catalog"
)

// fakeClient is a scriptable ToolClient that counts every transport
// interaction, so tests can assert which calls reached it.
type fakeClient struct {
	mu sync.Mutex

	tools []catalog.Descriptor

	connectErr   error
	connectDelay time.Duration
	listErr      error
	callErr      error
	callDelay    time.Duration
	results      map[string]*Result

	connectCalls int
	listCalls    int
	callCalls    int
	closeCalls   int

	// lastCallErr records the context error seen by the most recent
	// CallTool, exposing best-effort cancellation to tests.
	lastCallErr error
}

var _ ToolClient = (*fakeClient)(nil)

// textResult builds a single-text-block result, optionally tool-failed.
func textResult(text string, isError bool) *Result {
	return &Result{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isError,
	}
}

func newFakeClient(tools ...string) *fakeClient {
	descriptors := make([]catalog.Descriptor, 0, len(tools))
	results := make(map[string]*Result, len(tools))

	for _, name := range tools {
		descriptors = append(descriptors, catalog.Descriptor{Name: name, Description: "fake " + name})
		results[name] = &Result{
			Content: []mcp.Content{&mcp.TextContent{Text: "ok: " + name}},
		}
	}

	return &fakeClient{tools: descriptors, results: results}
}

func (f *fakeClient) Connect(ctx context.Context) error {
	f.mu.Lock()
	f.connectCalls++
	delay := f.connectDelay
	err := f.connectErr
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return err
}

func (f *fakeClient) ListTools(ctx context.Context) ([]catalog.Descriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++

	if f.listErr != nil {
		return nil, f.listErr
	}

	return f.tools, nil
}

func (f *fakeClient) CallTool(ctx context.Context, name string, args map[string]any) (*Result, error) {
	f.mu.Lock()
	f.callCalls++
	delay := f.callDelay
	err := f.callErr
	result := f.results[name]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			f.mu.Lock()
			f.lastCallErr = ctx.Err()
			f.mu.Unlock()

			return nil, ctx.Err()
		}
	}

	if err != nil {
		return nil, err
	}

	return result, nil
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closeCalls++

	return nil
}

func (f *fakeClient) counts() (connect, list, call, closed int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.connectCalls, f.listCalls, f.callCalls, f.closeCalls
}

func (f *fakeClient) lastCallContextErr() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.lastCallErr
}
