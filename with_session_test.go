package mcpbridge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithSession_RunsCallbackAndCleansUp(t *testing.T) {
	stub := newStubClient("read_file")

	var sawTools []ToolDescriptor

	err := WithSession(context.Background(), nil, func(s *Session) error {
		tools, err := s.ListTools()
		if err != nil {
			return err
		}

		sawTools = tools

		return nil
	}, WithToolClient(stub))

	require.NoError(t, err)
	require.Len(t, sawTools, 1)
	require.Equal(t, 1, stub.closeCalls, "session must be released after the callback")
}

func TestWithSession_ClosesOnCallbackError(t *testing.T) {
	stub := newStubClient("read_file")
	boom := errors.New("callback failed")

	err := WithSession(context.Background(), nil, func(s *Session) error {
		return boom
	}, WithToolClient(stub))

	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, stub.closeCalls, "session must be released even when the callback fails")
}

func TestWithSession_PropagatesConfigurationError(t *testing.T) {
	err := WithSession(context.Background(), &StdioServerConfig{}, func(s *Session) error {
		t.Fatal("callback must not run when construction fails")

		return nil
	})

	var cfgErr *ConfigurationError

	require.ErrorAs(t, err, &cfgErr)
}

func TestWithSession_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stub := newStubClient("read_file")

	err := WithSession(ctx, nil, func(s *Session) error {
		t.Fatal("callback must not run with a cancelled context")

		return nil
	}, WithToolClient(stub))

	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, stub.connectCalls)
}
