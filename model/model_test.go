package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, respCh <-chan Response, errCh <-chan error) []Response {
	t.Helper()
	var responses []Response
	for resp := range respCh {
		responses = append(responses, resp)
	}
	require.NoError(t, <-errCh)
	return responses
}

func TestMockBackendCannedResponse(t *testing.T) {
	backend := NewMockBackend("mock-1", "mock")
	backend.AddResponse("ping", "pong")

	respCh, errCh := backend.Query(context.Background(), Request{
		Messages: []Message{{Role: "user", Content: "ping"}},
	})
	responses := drain(t, respCh, errCh)

	require.Len(t, responses, 1)
	assert.False(t, responses[0].Partial)
	assert.Equal(t, "pong", responses[0].Text)
	assert.Equal(t, "stop", responses[0].FinishReason)
}

func TestMockBackendEmptyCannedResponse(t *testing.T) {
	backend := NewMockBackend("mock-1", "mock")
	backend.AddResponse("ping", "")

	respCh, errCh := backend.Query(context.Background(), Request{
		Messages: []Message{{Role: "user", Content: "ping"}},
	})
	responses := drain(t, respCh, errCh)

	// A registered empty completion is honored, not replaced by the default.
	require.Len(t, responses, 1)
	assert.Equal(t, "", responses[0].Text)
	assert.Equal(t, "stop", responses[0].FinishReason)
}

func TestMockBackendDefaultResponse(t *testing.T) {
	backend := NewMockBackend("mock-1", "mock")

	respCh, errCh := backend.Query(context.Background(), Request{
		Messages: []Message{{Role: "user", Content: "hello"}},
	})
	responses := drain(t, respCh, errCh)

	require.Len(t, responses, 1)
	assert.Equal(t, "Mock response to: hello", responses[0].Text)
}

func TestMockBackendStreaming(t *testing.T) {
	backend := NewMockBackend("mock-1", "mock")
	backend.AddResponse("hi", "yo")

	respCh, errCh := backend.Query(context.Background(), Request{
		Messages: []Message{{Role: "user", Content: "hi"}},
		Stream:   true,
	})
	responses := drain(t, respCh, errCh)

	// One partial per rune plus the final response.
	require.Len(t, responses, 3)
	assert.True(t, responses[0].Partial)
	assert.Equal(t, "y", responses[0].Text)
	assert.True(t, responses[1].Partial)
	assert.Equal(t, "o", responses[1].Text)
	assert.False(t, responses[2].Partial)
	assert.Equal(t, "yo", responses[2].Text)
}

func TestMockBackendNoMessages(t *testing.T) {
	backend := NewMockBackend("mock-1", "mock")

	respCh, errCh := backend.Query(context.Background(), Request{})
	for range respCh {
	}
	assert.Error(t, <-errCh)
}

func TestMockBackendCountTokens(t *testing.T) {
	backend := NewMockBackend("mock-1", "mock")

	count, err := backend.CountTokens(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = backend.CountTokens(context.Background(), "one  two\nthree")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMockBackendInfo(t *testing.T) {
	info := NewMockBackend("mock-1", "mock").Info()

	assert.Equal(t, "mock-1", info.Name)
	assert.Equal(t, "mock", info.Provider)
	assert.True(t, info.SupportsTools)
}
