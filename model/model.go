package model

import (
	"context"
	"fmt"

	"github.com/toolmesh/toolmesh/internal/util"
)

// Message is a single chat turn: a role ("system", "user", "assistant")
// paired with its text content.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolCall represents a function call request surfaced by a model provider.
// Unified across vendors so downstream logic does not need per-provider branching.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON string of arguments
}

// ToolDefinition declaratively exposes a callable function to the model.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual function (tool) exposed to the model.
// Parameters is a JSON Schema object (draft agnostic, minimal subset expected).
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema
}

// Float creates a pointer to a float64 value.
// This is useful for optional fields where nil indicates "not set".
func Float(f float64) *float64 { return &f }

// Request captures the normalized model input produced by the agent layer.
type Request struct {
	Instructions string           `json:"instructions"`          // System prompt for the model
	Messages     []Message        `json:"messages"`              // Ordered conversation turns
	Temperature  *float64         `json:"temperature,omitempty"` // Sampling entropy in [0, 1]; nil uses the backend default
	MaxTokens    int64            `json:"max_tokens,omitempty"`
	Stream       bool             `json:"stream,omitempty"`
	Tools        []ToolDefinition `json:"tools,omitempty"`
	Options      map[string]any   `json:"options,omitempty"` // Provider-specific passthrough
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is a (partial or final) chunk emitted by a backend.
// For non-streaming requests exactly one final Response is emitted;
// for streaming requests partial chunks precede the final one.
type Response struct {
	ID           string      `json:"id"`
	Partial      bool        `json:"partial"` // Indicates if this is a partial response
	Role         string      `json:"role"`    // "assistant"
	Text         string      `json:"text"`
	ToolCalls    []ToolCall  `json:"tool_calls,omitempty"`
	FinishReason string      `json:"finish_reason"` // "stop", "length", "tool_calls", etc.
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a backend implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "mock", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Backend is the capability set a concrete model provider must supply.
//
// Query adapts provider generation (streaming or not) into Response events.
// CountTokens returns the provider tokenizer's count for text; it must be
// non-negative and zero for empty text.
type Backend interface {
	Query(ctx context.Context, req Request) (<-chan Response, <-chan error)

	CountTokens(ctx context.Context, text string) (int, error)

	// Info returns information about the backend implementation.
	Info() Info
}

// MockBackend is a lightweight in-memory Backend useful for tests & examples.
type MockBackend struct {
	info      Info
	responses map[string]string
}

// NewMockBackend constructs a MockBackend with basic tool support enabled.
func NewMockBackend(name, provider string) *MockBackend {
	return &MockBackend{
		info: Info{
			Name:          name,
			Provider:      provider,
			SupportsTools: true,
		},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockBackend) AddResponse(prompt, response string) { m.responses[prompt] = response }

// Query implements Backend; emits optional streaming char chunks then a final response.
func (m *MockBackend) Query(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(respCh)
		defer close(errCh)
		if len(req.Messages) == 0 {
			errCh <- fmt.Errorf("no messages provided")
			return
		}
		inputText := req.Messages[len(req.Messages)-1].Content
		full, ok := m.responses[inputText]
		if !ok {
			full = fmt.Sprintf("Mock response to: %s", inputText)
		}
		if req.Stream {
			for _, r := range full {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				case respCh <- Response{
					Partial: true,
					Role:    "assistant",
					Text:    string(r),
				}:
				}
			}
		}
		respCh <- Response{
			ID:           util.NewID(),
			Partial:      false,
			Role:         "assistant",
			Text:         full,
			FinishReason: "stop",
		}
	}()
	return respCh, errCh
}

// CountTokens implements Backend using whitespace word counting.
func (m *MockBackend) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	count := 0
	inWord := false
	for _, r := range text {
		switch r {
		case ' ', '\t', '\n', '\r':
			inWord = false
		default:
			if !inWord {
				count++
			}
			inWord = true
		}
	}
	return count, nil
}

// Info implements the Backend interface.
func (m *MockBackend) Info() Info { return m.info }
