package mcp

import (
	"context"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolDescriptor is one entry of a server-advertised tool catalog.
type ToolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"input_schema"`
}

// Session is one live connection to an MCP server. It is created by Connect
// and must be released with Close; Close is idempotent.
type Session struct {
	server    string
	client    *client.Client
	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Connect establishes a connection to the server described by cfg and runs
// the protocol initialize handshake.
//
// Endpoint classification happens first: an unrecognized script suffix or
// transport type returns *UnsupportedTargetError before any process or
// socket exists. Transport setup failure returns *ConnectError; a failed
// handshake closes the already-open transport and returns *HandshakeError,
// so no resource survives a partial connect.
func Connect(ctx context.Context, server string, cfg ServerConfig) (*Session, error) {
	var cli *client.Client
	var err error

	switch cfg.Transport {
	case "", TransportStdio:
		command, args, cmdErr := stdioCommand(cfg)
		if cmdErr != nil {
			return nil, cmdErr
		}
		env := append(os.Environ(), cfg.Env...)
		cli, err = client.NewStdioMCPClient(command, env, args...)
	case TransportSSE:
		cli, err = client.NewSSEMCPClient(cfg.URL)
	case TransportStreamableHTTP:
		cli, err = client.NewStreamableHttpClient(cfg.URL)
	default:
		return nil, &UnsupportedTargetError{Target: string(cfg.Transport)}
	}
	if err != nil {
		return nil, &ConnectError{Server: server, Err: err}
	}

	if err := cli.Start(ctx); err != nil {
		cli.Close() //nolint:errcheck
		return nil, &ConnectError{Server: server, Err: err}
	}

	if _, err := cli.Initialize(ctx, mcp.InitializeRequest{}); err != nil {
		cli.Close() //nolint:errcheck
		return nil, &HandshakeError{Server: server, Err: err}
	}

	return &Session{server: server, client: cli}, nil
}

// Server returns the registry name this session was opened for.
func (s *Session) Server() string { return s.server }

// CallTool sends a tool-invocation request and returns the concatenated
// text content of its result.
//
// A closed session yields *ToolExecutionError. A remote report that the
// tool name is unknown is classified as *ToolNotFoundError; every other
// remote failure as *ToolExecutionError.
func (s *Session) CallTool(ctx context.Context, tool string, args map[string]any) (string, error) {
	if s.closed.Load() {
		return "", &ToolExecutionError{Server: s.server, Tool: tool, Message: "session is closed"}
	}

	request := mcp.CallToolRequest{}
	request.Params.Name = tool
	request.Params.Arguments = args

	result, err := s.client.CallTool(ctx, request)
	if err != nil {
		if isUnknownTool(err.Error()) {
			return "", &ToolNotFoundError{Server: s.server, Tool: tool}
		}
		return "", &ToolExecutionError{Server: s.server, Tool: tool, Err: err}
	}

	var sb strings.Builder
	for _, content := range result.Content {
		switch content := content.(type) {
		case mcp.TextContent:
			sb.WriteString(content.Text)
		default:
			sb.WriteString("[non-text content]")
		}
	}

	if result.IsError {
		if isUnknownTool(sb.String()) {
			return "", &ToolNotFoundError{Server: s.server, Tool: tool}
		}
		return "", &ToolExecutionError{Server: s.server, Tool: tool, Message: sb.String()}
	}
	return sb.String(), nil
}

// ListTools returns the server-advertised tool catalog.
func (s *Session) ListTools(ctx context.Context) ([]ToolDescriptor, error) {
	if s.closed.Load() {
		return nil, &ToolExecutionError{Server: s.server, Tool: "", Message: "session is closed"}
	}

	result, err := s.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, &ToolExecutionError{Server: s.server, Tool: "", Err: err}
	}

	descriptors := make([]ToolDescriptor, 0, len(result.Tools))
	for _, t := range result.Tools {
		schema := map[string]any{
			"type": t.InputSchema.Type,
		}
		if t.InputSchema.Properties != nil {
			schema["properties"] = t.InputSchema.Properties
		}
		if len(t.InputSchema.Required) > 0 {
			schema["required"] = t.InputSchema.Required
		}
		descriptors = append(descriptors, ToolDescriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schema,
		})
	}
	return descriptors, nil
}

// Close releases the transport and reaps any spawned subprocess. Calling
// Close more than once is a no-op returning the first result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		if s.client != nil {
			s.closeErr = s.client.Close()
		}
	})
	return s.closeErr
}

// isUnknownTool matches the remote error shapes servers use for an unknown
// tool name (JSON-RPC invalid-params text or a plain "tool not found").
func isUnknownTool(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "unknown tool") ||
		(strings.Contains(lower, "tool") && strings.Contains(lower, "not found"))
}
